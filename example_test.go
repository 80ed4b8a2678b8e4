package formdata_test

import (
	"bytes"
	"fmt"
	"strings"

	formdata "github.com/iliana/form-data-builder"
)

func Example() {
	var body bytes.Buffer
	form, err := formdata.New(&body, formdata.WithBoundary("xyz"))
	if err != nil {
		panic(err)
	}
	_ = form.WriteField("cute", "yes")
	_ = form.WriteFile("notes", strings.NewReader("hi"), "notes.txt", "text/plain")
	if _, err := form.Finish(); err != nil {
		panic(err)
	}

	fmt.Println(form.ContentType())
	fmt.Print(strings.ReplaceAll(body.String(), "\r\n", "\n"))
	// Output:
	// multipart/form-data; boundary=xyz
	// --xyz
	// Content-Disposition: form-data; name="cute"
	//
	// yes
	// --xyz
	// Content-Disposition: form-data; name="notes"; filename="notes.txt"
	// Content-Type: text/plain
	//
	// hi
	// --xyz--
}
