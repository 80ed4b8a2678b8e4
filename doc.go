// Package formdata builds multipart/form-data documents as described in RFC 7578.
//
// A [Builder] wraps an [io.Writer] and streams each part to it as soon as the
// part is written. File content is copied straight from its reader, so large
// uploads never have to fit in memory. The document is closed with
// [Builder.Finish], which writes the terminal boundary and hands the writer
// back to the caller.
//
// # Basic Usage
//
//	var body bytes.Buffer
//	form, err := formdata.New(&body)
//	if err != nil {
//		return err
//	}
//	if err := form.WritePath("ferris", "testdata/rustacean-flat-noshadow.png", "image/png"); err != nil {
//		return err
//	}
//	if err := form.WriteField("cute", "yes"); err != nil {
//		return err
//	}
//	if _, err := form.Finish(); err != nil {
//		return err
//	}
//	req.Header.Set("Content-Type", form.ContentType())
//
// # Compression
//
// The document can be compressed while it is written by wrapping the sink in an
// [EncodedWriter]; send the result with the matching Content-Encoding header.
//
//	ew, _ := formdata.NewEncodedWriter(f, formdata.EncodingZstd)
//	form, _ := formdata.New(ew)
//	// ... write parts ...
//	ew, _ = form.Finish()
//	ew.Close()
//
// # Limitations
//
// The builder does not validate field names, filenames or content types, and
// writes them without escaping. It does not scan payloads for the boundary
// string either; the generated boundary carries 96 random bits, which makes an
// accidental collision unlikely but not impossible for arbitrary binary input.
package formdata
