package main

import (
	"bytes"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const defaultContentType = "application/octet-stream"

// Manifest lists the parts of a document in the order they are written.
type Manifest struct {
	Parts []Part `yaml:"parts"`
}

// Part is a text field (Value set) or a file field (Path set).
type Part struct {
	Name  string  `yaml:"name"`
	Value *string `yaml:"value,omitempty"`
	Path  string  `yaml:"path,omitempty"`
	// Filename overrides the last element of Path; an empty string omits the
	// filename parameter.
	Filename    *string `yaml:"filename,omitempty"`
	ContentType string  `yaml:"content_type,omitempty"`
}

func (p Part) isFile() bool {
	return p.Path != ""
}

func (p Part) validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("name is required")
	}
	if (p.Value == nil) == (p.Path == "") {
		return fmt.Errorf("part %q must set exactly one of value or path", p.Name)
	}
	if p.Value != nil && (p.Filename != nil || p.ContentType != "") {
		return fmt.Errorf("part %q: filename and content_type only apply to files", p.Name)
	}
	return nil
}

// contentType returns the configured content type or one guessed from the
// file extension.
func (p Part) contentType() string {
	if p.ContentType != "" {
		return p.ContentType
	}
	if ct := mime.TypeByExtension(filepath.Ext(p.Path)); ct != "" {
		return ct
	}
	return defaultContentType
}

// LoadManifest reads a YAML manifest. Variables from envFile, if given, are
// loaded into the environment first and ${VAR} references in the manifest are
// expanded before decoding. Relative part paths are resolved against the
// manifest's directory.
func LoadManifest(path, envFile string) (*Manifest, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("load env file: %w", err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	expanded := os.ExpandEnv(string(data))

	var m Manifest
	dec := yaml.NewDecoder(bytes.NewReader([]byte(expanded)))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	for i := range m.Parts {
		p := &m.Parts[i]
		if err := p.validate(); err != nil {
			return nil, fmt.Errorf("manifest %s part %d: %w", path, i, err)
		}
		if p.isFile() && !filepath.IsAbs(p.Path) {
			p.Path = filepath.Join(dir, p.Path)
		}
	}
	return &m, nil
}

// parseFieldFlag parses name=value.
func parseFieldFlag(s string) (Part, error) {
	name, value, ok := strings.Cut(s, "=")
	if !ok || name == "" {
		return Part{}, fmt.Errorf("invalid field %q: want name=value", s)
	}
	return Part{Name: name, Value: &value}, nil
}

// parseFileFlag parses name=path with an optional ;type=content-type suffix.
func parseFileFlag(s string) (Part, error) {
	name, rest, ok := strings.Cut(s, "=")
	if !ok || name == "" || rest == "" {
		return Part{}, fmt.Errorf("invalid file %q: want name=path[;type=content-type]", s)
	}
	p := Part{Name: name, Path: rest}
	if i := strings.LastIndex(rest, ";type="); i >= 0 {
		p.Path = rest[:i]
		p.ContentType = rest[i+len(";type="):]
		if p.Path == "" || p.ContentType == "" {
			return Part{}, fmt.Errorf("invalid file %q: want name=path[;type=content-type]", s)
		}
	}
	return p, nil
}
