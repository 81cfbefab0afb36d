package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is the serialization of a schema file.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

func (f Format) String() string {
	if f == FormatYAML {
		return "yaml"
	}
	return "json"
}

// FormatFor picks the format from a file extension; anything other than
// .yaml or .yml is JSON.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// IOError reports a schema file that could not be read, parsed or written.
type IOError struct {
	Path string
	Op   string
	Err  error
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// Load reads, decodes and validates a schema file.
func Load(path string) (*Presentation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &IOError{Path: path, Op: "read", Err: err}
	}
	p, err := Decode(data, FormatFor(path))
	if err != nil {
		var ioErr *IOError
		if errors.As(err, &ioErr) {
			ioErr.Path = path
		}
		return nil, err
	}
	if err := Validate(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Decode parses a schema document without validating it. Unknown element
// types are reported as ValidationErrors, syntax errors as *IOError.
func Decode(data []byte, format Format) (*Presentation, error) {
	var p Presentation
	var err error
	if format == FormatYAML {
		err = yaml.Unmarshal(data, &p)
	} else {
		err = json.Unmarshal(data, &p)
	}
	if err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) {
			return nil, ValidationErrors{ve}
		}
		return nil, &IOError{Op: "decode " + format.String(), Err: err}
	}
	return &p, nil
}

// Encode serializes p in the given format.
func Encode(p *Presentation, format Format) ([]byte, error) {
	if format == FormatYAML {
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(p); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// Save writes p to path in the format implied by its extension.
func Save(path string, p *Presentation) error {
	data, err := Encode(p, FormatFor(path))
	if err != nil {
		return &IOError{Path: path, Op: "encode", Err: err}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return &IOError{Path: path, Op: "write", Err: err}
	}
	return nil
}
