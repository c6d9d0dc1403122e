package format

import (
	"encoding"
	"io"

	"github.com/cockroachdb/errors"

	"github.com/dhamidi/javapoet/java"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(file *java.File) error
}

// Names lists the encoders NewEncoder knows.
var Names = []string{"java", "json", "line"}

// NewEncoder returns the encoder called name writing to w.
func NewEncoder(name string, w io.Writer) (Encoder, error) {
	switch name {
	case "java", "":
		return NewJavaEncoder(w), nil
	case "json":
		return NewJSONEncoder(w), nil
	case "line":
		return NewLineEncoder(w), nil
	}
	return nil, errors.Newf("unknown format %q, expected one of %v", name, Names)
}

func encode(w io.Writer, m encoding.TextMarshaler) error {
	text, err := m.MarshalText()
	if err != nil {
		return err
	}
	_, err = w.Write(text)
	return err
}
