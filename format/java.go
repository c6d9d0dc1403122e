package format

import (
	"io"

	"github.com/dhamidi/javapoet/java"
)

// JavaEncoder writes the Java source of a file.
type JavaEncoder struct {
	w    io.Writer
	file *java.File
}

func NewJavaEncoder(w io.Writer) *JavaEncoder {
	return &JavaEncoder{w: w}
}

func (e *JavaEncoder) Encode(file *java.File) error {
	e.file = file
	return encode(e.w, e)
}

func (e *JavaEncoder) MarshalText() ([]byte, error) {
	source, err := e.file.Render()
	if err != nil {
		return nil, err
	}
	return []byte(source), nil
}
