package java

import "github.com/cockroachdb/errors"

var (
	// ErrInvalidTemplate marks errors in template strings and their
	// arguments. They are reported when a CodeBlock is built.
	ErrInvalidTemplate = errors.New("invalid template")

	// ErrState marks unbalanced statement brackets. They are reported when
	// the code is rendered, since blocks may be concatenated before that.
	ErrState = errors.New("invalid emission state")

	// ErrInvalidType marks type names that violate their invariants.
	ErrInvalidType = errors.New("invalid type")

	// ErrInvalidDeclaration marks declarations the emitter cannot render.
	ErrInvalidDeclaration = errors.New("invalid declaration")
)

func templateErrorf(format string, args ...any) error {
	return errors.Mark(errors.NewWithDepthf(1, format, args...), ErrInvalidTemplate)
}

func stateErrorf(format string, args ...any) error {
	return errors.Mark(errors.NewWithDepthf(1, format, args...), ErrState)
}

func typeErrorf(format string, args ...any) error {
	return errors.Mark(errors.NewWithDepthf(1, format, args...), ErrInvalidType)
}

func declarationErrorf(format string, args ...any) error {
	return errors.Mark(errors.NewWithDepthf(1, format, args...), ErrInvalidDeclaration)
}
