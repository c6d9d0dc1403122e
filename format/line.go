package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/javapoet/java"
)

// LineEncoder writes a tab-separated outline of a file: one line per
// import, then one per type and member. Empty columns are written as "-".
type LineEncoder struct {
	w    io.Writer
	file *java.File
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(file *java.File) error {
	e.file = file
	return encode(e.w, e)
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	f := e.file

	imports, err := f.Imports()
	if err != nil {
		return nil, err
	}
	for _, signature := range f.StaticImports {
		fmt.Fprintf(&sb, "import static\t%s\n", signature)
	}
	for _, name := range imports {
		fmt.Fprintf(&sb, "import\t%s\n", name)
	}

	prefix := f.PackageName
	if prefix != "" {
		prefix += "."
	}
	writeType(&sb, prefix, f.Type)
	return []byte(sb.String()), nil
}

func writeType(sb *strings.Builder, prefix string, t *java.TypeSpec) {
	name := prefix + t.Name
	fmt.Fprintf(sb, "%s\t%s\t%s\n", t.Kind, name, modifiersStr(t.Modifiers))

	for _, c := range t.EnumConstants {
		fmt.Fprintf(sb, "constant\t%s\n", c.Name)
	}

	for _, f := range t.Fields {
		fmt.Fprintf(sb, "field\t%s\t%s\t%s\n",
			f.Name,
			f.Type.String(),
			modifiersStr(f.Modifiers),
		)
	}

	for _, m := range t.Methods {
		returnType := "-"
		methodName := m.Name
		if m.IsConstructor() {
			methodName = t.Name
		} else {
			returnType = m.ReturnType.String()
		}
		fmt.Fprintf(sb, "method\t%s\t%s\t%s\t%s\n",
			methodName,
			returnType,
			parametersStr(m),
			modifiersStr(m.Modifiers),
		)
	}

	for _, nested := range t.Types {
		writeType(sb, name+".", nested)
	}
}

func modifiersStr(modifiers []java.Modifier) string {
	if len(modifiers) == 0 {
		return "-"
	}
	return strings.Join(modifierStrings(modifiers), ",")
}

func parametersStr(m *java.MethodSpec) string {
	if len(m.Parameters) == 0 {
		return "-"
	}
	var parts []string
	for i, p := range m.Parameters {
		t := p.Type.String()
		if m.Varargs && i == len(m.Parameters)-1 {
			t = strings.TrimSuffix(t, "[]") + "..."
		}
		parts = append(parts, t)
	}
	return strings.Join(parts, ",")
}
