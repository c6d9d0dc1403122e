package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/javapoet/java"
)

// JSONEncoder writes a file's source together with what the emitter found
// out while writing it.
type JSONEncoder struct {
	w    io.Writer
	file *java.File
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(file *java.File) error {
	e.file = file
	return encode(e.w, e)
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	data, err := e.buildFileData()
	if err != nil {
		return nil, err
	}
	text, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(text, '\n'), nil
}

type jsonFile struct {
	Package           string   `json:"package"`
	Path              string   `json:"path"`
	Imports           []string `json:"imports"`
	StaticImports     []string `json:"staticImports,omitempty"`
	StaticImportsUsed []string `json:"staticImportsUsed,omitempty"`
	Type              jsonType `json:"type"`
	Source            string   `json:"source"`
}

type jsonType struct {
	Name      string       `json:"name"`
	Kind      string       `json:"kind"`
	Modifiers []string     `json:"modifiers,omitempty"`
	Fields    []jsonField  `json:"fields,omitempty"`
	Methods   []jsonMethod `json:"methods,omitempty"`
	Types     []jsonType   `json:"types,omitempty"`
}

type jsonField struct {
	Name      string   `json:"name"`
	Type      string   `json:"type"`
	Modifiers []string `json:"modifiers,omitempty"`
}

type jsonMethod struct {
	Name       string          `json:"name"`
	ReturnType string          `json:"returnType,omitempty"`
	Parameters []jsonParameter `json:"parameters,omitempty"`
	Modifiers  []string        `json:"modifiers,omitempty"`
}

type jsonParameter struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

func (e *JSONEncoder) buildFileData() (jsonFile, error) {
	f := e.file
	emission, err := f.Emit()
	if err != nil {
		return jsonFile{}, err
	}
	imports := emission.Imports
	if imports == nil {
		imports = []string{}
	}
	return jsonFile{
		Package:           f.PackageName,
		Path:              f.Path(),
		Imports:           imports,
		StaticImports:     f.StaticImports,
		StaticImportsUsed: emission.StaticImportsUsed,
		Type:              buildType(f.Type),
		Source:            emission.Source,
	}, nil
}

func buildType(t *java.TypeSpec) jsonType {
	data := jsonType{
		Name:      t.Name,
		Kind:      string(t.Kind),
		Modifiers: modifierStrings(t.Modifiers),
	}
	for _, f := range t.Fields {
		data.Fields = append(data.Fields, jsonField{
			Name:      f.Name,
			Type:      f.Type.String(),
			Modifiers: modifierStrings(f.Modifiers),
		})
	}
	for _, m := range t.Methods {
		data.Methods = append(data.Methods, buildMethod(m))
	}
	for _, nested := range t.Types {
		data.Types = append(data.Types, buildType(nested))
	}
	return data
}

func buildMethod(m *java.MethodSpec) jsonMethod {
	data := jsonMethod{
		Name:      m.Name,
		Modifiers: modifierStrings(m.Modifiers),
	}
	if !m.IsConstructor() {
		data.ReturnType = m.ReturnType.String()
	}
	for _, p := range m.Parameters {
		data.Parameters = append(data.Parameters, jsonParameter{
			Name: p.Name,
			Type: p.Type.String(),
		})
	}
	return data
}

func modifierStrings(modifiers []java.Modifier) []string {
	var mods []string
	for _, m := range modifiers {
		mods = append(mods, string(m))
	}
	return mods
}
