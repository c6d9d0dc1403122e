// Package declfile reads Java declarations from YAML documents.
//
// A document describes one file:
//
//	package: com.example.hello
//	skipJavaLangImports: true
//	type:
//	  kind: class
//	  name: HelloWorld
//	  modifiers: [public, final]
//	  methods:
//	    - name: main
//	      modifiers: [public, static]
//	      parameters:
//	        - {name: args, type: "java.lang.String[]"}
//	      statements:
//	        - format: "$T.out.println($S)"
//	          args: [{type: java.lang.System}, {string: "Hello, JavaPoet!"}]
//
// Code is a template string, or a mapping with a format and its arguments.
// Arguments are tagged with how they are used: type, string, name, literal
// or code. {nil: true} is Java's null.
package declfile

import (
	"bytes"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/tliron/commonlog"
	"gopkg.in/yaml.v3"

	"github.com/dhamidi/javapoet/java"
)

var log = commonlog.GetLogger("javapoet.declfile")

// Document is the top level of a declaration file.
type Document struct {
	Package             string   `yaml:"package"`
	Comment             *Code    `yaml:"comment"`
	SkipJavaLangImports bool     `yaml:"skipJavaLangImports"`
	Indent              string   `yaml:"indent"`
	ColumnLimit         int      `yaml:"columnLimit"`
	StaticImports       []string `yaml:"staticImports"`
	Type                TypeDecl `yaml:"type"`
}

type TypeDecl struct {
	Kind            string             `yaml:"kind"`
	Name            string             `yaml:"name"`
	Javadoc         *Code              `yaml:"javadoc"`
	Annotations     []AnnotationDecl   `yaml:"annotations"`
	Modifiers       []string           `yaml:"modifiers"`
	TypeVariables   []TypeVariableDecl `yaml:"typeVariables"`
	Superclass      string             `yaml:"superclass"`
	Superinterfaces []string           `yaml:"superinterfaces"`
	AlwaysQualify   []string           `yaml:"alwaysQualify"`
	EnumConstants   []EnumConstantDecl `yaml:"enumConstants"`
	Fields          []FieldDecl        `yaml:"fields"`
	StaticBlock     *Code              `yaml:"staticBlock"`
	Initializer     *Code              `yaml:"initializer"`
	Methods         []MethodDecl       `yaml:"methods"`
	Types           []TypeDecl         `yaml:"types"`
	// Args makes the type an anonymous class with these constructor
	// arguments.
	Args *Code `yaml:"args"`
}

type TypeVariableDecl struct {
	Name   string   `yaml:"name"`
	Bounds []string `yaml:"bounds"`
}

type EnumConstantDecl struct {
	Name    string       `yaml:"name"`
	Javadoc *Code        `yaml:"javadoc"`
	Args    *Code        `yaml:"args"`
	Fields  []FieldDecl  `yaml:"fields"`
	Methods []MethodDecl `yaml:"methods"`
}

type FieldDecl struct {
	Name        string           `yaml:"name"`
	Type        string           `yaml:"type"`
	Javadoc     *Code            `yaml:"javadoc"`
	Annotations []AnnotationDecl `yaml:"annotations"`
	Modifiers   []string         `yaml:"modifiers"`
	Initializer *Code            `yaml:"initializer"`
}

type MethodDecl struct {
	// Name is empty for a constructor.
	Name          string             `yaml:"name"`
	Javadoc       *Code              `yaml:"javadoc"`
	Annotations   []AnnotationDecl   `yaml:"annotations"`
	Modifiers     []string           `yaml:"modifiers"`
	TypeVariables []TypeVariableDecl `yaml:"typeVariables"`
	Returns       string             `yaml:"returns"`
	Parameters    []ParameterDecl    `yaml:"parameters"`
	Varargs       bool               `yaml:"varargs"`
	Exceptions    []string           `yaml:"exceptions"`
	Code          *Code              `yaml:"code"`
	Statements    []Code             `yaml:"statements"`
	Default       *Code              `yaml:"default"`
}

type ParameterDecl struct {
	Name        string           `yaml:"name"`
	Type        string           `yaml:"type"`
	Javadoc     *Code            `yaml:"javadoc"`
	Annotations []AnnotationDecl `yaml:"annotations"`
	Final       bool             `yaml:"final"`
}

// AnnotationDecl is an annotation. A plain string is a marker annotation
// of that type.
type AnnotationDecl struct {
	Type    string     `yaml:"type"`
	Members MemberList `yaml:"members"`
}

func (a *AnnotationDecl) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		a.Type = value.Value
		return nil
	}
	type plain AnnotationDecl
	return value.Decode((*plain)(a))
}

// MemberList keeps annotation members in document order.
type MemberList []MemberDecl

type MemberDecl struct {
	Name   string
	Values []Code
}

func (l *MemberList) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return errors.Newf("line %d: annotation members must be a mapping", value.Line)
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		key, v := value.Content[i], value.Content[i+1]
		m := MemberDecl{Name: key.Value}
		if v.Kind == yaml.SequenceNode {
			if err := v.Decode(&m.Values); err != nil {
				return err
			}
		} else {
			var c Code
			if err := v.Decode(&c); err != nil {
				return err
			}
			m.Values = []Code{c}
		}
		*l = append(*l, m)
	}
	return nil
}

// Code is a template with arguments. Statements are appended after Format,
// each one terminated with ";".
type Code struct {
	Format     string         `yaml:"format"`
	Args       []Arg          `yaml:"args"`
	Named      map[string]Arg `yaml:"named"`
	Statements []Code         `yaml:"statements"`
}

func (c *Code) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		c.Format = value.Value
		return nil
	}
	type plain Code
	return value.Decode((*plain)(c))
}

// Arg is a template argument. Exactly one field is set; a plain scalar is a
// literal.
type Arg struct {
	Type    *string `yaml:"type"`
	String  *string `yaml:"string"`
	Name    *string `yaml:"name"`
	Literal any     `yaml:"literal"`
	Code    *Code   `yaml:"code"`
	Null    bool    `yaml:"nil"`
}

func (a *Arg) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		return value.Decode(&a.Literal)
	}
	type plain Arg
	return value.Decode((*plain)(a))
}

// Load reads the declaration file at path.
func Load(path string) (*java.File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read declaration file")
	}
	f, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	log.Debugf("loaded %s: %s", path, f.Path())
	return f, nil
}

// Parse decodes a declaration document.
func Parse(data []byte) (*java.File, error) {
	return Decode(bytes.NewReader(data))
}

// Decode reads a declaration document from r. Unknown keys are errors.
func Decode(r io.Reader) (*java.File, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "decode declaration document")
	}
	return doc.Build()
}
