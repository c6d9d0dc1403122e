package java

import (
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("javapoet.java")

// File is a Java source file holding one top-level type.
type File struct {
	PackageName string
	Type        *TypeSpec
	// Comment is written as // lines above the package declaration.
	Comment CodeBlock
	// StaticImports are "pkg.Class.member" or "pkg.Class.*" signatures.
	StaticImports []string
	// SkipJavaLangImports leaves out imports of java.lang classes, which
	// are visible anyway.
	SkipJavaLangImports bool
	// Indent defaults to two spaces.
	Indent      string
	ColumnLimit int
}

func NewFile(packageName string, t *TypeSpec) *File {
	return &File{PackageName: packageName, Type: t}
}

// AddStaticImport imports the members names of c statically. "*" imports
// all of them.
func (f *File) AddStaticImport(c *ClassName, names ...string) *File {
	for _, name := range names {
		f.StaticImports = append(f.StaticImports, c.CanonicalName()+"."+name)
	}
	return f
}

// Validate checks the package name and the declared type.
func (f *File) Validate() error {
	if f.Type == nil {
		return declarationErrorf("file has no type")
	}
	if f.Type.IsAnonymous() {
		return declarationErrorf("file type cannot be anonymous")
	}
	if f.PackageName != "" && !IsValidName(f.PackageName) {
		return declarationErrorf("not a valid package name: %s", f.PackageName)
	}
	for _, signature := range f.StaticImports {
		if !strings.Contains(signature, ".") {
			return declarationErrorf("not a valid static import: %s", signature)
		}
	}
	return f.Type.Validate()
}

func (f *File) options(imported map[string]*ClassName) WriterOptions {
	return WriterOptions{
		Indent:        f.Indent,
		ColumnLimit:   f.ColumnLimit,
		ImportedTypes: imported,
		StaticImports: f.StaticImports,
		AlwaysQualify: f.Type.alwaysQualifiedNames(nil),
	}
}

// collectImports renders f once without imports and returns the classes
// the writer suggests importing.
func (f *File) collectImports() (*CodeWriter, error) {
	cw := NewCodeWriter(io.Discard, f.options(nil))
	if err := cw.Render(f, false); err != nil {
		return nil, err
	}
	return cw, nil
}

// WriteTo writes the file to w. The file is rendered twice: the first pass
// finds the imports and the second writes the source with them.
func (f *File) WriteTo(w io.Writer) (int64, error) {
	n, _, err := f.write(w)
	return n, err
}

func (f *File) write(w io.Writer) (int64, *CodeWriter, error) {
	if err := f.Validate(); err != nil {
		return 0, nil, err
	}
	collector, err := f.collectImports()
	if err != nil {
		return 0, nil, err
	}
	suggested := collector.SuggestedImports()
	log.Debugf("%s: %d imports suggested", f.Path(), len(suggested))

	cw := NewCodeWriter(w, f.options(suggested))
	err = cw.Render(f, false)
	if used := cw.StaticImportsUsed(); len(used) > 0 {
		log.Debugf("%s: static imports used: %s", f.Path(), strings.Join(used, ", "))
	}
	return cw.out.written, collector, err
}

// Emission is the outcome of rendering a file once.
type Emission struct {
	Source            string
	Imports           []string
	StaticImportsUsed []string
}

// Emit renders f and reports the imports and static imports the render
// used, without rendering again.
func (f *File) Emit() (*Emission, error) {
	var sb strings.Builder
	_, collector, err := f.write(&sb)
	if err != nil {
		return nil, err
	}
	return &Emission{
		Source:            sb.String(),
		Imports:           f.importNames(collector),
		StaticImportsUsed: collector.StaticImportsUsed(),
	}, nil
}

// Render returns the source text of f.
func (f *File) Render() (string, error) {
	var sb strings.Builder
	if _, err := f.WriteTo(&sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// String returns the source text of f. It panics if f cannot be rendered.
func (f *File) String() string {
	s, err := f.Render()
	if err != nil {
		panic(err)
	}
	return s
}

// Imports returns the canonical names f imports, in the order they are
// written.
func (f *File) Imports() ([]string, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	collector, err := f.collectImports()
	if err != nil {
		return nil, err
	}
	return f.importNames(collector), nil
}

func (f *File) importNames(collector *CodeWriter) []string {
	alwaysQualify := f.Type.alwaysQualifiedNames(nil)
	var imports []string
	for _, c := range sortedClassNames(collector.SuggestedImports()) {
		if f.skipImport(c, alwaysQualify) {
			continue
		}
		imports = append(imports, c.CanonicalName())
	}
	return imports
}

// StaticImportsUsed returns the static imports that replaced a qualified
// member reference somewhere in f.
func (f *File) StaticImportsUsed() ([]string, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	collector, err := f.collectImports()
	if err != nil {
		return nil, err
	}
	return collector.StaticImportsUsed(), nil
}

func (f *File) skipImport(c *ClassName, alwaysQualify []string) bool {
	return f.SkipJavaLangImports && c.PackageName() == "java.lang" && !slices.Contains(alwaysQualify, c.SimpleName())
}

// Path is the location of the file relative to a source root.
func (f *File) Path() string {
	name := "Unnamed"
	if f.Type != nil {
		name = f.Type.Name
	}
	if f.PackageName == "" {
		return name + ".java"
	}
	return filepath.Join(append(strings.Split(f.PackageName, "."), name+".java")...)
}

// WriteToDir writes f below the source root dir, creating package
// directories as needed, and returns the path it wrote.
func (f *File) WriteToDir(dir string) (string, error) {
	source, err := f.Render()
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, f.Path())
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", errors.Wrapf(err, "create package directory for %s", f.Path())
	}
	if err := os.WriteFile(path, []byte(source), 0o644); err != nil {
		return "", errors.Wrapf(err, "write %s", path)
	}
	log.Infof("wrote %s", path)
	return path, nil
}

func (f *File) emit(cw *CodeWriter) {
	if f.Type == nil {
		cw.fail(declarationErrorf("file has no type"))
		return
	}
	cw.pushPackage(f.PackageName)

	if !f.Comment.IsEmpty() {
		cw.emitComment(f.Comment)
	}

	if f.PackageName != "" {
		cw.emit("package $L;\n", f.PackageName)
		cw.emit("\n")
	}

	if len(f.StaticImports) > 0 {
		for _, signature := range sortedUnique(f.StaticImports) {
			cw.emit("import static $L;\n", signature)
		}
		cw.emit("\n")
	}

	alwaysQualify := f.Type.alwaysQualifiedNames(nil)
	imported := 0
	for _, c := range sortedClassNames(cw.importedTypes) {
		if f.skipImport(c, alwaysQualify) {
			continue
		}
		cw.emit("import $L;\n", c.CanonicalName())
		imported++
	}
	if imported > 0 {
		cw.emit("\n")
	}

	f.Type.emit(cw, "", nil)

	cw.popPackage()
}

func sortedClassNames(m map[string]*ClassName) []*ClassName {
	out := make([]*ClassName, 0, len(m))
	for _, c := range m {
		out = append(out, c)
	}
	slices.SortFunc(out, CompareClassNames)
	return out
}

func sortedUnique(s []string) []string {
	out := slices.Clone(s)
	slices.Sort(out)
	return slices.Compact(out)
}
