package java

import (
	"io"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, opts WriterOptions, decl any) (string, *CodeWriter) {
	t.Helper()
	var sb strings.Builder
	cw := NewCodeWriter(&sb, opts)
	require.NoError(t, cw.Render(decl, false))
	return sb.String(), cw
}

func TestCodeWriterImportCollection(t *testing.T) {
	cb := MustCode("$T.out.println($S)", systemClass, "hi")

	// Without imports the canonical name is written and the class becomes
	// an import candidate.
	got, cw := render(t, WriterOptions{}, cb)
	assert.Equal(t, `java.lang.System.out.println("hi")`, got)
	suggested := cw.SuggestedImports()
	require.Contains(t, suggested, "System")
	assert.Equal(t, "java.lang.System", suggested["System"].CanonicalName())

	got, _ = render(t, WriterOptions{ImportedTypes: suggested}, cb)
	assert.Equal(t, `System.out.println("hi")`, got)
}

func TestCodeWriterFirstImportWins(t *testing.T) {
	acme := NewClassName("com.acme", "Entry")
	other := NewClassName("org.other", "Entry")

	_, cw := render(t, WriterOptions{}, MustCode("$T a; $T b;", acme, other))
	suggested := cw.SuggestedImports()
	require.Len(t, suggested, 1)
	assert.Equal(t, "com.acme.Entry", suggested["Entry"].CanonicalName())

	got, _ := render(t, WriterOptions{ImportedTypes: suggested}, MustCode("$T a; $T b;", acme, other))
	assert.Equal(t, "Entry a; org.other.Entry b;", got)
}

func TestCodeWriterNestedClassUsesImportedOuter(t *testing.T) {
	entry := mapClass.NestedClass("Entry")
	got, cw := render(t, WriterOptions{}, MustCode("$T", entry))
	assert.Equal(t, "java.util.Map.Entry", got)
	assert.Equal(t, "java.util.Map", cw.SuggestedImports()["Map"].CanonicalName())

	got, _ = render(t, WriterOptions{ImportedTypes: map[string]*ClassName{"Map": mapClass}}, MustCode("$T", entry))
	assert.Equal(t, "Map.Entry", got)
}

func TestCodeWriterAlwaysQualify(t *testing.T) {
	got, cw := render(t, WriterOptions{AlwaysQualify: []string{"List"}}, MustCode("$T", listClass))
	assert.Equal(t, "java.util.List", got)
	assert.Empty(t, cw.SuggestedImports())
}

func TestCodeWriterStatementIndentation(t *testing.T) {
	cb, err := NewCodeBuilder().
		BeginControlFlow("void m()").
		AddStatement("foo(\na,\nb)").
		AddStatement("bar()").
		EndControlFlow().
		Build()
	require.NoError(t, err)

	got, _ := render(t, WriterOptions{}, cb)
	want := "void m() {\n" +
		"  foo(\n" +
		"      a,\n" +
		"      b);\n" +
		"  bar();\n" +
		"}\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Render() mismatch (-want +got):\n%s", diff)
	}
}

func TestCodeWriterStaticImports(t *testing.T) {
	tests := []struct {
		name          string
		staticImports []string
		code          CodeBlock
		want          string
		wantUsed      []string
	}{
		{
			name:          "explicit member",
			staticImports: []string{"java.lang.Math.max"},
			code:          MustCode("$T.max(a, b)", mathClass),
			want:          "max(a, b)",
			wantUsed:      []string{"java.lang.Math.max"},
		},
		{
			name:          "wildcard",
			staticImports: []string{"java.lang.Math.*"},
			code:          MustCode("$T.PI * $T.abs(x)", mathClass, mathClass),
			want:          "PI * abs(x)",
			wantUsed:      []string{"java.lang.Math.*"},
		},
		{
			name:          "other member",
			staticImports: []string{"java.lang.Math.max"},
			code:          MustCode("$T.PI", mathClass),
			want:          "java.lang.Math.PI",
			wantUsed:      []string{},
		},
		{
			name:          "type at the end",
			staticImports: []string{"java.lang.Math.*"},
			code:          MustCode("$T", mathClass),
			want:          "java.lang.Math",
			wantUsed:      []string{},
		},
		{
			name:          "no member after the type",
			staticImports: []string{"java.lang.Math.*"},
			code:          MustCode("$T x", mathClass),
			want:          "java.lang.Math x",
			wantUsed:      []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, cw := render(t, WriterOptions{StaticImports: tt.staticImports}, tt.code)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantUsed, cw.StaticImportsUsed())
		})
	}
}

func TestCodeWriterJavadocDoesNotImport(t *testing.T) {
	c := NewClass("Hello")
	c.Javadoc = MustCode("Says hello.\n\nSee $T.\n", listClass)

	got, cw := render(t, WriterOptions{}, c)
	want := "/**\n" +
		" * Says hello.\n" +
		" *\n" +
		" * See java.util.List.\n" +
		" */\n" +
		"class Hello {\n" +
		"}\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Render() mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, cw.SuggestedImports())
}

func TestCodeWriterLineWrapping(t *testing.T) {
	m := NewMethod("configure").
		AddParameter(stringClass, "first").
		AddParameter(stringClass, "second").
		AddParameter(stringClass, "third")
	c := NewClass("Config").AddMethod(m)

	got, _ := render(t, WriterOptions{
		ColumnLimit:   40,
		ImportedTypes: map[string]*ClassName{"String": stringClass},
	}, c)
	want := "class Config {\n" +
		"  void configure(String first,\n" +
		"      String second, String third) {\n" +
		"  }\n" +
		"}\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Render() mismatch (-want +got):\n%s", diff)
	}
}

func TestCodeWriterFaults(t *testing.T) {
	tests := []struct {
		name string
		decl any
		is   error
	}{
		{name: "unindent below zero", decl: MustCode("$<")},
		{name: "unsupported value", decl: 42},
		{name: "unbalanced statement", decl: MustCode("$]"), is: ErrState},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sb strings.Builder
			err := NewCodeWriter(&sb, WriterOptions{}).Render(tt.decl, false)
			require.Error(t, err)
			if tt.is != nil {
				assert.True(t, errors.Is(err, tt.is))
			} else {
				assert.True(t, errors.HasAssertionFailure(err), "want assertion failure, got %v", err)
			}
		})
	}
}

func TestCodeWriterScopeFaults(t *testing.T) {
	tests := []struct {
		name    string
		run     func(cw *CodeWriter)
		wantErr string
	}{
		{
			name: "type variable not in scope",
			run: func(cw *CodeWriter) {
				cw.emitTypeVariables([]*TypeVariableName{TypeVariable("T")})
				cw.popTypeVariables([]*TypeVariableName{TypeVariable("Q")})
			},
			wantErr: "type variable Q is not in scope",
		},
		{
			name: "type variable popped twice",
			run: func(cw *CodeWriter) {
				vars := []*TypeVariableName{TypeVariable("T")}
				cw.emitTypeVariables(vars)
				cw.popTypeVariables(vars)
				cw.popTypeVariables(vars)
			},
			wantErr: "type variable T is not in scope",
		},
		{
			name: "package set twice",
			run: func(cw *CodeWriter) {
				cw.pushPackage("a")
				cw.pushPackage("b")
			},
			wantErr: "package already set: a",
		},
		{
			name:    "package popped without push",
			run:     func(cw *CodeWriter) { cw.popPackage() },
			wantErr: "package not set",
		},
		{
			name:    "type popped from empty stack",
			run:     func(cw *CodeWriter) { cw.popType() },
			wantErr: "type stack is empty",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cw := NewCodeWriter(io.Discard, WriterOptions{})
			tt.run(cw)
			require.Error(t, cw.err)
			assert.True(t, errors.HasAssertionFailure(cw.err), "want assertion failure, got %v", cw.err)
			assert.Contains(t, cw.err.Error(), tt.wantErr)
		})
	}
}

func TestCodeWriterEnsureTrailingNewline(t *testing.T) {
	got, _ := func() (string, *CodeWriter) {
		var sb strings.Builder
		cw := NewCodeWriter(&sb, WriterOptions{})
		require.NoError(t, cw.Render(MustCode("x = 1;"), true))
		return sb.String(), cw
	}()
	assert.Equal(t, "x = 1;\n", got)
}

func TestCodeWriterIndent(t *testing.T) {
	cb, err := NewCodeBuilder().BeginControlFlow("if (x)").AddStatement("y()").EndControlFlow().Build()
	require.NoError(t, err)
	got, _ := render(t, WriterOptions{Indent: "\t"}, cb)
	assert.Equal(t, "if (x) {\n\ty();\n}\n", got)
}
