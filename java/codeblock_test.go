package java

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	systemClass  = NewClassName("java.lang", "System")
	stringClass  = NewClassName("java.lang", "String")
	integerClass = NewClassName("java.lang", "Integer")
	listClass    = NewClassName("java.util", "List")
	mapClass     = NewClassName("java.util", "Map")
	mathClass    = NewClassName("java.lang", "Math")
)

func TestCodeBlockRender(t *testing.T) {
	tests := []struct {
		name string
		code func() (CodeBlock, error)
		want string
	}{
		{
			name: "relative arguments",
			code: func() (CodeBlock, error) { return NewCode("$T.out.println($S)", systemClass, "hi") },
			want: `java.lang.System.out.println("hi")`,
		},
		{
			name: "indexed argument reused",
			code: func() (CodeBlock, error) { return NewCode("$1T.out.println($1S)", systemClass) },
			want: `java.lang.System.out.println("java.lang.System")`,
		},
		{
			name: "indexed arguments out of order",
			code: func() (CodeBlock, error) { return NewCode("$2L $1L $2L", "a", "b") },
			want: "b a b",
		},
		{
			name: "named argument",
			code: func() (CodeBlock, error) {
				return NewNamedCode("$clazz:T\n", map[string]any{"clazz": integerClass})
			},
			want: "java.lang.Integer\n",
		},
		{
			name: "named arguments mixed with text",
			code: func() (CodeBlock, error) {
				return NewNamedCode("$count:L $food:L taste $adj:L!", map[string]any{
					"count": 3,
					"food":  "tacos",
					"adj":   "great",
				})
			},
			want: "3 tacos taste great!",
		},
		{
			name: "dollar sign",
			code: func() (CodeBlock, error) { return NewCode("cost: $$$L", 5) },
			want: "cost: $5",
		},
		{
			name: "null string",
			code: func() (CodeBlock, error) { return NewCode("$S", nil) },
			want: "null",
		},
		{
			name: "null literal",
			code: func() (CodeBlock, error) { return NewCode("$L", nil) },
			want: "null",
		},
		{
			name: "escaped string",
			code: func() (CodeBlock, error) { return NewCode("$S", "a\"b\\c\td'") },
			want: `"a\"b\\c\td'"`,
		},
		{
			name: "multi-line string",
			code: func() (CodeBlock, error) { return NewCode("$S", "line1\nline2") },
			want: "\"line1\\n\"\n    + \"line2\"",
		},
		{
			name: "name of a declaration",
			code: func() (CodeBlock, error) { return NewCode("this.$N = $N", NewField(Int, "count"), "count") },
			want: "this.count = count",
		},
		{
			name: "nested code block",
			code: func() (CodeBlock, error) { return NewCode("($L)", MustCode("$T", listClass)) },
			want: "(java.util.List)",
		},
		{
			name: "parameterized type",
			code: func() (CodeBlock, error) {
				return NewCode("$T", MustParameterized(mapClass, stringClass, ArrayOf(Int)))
			},
			want: "java.util.Map<java.lang.String, int[]>",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cb, err := tt.code()
			require.NoError(t, err)
			got, err := cb.Render()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCodeBlockTemplateErrors(t *testing.T) {
	tests := []struct {
		name    string
		code    func() (CodeBlock, error)
		wantErr string
	}{
		{
			name:    "index out of range",
			code:    func() (CodeBlock, error) { return NewCode("$1L $2L", "a") },
			wantErr: "index 2 for '$2L' not in range (received 1 arguments)",
		},
		{
			name:    "index zero",
			code:    func() (CodeBlock, error) { return NewCode("$0L", "a") },
			wantErr: "index 0 for '$0L' not in range (received 1 arguments)",
		},
		{
			name:    "too few arguments",
			code:    func() (CodeBlock, error) { return NewCode("$L $L", "a") },
			wantErr: "index 2 for '$L' not in range (received 1 arguments)",
		},
		{
			name:    "mixed indexed and relative",
			code:    func() (CodeBlock, error) { return NewCode("$L $1L", "a", "b") },
			wantErr: "cannot mix indexed and positional parameters",
		},
		{
			name:    "unused relative arguments",
			code:    func() (CodeBlock, error) { return NewCode("$L", "a", "b") },
			wantErr: "unused arguments: expected 1, received 2",
		},
		{
			name:    "unused indexed argument",
			code:    func() (CodeBlock, error) { return NewCode("$1L $1L", "a", "b") },
			wantErr: "unused argument: $2",
		},
		{
			name:    "unused indexed arguments",
			code:    func() (CodeBlock, error) { return NewCode("$2L", "a", "b", "c") },
			wantErr: "unused arguments: $1, $3",
		},
		{
			name:    "indexed no-arg directive",
			code:    func() (CodeBlock, error) { return NewCode("$1$") },
			wantErr: "$$, $>, $<, $[, $], $W, and $Z may not have an index",
		},
		{
			name:    "dangling dollar",
			code:    func() (CodeBlock, error) { return NewCode("abc$") },
			wantErr: "dangling format characters in 'abc$'",
		},
		{
			name:    "unknown directive",
			code:    func() (CodeBlock, error) { return NewCode("$X", "a") },
			wantErr: "invalid format string: '$X'",
		},
		{
			name:    "type directive with a string",
			code:    func() (CodeBlock, error) { return NewCode("$T", "notatype") },
			wantErr: "expected type but was notatype",
		},
		{
			name:    "name directive with a number",
			code:    func() (CodeBlock, error) { return NewCode("$N", 42) },
			wantErr: "expected name but was 42",
		},
		{
			name: "uppercase argument name",
			code: func() (CodeBlock, error) {
				return NewNamedCode("$Name:L", map[string]any{"Name": 1})
			},
			wantErr: "argument 'Name' must start with a lowercase character",
		},
		{
			name: "missing named argument",
			code: func() (CodeBlock, error) {
				return NewNamedCode("$missing:L", map[string]any{"x": 1})
			},
			wantErr: "Missing named argument for $missing",
		},
		{
			name: "named dangling dollar",
			code: func() (CodeBlock, error) {
				return NewNamedCode("hello $", map[string]any{})
			},
			wantErr: "dangling $ at end",
		},
		{
			name:    "nil class pointer",
			code:    func() (CodeBlock, error) { return NewCode("$T x;", (*ClassName)(nil)) },
			wantErr: "expected type but was <nil>",
		},
		{
			name: "nil named type",
			code: func() (CodeBlock, error) {
				return NewNamedCode("$type:T.out", map[string]any{"type": (*ArrayTypeName)(nil)})
			},
			wantErr: "expected type but was <nil>",
		},
		{
			name: "named unknown directive",
			code: func() (CodeBlock, error) {
				return NewNamedCode("$X", map[string]any{})
			},
			wantErr: "unknown format $X at 1 in '$X'",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.code()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidTemplate), "want ErrInvalidTemplate, got %v", err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCodeBlockStatementErrorsAtRender(t *testing.T) {
	// Statement brackets are only checked when the block is written.
	cb, err := NewCode("$[$[")
	require.NoError(t, err)

	_, err = cb.Render()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrState))
	assert.Contains(t, err.Error(), "statement enter $[ followed by statement enter $[")
	assert.Panics(t, func() { _ = cb.String() })

	cb, err = NewCode("$]")
	require.NoError(t, err)
	_, err = cb.Render()
	assert.True(t, errors.Is(err, ErrState))
}

func TestCodeBuilder(t *testing.T) {
	t.Run("control flow", func(t *testing.T) {
		cb, err := NewCodeBuilder().
			BeginControlFlow("if ($N > 0)", "x").
			AddStatement("return $L", 1).
			NextControlFlow("else").
			AddStatement("return $L", 0).
			EndControlFlow().
			Build()
		require.NoError(t, err)
		assert.Equal(t, "if (x > 0) {\n  return 1;\n} else {\n  return 0;\n}\n", cb.String())
	})

	t.Run("do while", func(t *testing.T) {
		cb, err := NewCodeBuilder().
			BeginControlFlow("do").
			AddStatement("i++").
			EndControlFlowWith("while (i < $L)", 10).
			Build()
		require.NoError(t, err)
		assert.Equal(t, "do {\n  i++;\n} while (i < 10);\n", cb.String())
	})

	t.Run("first error sticks", func(t *testing.T) {
		b := NewCodeBuilder().Add("$T", "bad").AddStatement("ok()")
		require.Error(t, b.Err())
		_, err := b.Build()
		assert.True(t, errors.Is(err, ErrInvalidTemplate))
	})

	t.Run("to builder copies", func(t *testing.T) {
		base := MustCode("a")
		cb, err := base.ToBuilder().Add("b").Build()
		require.NoError(t, err)
		assert.Equal(t, "ab", cb.String())
		assert.Equal(t, "a", base.String())
	})

	t.Run("empty", func(t *testing.T) {
		assert.True(t, NewCodeBuilder().IsEmpty())
		assert.True(t, CodeBlock{}.IsEmpty())
		assert.False(t, MustCode("x").IsEmpty())
	})
}

func TestJoinCode(t *testing.T) {
	cb, err := JoinCode([]CodeBlock{MustCode("$S", "a"), MustCode("$L", 1), MustCode("$T", listClass)}, ", ")
	require.NoError(t, err)
	assert.Equal(t, `"a", 1, java.util.List`, cb.String())

	_, err = JoinCode(nil, "$L")
	assert.True(t, errors.Is(err, ErrInvalidTemplate))
}
