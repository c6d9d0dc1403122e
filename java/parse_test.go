package java

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBestGuess(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantPackage string
		wantNames   []string
	}{
		{name: "top level", input: "java.lang.String", wantPackage: "java.lang", wantNames: []string{"String"}},
		{name: "nested", input: "java.util.Map.Entry", wantPackage: "java.util", wantNames: []string{"Map", "Entry"}},
		{name: "default package", input: "Foo", wantPackage: "", wantNames: []string{"Foo"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := BestGuess(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPackage, c.PackageName())
			assert.Equal(t, tt.wantNames, c.SimpleNames())
			assert.Equal(t, tt.input, c.CanonicalName())
		})
	}

	for _, bad := range []string{"com.example", "java.util.Map.entry", "", "com.Example.9"} {
		t.Run("invalid "+bad, func(t *testing.T) {
			_, err := BestGuess(bad)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidType))
		})
	}
}

func TestParseTypeName(t *testing.T) {
	tests := []struct {
		expr          string
		typeVariables []string
		want          string
	}{
		{expr: "int", want: "int"},
		{expr: "void", want: "void"},
		{expr: "int[][]", want: "int[][]"},
		{expr: "java.lang.String", want: "java.lang.String"},
		{expr: "java.util.List<?>", want: "java.util.List<?>"},
		{
			expr:          "java.util.Map<java.lang.String, java.util.List<? extends T>>",
			typeVariables: []string{"T"},
			want:          "java.util.Map<java.lang.String, java.util.List<? extends T>>",
		},
		{expr: "java.util.Comparator<? super java.lang.Integer>", want: "java.util.Comparator<? super java.lang.Integer>"},
		{
			expr:          "java.util.Map.Entry<K, V>[]",
			typeVariables: []string{"K", "V"},
			want:          "java.util.Map.Entry<K, V>[]",
		},
		{
			expr: "com.acme.Outer<java.lang.String>.Inner<java.lang.Integer>",
			want: "com.acme.Outer<java.lang.String>.Inner<java.lang.Integer>",
		},
		{expr: " java.util.List< java.lang.String > ", want: "java.util.List<java.lang.String>"},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := ParseTypeName(tt.expr, tt.typeVariables...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestParseTypeNameKinds(t *testing.T) {
	got := MustParseTypeName("T", "T")
	_, ok := got.(*TypeVariableName)
	assert.True(t, ok, "T is a type variable")

	got = MustParseTypeName("long")
	assert.Same(t, Long, got)
}

func TestParseTypeNameErrors(t *testing.T) {
	tests := []struct {
		expr    string
		wantErr string
	}{
		{expr: "java.util.List<", wantErr: `cannot parse type "java.util.List<": expected a name, found ""`},
		{expr: "java.util.List<java.lang.String>>", wantErr: `cannot parse type "java.util.List<java.lang.String>>": unexpected ">"`},
		{expr: "java.util.list", wantErr: "couldn't make a guess for java.util.list"},
		{expr: "java.util.List<int>", wantErr: "invalid type parameter: int"},
		{expr: "int[", wantErr: `expected "]" at end`},
		{expr: "", wantErr: `expected a name, found ""`},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			_, err := ParseTypeName(tt.expr)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidType))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
	assert.Panics(t, func() { MustParseTypeName("java.util.list") })
}
