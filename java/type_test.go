package java

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeNameString(t *testing.T) {
	nullable := NewAnnotation(NewClassName("com.acme", "Nullable"))
	number := NewClassName("java.lang", "Number")
	outer := NewClassName("com.acme", "Outer")

	extendsNumber, err := SubtypeOf(number)
	require.NoError(t, err)
	superInteger, err := SupertypeOf(integerClass)
	require.NoError(t, err)
	nested, err := MustParameterized(outer, stringClass).NestedClass("Inner", integerClass)
	require.NoError(t, err)
	bounded, err := NewTypeVariable("T", Object, number)
	require.NoError(t, err)

	tests := []struct {
		name string
		typ  TypeName
		want string
	}{
		{name: "keyword", typ: Int, want: "int"},
		{name: "class", typ: stringClass, want: "java.lang.String"},
		{name: "nested class", typ: mapClass.NestedClass("Entry"), want: "java.util.Map.Entry"},
		{name: "default package", typ: NewClassName("", "Foo"), want: "Foo"},
		{
			name: "parameterized",
			typ:  MustParameterized(mapClass, stringClass, MustParameterized(listClass, extendsNumber)),
			want: "java.util.Map<java.lang.String, java.util.List<? extends java.lang.Number>>",
		},
		{name: "super wildcard", typ: superInteger, want: "? super java.lang.Integer"},
		{name: "unbounded wildcard", typ: Unbounded(), want: "?"},
		{name: "array", typ: ArrayOf(ArrayOf(Int)), want: "int[][]"},
		{name: "type variable", typ: bounded, want: "T"},
		{name: "nested parameterized", typ: nested, want: "com.acme.Outer<java.lang.String>.Inner<java.lang.Integer>"},
		{name: "annotated keyword", typ: Annotate(Int, nullable), want: "@com.acme.Nullable int"},
		{name: "annotated class", typ: Annotate(stringClass, nullable), want: "java.lang. @com.acme.Nullable String"},
		{name: "annotated nested class", typ: mapClass.NestedClass("Entry").Annotated(nullable), want: "java.util.Map. @com.acme.Nullable Entry"},
		{name: "annotated array", typ: Annotate(ArrayOf(Int), nullable), want: "int @com.acme.Nullable []"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.typ.String())
		})
	}
}

func TestTypeVariableDropsObjectBound(t *testing.T) {
	v, err := NewTypeVariable("T", Object)
	require.NoError(t, err)
	assert.Empty(t, v.Bounds())

	_, err = NewTypeVariable("T", Int)
	assert.True(t, errors.Is(err, ErrInvalidType))
}

func TestTypeNamesEqual(t *testing.T) {
	assert.True(t, TypeNamesEqual(NewClassName("java.lang", "String"), stringClass))
	assert.True(t, TypeNamesEqual(MustParameterized(listClass, stringClass), MustParameterized(listClass, stringClass)))
	assert.False(t, TypeNamesEqual(MustParameterized(listClass, stringClass), MustParameterized(listClass, integerClass)))
	assert.False(t, TypeNamesEqual(listClass, nil))
	assert.True(t, TypeNamesEqual(nil, nil))
	assert.False(t, TypeNamesEqual(Int, Annotate(Int, NewAnnotation(NewClassName("com.acme", "Nullable")))))
}

func TestInvalidTypeNames(t *testing.T) {
	tests := []struct {
		name string
		make func() error
	}{
		{name: "no type arguments", make: func() error {
			_, err := NewParameterizedTypeName(listClass)
			return err
		}},
		{name: "primitive type argument", make: func() error {
			_, err := NewParameterizedTypeName(listClass, Int)
			return err
		}},
		{name: "primitive wildcard bound", make: func() error {
			_, err := SubtypeOf(Int)
			return err
		}},
		{name: "void wildcard bound", make: func() error {
			_, err := SupertypeOf(Void)
			return err
		}},
		{name: "nil type argument", make: func() error {
			_, err := NewParameterizedTypeName(listClass, (*ClassName)(nil))
			return err
		}},
		{name: "nil raw type", make: func() error {
			_, err := NewParameterizedTypeName(nil, stringClass)
			return err
		}},
		{name: "nil wildcard bound", make: func() error {
			_, err := SubtypeOf((*ClassName)(nil))
			return err
		}},
		{name: "nil type variable bound", make: func() error {
			_, err := NewTypeVariable("T", (*ParameterizedTypeName)(nil))
			return err
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.make()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidType))
		})
	}
}

func TestBoxing(t *testing.T) {
	assert.Equal(t, "java.lang.Integer", Box(Int).String())
	assert.Equal(t, "java.lang.Void", Box(Void).String())
	assert.Equal(t, "java.lang.Character", Box(Char).String())
	assert.Same(t, listClass, Box(listClass).(*ClassName))

	k, ok := Unbox(integerClass)
	require.True(t, ok)
	assert.Same(t, Int, k)
	_, ok = Unbox(stringClass)
	assert.False(t, ok)

	assert.True(t, IsBoxedPrimitive(integerClass))
	assert.False(t, IsBoxedPrimitive(NewClassName("java.lang", "Void")))
	assert.True(t, IsPrimitive(Boolean))
	assert.False(t, IsPrimitive(Void))

	nullable := NewAnnotation(NewClassName("com.acme", "Nullable"))
	assert.Equal(t, "java.lang. @com.acme.Nullable Integer", Box(Annotate(Int, nullable)).String())
}

func TestClassNameAccessors(t *testing.T) {
	entry := NewClassName("java.util", "Map", "Entry")
	assert.Equal(t, "java.util", entry.PackageName())
	assert.Equal(t, "Entry", entry.SimpleName())
	assert.Equal(t, []string{"Map", "Entry"}, entry.SimpleNames())
	assert.Equal(t, "java.util.Map$Entry", entry.ReflectionName())
	assert.Equal(t, "java.util.Map", entry.TopLevelClassName().CanonicalName())
	assert.Equal(t, "java.util.Map.Builder", entry.PeerClass("Builder").CanonicalName())
	assert.Equal(t, mapClass.CanonicalName(), entry.EnclosingClassName().CanonicalName())

	assert.Negative(t, CompareClassNames(listClass, mapClass))
	assert.Zero(t, CompareClassNames(listClass, NewClassName("java.util", "List")))
}
