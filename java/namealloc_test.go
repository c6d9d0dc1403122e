package java

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNameAllocator(t *testing.T) {
	names := NewNameAllocator()

	tests := []struct {
		suggestion string
		tag        any
		want       string
	}{
		{suggestion: "foo", tag: 1, want: "foo"},
		{suggestion: "foo", tag: 2, want: "foo_"},
		{suggestion: "public", tag: 3, want: "public_"},
		{suggestion: "a-b", tag: 4, want: "a_b"},
		{suggestion: "1abc", tag: 5, want: "_1abc"},
		{suggestion: "foo", tag: 6, want: "foo__"},
	}
	for _, tt := range tests {
		t.Run(tt.suggestion, func(t *testing.T) {
			got, err := names.NewName(tt.suggestion, tt.tag)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			byTag, err := names.Get(tt.tag)
			require.NoError(t, err)
			assert.Equal(t, tt.want, byTag)
		})
	}
}

func TestNameAllocatorTagReuse(t *testing.T) {
	names := NewNameAllocator()
	_, err := names.NewName("foo", "t")
	require.NoError(t, err)
	_, err = names.NewName("bar", "t")
	require.Error(t, err)
	assert.Equal(t, "tag t cannot be used for both 'foo' and 'bar'", err.Error())
}

func TestNameAllocatorUntagged(t *testing.T) {
	names := NewNameAllocator()
	first, err := names.NewName("x", nil)
	require.NoError(t, err)
	second, err := names.NewName("x", nil)
	require.NoError(t, err)
	assert.Equal(t, "x", first)
	assert.Equal(t, "x_", second)
}

func TestNameAllocatorUnknownTag(t *testing.T) {
	_, err := NewNameAllocator().Get("missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownTag))
}

func TestNameAllocatorClone(t *testing.T) {
	names := NewNameAllocator()
	_, err := names.NewName("client", "a")
	require.NoError(t, err)

	clone := names.Clone()
	got, err := clone.NewName("client", "b")
	require.NoError(t, err)
	assert.Equal(t, "client_", got)

	got, err = names.NewName("client", "b")
	require.NoError(t, err)
	assert.Equal(t, "client_", got, "the original does not see names allocated in the clone")

	name, err := clone.Get("a")
	require.NoError(t, err)
	assert.Equal(t, "client", name)
}

func TestIdentifiers(t *testing.T) {
	assert.True(t, IsValidName("java.util"))
	assert.True(t, IsValidName("$proxy"))
	assert.False(t, IsValidName("class"))
	assert.False(t, IsValidName("a..b"))
	assert.False(t, IsValidName(""))
	assert.True(t, IsIdentifier("_"))
	assert.True(t, IsKeyword("_"))
	assert.False(t, IsIdentifier("9lives"))
	assert.Equal(t, "", ToJavaIdentifier(""))
	assert.Equal(t, "hello_world", ToJavaIdentifier("hello world"))
}
