package java

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

// ErrUnknownTag is returned by NameAllocator.Get for a tag that was never
// given a name.
var ErrUnknownTag = errors.New("unknown tag")

// NameAllocator hands out identifiers that do not collide with each other or
// with Java keywords. Names are looked up again by the tag they were
// allocated for:
//
//	names := java.NewNameAllocator()
//	names.NewName("client", clientField)
//	names.NewName("client", clientParam) // "client_"
//	names.Get(clientParam)               // "client_"
//
// A NameAllocator is not safe for concurrent use.
type NameAllocator struct {
	allocated map[string]bool
	tagToName map[any]string
}

func NewNameAllocator() *NameAllocator {
	return &NameAllocator{
		allocated: map[string]bool{},
		tagToName: map[any]string{},
	}
}

// NewName allocates a name based on suggestion for tag. A nil tag is
// replaced by a random one, so the name can only be used once.
// Tags must be comparable.
func (n *NameAllocator) NewName(suggestion string, tag any) (string, error) {
	if tag == nil {
		tag = uuid.NewString()
	}
	if existing, ok := n.tagToName[tag]; ok {
		return "", errors.Newf("tag %v cannot be used for both '%s' and '%s'", tag, existing, suggestion)
	}
	name := ToJavaIdentifier(suggestion)
	for IsKeyword(name) || n.allocated[name] {
		name += "_"
	}
	n.allocated[name] = true
	n.tagToName[tag] = name
	return name, nil
}

// Get returns the name allocated for tag.
func (n *NameAllocator) Get(tag any) (string, error) {
	name, ok := n.tagToName[tag]
	if !ok {
		return "", errors.Wrapf(ErrUnknownTag, "%v", tag)
	}
	return name, nil
}

// Clone returns an allocator with the same names. Names allocated in
// either one afterwards are not seen by the other.
func (n *NameAllocator) Clone() *NameAllocator {
	c := NewNameAllocator()
	for name := range n.allocated {
		c.allocated[name] = true
	}
	for tag, name := range n.tagToName {
		c.tagToName[tag] = name
	}
	return c
}

// ToJavaIdentifier replaces the characters of suggestion that cannot appear
// in an identifier with '_'. A leading character that can only continue an
// identifier, like a digit, gets a '_' in front.
func ToJavaIdentifier(suggestion string) string {
	var sb strings.Builder
	first := true
	for _, r := range suggestion {
		if first && !isJavaIdentifierStart(r) && isJavaIdentifierPart(r) {
			sb.WriteByte('_')
		}
		first = false
		if isJavaIdentifierPart(r) {
			sb.WriteRune(r)
		} else {
			sb.WriteByte('_')
		}
	}
	return sb.String()
}
