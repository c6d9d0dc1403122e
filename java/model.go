package java

import "sort"

type Modifier string

const (
	Public       Modifier = "public"
	Protected    Modifier = "protected"
	Private      Modifier = "private"
	Abstract     Modifier = "abstract"
	Default      Modifier = "default"
	Static       Modifier = "static"
	Final        Modifier = "final"
	Transient    Modifier = "transient"
	Volatile     Modifier = "volatile"
	Synchronized Modifier = "synchronized"
	Native       Modifier = "native"
	Strictfp     Modifier = "strictfp"
)

// modifierOrder is the order modifiers are written in.
var modifierOrder = map[Modifier]int{
	Public:       0,
	Protected:    1,
	Private:      2,
	Abstract:     3,
	Default:      4,
	Static:       5,
	Final:        6,
	Transient:    7,
	Volatile:     8,
	Synchronized: 9,
	Native:       10,
	Strictfp:     11,
}

// ParseModifier returns the modifier spelled s.
func ParseModifier(s string) (Modifier, bool) {
	m := Modifier(s)
	_, ok := modifierOrder[m]
	return m, ok
}

// sortedModifiers returns modifiers without duplicates, in source order.
func sortedModifiers(modifiers []Modifier) []Modifier {
	seen := make(map[Modifier]bool, len(modifiers))
	out := make([]Modifier, 0, len(modifiers))
	for _, m := range modifiers {
		if seen[m] {
			continue
		}
		seen[m] = true
		out = append(out, m)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return modifierOrder[out[i]] < modifierOrder[out[j]]
	})
	return out
}

func hasModifier(modifiers []Modifier, m Modifier) bool {
	for _, candidate := range modifiers {
		if candidate == m {
			return true
		}
	}
	return false
}

type TypeKind string

const (
	KindClass      TypeKind = "class"
	KindInterface  TypeKind = "interface"
	KindEnum       TypeKind = "enum"
	KindAnnotation TypeKind = "annotation"
)

// Members of interfaces and annotation types carry these modifiers without
// spelling them out.
var (
	interfaceFieldModifiers  = []Modifier{Public, Static, Final}
	interfaceMethodModifiers = []Modifier{Public, Abstract}
	interfaceTypeModifiers   = []Modifier{Public, Static}
)

func (k TypeKind) implicitFieldModifiers() []Modifier {
	if k == KindInterface || k == KindAnnotation {
		return interfaceFieldModifiers
	}
	return nil
}

func (k TypeKind) implicitMethodModifiers() []Modifier {
	if k == KindInterface || k == KindAnnotation {
		return interfaceMethodModifiers
	}
	return nil
}

func (k TypeKind) implicitTypeModifiers() []Modifier {
	if k == KindInterface || k == KindAnnotation {
		return interfaceTypeModifiers
	}
	return nil
}

// asMemberModifiers are implied when a type of this kind is nested.
func (k TypeKind) asMemberModifiers() []Modifier {
	if k == KindClass {
		return nil
	}
	return []Modifier{Static}
}

// keyword is the declaration keyword of the kind.
func (k TypeKind) keyword() string {
	if k == KindAnnotation {
		return "@interface"
	}
	return string(k)
}
