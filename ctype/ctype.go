// Package ctype models C type names as they appear in declarations: a base
// name wrapped in qualifiers, pointers, arrays and function types.
package ctype

import "strings"

// Type is a C type name. A nil Type means the declaration could not be
// resolved to anything this package can represent.
type Type interface {
	// String renders the type with qualifiers and pointer markers written
	// before the base name, innermost decoration first, e.g. "const *char"
	// for "const char *".
	String() string
	isType()
}

// Named is a base type: a keyword list, a typedef name or an aggregate tag.
type Named struct {
	Name string
}

// Qualified wraps a type with qualifier words such as const.
type Qualified struct {
	Qualifiers []string
	Elem       Type
}

// Pointer is one level of indirection.
type Pointer struct {
	Elem Type
}

// Array is an array declarator. Len holds the length expression and is
// empty for arrays of unspecified length.
type Array struct {
	Elem Type
	Len  string
}

// Func is a function type, used for function declarations and for
// function pointer members and parameters.
type Func struct {
	Return   Type
	Params   []Param
	Variadic bool
}

// Param is a named function parameter.
type Param struct {
	Name string
	Type Type
}

func (Named) isType()     {}
func (Qualified) isType() {}
func (Pointer) isType()   {}
func (Array) isType()     {}
func (*Func) isType()     {}

func (n Named) String() string { return n.Name }

func (q Qualified) String() string { return format(q) }

func (p Pointer) String() string { return format(p) }

func (a Array) String() string { return format(a) }

func (f *Func) String() string {
	var b strings.Builder
	b.WriteString("func(")
	for i, p := range f.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.Name)
		b.WriteRune(' ')
		b.WriteString(String(p.Type))
	}
	if f.Variadic {
		if len(f.Params) > 0 {
			b.WriteString(", ")
		}
		b.WriteString("...")
	}
	b.WriteString(") ")
	b.WriteString(String(f.Return))
	return b.String()
}

// String is like t.String but renders a nil Type as "unknown".
func String(t Type) string {
	if t == nil {
		return "unknown"
	}
	return t.String()
}

// format unwraps decorations outside-in and writes them back in reverse, so
// the decoration nearest the base name comes first.
func format(t Type) string {
	var decorations []string
	for {
		switch x := t.(type) {
		case Qualified:
			decorations = append(decorations, strings.Join(x.Qualifiers, " ")+" ")
			t = x.Elem
			continue
		case Pointer:
			decorations = append(decorations, "*")
			t = x.Elem
			continue
		case Array:
			decorations = append(decorations, "["+x.Len+"]")
			t = x.Elem
			continue
		}
		break
	}
	var b strings.Builder
	for i := len(decorations) - 1; i >= 0; i-- {
		b.WriteString(decorations[i])
	}
	b.WriteString(String(t))
	return b.String()
}

// Unqualified strips any qualifier wrappers from the outside of t.
func Unqualified(t Type) Type {
	for {
		q, ok := t.(Qualified)
		if !ok {
			return t
		}
		t = q.Elem
	}
}

// Qualify wraps t in qualifiers, or returns t unchanged if there are none.
func Qualify(t Type, qualifiers ...string) Type {
	if t == nil || len(qualifiers) == 0 {
		return t
	}
	return Qualified{Qualifiers: qualifiers, Elem: t}
}

// PointerTo wraps t in levels pointers. A nil t stays nil.
func PointerTo(t Type, levels int) Type {
	if t == nil {
		return nil
	}
	for i := 0; i < levels; i++ {
		t = Pointer{Elem: t}
	}
	return t
}
