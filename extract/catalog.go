package extract

import (
	"errors"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/kbolino/go-clay-codegen/ctype"
)

// ErrUnknownSymbol is returned when a name is looked up that the catalog
// does not contain.
var ErrUnknownSymbol = errors.New("unknown symbol")

// Kind is the catalog mapping a symbol belongs to.
type Kind int

const (
	KindStruct Kind = iota + 1
	KindEnum
	KindFunction
)

func (k Kind) String() string {
	switch k {
	case KindStruct:
		return "struct"
	case KindEnum:
		return "enum"
	case KindFunction:
		return "function"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Field is a named member of an anonymous union.
type Field struct {
	Name string
	Type ctype.Type
}

// Member is a struct or union member. Union is non-nil when the member's
// type is an anonymous union, in which case Type is nil. Name is empty for
// unnamed union members.
type Member struct {
	Name  string
	Type  ctype.Type
	Union []Field
}

// IsUnion reports whether m is an anonymous union member.
func (m Member) IsUnion() bool {
	return m.Union != nil
}

type Struct struct {
	Name    string
	Members []Member
	IsUnion bool
}

// Member returns the first member named name.
func (s *Struct) Member(name string) (Member, bool) {
	for _, m := range s.Members {
		if m.Name == name {
			return m, true
		}
	}
	return Member{}, false
}

// Enumerator is an enum constant. Value holds the source text of its
// explicit value and is empty when the value is implied.
type Enumerator struct {
	Name  string
	Value string
}

// HasValue reports whether e was declared with an explicit value.
func (e Enumerator) HasValue() bool {
	return e.Value != ""
}

type Enum struct {
	Name        string
	Enumerators []Enumerator
}

// Names returns the enumerator names in declaration order.
func (e *Enum) Names() []string {
	names := make([]string, len(e.Enumerators))
	for i, en := range e.Enumerators {
		names[i] = en.Name
	}
	return names
}

type Function struct {
	Name string
	Type *ctype.Func
}

// Collision records a name claimed by more than one kind of declaration.
// The first kind keeps the name.
type Collision struct {
	Name    string
	Kept    Kind
	Dropped Kind
}

// Catalog holds every struct, enum and function extracted from one
// translation unit. It is built once and only read afterwards.
type Catalog struct {
	Structs    map[string]*Struct
	Enums      map[string]*Enum
	Functions  map[string]*Function
	Collisions []Collision
}

func NewCatalog() *Catalog {
	return &Catalog{
		Structs:   make(map[string]*Struct),
		Enums:     make(map[string]*Enum),
		Functions: make(map[string]*Function),
	}
}

// Has reports whether name is in any of the three mappings.
func (c *Catalog) Has(name string) bool {
	_, ok := c.kind(name)
	return ok
}

// Kind returns the mapping name belongs to.
func (c *Catalog) Kind(name string) (Kind, error) {
	if k, ok := c.kind(name); ok {
		return k, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrUnknownSymbol, name)
}

func (c *Catalog) kind(name string) (Kind, bool) {
	if _, ok := c.Enums[name]; ok {
		return KindEnum, true
	}
	if _, ok := c.Structs[name]; ok {
		return KindStruct, true
	}
	if _, ok := c.Functions[name]; ok {
		return KindFunction, true
	}
	return 0, false
}

func (c *Catalog) StructNames() []string {
	return sortedKeys(c.Structs)
}

func (c *Catalog) EnumNames() []string {
	return sortedKeys(c.Enums)
}

func (c *Catalog) FunctionNames() []string {
	return sortedKeys(c.Functions)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// claim checks whether name may be stored under kind. A name already held
// by a different kind is not overwritten.
func (c *Catalog) claim(name string, kind Kind) bool {
	held, ok := c.kind(name)
	if !ok || held == kind {
		return true
	}
	logrus.WithFields(logrus.Fields{
		"symbol":  name,
		"kept":    held,
		"dropped": kind,
	}).Warn("symbol declared as more than one kind; keeping the first")
	c.Collisions = append(c.Collisions, Collision{Name: name, Kept: held, Dropped: kind})
	return false
}

func (c *Catalog) addStruct(s *Struct) {
	if c.claim(s.Name, KindStruct) {
		c.Structs[s.Name] = s
	}
}

func (c *Catalog) addEnum(e *Enum) {
	if c.claim(e.Name, KindEnum) {
		c.Enums[e.Name] = e
	}
}

func (c *Catalog) addFunction(f *Function) {
	if c.claim(f.Name, KindFunction) {
		c.Functions[f.Name] = f
	}
}
