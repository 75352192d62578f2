package emit

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Replacement is the target of a complete override. The zero value means the
// symbol has no binding at all.
type Replacement struct {
	Target string
}

// Replace returns a Replacement with the given target.
func Replace(target string) Replacement {
	return Replacement{Target: target}
}

// Absent reports whether the symbol is suppressed rather than replaced.
func (r Replacement) Absent() bool {
	return r.Target == ""
}

// UnmarshalYAML decodes a plain string. A null value never reaches this
// method and decodes to the zero Replacement.
func (r *Replacement) UnmarshalYAML(value *yaml.Node) error {
	var target string
	if err := value.Decode(&target); err != nil {
		return err
	}
	*r = Replacement{Target: target}
	return nil
}

func (r Replacement) MarshalYAML() (interface{}, error) {
	if r.Absent() {
		return nil, nil
	}
	return r.Target, nil
}

// EnumMember is an enumerator that exists only in the binding.
type EnumMember struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

// Overrides holds the hand-maintained tables that steer emission for one
// target. Nested maps are keyed by C symbol, then by member or parameter
// name. An Overrides is not modified once built; Merge and Suppress return
// new values.
type Overrides struct {
	// Prefix is stripped from C symbol names to form binding names.
	Prefix string `yaml:"prefix"`
	// Names replaces the binding name of a symbol.
	Names map[string]string `yaml:"names"`
	// Complete replaces every use of a C type, or suppresses it.
	Complete map[string]Replacement `yaml:"complete"`
	// Types maps C type names to target type names.
	Types             map[string]string            `yaml:"types"`
	StructMemberTypes map[string]map[string]string `yaml:"struct_member_types"`
	StructMemberNames map[string]map[string]string `yaml:"struct_member_names"`
	// FixedArrayStructs are emitted as [N]T when all members share a type.
	FixedArrayStructs []string `yaml:"fixed_array_structs"`
	// PascalEnums have their enumerators converted from UPPER_SNAKE_CASE.
	PascalEnums      []string                     `yaml:"pascal_enums"`
	EnumMemberNames  map[string]map[string]string `yaml:"enum_member_names"`
	EnumExtraMembers map[string][]EnumMember      `yaml:"enum_extra_members"`
	FuncParamNames   map[string]map[string]string `yaml:"func_param_names"`
	FuncParamTypes   map[string]map[string]string `yaml:"func_param_types"`
}

// LoadOverrides reads overrides from a YAML file. Unknown keys are an error.
func LoadOverrides(fileName string) (*Overrides, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()
	return DecodeOverrides(file)
}

// DecodeOverrides reads overrides from YAML. An empty document yields empty
// overrides.
func DecodeOverrides(r io.Reader) (*Overrides, error) {
	o := &Overrides{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(o); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding overrides: %w", err)
	}
	return o, nil
}

// Merge returns a copy of o with the entries of other layered on top. A
// non-empty other.Prefix replaces o.Prefix; list entries are added if not
// already present.
func (o *Overrides) Merge(other *Overrides) *Overrides {
	merged := o.clone()
	if other == nil {
		return merged
	}
	if other.Prefix != "" {
		merged.Prefix = other.Prefix
	}
	merged.Names = mergeMap(merged.Names, other.Names)
	merged.Complete = mergeMap(merged.Complete, other.Complete)
	merged.Types = mergeMap(merged.Types, other.Types)
	merged.StructMemberTypes = mergeNested(merged.StructMemberTypes, other.StructMemberTypes)
	merged.StructMemberNames = mergeNested(merged.StructMemberNames, other.StructMemberNames)
	merged.FixedArrayStructs = mergeList(merged.FixedArrayStructs, other.FixedArrayStructs)
	merged.PascalEnums = mergeList(merged.PascalEnums, other.PascalEnums)
	merged.EnumMemberNames = mergeNested(merged.EnumMemberNames, other.EnumMemberNames)
	merged.EnumExtraMembers = mergeMap(merged.EnumExtraMembers, other.EnumExtraMembers)
	merged.FuncParamNames = mergeNested(merged.FuncParamNames, other.FuncParamNames)
	merged.FuncParamTypes = mergeNested(merged.FuncParamTypes, other.FuncParamTypes)
	return merged
}

// Suppress returns a copy of o in which each of names has no binding.
func (o *Overrides) Suppress(names ...string) *Overrides {
	complete := make(map[string]Replacement, len(names))
	for _, name := range names {
		complete[name] = Replacement{}
	}
	return o.Merge(&Overrides{Complete: complete})
}

// CompleteOverride returns the complete override for a C type name.
func (o *Overrides) CompleteOverride(name string) (Replacement, bool) {
	r, ok := o.Complete[name]
	return r, ok
}

func (o *Overrides) IsFixedArray(name string) bool {
	return contains(o.FixedArrayStructs, name)
}

func (o *Overrides) IsPascalEnum(name string) bool {
	return contains(o.PascalEnums, name)
}

// Lookup returns table[symbol][member].
func Lookup(table map[string]map[string]string, symbol, member string) (string, bool) {
	v, ok := table[symbol][member]
	return v, ok
}

func (o *Overrides) clone() *Overrides {
	return &Overrides{
		Prefix:            o.Prefix,
		Names:             mergeMap(nil, o.Names),
		Complete:          mergeMap(nil, o.Complete),
		Types:             mergeMap(nil, o.Types),
		StructMemberTypes: mergeNested(nil, o.StructMemberTypes),
		StructMemberNames: mergeNested(nil, o.StructMemberNames),
		FixedArrayStructs: mergeList(nil, o.FixedArrayStructs),
		PascalEnums:       mergeList(nil, o.PascalEnums),
		EnumMemberNames:   mergeNested(nil, o.EnumMemberNames),
		EnumExtraMembers:  mergeMap(nil, o.EnumExtraMembers),
		FuncParamNames:    mergeNested(nil, o.FuncParamNames),
		FuncParamTypes:    mergeNested(nil, o.FuncParamTypes),
	}
}

func mergeMap[V any](dst, src map[string]V) map[string]V {
	out := make(map[string]V, len(dst)+len(src))
	for k, v := range dst {
		out[k] = v
	}
	for k, v := range src {
		out[k] = v
	}
	return out
}

func mergeNested(dst, src map[string]map[string]string) map[string]map[string]string {
	out := make(map[string]map[string]string, len(dst)+len(src))
	for k, v := range dst {
		out[k] = mergeMap(nil, v)
	}
	for k, v := range src {
		out[k] = mergeMap(out[k], v)
	}
	return out
}

func mergeList(dst, src []string) []string {
	out := make([]string, 0, len(dst)+len(src))
	for _, s := range dst {
		if !contains(out, s) {
			out = append(out, s)
		}
	}
	for _, s := range src {
		if !contains(out, s) {
			out = append(out, s)
		}
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
