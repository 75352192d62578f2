package odin

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/kbolino/go-clay-codegen/ctype"
	"github.com/kbolino/go-clay-codegen/emit"
	"github.com/kbolino/go-clay-codegen/extract"
)

type resolver struct {
	cat       *extract.Catalog
	overrides *emit.Overrides
	namer     *emit.Namer
}

// member resolves the type of a struct member or function parameter.
// table holds per-symbol overrides keyed by symbol, then member name; a
// match there is used verbatim unless a complete override claims the C
// type first.
func (r *resolver) member(symbol, member string, t ctype.Type, table map[string]map[string]string) (string, bool) {
	if t != nil {
		if repl, ok := r.overrides.CompleteOverride(t.String()); ok {
			return repl.Target, !repl.Absent()
		}
	}
	if target, ok := emit.Lookup(table, symbol, member); ok {
		return target, true
	}
	return r.resolve(t)
}

// resolve maps a C type to an Odin type. The boolean is false when no
// mapping exists.
func (r *resolver) resolve(t ctype.Type) (string, bool) {
	if t == nil {
		return "", false
	}
	key := t.String()
	if repl, ok := r.overrides.CompleteOverride(key); ok {
		return repl.Target, !repl.Absent()
	}
	if target, ok := r.overrides.Types[key]; ok {
		return target, true
	}
	switch x := t.(type) {
	case ctype.Named:
		if !r.cat.Has(x.Name) {
			break
		}
		name, err := r.namer.Name(x.Name)
		if err != nil {
			break
		}
		return name, true
	case ctype.Pointer:
		if fn, ok := x.Elem.(*ctype.Func); ok {
			// Odin procedure values are already pointers.
			return r.proc(fn)
		}
		if elem, ok := r.resolve(x.Elem); ok {
			return "^" + elem, true
		}
	case ctype.Qualified:
		return r.resolve(x.Elem)
	case ctype.Array:
		if x.Len == "" {
			break
		}
		if elem, ok := r.resolve(x.Elem); ok {
			return "[" + x.Len + "]" + elem, true
		}
	case *ctype.Func:
		return r.proc(x)
	}
	logrus.WithField("type", key).Debug("no mapping for type")
	return "", false
}

func (r *resolver) proc(fn *ctype.Func) (string, bool) {
	if fn.Variadic {
		return "", false
	}
	params := make([]string, 0, len(fn.Params))
	for _, p := range fn.Params {
		pt, ok := r.resolve(p.Type)
		if !ok {
			return "", false
		}
		params = append(params, p.Name+": "+pt)
	}
	ret, ok := r.resolve(fn.Return)
	if !ok {
		return "", false
	}
	return `proc "c" (` + strings.Join(params, ", ") + `)` + returnSuffix(ret), true
}

func returnSuffix(ret string) string {
	if ret == "void" {
		return ""
	}
	return " -> " + ret
}
