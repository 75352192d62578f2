package emit

import (
	"strings"

	"github.com/kbolino/go-clay-codegen/extract"
)

// Namer maps C symbols to binding names.
type Namer struct {
	cat       *extract.Catalog
	overrides *Overrides
}

func NewNamer(cat *extract.Catalog, overrides *Overrides) *Namer {
	return &Namer{cat: cat, overrides: overrides}
}

// Name returns the binding name of symbol: its Names override if it has
// one, otherwise symbol without the prefix. Enums also lose one leading
// underscore, so private enums are bound as public types. A symbol missing
// from the catalog is an error wrapping extract.ErrUnknownSymbol.
func (n *Namer) Name(symbol string) (string, error) {
	if name, ok := n.overrides.Names[symbol]; ok {
		return name, nil
	}
	kind, err := n.cat.Kind(symbol)
	if err != nil {
		return "", err
	}
	name := strings.TrimPrefix(symbol, n.overrides.Prefix)
	if kind == extract.KindEnum {
		name = strings.TrimPrefix(name, "_")
	}
	return name, nil
}

// IsPrivate reports whether symbol uses the private prefix, e.g. Clay__.
func (n *Namer) IsPrivate(symbol string) bool {
	return strings.HasPrefix(symbol, n.overrides.Prefix+"_")
}
