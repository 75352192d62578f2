package odin

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/kbolino/go-clay-codegen/ctype"
	"github.com/kbolino/go-clay-codegen/emit"
)

func (g *Generator) generateFunctions() error {
	for _, name := range g.cat.FunctionNames() {
		if !g.include(name) {
			continue
		}
		section := sectionPublicFunctions
		if g.namer.IsPrivate(name) {
			section = sectionPrivateFunctions
		}
		binding, err := g.namer.Name(name)
		if err != nil {
			return fmt.Errorf("naming function %s: %w", name, err)
		}
		g.write(section, g.function(name, binding))
	}
	return nil
}

// function returns the declaration line for one function, or a placeholder
// comment if its return type or any parameter type has no mapping.
func (g *Generator) function(name, binding string) string {
	fn := g.cat.Functions[name].Type
	log := logrus.WithField("symbol", name)
	if fn.Variadic {
		log.Debug("variadic functions are not bound")
		return fmt.Sprintf("    // %s (variadic) - has no mapping", name)
	}
	ret, ok := g.resolver.member(name, "", fn.Return, nil)
	if !ok {
		log.WithField("type", ctype.String(fn.Return)).Debug("no mapping for return type")
		return fmt.Sprintf("    // %s (%s) - has no mapping", name, ctype.String(fn.Return))
	}
	params := make([]string, 0, len(fn.Params))
	for _, p := range fn.Params {
		t, ok := g.resolver.member(name, p.Name, p.Type, g.overrides.FuncParamTypes)
		if !ok {
			log.WithFields(logrus.Fields{
				"param": p.Name,
				"type":  ctype.String(p.Type),
			}).Debug("no mapping for parameter")
			return fmt.Sprintf("    // %s - has no mapping", name)
		}
		paramName := p.Name
		if override, ok := emit.Lookup(g.overrides.FuncParamNames, name, p.Name); ok {
			paramName = override
		}
		params = append(params, paramName+": "+t)
	}
	return fmt.Sprintf("    %s :: proc(%s)%s --- // %s", binding, strings.Join(params, ", "), returnSuffix(ret), name)
}
