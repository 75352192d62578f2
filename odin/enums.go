package odin

import (
	"fmt"
	"strings"

	"github.com/kbolino/go-clay-codegen/emit"
)

func (g *Generator) generateEnums() error {
	for _, name := range g.cat.EnumNames() {
		if !g.include(name) {
			continue
		}
		binding, err := g.namer.Name(name)
		if err != nil {
			return fmt.Errorf("naming enum %s: %w", name, err)
		}
		e := g.cat.Enums[name]
		prefix := ""
		if names := e.Names(); len(names) > 1 {
			prefix = emit.StrippablePrefix(names)
		}
		pascal := g.overrides.IsPascalEnum(name)

		g.write(sectionEnums, "// "+name)
		g.write(sectionEnums, fmt.Sprintf("%s :: enum EnumBackingType {", binding))
		for _, en := range e.Enumerators {
			member, ok := emit.Lookup(g.overrides.EnumMemberNames, name, en.Name)
			if !ok {
				member = strings.TrimPrefix(en.Name, prefix)
				if pascal {
					member = emit.SnakeToPascal(member)
				}
			}
			if en.HasValue() {
				g.write(sectionEnums, fmt.Sprintf("    %s = %s, // %s", member, en.Value, en.Name))
			} else {
				g.write(sectionEnums, fmt.Sprintf("    %s, // %s", member, en.Name))
			}
		}
		if extra := g.overrides.EnumExtraMembers[name]; len(extra) > 0 {
			g.write(sectionEnums, "    // Odin specific enum types")
			for _, m := range extra {
				g.write(sectionEnums, fmt.Sprintf("    %s = %s,", m.Name, m.Value))
			}
		}
		g.write(sectionEnums, "}")
		g.write(sectionEnums, "")
	}
	return nil
}
