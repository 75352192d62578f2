package odin

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/kbolino/go-clay-codegen/ctype"
	"github.com/kbolino/go-clay-codegen/emit"
	"github.com/kbolino/go-clay-codegen/extract"
)

func (g *Generator) generateStructs() error {
	for _, name := range g.cat.StructNames() {
		if !g.include(name) {
			continue
		}
		binding, err := g.namer.Name(name)
		if err != nil {
			return fmt.Errorf("naming struct %s: %w", name, err)
		}
		if strings.HasPrefix(binding, "_") {
			logrus.WithField("symbol", name).Debug("skipping private struct")
			continue
		}
		s := g.cat.Structs[name]
		if g.overrides.IsFixedArray(name) {
			g.fixedArray(s, binding)
			continue
		}
		g.structBlock(s, binding)
	}
	return nil
}

// fixedArray emits s as [N]T. Every member must have the same C type.
func (g *Generator) fixedArray(s *extract.Struct, binding string) {
	elemType, ok := sharedMemberType(s)
	if !ok {
		logrus.WithField("symbol", s.Name).Warn("fixed array struct members do not share one type")
		g.write(sectionStructs, fmt.Sprintf("// %s (mixed member types) - has no mapping", s.Name))
		return
	}
	elem, ok := g.resolver.resolve(elemType)
	if !ok {
		g.write(sectionStructs, fmt.Sprintf("// %s (%s) - has no mapping", s.Name, ctype.String(elemType)))
		return
	}
	g.write(sectionStructs, fmt.Sprintf("// %s (overridden as fixed array)", s.Name))
	g.write(sectionStructs, fmt.Sprintf("%s :: [%d]%s", binding, len(s.Members), elem))
	g.write(sectionStructs, "")
}

func sharedMemberType(s *extract.Struct) (ctype.Type, bool) {
	if len(s.Members) == 0 {
		return nil, false
	}
	first := s.Members[0]
	if first.IsUnion() || first.Type == nil {
		return nil, false
	}
	for _, m := range s.Members[1:] {
		if m.IsUnion() || ctype.String(m.Type) != first.Type.String() {
			return nil, false
		}
	}
	return first.Type, true
}

func (g *Generator) structBlock(s *extract.Struct, binding string) {
	rawUnion := ""
	if s.IsUnion {
		rawUnion = " #raw_union"
	}
	g.write(sectionStructs, "// "+s.Name)
	g.write(sectionStructs, fmt.Sprintf("%s :: struct%s {", binding, rawUnion))
	for _, m := range s.Members {
		if m.IsUnion() {
			g.unionMember(s.Name, m)
			continue
		}
		if m.Name == "" {
			g.write(sectionStructs, fmt.Sprintf("    // %s (unknown type)", extract.Anonymous))
			continue
		}
		memberName := g.memberName(s.Name, m.Name)
		cType := ctype.String(m.Type)
		t, ok := g.resolver.member(s.Name, m.Name, m.Type, g.overrides.StructMemberTypes)
		if !ok {
			logrus.WithFields(logrus.Fields{
				"symbol": s.Name,
				"member": m.Name,
				"type":   cType,
			}).Debug("no mapping for struct member")
			g.write(sectionStructs, fmt.Sprintf("    // %s (%s) - has no mapping", memberName, cType))
			continue
		}
		g.write(sectionStructs, fmt.Sprintf("    %s: %s, // %s (%s)", memberName, t, m.Name, cType))
	}
	g.write(sectionStructs, "}")
	g.write(sectionStructs, "")
}

// unionMember emits an anonymous union member. An override for the member
// wins; otherwise the union is written inline if all of its fields resolve.
func (g *Generator) unionMember(structName string, m extract.Member) {
	if m.Name != "" {
		if t, ok := emit.Lookup(g.overrides.StructMemberTypes, structName, m.Name); ok {
			g.write(sectionStructs, fmt.Sprintf("    %s: %s, // %s (union)", g.memberName(structName, m.Name), t, m.Name))
			return
		}
	}
	fields := make([]string, 0, len(m.Union))
	for _, f := range m.Union {
		t, ok := g.resolver.resolve(f.Type)
		if !ok || f.Name == "" {
			label := m.Name
			if label == "" {
				label = extract.Anonymous
			}
			g.write(sectionStructs, fmt.Sprintf("    // %s (unknown type)", label))
			return
		}
		fields = append(fields, fmt.Sprintf("        %s: %s, // %s (%s)", f.Name, t, f.Name, ctype.String(f.Type)))
	}
	if m.Name == "" {
		g.write(sectionStructs, "    using _: struct #raw_union {")
	} else {
		g.write(sectionStructs, fmt.Sprintf("    %s: struct #raw_union {", g.memberName(structName, m.Name)))
	}
	for _, field := range fields {
		g.write(sectionStructs, field)
	}
	g.write(sectionStructs, "    },")
}

func (g *Generator) memberName(structName, member string) string {
	if name, ok := emit.Lookup(g.overrides.StructMemberNames, structName, member); ok {
		return name
	}
	return member
}
