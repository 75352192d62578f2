// Package odin generates Odin foreign bindings for clay from an extracted
// symbol catalog.
package odin

import (
	_ "embed"

	"github.com/sirupsen/logrus"

	"github.com/kbolino/go-clay-codegen/emit"
	"github.com/kbolino/go-clay-codegen/extract"
)

//go:embed clay.template.odin
var defaultTemplate string

// OutputFile is the name of the generated binding file.
const OutputFile = "clay.odin"

// Section names double as template markers, e.g. {{structs}}.
const (
	sectionStructs          = "structs"
	sectionEnums            = "enums"
	sectionPublicFunctions  = "public_functions"
	sectionPrivateFunctions = "private_functions"
)

type Generator struct {
	cat       *extract.Catalog
	overrides *emit.Overrides
	namer     *emit.Namer
	matcher   *emit.Matcher
	resolver  *resolver
	template  string
	sections  *emit.Sections
}

// New returns a generator for cat. overrides is normally DefaultOverrides,
// possibly merged with user tables.
func New(cat *extract.Catalog, overrides *emit.Overrides, opts emit.Options) *Generator {
	namer := emit.NewNamer(cat, overrides)
	template := opts.Template
	if template == "" {
		template = defaultTemplate
	}
	return &Generator{
		cat:       cat,
		overrides: overrides,
		namer:     namer,
		matcher:   opts.MatcherOrDefault(overrides.Prefix),
		resolver:  &resolver{cat: cat, overrides: overrides, namer: namer},
		template:  template,
		sections:  emit.NewSections(),
	}
}

// Generate emits structs, enums and functions, then substitutes them into
// the template. The raw sections are not part of the outputs.
func (g *Generator) Generate() error {
	if err := g.generateStructs(); err != nil {
		return err
	}
	if err := g.generateEnums(); err != nil {
		return err
	}
	if err := g.generateFunctions(); err != nil {
		return err
	}
	content := emit.Substitute(g.template, map[string]string{
		sectionStructs:          g.sections.Take(sectionStructs),
		sectionEnums:            g.sections.Take(sectionEnums),
		sectionPublicFunctions:  g.sections.Take(sectionPublicFunctions),
		sectionPrivateFunctions: g.sections.Take(sectionPrivateFunctions),
	})
	g.sections.Put(OutputFile, content)
	return nil
}

func (g *Generator) Outputs() map[string]string {
	return g.sections.Outputs()
}

// include reports whether symbol is bound at all.
func (g *Generator) include(symbol string) bool {
	if !g.matcher.Match(symbol) {
		logrus.WithField("symbol", symbol).Debug("skipping symbol outside namespace")
		return false
	}
	if _, ok := g.overrides.CompleteOverride(symbol); ok {
		logrus.WithField("symbol", symbol).Debug("skipping completely overridden symbol")
		return false
	}
	return true
}

func (g *Generator) write(section, line string) {
	g.sections.Write(section, line)
}
