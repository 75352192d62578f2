package extract

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/kbolino/go-clay-codegen/ctype"
)

// DumpFileName is the name under which the CLI writes the catalog dump.
const DumpFileName = "extracted_symbols.yaml"

// WriteYAML writes the catalog to w as a YAML document with three top-level
// mappings: structs, enums and functions. Symbols appear in lexicographic
// order and members in declaration order.
func (c *Catalog) WriteYAML(w io.Writer) error {
	structs := mapping()
	for _, name := range c.StructNames() {
		s := c.Structs[name]
		members := mapping()
		for i, m := range s.Members {
			key := memberKey(m.Name, i)
			if m.IsUnion() {
				fields := mapping()
				for j, f := range m.Union {
					appendPair(fields, memberKey(f.Name, j), scalar(ctype.String(f.Type)))
				}
				union := mapping()
				appendPair(union, "union", fields)
				appendPair(members, key, union)
			} else {
				appendPair(members, key, scalar(ctype.String(m.Type)))
			}
		}
		entry := mapping()
		appendPair(entry, "members", members)
		appendPair(entry, "is_union", boolean(s.IsUnion))
		appendPair(structs, name, entry)
	}

	enums := mapping()
	for _, name := range c.EnumNames() {
		values := mapping()
		for _, en := range c.Enums[name].Enumerators {
			if en.HasValue() {
				appendPair(values, en.Name, scalar(en.Value))
			} else {
				appendPair(values, en.Name, null())
			}
		}
		appendPair(enums, name, values)
	}

	functions := mapping()
	for _, name := range c.FunctionNames() {
		fn := c.Functions[name].Type
		params := mapping()
		for _, p := range fn.Params {
			appendPair(params, p.Name, scalar(ctype.String(p.Type)))
		}
		entry := mapping()
		appendPair(entry, "return_type", scalar(ctype.String(fn.Return)))
		appendPair(entry, "params", params)
		if fn.Variadic {
			appendPair(entry, "variadic", boolean(true))
		}
		appendPair(functions, name, entry)
	}

	root := mapping()
	appendPair(root, "structs", structs)
	appendPair(root, "enums", enums)
	appendPair(root, "functions", functions)

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{root}}); err != nil {
		return fmt.Errorf("encoding catalog: %w", err)
	}
	return enc.Close()
}

// memberKey keys unnamed members by their index so that keys stay unique,
// e.g. "(anonymous)#2".
func memberKey(name string, index int) string {
	if name != "" {
		return name
	}
	return fmt.Sprintf("%s#%d", Anonymous, index)
}

func mapping() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode}
}

func scalar(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}

func boolean(value bool) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: fmt.Sprint(value)}
}

func null() *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
}

func appendPair(m *yaml.Node, key string, value *yaml.Node) {
	m.Content = append(m.Content, scalar(key), value)
}
