// Package emit holds the target-independent parts of binding generation:
// override tables, namespace filtering, symbol naming, output sections and
// file writing.
package emit

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/sirupsen/logrus"
)

// Generator produces the bindings for one target language.
type Generator interface {
	// Generate emits every binding. It is called once.
	Generate() error
	// Outputs maps file names, relative to the output directory, to their
	// content.
	Outputs() map[string]string
}

// Options are the settings shared by every generator.
type Options struct {
	// Matcher selects the symbols to bind. When nil, every symbol starting
	// with the overrides' prefix is bound.
	Matcher *Matcher
	// Template replaces the generator's built-in output template.
	Template string
}

// MatcherOrDefault returns o.Matcher, or the prefix filter for prefix.
func (o Options) MatcherOrDefault(prefix string) *Matcher {
	if o.Matcher != nil {
		return o.Matcher
	}
	return NewMatcher(PrefixPatterns(prefix))
}

// WriteOutputs writes each output below dir, creating directories as
// needed.
func WriteOutputs(dir string, outputs map[string]string) error {
	names := make([]string, 0, len(outputs))
	for name := range outputs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("creating directory for '%s': %w", path, err)
		}
		if err := os.WriteFile(path, []byte(outputs[name]), 0644); err != nil {
			return fmt.Errorf("writing '%s': %w", path, err)
		}
		logrus.WithFields(logrus.Fields{
			"file":  path,
			"bytes": len(outputs[name]),
		}).Info("wrote output")
	}
	return nil
}
