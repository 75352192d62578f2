package emit

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"regexp"

	"github.com/sirupsen/logrus"
)

// Pattern is one line of a namespace filter. A Pattern always matches the
// whole symbol name.
type Pattern struct {
	Regexp *regexp.Regexp
	Negate bool
}

// CompilePattern compiles expr anchored at both ends.
func CompilePattern(expr string, negate bool) (Pattern, error) {
	re, err := regexp.Compile(`^(?:` + expr + `)$`)
	if err != nil {
		return Pattern{}, err
	}
	return Pattern{Regexp: re, Negate: negate}, nil
}

// PrefixPatterns returns the default filter: every symbol starting with
// prefix.
func PrefixPatterns(prefix string) []Pattern {
	p, _ := CompilePattern(regexp.QuoteMeta(prefix)+`.*`, false)
	return []Pattern{p}
}

// ParsePatterns reads one pattern per line. Empty lines are ignored, comment
// lines start with # and negated lines with !.
func ParsePatterns(r io.Reader) ([]Pattern, error) {
	scanner := bufio.NewScanner(r)
	lineNum := 0
	var patterns []Pattern
	for scanner.Scan() {
		lineNum++
		line := bytes.TrimSpace(scanner.Bytes())
		negate := false
		if len(line) == 0 || line[0] == '#' {
			continue
		} else if line[0] == '!' {
			negate = true
			line = bytes.TrimSpace(line[1:])
		}
		p, err := CompilePattern(string(line), negate)
		if err != nil {
			return nil, fmt.Errorf("compiling line %d: %w", lineNum, err)
		}
		patterns = append(patterns, p)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanner error: %w", err)
	}
	return patterns, nil
}

// Matcher decides which symbols belong to the bound namespace.
type Matcher struct {
	patterns []Pattern
}

func NewMatcher(patterns []Pattern) *Matcher {
	return &Matcher{patterns: patterns}
}

// Match reports whether name is included. Patterns are tried in order and
// the last one that matches decides; a name no pattern matches is excluded.
func (m *Matcher) Match(name string) bool {
	include := false
	for _, pattern := range m.patterns {
		if !pattern.Regexp.MatchString(name) {
			continue
		}
		if pattern.Negate {
			logrus.Debugf("excluding %s because of negated pattern %s", name, pattern.Regexp)
			include = false
		} else {
			logrus.Debugf("including %s because of pattern %s", name, pattern.Regexp)
			include = true
		}
	}
	return include
}
