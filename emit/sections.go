package emit

import "strings"

// Sections collects emitted lines under named sections. A section becomes
// an output file unless it is taken out before Outputs is called.
type Sections struct {
	lines map[string][]string
}

func NewSections() *Sections {
	return &Sections{lines: make(map[string][]string)}
}

// Write appends one line to section.
func (s *Sections) Write(section, line string) {
	s.lines[section] = append(s.lines[section], line)
}

// Put replaces section with content.
func (s *Sections) Put(section, content string) {
	s.lines[section] = []string{content}
}

// Lines returns the lines written to section so far.
func (s *Sections) Lines(section string) []string {
	return s.lines[section]
}

// Take removes section and returns its lines joined by newlines.
func (s *Sections) Take(section string) string {
	joined := strings.Join(s.lines[section], "\n")
	delete(s.lines, section)
	return joined
}

// Outputs returns every remaining section joined by newlines.
func (s *Sections) Outputs() map[string]string {
	out := make(map[string]string, len(s.lines))
	for name, lines := range s.lines {
		out[name] = strings.Join(lines, "\n")
	}
	return out
}
