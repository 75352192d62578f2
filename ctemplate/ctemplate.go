// Package ctemplate expands generated regions in C sources. A region is
// opened by a marker line naming one or more templates and their arguments,
//
//	// __GENERATED__ template array_define,array_add TYPE=bool NAME=Clay__BoolArray
//
// and closed by the next bare marker line. Everything between the two is
// replaced by the named templates with each $ARG$ substituted, wrapped in
// #pragma region lines. Expanding an already expanded source is a no-op.
package ctemplate

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

const (
	// Marker starts both the opening and the closing line of a region.
	Marker = "// __GENERATED__ template"
	// Suffix is the file name suffix of template files.
	Suffix = ".template.c"

	regionStart = "#pragma region generated"
	regionEnd   = "#pragma endregion"
)

var (
	ErrUnclosed         = errors.New("template was opened and not closed again")
	ErrUnknownTemplate  = errors.New("unknown template")
	ErrMissingParameter = errors.New("template is missing parameter")
)

// LoadDir reads every *.template.c file below dir, keyed by file name
// without the suffix.
func LoadDir(dir string) (map[string]string, error) {
	templates := make(map[string]string)
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), Suffix) {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading template: %w", err)
		}
		name := strings.TrimSuffix(d.Name(), Suffix)
		logrus.Debugf("loaded template %s from %s", name, path)
		templates[name] = string(data)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("loading templates from '%s': %w", dir, err)
	}
	return templates, nil
}

// Expand replaces the body of every region in src.
func Expand(src string, templates map[string]string) (string, error) {
	lines := strings.Split(src, "\n")
	out := make([]string, 0, len(lines))
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		out = append(out, line)
		if !strings.HasPrefix(line, Marker) {
			continue
		}
		end := -1
		for j := i + 1; j < len(lines); j++ {
			if strings.HasPrefix(lines[j], Marker) {
				end = j
				break
			}
		}
		if end < 0 {
			return "", fmt.Errorf("line %d: %w", i+1, ErrUnclosed)
		}
		body, err := expandRegion(line, templates)
		if err != nil {
			return "", fmt.Errorf("line %d: %w", i+1, err)
		}
		out = append(out, regionStart)
		out = append(out, body...)
		out = append(out, regionEnd, lines[end])
		i = end
	}
	return strings.Join(out, "\n"), nil
}

func expandRegion(marker string, templates map[string]string) ([]string, error) {
	fields := strings.Fields(strings.TrimPrefix(marker, Marker))
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: no template named", ErrUnknownTemplate)
	}
	var replacements []string
	for _, arg := range fields[1:] {
		name, value, _ := strings.Cut(arg, "=")
		replacements = append(replacements, "$"+name+"$", value)
	}
	replacer := strings.NewReplacer(replacements...)
	var body []string
	for _, name := range strings.Split(fields[0], ",") {
		template, ok := templates[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s%s", ErrUnknownTemplate, name, Suffix)
		}
		expanded := replacer.Replace(template)
		if _, rest, found := strings.Cut(expanded, "$"); found {
			param, _, _ := strings.Cut(rest, "$")
			return nil, fmt.Errorf("%w: %s in %s", ErrMissingParameter, param, name)
		}
		body = append(body, strings.Split(expanded, "\n")...)
	}
	return body, nil
}

// ExpandFile expands the regions of the file at path in place. The file is
// only rewritten when its content changes.
func ExpandFile(path string, templates map[string]string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading file: %w", err)
	}
	expanded, err := Expand(string(data), templates)
	if err != nil {
		return fmt.Errorf("expanding '%s': %w", path, err)
	}
	if expanded == string(data) {
		logrus.WithField("file", path).Debug("templates already up to date")
		return nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("reading file: %w", err)
	}
	if err := os.WriteFile(path, []byte(expanded), info.Mode().Perm()); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}
	logrus.WithField("file", path).Info("expanded templates")
	return nil
}
