package extract

import (
	"bufio"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"modernc.org/cc/v3"
)

//go:embed prelude.h
var prelude string

// DefaultImplementationMacro is the macro that switches clay.h from
// declarations only to declarations plus implementation.
const DefaultImplementationMacro = "CLAY_IMPLEMENTATION"

// MergedFileName is the name of the merged header written to Config.TmpDir.
const MergedFileName = "merged.h"

// Config describes how headers are turned into a translation unit.
type Config struct {
	// Headers are concatenated in order.
	Headers []string
	// CPP is the C preprocessor used to discover predefined macros and
	// include paths. Host configuration is skipped when CPP is empty.
	CPP string
	// IncludePaths are appended to those reported by CPP.
	IncludePaths []string
	// ImplementationMacro lines ("#define <macro>") are dropped while
	// merging.
	ImplementationMacro string
	// TmpDir receives a copy of the merged header when not empty.
	TmpDir string
}

// ParseHeaders merges, preprocesses and parses the configured headers and
// extracts their symbols.
func ParseHeaders(cfg Config) (*Catalog, error) {
	merged, err := MergeHeaders(cfg.Headers, cfg.ImplementationMacro)
	if err != nil {
		return nil, err
	}
	name := MergedFileName
	if cfg.TmpDir != "" {
		name = filepath.Join(cfg.TmpDir, MergedFileName)
		if err := os.WriteFile(name, []byte(merged), 0644); err != nil {
			return nil, fmt.Errorf("writing merged header: %w", err)
		}
	}
	var predefined string
	var includePaths, sysIncludePaths []string
	if cfg.CPP != "" {
		logrus.Debug("determining host configuration from C preprocessor")
		predefined, includePaths, sysIncludePaths, err = cc.HostConfig(cfg.CPP)
		if err != nil {
			return nil, fmt.Errorf("obtaining host configuration: %w", err)
		}
		logrus.Debugf("includePaths = %v", includePaths)
		logrus.Debugf("sysIncludePaths = %v", sysIncludePaths)
	}
	if len(cfg.IncludePaths) > 0 {
		logrus.Debugf("appending %v to includePaths", cfg.IncludePaths)
		includePaths = append(includePaths, cfg.IncludePaths...)
	}
	ast, err := parse(predefined, includePaths, sysIncludePaths, name, merged)
	if err != nil {
		return nil, err
	}
	return Extract(ast), nil
}

// ParseSource parses a single in-memory header, without host configuration,
// and extracts its symbols.
func ParseSource(name, src string) (*Catalog, error) {
	ast, err := parse("", nil, nil, name, src)
	if err != nil {
		return nil, err
	}
	return Extract(ast), nil
}

func parse(predefined string, includePaths, sysIncludePaths []string, name, src string) (*cc.AST, error) {
	// cc treats a Source with an empty Value as a path, so every in-memory
	// source ends in at least a newline.
	sources := []cc.Source{
		{Name: "__predefined__", Value: predefined + "\n", DoNotCache: true},
		{Name: "__prelude__", Value: prelude, DoNotCache: true},
		{Name: name, Value: src + "\n", DoNotCache: true},
	}
	logrus.Debugf("parsing file %s", name)
	ast, err := cc.Parse(&cc.Config{}, includePaths, sysIncludePaths, sources)
	if err != nil {
		return nil, fmt.Errorf("parsing sources: %w", err)
	}
	return ast, nil
}

// MergeHeaders concatenates the named files, dropping #include lines and the
// definition of implMacro, so that the result can be parsed on its own.
func MergeHeaders(paths []string, implMacro string) (string, error) {
	var merged strings.Builder
	for _, path := range paths {
		if err := mergeHeader(&merged, path, implMacro); err != nil {
			return "", fmt.Errorf("merging header '%s': %w", path, err)
		}
	}
	return merged.String(), nil
}

func mergeHeader(dst *strings.Builder, path, implMacro string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if strings.HasPrefix(strings.TrimSpace(line), "#include") {
			logrus.Debugf("%s:%d: dropping %s", path, lineNum, strings.TrimSpace(line))
			continue
		}
		if implMacro != "" && strings.Contains(line, "#define "+implMacro) {
			logrus.Debugf("%s:%d: dropping definition of %s", path, lineNum, implMacro)
			continue
		}
		dst.WriteString(line)
		dst.WriteByte('\n')
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanner error: %w", err)
	}
	return nil
}
