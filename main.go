package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/kbolino/go-clay-codegen/ctemplate"
	"github.com/kbolino/go-clay-codegen/emit"
	"github.com/kbolino/go-clay-codegen/extract"
	"github.com/kbolino/go-clay-codegen/odin"
)

type generatorEntry struct {
	defaults func() *emit.Overrides
	build    func(cat *extract.Catalog, overrides *emit.Overrides, opts emit.Options) emit.Generator
}

var generators = map[string]generatorEntry{
	"odin": {
		defaults: odin.DefaultOverrides,
		build: func(cat *extract.Catalog, overrides *emit.Overrides, opts emit.Options) emit.Generator {
			return odin.New(cat, overrides, opts)
		},
	},
}

// options is the resolved command line.
type options struct {
	headers       []string
	cpp           string
	includePaths  []string
	implMacro     string
	outputDir     string
	tmpDir        string
	generator     string
	patternsFile  string
	doneFile      string
	typemapFile   string
	overridesFile string
	templateFile  string
}

func main() {
	flag.Parse()
	setupLogging(*flagDebug)
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		os.Exit(1)
	}
}

func run() error {
	headers := flag.Args()
	if len(headers) == 0 {
		return errors.New("no input header files given")
	}
	if *flagExpandTemplates != "" {
		return expandTemplates(*flagExpandTemplates, headers)
	}
	var includePaths []string
	if *flagInclude != "" {
		includePaths = filepath.SplitList(*flagInclude)
	}
	return generate(options{
		headers:       headers,
		cpp:           *flagCPP,
		includePaths:  includePaths,
		implMacro:     *flagImplMacro,
		outputDir:     *flagOutputDir,
		tmpDir:        *flagTmpDir,
		generator:     *flagGenerator,
		patternsFile:  *flagPatterns,
		doneFile:      *flagDone,
		typemapFile:   *flagTypemap,
		overridesFile: *flagOverrides,
		templateFile:  *flagTemplate,
	})
}

func generate(opts options) error {
	if opts.outputDir == "" {
		return errors.New("-output-dir is required")
	}
	entry, ok := generators[opts.generator]
	if !ok {
		return fmt.Errorf("unknown generator '%s'", opts.generator)
	}
	overrides, err := loadOverrides(entry.defaults(), opts)
	if err != nil {
		return err
	}
	matcher, err := parsePatterns(opts.patternsFile)
	if err != nil {
		return fmt.Errorf("parsing patterns in file '%s': %w", opts.patternsFile, err)
	}
	var template string
	if opts.templateFile != "" {
		data, err := os.ReadFile(opts.templateFile)
		if err != nil {
			return fmt.Errorf("reading template: %w", err)
		}
		template = string(data)
	}
	tmpDir := opts.tmpDir
	if tmpDir == "" {
		tmpDir = filepath.Join(opts.outputDir, "tmp")
	}
	for _, dir := range []string{opts.outputDir, tmpDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating directory: %w", err)
		}
	}
	logrus.WithFields(logrus.Fields{
		"inputs":    opts.headers,
		"output":    opts.outputDir,
		"tmp":       tmpDir,
		"generator": opts.generator,
	}).Info("parsing headers")

	cat, err := extract.ParseHeaders(extract.Config{
		Headers:             opts.headers,
		CPP:                 opts.cpp,
		IncludePaths:        opts.includePaths,
		ImplementationMacro: opts.implMacro,
		TmpDir:              tmpDir,
	})
	if err != nil {
		return fmt.Errorf("extracting symbols: %w", err)
	}
	if err := dumpCatalog(cat, filepath.Join(tmpDir, extract.DumpFileName)); err != nil {
		return err
	}

	logrus.Info("generating bindings")
	gen := entry.build(cat, overrides, emit.Options{Matcher: matcher, Template: template})
	if err := gen.Generate(); err != nil {
		return fmt.Errorf("generating %s bindings: %w", opts.generator, err)
	}
	return emit.WriteOutputs(opts.outputDir, gen.Outputs())
}

// loadOverrides layers the user's tables over defaults: the overrides file
// first, then the type map, then the hand-written symbols.
func loadOverrides(defaults *emit.Overrides, opts options) (*emit.Overrides, error) {
	overrides := defaults
	if opts.overridesFile != "" {
		user, err := emit.LoadOverrides(opts.overridesFile)
		if err != nil {
			return nil, fmt.Errorf("loading overrides in file '%s': %w", opts.overridesFile, err)
		}
		overrides = overrides.Merge(user)
	}
	typeMap, err := parseTypeMap(opts.typemapFile)
	if err != nil {
		return nil, fmt.Errorf("parsing typemap in file '%s': %w", opts.typemapFile, err)
	}
	if len(typeMap) > 0 {
		overrides = overrides.Merge(&emit.Overrides{Types: typeMap})
	}
	done, err := parseDone(opts.doneFile)
	if err != nil {
		return nil, fmt.Errorf("parsing hand-written symbols in file '%s': %w", opts.doneFile, err)
	}
	if len(done) > 0 {
		logrus.Debugf("suppressing %d hand-written symbols", len(done))
		overrides = overrides.Suppress(done...)
	}
	return overrides, nil
}

func dumpCatalog(cat *extract.Catalog, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating symbol dump: %w", err)
	}
	if err := cat.WriteYAML(file); err != nil {
		file.Close()
		return fmt.Errorf("writing symbol dump '%s': %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("writing symbol dump '%s': %w", path, err)
	}
	logrus.WithField("file", path).Debug("wrote symbol dump")
	return nil
}

func expandTemplates(dir string, headers []string) error {
	templates, err := ctemplate.LoadDir(dir)
	if err != nil {
		return err
	}
	for _, header := range headers {
		if err := ctemplate.ExpandFile(header, templates); err != nil {
			return err
		}
	}
	return nil
}
