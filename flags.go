package main

import (
	"flag"

	"github.com/kbolino/go-clay-codegen/extract"
)

var (
	flagCPP = flag.String("cpp", "", "path to the C preprocessor used to determine predefined macros and include "+
		"paths; empty to parse without host configuration")
	flagDebug = flag.Bool("debug", false, "enable debug logging")
	flagDone  = flag.String("done", "", "path to file containing C symbols whose bindings are written by hand; "+
		"one symbol per line; empty lines ignored, comment lines start with #")
	flagExpandTemplates = flag.String("expand-templates", "", "directory of *.template.c files; when set, the "+
		"generated regions of each input header are expanded in place and no bindings are generated")
	flagGenerator = flag.String("generator", "odin", "binding generator to run")
	flagImplMacro = flag.String("impl-macro", extract.DefaultImplementationMacro, "macro whose #define lines are "+
		"dropped from the input headers")
	flagInclude   = flag.String("include", "", "directories appended to the include path, separated by the OS "+
		"path list separator")
	flagOutputDir = flag.String("output-dir", "", "directory the bindings are written to (required)")
	flagOverrides = flag.String("overrides", "", "path to YAML file of override tables layered over the "+
		"generator's built-in tables")
	flagPatterns = flag.String("patterns", "", "path to file containing regexps to match against C symbol names, "+
		"one per line; empty lines ignored, comment lines start with #, and negated lines with !; patterns must "+
		"match entire symbol name; defaults to every symbol with the generator's prefix")
	flagTemplate = flag.String("template", "", "path to output template replacing the generator's built-in one")
	flagTmpDir   = flag.String("tmp-dir", "", "directory for the merged header and the extracted symbol dump; "+
		"defaults to <output-dir>/tmp")
	flagTypemap = flag.String("typemap", "", "path to file containing type mappings from C to the target "+
		"language; one mapping per line; CSV format 'ctype,target'; empty lines ignored, comment lines start with #")
)
