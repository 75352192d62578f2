package main

import (
	"fmt"
	"os"

	"github.com/kbolino/go-clay-codegen/emit"
)

// parsePatterns reads the namespace filter. An empty file name yields a nil
// matcher, which generators replace with their prefix filter.
func parsePatterns(fileName string) (*emit.Matcher, error) {
	if fileName == "" {
		return nil, nil
	}
	file, err := os.Open(fileName)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()
	patterns, err := emit.ParsePatterns(file)
	if err != nil {
		return nil, err
	}
	return emit.NewMatcher(patterns), nil
}
