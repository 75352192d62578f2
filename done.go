package main

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
)

// parseDone reads the symbols whose bindings are maintained by hand.
func parseDone(fileName string) ([]string, error) {
	if fileName == "" {
		return nil, nil
	}
	file, err := os.Open(fileName)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()
	scanner := bufio.NewScanner(file)
	var done []string
	seen := make(map[string]struct{})
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		symbol := string(line)
		if _, ok := seen[symbol]; ok {
			continue
		}
		seen[symbol] = struct{}{}
		done = append(done, symbol)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanner error: %w", err)
	}
	return done, nil
}
