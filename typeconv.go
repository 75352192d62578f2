package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// parseTypeMap reads C type to target type mappings. Keys use the catalog's
// type spelling, e.g. "const *char".
func parseTypeMap(fileName string) (map[string]string, error) {
	if fileName == "" {
		return nil, nil
	}
	file, err := os.Open(fileName)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()
	typeMap := make(map[string]string)
	reader := csv.NewReader(file)
	reader.Comment = '#'
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = 2
	reader.ReuseRecord = true
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return nil, fmt.Errorf("CSV read error: %w", err)
		}
		typeMap[strings.TrimSpace(record[0])] = strings.TrimSpace(record[1])
	}
	return typeMap, nil
}
