package util

import (
	"fmt"
	"os"
	"strings"

	"weather-dash/models"

	"gopkg.in/yaml.v3"
)

// ParseCountryTable decodes a YAML country table and normalizes its keys to lowercase.
func ParseCountryTable(data []byte) (*models.CountryTable, error) {
	var raw models.CountryTable
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal country table: %w", err)
	}

	table := &models.CountryTable{
		Aliases:    make(map[string]string, len(raw.Aliases)),
		Cities:     make(map[string][]string, len(raw.Cities)),
		Recognized: make([]string, 0, len(raw.Recognized)),
	}
	for k, v := range raw.Aliases {
		table.Aliases[normalizeKey(k)] = normalizeKey(v)
	}
	for k, cities := range raw.Cities {
		if len(cities) == 0 {
			continue
		}
		table.Cities[normalizeKey(k)] = cities
	}
	for _, name := range raw.Recognized {
		if n := normalizeKey(name); n != "" {
			table.Recognized = append(table.Recognized, n)
		}
	}
	return table, nil
}

// ReadCountryTableFromYAML loads a country table from YAML on disk.
func ReadCountryTableFromYAML(filePath string) (*models.CountryTable, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	return ParseCountryTable(data)
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
