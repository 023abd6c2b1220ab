package services

import (
	"strings"

	"weather-dash/models"
)

// MAX_SUGGESTIONS bounds the cities offered for a country query.
const MAX_SUGGESTIONS = 5

// CountryDisambiguator detects queries naming a country rather than a city.
type CountryDisambiguator struct {
	table *models.CountryTable
	// cities holds every suggested city, lowercased.
	cities map[string]struct{}
}

func NewCountryDisambiguator(table *models.CountryTable) *CountryDisambiguator {
	cities := make(map[string]struct{})
	for _, list := range table.Cities {
		for _, city := range list {
			cities[strings.ToLower(strings.TrimSpace(city))] = struct{}{}
		}
	}
	return &CountryDisambiguator{table: table, cities: cities}
}

// Disambiguate returns nil when query should be treated as a city, otherwise up to
// MAX_SUGGESTIONS representative cities of the country it names.
//
// An exact (alias-resolved) key match wins. A query equal to one of the suggested cities
// ("Mexico City") is a city. Otherwise the recognized names are tried in table order and the
// first one contained in the query decides, so a longer query that happens to contain a
// country name ("Indianapolis") is treated as that country.
func (d *CountryDisambiguator) Disambiguate(query string) []string {
	term := strings.ToLower(strings.TrimSpace(query))
	if term == "" {
		return nil
	}

	if cities, ok := d.table.Cities[d.canonical(term)]; ok {
		return limitSuggestions(cities)
	}
	if _, ok := d.cities[term]; ok {
		return nil
	}

	for _, name := range d.table.Recognized {
		if !strings.Contains(term, name) {
			continue
		}
		cities, ok := d.table.Cities[d.canonical(name)]
		if !ok {
			return nil
		}
		return limitSuggestions(cities)
	}
	return nil
}

func (d *CountryDisambiguator) canonical(term string) string {
	if alias, ok := d.table.Aliases[term]; ok {
		return alias
	}
	return term
}

func limitSuggestions(cities []string) []string {
	n := len(cities)
	if n > MAX_SUGGESTIONS {
		n = MAX_SUGGESTIONS
	}
	out := make([]string, n)
	copy(out, cities[:n])
	return out
}
