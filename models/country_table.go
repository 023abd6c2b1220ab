package models

// CountryTable drives the country disambiguation.
type CountryTable struct {
	// Aliases maps a normalized variant ("england") onto a canonical key ("uk").
	Aliases map[string]string `yaml:"aliases" json:"aliases"`
	// Cities maps a canonical key onto its representative cities, in display order.
	Cities map[string][]string `yaml:"cities" json:"cities"`
	// Recognized is scanned in order for substring containment; first match wins.
	Recognized []string `yaml:"recognized" json:"recognized"`
}
