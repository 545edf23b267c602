package model

// Metadata holds descriptive fields for a symbol. Providers return these
// loosely typed; any field may be missing and stays at its zero value.
type Metadata struct {
	Symbol        string
	Name          string
	Sector        string
	Industry      string
	Website       string
	MarketCap     float64
	PERatio       float64
	DividendYield float64 // fraction, e.g. 0.018 for 1.8%
	Beta          float64
	PreviousClose float64
}

// PlaceholderMetadata builds the minimal record used when neither the
// provider nor the curated demo table knows the symbol.
func PlaceholderMetadata(symbol string) Metadata {
	return Metadata{
		Symbol:        symbol,
		Name:          symbol + " (Demo-Daten)",
		Sector:        "N/A",
		Industry:      "N/A",
		MarketCap:     10_000_000_000,
		PERatio:       15.0,
		DividendYield: 0.03,
		Beta:          1.0,
	}
}
