package demo

import "github.com/gunout/Stock-Tracker-Pro-Allemagne/internal/model"

// Profile pairs curated metadata with the random-walk parameters used when
// synthesizing history for a flagship symbol.
type Profile struct {
	Meta       model.Metadata
	BasePrice  float64
	Volatility float64
}

const (
	defaultBasePrice  = 50.0
	defaultVolatility = 0.02
)

// Profiles covers the flagship German listings shown in demonstration mode.
var Profiles = map[string]Profile{
	"SAP.DE": {
		BasePrice:  160.50,
		Volatility: 0.018,
		Meta: model.Metadata{
			Symbol: "SAP.DE", Name: "SAP SE",
			Sector: "Technology", Industry: "Software",
			Website:   "www.sap.com",
			MarketCap: 188_000_000_000, PERatio: 25.5,
			DividendYield: 0.018, Beta: 1.2,
			PreviousClose: 158.20,
		},
	},
	"SIE.DE": {
		BasePrice:  175.30,
		Volatility: 0.02,
		Meta: model.Metadata{
			Symbol: "SIE.DE", Name: "Siemens AG",
			Sector: "Industrials", Industry: "Industrial Conglomerates",
			Website:   "www.siemens.com",
			MarketCap: 140_000_000_000, PERatio: 16.8,
			DividendYield: 0.025, Beta: 1.1,
			PreviousClose: 173.50,
		},
	},
	"ALV.DE": {
		BasePrice:  245.80,
		Volatility: 0.015,
		Meta: model.Metadata{
			Symbol: "ALV.DE", Name: "Allianz SE",
			Sector: "Financials", Industry: "Insurance",
			Website:   "www.allianz.com",
			MarketCap: 100_000_000_000, PERatio: 11.2,
			DividendYield: 0.042, Beta: 0.9,
			PreviousClose: 243.20,
		},
	},
	"BMW.DE": {
		BasePrice:  98.50,
		Volatility: 0.025,
		Meta: model.Metadata{
			Symbol: "BMW.DE", Name: "Bayerische Motoren Werke AG",
			Sector: "Consumer Cyclical", Industry: "Automobiles",
			Website:   "www.bmw.com",
			MarketCap: 62_000_000_000, PERatio: 5.8,
			DividendYield: 0.065, Beta: 1.3,
			PreviousClose: 97.80,
		},
	},
	"DTE.DE": {
		BasePrice:  22.30,
		Volatility: 0.02,
		Meta: model.Metadata{
			Symbol: "DTE.DE", Name: "Deutsche Telekom AG",
			Sector: "Communication", Industry: "Telecom",
			Website:   "www.telekom.com",
			MarketCap: 110_000_000_000, PERatio: 14.2,
			DividendYield: 0.038, Beta: 0.7,
			PreviousClose: 22.10,
		},
	},
}

// Metadata returns the curated metadata for a symbol, if it is in the table.
func Metadata(symbol string) (model.Metadata, bool) {
	p, ok := Profiles[symbol]
	if !ok {
		return model.Metadata{}, false
	}
	return p.Meta, true
}
