package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/gunout/Stock-Tracker-Pro-Allemagne/internal/calculator"
	"github.com/gunout/Stock-Tracker-Pro-Allemagne/internal/market"
	"github.com/gunout/Stock-Tracker-Pro-Allemagne/internal/model"
)

// Record is one flat OHLCV row in the JSON document.
type Record struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// Statistics summarizes the exported close series.
type Statistics struct {
	Mean           float64 `json:"mean"`
	StdDev         float64 `json:"std_dev"`
	Min            float64 `json:"min"`
	Max            float64 `json:"max"`
	TotalChangePct float64 `json:"total_change_pct"`
}

// Document is the JSON export payload.
type Document struct {
	Symbol       string     `json:"symbol"`
	Exchange     string     `json:"exchange"`
	Currency     string     `json:"currency"`
	LastUpdate   time.Time  `json:"last_update"`
	Timezone     string     `json:"timezone"`
	CurrentPrice float64    `json:"current_price"`
	Statistics   Statistics `json:"statistics"`
	Data         []Record   `json:"data"`
}

// BuildDocument assembles the export payload for a series.
func BuildDocument(symbol string, bars []model.OHLCV, now time.Time, timezone string) Document {
	doc := Document{
		Symbol:       symbol,
		Exchange:     market.Exchange(symbol),
		Currency:     market.Currency(symbol),
		LastUpdate:   now,
		Timezone:     timezone,
		CurrentPrice: model.LastClose(bars),
		Data:         make([]Record, len(bars)),
	}
	if stats, err := calculator.Summarize(bars); err == nil {
		doc.Statistics = Statistics{
			Mean:           stats.Mean,
			StdDev:         stats.StdDev,
			Min:            stats.Min,
			Max:            stats.Max,
			TotalChangePct: stats.TotalChangePct,
		}
	}
	for i, b := range bars {
		doc.Data[i] = Record{
			Date:   b.Time,
			Open:   b.Open,
			High:   b.High,
			Low:    b.Low,
			Close:  b.Close,
			Volume: b.Volume,
		}
	}
	return doc
}

// WriteJSON writes the document with indentation.
func WriteJSON(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode json export: %w", err)
	}
	return nil
}

// ParseJSON reads a previously exported document back.
func ParseJSON(r io.Reader) (Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("decode json export: %w", err)
	}
	return doc, nil
}
