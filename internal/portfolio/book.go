package portfolio

import (
	"sync"
	"time"

	"github.com/gunout/Stock-Tracker-Pro-Allemagne/internal/market"
	"github.com/gunout/Stock-Tracker-Pro-Allemagne/internal/model"
)

// EURUSDRate is the fixed conversion rate used for the dual-currency totals.
const EURUSDRate = 1.08

// Book manages the virtual portfolio with concurrency safety. Lots are
// append-only; the only other mutation is a bulk clear.
type Book struct {
	mu   sync.Mutex
	lots map[string][]model.Lot
}

// NewBook creates an empty portfolio book.
func NewBook() *Book {
	return &Book{lots: make(map[string][]model.Lot)}
}

// AddLot appends a purchase lot for a symbol.
func (b *Book) AddLot(symbol string, shares int, buyPrice float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lots[symbol] = append(b.lots[symbol], model.Lot{
		Shares:   shares,
		BuyPrice: buyPrice,
		OpenedAt: time.Now(),
	})
}

// Clear removes every position.
func (b *Book) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lots = make(map[string][]model.Lot)
}

// Positions returns a copy of the current lots grouped by symbol.
func (b *Book) Positions() map[string][]model.Lot {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make(map[string][]model.Lot, len(b.lots))
	for sym, lots := range b.lots {
		cp := make([]model.Lot, len(lots))
		copy(cp, lots)
		out[sym] = cp
	}
	return out
}

// Symbols returns the symbols currently held.
func (b *Book) Symbols() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	syms := make([]string, 0, len(b.lots))
	for sym := range b.lots {
		syms = append(syms, sym)
	}
	return syms
}

// PositionView is the valuation of a single lot at current prices.
type PositionView struct {
	Symbol       string
	Exchange     string
	Currency     string
	Shares       int
	BuyPrice     float64
	CurrentPrice float64
	Cost         float64
	Value        float64
	Profit       float64
	ProfitPct    float64
}

// Summary totals the portfolio in both euros and dollars.
type Summary struct {
	Positions      []PositionView
	TotalValueEUR  float64
	TotalCostEUR   float64
	TotalProfitEUR float64
	ProfitPctEUR   float64
	TotalValueUSD  float64
	TotalCostUSD   float64
	TotalProfitUSD float64
	ProfitPctUSD   float64
}

// Valuate prices every lot with the given current prices (keyed by symbol;
// missing symbols are skipped) and accumulates dual-currency totals.
func (b *Book) Valuate(prices map[string]float64) Summary {
	b.mu.Lock()
	defer b.mu.Unlock()

	var s Summary
	for sym, lots := range b.lots {
		current, ok := prices[sym]
		if !ok {
			continue
		}
		currency := market.Currency(sym)
		exchange := market.Exchange(sym)

		for _, lot := range lots {
			cost := lot.Cost()
			value := float64(lot.Shares) * current
			profit := value - cost
			profitPct := 0.0
			if cost > 0 {
				profitPct = profit / cost * 100
			}

			if currency == "EUR" {
				s.TotalCostEUR += cost
				s.TotalValueEUR += value
				s.TotalCostUSD += cost * EURUSDRate
				s.TotalValueUSD += value * EURUSDRate
			} else {
				s.TotalCostUSD += cost
				s.TotalValueUSD += value
				s.TotalCostEUR += cost / EURUSDRate
				s.TotalValueEUR += value / EURUSDRate
			}

			s.Positions = append(s.Positions, PositionView{
				Symbol:       sym,
				Exchange:     exchange,
				Currency:     currency,
				Shares:       lot.Shares,
				BuyPrice:     lot.BuyPrice,
				CurrentPrice: current,
				Cost:         cost,
				Value:        value,
				Profit:       profit,
				ProfitPct:    profitPct,
			})
		}
	}

	s.TotalProfitEUR = s.TotalValueEUR - s.TotalCostEUR
	if s.TotalCostEUR > 0 {
		s.ProfitPctEUR = s.TotalProfitEUR / s.TotalCostEUR * 100
	}
	s.TotalProfitUSD = s.TotalValueUSD - s.TotalCostUSD
	if s.TotalCostUSD > 0 {
		s.ProfitPctUSD = s.TotalProfitUSD / s.TotalCostUSD * 100
	}
	return s
}
