package market

import (
	"fmt"
	"strings"
)

// German exchange suffixes, most specific first.
var exchangeSuffixes = []struct {
	Suffix string
	Name   string
}{
	{".STU", "Stuttgart Stock Exchange"},
	{".DE", "Xetra (Frankfurt)"},
	{".F", "Frankfurt Stock Exchange"},
	{".BE", "Berlin Stock Exchange"},
	{".MU", "Munich Stock Exchange"},
	{".HA", "Hamburg Stock Exchange"},
	{".DU", "Düsseldorf Stock Exchange"},
}

// Exchange classifies a symbol by its German listing suffix. Symbols with no
// recognized suffix are treated as US-listed ADRs.
func Exchange(symbol string) string {
	for _, e := range exchangeSuffixes {
		if strings.HasSuffix(symbol, e.Suffix) {
			return e.Name
		}
	}
	return "US Listed (ADR)"
}

// Currency returns the trading currency for a symbol.
func Currency(symbol string) string {
	for _, e := range exchangeSuffixes {
		if strings.HasSuffix(symbol, e.Suffix) {
			return "EUR"
		}
	}
	return "USD"
}

// FormatCurrency renders a price in the symbol's trading currency, using
// German large-number units for euro amounts.
func FormatCurrency(value float64, symbol string) string {
	if value == 0 {
		return "N/A"
	}
	if Currency(symbol) == "EUR" {
		switch {
		case value >= 1e12:
			return fmt.Sprintf("€%.2f Bio", value/1e12)
		case value >= 1e9:
			return fmt.Sprintf("€%.2f Mrd", value/1e9)
		case value >= 1e6:
			return fmt.Sprintf("€%.2f Mio", value/1e6)
		default:
			return fmt.Sprintf("€%.2f", value)
		}
	}
	return fmt.Sprintf("$%.2f", value)
}

// FormatLargeNumberGerman formats a plain number with German units
// (Mio, Mrd, Bio).
func FormatLargeNumberGerman(num float64) string {
	switch {
	case num > 1e12:
		return fmt.Sprintf("%.2f Bio", num/1e12)
	case num > 1e9:
		return fmt.Sprintf("%.2f Mrd", num/1e9)
	case num > 1e6:
		return fmt.Sprintf("%.2f Mio", num/1e6)
	default:
		return fmt.Sprintf("%.0f", num)
	}
}

// GroupWatchlist splits symbols into Xetra, regional German exchanges, and
// US-listed ADRs.
func GroupWatchlist(symbols []string) (xetra, regional, us []string) {
	for _, s := range symbols {
		switch {
		case strings.HasSuffix(s, ".DE"):
			xetra = append(xetra, s)
		case Currency(s) == "EUR":
			regional = append(regional, s)
		default:
			us = append(us, s)
		}
	}
	return xetra, regional, us
}
