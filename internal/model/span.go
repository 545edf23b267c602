package model

import "fmt"

// Span is the total historical window requested from a provider.
type Span string

const (
	Span1Day    Span = "1d"
	Span5Days   Span = "5d"
	Span1Month  Span = "1mo"
	Span3Months Span = "3mo"
	Span6Months Span = "6mo"
	Span1Year   Span = "1y"
	Span2Years  Span = "2y"
	Span5Years  Span = "5y"
	Span10Years Span = "10y"
	SpanMax     Span = "max"
)

// DefaultSpan is used when a requested span keyword is not recognized.
const DefaultSpan = Span1Month

var validSpans = map[Span]bool{
	Span1Day: true, Span5Days: true, Span1Month: true, Span3Months: true,
	Span6Months: true, Span1Year: true, Span2Years: true, Span5Years: true,
	Span10Years: true, SpanMax: true,
}

// ParseSpan validates a span keyword.
func ParseSpan(s string) (Span, error) {
	if validSpans[Span(s)] {
		return Span(s), nil
	}
	return DefaultSpan, fmt.Errorf("unknown span %q", s)
}

// Interval is the sampling granularity within a span.
type Interval string

const (
	Interval1Minute   Interval = "1m"
	Interval5Minutes  Interval = "5m"
	Interval15Minutes Interval = "15m"
	Interval30Minutes Interval = "30m"
	Interval1Hour     Interval = "1h"
	Interval1Day      Interval = "1d"
	Interval1Week     Interval = "1wk"
	Interval1Month    Interval = "1mo"
)

// DefaultInterval is used when a requested interval keyword is not recognized.
const DefaultInterval = Interval1Day

var validIntervals = map[Interval]bool{
	Interval1Minute: true, Interval5Minutes: true, Interval15Minutes: true,
	Interval30Minutes: true, Interval1Hour: true, Interval1Day: true,
	Interval1Week: true, Interval1Month: true,
}

// ParseInterval validates an interval keyword.
func ParseInterval(s string) (Interval, error) {
	if validIntervals[Interval(s)] {
		return Interval(s), nil
	}
	return DefaultInterval, fmt.Errorf("unknown interval %q", s)
}

// Intraday reports whether the interval samples within a trading day.
func (i Interval) Intraday() bool {
	switch i {
	case Interval1Minute, Interval5Minutes, Interval15Minutes, Interval30Minutes, Interval1Hour:
		return true
	}
	return false
}
