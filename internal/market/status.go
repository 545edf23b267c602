package market

import "time"

// tradingHolidays lists the Xetra closing days for 2024.
var tradingHolidays = map[string]bool{
	"2024-01-01": true, // New Year's Day
	"2024-03-29": true, // Good Friday
	"2024-04-01": true, // Easter Monday
	"2024-05-01": true, // Labour Day
	"2024-05-09": true, // Ascension Day
	"2024-05-20": true, // Whit Monday
	"2024-10-03": true, // German Unity Day
	"2024-12-24": true, // Christmas Eve (half day)
	"2024-12-25": true, // Christmas Day
	"2024-12-26": true, // Boxing Day
	"2024-12-31": true, // New Year's Eve (half day)
}

// Status describes the Xetra trading session at a point in time.
type Status struct {
	Label string
	Open  bool
}

// berlin resolves the exchange timezone once.
var berlin = mustLoad("Europe/Berlin")

func mustLoad(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// StatusAt reports whether the German market is open at the given instant.
// Xetra trades Monday-Friday 09:00-17:30 CET/CEST.
func StatusAt(t time.Time) Status {
	local := t.In(berlin)

	if wd := local.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return Status{Label: "Fermé (weekend)"}
	}
	if tradingHolidays[local.Format("2006-01-02")] {
		return Status{Label: "Fermé (jour férié)"}
	}

	h, m := local.Hour(), local.Minute()
	if (h >= 9 && h < 17) || (h == 17 && m <= 30) {
		return Status{Label: "Ouvert", Open: true}
	}
	return Status{Label: "Fermé"}
}

// CurrentStatus reports the market status right now.
func CurrentStatus() Status {
	return StatusAt(time.Now())
}
