package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/gunout/Stock-Tracker-Pro-Allemagne/internal/model"
)

// timestampLayout renders bar times as localized strings; the bars carry the
// session's reference timezone already.
const timestampLayout = "2006-01-02 15:04:05"

// WriteCSV writes the series as CSV with a header row.
func WriteCSV(w io.Writer, bars []model.OHLCV) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Date", "Open", "High", "Low", "Close", "Volume"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, b := range bars {
		rec := []string{
			b.Time.Format(timestampLayout),
			strconv.FormatFloat(b.Open, 'f', -1, 64),
			strconv.FormatFloat(b.High, 'f', -1, 64),
			strconv.FormatFloat(b.Low, 'f', -1, 64),
			strconv.FormatFloat(b.Close, 'f', -1, 64),
			strconv.FormatFloat(b.Volume, 'f', -1, 64),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
