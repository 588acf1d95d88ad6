// Package export renders trades as CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"trade-journal-go/internal/models"
)

const (
	dateLayout = "2006-01-02T15:04:05"
	absent     = "-"
)

// Header is the first row of every export.
var Header = []string{
	"Date Entry", "Date Exit", "Instrument", "Position", "Status",
	"Entry", "Exit", "Lot", "Fees", "PnL", "Rate", "Result",
	"Setup", "Notes",
}

// WriteTrades writes a header row followed by one row per trade.
func WriteTrades(w io.Writer, trades []models.Trade) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i := range trades {
		if err := cw.Write(row(&trades[i])); err != nil {
			return fmt.Errorf("write trade %d: %w", trades[i].ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func row(t *models.Trade) []string {
	return []string{
		t.DateEntry.Format(dateLayout),
		formatTime(t.DateExit),
		t.Instrument,
		string(t.Position),
		string(t.Status),
		t.Entry.String(),
		formatNull(t.Exit),
		t.Lot.String(),
		t.Fees.String(),
		t.PnL.StringFixed(2),
		t.Rate.StringFixed(2),
		orAbsent(t.Outcome().String()),
		orAbsent(t.Setup),
		orAbsent(t.Notes),
	}
}

func formatTime(t *time.Time) string {
	if t == nil {
		return absent
	}
	return t.Format(dateLayout)
}

func formatNull(d decimal.NullDecimal) string {
	if !d.Valid {
		return absent
	}
	return d.Decimal.String()
}

func orAbsent(s string) string {
	if s == "" {
		return absent
	}
	return s
}
