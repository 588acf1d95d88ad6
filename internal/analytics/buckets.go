package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"trade-journal-go/internal/models"
)

// Bucket is a named P&L total.
type Bucket struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

// Count is a named trade count.
type Count struct {
	Name  string `json:"name"`
	Count int    `json:"value"`
}

// ByInstrument sums pnl per instrument string, highest total first. The
// instrument is used as stored, without normalization.
func ByInstrument(trades []models.Trade) []Bucket {
	totals := make(map[string]decimal.Decimal)
	for _, t := range trades {
		totals[t.Instrument] = totals[t.Instrument].Add(t.EffectivePnL())
	}
	out := make([]Bucket, 0, len(totals))
	for name, v := range totals {
		out = append(out, Bucket{Name: name, Value: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Value.Cmp(out[j].Value); c != 0 {
			return c > 0
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// InstrumentDistribution counts trades per instrument, most traded first.
func InstrumentDistribution(trades []models.Trade) []Count {
	counts := make(map[string]int)
	for _, t := range trades {
		counts[t.Instrument]++
	}
	out := make([]Count, 0, len(counts))
	for name, n := range counts {
		out = append(out, Count{Name: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}

var monthNames = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// MonthOfYear sums pnl into twelve Jan..Dec buckets by entry month,
// merging years.
func MonthOfYear(trades []models.Trade) []Bucket {
	out := make([]Bucket, 12)
	for i, name := range monthNames {
		out[i] = Bucket{Name: name, Value: decimal.Zero}
	}
	for _, t := range trades {
		m := int(t.DateEntry.Month()) - 1
		out[m].Value = out[m].Value.Add(t.EffectivePnL())
	}
	return out
}

// Hourly sums pnl into 24 buckets named "00:00".."23:00" by entry hour.
func Hourly(trades []models.Trade) []Bucket {
	out := make([]Bucket, 24)
	for h := range out {
		out[h] = Bucket{Name: fmt.Sprintf("%02d:00", h), Value: decimal.Zero}
	}
	for _, t := range trades {
		h := t.DateEntry.Hour()
		out[h].Value = out[h].Value.Add(t.EffectivePnL())
	}
	return out
}

// Weekday sums pnl into Sun..Sat buckets by entry day of week.
func Weekday(trades []models.Trade) []Bucket {
	out := make([]Bucket, 7)
	for d := range out {
		out[d] = Bucket{Name: time.Weekday(d).String()[:3], Value: decimal.Zero}
	}
	for _, t := range trades {
		d := t.DateEntry.Weekday()
		out[d].Value = out[d].Value.Add(t.EffectivePnL())
	}
	return out
}

// MonthlyReport aggregates one calendar month, keyed "2006-01".
type MonthlyReport struct {
	Month   string          `json:"month"`
	PnL     decimal.Decimal `json:"pnl"`
	Wins    int             `json:"wins"`
	Losses  int             `json:"losses"`
	Total   int             `json:"total"`
	WinRate decimal.Decimal `json:"winRate"`
}

// MonthlyReports groups trades by entry month, newest month first.
func MonthlyReports(trades []models.Trade) []MonthlyReport {
	byMonth := make(map[string]*MonthlyReport)
	for _, t := range trades {
		key := t.DateEntry.Format("2006-01")
		r, ok := byMonth[key]
		if !ok {
			r = &MonthlyReport{Month: key, PnL: decimal.Zero}
			byMonth[key] = r
		}
		r.PnL = r.PnL.Add(t.EffectivePnL())
		r.Total++
		o := t.Outcome()
		if o.IsWin() {
			r.Wins++
		} else if o.IsLoss() {
			r.Losses++
		}
	}
	out := make([]MonthlyReport, 0, len(byMonth))
	for _, r := range byMonth {
		r.WinRate = WinRate(r.Wins, r.Wins+r.Losses)
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month > out[j].Month })
	return out
}

// CalendarDay is one cell of a month grid. Padding cells before the first
// of the month have Day 0.
type CalendarDay struct {
	Day      int             `json:"day"`
	Date     string          `json:"date,omitempty"`
	PnL      decimal.Decimal `json:"pnl"`
	Count    int             `json:"count"`
	TradeIDs []uint          `json:"tradeIds,omitempty"`
}

// Calendar lays out a Sunday-first month grid of daily pnl by entry date.
func Calendar(trades []models.Trade, year int, month time.Month) []CalendarDay {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	days := first.AddDate(0, 1, -1).Day()
	padding := int(first.Weekday())

	grid := make([]CalendarDay, padding, padding+days)
	for i := range grid {
		grid[i].PnL = decimal.Zero
	}
	for day := 1; day <= days; day++ {
		grid = append(grid, CalendarDay{
			Day:  day,
			Date: time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Format("2006-01-02"),
			PnL:  decimal.Zero,
		})
	}

	for _, t := range trades {
		y, m, day := t.DateEntry.Date()
		if y != year || m != month {
			continue
		}
		cell := &grid[padding+day-1]
		cell.PnL = cell.PnL.Add(t.EffectivePnL())
		cell.Count++
		cell.TradeIDs = append(cell.TradeIDs, t.ID)
	}
	return grid
}
