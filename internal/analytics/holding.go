package analytics

import (
	"github.com/shopspring/decimal"

	"trade-journal-go/internal/models"
)

var minHoldingHours = decimal.RequireFromString("0.5")

// HoldingPoint pairs how long a trade was held with its result.
type HoldingPoint struct {
	TradeID    uint            `json:"id"`
	Instrument string          `json:"instrument"`
	Hours      decimal.Decimal `json:"hours"`
	PnL        decimal.Decimal `json:"pnl"`
}

// HoldingTimes returns hours held for every trade with an exit timestamp.
// Durations shorter than half an hour are raised to 0.5 so they stay
// visible on a chart.
func HoldingTimes(trades []models.Trade) []HoldingPoint {
	out := make([]HoldingPoint, 0, len(trades))
	for _, t := range trades {
		held, ok := t.HoldingTime()
		if !ok {
			continue
		}
		hours := decimal.NewFromInt(held.Milliseconds()).Div(decimal.NewFromInt(3600000))
		out = append(out, HoldingPoint{
			TradeID:    t.ID,
			Instrument: t.Instrument,
			Hours:      decimal.Max(minHoldingHours, hours).Round(1),
			PnL:        t.EffectivePnL(),
		})
	}
	return out
}
