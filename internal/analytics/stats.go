// Package analytics derives performance statistics from journaled trades and
// cash transactions. Every function is a pure reduction over its arguments;
// callers recompute from the full collection on each read.
package analytics

import (
	"github.com/shopspring/decimal"

	"trade-journal-go/internal/models"
)

var hundred = decimal.NewFromInt(100)

// WinLoss counts closed trades by result. Running and Pending trades are
// never counted.
type WinLoss struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
}

// Total is the number of classified trades.
func (w WinLoss) Total() int { return w.Wins + w.Losses }

// Rate is the win percentage with one decimal.
func (w WinLoss) Rate() decimal.Decimal { return WinRate(w.Wins, w.Total()) }

func CountWinLoss(trades []models.Trade) WinLoss {
	var wl WinLoss
	for _, t := range trades {
		o := t.Outcome()
		switch {
		case o.IsWin():
			wl.Wins++
		case o.IsLoss():
			wl.Losses++
		}
	}
	return wl
}

// WinRate returns wins/total as a percentage rounded to one decimal, or zero
// when total is zero.
func WinRate(wins, total int) decimal.Decimal {
	if total <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(wins)).
		Div(decimal.NewFromInt(int64(total))).
		Mul(hundred).
		Round(1)
}

// Gross holds the two non-negative sides of realized P&L.
type Gross struct {
	Profit decimal.Decimal `json:"grossProfit"`
	Loss   decimal.Decimal `json:"grossLoss"`
}

// Net is Profit minus Loss.
func (g Gross) Net() decimal.Decimal { return g.Profit.Sub(g.Loss) }

func GrossProfitLoss(trades []models.Trade) Gross {
	g := Gross{Profit: decimal.Zero, Loss: decimal.Zero}
	for _, t := range trades {
		pnl := t.EffectivePnL()
		switch pnl.Sign() {
		case 1:
			g.Profit = g.Profit.Add(pnl)
		case -1:
			g.Loss = g.Loss.Add(pnl.Abs())
		}
	}
	return g
}

// ProfitFactor is gross profit over gross loss with two decimals. With no
// losses it returns the gross profit itself, which is not a bounded ratio.
func ProfitFactor(g Gross) decimal.Decimal {
	if g.Loss.IsZero() {
		return g.Profit.Round(2)
	}
	return g.Profit.Div(g.Loss).Round(2)
}

// Averages returns the mean winning and losing amounts, each zero when
// there are no trades on that side.
func Averages(g Gross, wl WinLoss) (avgWin, avgLoss decimal.Decimal) {
	avgWin, avgLoss = decimal.Zero, decimal.Zero
	if wl.Wins > 0 {
		avgWin = g.Profit.Div(decimal.NewFromInt(int64(wl.Wins))).Round(2)
	}
	if wl.Losses > 0 {
		avgLoss = g.Loss.Div(decimal.NewFromInt(int64(wl.Losses))).Round(2)
	}
	return avgWin, avgLoss
}

// BestWorst returns the largest and smallest pnl among closed trades, or
// zeros when there are none.
func BestWorst(trades []models.Trade) (best, worst decimal.Decimal) {
	best, worst = decimal.Zero, decimal.Zero
	seen := false
	for _, t := range trades {
		if !t.Outcome().IsClosed() {
			continue
		}
		if !seen {
			best, worst = t.PnL, t.PnL
			seen = true
			continue
		}
		best = decimal.Max(best, t.PnL)
		worst = decimal.Min(worst, t.PnL)
	}
	return best, worst
}

// SideStats summarizes trades on one side.
type SideStats struct {
	Trades  int             `json:"trades"`
	Wins    int             `json:"wins"`
	Losses  int             `json:"losses"`
	WinRate decimal.Decimal `json:"winRate"`
	PnL     decimal.Decimal `json:"pnl"`
}

// SideSplit partitions statistics by position.
type SideSplit struct {
	Long  SideStats `json:"long"`
	Short SideStats `json:"short"`
}

func LongShort(trades []models.Trade) SideSplit {
	var longs, shorts []models.Trade
	for _, t := range trades {
		switch t.Position {
		case models.Long:
			longs = append(longs, t)
		case models.Short:
			shorts = append(shorts, t)
		}
	}
	return SideSplit{Long: sideStats(longs), Short: sideStats(shorts)}
}

func sideStats(trades []models.Trade) SideStats {
	wl := CountWinLoss(trades)
	return SideStats{
		Trades:  len(trades),
		Wins:    wl.Wins,
		Losses:  wl.Losses,
		WinRate: wl.Rate(),
		PnL:     sumPnL(trades),
	}
}

func sumPnL(trades []models.Trade) decimal.Decimal {
	total := decimal.Zero
	for _, t := range trades {
		total = total.Add(t.EffectivePnL())
	}
	return total
}
