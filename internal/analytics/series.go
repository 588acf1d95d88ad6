package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"trade-journal-go/internal/models"
)

// AccumulationPoint is one step of the running P&L curve.
type AccumulationPoint struct {
	Label     string          `json:"name"`
	TradeID   uint            `json:"tradeId"`
	DateEntry time.Time       `json:"dateEntry"`
	PnL       decimal.Decimal `json:"pnl"`
	Balance   decimal.Decimal `json:"balance"`
}

// Chronological returns a copy of trades ordered by entry date, then id.
func Chronological(trades []models.Trade) []models.Trade {
	sorted := make([]models.Trade, len(trades))
	copy(sorted, trades)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if !a.DateEntry.Equal(b.DateEntry) {
			return a.DateEntry.Before(b.DateEntry)
		}
		return a.ID < b.ID
	})
	return sorted
}

// Accumulation returns the running sum of pnl, one point per trade, in
// chronological order.
func Accumulation(trades []models.Trade) []AccumulationPoint {
	sorted := Chronological(trades)
	points := make([]AccumulationPoint, 0, len(sorted))
	running := decimal.Zero
	for i, t := range sorted {
		pnl := t.EffectivePnL()
		running = running.Add(pnl)
		points = append(points, AccumulationPoint{
			Label:     fmt.Sprintf("Trade %d", i+1),
			TradeID:   t.ID,
			DateEntry: t.DateEntry,
			PnL:       pnl,
			Balance:   running,
		})
	}
	return points
}

// Descending returns a reversed copy of points for newest-first display.
func Descending(points []AccumulationPoint) []AccumulationPoint {
	out := make([]AccumulationPoint, len(points))
	for i, p := range points {
		out[len(points)-1-i] = p
	}
	return out
}

// Equity is the account value built from cash movements and trading P&L.
type Equity struct {
	Deposits    decimal.Decimal `json:"totalDeposit"`
	Withdrawals decimal.Decimal `json:"totalWithdrawal"`
	NetProfit   decimal.Decimal `json:"netProfit"`
	Equity      decimal.Decimal `json:"equity"`
}

// AccountEquity computes deposits - withdrawals + netProfit.
func AccountEquity(txs []models.Transaction, netProfit decimal.Decimal) Equity {
	e := Equity{Deposits: decimal.Zero, Withdrawals: decimal.Zero, NetProfit: netProfit}
	for _, tx := range txs {
		switch tx.Type {
		case models.Deposit:
			e.Deposits = e.Deposits.Add(tx.Amount)
		case models.Withdrawal:
			e.Withdrawals = e.Withdrawals.Add(tx.Amount)
		}
	}
	e.Equity = e.Deposits.Sub(e.Withdrawals).Add(netProfit)
	return e
}
