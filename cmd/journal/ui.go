package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"trade-journal-go/internal/analytics"
	"trade-journal-go/internal/models"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7C3AED")).
			Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3B82F6")).
			Padding(0, 1)

	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")).Width(16)
	profitStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")).Bold(true)
	lossStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true)
	openStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))
)

func money(d decimal.Decimal) string {
	s := d.StringFixed(2)
	switch d.Sign() {
	case 1:
		return profitStyle.Render(s)
	case -1:
		return lossStyle.Render(s)
	}
	return s
}

func row(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), value)
}

func renderReport(r analytics.Report) string {
	s := r.Summary
	account := panelStyle.Render(strings.Join([]string{
		row("Deposits", r.Equity.Deposits.StringFixed(2)),
		row("Withdrawals", r.Equity.Withdrawals.StringFixed(2)),
		row("Net profit", money(r.Equity.NetProfit)),
		row("Equity", money(r.Equity.Equity)),
	}, "\n"))

	performance := panelStyle.Render(strings.Join([]string{
		row("Trades", fmt.Sprintf("%d", s.TotalTrades)),
		row("Wins / Losses", fmt.Sprintf("%d / %d", s.Wins, s.Losses)),
		row("Win rate", s.WinRate.StringFixed(1)+"%"),
		row("Profit factor", s.ProfitFactor.StringFixed(2)),
		row("Avg win", money(s.AvgWin)),
		row("Avg loss", money(s.AvgLoss.Neg())),
		row("Best trade", money(s.BestTrade)),
		row("Worst trade", money(s.WorstTrade)),
	}, "\n"))

	sides := panelStyle.Render(strings.Join([]string{
		row("Long", fmt.Sprintf("%s (%d)", money(r.Sides.Long.PnL), r.Sides.Long.Trades)),
		row("Short", fmt.Sprintf("%s (%d)", money(r.Sides.Short.PnL), r.Sides.Short.Trades)),
	}, "\n"))

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Trading Journal"),
		lipgloss.JoinHorizontal(lipgloss.Top, account, performance),
		sides,
	)
}

func renderTrades(trades []models.Trade) string {
	if len(trades) == 0 {
		return "No trades recorded."
	}
	lines := make([]string, 0, len(trades)+1)
	lines = append(lines, titleStyle.Render(fmt.Sprintf("%-5s %-16s %-10s %-6s %12s  %s", "ID", "Entry", "Instrument", "Side", "PnL", "Result")))
	for _, t := range trades {
		result := openStyle.Render(t.Result)
		pnl := "-"
		if o := t.Outcome(); o.IsClosed() {
			pnl = t.PnL.StringFixed(2)
			if o.IsWin() {
				result = profitStyle.Render(t.Result)
			} else {
				result = lossStyle.Render(t.Result)
			}
		}
		lines = append(lines, fmt.Sprintf("%-5d %-16s %-10s %-6s %12s  %s",
			t.ID, t.DateEntry.Format("2006-01-02 15:04"), t.Instrument, t.Position, pnl, result))
	}
	return strings.Join(lines, "\n")
}
