package analytics

import (
	"github.com/shopspring/decimal"

	"trade-journal-go/internal/models"
)

// Summary holds the headline dashboard metrics.
type Summary struct {
	TotalTrades  int             `json:"totalTrades"`
	Wins         int             `json:"wins"`
	Losses       int             `json:"losses"`
	WinRate      decimal.Decimal `json:"winRate"`
	GrossProfit  decimal.Decimal `json:"grossProfit"`
	GrossLoss    decimal.Decimal `json:"grossLoss"`
	NetProfit    decimal.Decimal `json:"netProfit"`
	ProfitFactor decimal.Decimal `json:"profitFactor"`
	AvgWin       decimal.Decimal `json:"avgWin"`
	AvgLoss      decimal.Decimal `json:"avgLoss"`
	BestTrade    decimal.Decimal `json:"bestTrade"`
	WorstTrade   decimal.Decimal `json:"worstTrade"`
}

// Report is the complete set of derived analytics for one snapshot of the
// journal.
type Report struct {
	Summary      Summary             `json:"summary"`
	Equity       Equity              `json:"equity"`
	Sides        SideSplit           `json:"sides"`
	Accumulation []AccumulationPoint `json:"accumulation"`
	Instruments  []Bucket            `json:"instruments"`
	Distribution []Count             `json:"distribution"`
	Monthly      []Bucket            `json:"monthly"`
	Hourly       []Bucket            `json:"hourly"`
	Weekdays     []Bucket            `json:"weekdays"`
	Holding      []HoldingPoint      `json:"holding"`
	Reports      []MonthlyReport     `json:"reports"`
}

// Summarize computes the headline metrics.
func Summarize(trades []models.Trade) Summary {
	wl := CountWinLoss(trades)
	g := GrossProfitLoss(trades)
	avgWin, avgLoss := Averages(g, wl)
	best, worst := BestWorst(trades)
	return Summary{
		TotalTrades:  len(trades),
		Wins:         wl.Wins,
		Losses:       wl.Losses,
		WinRate:      wl.Rate(),
		GrossProfit:  g.Profit,
		GrossLoss:    g.Loss,
		NetProfit:    g.Net(),
		ProfitFactor: ProfitFactor(g),
		AvgWin:       avgWin,
		AvgLoss:      avgLoss,
		BestTrade:    best,
		WorstTrade:   worst,
	}
}

// Build recomputes every aggregate from trades and txs. The accumulation
// series is returned chronologically.
func Build(trades []models.Trade, txs []models.Transaction) Report {
	summary := Summarize(trades)
	return Report{
		Summary:      summary,
		Equity:       AccountEquity(txs, summary.NetProfit),
		Sides:        LongShort(trades),
		Accumulation: Accumulation(trades),
		Instruments:  ByInstrument(trades),
		Distribution: InstrumentDistribution(trades),
		Monthly:      MonthOfYear(trades),
		Hourly:       Hourly(trades),
		Weekdays:     Weekday(trades),
		Holding:      HoldingTimes(trades),
		Reports:      MonthlyReports(trades),
	}
}
