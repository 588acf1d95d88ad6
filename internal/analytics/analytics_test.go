package analytics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trade-journal-go/internal/models"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func at(s string) time.Time {
	t, err := time.Parse("2006-01-02T15:04", s)
	if err != nil {
		panic(err)
	}
	return t
}

func closedTrade(id uint, entry, instrument string, pos models.Position, pnl string) models.Trade {
	t := models.Trade{
		DateEntry:  at(entry),
		Instrument: instrument,
		Position:   pos,
		PnL:        d(pnl),
		Rate:       decimal.Zero,
	}
	t.ID = id
	exit := t.DateEntry.Add(2 * time.Hour)
	t.DateExit = &exit
	if t.PnL.Sign() >= 0 {
		t.SetOutcome(models.Closed(models.ResultWin))
	} else {
		t.SetOutcome(models.Closed(models.ResultLoss))
	}
	return t
}

func openTrade(id uint, entry string, status models.Status, stalePnL string) models.Trade {
	t := models.Trade{
		DateEntry:  at(entry),
		Instrument: "EURUSD",
		Position:   models.Long,
		Status:     status,
		Result:     string(status),
		PnL:        d(stalePnL),
	}
	t.ID = id
	return t
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, d(want).Equal(got), "want %s, got %s", want, got)
}

func sampleTrades() []models.Trade {
	return []models.Trade{
		closedTrade(1, "2024-01-10T09:30", "EURUSD", models.Long, "500"),
		closedTrade(2, "2024-01-15T14:00", "XAUUSD", models.Short, "-200"),
		closedTrade(3, "2024-02-03T09:05", "EURUSD", models.Short, "150"),
		closedTrade(4, "2024-02-20T22:45", "BTCUSD", models.Long, "-50"),
		openTrade(5, "2024-02-21T10:00", models.StatusRunning, "999"),
	}
}

func TestEmptyCollections(t *testing.T) {
	s := Summarize(nil)
	assert.Zero(t, s.TotalTrades)
	assert.True(t, s.WinRate.IsZero())
	assert.True(t, s.AvgWin.IsZero())
	assert.True(t, s.AvgLoss.IsZero())
	assert.True(t, s.ProfitFactor.IsZero())
	assert.True(t, s.BestTrade.IsZero())
	assert.True(t, s.WorstTrade.IsZero())

	r := Build(nil, nil)
	assert.Empty(t, r.Accumulation)
	assert.Empty(t, r.Instruments)
	assert.Len(t, r.Monthly, 12)
	assert.Len(t, r.Hourly, 24)
	assert.Len(t, r.Weekdays, 7)
	assert.True(t, r.Equity.Equity.IsZero())
}

func TestSummarize(t *testing.T) {
	s := Summarize(sampleTrades())

	assert.Equal(t, 5, s.TotalTrades)
	assert.Equal(t, 2, s.Wins)
	assert.Equal(t, 2, s.Losses)
	assertDecimal(t, "50", s.WinRate)
	assertDecimal(t, "650", s.GrossProfit)
	assertDecimal(t, "250", s.GrossLoss)
	assertDecimal(t, "400", s.NetProfit)
	assertDecimal(t, "2.6", s.ProfitFactor)
	assertDecimal(t, "325", s.AvgWin)
	assertDecimal(t, "125", s.AvgLoss)
	assertDecimal(t, "500", s.BestTrade)
	assertDecimal(t, "-200", s.WorstTrade)
}

func TestRunningTradeExcluded(t *testing.T) {
	trades := []models.Trade{openTrade(1, "2024-03-01T10:00", models.StatusRunning, "750")}

	wl := CountWinLoss(trades)
	assert.Zero(t, wl.Total())
	g := GrossProfitLoss(trades)
	assert.True(t, g.Profit.IsZero())
	assert.True(t, g.Loss.IsZero())
	best, worst := BestWorst(trades)
	assert.True(t, best.IsZero())
	assert.True(t, worst.IsZero())
	assertDecimal(t, "0", ByInstrument(trades)[0].Value)
}

func TestBestWorstAllLosses(t *testing.T) {
	trades := []models.Trade{
		closedTrade(1, "2024-01-02T10:00", "EURUSD", models.Long, "-40"),
		closedTrade(2, "2024-01-03T10:00", "EURUSD", models.Short, "-15"),
	}
	best, worst := BestWorst(trades)
	assertDecimal(t, "-15", best)
	assertDecimal(t, "-40", worst)
}

func TestWinRateRounding(t *testing.T) {
	assertDecimal(t, "66.7", WinRate(2, 3))
	assertDecimal(t, "0", WinRate(0, 0))
	assertDecimal(t, "100", WinRate(4, 4))
}

func TestProfitFactorWithoutLosses(t *testing.T) {
	g := Gross{Profit: d("1234.567"), Loss: decimal.Zero}
	assertDecimal(t, "1234.57", ProfitFactor(g))
}

func TestAccumulation(t *testing.T) {
	trades := []models.Trade{
		closedTrade(3, "2024-01-02T10:00", "EURUSD", models.Long, "30"),
		closedTrade(1, "2024-01-03T10:00", "EURUSD", models.Long, "-10"),
		closedTrade(2, "2024-01-02T10:00", "EURUSD", models.Long, "5"),
	}

	points := Accumulation(trades)
	require.Len(t, points, 3)
	assert.Equal(t, []uint{2, 3, 1}, []uint{points[0].TradeID, points[1].TradeID, points[2].TradeID})
	assert.Equal(t, "Trade 1", points[0].Label)

	prev := decimal.Zero
	for _, p := range points {
		assert.True(t, p.Balance.Equal(prev.Add(p.PnL)))
		prev = p.Balance
	}
	assertDecimal(t, "25", points[2].Balance)

	desc := Descending(points)
	assert.Equal(t, uint(1), desc[0].TradeID)
	assert.Equal(t, uint(2), desc[2].TradeID)
	// input order is untouched
	assert.Equal(t, uint(3), trades[0].ID)
}

func TestAccountEquity(t *testing.T) {
	txs := []models.Transaction{
		{Type: models.Deposit, Amount: d("1000")},
		{Type: models.Withdrawal, Amount: d("200")},
	}
	e := AccountEquity(txs, d("300"))
	assertDecimal(t, "1000", e.Deposits)
	assertDecimal(t, "200", e.Withdrawals)
	assertDecimal(t, "1100", e.Equity)
}

func TestByInstrument(t *testing.T) {
	buckets := ByInstrument(sampleTrades())
	require.Len(t, buckets, 3)
	assert.Equal(t, "EURUSD", buckets[0].Name)
	assertDecimal(t, "650", buckets[0].Value)
	assert.Equal(t, "BTCUSD", buckets[1].Name)
	assert.Equal(t, "XAUUSD", buckets[2].Name)

	dist := InstrumentDistribution(sampleTrades())
	assert.Equal(t, Count{Name: "EURUSD", Count: 3}, dist[0])
}

func TestTimeBucketsUseEntryDate(t *testing.T) {
	tr := closedTrade(1, "2024-01-31T23:30", "EURUSD", models.Long, "100")
	exit := at("2024-02-01T01:00")
	tr.DateExit = &exit
	trades := []models.Trade{tr}

	monthly := MonthOfYear(trades)
	assertDecimal(t, "100", monthly[0].Value)
	assert.True(t, monthly[1].Value.IsZero())

	hourly := Hourly(trades)
	assert.Equal(t, "23:00", hourly[23].Name)
	assertDecimal(t, "100", hourly[23].Value)
	assert.True(t, hourly[12].Value.IsZero())

	weekdays := Weekday(trades)
	assert.Equal(t, "Wed", weekdays[3].Name)
	assertDecimal(t, "100", weekdays[time.Wednesday].Value)

	reports := MonthlyReports(trades)
	require.Len(t, reports, 1)
	assert.Equal(t, "2024-01", reports[0].Month)
}

func TestMonthlyReports(t *testing.T) {
	reports := MonthlyReports(sampleTrades())
	require.Len(t, reports, 2)

	feb := reports[0]
	assert.Equal(t, "2024-02", feb.Month)
	assert.Equal(t, 3, feb.Total)
	assert.Equal(t, 1, feb.Wins)
	assert.Equal(t, 1, feb.Losses)
	assertDecimal(t, "100", feb.PnL)
	assertDecimal(t, "50", feb.WinRate)

	assert.Equal(t, "2024-01", reports[1].Month)
	assertDecimal(t, "300", reports[1].PnL)
}

func TestCalendar(t *testing.T) {
	trades := []models.Trade{
		closedTrade(1, "2024-10-01T08:00", "EURUSD", models.Long, "40"),
		closedTrade(2, "2024-10-01T15:00", "EURUSD", models.Long, "-15"),
		closedTrade(3, "2024-10-31T15:00", "EURUSD", models.Long, "10"),
		closedTrade(4, "2024-11-01T15:00", "EURUSD", models.Long, "10"),
	}

	grid := Calendar(trades, 2024, time.October)
	// 1 Oct 2024 is a Tuesday
	require.Len(t, grid, 2+31)
	assert.Zero(t, grid[0].Day)
	assert.Zero(t, grid[1].Day)

	first := grid[2]
	assert.Equal(t, 1, first.Day)
	assert.Equal(t, "2024-10-01", first.Date)
	assert.Equal(t, 2, first.Count)
	assertDecimal(t, "25", first.PnL)
	assert.Equal(t, []uint{1, 2}, first.TradeIDs)

	last := grid[len(grid)-1]
	assert.Equal(t, 31, last.Day)
	assert.Equal(t, 1, last.Count)
}

func TestHoldingTimes(t *testing.T) {
	quick := closedTrade(1, "2024-05-01T10:00", "EURUSD", models.Long, "5")
	exit := quick.DateEntry.Add(10 * time.Minute)
	quick.DateExit = &exit

	long := closedTrade(2, "2024-05-01T10:00", "EURUSD", models.Long, "-5")
	exit2 := long.DateEntry.Add(3*time.Hour + 15*time.Minute)
	long.DateExit = &exit2

	running := openTrade(3, "2024-05-01T10:00", models.StatusRunning, "0")

	points := HoldingTimes([]models.Trade{quick, long, running})
	require.Len(t, points, 2)
	assertDecimal(t, "0.5", points[0].Hours)
	assertDecimal(t, "3.3", points[1].Hours)
	assertDecimal(t, "-5", points[1].PnL)
}

func TestLongShort(t *testing.T) {
	split := LongShort(sampleTrades())

	assert.Equal(t, 3, split.Long.Trades)
	assert.Equal(t, 1, split.Long.Wins)
	assert.Equal(t, 1, split.Long.Losses)
	assertDecimal(t, "50", split.Long.WinRate)
	assertDecimal(t, "450", split.Long.PnL)

	assert.Equal(t, 2, split.Short.Trades)
	assertDecimal(t, "50", split.Short.WinRate)
	assertDecimal(t, "-50", split.Short.PnL)
}

func TestBuild(t *testing.T) {
	txs := []models.Transaction{
		{Type: models.Deposit, Amount: d("1000")},
		{Type: models.Withdrawal, Amount: d("200")},
	}
	r := Build(sampleTrades(), txs)
	assertDecimal(t, "1200", r.Equity.Equity)
	assert.Len(t, r.Accumulation, 5)
	assertDecimal(t, "400", r.Accumulation[4].Balance)
	assert.Len(t, r.Holding, 4)
}
