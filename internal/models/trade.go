package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Position is the side of a trade.
type Position string

const (
	Long  Position = "Long"
	Short Position = "Short"
)

// Valid reports whether p is a known side.
func (p Position) Valid() bool {
	return p == Long || p == Short
}

// Status is the lifecycle stage of a trade: Pending -> Running -> Closed.
type Status string

const (
	StatusClosed  Status = "Closed"
	StatusRunning Status = "Running"
	StatusPending Status = "Pending"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusClosed, StatusRunning, StatusPending:
		return true
	}
	return false
}

// Result classifies a closed trade.
type Result string

const (
	ResultWin  Result = "Win"
	ResultLoss Result = "Loss"
)

// Trade represents one journaled position.
// PnL, Rate and Result only carry meaning while Status is Closed.
type Trade struct {
	Model
	DateEntry  time.Time           `gorm:"not null;index" json:"dateEntry"`
	DateExit   *time.Time          `json:"dateExit"`
	Instrument string              `gorm:"type:varchar(32);not null;index" json:"instrument"`
	Position   Position            `gorm:"type:varchar(8);not null" json:"position"`
	Status     Status              `gorm:"type:varchar(8);not null" json:"status"`
	Entry      decimal.Decimal     `gorm:"type:decimal(20,8);not null" json:"entry"`
	Exit       decimal.NullDecimal `gorm:"type:decimal(20,8)" json:"exit"`
	TP         decimal.NullDecimal `gorm:"column:tp;type:decimal(20,8)" json:"tp"`
	SL         decimal.NullDecimal `gorm:"column:sl;type:decimal(20,8)" json:"sl"`
	Lot        decimal.Decimal     `gorm:"type:decimal(20,8);not null" json:"lot"`
	Fees       decimal.Decimal     `gorm:"type:decimal(20,8);not null" json:"fees"`
	// Explicit column names because default GORM naming turns "PnL" into "pn_l".
	PnL       decimal.Decimal `gorm:"column:pnl;type:decimal(20,8);not null" json:"pnl"`
	Rate      decimal.Decimal `gorm:"type:decimal(20,8);not null" json:"rate"`
	Result    string          `gorm:"type:varchar(8);not null" json:"result"`
	Setup     string          `gorm:"type:varchar(64)" json:"setup,omitempty"`
	Timeframe string          `gorm:"type:varchar(16)" json:"timeframe,omitempty"`
	Notes     string          `gorm:"type:text" json:"notes,omitempty"`
}

// Outcome decodes the status/result column pair.
func (t Trade) Outcome() Outcome {
	if t.Status != StatusClosed {
		return Open(t.Status)
	}
	return Closed(Result(t.Result))
}

// SetOutcome writes o back to the status and result columns. Leaving the
// Closed state zeroes pnl and rate.
func (t *Trade) SetOutcome(o Outcome) {
	t.Status = o.Status()
	t.Result = o.String()
	if !o.IsClosed() {
		t.PnL = decimal.Zero
		t.Rate = decimal.Zero
	}
}

// EffectivePnL is the stored pnl for closed trades and zero otherwise, so a
// stale value on a reopened trade never leaks into statistics.
func (t Trade) EffectivePnL() decimal.Decimal {
	if !t.Outcome().IsClosed() {
		return decimal.Zero
	}
	return t.PnL
}

// HoldingTime is the time between entry and exit. ok is false while the
// trade has no exit timestamp.
func (t Trade) HoldingTime() (d time.Duration, ok bool) {
	if t.DateExit == nil {
		return 0, false
	}
	return t.DateExit.Sub(t.DateEntry), true
}
