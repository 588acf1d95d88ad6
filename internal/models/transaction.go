package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the direction of a cash movement.
type TransactionType string

const (
	Deposit    TransactionType = "Deposit"
	Withdrawal TransactionType = "Withdrawal"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	return t == Deposit || t == Withdrawal
}

// Transaction is a deposit or withdrawal. Amount is always positive; the
// effect on the balance comes from Type.
type Transaction struct {
	Model
	Date   time.Time       `gorm:"not null;index" json:"date"`
	Type   TransactionType `gorm:"type:varchar(16);not null" json:"type"`
	Amount decimal.Decimal `gorm:"type:decimal(20,8);not null" json:"amount"`
	Note   string          `gorm:"type:text" json:"note,omitempty"`
}

// Signed returns the amount with the sign of its effect on the balance.
func (t Transaction) Signed() decimal.Decimal {
	if t.Type == Withdrawal {
		return t.Amount.Neg()
	}
	return t.Amount
}
