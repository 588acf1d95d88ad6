// Package store persists trades and transactions with gorm.
package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"trade-journal-go/internal/models"
)

// Store is the gorm-backed record store. Each call is a single
// self-contained operation; conflicting writes are serialized by the
// database.
type Store struct {
	db *gorm.DB
}

// New wraps an open, migrated connection.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// ListTrades returns every trade, newest created first.
func (s *Store) ListTrades(ctx context.Context) ([]models.Trade, error) {
	var trades []models.Trade
	if err := s.db.WithContext(ctx).Order("created_at desc, id desc").Find(&trades).Error; err != nil {
		return nil, wrap("list trades", err)
	}
	return trades, nil
}

// GetTrade loads one trade by id.
func (s *Store) GetTrade(ctx context.Context, id uint) (*models.Trade, error) {
	var trade models.Trade
	if err := s.db.WithContext(ctx).First(&trade, id).Error; err != nil {
		return nil, wrap(fmt.Sprintf("get trade %d", id), err)
	}
	return &trade, nil
}

// CreateTrade inserts t and fills in its id and timestamps.
func (s *Store) CreateTrade(ctx context.Context, t *models.Trade) error {
	t.ID = 0
	return wrap("create trade", s.db.WithContext(ctx).Create(t).Error)
}

// UpdateTrade replaces every field of trade id with t. The id and creation
// time are preserved.
func (s *Store) UpdateTrade(ctx context.Context, id uint, t *models.Trade) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Trade
		if err := tx.First(&existing, id).Error; err != nil {
			return err
		}
		t.Model = existing.Model
		return tx.Save(t).Error
	})
	return wrap(fmt.Sprintf("update trade %d", id), err)
}

// DeleteTrade removes trade id.
func (s *Store) DeleteTrade(ctx context.Context, id uint) error {
	return s.delete(ctx, &models.Trade{}, id, "trade")
}

// ListTransactions returns every transaction, newest created first.
func (s *Store) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	var txs []models.Transaction
	if err := s.db.WithContext(ctx).Order("created_at desc, id desc").Find(&txs).Error; err != nil {
		return nil, wrap("list transactions", err)
	}
	return txs, nil
}

// CreateTransaction inserts tx and fills in its id and timestamps.
func (s *Store) CreateTransaction(ctx context.Context, tx *models.Transaction) error {
	tx.ID = 0
	return wrap("create transaction", s.db.WithContext(ctx).Create(tx).Error)
}

// DeleteTransaction removes transaction id.
func (s *Store) DeleteTransaction(ctx context.Context, id uint) error {
	return s.delete(ctx, &models.Transaction{}, id, "transaction")
}

func (s *Store) delete(ctx context.Context, model any, id uint, kind string) error {
	op := fmt.Sprintf("delete %s %d", kind, id)
	res := s.db.WithContext(ctx).Delete(model, id)
	if res.Error != nil {
		return wrap(op, res.Error)
	}
	if res.RowsAffected == 0 {
		return wrap(op, ErrNotFound)
	}
	return nil
}
