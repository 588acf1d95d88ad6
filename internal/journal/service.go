// Package journal is the application layer of the trading journal: it
// validates submissions, derives P&L with the calculator, persists through
// the record store and serves analytics recomputed on every read.
package journal

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"trade-journal-go/internal/analytics"
	"trade-journal-go/internal/config"
	"trade-journal-go/internal/export"
	"trade-journal-go/internal/fxrates"
	"trade-journal-go/internal/models"
	"trade-journal-go/internal/pnl"
)

// Store is the record store the service depends on.
type Store interface {
	ListTrades(ctx context.Context) ([]models.Trade, error)
	GetTrade(ctx context.Context, id uint) (*models.Trade, error)
	CreateTrade(ctx context.Context, t *models.Trade) error
	UpdateTrade(ctx context.Context, id uint, t *models.Trade) error
	DeleteTrade(ctx context.Context, id uint) error
	ListTransactions(ctx context.Context) ([]models.Transaction, error)
	CreateTransaction(ctx context.Context, tx *models.Transaction) error
	DeleteTransaction(ctx context.Context, id uint) error
}

// Service coordinates the calculator, the aggregator and the store.
type Service struct {
	store    Store
	rates    fxrates.Provider
	defaults config.Journal
	logger   *zap.Logger
}

// NewService creates a Service. rates may be nil, in which case a missing
// conversion rate counts as 1.
func NewService(store Store, rates fxrates.Provider, defaults config.Journal, logger *zap.Logger) *Service {
	return &Service{
		store:    store,
		rates:    rates,
		defaults: defaults,
		logger:   logger.Named("journal"),
	}
}

// Preview evaluates a submission without persisting it.
func (s *Service) Preview(ctx context.Context, req TradeRequest) (pnl.Result, error) {
	in, err := req.Parse()
	if err != nil {
		return pnl.Result{}, err
	}
	return s.evaluate(ctx, s.withDefaults(in))
}

// ListTrades returns all trades, newest first.
func (s *Service) ListTrades(ctx context.Context) ([]models.Trade, error) {
	return s.store.ListTrades(ctx)
}

// GetTrade returns one trade.
func (s *Service) GetTrade(ctx context.Context, id uint) (*models.Trade, error) {
	return s.store.GetTrade(ctx, id)
}

// CreateTrade validates req, computes its result and stores it.
func (s *Service) CreateTrade(ctx context.Context, req TradeRequest) (*models.Trade, error) {
	trade, err := s.buildTrade(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.store.CreateTrade(ctx, trade); err != nil {
		s.logger.Error("Failed to save trade", zap.String("instrument", trade.Instrument), zap.Error(err))
		return nil, err
	}
	s.logger.Info("Trade created",
		zap.Uint("trade_id", trade.ID),
		zap.String("instrument", trade.Instrument),
		zap.String("status", string(trade.Status)),
		zap.Stringer("pnl", trade.PnL),
	)
	return trade, nil
}

// UpdateTrade replaces trade id with req and recomputes pnl, rate and
// result. Moving a trade out of Closed resets its pnl and rate to zero.
func (s *Service) UpdateTrade(ctx context.Context, id uint, req TradeRequest) (*models.Trade, error) {
	// an unknown id must not cost a rate lookup or surface its failure
	if _, err := s.store.GetTrade(ctx, id); err != nil {
		return nil, err
	}
	trade, err := s.buildTrade(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.store.UpdateTrade(ctx, id, trade); err != nil {
		s.logger.Error("Failed to update trade", zap.Uint("trade_id", id), zap.Error(err))
		return nil, err
	}
	s.logger.Info("Trade updated",
		zap.Uint("trade_id", id),
		zap.String("status", string(trade.Status)),
		zap.Stringer("pnl", trade.PnL),
	)
	return trade, nil
}

// DeleteTrade removes trade id.
func (s *Service) DeleteTrade(ctx context.Context, id uint) error {
	if err := s.store.DeleteTrade(ctx, id); err != nil {
		s.logger.Error("Failed to delete trade", zap.Uint("trade_id", id), zap.Error(err))
		return err
	}
	s.logger.Info("Trade deleted", zap.Uint("trade_id", id))
	return nil
}

// ListTransactions returns all cash movements, newest first.
func (s *Service) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	return s.store.ListTransactions(ctx)
}

// CreateTransaction validates and stores a deposit or withdrawal.
func (s *Service) CreateTransaction(ctx context.Context, req TransactionRequest) (*models.Transaction, error) {
	in, err := req.Parse()
	if err != nil {
		return nil, err
	}
	tx := &models.Transaction{Date: in.Date, Type: in.Type, Amount: in.Amount, Note: in.Note}
	if err := s.store.CreateTransaction(ctx, tx); err != nil {
		s.logger.Error("Failed to save transaction", zap.String("type", string(tx.Type)), zap.Error(err))
		return nil, err
	}
	s.logger.Info("Transaction created",
		zap.Uint("transaction_id", tx.ID),
		zap.String("type", string(tx.Type)),
		zap.Stringer("amount", tx.Amount),
	)
	return tx, nil
}

// DeleteTransaction removes transaction id.
func (s *Service) DeleteTransaction(ctx context.Context, id uint) error {
	if err := s.store.DeleteTransaction(ctx, id); err != nil {
		s.logger.Error("Failed to delete transaction", zap.Uint("transaction_id", id), zap.Error(err))
		return err
	}
	s.logger.Info("Transaction deleted", zap.Uint("transaction_id", id))
	return nil
}

// Dashboard recomputes the full analytics report from storage.
func (s *Service) Dashboard(ctx context.Context) (analytics.Report, error) {
	trades, err := s.store.ListTrades(ctx)
	if err != nil {
		return analytics.Report{}, err
	}
	txs, err := s.store.ListTransactions(ctx)
	if err != nil {
		return analytics.Report{}, err
	}
	return analytics.Build(trades, txs), nil
}

// Accumulation returns the running P&L per trade, newest first.
func (s *Service) Accumulation(ctx context.Context) ([]analytics.AccumulationPoint, error) {
	trades, err := s.store.ListTrades(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.Descending(analytics.Accumulation(trades)), nil
}

// Calendar returns the daily P&L grid of one month.
func (s *Service) Calendar(ctx context.Context, year int, month time.Month) ([]analytics.CalendarDay, error) {
	trades, err := s.store.ListTrades(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.Calendar(trades, year, month), nil
}

// MonthlyReports returns per-month summaries, newest first.
func (s *Service) MonthlyReports(ctx context.Context) ([]analytics.MonthlyReport, error) {
	trades, err := s.store.ListTrades(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.MonthlyReports(trades), nil
}

// Export writes every trade as CSV.
func (s *Service) Export(ctx context.Context, w io.Writer) error {
	trades, err := s.store.ListTrades(ctx)
	if err != nil {
		return err
	}
	return export.WriteTrades(w, trades)
}

func (s *Service) withDefaults(in TradeInput) TradeInput {
	if in.AssetClass == "" {
		in.AssetClass = pnl.AssetClass(s.defaults.DefaultAssetClass)
	}
	if in.QuoteCurrency == "" {
		in.QuoteCurrency = s.defaults.DefaultQuoteCurrency
	}
	return in
}

func (s *Service) buildTrade(ctx context.Context, req TradeRequest) (*models.Trade, error) {
	in, err := req.Parse()
	if err != nil {
		return nil, err
	}
	in = s.withDefaults(in)

	res, err := s.evaluate(ctx, in)
	if err != nil {
		return nil, err
	}

	trade := &models.Trade{
		DateEntry:  in.DateEntry,
		DateExit:   in.DateExit,
		Instrument: in.Instrument,
		Position:   in.Position,
		Entry:      in.Entry,
		Exit:       in.Exit,
		TP:         in.TP,
		SL:         in.SL,
		Lot:        in.Lot,
		Fees:       in.Fees,
		PnL:        res.PnL,
		Rate:       res.Rate,
		Setup:      in.Setup,
		Timeframe:  in.Timeframe,
		Notes:      in.Notes,
	}
	trade.SetOutcome(res.Outcome)
	return trade, nil
}

func (s *Service) evaluate(ctx context.Context, in TradeInput) (pnl.Result, error) {
	conversionRate := decimal.NewFromInt(1)
	if in.Status == models.StatusClosed {
		rate, err := s.conversionRate(ctx, in)
		if err != nil {
			return pnl.Result{}, err
		}
		conversionRate = rate
	}

	res, ok := pnl.Evaluate(in.Status, in.PnLInput(conversionRate))
	if !ok {
		return pnl.Result{}, &ValidationError{Field: "exit", Reason: "entry, exit and lot must be numbers"}
	}
	return res, nil
}

func (s *Service) conversionRate(ctx context.Context, in TradeInput) (decimal.Decimal, error) {
	if in.ConversionRate.Valid {
		return in.ConversionRate.Decimal, nil
	}
	one := decimal.NewFromInt(1)
	if s.rates == nil || pnl.ConversionFor(in.QuoteCurrency) == pnl.NoConversion || strings.EqualFold(in.QuoteCurrency, "Other") {
		return one, nil
	}

	rate, err := s.rates.ConversionRate(ctx, in.QuoteCurrency)
	if err != nil {
		s.logger.Error("Conversion rate lookup failed", zap.String("quote", in.QuoteCurrency), zap.Error(err))
		return decimal.Decimal{}, fmt.Errorf("conversion rate for %s: %w", in.QuoteCurrency, err)
	}
	s.logger.Debug("Fetched conversion rate", zap.String("quote", in.QuoteCurrency), zap.Stringer("rate", rate))
	return rate, nil
}
