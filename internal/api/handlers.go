package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"trade-journal-go/internal/journal"
)

// Handler holds dependencies for the API endpoints.
type Handler struct {
	log     *zap.Logger
	journal *journal.Service
}

// NewHandler creates a new Handler.
func NewHandler(log *zap.Logger, svc *journal.Service) *Handler {
	return &Handler{log: log, journal: svc}
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.success(w, map[string]string{"status": "ok"})
}

// ListTrades returns every trade, newest first.
func (h *Handler) ListTrades(w http.ResponseWriter, r *http.Request) {
	trades, err := h.journal.ListTrades(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.success(w, trades)
}

// GetTrade returns one trade.
func (h *Handler) GetTrade(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}
	trade, err := h.journal.GetTrade(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.success(w, trade)
}

// CreateTrade records a new trade.
func (h *Handler) CreateTrade(w http.ResponseWriter, r *http.Request) {
	var req journal.TradeRequest
	if !h.decode(w, r, &req) {
		return
	}
	trade, err := h.journal.CreateTrade(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.created(w, trade)
}

// UpdateTrade replaces an existing trade.
func (h *Handler) UpdateTrade(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}
	var req journal.TradeRequest
	if !h.decode(w, r, &req) {
		return
	}
	trade, err := h.journal.UpdateTrade(r.Context(), id, req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.success(w, trade)
}

// DeleteTrade removes a trade.
func (h *Handler) DeleteTrade(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}
	if err := h.journal.DeleteTrade(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}
	h.success(w, map[string]uint{"id": id})
}

// Accumulation returns the cumulative P&L series, newest first.
func (h *Handler) Accumulation(w http.ResponseWriter, r *http.Request) {
	points, err := h.journal.Accumulation(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.success(w, points)
}

// Preview computes pnl, rate and result without saving.
func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	var req journal.TradeRequest
	if !h.decode(w, r, &req) {
		return
	}
	res, err := h.journal.Preview(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.success(w, map[string]interface{}{
		"pnl":    res.PnL,
		"rate":   res.Rate,
		"result": res.Outcome.String(),
	})
}

// ListTransactions returns every deposit and withdrawal.
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := h.journal.ListTransactions(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.success(w, txs)
}

// CreateTransaction records a deposit or withdrawal.
func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req journal.TransactionRequest
	if !h.decode(w, r, &req) {
		return
	}
	tx, err := h.journal.CreateTransaction(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.created(w, tx)
}

// DeleteTransaction removes a transaction.
func (h *Handler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}
	if err := h.journal.DeleteTransaction(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}
	h.success(w, map[string]uint{"id": id})
}

// Statistics returns the full dashboard report.
func (h *Handler) Statistics(w http.ResponseWriter, r *http.Request) {
	report, err := h.journal.Dashboard(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.success(w, report)
}

// Calendar returns the daily P&L grid for ?year=&month=, defaulting to the
// current month.
func (h *Handler) Calendar(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	year, month := now.Year(), int(now.Month())

	if v := r.URL.Query().Get("year"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			h.badRequest(w, "invalid year", nil)
			return
		}
		year = n
	}
	if v := r.URL.Query().Get("month"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 12 {
			h.badRequest(w, "invalid month", nil)
			return
		}
		month = n
	}

	days, err := h.journal.Calendar(r.Context(), year, time.Month(month))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.success(w, days)
}

// MonthlyReports returns per-month summaries.
func (h *Handler) MonthlyReports(w http.ResponseWriter, r *http.Request) {
	reports, err := h.journal.MonthlyReports(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.success(w, reports)
}

// Export streams every trade as a CSV attachment.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	filename := fmt.Sprintf("trades-%s.csv", time.Now().Format("20060102"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := h.journal.Export(r.Context(), w); err != nil {
		w.Header().Del("Content-Disposition")
		h.fail(w, r, err)
	}
}

func (h *Handler) idParam(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id == 0 {
		h.badRequest(w, "invalid id", nil)
		return 0, false
	}
	return uint(id), true
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		h.badRequest(w, "invalid request body", err.Error())
		return false
	}
	return true
}
