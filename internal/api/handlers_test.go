package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"trade-journal-go/internal/config"
	"trade-journal-go/internal/database"
	"trade-journal-go/internal/journal"
	"trade-journal-go/internal/store"
)

func setupRouter(t *testing.T) http.Handler {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.AutoMigrate(db))

	log := zap.NewNop()
	svc := journal.NewService(store.New(db), nil, config.Journal{
		DefaultAssetClass:    "Forex",
		DefaultQuoteCurrency: "USD",
	}, log)
	return NewRouter(NewHandler(log, svc), log)
}

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
}

func do(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	var env envelope
	if strings.HasPrefix(rr.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	}
	return rr, env
}

const scenarioA = `{
	"dateEntry": "2024-10-01T09:30",
	"dateExit": "2024-10-01T12:00",
	"instrument": "EURUSD",
	"position": "Long",
	"entry": 1.1000,
	"exit": 1.1050,
	"lot": 1
}`

type tradeBody struct {
	ID     uint   `json:"id"`
	PnL    string `json:"pnl"`
	Rate   string `json:"rate"`
	Status string `json:"status"`
	Result string `json:"result"`
}

func TestHealth(t *testing.T) {
	h := setupRouter(t)
	rr, env := do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "success", env.Status)
}

func TestTradeLifecycle(t *testing.T) {
	h := setupRouter(t)

	rr, env := do(t, h, http.MethodPost, "/api/trades", scenarioA)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var created tradeBody
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "500", created.PnL)
	assert.Equal(t, "0.45", created.Rate)
	assert.Equal(t, "Win", created.Result)

	rr, env = do(t, h, http.MethodGet, "/api/trades", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var list []tradeBody
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)

	running := strings.Replace(scenarioA, `"lot": 1`, `"lot": 1, "status": "Running"`, 1)
	rr, env = do(t, h, http.MethodPut, "/api/trades/1", running)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var updated tradeBody
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, "0", updated.PnL)
	assert.Equal(t, "Running", updated.Result)

	rr, _ = do(t, h, http.MethodDelete, "/api/trades/1", "")
	assert.Equal(t, http.StatusOK, rr.Code)

	rr, env = do(t, h, http.MethodGet, "/api/trades/1", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "error", env.Status)
}

func TestCreateTrade_Invalid(t *testing.T) {
	h := setupRouter(t)

	rr, env := do(t, h, http.MethodPost, "/api/trades", `{"instrument": "EURUSD"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "validation failed", env.Message)

	var fields []journal.ValidationError
	require.NoError(t, json.Unmarshal(env.Error, &fields))
	assert.NotEmpty(t, fields)

	rr, env = do(t, h, http.MethodPost, "/api/trades", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "invalid request body", env.Message)
}

func TestInvalidID(t *testing.T) {
	h := setupRouter(t)
	rr, _ := do(t, h, http.MethodGet, "/api/trades/abc", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr, _ = do(t, h, http.MethodDelete, "/api/transactions/7", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr, _ = do(t, h, http.MethodPut, "/api/trades/42", scenarioA)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestTradeJSONCasing(t *testing.T) {
	h := setupRouter(t)

	rr, env := do(t, h, http.MethodPost, "/api/trades", scenarioA)
	require.Equal(t, http.StatusCreated, rr.Code)

	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(env.Data, &fields))
	for _, key := range []string{"id", "createdAt", "updatedAt", "dateEntry", "pnl"} {
		assert.Contains(t, fields, key)
	}
	for _, key := range []string{"ID", "CreatedAt", "DeletedAt", "deletedAt"} {
		assert.NotContains(t, fields, key)
	}
}

func TestPreview(t *testing.T) {
	h := setupRouter(t)
	short := strings.Replace(scenarioA, `"Long"`, `"Short"`, 1)

	rr, env := do(t, h, http.MethodPost, "/api/pnl/preview", short)
	require.Equal(t, http.StatusOK, rr.Code)
	var res map[string]string
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Equal(t, "-500", res["pnl"])
	assert.Equal(t, "Loss", res["result"])

	rr, env = do(t, h, http.MethodGet, "/api/trades", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "[]", string(env.Data))
}

func TestStatisticsAndEquity(t *testing.T) {
	h := setupRouter(t)

	do(t, h, http.MethodPost, "/api/transactions", `{"date": "2024-10-01", "type": "Deposit", "amount": 1000}`)
	do(t, h, http.MethodPost, "/api/transactions", `{"date": "2024-10-02", "type": "Withdrawal", "amount": 200}`)
	rr, _ := do(t, h, http.MethodPost, "/api/trades", scenarioA)
	require.Equal(t, http.StatusCreated, rr.Code)

	rr, env := do(t, h, http.MethodGet, "/api/statistics", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var report struct {
		Summary struct {
			Wins    int    `json:"wins"`
			WinRate string `json:"winRate"`
		} `json:"summary"`
		Equity struct {
			Equity string `json:"equity"`
		} `json:"equity"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &report))
	assert.Equal(t, 1, report.Summary.Wins)
	assert.Equal(t, "1300", report.Equity.Equity)

	rr, env = do(t, h, http.MethodGet, "/api/statistics/calendar?year=2024&month=10", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var days []json.RawMessage
	require.NoError(t, json.Unmarshal(env.Data, &days))
	assert.Len(t, days, 33)

	rr, _ = do(t, h, http.MethodGet, "/api/statistics/calendar?month=13", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestExport(t *testing.T) {
	h := setupRouter(t)
	do(t, h, http.MethodPost, "/api/trades", scenarioA)

	rr, _ := do(t, h, http.MethodGet, "/api/export.csv", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/csv", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "attachment")

	lines := strings.Split(strings.TrimSpace(rr.Body.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "EURUSD")
}
