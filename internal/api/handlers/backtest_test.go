package handlers

import (
	"bytes"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"hummingbird-backtest/internal/latency"
)

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	est, err := latency.New(latency.DefaultConfig(), rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	backtestHandler := NewBacktestHandler(zap.NewNop(), est)
	latencyHandler := NewLatencyHandler(est)
	chartHandler := NewChartHandler()
	strategyHandler := NewStrategyHandler()

	r := gin.New()
	api := r.Group("/api/v1")
	api.POST("/backtest", backtestHandler.RunBacktest)
	api.POST("/backtest/latency-adjusted", backtestHandler.RunLatencyAdjusted)
	api.POST("/latency", latencyHandler.Estimate)
	api.POST("/chart", chartHandler.EquityChart)
	api.GET("/strategies", strategyHandler.ListStrategies)
	return r
}

func writeBars(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bars.csv")
	content := `timestamp,open,high,low,close
2024-01-02T09:30:00Z,100,100,100,100
2024-01-02T09:31:00Z,101,101,101,101
2024-01-02T09:32:00Z,99,99,99,99
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func postJSON(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRunBacktestEndpoint(t *testing.T) {
	r := testRouter(t)
	w := postJSON(t, r, "/api/v1/backtest", gin.H{
		"data_file": writeBars(t),
		"engine":    gin.H{"starting_cash": 1000},
		"strategy":  gin.H{"name": "momentum"},
		"options":   gin.H{"include_trades": true},
	})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Status  string `json:"status"`
		RunID   string `json:"run_id"`
		Summary struct {
			PnL         float64 `json:"pnl"`
			FinalEquity float64 `json:"final_equity"`
			TotalTrades int     `json:"total_trades"`
			Trades      []struct {
				Side string `json:"side"`
			} `json:"trades"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, "success", resp.Status)
	assert.NotEmpty(t, resp.RunID)
	// momentum buys at 101 open, exits at 99 close
	assert.Equal(t, 2, resp.Summary.TotalTrades)
	assert.InDelta(t, -2, resp.Summary.PnL, 1e-9)
	assert.InDelta(t, 998, resp.Summary.FinalEquity, 1e-9)
	require.Len(t, resp.Summary.Trades, 2)
	assert.Equal(t, "buy", resp.Summary.Trades[0].Side)
}

func TestRunBacktestMissingDataFile(t *testing.T) {
	r := testRouter(t)
	w := postJSON(t, r, "/api/v1/backtest", gin.H{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_REQUEST")
}

func TestRunBacktestUnreadableData(t *testing.T) {
	r := testRouter(t)
	w := postJSON(t, r, "/api/v1/backtest", gin.H{
		"data_file": filepath.Join(t.TempDir(), "missing.csv"),
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "DATA_ERROR")
}

func TestRunBacktestUnknownStrategy(t *testing.T) {
	r := testRouter(t)
	w := postJSON(t, r, "/api/v1/backtest", gin.H{
		"data_file": writeBars(t),
		"strategy":  gin.H{"name": "martingale"},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_STRATEGY")
}

func TestRunBacktestNegativeStartingCash(t *testing.T) {
	r := testRouter(t)
	w := postJSON(t, r, "/api/v1/backtest", gin.H{
		"data_file": writeBars(t),
		"engine":    gin.H{"starting_cash": -5},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "CONFIG_ERROR")
}

func TestRunLatencyAdjustedEndpoint(t *testing.T) {
	r := testRouter(t)
	w := postJSON(t, r, "/api/v1/backtest/latency-adjusted", gin.H{
		"origin":      "Kansas City",
		"destination": "New York",
		"distance_km": 1800,
		"data_file":   writeBars(t),
		"engine":      gin.H{"starting_cash": 1000},
	})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Route *struct {
			Route string `json:"route"`
		} `json:"route"`
		LatencyMS float64 `json:"latency_ms"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Route)
	assert.Equal(t, "Kansas City <-> New York", resp.Route.Route)
	assert.Greater(t, resp.LatencyMS, 0.0)
}

func TestLatencyEndpoint(t *testing.T) {
	r := testRouter(t)
	w := postJSON(t, r, "/api/v1/latency", gin.H{
		"origin":      "New York",
		"destination": "Chicago",
		"distance_km": 1150,
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "one_way_latency_ms")
}

func TestChartEndpoint(t *testing.T) {
	r := testRouter(t)
	w := postJSON(t, r, "/api/v1/chart", gin.H{
		"equity_curve": []float64{1000, 1010, 990},
		"title":        "Sample",
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "image_base64")
}

func TestChartEndpointRequiresCurve(t *testing.T) {
	r := testRouter(t)
	w := postJSON(t, r, "/api/v1/chart", gin.H{"title": "Sample"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListStrategiesEndpoint(t *testing.T) {
	r := testRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/strategies", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "momentum")
}
