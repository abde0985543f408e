package export

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hummingbird-backtest/internal/analysis"
	"hummingbird-backtest/internal/latency"
	"hummingbird-backtest/internal/model"
)

func TestWriteTradesCSV(t *testing.T) {
	ts := time.Date(2024, 1, 2, 9, 31, 0, 0, time.UTC)
	trades := []model.ExecutedTrade{
		{
			TradeIntent: model.TradeIntent{
				Time:  ts,
				Side:  model.SideBuy,
				Price: decimal.RequireFromString("101"),
				Size:  decimal.NewFromInt(1),
			},
			ExecTime:  ts.Add(3 * time.Millisecond),
			ExecPrice: decimal.RequireFromString("101.01"),
		},
	}

	path := filepath.Join(t.TempDir(), "trades.csv")
	require.NoError(t, WriteTradesCSV(path, trades))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, []string{"time", "side", "price", "size", "exec_time", "exec_price"}, rows[0])
	assert.Equal(t, "buy", rows[1][1])
	assert.Equal(t, "101.01", rows[1][5])
	assert.NotEqual(t, rows[1][0], rows[1][4], "exec_time carries the latency offset")
}

func TestWriteReport(t *testing.T) {
	route := latency.Route{Route: "A <-> B", DistanceKM: 1800, OneWayMS: 10.5, RoundTripMS: 21.0}
	r := Report{
		RunID:       "run-1",
		GeneratedAt: time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC),
		Route:       &route,
		LatencyMS:   10.5,
		Summary: analysis.Summary{
			PnL:         -2,
			FinalEquity: 998,
			Cash:        998,
			TotalTrades: 2,
		},
	}

	var b bytes.Buffer
	require.NoError(t, WriteReport(&b, r))
	out := b.String()

	assert.Contains(t, out, "=== Backtest Report ===")
	assert.Contains(t, out, "run_id: run-1")
	assert.Contains(t, out, "route: A <-> B")
	assert.Contains(t, out, "pnl: -2.00")
	assert.Contains(t, out, "total_trades: 2")
}

func TestSaveReport(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	r := Report{RunID: "run-2", GeneratedAt: time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC)}

	path, err := SaveReport(dir, r)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filepath.Base(path), "run_"))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "run-2")
}

func TestEquityCurveSVG(t *testing.T) {
	svg := string(EquityCurveSVG([]float64{1000, 1010, 990, 1020}, 0, 0, "Equity"))

	assert.Contains(t, svg, "<svg")
	assert.Contains(t, svg, "polyline")
	assert.Contains(t, svg, "Equity")
}

func TestEquityCurveSVGHandlesShortInput(t *testing.T) {
	svg := string(EquityCurveSVG(nil, 0, 0, "Empty"))
	assert.Contains(t, svg, "<svg")
	assert.NotContains(t, svg, "polyline")
}
