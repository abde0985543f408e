package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"hummingbird-backtest/internal/analysis"
	"hummingbird-backtest/internal/latency"
)

// Report is the material of a human-readable run report.
type Report struct {
	RunID       string
	GeneratedAt time.Time
	Route       *latency.Route
	LatencyMS   float64
	Summary     analysis.Summary
}

// WriteReport renders the report as key: value text, like the run logs the
// reporting shell archives.
func WriteReport(w io.Writer, r Report) error {
	lines := []string{
		"=== Backtest Report ===",
		fmt.Sprintf("run_id: %s", r.RunID),
		fmt.Sprintf("generated_at: %s", r.GeneratedAt.Format(time.RFC3339)),
	}
	if r.Route != nil {
		lines = append(lines,
			fmt.Sprintf("route: %s", r.Route.Route),
			fmt.Sprintf("distance_km: %.1f", r.Route.DistanceKM),
			fmt.Sprintf("round_trip_latency_ms: %.3f", r.Route.RoundTripMS),
		)
	}
	lines = append(lines,
		fmt.Sprintf("latency_ms: %.2f", r.LatencyMS),
		"",
		"Results:",
		fmt.Sprintf("  pnl: %.2f", r.Summary.PnL),
		fmt.Sprintf("  final_equity: %.2f", r.Summary.FinalEquity),
		fmt.Sprintf("  cash: %.2f", r.Summary.Cash),
		fmt.Sprintf("  position: %.4f", r.Summary.Position),
		fmt.Sprintf("  total_trades: %d", r.Summary.TotalTrades),
		fmt.Sprintf("  rejected: %d", r.Summary.Rejected),
		fmt.Sprintf("  win_rate: %.2f", r.Summary.WinRate),
		fmt.Sprintf("  sharpe_ratio: %.3f", r.Summary.SharpeRatio),
		fmt.Sprintf("  max_drawdown: %.2f", r.Summary.MaxDrawdown),
	)
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// SaveReport writes the report into dir as run_<timestamp>.txt and returns
// the path.
func SaveReport(dir string, r Report) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, fmt.Sprintf("run_%s.txt", r.GeneratedAt.Format("20060102_150405")))
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if err := WriteReport(f, r); err != nil {
		return "", err
	}
	return path, nil
}
