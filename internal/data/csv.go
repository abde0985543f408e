package data

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"hummingbird-backtest/internal/backtest"
	"hummingbird-backtest/internal/model"
)

var requiredColumns = []string{"timestamp", "open", "high", "low", "close"}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// LoadBarsCSV reads an OHLCV series from a CSV file with a header row.
// Required columns: timestamp, open, high, low, close; volume is optional.
// Column order does not matter. Bars are returned sorted by timestamp
// ascending regardless of file order.
func LoadBarsCSV(path string) ([]model.Bar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", backtest.ErrData, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", backtest.ErrData, path, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("%w: %s: no data rows", backtest.ErrData, path)
	}

	cols := map[string]int{}
	for i, name := range records[0] {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("%w: %s: missing column %q", backtest.ErrData, path, name)
		}
	}
	volCol, hasVol := cols["volume"]

	bars := make([]model.Bar, 0, len(records)-1)
	for n, rec := range records[1:] {
		ts, err := parseTimestamp(rec[cols["timestamp"]])
		if err != nil {
			return nil, fmt.Errorf("%w: %s row %d: %v", backtest.ErrData, path, n+1, err)
		}
		b := model.Bar{Timestamp: ts}
		for name, dst := range map[string]*decimal.Decimal{
			"open":  &b.Open,
			"high":  &b.High,
			"low":   &b.Low,
			"close": &b.Close,
		} {
			v, err := decimal.NewFromString(strings.TrimSpace(rec[cols[name]]))
			if err != nil {
				return nil, fmt.Errorf("%w: %s row %d: bad %s: %v", backtest.ErrData, path, n+1, name, err)
			}
			*dst = v
		}
		if hasVol && volCol < len(rec) && strings.TrimSpace(rec[volCol]) != "" {
			v, err := decimal.NewFromString(strings.TrimSpace(rec[volCol]))
			if err != nil {
				return nil, fmt.Errorf("%w: %s row %d: bad volume: %v", backtest.ErrData, path, n+1, err)
			}
			b.Volume = v
		}
		if err := b.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %s row %d: %v", backtest.ErrData, path, n+1, err)
		}
		bars = append(bars, b)
	}

	sort.SliceStable(bars, func(i, j int) bool {
		return bars[i].Timestamp.Before(bars[j].Timestamp)
	})
	return bars, nil
}

func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", s)
}
