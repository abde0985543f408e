package export

import (
	"encoding/csv"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"hummingbird-backtest/internal/model"
)

// WriteTradesCSV writes the executed-trade ledger, one row per trade, with
// both the quoted and the executed time/price.
func WriteTradesCSV(path string, trades []model.ExecutedTrade) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{"time", "side", "price", "size", "exec_time", "exec_price"}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, t := range trades {
		row := []string{
			fmtTime(t.Time),
			string(t.Side),
			fmtDecimal(t.Price),
			fmtDecimal(t.Size),
			fmtTime(t.ExecTime),
			fmtDecimal(t.ExecPrice),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func fmtTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	// Nano precision keeps sub-millisecond latency offsets visible.
	return t.Format(time.RFC3339Nano)
}

func fmtDecimal(d decimal.Decimal) string {
	return d.String()
}
