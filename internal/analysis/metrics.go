package analysis

import (
	"math"

	"github.com/shopspring/decimal"

	"hummingbird-backtest/internal/backtest"
	"hummingbird-backtest/internal/model"
)

// Summary is the reporting record derived from a finished run. All values
// are rounded here, and only here; the ledger keeps full precision.
type Summary struct {
	PnL         float64               `json:"pnl"`
	FinalEquity float64               `json:"final_equity"`
	Cash        float64               `json:"cash"`
	Position    float64               `json:"position"`
	TotalTrades int                   `json:"total_trades"`
	Rejected    int                   `json:"rejected"`
	WinRate     float64               `json:"win_rate"`
	SharpeRatio float64               `json:"sharpe_ratio"`
	MaxDrawdown float64               `json:"max_drawdown"`
	Trades      []model.ExecutedTrade `json:"trades"`
}

func Summarize(res *backtest.Result) Summary {
	return Summary{
		PnL:         round2(res.PnL),
		FinalEquity: round2(res.FinalEquity),
		Cash:        round2(res.Ledger.Cash),
		Position:    round4(res.Ledger.Position),
		TotalTrades: len(res.Ledger.Trades),
		Rejected:    len(res.Ledger.Rejections),
		WinRate:     roundTo(WinRate(res.Ledger.Trades), 2),
		SharpeRatio: roundTo(Sharpe(res.EquityCurve), 3),
		MaxDrawdown: roundTo(MaxDrawdown(res.EquityCurve), 2),
		Trades:      res.Ledger.Trades,
	}
}

// WinRate pairs trades positionally, (0,1), (2,3), ..., treating each pair as
// a Buy->Sell round-trip, and counts a win when the sell's execution price
// exceeds the buy's quoted price. The percentage is over total_trades/2.
//
// Positional pairing assumes strict buy/sell alternation; mixed sequences are
// not verified and will be misclassified. Returns 0 with fewer than 2 trades.
func WinRate(trades []model.ExecutedTrade) float64 {
	if len(trades) < 2 {
		return 0
	}
	wins := 0
	for i := 0; i+1 < len(trades); i += 2 {
		buy, sell := trades[i], trades[i+1]
		if sell.Side == model.SideSell && sell.ExecPrice.GreaterThan(buy.Price) {
			wins++
		}
	}
	return float64(wins) / (float64(len(trades)) / 2) * 100
}

// Sharpe is the mean per-step return of the equity curve over its sample
// standard deviation, annualized by sqrt(252). Returns 0 when the curve has
// too few points to produce a variance, or when the deviation is zero.
func Sharpe(curve []backtest.EquityPoint) float64 {
	if len(curve) < 2 {
		return 0
	}
	returns := make([]float64, 0, len(curve)-1)
	prev := curve[0].Equity.InexactFloat64()
	for _, p := range curve[1:] {
		cur := p.Equity.InexactFloat64()
		if prev != 0 {
			returns = append(returns, (cur-prev)/prev)
		}
		prev = cur
	}
	if len(returns) < 2 {
		return 0
	}
	mean := 0.0
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))
	ss := 0.0
	for _, r := range returns {
		d := r - mean
		ss += d * d
	}
	std := math.Sqrt(ss / float64(len(returns)-1))
	if std == 0 {
		return 0
	}
	return mean / std * math.Sqrt(252)
}

// MaxDrawdown is the worst peak-to-trough decline of the equity curve as a
// percentage of the running peak. Non-positive; more negative is worse.
func MaxDrawdown(curve []backtest.EquityPoint) float64 {
	if len(curve) == 0 {
		return 0
	}
	peak := curve[0].Equity.InexactFloat64()
	worst := 0.0
	for _, p := range curve {
		eq := p.Equity.InexactFloat64()
		if eq > peak {
			peak = eq
		}
		if peak > 0 {
			if dd := (eq - peak) / peak * 100; dd < worst {
				worst = dd
			}
		}
	}
	return worst
}

func round2(d decimal.Decimal) float64 { return d.Round(2).InexactFloat64() }
func round4(d decimal.Decimal) float64 { return d.Round(4).InexactFloat64() }

func roundTo(x float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(x*p) / p
}
