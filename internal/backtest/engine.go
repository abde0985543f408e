package backtest

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"hummingbird-backtest/internal/model"
	"hummingbird-backtest/internal/strategy"
)

var bpsDivisor = decimal.NewFromInt(10000)

// Params are the explicit configuration inputs of a run.
type Params struct {
	// LatencyMS delays every execution timestamp. It is a deterministic
	// offset, never a real wait.
	LatencyMS float64
	// SlippageBPS re-prices every execution adversely, in basis points of
	// the quoted price.
	SlippageBPS float64
	// StartingCash seeds the ledger. Must be positive.
	StartingCash decimal.Decimal
}

func (p Params) Validate() error {
	if !p.StartingCash.IsPositive() {
		return fmt.Errorf("%w: starting cash must be > 0", ErrConfig)
	}
	if p.LatencyMS < 0 {
		return fmt.Errorf("%w: latency must be >= 0 ms", ErrConfig)
	}
	return nil
}

type Engine struct{}

func New() *Engine { return &Engine{} }

// Run simulates the strategy against the bar series and returns the terminal
// result. It is a pure sequential fold: intents are consumed single-pass in
// emission order, each settled against the ledger before the next is pulled,
// because one acceptance can change whether the next intent is accepted.
// Identical inputs produce identical results.
func (e *Engine) Run(strat strategy.Strategy, bars []model.Bar, p Params) (*Result, error) {
	if strat == nil {
		return nil, fmt.Errorf("%w: strategy is nil", ErrConfig)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("%w: empty bar series", ErrData)
	}

	// Input should already be sorted; re-sort defensively without mutating
	// the caller's slice.
	sorted := make([]model.Bar, len(bars))
	copy(sorted, bars)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})
	for i, b := range sorted {
		if err := b.Validate(); err != nil {
			return nil, fmt.Errorf("%w: bar %d: %v", ErrData, i, err)
		}
	}

	ledger := NewLedger(p.StartingCash)
	curve := []EquityPoint{{Time: sorted[0].Timestamp, Equity: p.StartingCash}}

	offset := time.Duration(p.LatencyMS * float64(time.Millisecond))
	slipRate := decimal.NewFromFloat(p.SlippageBPS).Div(bpsDivisor)

	stream := strat.Stream(sorted)
	for {
		intent, ok, err := stream.Next()
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrStrategy, strat.Name(), err)
		}
		if !ok {
			break
		}
		if err := intent.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrStrategy, strat.Name(), err)
		}

		// Slippage works uniformly against the trader: buys pay more,
		// sells receive less.
		slip := intent.Price.Mul(slipRate)
		execPrice := intent.Price.Sub(slip)
		if intent.Side == model.SideBuy {
			execPrice = intent.Price.Add(slip)
		}

		exec := model.ExecutedTrade{
			TradeIntent: intent,
			ExecTime:    intent.Time.Add(offset),
			ExecPrice:   execPrice,
		}
		if ledger.Apply(exec) {
			curve = append(curve, EquityPoint{Time: exec.ExecTime, Equity: ledger.Equity(execPrice)})
		}
	}

	last := sorted[len(sorted)-1]
	finalEquity := ledger.Equity(last.Close)
	curve = append(curve, EquityPoint{Time: last.Timestamp, Equity: finalEquity})

	return &Result{
		Ledger:       ledger,
		StartingCash: p.StartingCash,
		LastClose:    last.Close,
		FinalEquity:  finalEquity,
		PnL:          finalEquity.Sub(p.StartingCash),
		EquityCurve:  curve,
	}, nil
}
