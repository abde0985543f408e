package backtest

import (
	"time"

	"github.com/shopspring/decimal"
)

// EquityPoint is one mark-to-market sample of the equity trajectory.
type EquityPoint struct {
	Time   time.Time       `json:"time"`
	Equity decimal.Decimal `json:"equity"`
}

// Result is the terminal, read-only outcome of a run. Values are kept at
// full precision; rounding happens at the reporting boundary.
//
// The equity trajectory starts at the first bar with the starting cash,
// marks to market after every accepted trade at its execution price, and
// ends with the terminal valuation at the last close.
type Result struct {
	Ledger       *Ledger
	StartingCash decimal.Decimal
	LastClose    decimal.Decimal
	FinalEquity  decimal.Decimal
	PnL          decimal.Decimal
	EquityCurve  []EquityPoint
}
