package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Side discriminates trade direction.
// Keep these values stable; they are intended for CSV and JSON output.
type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

func (s Side) Valid() bool {
	return s == SideBuy || s == SideSell
}

func ParseSide(s string) (Side, error) {
	switch Side(strings.ToLower(strings.TrimSpace(s))) {
	case SideBuy:
		return SideBuy, nil
	case SideSell:
		return SideSell, nil
	default:
		return "", fmt.Errorf("unknown side %q", s)
	}
}

// TradeIntent is a desired execution emitted by a strategy, not a guaranteed
// one. Intents are consumed strictly in emission order.
type TradeIntent struct {
	Time  time.Time       `json:"time"`
	Side  Side            `json:"side"`
	Price decimal.Decimal `json:"price"`
	Size  decimal.Decimal `json:"size"`
}

// NewTradeIntent builds a validated intent. Strategies should construct
// intents through here so malformed records are caught at the source.
func NewTradeIntent(ts time.Time, side Side, price, size decimal.Decimal) (TradeIntent, error) {
	t := TradeIntent{Time: ts, Side: side, Price: price, Size: size}
	if err := t.Validate(); err != nil {
		return TradeIntent{}, err
	}
	return t, nil
}

func (t TradeIntent) Validate() error {
	if t.Time.IsZero() {
		return errors.New("time is required")
	}
	if !t.Side.Valid() {
		return fmt.Errorf("unknown side %q", string(t.Side))
	}
	if !t.Price.IsPositive() {
		return errors.New("price must be > 0")
	}
	if !t.Size.IsPositive() {
		return errors.New("size must be > 0")
	}
	return nil
}

// ExecutedTrade is a TradeIntent that passed the funds/position check,
// augmented with the latency-delayed execution time and slippage-adjusted
// execution price.
type ExecutedTrade struct {
	TradeIntent
	ExecTime  time.Time       `json:"exec_time"`
	ExecPrice decimal.Decimal `json:"exec_price"`
}

// RejectReason classifies why an intent was dropped.
type RejectReason string

const (
	RejectInsufficientCash     RejectReason = "insufficient_cash"
	RejectInsufficientPosition RejectReason = "insufficient_position"
)

// Rejection records an intent that failed the cash/position check. A
// rejection is an expected outcome, not an error; the run continues.
type Rejection struct {
	Intent TradeIntent  `json:"intent"`
	Reason RejectReason `json:"reason"`
}
