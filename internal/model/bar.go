package model

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Bar is a single time-stamped OHLCV price sample.
//
// Bars are expected sorted by timestamp ascending; the engine re-sorts
// defensively before consuming them. Close must always be present because it
// is used for terminal equity valuation.
type Bar struct {
	Timestamp time.Time       `json:"timestamp"`
	Open      decimal.Decimal `json:"open"`
	High      decimal.Decimal `json:"high"`
	Low       decimal.Decimal `json:"low"`
	Close     decimal.Decimal `json:"close"`
	Volume    decimal.Decimal `json:"volume"`
}

func (b Bar) Validate() error {
	if b.Timestamp.IsZero() {
		return errors.New("timestamp is required")
	}
	if !b.Close.IsPositive() {
		return errors.New("close must be > 0")
	}
	return nil
}
