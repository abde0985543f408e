package backtest

import (
	"github.com/shopspring/decimal"

	"hummingbird-backtest/internal/model"
)

// Ledger is the cash/position state mutated trade-by-trade during a run.
// Invariants, enforced by Apply:
//   - Cash never goes negative: a buy that cannot be fully paid is rejected.
//   - Position never goes negative: no short selling.
//   - Trades preserves execution order, which equals intent emission order
//     restricted to accepted intents.
//
// A trade is entirely accepted or entirely rejected; size is never clamped.
type Ledger struct {
	Cash       decimal.Decimal       `json:"cash"`
	Position   decimal.Decimal       `json:"position"`
	Trades     []model.ExecutedTrade `json:"trades"`
	Rejections []model.Rejection     `json:"rejections,omitempty"`
}

func NewLedger(startingCash decimal.Decimal) *Ledger {
	return &Ledger{Cash: startingCash, Position: decimal.Zero}
}

// Apply settles a candidate execution against the ledger. It reports whether
// the trade was accepted; rejected intents are recorded and otherwise leave
// the ledger unchanged.
func (l *Ledger) Apply(t model.ExecutedTrade) bool {
	switch t.Side {
	case model.SideBuy:
		cost := t.ExecPrice.Mul(t.Size)
		if l.Cash.LessThan(cost) {
			l.reject(t.TradeIntent, model.RejectInsufficientCash)
			return false
		}
		l.Cash = l.Cash.Sub(cost)
		l.Position = l.Position.Add(t.Size)
	case model.SideSell:
		if l.Position.LessThan(t.Size) {
			l.reject(t.TradeIntent, model.RejectInsufficientPosition)
			return false
		}
		l.Cash = l.Cash.Add(t.ExecPrice.Mul(t.Size))
		l.Position = l.Position.Sub(t.Size)
	default:
		// Unreachable for validated intents.
		return false
	}
	l.Trades = append(l.Trades, t)
	return true
}

func (l *Ledger) reject(intent model.TradeIntent, reason model.RejectReason) {
	l.Rejections = append(l.Rejections, model.Rejection{Intent: intent, Reason: reason})
}

// Equity marks the ledger to market at the given price.
func (l *Ledger) Equity(price decimal.Decimal) decimal.Decimal {
	return l.Cash.Add(l.Position.Mul(price))
}
