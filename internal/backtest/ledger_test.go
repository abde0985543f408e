package backtest

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hummingbird-backtest/internal/model"
)

func executed(side model.Side, price, size float64) model.ExecutedTrade {
	p := decimal.NewFromFloat(price)
	return model.ExecutedTrade{
		TradeIntent: model.TradeIntent{
			Time:  time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC),
			Side:  side,
			Price: p,
			Size:  decimal.NewFromFloat(size),
		},
		ExecTime:  time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC),
		ExecPrice: p,
	}
}

func TestLedgerBuyDebitsCash(t *testing.T) {
	l := NewLedger(decimal.NewFromInt(1000))
	require.True(t, l.Apply(executed(model.SideBuy, 100, 3)))

	assert.True(t, l.Cash.Equal(decimal.NewFromInt(700)))
	assert.True(t, l.Position.Equal(decimal.NewFromInt(3)))
	assert.Len(t, l.Trades, 1)
}

func TestLedgerSellCreditsCash(t *testing.T) {
	l := NewLedger(decimal.NewFromInt(1000))
	require.True(t, l.Apply(executed(model.SideBuy, 100, 2)))
	require.True(t, l.Apply(executed(model.SideSell, 110, 2)))

	assert.True(t, l.Cash.Equal(decimal.NewFromInt(1020)))
	assert.True(t, l.Position.IsZero())
}

func TestLedgerInvariantsHoldAfterEveryStep(t *testing.T) {
	l := NewLedger(decimal.NewFromInt(500))
	seq := []model.ExecutedTrade{
		executed(model.SideBuy, 100, 4),   // accepted: cash 100
		executed(model.SideBuy, 100, 2),   // rejected: would go negative
		executed(model.SideSell, 100, 10), // rejected: oversells
		executed(model.SideSell, 120, 4),  // accepted: flat again
	}
	for i, tr := range seq {
		l.Apply(tr)
		assert.False(t, l.Cash.IsNegative(), "cash negative after step %d", i)
		assert.False(t, l.Position.IsNegative(), "position negative after step %d", i)
	}
	assert.Len(t, l.Trades, 2)
	assert.Len(t, l.Rejections, 2)
}

func TestLedgerRejectionLeavesStateUntouched(t *testing.T) {
	l := NewLedger(decimal.NewFromInt(50))
	cash, pos := l.Cash, l.Position

	accepted := l.Apply(executed(model.SideBuy, 101, 1))

	assert.False(t, accepted)
	assert.True(t, l.Cash.Equal(cash))
	assert.True(t, l.Position.Equal(pos))
	assert.Empty(t, l.Trades)
	require.Len(t, l.Rejections, 1)
	assert.Equal(t, model.RejectInsufficientCash, l.Rejections[0].Reason)
}

func TestLedgerTradesKeepApplicationOrder(t *testing.T) {
	l := NewLedger(decimal.NewFromInt(10000))
	prices := []float64{100, 101, 102}
	for _, p := range prices {
		require.True(t, l.Apply(executed(model.SideBuy, p, 1)))
	}
	require.Len(t, l.Trades, 3)
	for i, p := range prices {
		assert.True(t, l.Trades[i].Price.Equal(decimal.NewFromFloat(p)))
	}
}

func TestLedgerEquity(t *testing.T) {
	l := NewLedger(decimal.NewFromInt(1000))
	require.True(t, l.Apply(executed(model.SideBuy, 100, 2)))

	assert.True(t, l.Equity(decimal.NewFromInt(110)).Equal(decimal.NewFromInt(1020)))
}
