package strategy

import (
	"github.com/shopspring/decimal"

	"hummingbird-backtest/internal/model"
)

// Momentum is the example strategy: go long at the bar open whenever the
// close rose versus the previous close, and exit at the following bar's
// close. It emits intents lazily as the engine pulls them.
type Momentum struct {
	size decimal.Decimal
}

func NewMomentum(size float64) *Momentum {
	return &Momentum{size: decimal.NewFromFloat(size)}
}

func (m *Momentum) Name() string { return "momentum" }

func (m *Momentum) Stream(bars []model.Bar) IntentStream {
	return &momentumStream{bars: bars, size: m.size, next: 1}
}

type momentumStream struct {
	bars []model.Bar
	size decimal.Decimal
	next int
	// exit queued behind the most recent entry
	pending *model.TradeIntent
}

func (s *momentumStream) Next() (model.TradeIntent, bool, error) {
	if s.pending != nil {
		t := *s.pending
		s.pending = nil
		return t, true, nil
	}
	for s.next < len(s.bars) {
		i := s.next
		s.next++
		prev, cur := s.bars[i-1], s.bars[i]
		if !cur.Close.GreaterThan(prev.Close) {
			continue
		}
		buy := model.TradeIntent{
			Time:  cur.Timestamp,
			Side:  model.SideBuy,
			Price: cur.Open,
			Size:  s.size,
		}
		if i+1 < len(s.bars) {
			exit := s.bars[i+1]
			s.pending = &model.TradeIntent{
				Time:  exit.Timestamp,
				Side:  model.SideSell,
				Price: exit.Close,
				Size:  s.size,
			}
		}
		return buy, true, nil
	}
	return model.TradeIntent{}, false, nil
}
