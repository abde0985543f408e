package strategy

import (
	"fmt"

	"hummingbird-backtest/internal/model"
)

// IntentStream yields trade intents one at a time. Streams are one-shot and
// finite for a finite bar series: ok is false once the stream is exhausted.
// A non-nil error is a strategy fault and aborts the run.
type IntentStream interface {
	Next() (intent model.TradeIntent, ok bool, err error)
}

// Strategy produces a lazy sequence of trade intents for an ordered bar
// series. Implementations may keep internal state but must not be invoked
// concurrently with the engine.
type Strategy interface {
	Name() string
	Stream(bars []model.Bar) IntentStream
}

// StreamOf returns a stream that replays a fixed intent sequence.
func StreamOf(intents ...model.TradeIntent) IntentStream {
	return &sliceStream{intents: intents}
}

type sliceStream struct {
	intents []model.TradeIntent
	pos     int
}

func (s *sliceStream) Next() (model.TradeIntent, bool, error) {
	if s.pos >= len(s.intents) {
		return model.TradeIntent{}, false, nil
	}
	t := s.intents[s.pos]
	s.pos++
	return t, true, nil
}

// Static wraps a canned intent sequence as a Strategy. Useful for tests and
// for replaying recorded trades.
func Static(name string, intents ...model.TradeIntent) Strategy {
	return &static{name: name, intents: intents}
}

type static struct {
	name    string
	intents []model.TradeIntent
}

func (s *static) Name() string { return s.name }

func (s *static) Stream([]model.Bar) IntentStream {
	return StreamOf(s.intents...)
}

// ForName builds a registered strategy from its config name and params.
func ForName(name string, params map[string]any) (Strategy, error) {
	switch name {
	case "momentum":
		return NewMomentum(paramNum(params, "size", 1)), nil
	default:
		return nil, fmt.Errorf("unsupported strategy: %q", name)
	}
}

// Names lists the registered strategy names.
func Names() []string {
	return []string{"momentum"}
}

func paramNum(m map[string]any, key string, def float64) float64 {
	if v, ok := m[key]; ok && v != nil {
		switch x := v.(type) {
		case float64:
			return x
		case int:
			return float64(x)
		}
	}
	return def
}
