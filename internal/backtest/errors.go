package backtest

import "errors"

// Fatal error classes. Callers discriminate with errors.Is; the concrete
// message carries the detail. Rejections are not errors and never surface
// through these.
var (
	// ErrConfig marks invalid run parameters. Aborts before any trade
	// processing.
	ErrConfig = errors.New("invalid backtest config")

	// ErrData marks a malformed or empty input series. Aborts before or
	// during loading.
	ErrData = errors.New("invalid market data")

	// ErrStrategy marks a strategy fault: the plug-in failed or yielded a
	// malformed intent. The engine does not guess missing fields.
	ErrStrategy = errors.New("strategy fault")
)
