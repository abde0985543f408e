package models

// EngineParams are the explicit execution parameters of a run.
type EngineParams struct {
	LatencyMS    float64 `json:"latency_ms"`
	SlippageBPS  float64 `json:"slippage_bps"`
	StartingCash float64 `json:"starting_cash"`
}

type StrategyParams struct {
	Name   string         `json:"name"`
	Params map[string]any `json:"params"`
}

type RequestOptions struct {
	IncludeTrades      bool `json:"include_trades"`
	IncludeEquityCurve bool `json:"include_equity_curve"`
	// LimitBars truncates the series to the first N bars (0 = all).
	LimitBars int `json:"limit_bars"`
}

// BacktestRequest runs a backtest with explicit engine parameters.
type BacktestRequest struct {
	DataFile string         `json:"data_file" binding:"required"`
	Engine   EngineParams   `json:"engine"`
	Strategy StrategyParams `json:"strategy"`
	Options  RequestOptions `json:"options"`
}

// LatencyAdjustedBacktestRequest estimates route latency first and feeds the
// one-way estimate into the engine as latency_ms.
type LatencyAdjustedBacktestRequest struct {
	Origin      string         `json:"origin" binding:"required"`
	Destination string         `json:"destination" binding:"required"`
	DistanceKM  float64        `json:"distance_km" binding:"required,gt=0"`
	DataFile    string         `json:"data_file" binding:"required"`
	Engine      EngineParams   `json:"engine"`
	Strategy    StrategyParams `json:"strategy"`
	Options     RequestOptions `json:"options"`
}

type LatencyRequest struct {
	Origin      string  `json:"origin" binding:"required"`
	Destination string  `json:"destination" binding:"required"`
	DistanceKM  float64 `json:"distance_km" binding:"required,gt=0"`
}

type ChartRequest struct {
	EquityCurve []float64 `json:"equity_curve" binding:"required"`
	Title       string    `json:"title"`
	Width       int       `json:"width"`
	Height      int       `json:"height"`
}
