package models

import (
	"hummingbird-backtest/internal/analysis"
	"hummingbird-backtest/internal/backtest"
	"hummingbird-backtest/internal/latency"
)

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type BacktestResponse struct {
	Status  string           `json:"status"`
	RunID   string           `json:"run_id"`
	Summary analysis.Summary `json:"summary"`

	// Present on latency-adjusted runs.
	Route     *latency.Route `json:"route,omitempty"`
	LatencyMS float64        `json:"latency_ms"`

	EquityCurve []backtest.EquityPoint `json:"equity_curve,omitempty"`
}

type LatencyResponse struct {
	Status string        `json:"status"`
	Result latency.Route `json:"result"`
}

type ChartResponse struct {
	Status      string `json:"status"`
	ImageBase64 string `json:"image_base64"`
}

type StrategiesResponse struct {
	Strategies []string `json:"strategies"`
}
