package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"hummingbird-backtest/internal/analysis"
	"hummingbird-backtest/internal/api/models"
	"hummingbird-backtest/internal/backtest"
	"hummingbird-backtest/internal/data"
	"hummingbird-backtest/internal/latency"
	"hummingbird-backtest/internal/strategy"
)

// BacktestHandler serves backtest runs, with and without route-derived
// latency.
type BacktestHandler struct {
	log *zap.Logger
	est *latency.Estimator
}

func NewBacktestHandler(log *zap.Logger, est *latency.Estimator) *BacktestHandler {
	return &BacktestHandler{log: log, est: est}
}

// RunBacktest handles POST /api/v1/backtest.
func (h *BacktestHandler) RunBacktest(c *gin.Context) {
	var req models.BacktestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	resp, ok := h.run(c, req.DataFile, req.Engine, req.Strategy, req.Options)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RunLatencyAdjusted handles POST /api/v1/backtest/latency-adjusted. It
// estimates the route's round trip and feeds half of it into the engine as
// the one-way execution latency.
func (h *BacktestHandler) RunLatencyAdjusted(c *gin.Context) {
	var req models.LatencyAdjustedBacktestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	route := h.est.CompareRoute(req.Origin, req.Destination, req.DistanceKM)
	req.Engine.LatencyMS = route.RoundTripMS / 2

	resp, ok := h.run(c, req.DataFile, req.Engine, req.Strategy, req.Options)
	if !ok {
		return
	}
	resp.Route = &route
	c.JSON(http.StatusOK, resp)
}

func (h *BacktestHandler) run(c *gin.Context, dataFile string, eng models.EngineParams, strat models.StrategyParams, opts models.RequestOptions) (models.BacktestResponse, bool) {
	// Conventional defaults, matching the CLI config layer.
	if eng.StartingCash == 0 {
		eng.StartingCash = 100000
	}
	if strat.Name == "" {
		strat.Name = "momentum"
	}

	bars, err := data.LoadBarsCSV(dataFile)
	if err != nil {
		writeError(c, err)
		return models.BacktestResponse{}, false
	}
	if opts.LimitBars > 0 && opts.LimitBars < len(bars) {
		bars = bars[:opts.LimitBars]
	}

	st, err := strategy.ForName(strat.Name, strat.Params)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: models.ErrorDetail{
			Code:    "INVALID_STRATEGY",
			Message: err.Error(),
		}})
		return models.BacktestResponse{}, false
	}

	params := backtest.Params{
		LatencyMS:    eng.LatencyMS,
		SlippageBPS:  eng.SlippageBPS,
		StartingCash: decimal.NewFromFloat(eng.StartingCash),
	}
	res, err := backtest.New().Run(st, bars, params)
	if err != nil {
		writeError(c, err)
		return models.BacktestResponse{}, false
	}

	summary := analysis.Summarize(res)
	if !opts.IncludeTrades {
		summary.Trades = nil
	}

	resp := models.BacktestResponse{
		Status:    "success",
		RunID:     uuid.NewString(),
		Summary:   summary,
		LatencyMS: eng.LatencyMS,
	}
	if opts.IncludeEquityCurve {
		resp.EquityCurve = res.EquityCurve
	}

	h.log.Info("backtest complete",
		zap.String("run_id", resp.RunID),
		zap.String("strategy", st.Name()),
		zap.Int("bars", len(bars)),
		zap.Int("trades", summary.TotalTrades),
		zap.Int("rejected", summary.Rejected),
		zap.Float64("pnl", summary.PnL),
	)
	return resp, true
}

func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: models.ErrorDetail{
		Code:    "INVALID_REQUEST",
		Message: err.Error(),
	}})
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, backtest.ErrData):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: models.ErrorDetail{
			Code:    "DATA_ERROR",
			Message: err.Error(),
		}})
	case errors.Is(err, backtest.ErrConfig):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: models.ErrorDetail{
			Code:    "CONFIG_ERROR",
			Message: err.Error(),
		}})
	case errors.Is(err, backtest.ErrStrategy):
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: models.ErrorDetail{
			Code:    "STRATEGY_ERROR",
			Message: err.Error(),
		}})
	default:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: models.ErrorDetail{
			Code:    "INTERNAL_ERROR",
			Message: err.Error(),
		}})
	}
}
