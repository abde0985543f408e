package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hummingbird-backtest/internal/api/models"
	"hummingbird-backtest/internal/strategy"
)

type StrategyHandler struct{}

func NewStrategyHandler() *StrategyHandler { return &StrategyHandler{} }

// ListStrategies handles GET /api/v1/strategies.
func (h *StrategyHandler) ListStrategies(c *gin.Context) {
	c.JSON(http.StatusOK, models.StrategiesResponse{Strategies: strategy.Names()})
}
