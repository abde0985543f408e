package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hummingbird-backtest/internal/api/models"
	"hummingbird-backtest/internal/latency"
)

type LatencyHandler struct {
	est *latency.Estimator
}

func NewLatencyHandler(est *latency.Estimator) *LatencyHandler {
	return &LatencyHandler{est: est}
}

// Estimate handles POST /api/v1/latency.
func (h *LatencyHandler) Estimate(c *gin.Context) {
	var req models.LatencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.LatencyResponse{
		Status: "success",
		Result: h.est.CompareRoute(req.Origin, req.Destination, req.DistanceKM),
	})
}
