package handlers

import (
	"encoding/base64"
	"net/http"

	"github.com/gin-gonic/gin"

	"hummingbird-backtest/internal/api/models"
	"hummingbird-backtest/internal/export"
)

type ChartHandler struct{}

func NewChartHandler() *ChartHandler { return &ChartHandler{} }

// EquityChart handles POST /api/v1/chart: it renders the supplied equity
// curve as an SVG and returns it Base64-encoded.
func (h *ChartHandler) EquityChart(c *gin.Context) {
	var req models.ChartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	title := req.Title
	if title == "" {
		title = "Equity Curve"
	}
	svg := export.EquityCurveSVG(req.EquityCurve, req.Width, req.Height, title)
	c.JSON(http.StatusOK, models.ChartResponse{
		Status:      "success",
		ImageBase64: base64.StdEncoding.EncodeToString(svg),
	})
}
