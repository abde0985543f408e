package main

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hummingbird-backtest/internal/api/handlers"
	"hummingbird-backtest/internal/api/middleware"
	"hummingbird-backtest/internal/latency"
)

func main() {
	production := os.Getenv("API_ENV") == "production"

	var log *zap.Logger
	var err error
	if production {
		log, err = zap.NewProduction()
	} else {
		log, err = zap.NewDevelopment()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	est, err := latency.New(latency.DefaultConfig(), nil)
	if err != nil {
		log.Fatal("latency estimator", zap.Error(err))
	}

	if production {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(middleware.Logger(log))
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS(corsOrigins()))

	backtestHandler := handlers.NewBacktestHandler(log, est)
	latencyHandler := handlers.NewLatencyHandler(est)
	chartHandler := handlers.NewChartHandler()
	strategyHandler := handlers.NewStrategyHandler()

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		api.POST("/backtest", backtestHandler.RunBacktest)
		api.POST("/backtest/latency-adjusted", backtestHandler.RunLatencyAdjusted)
		api.POST("/latency", latencyHandler.Estimate)
		api.POST("/chart", chartHandler.EquityChart)
		api.GET("/strategies", strategyHandler.ListStrategies)
	}

	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port
	log.Info("starting API server", zap.String("addr", addr))
	if err := router.Run(addr); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func corsOrigins() []string {
	raw := os.Getenv("CORS_ORIGINS")
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
