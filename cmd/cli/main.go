package main

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"hummingbird-backtest/internal/analysis"
	"hummingbird-backtest/internal/backtest"
	"hummingbird-backtest/internal/config"
	"hummingbird-backtest/internal/data"
	"hummingbird-backtest/internal/export"
	"hummingbird-backtest/internal/latency"
	"hummingbird-backtest/internal/strategy"
)

func main() {
	app := &cli.App{
		Name:  "hummingbird",
		Usage: "latency-aware trading backtests",
		Commands: []*cli.Command{
			backtestCommand(),
			latencyCommand(),
			routesCommand(),
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func backtestCommand() *cli.Command {
	return &cli.Command{
		Name:  "backtest",
		Usage: "run a backtest from a YAML config",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "path to YAML config", Required: true},
			&cli.StringFlag{Name: "out", Usage: "trades CSV output path", Value: "results/trades.csv"},
			&cli.StringFlag{Name: "report-dir", Usage: "directory for run reports", Value: "logs"},
			&cli.StringFlag{Name: "chart", Usage: "optional equity curve SVG output path"},
			&cli.IntFlag{Name: "n", Usage: "limit to first N bars (0=all)"},
			&cli.Int64Flag{Name: "seed", Usage: "latency jitter seed (0=time-seeded)"},
		},
		Action: runBacktest,
	}
}

func runBacktest(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	bars, err := data.LoadBarsCSV(cfg.DataFile)
	if err != nil {
		return err
	}
	if n := c.Int("n"); n > 0 && n < len(bars) {
		bars = bars[:n]
	}

	strat, err := strategy.ForName(cfg.Strategy.Name, cfg.Strategy.Params)
	if err != nil {
		return err
	}

	params := cfg.Engine.ToParams()
	var route *latency.Route
	if cfg.Route != nil {
		est, err := latency.New(latency.DefaultConfig(), seededRand(c.Int64("seed")))
		if err != nil {
			return err
		}
		r := est.CompareRoute(cfg.Route.Origin, cfg.Route.Destination, cfg.Route.DistanceKM)
		route = &r
		params.LatencyMS = r.RoundTripMS / 2
	}

	res, err := backtest.New().Run(strat, bars, params)
	if err != nil {
		return err
	}

	report := export.Report{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now(),
		Route:       route,
		LatencyMS:   params.LatencyMS,
		Summary:     analysis.Summarize(res),
	}
	if err := export.WriteReport(os.Stdout, report); err != nil {
		return err
	}

	if out := c.String("out"); out != "" {
		if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
			return err
		}
		if err := export.WriteTradesCSV(out, res.Ledger.Trades); err != nil {
			return err
		}
		fmt.Printf("\nWrote %d trades to %s\n", len(res.Ledger.Trades), out)
	}

	if path, err := export.SaveReport(c.String("report-dir"), report); err != nil {
		return err
	} else {
		fmt.Printf("Report saved to %s\n", path)
	}

	if chartPath := c.String("chart"); chartPath != "" {
		values := make([]float64, len(res.EquityCurve))
		for i, p := range res.EquityCurve {
			values[i] = p.Equity.InexactFloat64()
		}
		svg := export.EquityCurveSVG(values, 0, 0, "Equity Curve")
		if err := os.WriteFile(chartPath, svg, 0o644); err != nil {
			return err
		}
		fmt.Printf("Chart saved to %s\n", chartPath)
	}

	return nil
}

func latencyCommand() *cli.Command {
	return &cli.Command{
		Name:  "latency",
		Usage: "estimate latency between two locations",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "origin", Required: true},
			&cli.StringFlag{Name: "destination", Required: true},
			&cli.Float64Flag{Name: "distance", Usage: "fiber distance in km", Required: true},
			&cli.Int64Flag{Name: "seed", Usage: "jitter seed (0=time-seeded)"},
		},
		Action: func(c *cli.Context) error {
			est, err := latency.New(latency.DefaultConfig(), seededRand(c.Int64("seed")))
			if err != nil {
				return err
			}
			r := est.CompareRoute(c.String("origin"), c.String("destination"), c.Float64("distance"))
			fmt.Printf("route: %s\n", r.Route)
			fmt.Printf("distance_km: %.1f\n", r.DistanceKM)
			fmt.Printf("one_way_latency_ms: %.3f\n", r.OneWayMS)
			fmt.Printf("round_trip_latency_ms: %.3f\n", r.RoundTripMS)
			return nil
		},
	}
}

func routesCommand() *cli.Command {
	return &cli.Command{
		Name:  "routes",
		Usage: "rank routes by estimated one-way latency",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  "route",
				Usage: "route as origin:destination:distance_km (repeatable)",
			},
		},
		Action: func(c *cli.Context) error {
			est, err := latency.New(latency.DefaultConfig(), nil)
			if err != nil {
				return err
			}
			routes := make([]latency.Route, 0, len(c.StringSlice("route")))
			for _, raw := range c.StringSlice("route") {
				parts := strings.Split(raw, ":")
				if len(parts) != 3 {
					return fmt.Errorf("bad route %q, want origin:destination:distance_km", raw)
				}
				dist, err := strconv.ParseFloat(parts[2], 64)
				if err != nil {
					return fmt.Errorf("bad distance in %q: %w", raw, err)
				}
				routes = append(routes, est.CompareRoute(parts[0], parts[1], dist))
			}
			sort.Slice(routes, func(i, j int) bool { return routes[i].OneWayMS < routes[j].OneWayMS })
			fmt.Printf("%-4s %-30s %-12s %-10s %-10s\n", "rank", "route", "distance_km", "one-way", "rtt")
			for i, r := range routes {
				fmt.Printf("%-4d %-30s %-12.1f %-10.3f %-10.3f\n", i+1, r.Route, r.DistanceKM, r.OneWayMS, r.RoundTripMS)
			}
			return nil
		},
	}
}

func seededRand(seed int64) *rand.Rand {
	if seed == 0 {
		return nil
	}
	return rand.New(rand.NewSource(seed))
}
