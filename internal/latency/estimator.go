// Package latency estimates network latency between trading locations from
// fiber distance. It is the only component in the system with randomness:
// round-trip estimates carry synthetic jitter, everything downstream is
// deterministic.
package latency

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"
)

// Defaults mirror light in fiber (200,000 km/s = 200 km per ms) plus typical
// router and switching delay.
const (
	DefaultFiberKmPerMS = 200.0
	DefaultOverheadMS   = 1.5
	DefaultJitter       = 0.2
)

// Config names the physical constants of the estimate so tests can inject
// alternate values.
type Config struct {
	// FiberKmPerMS is the signal propagation speed in fiber.
	FiberKmPerMS float64
	// OverheadMS is a fixed one-way network overhead.
	OverheadMS float64
	// Jitter is the round-trip variation as a fraction (0.2 = +/-20%).
	Jitter float64
}

func DefaultConfig() Config {
	return Config{
		FiberKmPerMS: DefaultFiberKmPerMS,
		OverheadMS:   DefaultOverheadMS,
		Jitter:       DefaultJitter,
	}
}

func (c Config) Validate() error {
	if c.FiberKmPerMS <= 0 {
		return errors.New("FiberKmPerMS must be > 0")
	}
	if c.OverheadMS < 0 {
		return errors.New("OverheadMS must be >= 0")
	}
	if c.Jitter < 0 || c.Jitter >= 1 {
		return errors.New("Jitter must be in [0, 1)")
	}
	return nil
}

type Estimator struct {
	cfg Config
	rng *rand.Rand
}

// New builds an estimator. A nil rng gets a time-seeded source; tests pass a
// fixed seed for deterministic round trips.
func New(cfg Config, rng *rand.Rand) (*Estimator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Estimator{cfg: cfg, rng: rng}, nil
}

// OneWay estimates one-way latency in ms for a fiber distance in km.
func (e *Estimator) OneWay(distanceKM float64) float64 {
	return distanceKM/e.cfg.FiberKmPerMS + e.cfg.OverheadMS
}

// RoundTrip simulates round-trip latency in ms including jitter.
func (e *Estimator) RoundTrip(distanceKM float64) float64 {
	base := e.OneWay(distanceKM) * 2
	variation := base * ((e.rng.Float64()*2 - 1) * e.cfg.Jitter)
	return round3(base + variation)
}

// Route compares theoretical and simulated latency between two named
// locations.
type Route struct {
	Route       string  `json:"route"`
	DistanceKM  float64 `json:"distance_km"`
	OneWayMS    float64 `json:"one_way_latency_ms"`
	RoundTripMS float64 `json:"round_trip_latency_ms"`
}

func (e *Estimator) CompareRoute(origin, destination string, distanceKM float64) Route {
	return Route{
		Route:       fmt.Sprintf("%s <-> %s", origin, destination),
		DistanceKM:  distanceKM,
		OneWayMS:    round3(e.OneWay(distanceKM)),
		RoundTripMS: e.RoundTrip(distanceKM),
	}
}

func round3(x float64) float64 {
	return math.Round(x*1000) / 1000
}
