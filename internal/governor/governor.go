package governor

import (
	"sync"

	"codeberg.org/avhel/gpucoolctl/internal/errors"
	"codeberg.org/avhel/gpucoolctl/internal/logger"
)

const temperatureWindowSize = 5

// Governor maps observed GPU temperature to a cooling state by stepping
// through ascending thresholds. State 0 applies below the first threshold;
// crossing thresholds[i] raises the state to i+1. Temperatures are
// averaged over a short window, and dropping a state requires the average
// to fall a hysteresis margin below the threshold that raised it, so the
// state does not flap around a boundary.
type Governor struct {
	thresholds []int
	hysteresis int

	mu      sync.Mutex
	history []int
	state   int
}

func New(thresholds []int, hysteresis int) (*Governor, error) {
	errFactory := errors.New()

	if len(thresholds) == 0 {
		return nil, errFactory.New(ErrNoThresholds)
	}
	for i := 1; i < len(thresholds); i++ {
		if thresholds[i] <= thresholds[i-1] {
			return nil, errFactory.WithData(ErrThresholdsNotAscending, thresholds)
		}
	}
	if hysteresis < 0 {
		return nil, errFactory.WithData(ErrInvalidHysteresis, hysteresis)
	}

	return &Governor{
		thresholds: thresholds,
		hysteresis: hysteresis,
	}, nil
}

// Observe folds temp into the rolling average and returns the cooling
// state the device should run at.
func (g *Governor) Observe(temp int) int {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.history = append(g.history, temp)
	if len(g.history) > temperatureWindowSize {
		g.history = g.history[1:]
	}

	sum := 0
	for _, t := range g.history {
		sum += t
	}
	avg := sum / len(g.history)

	target := g.targetState(avg)
	if target != g.state {
		logger.Debug().
			Int("temperature", avg).
			Int("from", g.state).
			Int("to", target).
			Msg("Cooling state change")
		g.state = target
	}

	return g.state
}

func (g *Governor) targetState(avg int) int {
	raw := 0
	for _, threshold := range g.thresholds {
		if avg >= threshold {
			raw++
		}
	}

	// Lowering the state needs the average to clear the hysteresis margin
	// below the threshold that raised it.
	if raw < g.state {
		holding := g.state
		for holding > raw {
			if avg > g.thresholds[holding-1]-g.hysteresis {
				break
			}
			holding--
		}

		return holding
	}

	return raw
}

// State returns the current cooling state without observing a sample.
func (g *Governor) State() int {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.state
}

// MaxState returns the deepest state the threshold table can request.
func (g *Governor) MaxState() int {
	return len(g.thresholds)
}
