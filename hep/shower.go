package hep

import (
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"go-hep.org/x/hep/fmom"
)

// Parton is one entry of a perturbative-level configuration.
type Parton struct {
	PID    int
	Status int
	P      fmom.PxPyPzE
	Mass   float64
}

// PartonEvent is the frozen partonic baseline for one candidate event.
// It is owned exclusively by the Runner for the duration of that
// event's retry loop and never mutated: every hadronization attempt
// starts from the same snapshot.
type PartonEvent struct {
	Number  int
	Weight  float64
	Partons []Parton
}

// PartonSource yields perturbative configurations from the upstream
// generator. Next returns io.EOF on clean end-of-input; any other error
// is a transient generation failure.
type PartonSource interface {
	Next() (*PartonEvent, error)
}

// Hadronizer performs one stochastic hadronization draw from a frozen
// baseline. Draws are independent: the same baseline may be passed any
// number of times. An error is a failed draw, not a fatal condition.
type Hadronizer interface {
	Hadronize(pe *PartonEvent) (*Event, error)
}

// EventWriter accepts finished event records for downstream storage.
type EventWriter interface {
	WriteEvent(ev *Event) error
}

// ErrAborted is returned by Runner.Run when the upstream generator
// failed more than MaxAbort times without reaching end-of-input.
var ErrAborted = errors.New("event generation aborted prematurely")

// Runner is the retry-based acceptance sampler. For each partonic
// configuration it performs up to MaxRetry independent hadronization
// draws from the frozen baseline, writes the first draw that satisfies
// the predicate, and skips the configuration when the budget runs out.
type Runner struct {
	Source    PartonSource
	Hadronize Hadronizer
	Writer    EventWriter
	Predicate Predicate
	Config    ShowerConfig

	Metrics ShowerMetrics
}

// Run processes partonic configurations until end-of-input, the
// configured event cap, or an abort. Skipped events are counted, never
// escalated; only writer I/O errors and exhausted abort budgets
// terminate the run abnormally.
func (r *Runner) Run() error {
	for {
		if r.Config.MaxEvents > 0 && r.Metrics.Processed >= r.Config.MaxEvents {
			return nil
		}

		baseline, err := r.Source.Next()
		if err == io.EOF {
			logrus.Info("reached end of partonic input")
			return nil
		}
		if err != nil {
			r.Metrics.Aborts++
			if r.Metrics.Aborts < r.Config.MaxAbort {
				logrus.Debugf("generation glitch (%d/%d): %v", r.Metrics.Aborts, r.Config.MaxAbort, err)
				continue
			}
			return fmt.Errorf("%w: %v", ErrAborted, err)
		}

		accepted, err := r.sample(baseline)
		if err != nil {
			return err
		}

		r.Metrics.Processed++
		if !accepted {
			r.Metrics.Skipped++
		}

		if r.Metrics.Processed%progressInterval == 0 {
			logrus.Infof("processed %d events, efficiency: %.1f%%, avg retries: %.1f",
				r.Metrics.Processed, 100*r.Metrics.Efficiency(), r.Metrics.AvgRetries())
		}
	}
}

// sample runs the attempt loop for one frozen baseline. It returns
// whether a draw was accepted; the only error it can surface is a
// writer failure.
func (r *Runner) sample(baseline *PartonEvent) (bool, error) {
	for attempt := 0; attempt < r.Config.MaxRetry; attempt++ {
		r.Metrics.TotalAttempts++

		ev, err := r.Hadronize.Hadronize(baseline)
		if err != nil {
			// A failed draw spends one attempt, nothing more.
			continue
		}
		if !r.Predicate.Accept(ev) {
			continue
		}

		if err := r.Writer.WriteEvent(ev); err != nil {
			return false, fmt.Errorf("writing accepted event %d: %w", baseline.Number, err)
		}
		r.Metrics.Accepted++
		r.Metrics.Species.Count(ev)
		return true, nil
	}
	return false, nil
}
