package sim

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/pullswitch/internal/integrators"
	"github.com/san-kum/pullswitch/internal/metrics"
	"github.com/san-kum/pullswitch/internal/pull"
)

// Simulator replays a drag script against a switch on a fixed frame clock,
// the way a host would deliver events and ticks on one loop.
type Simulator struct {
	sw        *pull.Switch
	metrics   []metrics.Metric
	observers []Observer
	now       float64
	toggles   []Toggle
}

func New(sw *pull.Switch) *Simulator {
	s := &Simulator{
		sw:        sw,
		metrics:   make([]metrics.Metric, 0),
		observers: make([]Observer, 0),
	}
	sw.OnToggle(func(on bool) {
		s.toggles = append(s.toggles, Toggle{T: s.now, IsOn: on})
	})
	return s
}

func (s *Simulator) AddMetric(m metrics.Metric) { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer)     { s.observers = append(s.observers, o) }

func (s *Simulator) Run(ctx context.Context, script Script, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	integ, err := integrators.ByName(cfg.Integrator)
	if err != nil {
		return nil, err
	}
	s.sw.SetIntegrator(integ)

	events := make(Script, len(script))
	copy(events, script)
	sort.SliceStable(events, func(i, j int) bool { return events[i].At < events[j].At })

	steps := int(math.Round(cfg.Duration / cfg.Dt))
	result := &Result{
		Frames:  make([]Frame, 0, steps+1),
		Metrics: make(map[string]float64),
	}
	s.toggles = nil

	for _, m := range s.metrics {
		m.Reset()
	}

	s.now = 0
	s.record(result)

	next := 0
	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		for next < len(events) && events[next].At <= s.now+cfg.Dt/2 {
			s.apply(events[next], result)
			next++
		}

		s.sw.Step(cfg.Dt)
		s.now = float64(i+1) * cfg.Dt
		result.StepsTaken++
		s.record(result)
	}

	result.Toggles = s.toggles
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	result.Metrics["toggles"] = float64(len(s.toggles))

	return result, nil
}

func (s *Simulator) apply(ev Event, result *Result) {
	switch ev.Kind {
	case DragBegin:
		s.sw.DragBegin()
	case DragChange:
		s.sw.DragChange(ev.DX, ev.DY)
	case DragEnd:
		s.sw.DragEnd()
		result.ReleaseAt = s.now
		result.ReleasePose = s.sw.Pose()
	}
}

func (s *Simulator) record(result *Result) {
	p := s.sw.Pose()
	result.Frames = append(result.Frames, Frame{T: s.now, Pose: p})
	for _, m := range s.metrics {
		m.Observe(p, s.now)
	}
	for _, o := range s.observers {
		o.OnFrame(p, s.now)
	}
}

func validateConfig(cfg Config) error {
	if cfg.Dt <= 0 || math.IsNaN(cfg.Dt) {
		return fmt.Errorf("%w: dt must be positive, got %f", ErrInvalidConfig, cfg.Dt)
	}
	if cfg.Duration <= 0 || math.IsNaN(cfg.Duration) {
		return fmt.Errorf("%w: duration must be positive, got %f", ErrInvalidConfig, cfg.Duration)
	}
	return nil
}
