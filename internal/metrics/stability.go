package metrics

import (
	"math"

	"github.com/san-kum/pullswitch/internal/pull"
)

type Metric interface {
	Name() string
	Observe(p pull.Pose, t float64)
	Value() float64
	Reset()
}

// Stability is the fraction of frames whose offsets stayed inside the tuning
// bounds. Anything below 1 means a clamp was bypassed.
type Stability struct {
	name       string
	tuning     pull.Tuning
	violations int
	samples    int
}

func NewStability(t pull.Tuning) *Stability {
	return &Stability{
		name:   "stability",
		tuning: t,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(p pull.Pose, t float64) {
	s.samples++
	if p.VerticalOffset > s.tuning.MaxPull || p.VerticalOffset < -s.tuning.SlackLimit ||
		math.Abs(p.LateralOffset) > s.tuning.MaxSide {
		s.violations++
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}

type PeakOffset struct {
	peak float64
}

func NewPeakOffset() *PeakOffset { return &PeakOffset{} }

func (m *PeakOffset) Name() string { return "peak_offset" }

func (m *PeakOffset) Observe(p pull.Pose, t float64) {
	m.peak = math.Max(m.peak, p.KnobY())
}

func (m *PeakOffset) Value() float64 { return m.peak }
func (m *PeakOffset) Reset()         { m.peak = 0 }

// SettleTime is the time of the first frame of the final rest period, or -1
// if the run ended in motion.
type SettleTime struct {
	restSince float64
	resting   bool
}

func NewSettleTime() *SettleTime { return &SettleTime{} }

func (m *SettleTime) Name() string { return "settle_time" }

func (m *SettleTime) Observe(p pull.Pose, t float64) {
	if !p.AtRest() {
		m.resting = false
		return
	}
	if !m.resting {
		m.resting = true
		m.restSince = t
	}
}

func (m *SettleTime) Value() float64 {
	if !m.resting {
		return -1
	}
	return m.restSince
}

func (m *SettleTime) Reset() {
	m.restSince = 0
	m.resting = false
}
