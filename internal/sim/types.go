package sim

import (
	"errors"

	"github.com/san-kum/pullswitch/internal/pull"
)

// ErrInvalidConfig indicates a run configuration that cannot be simulated.
var ErrInvalidConfig = errors.New("sim: invalid config")

type EventKind int

const (
	DragBegin EventKind = iota
	DragChange
	DragEnd
)

func (k EventKind) String() string {
	switch k {
	case DragBegin:
		return "begin"
	case DragChange:
		return "change"
	case DragEnd:
		return "end"
	}
	return "unknown"
}

// Event is a drag event delivered At seconds into the run. DX and DY are the
// cumulative translation since the drag began.
type Event struct {
	At     float64
	Kind   EventKind
	DX, DY float64
}

type Script []Event

type Observer interface {
	OnFrame(p pull.Pose, t float64)
}

type Config struct {
	Dt         float64
	Duration   float64
	Integrator string
}

type Frame struct {
	T    float64   `json:"t"`
	Pose pull.Pose `json:"pose"`
}

type Toggle struct {
	T    float64 `json:"t"`
	IsOn bool    `json:"is_on"`
}

type Result struct {
	Frames      []Frame
	Toggles     []Toggle
	Metrics     map[string]float64
	StepsTaken  int
	ReleaseAt   float64
	ReleasePose pull.Pose
}
