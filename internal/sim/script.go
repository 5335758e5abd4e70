package sim

import "math"

const scriptRate = 60.0

// PullScript is a single drag: the finger moves linearly to (dx, dy) over
// ramp seconds, holds for hold seconds, then lets go.
func PullScript(dx, dy, ramp, hold float64) Script {
	steps := int(math.Ceil(ramp * scriptRate))
	if steps < 1 {
		steps = 1
	}

	script := Script{{At: 0, Kind: DragBegin}}
	for i := 1; i <= steps; i++ {
		f := float64(i) / float64(steps)
		script = append(script, Event{
			At:   math.Max(0, ramp) * f,
			Kind: DragChange,
			DX:   dx * f,
			DY:   dy * f,
		})
	}
	end := math.Max(0, ramp) + math.Max(0, hold)
	return append(script, Event{At: end, Kind: DragEnd})
}
