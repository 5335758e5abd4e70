package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/pullswitch/internal/pull"
	"github.com/san-kum/pullswitch/internal/rope"
	"github.com/san-kum/pullswitch/internal/sim"
)

const ropeSamples = 48

// Colors for a rendered pose. The switch being on selects the dark palette.
type Colors struct {
	Background string
	Rope       string
	Knob       string
}

func ColorsFor(isOn bool) Colors {
	if isOn {
		return Colors{Background: "#0a0a0a", Rope: "#d0d0d0", Knob: "#f5c542"}
	}
	return Colors{Background: "#fafafa", Rope: "#303030", Knob: "#505050"}
}

// RopeSVG draws the rope and knob for a pose, anchor centred at the top.
func RopeSVG(g rope.Geometry, p pull.Pose, width, height int) string {
	c := ColorsFor(p.IsOn)
	ox := float64(width) / 2
	oy := 8.0

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<path fill="none" stroke="%s" stroke-width="3" stroke-linecap="round" d="M`,
		width, height, width, height, c.Background, c.Rope))

	for i, pt := range g.Curve(p).Sample(ropeSamples) {
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", pt.X+ox, pt.Y+oy))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", pt.X+ox, pt.Y+oy))
		}
	}
	sb.WriteString("\"/>\n")

	knob := g.Knob(p)
	sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
</svg>`, knob.X+ox, knob.Y+oy, g.KnobSize/2, c.Knob))
	return sb.String()
}

// TraceSVG plots the knob's vertical position over time.
// DeepestPose returns the frame pose whose knob hangs lowest. It panics on
// an empty slice.
func DeepestPose(frames []sim.Frame) pull.Pose {
	deepest := frames[0].Pose
	for _, f := range frames[1:] {
		if f.Pose.KnobY() > deepest.KnobY() {
			deepest = f.Pose
		}
	}
	return deepest
}

func TraceSVG(frames []sim.Frame, width, height int, strokeColor string) string {
	if len(frames) < 2 {
		return ""
	}

	minT, maxT := frames[0].T, frames[len(frames)-1].T
	minY, maxY := frames[0].Pose.KnobY(), frames[0].Pose.KnobY()
	for _, f := range frames {
		y := f.Pose.KnobY()
		if y < minY {
			minY = y
		}
		if y > maxY {
			maxY = y
		}
	}

	rangeT := maxT - minT
	rangeY := maxY - minY
	if rangeT == 0 {
		rangeT = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i, f := range frames {
		x := (f.T - minT) / rangeT * float64(width)
		// knob y grows downward, same as svg
		y := (f.Pose.KnobY() - minY) / rangeY * float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
