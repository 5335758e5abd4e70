package gui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/pullswitch/internal/audio"
	"github.com/san-kum/pullswitch/internal/config"
	"github.com/san-kum/pullswitch/internal/pull"
	"github.com/san-kum/pullswitch/internal/rope"
)

const (
	screenWidth  = 480
	screenHeight = 720
	anchorY      = 24
	ropeSamples  = 64
	grabSlop     = 12
)

// Palette for one mode. Off is a light page, on is dark.
type Palette struct {
	Bg, Rope, Knob, Text, TextDim rl.Color
}

var (
	PaletteLight = Palette{
		Bg:      rl.NewColor(250, 250, 250, 255),
		Rope:    rl.NewColor(48, 48, 48, 255),
		Knob:    rl.NewColor(80, 80, 80, 255),
		Text:    rl.NewColor(40, 40, 40, 255),
		TextDim: rl.NewColor(150, 150, 150, 255),
	}
	PaletteDark = Palette{
		Bg:      rl.NewColor(10, 10, 10, 255),
		Rope:    rl.NewColor(180, 180, 180, 255),
		Knob:    rl.NewColor(245, 197, 66, 255),
		Text:    rl.NewColor(220, 220, 220, 255),
		TextDim: rl.NewColor(60, 60, 60, 255),
	}
)

func paletteFor(isOn bool) Palette {
	if isOn {
		return PaletteDark
	}
	return PaletteLight
}

type App struct {
	Switch *pull.Switch
	Geom   rope.Geometry
	Audio  *audio.Clicker

	dragging   bool
	dragOrigin rl.Vector2
	origin     rope.Point
}

func NewApp(sw *pull.Switch, cfg *config.Config) *App {
	return &App{
		Switch: sw,
		Geom:   cfg.RopeGeometry(),
		origin: rope.Point{X: screenWidth / 2, Y: anchorY},
	}
}

// Run opens the window and blocks until it is closed.
func (a *App) Run(fps int) {
	rl.InitWindow(screenWidth, screenHeight, "pullswitch")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(fps))

	for !rl.WindowShouldClose() {
		a.Update(time.Now())
		a.Draw()
	}
}

func (a *App) Update(now time.Time) {
	mouse := rl.GetMousePosition()

	switch {
	case rl.IsMouseButtonPressed(rl.MouseLeftButton):
		pt := rope.Point{X: float64(mouse.X) - a.origin.X, Y: float64(mouse.Y) - a.origin.Y}
		if a.Geom.HitKnob(a.Switch.Pose(), pt, grabSlop) {
			a.dragging = true
			a.dragOrigin = mouse
			a.Switch.DragBegin()
		}
	case a.dragging && rl.IsMouseButtonReleased(rl.MouseLeftButton):
		a.dragging = false
		a.Switch.DragEnd()
	case a.dragging:
		a.Switch.DragChange(float64(mouse.X-a.dragOrigin.X), float64(mouse.Y-a.dragOrigin.Y))
	}

	a.Switch.Tick(now)
}

func (a *App) Draw() {
	p := a.Switch.Pose()
	pal := paletteFor(p.IsOn)

	rl.BeginDrawing()
	defer rl.EndDrawing()
	rl.ClearBackground(pal.Bg)

	pts := a.Geom.Curve(p).Sample(ropeSamples)
	for i := 1; i < len(pts); i++ {
		rl.DrawLineEx(a.toScreen(pts[i-1]), a.toScreen(pts[i]), 3, pal.Rope)
	}
	rl.DrawCircleV(a.toScreen(rope.Point{}), 5, pal.Rope)
	rl.DrawCircleV(a.toScreen(a.Geom.Knob(p)), float32(a.Geom.KnobSize/2), pal.Knob)

	mode := "Light"
	if p.IsOn {
		mode = "Dark"
	}
	rl.DrawText("Mode: "+mode, 16, screenHeight-56, 20, pal.Text)
	rl.DrawText(fmt.Sprintf("pull %.0f  sway %.0f", p.VerticalOffset, p.LateralOffset), 16, screenHeight-30, 16, pal.TextDim)
}

func (a *App) toScreen(pt rope.Point) rl.Vector2 {
	return rl.NewVector2(float32(a.origin.X+pt.X), float32(a.origin.Y+pt.Y))
}
