// Package pull implements the physics core of a pull-chain light switch.
//
// A knob hangs from a rope anchored at a fixed point. Dragging the knob down
// stretches the rope; releasing it past a trigger distance toggles the switch.
// The package is split the same way the interaction is:
//
//   - [Tracker]: maps a drag (cumulative translation since drag start) onto a
//     resisted pull and a tension-coupled sideways sway, and decides the
//     toggle at release.
//   - [Simulator]: advances the pose every frame with a damped spring, a
//     slack-side pseudo-gravity and a short release [BounceSequence].
//   - [Switch]: owns the single [State] and routes host callbacks to the
//     component that is authoritative at the moment.
//
// # Example
//
//	sw, _ := pull.New(pull.DefaultTuning())
//	sw.OnToggle(func(on bool) { fmt.Println("dark mode:", on) })
//	sw.DragBegin()
//	sw.DragChange(0, 400)
//	sw.DragEnd()
//	for i := 0; i < 120; i++ {
//	    sw.Step(1.0 / 60)
//	}
//
// # Thread Safety
//
// A Switch is NOT safe for concurrent use. Hosts deliver drag events and
// frame ticks from a single loop, which is also what guarantees that a
// release is fully applied before the next frame is simulated.
package pull
