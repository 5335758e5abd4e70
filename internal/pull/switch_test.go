package pull_test

import (
	"math"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/pullswitch/internal/pull"
)

const frame = 1.0 / 60

var _ = Describe("Switch", func() {
	var (
		sw      *pull.Switch
		tuning  pull.Tuning
		toggles []bool
	)

	pullTo := func(dx, dy float64) {
		sw.DragBegin()
		sw.DragChange(dx/2, dy/2)
		sw.DragChange(dx, dy)
		sw.DragEnd()
	}

	settle := func(seconds float64) {
		for i := 0; i < int(seconds/frame); i++ {
			sw.Step(frame)
		}
	}

	BeforeEach(func() {
		tuning = pull.DefaultTuning()
		var err error
		sw, err = pull.New(tuning)
		Expect(err).NotTo(HaveOccurred())
		toggles = nil
		sw.OnToggle(func(on bool) { toggles = append(toggles, on) })
	})

	It("starts zeroed and off", func() {
		Expect(sw.Pose()).To(Equal(pull.Pose{}))
	})

	It("rejects invalid tuning", func() {
		bad := pull.DefaultTuning()
		bad.MaxPull = -1
		_, err := pull.New(bad)
		Expect(err).To(MatchError(pull.ErrInvalidTuning))
	})

	Context("a long pull", func() {
		It("toggles on once with the offset held at release", func() {
			sw.DragBegin()
			sw.DragChange(0, 200)
			Expect(toggles).To(BeEmpty())
			Expect(sw.Pose().IsOn).To(BeFalse())
			sw.DragEnd()

			Expect(toggles).To(Equal([]bool{true}))
			p := sw.Pose()
			Expect(p.IsOn).To(BeTrue())
			Expect(p.VerticalOffset).To(BeNumerically("~", math.Pow(200, 0.85), 1e-9))
			Expect(p.VelocityY).To(BeNumerically("~", -p.VerticalOffset*tuning.ReleaseKickY, 1e-9))
		})

		It("hands MaxPull to the simulator when saturated", func() {
			pullTo(0, 400)

			Expect(toggles).To(Equal([]bool{true}))
			Expect(sw.Pose().VerticalOffset).To(Equal(tuning.MaxPull))
		})

		It("toggles back off on the next long pull", func() {
			pullTo(0, 400)
			settle(5)
			pullTo(0, 400)

			Expect(toggles).To(Equal([]bool{true, false}))
			Expect(sw.Pose().IsOn).To(BeFalse())
		})

		It("never flips the mode while the rope settles", func() {
			pullTo(12, 400)
			settle(10)

			Expect(toggles).To(HaveLen(1))
			Expect(sw.Pose().IsOn).To(BeTrue())
		})
	})

	Context("a short pull", func() {
		It("does not toggle and returns to rest", func() {
			pullTo(0, 50)

			Expect(toggles).To(BeEmpty())
			Expect(sw.Pose().IsOn).To(BeFalse())
			Expect(sw.Pose().VelocityY).To(BeNumerically("<", 0))

			settle(5)
			Expect(sw.Pose().AtRest()).To(BeTrue())
		})

		It("ignores a peak past the trigger when released below it", func() {
			sw.DragBegin()
			sw.DragChange(0, 400)
			sw.DragChange(0, 50)
			sw.DragEnd()

			Expect(toggles).To(BeEmpty())
		})
	})

	Context("with peak triggering", func() {
		BeforeEach(func() {
			tuning.Trigger = pull.TriggerPeak
			Expect(sw.SetTuning(tuning)).To(Succeed())
		})

		It("toggles on a peak past the trigger", func() {
			sw.DragBegin()
			sw.DragChange(0, 400)
			sw.DragChange(0, 50)
			sw.DragEnd()

			Expect(toggles).To(Equal([]bool{true}))
		})
	})

	Context("a drag without translation", func() {
		It("hands over a zero impulse", func() {
			sw.DragBegin()
			Expect(sw.Pose().IsDragging).To(BeTrue())
			sw.DragEnd()

			Expect(toggles).To(BeEmpty())
			Expect(sw.Pose().AtRest()).To(BeTrue())
			sw.Step(frame)
			Expect(sw.Pose().AtRest()).To(BeTrue())
		})
	})

	Context("after release", func() {
		BeforeEach(func() {
			pullTo(20, 400)
		})

		It("plays a bounce pulse that ends at exactly zero", func() {
			peak := 0.0
			for i := 0; i < int(tuning.Bounce.Window/frame)+2; i++ {
				sw.Step(frame)
				peak = math.Max(peak, sw.Pose().Bounce)
			}
			Expect(peak).To(BeNumerically(">", 0))
			Expect(sw.Pose().Bounce).To(Equal(0.0))
		})

		It("converges to an idempotent rest", func() {
			settle(20)
			rest := sw.Pose()
			Expect(rest.AtRest()).To(BeTrue())

			settle(1)
			Expect(sw.Pose()).To(Equal(rest))
		})

		It("keeps offsets within bounds at the MaxStep ceiling", func() {
			for i := 0; i < 2; i++ {
				sw.Step(tuning.MaxStep)
				p := sw.Pose()
				Expect(p.VerticalOffset).To(BeNumerically("<=", tuning.MaxPull))
				Expect(p.VerticalOffset).To(BeNumerically(">=", -tuning.SlackLimit))
				Expect(math.Abs(p.LateralOffset)).To(BeNumerically("<=", tuning.MaxSide))
			}
		})

		It("discards momentum when a new drag begins mid-settle", func() {
			settle(0.1)
			Expect(sw.Pose().VelocityY).NotTo(BeZero())

			sw.DragBegin()
			p := sw.Pose()
			Expect(p.IsDragging).To(BeTrue())
			Expect(p.VelocityX).To(BeZero())
			Expect(p.VelocityY).To(BeZero())
			Expect(p.Bounce).To(BeZero())

			held := sw.Pose()
			settle(1)
			Expect(sw.Pose()).To(Equal(held))
		})
	})

	Context("driven by the frame clock", func() {
		It("steps by elapsed time and ignores the first tick", func() {
			pullTo(0, 400)
			t0 := time.Unix(0, 0).Add(time.Hour)

			sw.Tick(t0)
			Expect(sw.Pose().VerticalOffset).To(Equal(tuning.MaxPull))

			sw.Tick(t0.Add(16 * time.Millisecond))
			Expect(sw.Pose().VerticalOffset).To(BeNumerically("<", tuning.MaxPull))
		})

		It("absorbs a long gap with a single MaxStep", func() {
			other, err := pull.New(tuning)
			Expect(err).NotTo(HaveOccurred())
			pullTo(0, 400)
			other.DragBegin()
			other.DragChange(0, 200)
			other.DragChange(0, 400)
			other.DragEnd()

			t0 := time.Unix(0, 0).Add(time.Hour)
			sw.Tick(t0)
			sw.Tick(t0.Add(10 * time.Minute))
			other.Step(tuning.MaxStep)

			Expect(sw.Pose()).To(Equal(other.Pose()))
		})
	})
})
