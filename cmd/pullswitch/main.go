package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/pullswitch/internal/audio"
	"github.com/san-kum/pullswitch/internal/config"
	"github.com/san-kum/pullswitch/internal/export"
	"github.com/san-kum/pullswitch/internal/gui"
	"github.com/san-kum/pullswitch/internal/integrators"
	"github.com/san-kum/pullswitch/internal/metrics"
	"github.com/san-kum/pullswitch/internal/physics"
	"github.com/san-kum/pullswitch/internal/pull"
	"github.com/san-kum/pullswitch/internal/sim"
	"github.com/san-kum/pullswitch/internal/storage"
	"github.com/san-kum/pullswitch/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string

	dt         float64
	duration   float64
	integrator string
	dx         float64
	dy         float64
	hold       float64
	ramp       float64

	watch   bool
	sound   bool
	outFile string
	svgFile string
	svgMode string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pullswitch",
		Short: "a pull-chain light switch on a spring",
		RunE:  runPicker,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".pullswitch", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "tuning preset")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "pull the switch in the terminal",
		RunE:  runLive,
	}
	liveCmd.Flags().BoolVar(&watch, "watch", false, "reload --config when it changes")
	liveCmd.Flags().BoolVar(&sound, "sound", false, "click on toggle")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "pull the switch in a window",
		RunE:  runGUI,
	}
	guiCmd.Flags().BoolVar(&sound, "sound", false, "click on toggle")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a scripted pull and save it",
		RunE:  runScripted,
	}
	addScriptFlags(runCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot knob offsets of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a run as json or svg",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&outFile, "out", "", "write json here instead of stdout")
	exportCmd.Flags().StringVar(&svgFile, "svg", "", "write an svg here")
	exportCmd.Flags().StringVar(&svgMode, "svg-mode", "rope", "svg content: rope (deepest pose of the run) or trace")

	compareCmd := &cobra.Command{
		Use:   "compare [integrator...]",
		Short: "run the same pull with each integrator",
		RunE:  compareIntegrators,
	}
	addScriptFlags(compareCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list tuning presets",
		Run: func(cmd *cobra.Command, args []string) {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "PRESET\tMAX PULL\tTRIGGER\tMODE\tDESCRIPTION")
			for _, name := range config.ListPresets() {
				cfg := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%.0f\t%.0f\t%s\t%s\n", name, cfg.Tuning.MaxPull, cfg.Tuning.TriggerDistance, cfg.Tuning.Trigger, config.DescribePreset(name))
			}
			w.Flush()
		},
	}

	rootCmd.AddCommand(liveCmd, guiCmd, runCmd, listCmd, plotCmd, exportCmd, compareCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addScriptFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	cmd.Flags().StringVar(&integrator, "integrator", integrators.Default, "integrator")
	cmd.Flags().Float64Var(&dx, "dx", 12, "sideways finger travel")
	cmd.Flags().Float64Var(&dy, "dy", 400, "downward finger travel")
	cmd.Flags().Float64Var(&hold, "hold", 0.2, "seconds held at full travel")
	cmd.Flags().Float64Var(&ramp, "ramp", 0.3, "seconds to reach full travel")
}

// loadConfig layers the preset, then the config file, then explicit flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Lookup("dt") == nil {
		return cfg, nil
	}
	if flags.Changed("dt") {
		cfg.Sim.Dt = dt
	}
	if flags.Changed("time") {
		cfg.Sim.Duration = duration
	}
	if flags.Changed("integrator") {
		cfg.Sim.Integrator = integrator
	}
	if flags.Changed("dx") {
		cfg.Script.DX = dx
	}
	if flags.Changed("dy") {
		cfg.Script.DY = dy
	}
	if flags.Changed("hold") {
		cfg.Script.Hold = hold
	}
	if flags.Changed("ramp") {
		cfg.Script.Ramp = ramp
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newSwitch(cfg *config.Config) (*pull.Switch, error) {
	sw, err := pull.New(cfg.PullTuning())
	if err != nil {
		return nil, err
	}
	integ, err := integrators.ForHost(cfg.Sim.Integrator)
	if err != nil {
		return nil, err
	}
	sw.SetIntegrator(integ)
	return sw, nil
}

// attachClicker plays a click on every toggle. Audio failures are reported
// and otherwise ignored.
func attachClicker(sw *pull.Switch) *audio.Clicker {
	clicker := audio.NewClicker()
	if err := clicker.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "sound disabled: %v\n", err)
		return clicker
	}
	sw.OnToggle(clicker.Play)
	return clicker
}

func runPicker(cmd *cobra.Command, args []string) error {
	if preset == "" && configFile == "" {
		chosen, err := viz.Pick()
		if err != nil {
			return err
		}
		if chosen == "" {
			return nil
		}
		preset = chosen
	}
	return runLive(cmd, args)
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	sw, err := newSwitch(cfg)
	if err != nil {
		return err
	}
	if sound || cfg.Display.Sound {
		defer attachClicker(sw).Stop()
	}

	m := viz.NewModel(sw, cfg)
	if watch {
		if configFile == "" {
			return fmt.Errorf("--watch needs --config")
		}
		w, err := config.Watch(configFile)
		if err != nil {
			return err
		}
		defer w.Close()
		m = m.WithWatcher(w)
	}
	return viz.Run(m)
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	sw, err := newSwitch(cfg)
	if err != nil {
		return err
	}

	app := gui.NewApp(sw, cfg)
	if sound || cfg.Display.Sound {
		app.Audio = attachClicker(sw)
		defer app.Audio.Stop()
	}
	app.Run(cfg.Display.FPS)
	return nil
}

func simulate(cfg *config.Config) (*sim.Result, error) {
	sw, err := newSwitch(cfg)
	if err != nil {
		return nil, err
	}

	s := sim.New(sw)
	s.AddMetric(metrics.NewEnergy(physics.NewRopeAxis(cfg.Tuning.Stiffness, cfg.Tuning.Damping, cfg.Tuning.Gravity)))
	s.AddMetric(metrics.NewStability(cfg.PullTuning()))
	s.AddMetric(metrics.NewPeakOffset())
	s.AddMetric(metrics.NewSettleTime())

	script := sim.PullScript(cfg.Script.DX, cfg.Script.DY, cfg.Script.Ramp, cfg.Script.Hold)
	return s.Run(context.Background(), script, sim.Config{
		Dt:         cfg.Sim.Dt,
		Duration:   cfg.Sim.Duration,
		Integrator: cfg.Sim.Integrator,
	})
}

func runScripted(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("pulling (%.0f, %.0f) over %.2fs, holding %.2fs...\n", cfg.Script.DX, cfg.Script.DY, cfg.Script.Ramp, cfg.Script.Hold)
	start := time.Now()

	result, err := simulate(cfg)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	name := preset
	if name == "" && configFile != "" {
		name = "config"
	}
	runID, err := st.Save(storage.RunMetadata{
		Preset:     name,
		Dt:         cfg.Sim.Dt,
		Duration:   cfg.Sim.Duration,
		Integrator: cfg.Sim.Integrator,
		DX:         cfg.Script.DX,
		DY:         cfg.Script.DY,
	}, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Printf("offset at release: %.2f\n", result.ReleasePose.VerticalOffset)
	for _, tg := range result.Toggles {
		fmt.Printf("toggled %s at %.3fs\n", onOff(tg.IsOn), tg.T)
	}
	fmt.Println("\nmetrics:")
	for _, name := range []string{"toggles", "peak_offset", "settle_time", "mean_energy", "stability"} {
		fmt.Printf("  %s: %.6f\n", name, result.Metrics[name])
	}
	return nil
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tPULL\tDURATION\tINTEG\tTOGGLES")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t(%.0f,%.0f)\t%.2fs\t%s\t%d\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.DX, run.DY,
			run.Duration,
			run.Integrator,
			len(run.Toggles),
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("preset: %s\n", meta.Preset)
	fmt.Printf("samples: %d\n\n", len(frames))

	series := []struct {
		caption string
		value   func(p pull.Pose) float64
	}{
		{"vertical offset", func(p pull.Pose) float64 { return p.VerticalOffset }},
		{"lateral offset", func(p pull.Pose) float64 { return p.LateralOffset }},
		{"bounce", func(p pull.Pose) float64 { return p.Bounce }},
	}
	for _, s := range series {
		data := make([]float64, len(frames))
		for i, f := range frames {
			data[i] = s.value(f.Pose)
		}
		fmt.Println(asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(s.caption),
		))
		fmt.Println()
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)

	if svgFile != "" {
		return exportSVG(cmd, st, runID)
	}

	if outFile == "" {
		return st.ExportJSON(os.Stdout, runID)
	}
	f, err := os.Create(outFile)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := st.ExportJSON(f, runID); err != nil {
		return err
	}
	fmt.Printf("exported %s to %s\n", runID, outFile)
	return nil
}

func exportSVG(cmd *cobra.Command, st *storage.Store, runID string) error {
	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no frames in %s", runID)
	}

	var svg string
	switch svgMode {
	case "trace":
		svg = export.TraceSVG(frames, 800, 300, "#00ff88")
	case "rope":
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		svg = export.RopeSVG(cfg.RopeGeometry(), export.DeepestPose(frames), 240, 480)
	default:
		return fmt.Errorf("unknown svg mode: %s", svgMode)
	}

	if err := os.WriteFile(svgFile, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", svgFile)
	return nil
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	names := args
	if len(names) == 0 {
		names = integrators.Names()
	}

	fmt.Printf("comparing integrators for a (%.0f, %.0f) pull (dt=%.4f, duration=%.1fs)\n\n", cfg.Script.DX, cfg.Script.DY, cfg.Sim.Dt, cfg.Sim.Duration)
	fmt.Printf("%-14s  %-8s  %-12s  %-12s  %-10s\n", "integrator", "toggles", "settle_s", "peak", "time_ms")
	fmt.Println(strings.Repeat("-", 64))

	for _, name := range names {
		run := *cfg
		run.Sim.Integrator = name

		start := time.Now()
		result, err := simulate(&run)
		elapsed := time.Since(start)
		if err != nil {
			fmt.Printf("%-14s  error: %v\n", name, err)
			continue
		}

		settle := "unsettled"
		if st := result.Metrics["settle_time"]; st >= 0 {
			settle = fmt.Sprintf("%.3f", st)
		}
		fmt.Printf("%-14s  %-8.0f  %-12s  %-12.2f  %-10.2f\n", name, result.Metrics["toggles"], settle, result.Metrics["peak_offset"], float64(elapsed.Microseconds())/1000)
	}
	return nil
}
