package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/pullswitch/internal/pull"
	"github.com/san-kum/pullswitch/internal/sim"
)

func sampleResult() *sim.Result {
	return &sim.Result{
		Frames: []sim.Frame{
			{T: 0, Pose: pull.Pose{}},
			{T: 0.5, Pose: pull.Pose{VerticalOffset: 140, LateralOffset: -3.25, VelocityY: -4.5, IsDragging: true}},
			{T: 1, Pose: pull.Pose{VerticalOffset: 1.5, Bounce: 11.5, IsOn: true}},
		},
		Toggles: []sim.Toggle{{T: 0.5, IsOn: true}},
		Metrics: map[string]float64{"settle_time": 2.4},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(RunMetadata{Preset: "default", Dt: 1.0 / 60, Duration: 1, Integrator: "rk4", DY: 400}, sampleResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Fatal("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Preset != "default" {
		t.Errorf("expected preset 'default', got '%s'", meta.Preset)
	}
	if meta.Integrator != "rk4" {
		t.Errorf("expected integrator 'rk4', got '%s'", meta.Integrator)
	}
	if meta.Metrics["settle_time"] != 2.4 {
		t.Errorf("expected settle_time 2.4, got %f", meta.Metrics["settle_time"])
	}
	if len(meta.Toggles) != 1 || !meta.Toggles[0].IsOn {
		t.Errorf("expected one toggle on, got %+v", meta.Toggles)
	}

	frames, err := st.LoadFrames(runID)
	if err != nil {
		t.Fatalf("load frames failed: %v", err)
	}
	if len(frames) != 3 {
		t.Fatalf("expected 3 frames, got %d", len(frames))
	}
	want := sampleResult().Frames
	for i := range frames {
		if frames[i] != want[i] {
			t.Errorf("frame %d: expected %+v, got %+v", i, want[i], frames[i])
		}
	}
}

func TestStoreFramesHeader(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)

	runID, err := st.Save(RunMetadata{}, sampleResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, runID, "frames.csv"))
	if err != nil {
		t.Fatalf("read frames: %v", err)
	}
	header := "time,vertical,lateral,bounce,vx,vy,dragging,on\n"
	if !bytes.HasPrefix(data, []byte(header)) {
		t.Errorf("expected header %q, got %q", header, data[:len(header)])
	}
}

func TestStoreList(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	first, _ := st.Save(RunMetadata{Preset: "stiff"}, sampleResult())
	second, _ := st.Save(RunMetadata{Preset: "loose"}, sampleResult())
	if err := os.Mkdir(filepath.Join(dir, "junk"), 0755); err != nil {
		t.Fatal(err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != first || runs[1].ID != second {
		t.Errorf("expected [%s %s], got [%s %s]", first, second, runs[0].ID, runs[1].ID)
	}
}

func TestStoreRunNotFound(t *testing.T) {
	st := New(t.TempDir())

	_, err := st.Load("missing")
	if !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected fs.ErrNotExist, got %v", err)
	}

	_, err = st.LoadFrames("missing")
	if !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
}

func TestExportJSON(t *testing.T) {
	st := New(t.TempDir())
	runID, err := st.Save(RunMetadata{Preset: "peak"}, sampleResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	var buf bytes.Buffer
	if err := st.ExportJSON(&buf, runID); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var got ExportData
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode export: %v", err)
	}
	if got.ID != runID {
		t.Errorf("expected id %s, got %s", runID, got.ID)
	}
	if got.Steps != 3 || len(got.Frames) != 3 {
		t.Errorf("expected 3 frames, got steps=%d frames=%d", got.Steps, len(got.Frames))
	}
	if !got.Frames[2].Pose.IsOn {
		t.Error("expected last frame on")
	}

	raw := buf.String()
	for _, key := range []string{`"vertical_offset"`, `"lateral_offset"`, `"velocity_y"`, `"is_dragging"`} {
		if !strings.Contains(raw, key) {
			t.Errorf("expected pose key %s in export", key)
		}
	}
	if strings.Contains(raw, "VerticalOffset") {
		t.Error("expected snake_case pose keys, got Go field names")
	}
}
