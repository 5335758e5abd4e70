package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/pullswitch/internal/pull"
	"github.com/san-kum/pullswitch/internal/sim"
)

// ErrRunNotFound is returned when no run directory exists for an ID. It
// matches fs.ErrNotExist as well.
var ErrRunNotFound = fmt.Errorf("storage: run not found: %w", fs.ErrNotExist)

const (
	metaFile   = "metadata.json"
	framesFile = "frames.csv"
)

var frameHeader = []string{"time", "vertical", "lateral", "bounce", "vx", "vy", "dragging", "on"}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Preset     string             `json:"preset"`
	Timestamp  time.Time          `json:"timestamp"`
	Dt         float64            `json:"dt"`
	Duration   float64            `json:"duration"`
	Integrator string             `json:"integrator"`
	DX         float64            `json:"dx"`
	DY         float64            `json:"dy"`
	Toggles    []sim.Toggle       `json:"toggles"`
	Metrics    map[string]float64 `json:"metrics"`
}

func (s *Store) Save(meta RunMetadata, result *sim.Result) (string, error) {
	now := time.Now()
	if meta.Preset == "" {
		meta.Preset = "custom"
	}
	meta.ID = fmt.Sprintf("%s_%d", meta.Preset, now.UnixNano())
	meta.Timestamp = now
	meta.Toggles = result.Toggles
	meta.Metrics = result.Metrics

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	if err := writeJSON(filepath.Join(runDir, metaFile), meta); err != nil {
		return "", err
	}

	f, err := os.Create(filepath.Join(runDir, framesFile))
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := writeFrames(f, result.Frames); err != nil {
		return "", err
	}
	return meta.ID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeFrames(w io.Writer, frames []sim.Frame) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(frameHeader); err != nil {
		return err
	}
	for _, fr := range frames {
		p := fr.Pose
		row := []string{
			formatFloat(fr.T),
			formatFloat(p.VerticalOffset),
			formatFloat(p.LateralOffset),
			formatFloat(p.Bounce),
			formatFloat(p.VelocityX),
			formatFloat(p.VelocityY),
			strconv.FormatBool(p.IsDragging),
			strconv.FormatBool(p.IsOn),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

// List returns the readable runs, oldest first. Directories without valid
// metadata are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metaFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("storage: decode %s: %w", runID, err)
	}
	return &meta, nil
}

func (s *Store) LoadFrames(runID string) ([]sim.Frame, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, framesFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(frameHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("storage: read frames %s: %w", runID, err)
	}
	if len(records) < 2 {
		return []sim.Frame{}, nil
	}

	frames := make([]sim.Frame, 0, len(records)-1)
	for _, rec := range records[1:] {
		fr, err := parseFrame(rec)
		if err != nil {
			return nil, fmt.Errorf("storage: frame %q: %w", rec[0], err)
		}
		frames = append(frames, fr)
	}
	return frames, nil
}

func parseFrame(rec []string) (sim.Frame, error) {
	var nums [6]float64
	for i := range nums {
		v, err := strconv.ParseFloat(rec[i], 64)
		if err != nil {
			return sim.Frame{}, err
		}
		nums[i] = v
	}
	dragging, err := strconv.ParseBool(rec[6])
	if err != nil {
		return sim.Frame{}, err
	}
	on, err := strconv.ParseBool(rec[7])
	if err != nil {
		return sim.Frame{}, err
	}
	return sim.Frame{
		T: nums[0],
		Pose: pull.Pose{
			VerticalOffset: nums[1],
			LateralOffset:  nums[2],
			Bounce:         nums[3],
			VelocityX:      nums[4],
			VelocityY:      nums[5],
			IsDragging:     dragging,
			IsOn:           on,
		},
	}, nil
}
