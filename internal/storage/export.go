package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/pullswitch/internal/sim"
)

type ExportData struct {
	RunMetadata
	Steps  int         `json:"steps"`
	Frames []sim.Frame `json:"frames"`
}

// ExportJSON writes a saved run, metadata and frames, as one JSON document.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	frames, err := s.LoadFrames(runID)
	if err != nil {
		return err
	}

	data := ExportData{
		RunMetadata: *meta,
		Steps:       len(frames),
		Frames:      frames,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
