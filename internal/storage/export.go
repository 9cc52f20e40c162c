package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/shgcav/internal/cavity"
)

type ExportPoint struct {
	Value float64      `json:"value"`
	Mode  *cavity.Mode `json:"mode,omitempty"`
	Error string       `json:"error,omitempty"`
}

type ExportData struct {
	Run    RunMetadata   `json:"run"`
	Points []ExportPoint `json:"points"`
}

func NewExport(meta RunMetadata, points []cavity.Point) ExportData {
	data := ExportData{
		Run:    meta,
		Points: make([]ExportPoint, len(points)),
	}
	for i, pt := range points {
		data.Points[i].Value = pt.Value
		if pt.Err != nil {
			data.Points[i].Error = pt.Err.Error()
			continue
		}
		mode := pt.Mode
		data.Points[i].Mode = &mode
	}
	return data
}

func WriteJSON(w io.Writer, data ExportData) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// ExportJSON writes a stored run to path, or to stdout when path is "-".
func (s *Store) ExportJSON(runID, path string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	points, err := s.LoadSweep(runID)
	if err != nil {
		return err
	}

	data := NewExport(*meta, points)
	if path == "-" {
		return WriteJSON(os.Stdout, data)
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteJSON(file, data)
}
