package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/shgcav/internal/cavity"
	"github.com/san-kum/shgcav/internal/config"
)

const (
	metadataFile = "metadata.json"
	sweepFile    = "sweep.csv"
)

var sweepHeader = []string{
	"value", "error",
	"waist_t", "waist_s", "confocal_t", "confocal_s", "xi_t", "xi_s", "ellipticity",
	"collimated_waist_t", "collimated_waist_s", "collimated_confocal_t", "collimated_confocal_s",
	"collimated_xi_t", "collimated_xi_s", "collimated_ellipticity",
	"fsr_hz", "b_parameter", "stability_t", "stability_s",
}

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
	ID        string        `json:"id"`
	Timestamp time.Time     `json:"timestamp"`
	Field     string        `json:"field"`
	Points    int           `json:"points"`
	Stable    int           `json:"stable"`
	Config    config.Config `json:"config"`
}

// Save writes a sweep run as metadata.json plus sweep.csv and returns the
// run id.
func (s *Store) Save(cfg *config.Config, field cavity.Field, points []cavity.Point) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("sweep_%s_%s", field, now.Format("20060102T150405.000000000"))
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Timestamp: now,
		Field:     field.String(),
		Points:    len(points),
		Stable:    len(cavity.Valid(points)),
		Config:    *cfg,
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, sweepFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write(sweepHeader); err != nil {
		return "", err
	}
	for _, pt := range points {
		if err := w.Write(encodePoint(pt)); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return runID, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func encodePoint(pt cavity.Point) []string {
	row := []string{formatFloat(pt.Value), ""}
	if pt.Err != nil {
		row[1] = pt.Err.Error()
		for len(row) < len(sweepHeader) {
			row = append(row, "")
		}
		return row
	}

	m := pt.Mode
	values := append(focusValues(m.Crystal), focusValues(m.Collimated)...)
	values = append(values, m.FSR, m.B, m.StabilityT, m.StabilityS)
	for _, v := range values {
		row = append(row, formatFloat(v))
	}
	return row
}

func focusValues(f cavity.Focus) []float64 {
	return []float64{f.WaistT, f.WaistS, f.ConfocalT, f.ConfocalS, f.XiT, f.XiS, f.Ellipticity}
}

func focusFrom(v []float64) cavity.Focus {
	return cavity.Focus{
		WaistT: v[0], WaistS: v[1], ConfocalT: v[2], ConfocalS: v[3],
		XiT: v[4], XiS: v[5], Ellipticity: v[6],
	}
}

func decodePoint(record []string) (cavity.Point, error) {
	if len(record) != len(sweepHeader) {
		return cavity.Point{}, fmt.Errorf("expected %d columns, got %d", len(sweepHeader), len(record))
	}

	value, err := strconv.ParseFloat(record[0], 64)
	if err != nil {
		return cavity.Point{}, err
	}
	pt := cavity.Point{Value: value}
	if record[1] != "" {
		pt.Err = errors.New(record[1])
		return pt, nil
	}

	vals := make([]float64, 0, len(record)-2)
	for _, field := range record[2:] {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return cavity.Point{}, err
		}
		vals = append(vals, v)
	}

	pt.Mode = cavity.Mode{
		Crystal:    focusFrom(vals[0:7]),
		Collimated: focusFrom(vals[7:14]),
		FSR:        vals[14],
		B:          vals[15],
		StabilityT: vals[16],
		StabilityS: vals[17],
	}
	return pt, nil
}

// List returns all stored runs, newest first.
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

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadSweep reads the points of a run back. Failed points carry their
// original message as a plain error.
func (s *Store) LoadSweep(runID string) ([]cavity.Point, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, sweepFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []cavity.Point{}, nil
	}

	points := make([]cavity.Point, 0, len(records)-1)
	for i, record := range records[1:] {
		pt, err := decodePoint(record)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", sweepFile, i+2, err)
		}
		points = append(points, pt)
	}
	return points, nil
}
