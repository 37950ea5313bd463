// Package storage keeps a directory of finished runs: their metadata as JSON
// and the sampled primary trajectories as CSV.
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
	"strings"
	"time"

	"gonum.org/v1/gonum/spatial/r3"
)

var ErrCorruptTrace = errors.New("storage: corrupt trace")

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
	ID          string             `json:"id"`
	Label       string             `json:"label,omitempty"`
	Mode        string             `json:"mode"`
	Timestamp   time.Time          `json:"timestamp"`
	Seed        int64              `json:"seed"`
	TimeStep    float64            `json:"time_step"`
	Steps       int                `json:"steps"`
	FieldBodies int                `json:"field_bodies"`
	FinalDate   string             `json:"final_date"`
	Metrics     map[string]float64 `json:"metrics"`
}

// Save writes a new run directory and returns its ID. meta.ID and
// meta.Timestamp are filled in.
func (s *Store) Save(meta RunMetadata, trace *Trace) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", meta.Mode, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = now

	if err := writeJSON(filepath.Join(runDir, "metadata.json"), meta); err != nil {
		return "", err
	}
	if err := writeTrace(filepath.Join(runDir, "trace.csv"), trace); err != nil {
		return "", err
	}

	return runID, nil
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

func writeTrace(path string, trace *Trace) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)

	header := []string{"time"}
	for _, n := range trace.Names {
		header = append(header, n+"_x", n+"_y", n+"_z")
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for k, t := range trace.Times {
		row := []string{strconv.FormatFloat(t, 'g', -1, 64)}
		for _, p := range trace.Positions[k] {
			row = append(row,
				strconv.FormatFloat(p.X, 'g', -1, 64),
				strconv.FormatFloat(p.Y, 'g', -1, 64),
				strconv.FormatFloat(p.Z, 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// List returns all readable runs, oldest first.
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
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadTrace(runID string) (*Trace, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "trace.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 || (len(records[0])-1)%3 != 0 {
		return nil, ErrCorruptTrace
	}

	header := records[0]
	names := make([]string, 0, (len(header)-1)/3)
	for j := 1; j < len(header); j += 3 {
		n, ok := strings.CutSuffix(header[j], "_x")
		if !ok || n == "" {
			return nil, fmt.Errorf("%w: header column %q", ErrCorruptTrace, header[j])
		}
		names = append(names, n)
	}

	trace := NewTrace(names)
	for i, record := range records[1:] {
		vals := make([]float64, len(record))
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrCorruptTrace, i+2, err)
			}
			vals[j] = v
		}

		row := make([]r3.Vec, len(names))
		for b := range row {
			row[b] = r3.Vec{X: vals[1+3*b], Y: vals[2+3*b], Z: vals[3+3*b]}
		}
		trace.Times = append(trace.Times, vals[0])
		trace.Positions = append(trace.Positions, row)
	}

	return trace, nil
}
