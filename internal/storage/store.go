package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/san-kum/crrsim/internal/curve"
	"github.com/san-kum/crrsim/internal/optim"
	"github.com/san-kum/crrsim/internal/params"
	"github.com/san-kum/crrsim/internal/sim"
)

var ErrRunNotFound = errors.New("run not found")

const (
	metadataFile   = "metadata.json"
	curveFile      = "curve.csv"
	comparisonFile = "comparison.csv"
)

type Store struct {
	baseDir string
	logger  *slog.Logger
}

func New(baseDir string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{baseDir: baseDir, logger: logger}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string { return s.baseDir }

type RunMetadata struct {
	ID         string              `json:"id"`
	Name       string              `json:"name,omitempty"`
	Timestamp  time.Time           `json:"timestamp"`
	Params     params.ParameterSet `json:"params"`
	ASource    string              `json:"aSource"`
	Components curve.Components    `json:"components"`
	Variants   []curve.Variant     `json:"variants"`
	RefCrr     float64             `json:"refCrr"`
	RefWatts   float64             `json:"refWatts"`
	Optimum    *optim.Optimum      `json:"optimum,omitempty"`
}

// Save writes a committed result under a fresh run id.
func (s *Store) Save(name string, result sim.Result) (string, error) {
	runID := uuid.NewString()
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", fmt.Errorf("create run dir: %w", err)
	}

	meta := RunMetadata{
		ID:         runID,
		Name:       name,
		Timestamp:  time.Now().UTC(),
		Params:     result.Params,
		ASource:    result.ASource(),
		Components: result.Components,
		Variants:   result.Comparison.Variants,
		RefCrr:     result.RefCrr,
		RefWatts:   result.RefWatts,
	}
	if best, ok := optim.FromCurve(result.Curve); ok {
		meta.Optimum = &best
	}

	if err := writeRun(runDir, meta, result); err != nil {
		if rmErr := os.RemoveAll(runDir); rmErr != nil {
			s.logger.Warn("remove partial run", "dir", runDir, "err", rmErr)
		}
		return "", fmt.Errorf("save run %s: %w", runID, err)
	}

	s.logger.Info("saved run", "id", runID, "name", name, "dir", runDir)
	return runID, nil
}

func writeRun(runDir string, meta RunMetadata, result sim.Result) error {
	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return err
	}
	if err := writeRows(filepath.Join(runDir, curveFile), result.Curve); err != nil {
		return err
	}
	return writeRows(filepath.Join(runDir, comparisonFile), result.Comparison.Rows)
}

func writeJSON(path string, v any) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer closeFile(f, &err)

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// closeFile reports a close error unless an earlier one is already set.
func closeFile(f *os.File, err *error) {
	if cerr := f.Close(); *err == nil {
		*err = cerr
	}
}

func writeRows(path string, rows []curve.Row) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer closeFile(f, &err)

	w := csv.NewWriter(f)
	if len(rows) > 0 {
		keys := rows[0].Keys()
		header := append([]string{curve.KeyPressure}, keys...)
		if err := w.Write(header); err != nil {
			return err
		}
		for _, r := range rows {
			record := make([]string, 0, len(header))
			record = append(record, strconv.FormatFloat(r.P, 'f', -1, 64))
			for _, k := range keys {
				record = append(record, strconv.FormatFloat(r.Values[k], 'f', -1, 64))
			}
			if err := w.Write(record); err != nil {
				return err
			}
		}
	}
	w.Flush()
	return w.Error()
}

// List returns every readable run, oldest first.
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
			s.logger.Debug("skipping run dir", "dir", entry.Name(), "err", err)
			continue
		}

		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	if err := checkID(runID); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path(runID, metadataFile))
	if err != nil {
		return nil, notFound(runID, err)
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("decode run %s: %w", runID, err)
	}

	return &meta, nil
}

func (s *Store) LoadCurve(runID string) ([]curve.Row, error) {
	if err := checkID(runID); err != nil {
		return nil, err
	}
	return readRows(s.path(runID, curveFile), runID)
}

func (s *Store) LoadComparison(runID string) ([]curve.Row, error) {
	if err := checkID(runID); err != nil {
		return nil, err
	}
	return readRows(s.path(runID, comparisonFile), runID)
}

// Delete removes a run directory.
func (s *Store) Delete(runID string) error {
	if _, err := s.Load(runID); err != nil {
		return err
	}
	return os.RemoveAll(filepath.Join(s.baseDir, runID))
}

func (s *Store) path(runID, name string) string {
	return filepath.Join(s.baseDir, runID, name)
}

// checkID rejects anything that is not a run id, so ids from the CLI or the
// HTTP API never resolve outside the store.
func checkID(runID string) error {
	if _, err := uuid.Parse(runID); err != nil {
		return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return nil
}

func notFound(runID string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return err
}

func readRows(path, runID string) ([]curve.Row, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, notFound(runID, err)
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if len(records) < 2 {
		return []curve.Row{}, nil
	}

	header := records[0]
	rows := make([]curve.Row, 0, len(records)-1)
	for _, record := range records[1:] {
		p, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, fmt.Errorf("%s: bad pressure %q", path, record[0])
		}
		values := make(map[string]float64, len(header)-1)
		for j := 1; j < len(record); j++ {
			v, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				return nil, fmt.Errorf("%s: bad %s value %q", path, header[j], record[j])
			}
			values[header[j]] = v
		}
		rows = append(rows, curve.Row{P: p, Values: values})
	}

	return rows, nil
}
