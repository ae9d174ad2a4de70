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

	"github.com/san-kum/fdtdisp/internal/sweep"
)

const (
	metadataFile = "metadata.json"
	samplesFile  = "samples.csv"
)

// ErrRunNotFound is returned when a run id has no directory in the store.
var ErrRunNotFound = errors.New("run not found")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// SeriesMeta summarizes one stored series.
type SeriesMeta struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	Samples  int    `json:"samples"`
	Failures int    `json:"failures"`
}

type RunMetadata struct {
	ID         string       `json:"id"`
	Figure     string       `json:"figure"`
	Timestamp  time.Time    `json:"timestamp"`
	Courant    float64      `json:"courant"`
	ThetaDeg   float64      `json:"theta_deg"`
	Min        float64      `json:"min"`
	Max        float64      `json:"max"`
	Steps      int          `json:"steps"`
	Transition float64      `json:"transition_density"`
	Output     string       `json:"output,omitempty"`
	Series     []SeriesMeta `json:"series"`
}

// Series is a named curve of a figure.
type Series struct {
	Name     string
	Quantity sweep.Quantity
	Samples  []sweep.Sample
	Failures int
}

// FromResult names a sweep result as a stored series.
func FromResult(name string, res *sweep.Result) Series {
	return Series{
		Name:     name,
		Quantity: res.Quantity,
		Samples:  res.Samples,
		Failures: len(res.Failures),
	}
}

// Save writes meta and series under a fresh run directory and returns its id.
// ID, Timestamp and Series of meta are filled in by the store.
func (s *Store) Save(meta RunMetadata, series []Series) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", meta.Figure, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = now
	meta.Series = make([]SeriesMeta, len(series))
	for i, sr := range series {
		meta.Series[i] = SeriesMeta{
			Name:     sr.Name,
			Quantity: string(sr.Quantity),
			Samples:  len(sr.Samples),
			Failures: sr.Failures,
		}
	}

	if err := writeRun(runDir, meta, series); err != nil {
		os.RemoveAll(runDir)
		return "", err
	}
	return runID, nil
}

func writeRun(runDir string, meta RunMetadata, series []Series) error {
	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return err
	}
	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		metaFile.Close()
		return err
	}
	if err := metaFile.Close(); err != nil {
		return err
	}

	csvFile, err := os.Create(filepath.Join(runDir, samplesFile))
	if err != nil {
		return err
	}
	if err := WriteCSV(csvFile, series); err != nil {
		csvFile.Close()
		return err
	}
	return csvFile.Close()
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

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), metadataFile))
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}

	return &meta, nil
}

// LoadSamples reads the series of a run back in their stored order.
func (s *Store) LoadSamples(runID string) ([]Series, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filepath.Join(s.baseDir, runID, samplesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}

	series := make([]Series, 0, len(meta.Series))
	index := make(map[string]int)
	for _, sm := range meta.Series {
		index[sm.Name] = len(series)
		series = append(series, Series{
			Name:     sm.Name,
			Quantity: sweep.Quantity(sm.Quantity),
			Failures: sm.Failures,
		})
	}

	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) < 3 {
			return nil, fmt.Errorf("run %s line %d: want 3 fields, got %d", runID, i+1, len(record))
		}

		n, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, fmt.Errorf("run %s line %d: %w", runID, i+1, err)
		}
		v, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			return nil, fmt.Errorf("run %s line %d: %w", runID, i+1, err)
		}

		idx, ok := index[record[0]]
		if !ok {
			idx = len(series)
			index[record[0]] = idx
			series = append(series, Series{Name: record[0]})
		}
		series[idx].Samples = append(series[idx].Samples, sweep.Sample{N: n, Value: v})
	}

	return series, nil
}
