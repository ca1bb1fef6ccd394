package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/stardyn/internal/dynamo"
)

// Store persists computed trajectories as run directories under a base
// dir: metadata.json for the summary, trajectories.csv for the arrays.
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
	ID          string    `json:"id"`
	Label       string    `json:"label"`
	Method      string    `json:"method"`
	LTTE        bool      `json:"ltte"`
	Timestamp   time.Time `json:"timestamp"`
	Stars       []string  `json:"stars"`
	Samples     int       `json:"samples"`
	EnergyDrift float64   `json:"energy_drift,omitempty"`
}

// Save writes one run and returns its ID. Values are written with full
// float precision so reloaded runs stay comparable across methods.
func (s *Store) Save(label, method string, ltteOn bool, res *dynamo.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", label, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:          runID,
		Label:       label,
		Method:      method,
		LTTE:        ltteOn,
		Timestamp:   time.Now(),
		Stars:       res.Names,
		Samples:     len(res.Times),
		EnergyDrift: res.EnergyDrift,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "trajectories.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	header := []string{"time"}
	for _, name := range res.Names {
		for _, q := range []string{"t", "u", "v", "w", "vu", "vv", "vw"} {
			header = append(header, name+"_"+q)
		}
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for ti := range res.Times {
		row := []string{format(res.Times[ti])}
		for ci := range res.Names {
			row = append(row,
				format(res.BodyTimes[ci][ti]),
				format(res.U[ci][ti]), format(res.V[ci][ti]), format(res.W[ci][ti]),
				format(res.VU[ci][ti]), format(res.VV[ci][ti]), format(res.VW[ci][ti]))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func format(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

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

// LoadResult reconstructs the trajectory arrays of a saved run.
func (s *Store) LoadResult(runID string) (*dynamo.Result, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "trajectories.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("run %s: empty trajectory file", runID)
	}

	header := records[0]
	names := make([]string, 0)
	for i := 1; i < len(header); i += 7 {
		names = append(names, strings.TrimSuffix(header[i], "_t"))
	}

	times := make([]float64, 0, len(records)-1)
	for _, rec := range records[1:] {
		t, err := strconv.ParseFloat(rec[0], 64)
		if err != nil {
			return nil, fmt.Errorf("run %s: %w", runID, err)
		}
		times = append(times, t)
	}

	res := dynamo.NewResult(names, times)
	for ri, rec := range records[1:] {
		for ci := range names {
			base := 1 + ci*7
			vals := make([]float64, 7)
			for k := 0; k < 7; k++ {
				v, err := strconv.ParseFloat(rec[base+k], 64)
				if err != nil {
					return nil, fmt.Errorf("run %s: %w", runID, err)
				}
				vals[k] = v
			}
			res.BodyTimes[ci][ri] = vals[0]
			res.U[ci][ri] = vals[1]
			res.V[ci][ri] = vals[2]
			res.W[ci][ri] = vals[3]
			res.VU[ci][ri] = vals[4]
			res.VV[ci][ri] = vals[5]
			res.VW[ci][ri] = vals[6]
		}
	}
	return res, nil
}
