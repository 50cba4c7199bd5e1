package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/turbsim/internal/config"
	"github.com/san-kum/turbsim/internal/host"
)

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
	ID             string    `json:"id"`
	Timestamp      time.Time `json:"timestamp"`
	Dt             float64   `json:"dt"`
	Duration       float64   `json:"duration"`
	TurbineControl string    `json:"turbine_control"`
	Drivetrain     string    `json:"drivetrain"`
	FlowModel      string    `json:"flow_model"`
	Ticks          int       `json:"ticks"`
	FinalTorque    float64   `json:"final_torque"`
}

var seriesHeader = []string{"time", "rotor_speed", "plant_omega", "torque"}

func (s *Store) Save(cfg *config.Config, result *host.Result) (string, error) {
	if err := os.MkdirAll(s.baseDir, 0755); err != nil {
		return "", err
	}

	// Two runs in the same second must not share a directory; Mkdir is the
	// existence check.
	base := fmt.Sprintf("%s_%d", cfg.Stages.TurbineControl, time.Now().Unix())
	runID := base
	for n := 1; ; n++ {
		err := os.Mkdir(filepath.Join(s.baseDir, runID), 0755)
		if err == nil {
			break
		}
		if !os.IsExist(err) {
			return "", err
		}
		runID = fmt.Sprintf("%s_%d", base, n)
	}
	runDir := filepath.Join(s.baseDir, runID)

	meta := RunMetadata{
		ID:             runID,
		Timestamp:      time.Now(),
		Dt:             cfg.Sim.Dt,
		Duration:       cfg.Sim.Duration,
		TurbineControl: cfg.Stages.TurbineControl,
		Drivetrain:     cfg.Stages.Drivetrain,
		FlowModel:      cfg.Stages.FlowModel,
		Ticks:          result.Ticks,
	}
	if n := len(result.Torque); n > 0 {
		meta.FinalTorque = result.Torque[n-1]
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

	csvFile, err := os.Create(filepath.Join(runDir, "series.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write(seriesHeader); err != nil {
		return "", err
	}
	for i := range result.Times {
		row := []string{
			strconv.FormatFloat(result.Times[i], 'f', 6, 64),
			strconv.FormatFloat(result.RotorSpeed[i], 'f', 6, 64),
			strconv.FormatFloat(result.PlantOmega[i], 'f', 6, 64),
			strconv.FormatFloat(result.Torque[i], 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
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
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}
		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}
	return runs, nil
}

// LoadSeries reads a recorded run back as column slices keyed by header.
func (s *Store) LoadSeries(runID string) (map[string][]float64, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "series.csv"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("run %s has an empty series", runID)
	}

	header := records[0]
	series := make(map[string][]float64, len(header))
	for _, name := range header {
		series[name] = make([]float64, 0, len(records)-1)
	}
	for _, row := range records[1:] {
		for i, cell := range row {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("run %s: bad value %q: %w", runID, cell, err)
			}
			series[header[i]] = append(series[header[i]], v)
		}
	}
	return series, nil
}
