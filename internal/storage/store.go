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

	"github.com/san-kum/ballsim/internal/sim"
)

const (
	metadataFile = "metadata.json"
	samplesFile  = "samples.csv"
)

var ErrRunNotFound = errors.New("storage: run not found")

var sampleHeader = []string{"tick", "bodies", "x", "y", "vx", "vy", "restitution", "kinetic", "wall_hits", "body_hits"}

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
	ID        string             `json:"id"`
	Scene     string             `json:"scene"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Ticks     int                `json:"ticks"`
	FPS       int                `json:"fps"`
	Width     float64            `json:"width"`
	Height    float64            `json:"height"`
	Bodies    int                `json:"bodies"`
	Spawned   int                `json:"spawned"`
	Quit      bool               `json:"quit"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes a run directory holding metadata.json and samples.csv. The ID,
// timestamp and run totals are filled in from the result.
func (s *Store) Save(meta RunMetadata, result *sim.Result) (string, error) {
	now := time.Now()
	meta.ID = fmt.Sprintf("%s_%d", meta.Scene, now.UnixNano())
	meta.Timestamp = now
	meta.Ticks = result.Ticks
	meta.Bodies = result.Bodies
	meta.Spawned = result.Spawned
	meta.Quit = result.Quit
	meta.Metrics = result.Metrics

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
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

	csvFile, err := os.Create(filepath.Join(runDir, samplesFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := WriteSamplesCSV(csvFile, result.Samples); err != nil {
		return "", err
	}

	return meta.ID, nil
}

// WriteSamplesCSV writes samples with a header row.
func WriteSamplesCSV(out io.Writer, samples []sim.Sample) error {
	w := csv.NewWriter(out)
	if err := w.Write(sampleHeader); err != nil {
		return err
	}
	for _, smp := range samples {
		row := []string{
			strconv.Itoa(smp.Tick),
			strconv.Itoa(smp.Bodies),
			formatFloat(smp.X),
			formatFloat(smp.Y),
			formatFloat(smp.VX),
			formatFloat(smp.VY),
			formatFloat(smp.Restitution),
			formatFloat(smp.Kinetic),
			strconv.Itoa(smp.WallHits),
			strconv.Itoa(smp.BodyHits),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

// List returns every readable run, oldest first, so the newest run is last
// in the table. Runs saved within the same clock tick keep directory order.
// Directories without valid metadata are skipped.
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

	sort.SliceStable(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("decode %s: %w", runID, err)
	}

	return &meta, nil
}

func (s *Store) LoadSamples(runID string) ([]sim.Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, samplesFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return []sim.Sample{}, nil
	}

	col := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		col[name] = i
	}
	num := func(rec []string, name string) float64 {
		i, ok := col[name]
		if !ok || i >= len(rec) {
			return 0
		}
		v, err := strconv.ParseFloat(rec[i], 64)
		if err != nil {
			return 0
		}
		return v
	}

	samples := make([]sim.Sample, 0, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec) == 0 {
			continue
		}
		samples = append(samples, sim.Sample{
			Tick:        int(num(rec, "tick")),
			Bodies:      int(num(rec, "bodies")),
			X:           num(rec, "x"),
			Y:           num(rec, "y"),
			VX:          num(rec, "vx"),
			VY:          num(rec, "vy"),
			Restitution: num(rec, "restitution"),
			Kinetic:     num(rec, "kinetic"),
			WallHits:    int(num(rec, "wall_hits")),
			BodyHits:    int(num(rec, "body_hits")),
		})
	}

	return samples, nil
}
