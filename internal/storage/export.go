package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/ballsim/internal/sim"
)

type ExportData struct {
	ID      string             `json:"id"`
	Scene   string             `json:"scene"`
	Seed    int64              `json:"seed"`
	FPS     int                `json:"fps"`
	Ticks   int                `json:"ticks"`
	Metrics map[string]float64 `json:"metrics"`
	Samples []ExportSample     `json:"samples"`
}

type ExportSample struct {
	Tick        int        `json:"tick"`
	Bodies      int        `json:"bodies"`
	Position    [2]float64 `json:"position"`
	Velocity    [2]float64 `json:"velocity"`
	Restitution float64    `json:"restitution"`
	Kinetic     float64    `json:"kinetic"`
	WallHits    int        `json:"wall_hits"`
	BodyHits    int        `json:"body_hits"`
}

func ExportJSON(out io.Writer, meta *RunMetadata, samples []sim.Sample) error {
	data := ExportData{
		ID:      meta.ID,
		Scene:   meta.Scene,
		Seed:    meta.Seed,
		FPS:     meta.FPS,
		Ticks:   meta.Ticks,
		Metrics: meta.Metrics,
		Samples: make([]ExportSample, len(samples)),
	}

	for i, s := range samples {
		data.Samples[i] = ExportSample{
			Tick:        s.Tick,
			Bodies:      s.Bodies,
			Position:    [2]float64{s.X, s.Y},
			Velocity:    [2]float64{s.VX, s.VY},
			Restitution: s.Restitution,
			Kinetic:     s.Kinetic,
			WallHits:    s.WallHits,
			BodyHits:    s.BodyHits,
		}
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
