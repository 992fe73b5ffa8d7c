package estimate

import (
	"fmt"

	"renderest/internal/scene"
)

// BreakdownRow is one labeled entry in the estimation factor breakdown.
type BreakdownRow struct {
	Label string
	Value string
}

// Breakdown reports the inputs the cost model saw for sc, in display order.
func Breakdown(sc *scene.Scene) []BreakdownRow {
	c := sc.Complexity()
	rows := []BreakdownRow{
		{"engine", string(sc.Engine)},
		{"resolution", fmt.Sprintf("%dx%d", int(c.Width), int(c.Height))},
		{"pixels", fmt.Sprintf("%.2fM", c.Pixels/1e6)},
		{"meshes", fmt.Sprintf("%d", c.Meshes)},
		{"lights", fmt.Sprintf("%d", c.Lights)},
		{"volumes", fmt.Sprintf("%d", c.Volumes)},
		{"vertices", fmt.Sprintf("%.1fK", float64(c.Vertices)/1e3)},
	}

	switch sc.Engine {
	case scene.EnginePath:
		cfg := sc.PathConfig()
		rows = append(rows,
			BreakdownRow{"samples", fmt.Sprintf("%d", cfg.Samples)},
			BreakdownRow{"adaptive", fmt.Sprintf("%t", cfg.AdaptiveSampling)},
		)
		if cfg.AdaptiveSampling {
			rows = append(rows, BreakdownRow{"noise_threshold", fmt.Sprintf("%g", cfg.NoiseThreshold)})
		}
		rows = append(rows,
			BreakdownRow{"fast_gi", fmt.Sprintf("%t", cfg.FastGI)},
			BreakdownRow{"denoise", fmt.Sprintf("%t", cfg.Denoise)},
		)
	case scene.EngineRaster:
		cfg := sc.RasterConfig()
		rows = append(rows,
			BreakdownRow{"samples", fmt.Sprintf("%d", cfg.Samples)},
			BreakdownRow{"volumetrics", fmt.Sprintf("%t", cfg.VolumetricLights)},
			BreakdownRow{"ssr", fmt.Sprintf("%t", cfg.ScreenSpaceReflections)},
			BreakdownRow{"ao", fmt.Sprintf("%t", cfg.AmbientOcclusion)},
		)
	}
	return rows
}
