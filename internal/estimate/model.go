package estimate

import (
	"time"

	"renderest/internal/scene"
)

const (
	// Correction factors are normalized against a 1080p frame.
	baselinePixels = 1920.0 * 1080.0

	// Estimate floors per engine, in seconds.
	pathFloor   = 1.0
	rasterFloor = 0.5

	// Fixed estimate for engines without a cost model.
	unknownEngineSeconds = 5.0

	// The rasterizer is roughly an order of magnitude faster than the path
	// tracer at equal sample counts, so it reuses the shared calibration
	// factor scaled down.
	rasterCalibrationScale = 0.1
)

// SingleFrame estimates the duration of one frame of sc under the given
// calibration factor. Unrecognized engines yield a fixed constant.
func SingleFrame(sc *scene.Scene, calibration float64) float64 {
	complexity := sc.Complexity()
	switch sc.Engine {
	case scene.EnginePath:
		return pathFrame(sc.PathConfig(), complexity, calibration)
	case scene.EngineRaster:
		return rasterFrame(sc.RasterConfig(), complexity, calibration)
	default:
		return unknownEngineSeconds
	}
}

// Animation estimates the full frame range: the single-frame estimate times
// the inclusive frame count.
func Animation(sc *scene.Scene, calibration float64) float64 {
	return SingleFrame(sc, calibration) * float64(sc.Frames.Count())
}

// SingleFrameDuration is SingleFrame converted to a time.Duration.
func SingleFrameDuration(sc *scene.Scene, calibration float64) time.Duration {
	return time.Duration(SingleFrame(sc, calibration) * float64(time.Second))
}

// AnimationDuration is Animation converted to a time.Duration.
func AnimationDuration(sc *scene.Scene, calibration float64) time.Duration {
	return time.Duration(Animation(sc, calibration) * float64(time.Second))
}

func pathFrame(cfg scene.PathSettings, c scene.Complexity, calibration float64) float64 {
	effectiveSamples := float64(cfg.Samples)
	if cfg.AdaptiveSampling {
		// Typical scenes converge at 50-100% of the sample budget with
		// adaptive sampling; lower noise thresholds need more samples.
		adaptiveFactor := 0.5 + cfg.NoiseThreshold*5
		effectiveSamples *= adaptiveFactor
	}

	fastGIFactor := 1.0
	if cfg.FastGI {
		fastGIFactor = 0.7
	}
	denoiseFactor := 1.0
	if cfg.Denoise {
		// Denoising adds a little overhead but converges with fewer samples.
		denoiseFactor = 0.9
	}

	resolutionFactor := c.Pixels / baselinePixels
	// More objects and vertices mean more ray intersections.
	objectFactor := 1.0 + float64(c.Meshes)*0.01 + float64(c.Vertices)/1e6
	// More lights mean more shadow rays.
	lightFactor := 1.0 + float64(c.Lights)*0.05
	// Volumes are expensive.
	volumeFactor := 1.0 + float64(c.Volumes)*0.3

	estimated := (effectiveSamples / 100) *
		resolutionFactor *
		objectFactor *
		lightFactor *
		volumeFactor *
		fastGIFactor *
		denoiseFactor *
		calibration

	return max(pathFloor, estimated)
}

func rasterFrame(cfg scene.RasterSettings, c scene.Complexity, calibration float64) float64 {
	resolutionFactor := c.Pixels / baselinePixels
	// The rasterizer is far less sensitive to geometry than the path tracer.
	objectFactor := 1.0 + float64(c.Meshes)*0.005
	lightFactor := 1.0 + float64(c.Lights)*0.02

	volumetricsFactor := 1.0
	if cfg.VolumetricLights {
		volumetricsFactor = 1.3
	}
	ssrFactor := 1.0
	if cfg.ScreenSpaceReflections {
		ssrFactor = 1.15
	}
	aoFactor := 1.0
	if cfg.AmbientOcclusion {
		aoFactor = 1.05
	}

	estimated := (float64(cfg.Samples) / 64) *
		resolutionFactor *
		objectFactor *
		lightFactor *
		volumetricsFactor *
		ssrFactor *
		aoFactor *
		calibration * rasterCalibrationScale

	return max(rasterFloor, estimated)
}
