package scene

// Engine identifies the rendering backend a scene is configured for.
type Engine string

const (
	// EnginePath is the high-fidelity physically based path tracer.
	EnginePath Engine = "path"
	// EngineRaster is the fast real-time-oriented rasterizer.
	EngineRaster Engine = "raster"
)

// Known reports whether the engine tag maps to a cost model.
func (e Engine) Known() bool {
	return e == EnginePath || e == EngineRaster
}

// ObjectType tags entries in the scene object list.
type ObjectType string

const (
	ObjectMesh   ObjectType = "mesh"
	ObjectLight  ObjectType = "light"
	ObjectVolume ObjectType = "volume"
)

// Object is a single entry in the scene's object list.
type Object struct {
	Name     string     `json:"name"`
	Type     ObjectType `json:"type"`
	Visible  bool       `json:"visible"`
	Vertices int64      `json:"vertices,omitempty"`
}

// Resolution holds the configured output resolution. Scale is a percentage;
// the effective resolution is width*scale/100 by height*scale/100.
type Resolution struct {
	Width  int `json:"width"`
	Height int `json:"height"`
	Scale  int `json:"scale"`
}

// FrameRange is the inclusive animation frame range plus the frame the
// renderer is currently on.
type FrameRange struct {
	Start   int `json:"start"`
	End     int `json:"end"`
	Current int `json:"current"`
}

// Count returns the inclusive frame count, never below 1.
func (r FrameRange) Count() int {
	n := r.End - r.Start + 1
	if n < 1 {
		return 1
	}
	return n
}

// PathSettings carries the quality knobs the path-tracer cost model reads.
type PathSettings struct {
	Samples          int     `json:"samples"`
	AdaptiveSampling bool    `json:"adaptive_sampling"`
	NoiseThreshold   float64 `json:"noise_threshold"`
	FastGI           bool    `json:"fast_gi"`
	Denoise          bool    `json:"denoise"`
}

// RasterSettings carries the quality knobs the rasterizer cost model reads.
type RasterSettings struct {
	Samples                int  `json:"samples"`
	VolumetricLights       bool `json:"volumetric_lights"`
	ScreenSpaceReflections bool `json:"screen_space_reflections"`
	AmbientOcclusion       bool `json:"ambient_occlusion"`
}

// Scene is the read-only view of the host renderer's scene state that the
// estimator consumes. Exactly one of Path/Raster is meaningful, selected by
// Engine; the other is ignored.
type Scene struct {
	Name       string          `json:"name"`
	Engine     Engine          `json:"engine"`
	Resolution Resolution      `json:"resolution"`
	Frames     FrameRange      `json:"frames"`
	Path       *PathSettings   `json:"path,omitempty"`
	Raster     *RasterSettings `json:"raster,omitempty"`
	Objects    []Object        `json:"objects"`
}

// PathConfig returns the path-tracer settings, falling back to zero values
// when the document omitted them.
func (s *Scene) PathConfig() PathSettings {
	if s.Path == nil {
		return PathSettings{}
	}
	return *s.Path
}

// RasterConfig returns the rasterizer settings, falling back to zero values
// when the document omitted them.
func (s *Scene) RasterConfig() RasterSettings {
	if s.Raster == nil {
		return RasterSettings{}
	}
	return *s.Raster
}
