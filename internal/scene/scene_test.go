package scene_test

import (
	"os"
	"path/filepath"
	"testing"

	"renderest/internal/scene"
)

func TestComplexitySkipsHiddenObjects(t *testing.T) {
	sc := &scene.Scene{
		Resolution: scene.Resolution{Width: 1920, Height: 1080, Scale: 100},
		Objects: []scene.Object{
			{Type: scene.ObjectMesh, Visible: true, Vertices: 1000},
			{Type: scene.ObjectMesh, Visible: true, Vertices: 2500},
			{Type: scene.ObjectMesh, Visible: false, Vertices: 999999},
			{Type: scene.ObjectLight, Visible: true},
			{Type: scene.ObjectLight, Visible: false},
			{Type: scene.ObjectVolume, Visible: true},
		},
	}

	c := sc.Complexity()
	if c.Meshes != 2 || c.Lights != 1 || c.Volumes != 1 {
		t.Fatalf("counts = %d/%d/%d", c.Meshes, c.Lights, c.Volumes)
	}
	if c.Vertices != 3500 {
		t.Fatalf("vertices = %d, want 3500", c.Vertices)
	}
	if c.Pixels != 1920*1080 {
		t.Fatalf("pixels = %v", c.Pixels)
	}
}

func TestComplexityAppliesResolutionScale(t *testing.T) {
	sc := &scene.Scene{Resolution: scene.Resolution{Width: 1920, Height: 1080, Scale: 50}}
	c := sc.Complexity()
	if c.Width != 960 || c.Height != 540 {
		t.Fatalf("scaled resolution = %vx%v", c.Width, c.Height)
	}
	if c.Pixels != 960*540 {
		t.Fatalf("pixels = %v", c.Pixels)
	}
}

func TestFrameRangeCount(t *testing.T) {
	if got := (scene.FrameRange{Start: 1, End: 10}).Count(); got != 10 {
		t.Fatalf("Count = %d, want 10", got)
	}
	if got := (scene.FrameRange{Start: 5, End: 5}).Count(); got != 1 {
		t.Fatalf("Count = %d, want 1", got)
	}
	if got := (scene.FrameRange{Start: 10, End: 1}).Count(); got != 1 {
		t.Fatalf("inverted Count = %d, want 1", got)
	}
}

func TestParseNormalizes(t *testing.T) {
	doc := `{
		"name": "Shot 12",
		"engine": " PATH ",
		"resolution": {"width": 1280, "height": 720, "scale": 0},
		"frames": {"start": 10, "end": 4, "current": 1},
		"path": {"samples": 200, "adaptive_sampling": true, "noise_threshold": 0.01},
		"objects": [{"name": "cube", "type": "mesh", "visible": true, "vertices": 8}]
	}`
	sc, err := scene.Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if sc.Engine != scene.EnginePath {
		t.Fatalf("engine = %q", sc.Engine)
	}
	if sc.Resolution.Scale != 100 {
		t.Fatalf("scale defaulted to %d, want 100", sc.Resolution.Scale)
	}
	if sc.Frames.End != 10 {
		t.Fatalf("inverted range end = %d, want clamped to start", sc.Frames.End)
	}
	if sc.Frames.Current != 10 {
		t.Fatalf("current = %d, want clamped into range", sc.Frames.Current)
	}
	if sc.PathConfig().Samples != 200 {
		t.Fatalf("samples = %d", sc.PathConfig().Samples)
	}
}

func TestParseRejectsMalformedJSON(t *testing.T) {
	if _, err := scene.Parse([]byte("{not json")); err == nil {
		t.Fatal("expected error for malformed document")
	}
}

func TestSettingsFallBackToZeroValues(t *testing.T) {
	sc := &scene.Scene{Engine: scene.EngineRaster}
	if got := sc.PathConfig(); got != (scene.PathSettings{}) {
		t.Fatalf("PathConfig = %+v", got)
	}
	if got := sc.RasterConfig(); got != (scene.RasterSettings{}) {
		t.Fatalf("RasterConfig = %+v", got)
	}
}

func TestLoadDerivesTitleWhenNameMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "desert_flyover_v2.json")
	doc := `{"engine": "path", "resolution": {"width": 100, "height": 100, "scale": 100}, "frames": {"start": 1, "end": 1, "current": 1}}`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	sc, err := scene.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if sc.Name != "Desert Flyover V2" {
		t.Fatalf("derived name = %q", sc.Name)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := scene.Load(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestDeriveTitle(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"/renders/city-night_final.json", "City Night Final"},
		{"shot 07.json", "Shot 07"},
		{"___.json", "Untitled Scene"},
		{"", "Untitled Scene"},
	}
	for _, tc := range cases {
		if got := scene.DeriveTitle(tc.in); got != tc.want {
			t.Fatalf("DeriveTitle(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
