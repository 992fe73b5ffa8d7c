package scene

// Complexity is a point-in-time summary of the scene cost signals the
// estimator multiplies together. It is recomputed on every estimate request
// rather than cached; the scene can mutate between calls.
type Complexity struct {
	Meshes   int
	Lights   int
	Volumes  int
	Vertices int64
	Width    float64
	Height   float64
	Pixels   float64
}

// Complexity walks the object list and resolution settings and produces a
// fresh snapshot. Hidden objects are skipped; only visible meshes contribute
// vertices.
func (s *Scene) Complexity() Complexity {
	var c Complexity
	for _, obj := range s.Objects {
		if !obj.Visible {
			continue
		}
		switch obj.Type {
		case ObjectMesh:
			c.Meshes++
			c.Vertices += obj.Vertices
		case ObjectLight:
			c.Lights++
		case ObjectVolume:
			c.Volumes++
		}
	}

	scale := float64(s.Resolution.Scale) / 100
	c.Width = float64(s.Resolution.Width) * scale
	c.Height = float64(s.Resolution.Height) * scale
	c.Pixels = c.Width * c.Height
	return c
}
