package scene

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Load reads and normalizes a scene document from path.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	sc, err := Parse(data)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(sc.Name) == "" {
		sc.Name = DeriveTitle(path)
	}
	return sc, nil
}

// Parse decodes a scene document and applies defaults.
func Parse(data []byte) (*Scene, error) {
	var sc Scene
	if err := json.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	sc.normalize()
	return &sc, nil
}

func (s *Scene) normalize() {
	if s.Resolution.Scale <= 0 {
		s.Resolution.Scale = 100
	}
	if s.Resolution.Width < 0 {
		s.Resolution.Width = 0
	}
	if s.Resolution.Height < 0 {
		s.Resolution.Height = 0
	}
	if s.Frames.End < s.Frames.Start {
		s.Frames.End = s.Frames.Start
	}
	if s.Frames.Current < s.Frames.Start {
		s.Frames.Current = s.Frames.Start
	}
	s.Engine = Engine(strings.ToLower(strings.TrimSpace(string(s.Engine))))
}

// DeriveTitle produces a human display title from a scene file path.
func DeriveTitle(sourcePath string) string {
	if sourcePath == "" {
		return "Untitled Scene"
	}
	base := filepath.Base(sourcePath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	cleaned := strings.Builder{}
	prevSpace := false
	for _, r := range base {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			cleaned.WriteRune(r)
			prevSpace = false
		case unicode.IsSpace(r) || r == '-' || r == '_' || r == '.':
			if !prevSpace {
				cleaned.WriteRune(' ')
				prevSpace = true
			}
		}
	}
	title := strings.TrimSpace(cleaned.String())
	if title == "" {
		return "Untitled Scene"
	}
	return cases.Title(language.Und).String(title)
}
