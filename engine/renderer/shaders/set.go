package shaders

import (
	"github.com/spaghettifunk/buddha/engine/renderer"
)

// Set holds one instance of every technique the scene draws with.
type Set struct {
	Diffuse                  *Diffuse
	LightmapTable            *LightmapTable
	SphericalMapLM           *SphericalMapLM
	LightShaft               *LightShaft
	PointSpriteScaledColored *PointSpriteScaledColored
}

// LoadAll compiles every technique. Programs created before a failure are
// destroyed again.
func LoadAll(backend renderer.RendererBackend) (*Set, error) {
	s := &Set{}
	var err error

	if s.SphericalMapLM, err = NewSphericalMapLM(backend); err != nil {
		return nil, err
	}
	if s.LightmapTable, err = NewLightmapTable(backend); err != nil {
		s.Destroy(backend)
		return nil, err
	}
	if s.Diffuse, err = NewDiffuse(backend); err != nil {
		s.Destroy(backend)
		return nil, err
	}
	if s.LightShaft, err = NewLightShaft(backend); err != nil {
		s.Destroy(backend)
		return nil, err
	}
	if s.PointSpriteScaledColored, err = NewPointSpriteScaledColored(backend); err != nil {
		s.Destroy(backend)
		return nil, err
	}
	return s, nil
}

func (s *Set) Destroy(backend renderer.RendererBackend) {
	for _, t := range s.techniques() {
		backend.DestroyProgram(t.Program())
	}
}

func (s *Set) techniques() []renderer.Technique {
	var out []renderer.Technique
	if s.SphericalMapLM != nil {
		out = append(out, s.SphericalMapLM)
	}
	if s.LightmapTable != nil {
		out = append(out, s.LightmapTable)
	}
	if s.Diffuse != nil {
		out = append(out, s.Diffuse)
	}
	if s.LightShaft != nil {
		out = append(out, s.LightShaft)
	}
	if s.PointSpriteScaledColored != nil {
		out = append(out, s.PointSpriteScaledColored)
	}
	return out
}
