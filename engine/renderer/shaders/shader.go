package shaders

import (
	"embed"

	"github.com/pkg/errors"

	"github.com/spaghettifunk/buddha/engine/core"
	"github.com/spaghettifunk/buddha/engine/renderer"
	"github.com/spaghettifunk/buddha/engine/renderer/metadata"
)

//go:embed glsl/*.vert glsl/*.frag
var sources embed.FS

// Technique names, also the base names of the GLSL files.
const (
	DiffuseName                  = "diffuse"
	LightmapTableName            = "lm_table"
	SphericalMapLMName           = "spherical_map_lm"
	LightShaftName               = "light_shaft"
	PointSpriteScaledColoredName = "point_sprite_scaled_colored"
)

// Source returns the embedded vertex and fragment source of a technique.
func Source(name string) (string, string, error) {
	vs, err := sources.ReadFile("glsl/" + name + ".vert")
	if err != nil {
		return "", "", errors.Wrapf(core.ErrShaderCompile, "no vertex shader for %s", name)
	}
	fs, err := sources.ReadFile("glsl/" + name + ".frag")
	if err != nil {
		return "", "", errors.Wrapf(core.ErrShaderCompile, "no fragment shader for %s", name)
	}
	return string(vs), string(fs), nil
}

type base struct {
	program    renderer.Program
	attributes []renderer.AttributeBinding
}

func newBase(backend renderer.RendererBackend, name string) (base, error) {
	vs, fs, err := Source(name)
	if err != nil {
		return base{}, err
	}
	program, err := backend.CreateProgram(name, vs, fs)
	if err != nil {
		return base{}, errors.Wrapf(err, "failed to create %s program", name)
	}
	core.LogDebug("shader program %s created", name)
	return base{program: program}, nil
}

func (b *base) Program() renderer.Program {
	return b.program
}

func (b *base) Attributes() []renderer.AttributeBinding {
	return b.attributes
}

func (b *base) attribute(attr metadata.VertexAttribute, name string) {
	b.attributes = append(b.attributes, renderer.AttributeBinding{
		Attribute: attr,
		Location:  b.program.AttribLocation(name),
	})
}

func (b *base) uniform(name string) int32 {
	return b.program.UniformLocation(name)
}
