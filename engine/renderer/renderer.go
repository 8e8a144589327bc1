package renderer

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"github.com/spaghettifunk/buddha/engine/core"
	"github.com/spaghettifunk/buddha/engine/renderer/metadata"
)

// AttributeBinding ties a mesh attribute to the location a program reads it from.
type AttributeBinding struct {
	Attribute metadata.VertexAttribute
	Location  int32
}

// Technique is a program together with the vertex attributes it consumes.
type Technique interface {
	Program() Program
	Attributes() []AttributeBinding
}

type Renderer struct {
	backend RendererBackend
	width   uint32
	height  uint32
}

func New(backend RendererBackend) *Renderer {
	return &Renderer{
		backend: backend,
	}
}

func (r *Renderer) Initialize(appName string, appWidth, appHeight uint32) error {
	r.width, r.height = appWidth, appHeight
	if err := r.backend.Initialize(appName, appWidth, appHeight); err != nil {
		return errors.Wrap(err, "renderer backend failed to initialize")
	}
	return nil
}

func (r *Renderer) Shutdown() error {
	return r.backend.Shutdown()
}

func (r *Renderer) Backend() RendererBackend {
	return r.backend
}

func (r *Renderer) Size() (uint32, uint32) {
	return r.width, r.height
}

func (r *Renderer) OnResize(width, height uint32) error {
	r.width, r.height = width, height
	return r.backend.Resized(width, height)
}

func (r *Renderer) BeginFrame(clearColor mgl32.Vec4) error {
	return r.backend.BeginFrame(FrameState{
		Width:      r.width,
		Height:     r.height,
		ClearColor: clearColor,
	})
}

func (r *Renderer) EndFrame() error {
	if err := r.backend.EndFrame(); err != nil {
		core.LogError("RendererEndFrame failed: %s", err)
		return err
	}
	return nil
}

// Bind makes t current and points each of its attributes at mesh's vertex
// buffer, using the stride and offsets of the mesh layout.
func (r *Renderer) Bind(t Technique, mesh *metadata.Mesh) error {
	if mesh == nil {
		return errors.Wrap(core.ErrNotReady, "mesh is not loaded")
	}
	t.Program().Use()
	r.backend.BindMesh(mesh)

	stride := mesh.Layout.Stride()
	for _, b := range t.Attributes() {
		offset, ok := mesh.Layout.Offset(b.Attribute)
		if !ok {
			r.backend.DisableAttributes()
			return errors.Wrapf(core.ErrMissingAttribute, "%s needs %s from mesh %s", t.Program().Name(), b.Attribute, mesh.Name)
		}
		if b.Location < 0 {
			// optimized out by the shader compiler
			continue
		}
		r.backend.EnableAttribute(b.Location, b.Attribute.Components(), stride, offset)
	}
	return nil
}

// Draw issues the indexed draw for the mesh bound last.
func (r *Renderer) Draw(mesh *metadata.Mesh, primitive Primitive) {
	r.backend.DrawIndexed(primitive, mesh.IndexCount)
}

// Unbind disables the attributes enabled by Bind.
func (r *Renderer) Unbind() {
	r.backend.DisableAttributes()
}

func (r *Renderer) SetBlendMode(mode BlendMode) {
	r.backend.SetBlendMode(mode)
}

func (r *Renderer) SetDepthWrite(enabled bool) {
	r.backend.SetDepthWrite(enabled)
}

func (r *Renderer) BindTexture(unit uint32, texture *metadata.Texture, location int32) {
	r.backend.BindTexture(unit, texture, location)
}

func (r *Renderer) SetUniformMat4(location int32, value mgl32.Mat4) {
	r.backend.SetUniformMat4(location, value)
}

func (r *Renderer) SetUniformFloat(location int32, value float32) {
	r.backend.SetUniformFloat(location, value)
}

func (r *Renderer) SetUniformVec4(location int32, value mgl32.Vec4) {
	r.backend.SetUniformVec4(location, value)
}
