package shaders

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/buddha/engine/renderer"
	"github.com/spaghettifunk/buddha/engine/renderer/metadata"
)

// Diffuse draws a single unlit color map.
type Diffuse struct {
	base
	viewProjMatrix int32
	sTexture       int32
}

func NewDiffuse(backend renderer.RendererBackend) (*Diffuse, error) {
	b, err := newBase(backend, DiffuseName)
	if err != nil {
		return nil, err
	}
	s := &Diffuse{base: b}
	s.attribute(metadata.AttributePosition, "rm_Vertex")
	s.attribute(metadata.AttributeTexCoord0, "rm_TexCoord0")
	s.viewProjMatrix = s.uniform("view_proj_matrix")
	s.sTexture = s.uniform("sTexture")
	return s, nil
}

func (s *Diffuse) Draw(r *renderer.Renderer, mesh *metadata.Mesh, mvp mgl32.Mat4, diffuse *metadata.Texture) error {
	if err := r.Bind(s, mesh); err != nil {
		return err
	}
	r.BindTexture(0, diffuse, s.sTexture)
	r.SetUniformMat4(s.viewProjMatrix, mvp)
	r.Draw(mesh, renderer.PrimitiveTriangles)
	r.Unbind()
	return nil
}

// LightmapTable modulates a tiled color map by a lightmap on the second UV set.
type LightmapTable struct {
	base
	viewProjMatrix int32
	sTexture       int32
	sLM            int32
	diffuseScale   int32
}

func NewLightmapTable(backend renderer.RendererBackend) (*LightmapTable, error) {
	b, err := newBase(backend, LightmapTableName)
	if err != nil {
		return nil, err
	}
	s := &LightmapTable{base: b}
	s.attribute(metadata.AttributePosition, "rm_Vertex")
	s.attribute(metadata.AttributeTexCoord0, "rm_TexCoord0")
	s.attribute(metadata.AttributeTexCoord1, "rm_TexCoord1")
	s.viewProjMatrix = s.uniform("view_proj_matrix")
	s.sTexture = s.uniform("sTexture")
	s.sLM = s.uniform("sLM")
	s.diffuseScale = s.uniform("diffuseScale")
	return s, nil
}

func (s *LightmapTable) Draw(r *renderer.Renderer, mesh *metadata.Mesh, mvp mgl32.Mat4, diffuse, lightmap *metadata.Texture, diffuseScale float32) error {
	if err := r.Bind(s, mesh); err != nil {
		return err
	}
	r.BindTexture(0, diffuse, s.sTexture)
	r.BindTexture(1, lightmap, s.sLM)
	r.SetUniformFloat(s.diffuseScale, diffuseScale)
	r.SetUniformMat4(s.viewProjMatrix, mvp)
	r.Draw(mesh, renderer.PrimitiveTriangles)
	r.Unbind()
	return nil
}

// SphericalMapLM reflects a sphere map off normal-mapped geometry and darkens
// it with baked ambient occlusion.
type SphericalMapLM struct {
	base
	viewProjMatrix int32
	viewMatrix     int32
	normalMap      int32
	sphereMap      int32
	aoMap          int32
}

func NewSphericalMapLM(backend renderer.RendererBackend) (*SphericalMapLM, error) {
	b, err := newBase(backend, SphericalMapLMName)
	if err != nil {
		return nil, err
	}
	s := &SphericalMapLM{base: b}
	s.attribute(metadata.AttributePosition, "rm_Vertex")
	s.attribute(metadata.AttributeTexCoord0, "rm_TexCoord0")
	s.attribute(metadata.AttributeTexCoord1, "rm_TexCoord1")
	s.attribute(metadata.AttributeNormal, "rm_Normal")
	s.viewProjMatrix = s.uniform("view_proj_matrix")
	s.viewMatrix = s.uniform("view_matrix")
	s.normalMap = s.uniform("normalMap")
	s.sphereMap = s.uniform("sphereMap")
	s.aoMap = s.uniform("aoMap")
	return s, nil
}

func (s *SphericalMapLM) Draw(r *renderer.Renderer, mesh *metadata.Mesh, mvp, view mgl32.Mat4, normal, sphere, ao *metadata.Texture) error {
	if err := r.Bind(s, mesh); err != nil {
		return err
	}
	r.BindTexture(0, normal, s.normalMap)
	r.BindTexture(1, sphere, s.sphereMap)
	r.BindTexture(2, ao, s.aoMap)
	r.SetUniformMat4(s.viewMatrix, view)
	r.SetUniformMat4(s.viewProjMatrix, mvp)
	r.Draw(mesh, renderer.PrimitiveTriangles)
	r.Unbind()
	return nil
}

// LightShaft draws translucent volumetric shafts that fade when seen edge-on.
type LightShaft struct {
	base
	viewProjMatrix int32
	viewMatrix     int32
	diffuseMap     int32
}

func NewLightShaft(backend renderer.RendererBackend) (*LightShaft, error) {
	b, err := newBase(backend, LightShaftName)
	if err != nil {
		return nil, err
	}
	s := &LightShaft{base: b}
	s.attribute(metadata.AttributePosition, "rm_Vertex")
	s.attribute(metadata.AttributeTexCoord0, "rm_TexCoord0")
	s.attribute(metadata.AttributeNormal, "rm_Normal")
	s.viewProjMatrix = s.uniform("view_proj_matrix")
	s.viewMatrix = s.uniform("view_matrix")
	s.diffuseMap = s.uniform("diffuseMap")
	return s, nil
}

func (s *LightShaft) Draw(r *renderer.Renderer, mesh *metadata.Mesh, mvp, view mgl32.Mat4, diffuse *metadata.Texture) error {
	if err := r.Bind(s, mesh); err != nil {
		return err
	}
	r.BindTexture(0, diffuse, s.diffuseMap)
	r.SetUniformMat4(s.viewMatrix, view)
	r.SetUniformMat4(s.viewProjMatrix, mvp)
	r.Draw(mesh, renderer.PrimitiveTriangles)
	r.Unbind()
	return nil
}

// PointSpriteScaledColored renders every vertex of a mesh as a tinted sprite
// whose size shrinks with distance. One Begin, any number of DrawInstance
// calls, then End.
type PointSpriteScaledColored struct {
	base
	uMvp       int32
	uThickness int32
	color      int32
	tex0       int32
}

func NewPointSpriteScaledColored(backend renderer.RendererBackend) (*PointSpriteScaledColored, error) {
	b, err := newBase(backend, PointSpriteScaledColoredName)
	if err != nil {
		return nil, err
	}
	s := &PointSpriteScaledColored{base: b}
	s.attribute(metadata.AttributePosition, "aPosition")
	s.uMvp = s.uniform("uMvp")
	s.uThickness = s.uniform("uThickness")
	s.color = s.uniform("color")
	s.tex0 = s.uniform("tex0")
	return s, nil
}

func (s *PointSpriteScaledColored) Begin(r *renderer.Renderer, mesh *metadata.Mesh, sprite *metadata.Texture, thickness float32, color mgl32.Vec4) error {
	if err := r.Bind(s, mesh); err != nil {
		return err
	}
	r.BindTexture(0, sprite, s.tex0)
	r.SetUniformFloat(s.uThickness, thickness)
	r.SetUniformVec4(s.color, color)
	return nil
}

func (s *PointSpriteScaledColored) SetColor(r *renderer.Renderer, color mgl32.Vec4) {
	r.SetUniformVec4(s.color, color)
}

func (s *PointSpriteScaledColored) DrawInstance(r *renderer.Renderer, mesh *metadata.Mesh, mvp mgl32.Mat4) {
	r.SetUniformMat4(s.uMvp, mvp)
	r.Draw(mesh, renderer.PrimitivePoints)
}

func (s *PointSpriteScaledColored) End(r *renderer.Renderer) {
	r.Unbind()
}
