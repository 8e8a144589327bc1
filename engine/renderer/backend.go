package renderer

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/buddha/engine/renderer/metadata"
)

type BlendMode uint8

const (
	BlendNone BlendMode = iota
	// SRC_ALPHA, ONE_MINUS_SRC_ALPHA
	BlendAlpha
	// ONE, ONE
	BlendAdditive
)

func (m BlendMode) String() string {
	switch m {
	case BlendNone:
		return "none"
	case BlendAlpha:
		return "alpha"
	case BlendAdditive:
		return "additive"
	default:
		return "unknown"
	}
}

type Primitive uint8

const (
	PrimitiveTriangles Primitive = iota
	PrimitivePoints
)

func (p Primitive) String() string {
	if p == PrimitivePoints {
		return "points"
	}
	return "triangles"
}

// FrameState is what a frame starts from: viewport size and clear color.
type FrameState struct {
	Width      uint32
	Height     uint32
	ClearColor mgl32.Vec4
}

// Program is a linked GPU program. Locations are -1 for names the program
// does not use, mirroring GL.
type Program interface {
	Name() string
	Use()
	AttribLocation(name string) int32
	UniformLocation(name string) int32
}

// RendererBackend is the set of GPU capabilities the scene relies on. All
// methods must be called from the thread owning the graphics context.
type RendererBackend interface {
	Initialize(appName string, appWidth, appHeight uint32) error
	Shutdown() error
	Resized(width, height uint32) error
	// BeginFrame sets the viewport, clears color and depth, and enables depth
	// testing with back-face culling.
	BeginFrame(state FrameState) error
	EndFrame() error

	SupportsCompressedTextures() bool

	CreateMesh(mesh *metadata.Mesh, vertices []float32, indices []uint16) error
	DestroyMesh(mesh *metadata.Mesh)
	// CreateTexture uploads RGBA8 pixels or ETC1 blocks depending on texture.Format.
	CreateTexture(texture *metadata.Texture, data []uint8) error
	DestroyTexture(texture *metadata.Texture)
	CreateProgram(name, vertexSource, fragmentSource string) (Program, error)
	DestroyProgram(program Program)

	BindMesh(mesh *metadata.Mesh)
	EnableAttribute(location, components, stride, offset int32)
	DisableAttributes()
	SetBlendMode(mode BlendMode)
	SetDepthWrite(enabled bool)
	BindTexture(unit uint32, texture *metadata.Texture, location int32)
	SetUniformMat4(location int32, value mgl32.Mat4)
	SetUniformFloat(location int32, value float32)
	SetUniformVec4(location int32, value mgl32.Vec4)
	DrawIndexed(primitive Primitive, indexCount int32)
}
