package opengl

import (
	"unsafe"

	"github.com/go-gl/gl/v4.3-core/gl"
	"github.com/pkg/errors"

	"github.com/spaghettifunk/buddha/engine/core"
	"github.com/spaghettifunk/buddha/engine/renderer"
)

// OpenGLRenderer implements renderer.RendererBackend on a GL 4.3 core context.
// The context must be current on the calling thread before Initialize.
type OpenGLRenderer struct {
	FrameNumber uint64

	vao               uint32
	enabled           []uint32
	etc2              bool
	framebufferWidth  uint32
	framebufferHeight uint32

	debug bool
}

var _ renderer.RendererBackend = (*OpenGLRenderer)(nil)

func New(debug bool) *OpenGLRenderer {
	return &OpenGLRenderer{
		debug: debug,
	}
}

func (r *OpenGLRenderer) Initialize(appName string, appWidth, appHeight uint32) error {
	if err := gl.Init(); err != nil {
		return errors.Wrap(err, "failed to initialize OpenGL")
	}
	core.LogInfo("OpenGL %s on %s", gl.GoStr(gl.GetString(gl.VERSION)), gl.GoStr(gl.GetString(gl.RENDERER)))

	if r.debug {
		gl.Enable(gl.DEBUG_OUTPUT_SYNCHRONOUS)
		gl.Enable(gl.DEBUG_OUTPUT)
		gl.DebugMessageCallback(debugCallback, nil)
	}

	r.framebufferWidth, r.framebufferHeight = appWidth, appHeight

	// core profile refuses attribute pointers without a bound VAO
	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	gl.Enable(gl.PROGRAM_POINT_SIZE)
	r.etc2 = hasCompressedFormat(gl.COMPRESSED_RGB8_ETC2)
	core.LogDebug("ETC1 textures supported: %t", r.etc2)

	core.LogInfo("%s: OpenGL renderer initialized successfully", appName)
	return nil
}

func (r *OpenGLRenderer) Shutdown() error {
	if r.vao != 0 {
		gl.BindVertexArray(0)
		gl.DeleteVertexArrays(1, &r.vao)
		r.vao = 0
	}
	return nil
}

func (r *OpenGLRenderer) Resized(width, height uint32) error {
	r.framebufferWidth, r.framebufferHeight = width, height
	return nil
}

func (r *OpenGLRenderer) BeginFrame(state renderer.FrameState) error {
	gl.Viewport(0, 0, int32(state.Width), int32(state.Height))
	c := state.ClearColor
	gl.ClearColor(c[0], c[1], c[2], c[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	return nil
}

func (r *OpenGLRenderer) EndFrame() error {
	r.FrameNumber++
	if code := gl.GetError(); code != gl.NO_ERROR {
		return errors.Errorf("OpenGL error 0x%x in frame %d", code, r.FrameNumber)
	}
	return nil
}

func (r *OpenGLRenderer) SupportsCompressedTextures() bool {
	return r.etc2
}

func (r *OpenGLRenderer) SetBlendMode(mode renderer.BlendMode) {
	switch mode {
	case renderer.BlendAlpha:
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	case renderer.BlendAdditive:
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.ONE, gl.ONE)
	default:
		gl.Disable(gl.BLEND)
	}
}

func (r *OpenGLRenderer) SetDepthWrite(enabled bool) {
	gl.DepthMask(enabled)
}

func hasCompressedFormat(format uint32) bool {
	var count int32
	gl.GetIntegerv(gl.NUM_COMPRESSED_TEXTURE_FORMATS, &count)
	if count <= 0 {
		return false
	}
	formats := make([]int32, count)
	gl.GetIntegerv(gl.COMPRESSED_TEXTURE_FORMATS, &formats[0])
	for _, f := range formats {
		if uint32(f) == format {
			return true
		}
	}
	return false
}

func debugCallback(source uint32, gltype uint32, id uint32, severity uint32, length int32, message string, userParam unsafe.Pointer) {
	switch severity {
	case gl.DEBUG_SEVERITY_HIGH:
		core.LogError("[gl] id:%d type:0x%x %s", id, gltype, message)
	case gl.DEBUG_SEVERITY_MEDIUM:
		core.LogWarn("[gl] id:%d type:0x%x %s", id, gltype, message)
	default:
		core.LogDebug("[gl] id:%d type:0x%x %s", id, gltype, message)
	}
}
