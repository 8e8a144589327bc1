// Package renderertest provides a renderer.RendererBackend that records every
// call instead of talking to a GPU.
package renderertest

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/buddha/engine/renderer"
	"github.com/spaghettifunk/buddha/engine/renderer/metadata"
)

// Call is one recorded backend invocation.
type Call struct {
	Method string
	Args   []interface{}
}

func (c Call) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = fmt.Sprint(a)
	}
	return c.Method + "(" + strings.Join(parts, ", ") + ")"
}

// Program hands out stable locations: names are sorted by first use and
// numbered from 0. Names listed in Missing resolve to -1.
type Program struct {
	name      string
	recorder  *Recorder
	attribs   map[string]int32
	uniforms  map[string]int32
	Missing   map[string]bool
	Vertex    string
	Fragment  string
	Destroyed bool
}

func (p *Program) Name() string { return p.name }

func (p *Program) Use() {
	p.recorder.record("UseProgram", p.name)
}

func (p *Program) AttribLocation(name string) int32 {
	return p.location(p.attribs, name)
}

func (p *Program) UniformLocation(name string) int32 {
	return p.location(p.uniforms, name)
}

func (p *Program) location(m map[string]int32, name string) int32 {
	if p.Missing[name] {
		return -1
	}
	if loc, ok := m[name]; ok {
		return loc
	}
	loc := int32(len(m))
	m[name] = loc
	return loc
}

// AttribNames lists every attribute name looked up so far, sorted.
func (p *Program) AttribNames() []string {
	return sortedKeys(p.attribs)
}

// UniformNames lists every uniform name looked up so far, sorted.
func (p *Program) UniformNames() []string {
	return sortedKeys(p.uniforms)
}

func sortedKeys(m map[string]int32) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// UniformName resolves a location handed out by UniformLocation.
func (p *Program) UniformName(location int32) string {
	for n, l := range p.uniforms {
		if l == location {
			return n
		}
	}
	return ""
}

// Recorder is safe for concurrent use, although the renderer only calls it
// from one goroutine.
type Recorder struct {
	mu          sync.Mutex
	calls       []Call
	programs    map[string]*Program
	nextHandle  uint32
	Compressed  bool
	FailProgram map[string]error
	FailTexture map[string]error
	FailMesh    map[string]error
}

var _ renderer.RendererBackend = (*Recorder)(nil)

func NewRecorder() *Recorder {
	return &Recorder{
		programs:    make(map[string]*Program),
		FailProgram: make(map[string]error),
		FailTexture: make(map[string]error),
		FailMesh:    make(map[string]error),
	}
}

func (r *Recorder) record(method string, args ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, Call{Method: method, Args: args})
}

func (r *Recorder) handle() uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextHandle++
	return r.nextHandle
}

// Calls returns a copy of everything recorded so far.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Call, len(r.calls))
	copy(out, r.calls)
	return out
}

// Methods returns the recorded method names in order.
func (r *Recorder) Methods() []string {
	calls := r.Calls()
	out := make([]string, len(calls))
	for i, c := range calls {
		out[i] = c.Method
	}
	return out
}

// Filter returns the recorded calls of one method.
func (r *Recorder) Filter(method string) []Call {
	var out []Call
	for _, c := range r.Calls() {
		if c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
}

// Program returns the program created under name, or nil.
func (r *Recorder) Program(name string) *Program {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.programs[name]
}

// ProgramNames lists created programs, sorted.
func (r *Recorder) ProgramNames() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.programs))
	for n := range r.programs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (r *Recorder) Initialize(appName string, appWidth, appHeight uint32) error {
	r.record("Initialize", appName, appWidth, appHeight)
	return nil
}

func (r *Recorder) Shutdown() error {
	r.record("Shutdown")
	return nil
}

func (r *Recorder) Resized(width, height uint32) error {
	r.record("Resized", width, height)
	return nil
}

func (r *Recorder) BeginFrame(state renderer.FrameState) error {
	r.record("BeginFrame", state.Width, state.Height, state.ClearColor)
	return nil
}

func (r *Recorder) EndFrame() error {
	r.record("EndFrame")
	return nil
}

func (r *Recorder) SupportsCompressedTextures() bool {
	return r.Compressed
}

func (r *Recorder) CreateMesh(mesh *metadata.Mesh, vertices []float32, indices []uint16) error {
	if err := r.FailMesh[mesh.Name]; err != nil {
		return err
	}
	mesh.VertexBuffer = r.handle()
	mesh.IndexBuffer = r.handle()
	mesh.IndexCount = int32(len(indices))
	mesh.Generation++
	r.record("CreateMesh", mesh.Name, len(vertices), len(indices))
	return nil
}

func (r *Recorder) DestroyMesh(mesh *metadata.Mesh) {
	r.record("DestroyMesh", mesh.Name)
	mesh.VertexBuffer, mesh.IndexBuffer = 0, 0
}

func (r *Recorder) CreateTexture(texture *metadata.Texture, data []uint8) error {
	if err := r.FailTexture[texture.Name]; err != nil {
		return err
	}
	texture.Handle = r.handle()
	texture.Generation++
	r.record("CreateTexture", texture.Name, texture.Format, len(data))
	return nil
}

func (r *Recorder) DestroyTexture(texture *metadata.Texture) {
	r.record("DestroyTexture", texture.Name)
	texture.Handle = 0
}

func (r *Recorder) CreateProgram(name, vertexSource, fragmentSource string) (renderer.Program, error) {
	if err := r.FailProgram[name]; err != nil {
		return nil, err
	}
	p := &Program{
		name:     name,
		recorder: r,
		attribs:  make(map[string]int32),
		uniforms: make(map[string]int32),
		Missing:  make(map[string]bool),
		Vertex:   vertexSource,
		Fragment: fragmentSource,
	}
	r.mu.Lock()
	r.programs[name] = p
	r.mu.Unlock()
	r.record("CreateProgram", name)
	return p, nil
}

func (r *Recorder) DestroyProgram(program renderer.Program) {
	if p, ok := program.(*Program); ok {
		p.Destroyed = true
	}
	r.record("DestroyProgram", program.Name())
}

func (r *Recorder) BindMesh(mesh *metadata.Mesh) {
	r.record("BindMesh", mesh.Name)
}

func (r *Recorder) EnableAttribute(location, components, stride, offset int32) {
	r.record("EnableAttribute", location, components, stride, offset)
}

func (r *Recorder) DisableAttributes() {
	r.record("DisableAttributes")
}

func (r *Recorder) SetBlendMode(mode renderer.BlendMode) {
	r.record("SetBlendMode", mode)
}

func (r *Recorder) SetDepthWrite(enabled bool) {
	r.record("SetDepthWrite", enabled)
}

func (r *Recorder) BindTexture(unit uint32, texture *metadata.Texture, location int32) {
	r.record("BindTexture", unit, texture.Name, location)
}

func (r *Recorder) SetUniformMat4(location int32, value mgl32.Mat4) {
	r.record("SetUniformMat4", location, value)
}

func (r *Recorder) SetUniformFloat(location int32, value float32) {
	r.record("SetUniformFloat", location, value)
}

func (r *Recorder) SetUniformVec4(location int32, value mgl32.Vec4) {
	r.record("SetUniformVec4", location, value)
}

func (r *Recorder) DrawIndexed(primitive renderer.Primitive, indexCount int32) {
	r.record("DrawIndexed", primitive, indexCount)
}
