package opengl

import (
	"github.com/go-gl/gl/v4.3-core/gl"
	"github.com/pkg/errors"

	"github.com/spaghettifunk/buddha/engine/core"
	"github.com/spaghettifunk/buddha/engine/renderer"
	"github.com/spaghettifunk/buddha/engine/renderer/metadata"
)

func (r *OpenGLRenderer) CreateMesh(mesh *metadata.Mesh, vertices []float32, indices []uint16) error {
	if len(vertices) == 0 || len(indices) == 0 {
		return errors.Wrapf(core.ErrInvalidMesh, "mesh %s is empty", mesh.Name)
	}

	gl.GenBuffers(1, &mesh.VertexBuffer)
	gl.BindBuffer(gl.ARRAY_BUFFER, mesh.VertexBuffer)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

	gl.GenBuffers(1, &mesh.IndexBuffer)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, mesh.IndexBuffer)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*2, gl.Ptr(indices), gl.STATIC_DRAW)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	if fpv := mesh.Layout.FloatsPerVertex(); fpv > 0 {
		mesh.VertexCount = int32(len(vertices)) / fpv
	}
	mesh.IndexCount = int32(len(indices))
	mesh.Generation++
	return nil
}

func (r *OpenGLRenderer) DestroyMesh(mesh *metadata.Mesh) {
	if mesh.VertexBuffer != 0 {
		gl.DeleteBuffers(1, &mesh.VertexBuffer)
		mesh.VertexBuffer = 0
	}
	if mesh.IndexBuffer != 0 {
		gl.DeleteBuffers(1, &mesh.IndexBuffer)
		mesh.IndexBuffer = 0
	}
}

func (r *OpenGLRenderer) BindMesh(mesh *metadata.Mesh) {
	gl.BindBuffer(gl.ARRAY_BUFFER, mesh.VertexBuffer)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, mesh.IndexBuffer)
}

func (r *OpenGLRenderer) EnableAttribute(location, components, stride, offset int32) {
	gl.EnableVertexAttribArray(uint32(location))
	gl.VertexAttribPointerWithOffset(uint32(location), components, gl.FLOAT, false, stride, uintptr(offset))
	r.enabled = append(r.enabled, uint32(location))
}

func (r *OpenGLRenderer) DisableAttributes() {
	for _, loc := range r.enabled {
		gl.DisableVertexAttribArray(loc)
	}
	r.enabled = r.enabled[:0]
}

func (r *OpenGLRenderer) DrawIndexed(primitive renderer.Primitive, indexCount int32) {
	mode := uint32(gl.TRIANGLES)
	if primitive == renderer.PrimitivePoints {
		mode = gl.POINTS
	}
	gl.DrawElements(mode, indexCount, gl.UNSIGNED_SHORT, gl.PtrOffset(0))
}
