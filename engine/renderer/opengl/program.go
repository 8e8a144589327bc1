package opengl

import (
	"github.com/go-gl/gl/v4.3-core/gl"
	"github.com/pkg/errors"

	"github.com/spaghettifunk/buddha/engine/core"
	"github.com/spaghettifunk/buddha/engine/renderer"
)

type Program struct {
	Id                           uint32
	VertexShader, FragmentShader uint32
	name                         string
}

func (p *Program) Name() string {
	return p.name
}

func (p *Program) Use() {
	gl.UseProgram(p.Id)
}

func (p *Program) AttribLocation(name string) int32 {
	return gl.GetAttribLocation(p.Id, gl.Str(name+"\x00"))
}

func (p *Program) UniformLocation(name string) int32 {
	return gl.GetUniformLocation(p.Id, gl.Str(name+"\x00"))
}

func (p *Program) delete() {
	gl.DetachShader(p.Id, p.VertexShader)
	gl.DetachShader(p.Id, p.FragmentShader)
	gl.DeleteProgram(p.Id)
	gl.DeleteShader(p.VertexShader)
	gl.DeleteShader(p.FragmentShader)
}

func (r *OpenGLRenderer) CreateProgram(name, vertexSource, fragmentSource string) (renderer.Program, error) {
	p := &Program{name: name}

	vs, err := loadShader(gl.VERTEX_SHADER, vertexSource)
	if err != nil {
		return nil, errors.Wrapf(err, "%s vertex shader", name)
	}
	p.VertexShader = vs

	fs, err := loadShader(gl.FRAGMENT_SHADER, fragmentSource)
	if err != nil {
		gl.DeleteShader(p.VertexShader)
		return nil, errors.Wrapf(err, "%s fragment shader", name)
	}
	p.FragmentShader = fs

	p.Id = gl.CreateProgram()
	gl.AttachShader(p.Id, p.VertexShader)
	gl.AttachShader(p.Id, p.FragmentShader)
	gl.LinkProgram(p.Id)

	var isLinked int32
	gl.GetProgramiv(p.Id, gl.LINK_STATUS, &isLinked)
	if isLinked == gl.FALSE {
		var logSize int32
		gl.GetProgramiv(p.Id, gl.INFO_LOG_LENGTH, &logSize)
		buf := make([]uint8, logSize+1)
		gl.GetProgramInfoLog(p.Id, int32(len(buf)), &logSize, &buf[0])
		errString := string(buf[:logSize])
		core.LogError("failed to link program %s:\n%s", name, errString)

		p.delete()
		return nil, errors.Wrapf(core.ErrShaderCompile, "failed to link program %s: %q", name, errString)
	}
	return p, nil
}

func (r *OpenGLRenderer) DestroyProgram(program renderer.Program) {
	if p, ok := program.(*Program); ok && p.Id != 0 {
		p.delete()
		p.Id = 0
	}
}

func loadShader(xtype uint32, text string) (uint32, error) {
	shader := gl.CreateShader(xtype)
	csource, free := gl.Strs(text + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var success int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &success)
	if success == gl.FALSE {
		var logSize int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logSize)
		buf := make([]uint8, logSize+1)
		gl.GetShaderInfoLog(shader, int32(len(buf)), &logSize, &buf[0])
		errString := string(buf[:logSize])
		core.LogError("failed to compile shader:\n%s", errString)

		gl.DeleteShader(shader)
		return 0, errors.Wrapf(core.ErrShaderCompile, "%q", errString)
	}
	return shader, nil
}
