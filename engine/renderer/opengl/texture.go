package opengl

import (
	"github.com/go-gl/gl/v4.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"github.com/spaghettifunk/buddha/engine/core"
	"github.com/spaghettifunk/buddha/engine/renderer/metadata"
)

func (r *OpenGLRenderer) CreateTexture(texture *metadata.Texture, data []uint8) error {
	if len(data) == 0 {
		return errors.Wrapf(core.ErrInvalidTexture, "texture %s has no data", texture.Name)
	}

	gl.GenTextures(1, &texture.Handle)
	gl.BindTexture(gl.TEXTURE_2D, texture.Handle)

	w, h := int32(texture.Width), int32(texture.Height)
	mipmaps := texture.Sampling.FilterMinify == metadata.TextureFilterModeLinearMipmap

	switch texture.Format {
	case metadata.TextureFormatRGBA8:
		gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, w, h, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(data))
		if mipmaps {
			gl.GenerateMipmap(gl.TEXTURE_2D)
		}
	case metadata.TextureFormatETC1:
		if !r.etc2 {
			r.DestroyTexture(texture)
			return errors.Wrapf(core.ErrUnsupportedFormat, "texture %s is ETC1 but the driver has no ETC2 support", texture.Name)
		}
		// ETC2 decoders read ETC1 blocks unchanged
		gl.CompressedTexImage2D(gl.TEXTURE_2D, 0, gl.COMPRESSED_RGB8_ETC2, w, h, 0, int32(len(data)), gl.Ptr(data))
		mipmaps = false
	default:
		r.DestroyTexture(texture)
		return errors.Wrapf(core.ErrUnsupportedFormat, "texture %s has format %s", texture.Name, texture.Format)
	}

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, minFilter(texture.Sampling.FilterMinify, mipmaps))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, magFilter(texture.Sampling.FilterMagnify))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, wrap(texture.Sampling.RepeatU))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, wrap(texture.Sampling.RepeatV))
	gl.BindTexture(gl.TEXTURE_2D, 0)

	texture.Generation++
	return nil
}

func (r *OpenGLRenderer) DestroyTexture(texture *metadata.Texture) {
	if texture.Handle != 0 {
		gl.DeleteTextures(1, &texture.Handle)
		texture.Handle = 0
	}
}

func (r *OpenGLRenderer) BindTexture(unit uint32, texture *metadata.Texture, location int32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, texture.Handle)
	gl.Uniform1i(location, int32(unit))
}

func (r *OpenGLRenderer) SetUniformMat4(location int32, value mgl32.Mat4) {
	gl.UniformMatrix4fv(location, 1, false, &value[0])
}

func (r *OpenGLRenderer) SetUniformFloat(location int32, value float32) {
	gl.Uniform1f(location, value)
}

func (r *OpenGLRenderer) SetUniformVec4(location int32, value mgl32.Vec4) {
	gl.Uniform4f(location, value[0], value[1], value[2], value[3])
}

func minFilter(f metadata.TextureFilter, mipmaps bool) int32 {
	switch {
	case f == metadata.TextureFilterModeNearest:
		return gl.NEAREST
	case f == metadata.TextureFilterModeLinearMipmap && mipmaps:
		return gl.LINEAR_MIPMAP_LINEAR
	default:
		return gl.LINEAR
	}
}

func magFilter(f metadata.TextureFilter) int32 {
	if f == metadata.TextureFilterModeNearest {
		return gl.NEAREST
	}
	return gl.LINEAR
}

func wrap(r metadata.TextureRepeat) int32 {
	switch r {
	case metadata.TextureRepeatMirroredRepeat:
		return gl.MIRRORED_REPEAT
	case metadata.TextureRepeatClampToEdge:
		return gl.CLAMP_TO_EDGE
	default:
		return gl.REPEAT
	}
}
