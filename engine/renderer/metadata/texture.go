package metadata

import "github.com/google/uuid"

type TextureFormat int

const (
	// Uncompressed 8-bit RGBA.
	TextureFormatRGBA8 TextureFormat = iota
	// ETC1 blocks from a PKM container.
	TextureFormatETC1
)

func (f TextureFormat) String() string {
	switch f {
	case TextureFormatRGBA8:
		return "rgba8"
	case TextureFormatETC1:
		return "etc1"
	default:
		return "unknown"
	}
}

/** @brief A collection of texture uses */
type TextureUse int

const (
	/** @brief An unknown use. This is default, but should never actually be used. */
	TextureUseUnknown TextureUse = 0x00
	/** @brief The texture is used as a diffuse (color) map. */
	TextureUseMapDiffuse TextureUse = 0x01
	/** @brief The texture is used as a normal map. */
	TextureUseMapNormal TextureUse = 0x03
	/** @brief Precomputed static lighting or ambient occlusion. */
	TextureUseMapLightmap TextureUse = 0x05
	/** @brief Spherical environment map sampled with the reflected view vector. */
	TextureUseMapSphere TextureUse = 0x06
	/** @brief Sprite image used by point sprites. */
	TextureUseMapSprite TextureUse = 0x07
)

/** @brief Represents supported texture filtering modes. */
type TextureFilter int

const (
	/** @brief Nearest-neighbor filtering. */
	TextureFilterModeNearest TextureFilter = 0x0
	/** @brief Linear (i.e. bilinear) filtering.*/
	TextureFilterModeLinear TextureFilter = 0x1
	/** @brief Trilinear filtering, generates mipmaps when the format allows it. */
	TextureFilterModeLinearMipmap TextureFilter = 0x2
)

type TextureRepeat int

const (
	TextureRepeatRepeat         TextureRepeat = 0x1
	TextureRepeatMirroredRepeat TextureRepeat = 0x2
	TextureRepeatClampToEdge    TextureRepeat = 0x3
)

// TextureSampling describes how a texture is filtered and wrapped.
type TextureSampling struct {
	FilterMinify  TextureFilter
	FilterMagnify TextureFilter
	RepeatU       TextureRepeat
	RepeatV       TextureRepeat
}

// DefaultSampling is trilinear filtering with repeat wrapping.
var DefaultSampling = TextureSampling{
	FilterMinify:  TextureFilterModeLinearMipmap,
	FilterMagnify: TextureFilterModeLinear,
	RepeatU:       TextureRepeatRepeat,
	RepeatV:       TextureRepeatRepeat,
}

// Also used as params for the texture loaders.
type TextureLoadParams struct {
	Use      TextureUse
	Sampling TextureSampling
	// Textures upload top row first, matching the scene's UVs and glTF's
	// origin. FlipY is for images authored with a bottom-left origin.
	FlipY    bool
}

/**
 * @brief Represents a texture resident on the GPU.
 */
type Texture struct {
	/** @brief The unique texture identifier. */
	ID uuid.UUID
	/** @brief The texture Name. */
	Name string
	/** @brief The texture Width. */
	Width uint32
	/** @brief The texture Height. */
	Height   uint32
	Format   TextureFormat
	Use      TextureUse
	Sampling TextureSampling
	/** @brief Backend handle. */
	Handle uint32
	/** @brief The texture Generation. Incremented every time the data is reloaded. */
	Generation uint32
}
