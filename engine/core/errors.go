package core

import (
	"errors"
)

var (
	ErrAssetLoad         = errors.New("asset load failed")
	ErrLoadTimeout       = errors.New("asset loading timed out")
	ErrNotReady          = errors.New("assets are not loaded yet")
	ErrUnsupportedFormat = errors.New("unsupported asset format")
	ErrInvalidMesh       = errors.New("invalid mesh data")
	ErrInvalidTexture    = errors.New("invalid texture data")
	ErrShaderCompile     = errors.New("shader compilation failed")
	ErrMissingAttribute  = errors.New("mesh does not provide a required vertex attribute")
	ErrInvalidConfig     = errors.New("invalid configuration")
)
