package loaders

import (
	"bytes"
	"encoding/binary"
	"os"

	"github.com/pkg/errors"

	"github.com/spaghettifunk/buddha/engine/core"
	"github.com/spaghettifunk/buddha/engine/renderer/metadata"
)

const (
	pkmHeaderSize = 16
	// ETC1_RGB_NO_MIPMAPS
	pkmTypeETC1   = 0
	etc1BlockSize = 8
)

var pkmMagic = []byte("PKM ")

// PKMHeader is the 16 byte big-endian header in front of ETC1 blocks.
type PKMHeader struct {
	Version        string
	Type           uint16
	ExtendedWidth  uint16
	ExtendedHeight uint16
	Width          uint16
	Height         uint16
}

// DataSize is the number of bytes of ETC1 blocks the header announces.
func (h *PKMHeader) DataSize() int {
	return int(h.ExtendedWidth/4) * int(h.ExtendedHeight/4) * etc1BlockSize
}

// ParsePKM splits a PKM file into its header and ETC1 payload.
func ParsePKM(data []byte) (*PKMHeader, []byte, error) {
	if len(data) < pkmHeaderSize {
		return nil, nil, errors.Wrapf(core.ErrInvalidTexture, "pkm file is %d bytes, header alone is %d", len(data), pkmHeaderSize)
	}
	if !bytes.Equal(data[0:4], pkmMagic) {
		return nil, nil, errors.Wrapf(core.ErrInvalidTexture, "bad pkm magic %q", data[0:4])
	}

	h := &PKMHeader{
		Version:        string(data[4:6]),
		Type:           binary.BigEndian.Uint16(data[6:8]),
		ExtendedWidth:  binary.BigEndian.Uint16(data[8:10]),
		ExtendedHeight: binary.BigEndian.Uint16(data[10:12]),
		Width:          binary.BigEndian.Uint16(data[12:14]),
		Height:         binary.BigEndian.Uint16(data[14:16]),
	}
	if h.Type != pkmTypeETC1 {
		return nil, nil, errors.Wrapf(core.ErrUnsupportedFormat, "pkm type %d, only ETC1 RGB is supported", h.Type)
	}
	// the upload sizes the block data from the visible size rounded up to 4
	if h.ExtendedWidth != (h.Width+3)&^3 || h.ExtendedHeight != (h.Height+3)&^3 {
		return nil, nil, errors.Wrapf(core.ErrInvalidTexture, "pkm size %dx%d does not match extended size %dx%d",
			h.Width, h.Height, h.ExtendedWidth, h.ExtendedHeight)
	}

	payload := data[pkmHeaderSize:]
	if len(payload) < h.DataSize() {
		return nil, nil, errors.Wrapf(core.ErrInvalidTexture, "pkm payload is %d bytes, expected %d", len(payload), h.DataSize())
	}
	return h, payload[:h.DataSize()], nil
}

// CompressedTextureLoader reads ETC1 textures from PKM files.
type CompressedTextureLoader struct{}

func (cl *CompressedTextureLoader) Load(path string, assetType metadata.ResourceType, params interface{}) (*metadata.Resource, error) {
	if assetType != metadata.ResourceTypeCompressedImage {
		return nil, errors.Wrapf(core.ErrUnsupportedFormat, "compressed texture loader cannot load %s", assetType)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	h, payload, err := ParsePKM(data)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return &metadata.Resource{
		Name:     path,
		FullPath: path,
		DataSize: uint64(len(data)),
		Data: &metadata.ImageResourceData{
			Format: metadata.TextureFormatETC1,
			Width:  uint32(h.Width),
			Height: uint32(h.Height),
			Pixels: payload,
		},
	}, nil
}

func (cl *CompressedTextureLoader) Unload(*metadata.Resource) error {
	return nil
}
