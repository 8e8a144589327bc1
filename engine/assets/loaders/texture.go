package loaders

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/spaghettifunk/buddha/engine/core"
	"github.com/spaghettifunk/buddha/engine/renderer/metadata"
)

// TextureLoader decodes PNG, JPEG and WebP files to tightly packed RGBA8.
type TextureLoader struct{}

func (tl *TextureLoader) Load(path string, assetType metadata.ResourceType, params interface{}) (*metadata.Resource, error) {
	if assetType != metadata.ResourceTypeImage {
		return nil, errors.Wrapf(core.ErrUnsupportedFormat, "texture loader cannot load %s", assetType)
	}

	// Open and decode the texture image file
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, err
	}

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, errors.Wrapf(core.ErrInvalidTexture, "%s: %s", path, err)
	}

	flip := false
	if p, ok := params.(*metadata.TextureLoadParams); ok && p != nil {
		flip = p.FlipY
	}
	rgba := ToRGBA(img, flip)
	core.LogDebug("decoded %s image %s (%dx%d)", format, path, rgba.Rect.Dx(), rgba.Rect.Dy())

	return &metadata.Resource{
		Name:     path,
		FullPath: path,
		DataSize: uint64(info.Size()),
		Data: &metadata.ImageResourceData{
			Format: metadata.TextureFormatRGBA8,
			Width:  uint32(rgba.Rect.Dx()),
			Height: uint32(rgba.Rect.Dy()),
			Pixels: rgba.Pix,
		},
	}, nil
}

func (tl *TextureLoader) Unload(*metadata.Resource) error {
	return nil
}

// ToRGBA converts any image to an *image.RGBA anchored at the origin, with a
// stride of exactly 4*width. flip mirrors the rows.
func ToRGBA(img image.Image, flip bool) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Rect, img, b.Min, draw.Src)
	if flip {
		flipRows(dst)
	}
	return dst
}

func flipRows(img *image.RGBA) {
	h := img.Rect.Dy()
	row := make([]uint8, img.Stride)
	for y := 0; y < h/2; y++ {
		top := img.Pix[y*img.Stride : (y+1)*img.Stride]
		bottom := img.Pix[(h-1-y)*img.Stride : (h-y)*img.Stride]
		copy(row, top)
		copy(top, bottom)
		copy(bottom, row)
	}
}
