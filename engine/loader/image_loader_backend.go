package loader

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/Carmen-Shannon/oxy-demos/common"
	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/transform"
	"github.com/h2non/filetype/types"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// defaultMaxTextureSize is the largest edge uploaded without downscaling; it matches the
// 2D texture dimension limit every WebGPU adapter guarantees.
const defaultMaxTextureSize = 8192

// imageLoaderBackend decodes PNG, JPEG, GIF, BMP and WebP images into RGBA staging data.
type imageLoaderBackend struct {
	maxSize int
}

var _ loaderBackend = &imageLoaderBackend{}

func newImageLoaderBackend() *imageLoaderBackend {
	return &imageLoaderBackend{maxSize: defaultMaxTextureSize}
}

func (b *imageLoaderBackend) Kind() AssetKind {
	return AssetTexture
}

func (b *imageLoaderBackend) Accepts(t types.Type) bool {
	switch t.Extension {
	case "png", "jpg", "gif", "bmp", "webp":
		return true
	}
	return false
}

// Decode converts the image to RGBA and scales it down, keeping its aspect ratio, when either
// edge exceeds the size limit.
func (b *imageLoaderBackend) Decode(data []byte) (any, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if longest := max(w, h); b.maxSize > 0 && longest > b.maxSize {
		w = max(1, w*b.maxSize/longest)
		h = max(1, h*b.maxSize/longest)
		img = transform.Resize(img, w, h, transform.Linear)
	}

	rgba := clone.AsRGBA(img)
	return &common.TextureStagingData{
		Pixels: rgba.Pix,
		Width:  uint32(rgba.Bounds().Dx()),
		Height: uint32(rgba.Bounds().Dy()),
	}, nil
}
