package loader

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-demos/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

func encodePNG(t *testing.T, w, h int, c color.RGBA) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestLoadTextureBytesDecodesRGBA(t *testing.T) {
	l := NewLoader()
	tex, err := l.LoadTextureBytes("door", encodePNG(t, 4, 2, color.RGBA{R: 200, G: 10, B: 30, A: 255}))
	require.NoError(t, err)

	assert.Equal(t, uint32(4), tex.Width)
	assert.Equal(t, uint32(2), tex.Height)
	require.Len(t, tex.Pixels, 4*2*4)
	assert.Equal(t, []byte{200, 10, 30, 255}, tex.Pixels[:4])
	assert.Same(t, tex, l.Texture("door"))
}

func TestLoadTextureDownscalesLargeImages(t *testing.T) {
	l := NewLoader(WithMaxTextureSize(16))
	tex, err := l.LoadTextureBytes("grass", encodePNG(t, 64, 32, color.RGBA{G: 255, A: 255}))
	require.NoError(t, err)
	assert.Equal(t, uint32(16), tex.Width)
	assert.Equal(t, uint32(8), tex.Height)
	assert.Len(t, tex.Pixels, 16*8*4)
}

func TestLoadTextureFromAssetDirIsCached(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "brick.png"), encodePNG(t, 2, 2, color.RGBA{A: 255}), 0o644))

	l := NewLoader(WithAssetDir(dir))
	a, err := l.LoadTexture("brick.png")
	require.NoError(t, err)
	b, err := l.LoadTexture("brick.png")
	require.NoError(t, err)
	assert.Same(t, a, b)
	assert.Len(t, l.Textures(), 1)

	_, err = l.LoadTexture("missing.png")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnsupportedAsset)
}

func TestUnsupportedContent(t *testing.T) {
	l := NewLoader()
	_, err := l.LoadTextureBytes("notes", []byte("just some text"))
	require.ErrorIs(t, err, ErrUnsupportedAsset)

	_, err = l.LoadTextureBytes("font-as-texture", goregular.TTF)
	require.ErrorIs(t, err, ErrUnsupportedAsset)

	_, err = l.LoadFontBytes("png-as-font", encodePNG(t, 1, 1, color.RGBA{A: 255}))
	require.ErrorIs(t, err, ErrUnsupportedAsset)
}

func TestFonts(t *testing.T) {
	l := NewLoader()
	f, err := l.DefaultFont()
	require.NoError(t, err)
	assert.Positive(t, f.NumGlyphs())

	again, err := l.DefaultFont()
	require.NoError(t, err)
	assert.Same(t, f, again)

	face, err := NewFace(f, 32)
	require.NoError(t, err)
	defer face.Close()
	assert.Positive(t, face.Metrics().Height.Ceil())
}

func TestPrepopulatedTexture(t *testing.T) {
	white := common.WhiteTexture()
	l := NewLoader(WithTexture("white", white))
	tex, err := l.LoadTextureBytes("white", nil)
	require.NoError(t, err)
	assert.Same(t, white, tex)
}
