package loader

import (
	"github.com/h2non/filetype/types"
	"golang.org/x/image/font/opentype"
)

// fontLoaderBackend parses TrueType and OpenType fonts.
type fontLoaderBackend struct{}

var _ loaderBackend = &fontLoaderBackend{}

func newFontLoaderBackend() *fontLoaderBackend {
	return &fontLoaderBackend{}
}

func (b *fontLoaderBackend) Kind() AssetKind {
	return AssetFont
}

func (b *fontLoaderBackend) Accepts(t types.Type) bool {
	return t.Extension == "ttf" || t.Extension == "otf"
}

func (b *fontLoaderBackend) Decode(data []byte) (any, error) {
	return opentype.Parse(data)
}
