// Package loader reads textures and fonts from disk or memory and caches the decoded results.
package loader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/Carmen-Shannon/oxy-demos/common"
	"github.com/Carmen-Shannon/oxy-demos/engine/logging"
	"github.com/h2non/filetype"
	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// ErrUnsupportedAsset is returned when the content of a file matches no backend.
var ErrUnsupportedAsset = errors.New("unsupported asset")

// defaultFontName is the cache key of the embedded Go Regular font.
const defaultFontName = "gofont/goregular"

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	assetDir string
	logger   *zap.Logger

	textures map[string]*common.TextureStagingData
	fonts    map[string]*opentype.Font

	backends []loaderBackend
}

// Loader defines the public-facing interface for loading and caching demo assets.
// The asset type is detected from the file content, not its extension, and decoding is delegated
// to the backend that accepts it.
type Loader interface {
	// LoadTexture decodes an image file into RGBA pixels and caches the result by path.
	// Relative paths are resolved against the asset directory.
	//
	// Parameters:
	//   - path: the image file
	//
	// Returns:
	//   - *common.TextureStagingData: the decoded texture, downscaled to the size limit
	//   - error: ErrUnsupportedAsset if the file is not an image, or a read/decode error
	LoadTexture(path string) (*common.TextureStagingData, error)

	// LoadTextureBytes decodes image data and caches the result under name.
	//
	// Parameters:
	//   - name: the cache key
	//   - data: the encoded image
	//
	// Returns:
	//   - *common.TextureStagingData: the decoded texture
	//   - error: ErrUnsupportedAsset if data is not an image, or a decode error
	LoadTextureBytes(name string, data []byte) (*common.TextureStagingData, error)

	// LoadFont parses a TrueType or OpenType file and caches the result by path.
	//
	// Parameters:
	//   - path: the font file
	//
	// Returns:
	//   - *opentype.Font: the parsed font
	//   - error: ErrUnsupportedAsset if the file is not a font, or a read/parse error
	LoadFont(path string) (*opentype.Font, error)

	// LoadFontBytes parses font data and caches the result under name.
	//
	// Parameters:
	//   - name: the cache key
	//   - data: the font file content
	//
	// Returns:
	//   - *opentype.Font: the parsed font
	//   - error: ErrUnsupportedAsset if data is not a font, or a parse error
	LoadFontBytes(name string, data []byte) (*opentype.Font, error)

	// DefaultFont returns the embedded Go Regular font.
	//
	// Returns:
	//   - *opentype.Font: the parsed font
	//   - error: error if the embedded font fails to parse
	DefaultFont() (*opentype.Font, error)

	// Texture retrieves a cached texture by name. Returns nil if not found.
	Texture(name string) *common.TextureStagingData

	// Textures returns a copy of the texture cache.
	Textures() map[string]*common.TextureStagingData
}

var _ Loader = &loader{}

// NewLoader creates a new Loader with the image and font backends.
//
// Parameters:
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: a new Loader
func NewLoader(options ...LoaderBuilderOption) Loader {
	l := &loader{
		textures: make(map[string]*common.TextureStagingData),
		fonts:    make(map[string]*opentype.Font),
		logger:   zap.NewNop(),
	}
	img := newImageLoaderBackend()
	l.backends = []loaderBackend{img, newFontLoaderBackend()}

	for _, option := range options {
		option(l)
	}
	l.logger = logging.OrNop(l.logger).Named("loader")
	for _, b := range l.backends {
		if ib, ok := b.(*imageLoaderBackend); ok && ib.maxSize <= 0 {
			ib.maxSize = defaultMaxTextureSize
		}
	}
	return l
}

// NewFace creates a face of the given pixel size, at 72 DPI so that size is in pixels.
//
// Parameters:
//   - f: the parsed font
//   - size: the em size in pixels
//
// Returns:
//   - font.Face: the face
//   - error: error if the face cannot be created
func NewFace(f *opentype.Font, size float64) (font.Face, error) {
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create font face: %w", err)
	}
	return face, nil
}

func (l *loader) LoadTexture(path string) (*common.TextureStagingData, error) {
	path = l.resolve(path)
	if tex := l.Texture(path); tex != nil {
		return tex, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read texture %s: %w", path, err)
	}
	return l.LoadTextureBytes(path, data)
}

func (l *loader) LoadTextureBytes(name string, data []byte) (*common.TextureStagingData, error) {
	if tex := l.Texture(name); tex != nil {
		return tex, nil
	}
	decoded, err := l.decode(name, data, AssetTexture)
	if err != nil {
		return nil, err
	}
	tex := decoded.(*common.TextureStagingData)

	l.mu.Lock()
	l.textures[name] = tex
	l.mu.Unlock()
	l.logger.Debug("texture loaded", zap.String("name", name),
		zap.Uint32("width", tex.Width), zap.Uint32("height", tex.Height))
	return tex, nil
}

func (l *loader) LoadFont(path string) (*opentype.Font, error) {
	path = l.resolve(path)
	if f := l.font(path); f != nil {
		return f, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font %s: %w", path, err)
	}
	return l.LoadFontBytes(path, data)
}

func (l *loader) LoadFontBytes(name string, data []byte) (*opentype.Font, error) {
	if f := l.font(name); f != nil {
		return f, nil
	}
	decoded, err := l.decode(name, data, AssetFont)
	if err != nil {
		return nil, err
	}
	f := decoded.(*opentype.Font)

	l.mu.Lock()
	l.fonts[name] = f
	l.mu.Unlock()
	l.logger.Debug("font loaded", zap.String("name", name), zap.Int("glyphs", f.NumGlyphs()))
	return f, nil
}

func (l *loader) DefaultFont() (*opentype.Font, error) {
	return l.LoadFontBytes(defaultFontName, goregular.TTF)
}

func (l *loader) Texture(name string) *common.TextureStagingData {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.textures[name]
}

func (l *loader) Textures() map[string]*common.TextureStagingData {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make(map[string]*common.TextureStagingData, len(l.textures))
	for k, v := range l.textures {
		result[k] = v
	}
	return result
}

func (l *loader) font(name string) *opentype.Font {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.fonts[name]
}

// resolve joins relative paths onto the asset directory.
func (l *loader) resolve(path string) string {
	if l.assetDir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(l.assetDir, path)
}

// decode detects the content type of data and hands it to the backend of the wanted kind that
// accepts it.
func (l *loader) decode(name string, data []byte, want AssetKind) (any, error) {
	kind, err := filetype.Match(data)
	if err != nil || kind == filetype.Unknown {
		return nil, fmt.Errorf("%w: %s: unrecognized content", ErrUnsupportedAsset, name)
	}
	for _, b := range l.backends {
		if b.Kind() != want || !b.Accepts(kind) {
			continue
		}
		out, err := b.Decode(data)
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", name, err)
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: %s is %s, want a %s", ErrUnsupportedAsset, name, kind.MIME.Value, want)
}
