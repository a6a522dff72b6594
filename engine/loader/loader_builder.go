package loader

import (
	"github.com/Carmen-Shannon/oxy-demos/common"
	"go.uber.org/zap"
)

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithAssetDir is an option builder that sets the directory relative asset paths resolve against.
//
// Parameters:
//   - dir: the asset root
//
// Returns:
//   - LoaderBuilderOption: a function that applies the directory option to a loader
func WithAssetDir(dir string) LoaderBuilderOption {
	return func(l *loader) {
		l.assetDir = dir
	}
}

// WithMaxTextureSize is an option builder that sets the longest texture edge kept at full
// resolution. Larger images are downscaled on load.
//
// Parameters:
//   - size: the edge limit in pixels; values <= 0 restore the default
//
// Returns:
//   - LoaderBuilderOption: a function that applies the size option to a loader
func WithMaxTextureSize(size int) LoaderBuilderOption {
	return func(l *loader) {
		for _, b := range l.backends {
			if ib, ok := b.(*imageLoaderBackend); ok {
				ib.maxSize = size
			}
		}
	}
}

// WithTexture is an option builder that pre-populates the texture cache.
//
// Parameters:
//   - key: the cache key for the texture
//   - tex: the texture to cache
//
// Returns:
//   - LoaderBuilderOption: a function that applies the texture option to a loader
func WithTexture(key string, tex *common.TextureStagingData) LoaderBuilderOption {
	return func(l *loader) {
		l.textures[key] = tex
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) LoaderBuilderOption {
	return func(l *loader) {
		l.logger = logger
	}
}
