package loader

import "github.com/h2non/filetype/types"

// AssetKind identifies what a backend decodes to.
type AssetKind int

const (
	// AssetTexture decodes to *common.TextureStagingData.
	AssetTexture AssetKind = iota
	// AssetFont decodes to *opentype.Font.
	AssetFont
)

func (k AssetKind) String() string {
	if k == AssetFont {
		return "font"
	}
	return "texture"
}

// loaderBackend defines the generic interface for decoding one family of file formats.
// Concrete implementations (imageLoaderBackend, fontLoaderBackend) handle format-specific details.
type loaderBackend interface {
	// Kind reports what Decode produces.
	//
	// Returns:
	//   - AssetKind: the decoded asset kind
	Kind() AssetKind

	// Accepts reports whether the backend can decode content of the detected type.
	//
	// Parameters:
	//   - t: the type detected from the file header
	//
	// Returns:
	//   - bool: true if Decode supports the type
	Accepts(t types.Type) bool

	// Decode parses the file content.
	//
	// Parameters:
	//   - data: the raw file content
	//
	// Returns:
	//   - any: the decoded asset, of the type named by Kind
	//   - error: error if decoding fails
	Decode(data []byte) (any, error)
}
