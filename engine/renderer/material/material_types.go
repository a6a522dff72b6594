package material

import (
	"errors"
	"fmt"
)

// ErrUnknownKind is returned by ParseKind for an unrecognized shading model name.
var ErrUnknownKind = errors.New("unknown material kind")

// Kind selects the shading model evaluated by the fragment shader.
type Kind uint32

const (
	// KindBasic is unlit: the surface color is the material color times the map.
	KindBasic Kind = iota
	// KindNormal maps the view-space normal to rgb.
	KindNormal
	// KindLambert is diffuse-only lighting.
	KindLambert
	// KindPhong adds a Blinn-Phong specular term controlled by Shininess.
	KindPhong
	// KindToon quantizes the diffuse term into bands.
	KindToon
	// KindStandard is a metalness/roughness approximation.
	KindStandard
	// KindPoints shades instanced billboard particles as soft discs.
	KindPoints
)

var kindNames = [...]string{"basic", "normal", "lambert", "phong", "toon", "standard", "points"}

// String returns the lowercase kind name.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint32(k))
}

// Lit reports whether the kind reads scene lights.
func (k Kind) Lit() bool {
	switch k {
	case KindLambert, KindPhong, KindToon, KindStandard:
		return true
	}
	return false
}

// SurfaceKinds lists the kinds usable on triangle meshes, in panel order.
func SurfaceKinds() []string {
	return kindNames[:KindPoints]
}

// ParseKind resolves a kind by name.
//
// Parameters:
//   - name: one of the names returned by Kind.String
//
// Returns:
//   - Kind: the matching kind
//   - error: ErrUnknownKind if name matches none
func ParseKind(name string) (Kind, error) {
	for i, n := range kindNames {
		if n == name {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// Side selects which triangle faces are rasterized.
type Side int

const (
	SideFront Side = iota
	SideBack
	SideDouble
)

func (s Side) String() string {
	switch s {
	case SideBack:
		return "back"
	case SideDouble:
		return "double"
	default:
		return "front"
	}
}
