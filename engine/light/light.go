package light

import (
	"github.com/Carmen-Shannon/oxy-demos/common"
	"github.com/go-gl/mathgl/mgl32"
)

// LightType identifies the kind of light source.
type LightType int

const (
	// LightTypeAmbient lights every fragment equally. Ambient lights are summed into the light
	// buffer header rather than evaluated per light.
	LightTypeAmbient LightType = iota

	// LightTypeDirectional represents a light with no position, only direction.
	// Used for distant sources like the moon. No distance attenuation.
	LightTypeDirectional

	// LightTypePoint represents a light that emits in all directions from a position and
	// attenuates with distance up to its range.
	LightTypePoint
)

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	name      string
	lightType LightType
	position  mgl32.Vec3
	direction mgl32.Vec3
	color     common.Color
	intensity float32
	distance  float32
	decay     float32
	enabled   bool
}

// Light defines the interface for a light source in the scene.
//
// All light types share this interface; type-specific properties return their stored values even
// when the type ignores them. Lights are owned by the scene and marshaled into a GPU storage buffer
// each frame via MarshalLightBuffer. They are mutated on the render thread only.
type Light interface {
	// Name returns the light identifier.
	Name() string

	// Type returns the kind of light source.
	//
	// Returns:
	//   - LightType: ambient, directional or point
	Type() LightType

	// Position returns the world-space position. Ignored by ambient and directional lights.
	//
	// Returns:
	//   - mgl32.Vec3: the position
	Position() mgl32.Vec3

	// Direction returns the normalized direction the light travels. Only directional lights use it.
	//
	// Returns:
	//   - mgl32.Vec3: the unit direction
	Direction() mgl32.Vec3

	// Color returns the light color.
	Color() common.Color

	// Intensity returns the scalar intensity multiplier.
	Intensity() float32

	// Distance returns the cutoff distance of a point light. Zero means unlimited.
	Distance() float32

	// Decay returns the exponent of a point light's distance falloff.
	Decay() float32

	// Enabled returns whether this light is active for rendering.
	// Disabled lights are skipped during GPU buffer marshaling.
	Enabled() bool

	// SetPosition sets the world-space position of the light.
	//
	// Parameters:
	//   - position: the new position
	SetPosition(position mgl32.Vec3)

	// LookAt points a directional light from its position toward target.
	//
	// Parameters:
	//   - target: the point the light shines at
	LookAt(target mgl32.Vec3)

	// SetColor sets the light color.
	SetColor(color common.Color)

	// SetIntensity sets the scalar intensity multiplier.
	SetIntensity(intensity float32)

	// SetEnabled enables or disables the light for rendering.
	SetEnabled(enabled bool)
}

var _ Light = &lightImpl{}

// NewLight creates a new Light of the specified type with white color, unit intensity, unlimited
// distance and physically based decay of 2.
//
// Parameters:
//   - lightType: the kind of light to create
//   - opts: variadic list of LightBuilderOption functions to configure the light
//
// Returns:
//   - Light: a new Light instance
func NewLight(lightType LightType, opts ...LightBuilderOption) Light {
	l := &lightImpl{
		lightType: lightType,
		direction: mgl32.Vec3{0, -1, 0},
		color:     common.White,
		intensity: 1,
		decay:     2,
		enabled:   true,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// NewAmbientLight creates an ambient light.
func NewAmbientLight(color common.Color, intensity float32) Light {
	return NewLight(LightTypeAmbient, WithColor(color), WithIntensity(intensity))
}

// NewDirectionalLight creates a directional light shining from position toward the origin.
func NewDirectionalLight(color common.Color, intensity float32, position mgl32.Vec3) Light {
	l := NewLight(LightTypeDirectional, WithColor(color), WithIntensity(intensity), WithPosition(position))
	l.LookAt(mgl32.Vec3{})
	return l
}

// NewPointLight creates a point light.
//
// Parameters:
//   - color: the light color
//   - intensity: scalar intensity
//   - distance: cutoff distance, 0 for unlimited
//   - position: world-space position
//
// Returns:
//   - Light: the point light
func NewPointLight(color common.Color, intensity, distance float32, position mgl32.Vec3) Light {
	return NewLight(LightTypePoint, WithColor(color), WithIntensity(intensity), WithDistance(distance), WithPosition(position))
}

func (l *lightImpl) Name() string {
	return l.name
}

func (l *lightImpl) Type() LightType {
	return l.lightType
}

func (l *lightImpl) Position() mgl32.Vec3 {
	return l.position
}

func (l *lightImpl) Direction() mgl32.Vec3 {
	return l.direction
}

func (l *lightImpl) Color() common.Color {
	return l.color
}

func (l *lightImpl) Intensity() float32 {
	return l.intensity
}

func (l *lightImpl) Distance() float32 {
	return l.distance
}

func (l *lightImpl) Decay() float32 {
	return l.decay
}

func (l *lightImpl) Enabled() bool {
	return l.enabled
}

func (l *lightImpl) SetPosition(position mgl32.Vec3) {
	l.position = position
}

func (l *lightImpl) LookAt(target mgl32.Vec3) {
	d := target.Sub(l.position)
	if d.LenSqr() == 0 {
		return
	}
	l.direction = d.Normalize()
}

func (l *lightImpl) SetColor(color common.Color) {
	l.color = color
}

func (l *lightImpl) SetIntensity(intensity float32) {
	l.intensity = intensity
}

func (l *lightImpl) SetEnabled(enabled bool) {
	l.enabled = enabled
}
