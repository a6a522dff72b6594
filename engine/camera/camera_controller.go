package camera

import "github.com/go-gl/mathgl/mgl32"

// CameraController drives a camera's position and target.
// The single implementation combines orbit and planar controls with optional damping: input
// methods only accumulate deltas, and Update applies them. With damping enabled each Update
// consumes a fraction of the pending delta, so motion eases out over several frames.
type CameraController interface {
	orbitCameraController
	planarCameraController

	// Position returns the current eye position in world space.
	//
	// Returns:
	//   - mgl32.Vec3: eye position
	Position() mgl32.Vec3

	// Target returns the point the camera looks at.
	//
	// Returns:
	//   - mgl32.Vec3: the orbit target
	Target() mgl32.Vec3

	// SetTarget moves the orbit target, keeping radius and angles.
	//
	// Parameters:
	//   - target: the new target
	SetTarget(target mgl32.Vec3)

	// SetPosition places the eye at an absolute position; the spherical coordinates are
	// recomputed relative to the current target.
	//
	// Parameters:
	//   - position: the new eye position
	SetPosition(position mgl32.Vec3)

	// Zoom queues a dolly step. Positive delta moves toward the target.
	//
	// Parameters:
	//   - delta: wheel delta, one unit per notch
	Zoom(delta float32)

	// Update applies pending deltas and recomputes the position.
	// Call exactly once per frame.
	//
	// Returns:
	//   - bool: true if the position or target moved
	Update() bool

	// DampingEnabled reports whether deltas are eased over several frames.
	DampingEnabled() bool

	// DampingFactor returns the fraction of the pending delta consumed per Update.
	DampingFactor() float32

	// SetDamping enables or disables damping and sets its factor.
	//
	// Parameters:
	//   - enabled: whether to ease deltas
	//   - factor: fraction of pending delta applied per Update, in (0, 1]
	SetDamping(enabled bool, factor float32)
}

// orbitCameraController rotates the eye around the target on a sphere.
type orbitCameraController interface {
	// OrbitLeft queues one keyboard orbit step to the left.
	OrbitLeft()

	// OrbitRight queues one keyboard orbit step to the right.
	OrbitRight()

	// OrbitUp queues one keyboard orbit step upward.
	OrbitUp()

	// OrbitDown queues one keyboard orbit step downward.
	OrbitDown()

	// Rotate queues an orbit by pointer drag distance.
	//
	// Parameters:
	//   - dx, dy: pointer movement in pixels since the last event
	Rotate(dx, dy float32)

	// Radius returns the distance from the target.
	Radius() float32

	// SetRadius sets the distance from the target, clamped to [MinRadius, MaxRadius].
	SetRadius(radius float32)

	// MinRadius returns the closest allowed distance.
	MinRadius() float32

	// MaxRadius returns the farthest allowed distance.
	MaxRadius() float32

	// Azimuth returns the horizontal angle around the Y axis in radians. 0 faces +Z.
	Azimuth() float32

	// SetAzimuth sets the horizontal angle in radians.
	SetAzimuth(azimuth float32)

	// Elevation returns the vertical angle above the horizontal plane in radians.
	Elevation() float32

	// SetElevation sets the vertical angle, clamped to [MinElevation, MaxElevation].
	SetElevation(elevation float32)

	// MinElevation returns the lowest allowed elevation.
	MinElevation() float32

	// MaxElevation returns the highest allowed elevation.
	MaxElevation() float32

	// OrbitSpeed returns the angle in radians of one keyboard orbit step.
	OrbitSpeed() float32

	// MouseSensitivity returns radians of orbit per pixel of drag.
	MouseSensitivity() float32

	// ZoomSpeed returns the dolly strength per wheel notch.
	ZoomSpeed() float32
}

// planarCameraController translates the target and eye together along camera-local axes.
type planarCameraController interface {
	// PanRight queues a move along the camera's right axis.
	PanRight(delta float32)

	// PanUp queues a move along the camera's up axis.
	PanUp(delta float32)

	// PanForward queues a move along the camera's forward axis projected onto the ground plane.
	PanForward(delta float32)

	// Pan queues a move by pointer drag distance. The step scales with the radius so a drag
	// tracks the cursor at any zoom level.
	//
	// Parameters:
	//   - dx, dy: pointer movement in pixels since the last event
	Pan(dx, dy float32)

	// PanSpeed returns the pan multiplier.
	PanSpeed() float32
}
