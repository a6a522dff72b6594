package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-demos/common"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// settleEpsilon is the pending delta below which damping stops reporting motion.
const settleEpsilon = 1e-6

// cameraControllerImpl is the single implementation of CameraController.
// Supports both orbit and planar controls simultaneously. Orbit methods modify
// spherical coordinates; planar methods translate the target, and the eye follows.
type cameraControllerImpl struct {
	mu *sync.Mutex

	// Camera position (computed from target + spherical coords)
	position mgl32.Vec3
	target   mgl32.Vec3

	// Spherical coordinates (offset from target)
	radius    float32
	azimuth   float32 // Horizontal angle around Y axis
	elevation float32 // Vertical angle from horizontal plane

	// Pending input, consumed by Update
	azimuthDelta   float32
	elevationDelta float32
	panDelta       mgl32.Vec3
	dollyScale     float32

	// Orbit constraints
	minRadius    float32
	maxRadius    float32
	minElevation float32
	maxElevation float32

	// Orbit speed settings
	orbitSpeed       float32
	mouseSensitivity float32
	zoomSpeed        float32

	// Planar speed
	panSpeed float32

	dampingEnabled bool
	dampingFactor  float32
}

// Compile-time interface compliance check
var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates a new camera controller with defaults suited to scenes a few
// units across. Damping is on with a factor of 0.05.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		mu: &sync.Mutex{},

		radius:     3.0,
		dollyScale: 1,

		minRadius:    0.5,
		maxRadius:    500.0,
		minElevation: -math32.Pi/2 + 0.01,
		maxElevation: math32.Pi/2 - 0.01,

		orbitSpeed:       0.03,
		mouseSensitivity: 0.005,
		zoomSpeed:        1.0,

		panSpeed: 1.0,

		dampingEnabled: true,
		dampingFactor:  0.05,
	}

	for _, option := range options {
		option(cc)
	}

	cc.radius = common.Clamp(cc.radius, cc.minRadius, cc.maxRadius)
	cc.elevation = common.Clamp(cc.elevation, cc.minElevation, cc.maxElevation)
	cc.updatePosition()
	return cc
}

// --- internal helpers ---

// updatePosition recomputes the camera position from spherical coordinates.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) updatePosition() {
	cosElev := math32.Cos(cc.elevation)
	sinElev := math32.Sin(cc.elevation)
	cosAzim := math32.Cos(cc.azimuth)
	sinAzim := math32.Sin(cc.azimuth)

	cc.position = cc.target.Add(mgl32.Vec3{
		cc.radius * cosElev * sinAzim,
		cc.radius * sinElev,
		cc.radius * cosElev * cosAzim,
	})
}

// setSphericalFromPosition derives radius, azimuth and elevation from position - target.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) setSphericalFromPosition() {
	offset := cc.position.Sub(cc.target)
	r := offset.Len()
	if r < 1e-8 {
		return
	}
	cc.radius = common.Clamp(r, cc.minRadius, cc.maxRadius)
	cc.azimuth = math32.Atan2(offset[0], offset[2])
	cc.elevation = common.Clamp(math32.Asin(offset[1]/r), cc.minElevation, cc.maxElevation)
	cc.updatePosition()
}

// localAxes computes the camera's right, up and forward axes consistent with the LookAt matrix.
// All axes are zero when position and target coincide.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) localAxes() (right, up, forward mgl32.Vec3) {
	backward := cc.position.Sub(cc.target)
	if backward.Len() < 1e-8 {
		return
	}
	backward = backward.Normalize()

	right = mgl32.Vec3{0, 1, 0}.Cross(backward)
	if right.Len() < 1e-8 {
		return mgl32.Vec3{}, mgl32.Vec3{}, mgl32.Vec3{}
	}
	right = right.Normalize()
	up = backward.Cross(right)
	forward = backward.Mul(-1)
	return right, up, forward
}

// --- CameraController shared methods ---

func (cc *cameraControllerImpl) Position() mgl32.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.position
}

func (cc *cameraControllerImpl) SetPosition(position mgl32.Vec3) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.position = position
	cc.setSphericalFromPosition()
}

func (cc *cameraControllerImpl) Target() mgl32.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.target
}

func (cc *cameraControllerImpl) SetTarget(target mgl32.Vec3) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.target = target
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Zoom(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.dollyScale *= math32.Pow(0.95, delta*cc.zoomSpeed)
}

func (cc *cameraControllerImpl) Update() bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	factor := float32(1)
	if cc.dampingEnabled {
		factor = cc.dampingFactor
	}

	before := cc.position
	beforeTarget := cc.target

	cc.azimuth += cc.azimuthDelta * factor
	cc.elevation = common.Clamp(cc.elevation+cc.elevationDelta*factor, cc.minElevation, cc.maxElevation)
	cc.radius = common.Clamp(cc.radius*cc.dollyScale, cc.minRadius, cc.maxRadius)
	cc.target = cc.target.Add(cc.panDelta.Mul(factor))
	cc.updatePosition()

	if cc.dampingEnabled {
		keep := 1 - factor
		cc.azimuthDelta *= keep
		cc.elevationDelta *= keep
		cc.panDelta = cc.panDelta.Mul(keep)
		if math32.Abs(cc.azimuthDelta) < settleEpsilon {
			cc.azimuthDelta = 0
		}
		if math32.Abs(cc.elevationDelta) < settleEpsilon {
			cc.elevationDelta = 0
		}
		if cc.panDelta.LenSqr() < settleEpsilon*settleEpsilon {
			cc.panDelta = mgl32.Vec3{}
		}
	} else {
		cc.azimuthDelta, cc.elevationDelta = 0, 0
		cc.panDelta = mgl32.Vec3{}
	}
	cc.dollyScale = 1

	return !before.ApproxEqualThreshold(cc.position, settleEpsilon) ||
		!beforeTarget.ApproxEqualThreshold(cc.target, settleEpsilon)
}

func (cc *cameraControllerImpl) DampingEnabled() bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.dampingEnabled
}

func (cc *cameraControllerImpl) DampingFactor() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.dampingFactor
}

func (cc *cameraControllerImpl) SetDamping(enabled bool, factor float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.dampingEnabled = enabled
	if factor > 0 && factor <= 1 {
		cc.dampingFactor = factor
	}
}

// --- orbitCameraController implementation ---

func (cc *cameraControllerImpl) OrbitLeft() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.azimuthDelta -= cc.orbitSpeed
}

func (cc *cameraControllerImpl) OrbitRight() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.azimuthDelta += cc.orbitSpeed
}

func (cc *cameraControllerImpl) OrbitUp() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.elevationDelta += cc.orbitSpeed
}

func (cc *cameraControllerImpl) OrbitDown() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.elevationDelta -= cc.orbitSpeed
}

func (cc *cameraControllerImpl) Rotate(dx, dy float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	// Dragging right swings the eye left around the target, so the scene appears to follow the cursor.
	cc.azimuthDelta -= dx * cc.mouseSensitivity
	cc.elevationDelta += dy * cc.mouseSensitivity
}

func (cc *cameraControllerImpl) Radius() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.radius
}

func (cc *cameraControllerImpl) SetRadius(radius float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.radius = common.Clamp(radius, cc.minRadius, cc.maxRadius)
	cc.updatePosition()
}

func (cc *cameraControllerImpl) MinRadius() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.minRadius
}

func (cc *cameraControllerImpl) MaxRadius() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.maxRadius
}

func (cc *cameraControllerImpl) Azimuth() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.azimuth
}

func (cc *cameraControllerImpl) SetAzimuth(azimuth float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.azimuth = azimuth
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Elevation() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.elevation
}

func (cc *cameraControllerImpl) SetElevation(elevation float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.elevation = common.Clamp(elevation, cc.minElevation, cc.maxElevation)
	cc.updatePosition()
}

func (cc *cameraControllerImpl) MinElevation() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.minElevation
}

func (cc *cameraControllerImpl) MaxElevation() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.maxElevation
}

func (cc *cameraControllerImpl) OrbitSpeed() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.orbitSpeed
}

func (cc *cameraControllerImpl) MouseSensitivity() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.mouseSensitivity
}

func (cc *cameraControllerImpl) ZoomSpeed() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.zoomSpeed
}

// --- planarCameraController implementation ---

func (cc *cameraControllerImpl) PanRight(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	right, _, _ := cc.localAxes()
	cc.panDelta = cc.panDelta.Add(right.Mul(delta * cc.panSpeed))
}

func (cc *cameraControllerImpl) PanUp(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	_, up, _ := cc.localAxes()
	cc.panDelta = cc.panDelta.Add(up.Mul(delta * cc.panSpeed))
}

func (cc *cameraControllerImpl) PanForward(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	_, _, forward := cc.localAxes()
	forward[1] = 0
	if forward.Len() < 1e-8 {
		return
	}
	cc.panDelta = cc.panDelta.Add(forward.Normalize().Mul(delta * cc.panSpeed))
}

func (cc *cameraControllerImpl) Pan(dx, dy float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	right, up, _ := cc.localAxes()
	scale := cc.radius * cc.mouseSensitivity * cc.panSpeed * 0.2
	cc.panDelta = cc.panDelta.Add(right.Mul(-dx * scale)).Add(up.Mul(dy * scale))
}

func (cc *cameraControllerImpl) PanSpeed() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.panSpeed
}
