package light

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Orbit maps elapsed seconds to a world-space position. Orbits are pure functions of the clock so
// a light's position never depends on frame history.
type Orbit func(t float32) mgl32.Vec3

// CircleOrbit is a horizontal circle of the given radius and angular speed whose height bobs as
// sin(bob*t).
func CircleOrbit(radius, speed, bob float32) Orbit {
	return func(t float32) mgl32.Vec3 {
		a := speed * t
		return mgl32.Vec3{radius * math32.Cos(a), math32.Sin(bob * t), radius * math32.Sin(a)}
	}
}

// WanderOrbit circles in the opposite direction with a height that mixes two frequencies.
func WanderOrbit(radius, speed float32) Orbit {
	return func(t float32) mgl32.Vec3 {
		a := speed * t
		return mgl32.Vec3{radius * math32.Cos(a), math32.Sin(4*t) + math32.Sin(2.5*t), radius * math32.Sin(a)}
	}
}

// BreathingOrbit is a WanderOrbit whose x and z radii pulse independently around radius.
func BreathingOrbit(radius, speed float32) Orbit {
	return func(t float32) mgl32.Vec3 {
		a := speed * t
		return mgl32.Vec3{
			(radius + math32.Sin(0.32*t)) * math32.Cos(a),
			math32.Sin(4*t) + math32.Sin(2.5*t),
			(radius + math32.Sin(0.5*t)) * math32.Sin(a),
		}
	}
}

// GhostOrbits returns the three haunted-house ghost paths.
func GhostOrbits() [3]Orbit {
	return [3]Orbit{
		CircleOrbit(4, 0.5, 3),
		WanderOrbit(5, -0.32),
		BreathingOrbit(7, -0.18),
	}
}

// Orbiter moves a light along an Orbit.
type Orbiter struct {
	Light Light
	Path  Orbit
}

// Update recomputes the light position for elapsed time t.
func (o Orbiter) Update(t float32) {
	o.Light.SetPosition(o.Path(t))
}
