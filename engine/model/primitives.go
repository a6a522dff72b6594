package model

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// geometryBuilder accumulates vertices for the primitive generators.
type geometryBuilder struct {
	b Buffers
}

func (g *geometryBuilder) vertex(p, n mgl32.Vec3, u, v float32) uint32 {
	idx := uint32(len(g.b.Positions) / 3)
	g.b.Positions = append(g.b.Positions, p[0], p[1], p[2])
	g.b.Normals = append(g.b.Normals, n[0], n[1], n[2])
	g.b.UVs = append(g.b.UVs, u, v)
	return idx
}

func (g *geometryBuilder) triangle(a, b, c uint32) {
	g.b.Indices = append(g.b.Indices, a, b, c)
}

// quad appends four corners wound counter-clockwise around n.
func (g *geometryBuilder) quad(p0, p1, p2, p3, n mgl32.Vec3, uvScale float32) {
	a := g.vertex(p0, n, p0[0]*uvScale, -p0[1]*uvScale)
	b := g.vertex(p1, n, p1[0]*uvScale, -p1[1]*uvScale)
	c := g.vertex(p2, n, p2[0]*uvScale, -p2[1]*uvScale)
	d := g.vertex(p3, n, p3[0]*uvScale, -p3[1]*uvScale)
	g.triangle(a, b, c)
	g.triangle(a, c, d)
}

func (g *geometryBuilder) grid(start uint32, gridX, gridY int) {
	row := uint32(gridX + 1)
	for iy := range gridY {
		for ix := range gridX {
			a := start + uint32(ix) + row*uint32(iy)
			b := start + uint32(ix) + row*uint32(iy+1)
			c := start + uint32(ix+1) + row*uint32(iy+1)
			d := start + uint32(ix+1) + row*uint32(iy)
			g.triangle(a, b, d)
			g.triangle(b, c, d)
		}
	}
}

func (g *geometryBuilder) buffers() *Buffers {
	out := g.b
	return &out
}

func atLeast(v, lo int) int {
	if v < lo {
		return lo
	}
	return v
}

// PlaneGeometry builds a width x height rectangle in the XY plane facing +Z, split into
// widthSegments x heightSegments cells. Vertices are laid out row by row from the top-left
// corner, so vertex (ix, iy) sits at index iy*(widthSegments+1)+ix.
//
// Parameters:
//   - width, height: extent along X and Y
//   - widthSegments, heightSegments: cell counts, at least 1
//
// Returns:
//   - *Buffers: (widthSegments+1)*(heightSegments+1) vertices and 6 indices per cell
func PlaneGeometry(width, height float32, widthSegments, heightSegments int) *Buffers {
	gridX := atLeast(widthSegments, 1)
	gridY := atLeast(heightSegments, 1)
	segW := width / float32(gridX)
	segH := height / float32(gridY)

	g := &geometryBuilder{}
	normal := mgl32.Vec3{0, 0, 1}
	for iy := 0; iy <= gridY; iy++ {
		y := float32(iy)*segH - height/2
		for ix := 0; ix <= gridX; ix++ {
			x := float32(ix)*segW - width/2
			g.vertex(mgl32.Vec3{x, -y, 0}, normal, float32(ix)/float32(gridX), float32(iy)/float32(gridY))
		}
	}
	g.grid(0, gridX, gridY)
	return g.buffers()
}

// BoxGeometry builds an axis-aligned box centered on the origin. Each face has its own vertices
// so normals stay flat.
//
// Parameters:
//   - width, height, depth: extent along X, Y and Z
//   - widthSegments, heightSegments, depthSegments: cell counts per axis, at least 1
//
// Returns:
//   - *Buffers: the box geometry
func BoxGeometry(width, height, depth float32, widthSegments, heightSegments, depthSegments int) *Buffers {
	ws := atLeast(widthSegments, 1)
	hs := atLeast(heightSegments, 1)
	ds := atLeast(depthSegments, 1)

	g := &geometryBuilder{}
	g.boxSide(2, 1, 0, -1, -1, depth, height, width, ds, hs)
	g.boxSide(2, 1, 0, 1, -1, depth, height, -width, ds, hs)
	g.boxSide(0, 2, 1, 1, 1, width, depth, height, ws, ds)
	g.boxSide(0, 2, 1, 1, -1, width, depth, -height, ws, ds)
	g.boxSide(0, 1, 2, 1, -1, width, height, depth, ws, hs)
	g.boxSide(0, 1, 2, -1, -1, width, height, -depth, ws, hs)
	return g.buffers()
}

// boxSide emits one face of a box. u, v and w are axis indices; the face lies at w = depth/2
// with its normal along the sign of depth.
func (g *geometryBuilder) boxSide(u, v, w int, udir, vdir, width, height, depth float32, gridX, gridY int) {
	start := uint32(len(g.b.Positions) / 3)
	segW := width / float32(gridX)
	segH := height / float32(gridY)

	var normal mgl32.Vec3
	if depth > 0 {
		normal[w] = 1
	} else {
		normal[w] = -1
	}
	for iy := 0; iy <= gridY; iy++ {
		y := float32(iy)*segH - height/2
		for ix := 0; ix <= gridX; ix++ {
			x := float32(ix)*segW - width/2
			var p mgl32.Vec3
			p[u] = x * udir
			p[v] = y * vdir
			p[w] = depth / 2
			g.vertex(p, normal, float32(ix)/float32(gridX), float32(iy)/float32(gridY))
		}
	}
	g.grid(start, gridX, gridY)
}

// SphereGeometry builds a UV sphere centered on the origin.
//
// Parameters:
//   - radius: sphere radius
//   - widthSegments: segments around the Y axis, at least 3
//   - heightSegments: segments from pole to pole, at least 2
//
// Returns:
//   - *Buffers: the sphere geometry
func SphereGeometry(radius float32, widthSegments, heightSegments int) *Buffers {
	ws := atLeast(widthSegments, 3)
	hs := atLeast(heightSegments, 2)

	g := &geometryBuilder{}
	rows := make([][]uint32, hs+1)
	for iy := 0; iy <= hs; iy++ {
		v := float32(iy) / float32(hs)
		var uOffset float32
		switch iy {
		case 0:
			uOffset = 0.5 / float32(ws)
		case hs:
			uOffset = -0.5 / float32(ws)
		}
		theta := v * math32.Pi
		for ix := 0; ix <= ws; ix++ {
			u := float32(ix) / float32(ws)
			phi := u * 2 * math32.Pi
			p := mgl32.Vec3{
				-radius * math32.Cos(phi) * math32.Sin(theta),
				radius * math32.Cos(theta),
				radius * math32.Sin(phi) * math32.Sin(theta),
			}
			n := p
			if n.Len() > 0 {
				n = n.Normalize()
			}
			rows[iy] = append(rows[iy], g.vertex(p, n, u+uOffset, v))
		}
	}
	for iy := range hs {
		for ix := range ws {
			a := rows[iy][ix+1]
			b := rows[iy][ix]
			c := rows[iy+1][ix]
			d := rows[iy+1][ix+1]
			if iy != 0 {
				g.triangle(a, b, d)
			}
			if iy != hs-1 {
				g.triangle(b, c, d)
			}
		}
	}
	return g.buffers()
}

// TorusGeometry builds a torus in the XY plane around the Z axis.
//
// Parameters:
//   - radius: distance from the center to the middle of the tube
//   - tube: tube radius
//   - radialSegments: segments around the tube, at least 2
//   - tubularSegments: segments around the ring, at least 3
//
// Returns:
//   - *Buffers: the torus geometry
func TorusGeometry(radius, tube float32, radialSegments, tubularSegments int) *Buffers {
	rs := atLeast(radialSegments, 2)
	ts := atLeast(tubularSegments, 3)

	g := &geometryBuilder{}
	for j := 0; j <= rs; j++ {
		for i := 0; i <= ts; i++ {
			u := float32(i) / float32(ts) * 2 * math32.Pi
			v := float32(j) / float32(rs) * 2 * math32.Pi
			p := mgl32.Vec3{
				(radius + tube*math32.Cos(v)) * math32.Cos(u),
				(radius + tube*math32.Cos(v)) * math32.Sin(u),
				tube * math32.Sin(v),
			}
			center := mgl32.Vec3{radius * math32.Cos(u), radius * math32.Sin(u), 0}
			g.vertex(p, p.Sub(center).Normalize(), float32(i)/float32(ts), float32(j)/float32(rs))
		}
	}
	row := uint32(ts + 1)
	for j := 1; j <= rs; j++ {
		for i := 1; i <= ts; i++ {
			a := row*uint32(j) + uint32(i-1)
			b := row*uint32(j-1) + uint32(i-1)
			c := row*uint32(j-1) + uint32(i)
			d := row*uint32(j) + uint32(i)
			g.triangle(a, b, d)
			g.triangle(b, c, d)
		}
	}
	return g.buffers()
}

// CylinderGeometry builds a capped cylinder or frustum along the Y axis, centered on the origin.
// A zero radius skips that cap.
//
// Parameters:
//   - radiusTop, radiusBottom: radii at +height/2 and -height/2
//   - height: extent along Y
//   - radialSegments: segments around the Y axis, at least 3
//   - heightSegments: rows along Y, at least 1
//
// Returns:
//   - *Buffers: the cylinder geometry
func CylinderGeometry(radiusTop, radiusBottom, height float32, radialSegments, heightSegments int) *Buffers {
	rs := atLeast(radialSegments, 3)
	hs := atLeast(heightSegments, 1)
	half := height / 2
	slope := (radiusBottom - radiusTop) / height

	g := &geometryBuilder{}
	rows := make([][]uint32, hs+1)
	for y := 0; y <= hs; y++ {
		v := float32(y) / float32(hs)
		r := v*(radiusBottom-radiusTop) + radiusTop
		for x := 0; x <= rs; x++ {
			u := float32(x) / float32(rs)
			sin, cos := math32.Sincos(u * 2 * math32.Pi)
			p := mgl32.Vec3{r * sin, -v*height + half, r * cos}
			n := mgl32.Vec3{sin, slope, cos}.Normalize()
			rows[y] = append(rows[y], g.vertex(p, n, u, v))
		}
	}
	for x := range rs {
		for y := range hs {
			a := rows[y][x]
			b := rows[y+1][x]
			c := rows[y+1][x+1]
			d := rows[y][x+1]
			g.triangle(a, b, d)
			g.triangle(b, c, d)
		}
	}
	if radiusTop > 0 {
		g.cylinderCap(radiusTop, half, rs, true)
	}
	if radiusBottom > 0 {
		g.cylinderCap(radiusBottom, half, rs, false)
	}
	return g.buffers()
}

func (g *geometryBuilder) cylinderCap(radius, half float32, rs int, top bool) {
	sign := float32(-1)
	if top {
		sign = 1
	}
	normal := mgl32.Vec3{0, sign, 0}

	centers := uint32(len(g.b.Positions) / 3)
	for range rs {
		g.vertex(mgl32.Vec3{0, half * sign, 0}, normal, 0.5, 0.5)
	}
	rim := uint32(len(g.b.Positions) / 3)
	for x := 0; x <= rs; x++ {
		u := float32(x) / float32(rs)
		sin, cos := math32.Sincos(u * 2 * math32.Pi)
		g.vertex(mgl32.Vec3{radius * sin, half * sign, radius * cos}, normal, cos*0.5+0.5, sin*0.5*sign+0.5)
	}
	for x := range uint32(rs) {
		c := centers + x
		i := rim + x
		if top {
			g.triangle(i, i+1, c)
		} else {
			g.triangle(i+1, i, c)
		}
	}
}

// ConeGeometry builds a cone along the Y axis with its apex at +height/2.
//
// Parameters:
//   - radius: base radius
//   - height: extent along Y
//   - radialSegments: segments around the Y axis, at least 3
//
// Returns:
//   - *Buffers: the cone geometry
func ConeGeometry(radius, height float32, radialSegments int) *Buffers {
	return CylinderGeometry(0, radius, height, radialSegments, 1)
}

// AxesGeometry builds three colored line segments from the origin along +X (red), +Y (green)
// and +Z (blue). Draw it with TopologyLines.
//
// Parameters:
//   - size: segment length
//
// Returns:
//   - *Buffers: six vertices with colors and no indices
func AxesGeometry(size float32) *Buffers {
	return &Buffers{
		Positions: []float32{
			0, 0, 0, size, 0, 0,
			0, 0, 0, 0, size, 0,
			0, 0, 0, 0, 0, size,
		},
		Colors: []float32{
			1, 0, 0, 1, 0, 0,
			0, 1, 0, 0, 1, 0,
			0, 0, 1, 0, 0, 1,
		},
	}
}

// InstanceBuffers allocates count zeroed instance records for TopologyInstancedQuads.
//
// Parameters:
//   - count: number of instances
//
// Returns:
//   - *Buffers: buffers holding only instance data
func InstanceBuffers(count int) *Buffers {
	return &Buffers{Instances: make([]float32, count*InstanceStride)}
}
