package picking

import (
	"math/rand/v2"

	"github.com/Carmen-Shannon/oxy-demos/common"
	"github.com/Carmen-Shannon/oxy-demos/engine/camera"
	"github.com/Carmen-Shannon/oxy-demos/engine/game_object"
	"github.com/Carmen-Shannon/oxy-demos/engine/logging"
	"github.com/Carmen-Shannon/oxy-demos/engine/model"
	"github.com/Carmen-Shannon/oxy-demos/engine/tween"
	"go.uber.org/zap"
)

// noFace marks an empty hover record.
const noFace = -1

// HoverAnimator flashes the face under the pointer. Entering a face starts one ease-out tween
// from a random color back to the base color on that face's three vertices; staying on the face
// does nothing, and leaving the mesh clears the record so re-entering fires again.
type HoverAnimator struct {
	target    game_object.GameObject
	raycaster *Raycaster
	tweens    *tween.Group
	rng       *rand.Rand
	baseColor common.Color
	duration  float32
	logger    *zap.Logger

	lastFace int
}

// NewHoverAnimator creates an animator for one mesh. The mesh's model must carry vertex colors.
//
// Parameters:
//   - target: the mesh to pick against
//   - options: functional options to configure the animator
//
// Returns:
//   - *HoverAnimator: the animator
func NewHoverAnimator(target game_object.GameObject, options ...HoverAnimatorBuilderOption) *HoverAnimator {
	if target == nil || target.Model() == nil {
		panic("picking: hover animator requires a mesh with a model")
	}
	h := &HoverAnimator{
		target:    target,
		raycaster: NewRaycaster(),
		baseColor: common.White,
		duration:  0.5,
		logger:    zap.NewNop(),
		tweens:    tween.NewGroup(),
		lastFace:  noFace,
	}
	for _, opt := range options {
		opt(h)
	}
	if h.rng == nil {
		h.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	h.logger = logging.OrNop(h.logger).Named("hover")
	return h
}

// Update advances running tweens by dt, then picks at the pointer.
//
// Parameters:
//   - cam: the camera to cast from
//   - pointer: the pointer; nothing is picked until it has moved over the viewport
//   - dt: seconds since the previous frame
//
// Returns:
//   - bool: true if a new tween was started this call
func (h *HoverAnimator) Update(cam camera.Camera, pointer *Pointer, dt float32) bool {
	h.tweens.Update(dt)

	x, y, ok := pointer.NDC()
	if !ok {
		return false
	}
	h.raycaster.SetFromCamera(x, y, cam)
	return h.Pick(h.raycaster.IntersectObject(h.target, false))
}

// Pick applies one frame's intersections to the hover record.
//
// Parameters:
//   - hits: intersections sorted nearest first
//
// Returns:
//   - bool: true if a new tween was started
func (h *HoverAnimator) Pick(hits []Hit) bool {
	if len(hits) == 0 {
		h.lastFace = noFace
		return false
	}
	face := hits[0].Face
	if face == h.lastFace {
		return false
	}
	h.lastFace = face

	from := common.RandomColor(h.rng)
	m := h.target.Model()
	h.tweens.Add(tween.Color(from, h.baseColor, h.duration, func(c common.Color) {
		paintFace(m, face, c.Vec3())
	}, tween.WithEasing(tween.EaseOutQuad)))
	h.logger.Debug("face entered", zap.Int("face", face), zap.Stringer("from", from))
	return true
}

// LastFace returns the face recorded by the last pick.
func (h *HoverAnimator) LastFace() (int, bool) {
	return h.lastFace, h.lastFace != noFace
}

// ActiveTweens returns the number of running color tweens.
func (h *HoverAnimator) ActiveTweens() int {
	return h.tweens.Len()
}

// Reset drops running tweens and the hover record. Call it after the geometry is regenerated.
func (h *HoverAnimator) Reset() {
	h.tweens.Clear()
	h.lastFace = noFace
}

// paintFace writes a color to a triangle's vertices and marks the colors dirty. Faces outside the
// current geometry are ignored.
func paintFace(m model.Model, face int, rgb [3]float32) {
	b := m.Buffers()
	if face < 0 || face >= b.TriangleCount() || len(b.Colors) != len(b.Positions) {
		return
	}
	for k := range 3 {
		b.SetColor(int(b.Indices[face*3+k]), rgb)
	}
	m.MarkDirty(model.DirtyColors)
}
