package scene

import (
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

type group struct {
	mu *sync.RWMutex

	nextID   uint64
	children []Plane
	yaw      float32
}

// Group is an append-only, ordered container of planes sharing a rotation about
// the world Y axis. Children can be added from any goroutine while another reads
// snapshots; there is no removal path.
type Group interface {
	// Add appends a fully constructed plane and assigns it the next ID.
	//
	// Parameters:
	//   - p: the plane to append
	//
	// Returns:
	//   - uint64: the assigned plane ID, starting at 1
	Add(p Plane) uint64

	// Snapshot returns the children present at the time of the call, in insertion order.
	// Planes added afterwards are not included.
	//
	// Returns:
	//   - []Plane: a copy of the child list
	Snapshot() []Plane

	// Len returns the number of children.
	Len() int

	// Yaw returns the group's rotation about the Y axis in radians, in [0, 2pi).
	Yaw() float32

	// SetYaw sets the group's rotation about the Y axis, wrapped into [0, 2pi).
	//
	// Parameters:
	//   - yaw: angle in radians
	SetYaw(yaw float32)

	// RotateY adds delta to the group's yaw.
	//
	// Parameters:
	//   - delta: angle in radians
	RotateY(delta float32)

	// Quaternion returns the group's world orientation.
	Quaternion() mgl32.Quat

	// WorldMatrix returns the group's world transform.
	WorldMatrix() mgl32.Mat4
}

var _ Group = &group{}

// NewGroup creates an empty group with zero yaw.
//
// Returns:
//   - Group: the newly created group
func NewGroup() Group {
	return &group{
		mu:     &sync.RWMutex{},
		nextID: 1,
	}
}

func (g *group) Add(p Plane) uint64 {
	if p == nil {
		panic("cannot add a nil plane to a group")
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	id := g.nextID
	g.nextID++
	p.SetID(id)
	g.children = append(g.children, p)
	return id
}

func (g *group) Snapshot() []Plane {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]Plane, len(g.children))
	copy(out, g.children)
	return out
}

func (g *group) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.children)
}

func (g *group) Yaw() float32 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.yaw
}

func (g *group) SetYaw(yaw float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.yaw = wrapAngle(yaw)
}

func (g *group) RotateY(delta float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.yaw = wrapAngle(g.yaw + delta)
}

func (g *group) Quaternion() mgl32.Quat {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return mgl32.QuatRotate(g.yaw, mgl32.Vec3{0, 1, 0})
}

func (g *group) WorldMatrix() mgl32.Mat4 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return mgl32.HomogRotate3DY(g.yaw)
}

func wrapAngle(a float32) float32 {
	w := float32(math.Mod(float64(a), 2*math.Pi))
	if w < 0 {
		w += 2 * math.Pi
	}
	return w
}
