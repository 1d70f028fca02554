// Package physics is the rigid-body collaborator of the simulation: a small
// world of static walls, kinematic paddles and a dynamic ball, built on a
// resolv collision space.
package physics

import (
	"fmt"
	"math"
	"slices"

	"github.com/automoto/pong/shared/gamemath"
	"github.com/solarlune/resolv"
)

const (
	// spaceScale converts arena units to resolv space units. resolv registers
	// objects in whole-unit cells, so the arena is magnified to keep cell
	// lookups fine-grained.
	spaceScale = 10.0
	// cellSize is the resolv cell size in space units (one arena unit).
	cellSize = 10
	// contactSlop is the overlap in space units below which two boxes are
	// touching rather than interpenetrating.
	contactSlop = 1e-6
)

// World advances bodies once per Step. Arena coordinates are centered on the
// origin; the resolv space is offset so every body lives at positive
// coordinates.
type World struct {
	// MaxSpeed caps the speed of dynamic bodies. Zero disables the cap.
	MaxSpeed float64

	space  *resolv.Space
	bodies []*Body
	halfW  float64
	halfH  float64

	contacts   []Contact
	candidates []*Body
}

// NewWorld creates a world covering width x height arena units around the
// origin.
func NewWorld(width, height float64) *World {
	sw := int(math.Ceil(width * spaceScale))
	sh := int(math.Ceil(height * spaceScale))
	return &World{
		space: resolv.NewSpace(sw, sh, cellSize, cellSize),
		halfW: width / 2,
		halfH: height / 2,
	}
}

// AddBody registers a body with the world.
func (w *World) AddBody(b *Body) {
	if b.world != nil {
		panic(fmt.Sprintf("physics: %s body %q already in a world", b.Kind, b.Tag))
	}
	x, y := w.toSpace(b.position, b.Width, b.Height)
	obj := resolv.NewObject(x, y, b.Width*spaceScale, b.Height*spaceScale, b.Tag)
	obj.SetShape(resolv.NewRectangle(0, 0, b.Width*spaceScale, b.Height*spaceScale))
	obj.Data = b // Link for O(1) lookup

	b.object = obj
	b.world = w
	w.space.Add(obj)
	w.bodies = append(w.bodies, b)
}

// Bodies returns every body in insertion order.
func (w *World) Bodies() []*Body {
	return w.bodies
}

// SetKinematicTarget schedules a kinematic body to arrive at target on the
// next Step.
func (w *World) SetKinematicTarget(b *Body, target gamemath.Vec2) {
	w.mustOwn(b)
	if b.Kind != Kinematic {
		panic(fmt.Sprintf("physics: kinematic target on %s body %q", b.Kind, b.Tag))
	}
	b.target = target
	b.hasTarget = true
}

// ApplyImpulse changes a dynamic body's velocity by impulse / mass.
func (w *World) ApplyImpulse(b *Body, impulse gamemath.Vec2) {
	w.mustOwn(b)
	if b.Kind != Dynamic {
		return
	}
	mass := b.Mass
	if mass <= 0 {
		mass = 1
	}
	b.velocity = b.velocity.Add(impulse.Scale(1 / mass)).ClampLen(w.MaxSpeed)
}

// SetPosition teleports a body. Any pending kinematic target is dropped.
func (w *World) SetPosition(b *Body, p gamemath.Vec2) {
	w.mustOwn(b)
	b.position = p
	b.hasTarget = false
	w.sync(b)
}

// SetVelocity overwrites a body's velocity.
func (w *World) SetVelocity(b *Body, v gamemath.Vec2) {
	w.mustOwn(b)
	b.velocity = v
}

// Step advances the world by dt seconds and returns the contacts produced.
// The returned slice is reused by the next Step.
func (w *World) Step(dt float64) []Contact {
	w.contacts = w.contacts[:0]

	for _, b := range w.bodies {
		if b.Kind != Kinematic {
			continue
		}
		if !b.hasTarget {
			b.velocity = gamemath.Zero
			continue
		}
		if dt > 0 {
			b.velocity = b.target.Sub(b.position).Scale(1 / dt)
		}
		b.position = b.target
		b.hasTarget = false
		w.sync(b)
	}

	for _, b := range w.bodies {
		if b.Kind == Dynamic {
			w.integrate(b, dt)
		}
	}

	return w.contacts
}

func (w *World) integrate(b *Body, dt float64) {
	if dt <= 0 {
		return
	}

	w.separate(b)

	if dx := b.velocity.X * dt * spaceScale; dx != 0 {
		move, other := w.sweep(b, dx, 0)
		b.object.X += move
		if other != nil {
			w.reflect(b, other, gamemath.Vec2{X: -sign(dx)})
		}
	}

	if dy := b.velocity.Y * dt * spaceScale; dy != 0 {
		move, other := w.sweep(b, 0, dy)
		b.object.Y += move
		if other != nil {
			w.reflect(b, other, gamemath.Vec2{Y: -sign(dy)})
		}
	}

	b.object.Update()
	b.position = w.fromSpace(b.object.X, b.object.Y, b.Width, b.Height)
	b.velocity = b.velocity.ClampLen(w.MaxSpeed)
}

// separate pushes a dynamic body out of every body it overlaps along the
// axis of least penetration. Paddles go first so a ball squeezed against a
// wall always ends up on the court side of it.
func (w *World) separate(b *Body) {
	for _, kind := range []BodyKind{Kinematic, Static} {
		for _, other := range w.nearby(b, 0, 0) {
			if other.Kind != kind {
				continue
			}
			a, o := b.object, other.object
			px := min(a.X+a.W, o.X+o.W) - max(a.X, o.X)
			py := min(a.Y+a.H, o.Y+o.H) - max(a.Y, o.Y)
			if px <= contactSlop || py <= contactSlop {
				continue
			}

			var normal gamemath.Vec2
			if px < py {
				normal.X = away(a.X+a.W/2, o.X+o.W/2)
				a.X += normal.X * px
			} else {
				normal.Y = away(a.Y+a.H/2, o.Y+o.H/2)
				a.Y += normal.Y * py
			}
			if b.velocity.X*normal.X+b.velocity.Y*normal.Y < 0 {
				w.reflect(b, other, normal)
			}
		}
	}
}

// sweep returns how far the body may move along one axis in space units and
// the body it stops against, if any. Exactly one of dx and dy is non-zero.
func (w *World) sweep(b *Body, dx, dy float64) (float64, *Body) {
	a := b.object
	move := dx + dy

	var hit *Body
	for _, other := range w.nearby(b, dx, dy) {
		o := other.object

		var gap float64
		var ahead bool
		if dx != 0 {
			if !spans(a.Y, a.H, o.Y, o.H) {
				continue
			}
			gap, ahead = approach(a.X, a.W, o.X, o.W, dx)
		} else {
			if !spans(a.X, a.W, o.X, o.W) {
				continue
			}
			gap, ahead = approach(a.Y, a.H, o.Y, o.H, dy)
		}
		if !ahead || math.Abs(gap) > math.Abs(dx+dy) {
			continue
		}
		if hit == nil || math.Abs(gap) < math.Abs(move) {
			move, hit = gap, other
		}
	}
	return move, hit
}

// nearby returns the bodies registered in the cells b's box covers when
// swept by (dx, dy). The box is padded by one space unit because resolv
// registers an object only up to one unit short of its far edges. The slice
// is reused by the next call.
func (w *World) nearby(b *Body, dx, dy float64) []*Body {
	a := b.object
	cx, cy := w.space.WorldToSpace(min(a.X, a.X+dx)-1, min(a.Y, a.Y+dy)-1)
	ex, ey := w.space.WorldToSpace(max(a.X+a.W, a.X+a.W+dx)+1, max(a.Y+a.H, a.Y+a.H+dy)+1)

	w.candidates = w.candidates[:0]
	for y := cy; y <= ey; y++ {
		for x := cx; x <= ex; x++ {
			cell := w.space.Cell(x, y)
			if cell == nil {
				continue
			}
			for _, obj := range cell.Objects {
				other, ok := obj.Data.(*Body)
				if !ok || other == b || slices.Contains(w.candidates, other) {
					continue
				}
				w.candidates = append(w.candidates, other)
			}
		}
	}
	return w.candidates
}

// reflect bounces b off other along normal and records the contact.
func (w *World) reflect(b, other *Body, normal gamemath.Vec2) {
	if normal.X != 0 {
		b.velocity.X = -b.velocity.X * bounce(b, other)
	} else {
		b.velocity.Y = -b.velocity.Y * bounce(b, other)
	}
	w.contacts = append(w.contacts, Contact{Body: b, Other: other, Normal: normal})
}

func (w *World) sync(b *Body) {
	b.object.X, b.object.Y = w.toSpace(b.position, b.Width, b.Height)
	b.object.Update()
}

func (w *World) toSpace(center gamemath.Vec2, width, height float64) (float64, float64) {
	x := (center.X - width/2 + w.halfW) * spaceScale
	y := (center.Y - height/2 + w.halfH) * spaceScale
	return x, y
}

func (w *World) fromSpace(x, y, width, height float64) gamemath.Vec2 {
	return gamemath.Vec2{
		X: x/spaceScale - w.halfW + width/2,
		Y: y/spaceScale - w.halfH + height/2,
	}
}

func (w *World) mustOwn(b *Body) {
	if b == nil || b.world != w {
		panic("physics: body does not belong to this world")
	}
}

// spans reports whether [pos, pos+size] and [opos, opos+osize] overlap by
// more than contactSlop.
func spans(pos, size, opos, osize float64) bool {
	return pos < opos+osize-contactSlop && pos+size > opos+contactSlop
}

// approach returns the signed distance [pos, pos+size] may travel along d
// before touching [opos, opos+osize]. ahead is false when the other segment
// is not in front of the moving one.
func approach(pos, size, opos, osize, d float64) (gap float64, ahead bool) {
	if d > 0 {
		gap = opos - (pos + size)
		if gap < -contactSlop {
			return 0, false
		}
		return max(gap, 0), true
	}
	gap = opos + osize - pos
	if gap > contactSlop {
		return 0, false
	}
	return min(gap, 0), true
}

func away(center, otherCenter float64) float64 {
	if center < otherCenter {
		return -1
	}
	return 1
}

// bounce averages the restitution of both bodies.
func bounce(a, b *Body) float64 {
	return (a.Restitution + b.Restitution) / 2
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
