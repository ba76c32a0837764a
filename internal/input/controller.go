// Package input maps held keys onto the velocities of a motion.Movement.
package input

import (
	"time"

	"github.com/charmbracelet/harmonica"

	"github.com/taigrr/gravel3d/pkg/math3d"
	"github.com/taigrr/gravel3d/pkg/motion"
)

// Key names shared by every front end.
const (
	KeyForward   = "w"
	KeyBackward  = "s"
	KeyLeft      = "a"
	KeyRight     = "d"
	KeyRise      = "space"
	KeySink      = "c"
	KeyLookUp    = "up"
	KeyLookDown  = "down"
	KeyTurnLeft  = "left"
	KeyTurnRight = "right"
)

// WalkKeys returns the linear velocity each walk key contributes.
func WalkKeys(speed float64) map[string]math3d.Vec3 {
	return map[string]math3d.Vec3{
		KeyForward:  math3d.V3(0, 0, speed),
		KeyBackward: math3d.V3(0, 0, -speed),
		KeyLeft:     math3d.V3(-speed, 0, 0),
		KeyRight:    math3d.V3(speed, 0, 0),
		KeyRise:     math3d.V3(0, speed, 0),
		KeySink:     math3d.V3(0, -speed, 0),
	}
}

// TurnKeys returns the angular velocity each turn key contributes.
func TurnKeys(speed float64) map[string]math3d.Vec3 {
	return map[string]math3d.Vec3{
		KeyLookUp:    math3d.V3(-speed, 0, 0),
		KeyLookDown:  math3d.V3(speed, 0, 0),
		KeyTurnLeft:  math3d.V3(0, speed, 0),
		KeyTurnRight: math3d.V3(0, -speed, 0),
	}
}

// Option configures a Controller.
type Option func(*Controller)

// WithSmoothing eases the movement's velocities toward the held keys'
// total with a critically damped (damping 1) or springy spring, stepped
// once per Update at the given tick rate.
func WithSmoothing(fps int, frequency, damping float64) Option {
	return func(c *Controller) {
		c.smooth = true
		c.spring = harmonica.NewSpring(harmonica.FPS(fps), frequency, damping)
	}
}

// WithReleaseAfter releases a held key that has not been pressed again for
// d. Terminals without key release events repeat presses while a key is
// held, so this stands in for the missing release.
func WithReleaseAfter(d time.Duration) Option {
	return func(c *Controller) {
		c.releaseAfter = d
	}
}

// Controller adds a fixed vector to a movement's velocity while a key is
// held and removes it on release. Repeated presses of a held key are
// ignored.
type Controller struct {
	Movement *motion.Movement

	walk map[string]math3d.Vec3
	turn map[string]math3d.Vec3
	held map[string]time.Duration // Key -> time since last press

	releaseAfter time.Duration

	smooth   bool
	spring   harmonica.Spring
	velocity math3d.Vec3 // Target velocities when smoothing
	angular  math3d.Vec3
	velAccel [3]float64 // Spring state per axis
	angAccel [3]float64
}

// NewController creates a controller driving m with the default key maps.
func NewController(m *motion.Movement, walkSpeed, turnSpeed float64, opts ...Option) *Controller {
	c := &Controller{
		Movement: m,
		walk:     WalkKeys(walkSpeed),
		turn:     TurnKeys(turnSpeed),
		held:     make(map[string]time.Duration),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Handles reports whether key is mapped.
func (c *Controller) Handles(key string) bool {
	_, walk := c.walk[key]
	_, turn := c.turn[key]
	return walk || turn
}

// Held reports whether key is currently held.
func (c *Controller) Held(key string) bool {
	_, ok := c.held[key]
	return ok
}

// KeyDown starts applying key's vector. It returns false for unmapped keys
// and for repeats of a key already held.
func (c *Controller) KeyDown(key string) bool {
	if !c.Handles(key) {
		return false
	}
	if _, ok := c.held[key]; ok {
		c.held[key] = 0
		return false
	}
	c.held[key] = 0
	c.apply(key, 1)
	return true
}

// KeyUp stops applying key's vector. It returns false if key was not held.
func (c *Controller) KeyUp(key string) bool {
	if _, ok := c.held[key]; !ok {
		return false
	}
	delete(c.held, key)
	c.apply(key, -1)
	return true
}

// ReleaseAll releases every held key.
func (c *Controller) ReleaseAll() {
	for key := range c.held {
		c.KeyUp(key)
	}
}

func (c *Controller) apply(key string, sign float64) {
	lin := c.walk[key].Scale(sign)
	ang := c.turn[key].Scale(sign)

	if c.smooth {
		c.velocity = c.velocity.Add(lin)
		c.angular = c.angular.Add(ang)
		return
	}
	c.Movement.Velocity = c.Movement.Velocity.Add(lin)
	c.Movement.AngularVelocity = c.Movement.AngularVelocity.Add(ang)
}

// Update ages held keys and, when smoothing, steps the springs.
func (c *Controller) Update(dt time.Duration) {
	if c.releaseAfter > 0 {
		for key, age := range c.held {
			age += dt
			if age > c.releaseAfter {
				c.KeyUp(key)
				continue
			}
			c.held[key] = age
		}
	}

	if c.smooth {
		c.Movement.Velocity = c.step(c.Movement.Velocity, c.velocity, &c.velAccel)
		c.Movement.AngularVelocity = c.step(c.Movement.AngularVelocity, c.angular, &c.angAccel)
	}
}

func (c *Controller) step(current, target math3d.Vec3, accel *[3]float64) math3d.Vec3 {
	current.X, accel[0] = c.spring.Update(current.X, accel[0], target.X)
	current.Y, accel[1] = c.spring.Update(current.Y, accel[1], target.Y)
	current.Z, accel[2] = c.spring.Update(current.Z, accel[2], target.Z)
	return current
}
