// Package scene ties members, per-tick components and a camera together.
//
// A Scene is single-writer: Update, Render and Exclusive serialize on one
// lock, so input handlers running on other goroutines go through Exclusive
// to touch anything the tick reads.
package scene

import (
	"image/color"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/taigrr/gravel3d/pkg/models"
	"github.com/taigrr/gravel3d/pkg/render"
	"github.com/taigrr/gravel3d/pkg/shading"
)

// Updater is advanced once per tick by the time elapsed since the previous
// tick. Updaters run under the scene lock and must not call back into the
// Scene.
type Updater interface {
	Update(dt time.Duration)
}

// Canvas is a surface the scene can clear before painting.
type Canvas interface {
	render.Surface
	Clear(c color.RGBA)
}

// Option configures a Scene.
type Option func(*Scene)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(s *Scene) {
		s.log = l
	}
}

// WithClock replaces time.Now as the source of tick timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Scene) {
		s.now = now
	}
}

// WithMaxStep caps the step a single Update advances by, so a stalled
// process does not teleport moving members.
func WithMaxStep(d time.Duration) Option {
	return func(s *Scene) {
		s.maxStep = d
	}
}

// WithAmbient sets the ambient light level.
func WithAmbient(ambient float64) Option {
	return func(s *Scene) {
		s.env.Ambient = ambient
	}
}

// Scene is one camera looking at an ordered list of members.
type Scene struct {
	mu sync.Mutex

	camera     *render.Camera
	members    []models.Transform
	components []Updater
	sky        color.RGBA
	env        shading.Environment

	now     func() time.Time
	last    time.Time // Zero until the first Update
	maxStep time.Duration

	log       *zap.Logger
	lastStats render.FrameStats
}

// New creates a scene whose camera renders onto a surface width pixels
// wide. The camera's frame is appended to members so components can move
// it like any other member.
func New(width int, focal float64, members []models.Transform, sky color.RGBA, opts ...Option) *Scene {
	s := &Scene{
		camera: render.NewCamera(width, focal),
		sky:    sky,
		now:    time.Now,
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.members = make([]models.Transform, 0, len(members)+1)
	s.members = append(s.members, members...)
	s.members = append(s.members, s.camera.Frame)

	s.log.Debug("scene created",
		zap.Int("members", len(s.members)),
		zap.Int("width", width),
		zap.Float64("focal", focal),
	)
	return s
}

// Camera returns the scene camera. Mutate it only inside Exclusive once
// the scene is running.
func (s *Scene) Camera() *render.Camera {
	return s.camera
}

// Sky returns the background color.
func (s *Scene) Sky() color.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sky
}

// SetSky changes the background color.
func (s *Scene) SetSky(c color.RGBA) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sky = c
}

// Environment returns the lighting context handed to shaders.
func (s *Scene) Environment() shading.Environment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.env
}

// Add appends a member.
func (s *Scene) Add(t models.Transform) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.members = append(s.members, t)
	s.log.Debug("member added", zap.Int("members", len(s.members)))
}

// Remove deletes the first occurrence of a member. It reports whether the
// member was found.
func (s *Scene) Remove(t models.Transform) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.Index(s.members, t)
	if i < 0 {
		return false
	}
	s.members = slices.Delete(s.members, i, i+1)
	s.log.Debug("member removed", zap.Int("members", len(s.members)))
	return true
}

// Members returns a snapshot of the member list.
func (s *Scene) Members() []models.Transform {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.members)
}

// Attach registers a component to be updated every tick, after the
// members.
func (s *Scene) Attach(u Updater) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.components = append(s.components, u)
	s.log.Debug("component attached", zap.Int("components", len(s.components)))
}

// Detach unregisters a component. It reports whether it was attached.
func (s *Scene) Detach(u Updater) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.Index(s.components, u)
	if i < 0 {
		return false
	}
	s.components = slices.Delete(s.components, i, i+1)
	s.log.Debug("component detached", zap.Int("components", len(s.components)))
	return true
}

// LightSources returns the members that emit light, in member order.
func (s *Scene) LightSources() []models.LightSource {
	s.mu.Lock()
	defer s.mu.Unlock()
	var lights []models.LightSource
	for _, m := range s.members {
		if l, ok := m.(models.LightSource); ok {
			lights = append(lights, l)
		}
	}
	return lights
}

// Update advances every member that implements Updater and then every
// attached component by the time since the previous call, capped by
// WithMaxStep. The first call advances by zero. It returns the step used.
func (s *Scene) Update() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	var dt time.Duration
	if !s.last.IsZero() {
		dt = now.Sub(s.last)
	}
	if s.maxStep > 0 && dt > s.maxStep {
		dt = s.maxStep
	}
	s.last = now

	for _, m := range s.members {
		if u, ok := m.(Updater); ok {
			u.Update(dt)
		}
	}
	for _, u := range s.components {
		u.Update(dt)
	}
	return dt
}

// Render clears canvas to the sky color and paints the scene on it.
func (s *Scene) Render(canvas Canvas) render.FrameStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	canvas.Clear(s.sky)
	stats := s.camera.Render(s.members, canvas, s.env)

	if stats != s.lastStats {
		s.log.Debug("frame", zap.Object("stats", stats))
		s.lastStats = stats
	}
	return stats
}

// Exclusive runs fn while holding the scene lock. fn must not call other
// Scene methods.
func (s *Scene) Exclusive(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn()
}
