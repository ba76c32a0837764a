// Package app wires configuration, scenery, input and rendering into a
// running viewer shared by the terminal and window front ends.
package app

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/taigrr/gravel3d/internal/config"
	"github.com/taigrr/gravel3d/internal/input"
	"github.com/taigrr/gravel3d/pkg/math3d"
	"github.com/taigrr/gravel3d/pkg/motion"
	"github.com/taigrr/gravel3d/pkg/render"
	"github.com/taigrr/gravel3d/pkg/scene"
	"github.com/taigrr/gravel3d/pkg/scenery"
)

// MaxStep is the longest step a single tick advances by.
const MaxStep = 100 * time.Millisecond

// ErrScene wraps any failure to read or build the configured scene file.
var ErrScene = errors.New("load scene")

// App is a scene, the camera controls and the framebuffer it paints on.
type App struct {
	Config     *config.Config
	Scene      *scene.Scene
	Controller *input.Controller
	Canvas     *render.Framebuffer

	log   *zap.Logger
	stats render.FrameStats
}

// New builds the scene named by cfg and a width x height canvas for it.
// Extra controller options are appended to those derived from cfg.
func New(cfg *config.Config, width, height int, log *zap.Logger, opts ...input.Option) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}

	content := scenery.Default()
	if cfg.Scene.File != "" {
		var err error
		content, err = scenery.LoadFile(cfg.Scene.File, log.Named("scenery"))
		if err != nil {
			return nil, fmt.Errorf("%w %s: %w", ErrScene, cfg.Scene.File, err)
		}
	}
	sky := content.Sky
	if c, ok := cfg.Scene.SkyColor(); ok {
		sky = c
	}

	sc := scene.New(width, cfg.Render.FocalLength, content.Members, sky,
		scene.WithLogger(log.Named("scene")),
		scene.WithAmbient(cfg.Render.Ambient),
		scene.WithMaxStep(MaxStep),
	)

	cam := sc.Camera()
	cam.Fit(width, height)
	cam.Frame.Position = content.Camera.Position
	cam.Frame.Rotation = content.Camera.Rotation
	if cfg.Render.Outline {
		outline := render.ColorBlack
		cam.Outline = &outline
	}

	// Walking follows the heading but ignores pitch and roll.
	movement := motion.New(&cam.Frame.Frame, math3d.M3(false, true, false))

	ctrlOpts := []input.Option{}
	if cfg.Controls.Smoothing {
		ctrlOpts = append(ctrlOpts, input.WithSmoothing(cfg.Render.FrameRate, cfg.Controls.SpringFrequency, cfg.Controls.SpringDamping))
	}
	ctrlOpts = append(ctrlOpts, opts...)
	ctrl := input.NewController(movement, cfg.Controls.WalkSpeed, cfg.Controls.TurnSpeed, ctrlOpts...)

	// The controller sets velocities before the movement integrates them.
	sc.Attach(ctrl)
	sc.Attach(movement)

	log.Info("viewer ready",
		zap.String("scene", sceneName(cfg)),
		zap.Int("members", len(content.Members)),
		zap.Int("width", width),
		zap.Int("height", height),
	)

	return &App{
		Config:     cfg,
		Scene:      sc,
		Controller: ctrl,
		Canvas:     render.NewFramebuffer(width, height),
		log:        log,
	}, nil
}

func sceneName(cfg *config.Config) string {
	if cfg.Scene.File == "" {
		return "default"
	}
	return cfg.Scene.File
}

// TickDuration is the wall time between ticks at the configured rate.
func (a *App) TickDuration() time.Duration {
	return time.Second / time.Duration(a.Config.Render.FrameRate)
}

// Tick advances the scene and repaints the canvas.
func (a *App) Tick() render.FrameStats {
	a.Scene.Update()
	a.stats = a.Scene.Render(a.Canvas)
	return a.stats
}

// Stats returns the counts of the last painted frame.
func (a *App) Stats() render.FrameStats {
	return a.stats
}

// Resize changes the canvas size and refits the camera.
func (a *App) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	a.Scene.Exclusive(func() {
		a.Canvas.Resize(width, height)
		a.Scene.Camera().Fit(width, height)
	})
	a.log.Debug("resized", zap.Int("width", width), zap.Int("height", height))
}

// KeyDown forwards a key press to the camera controls. It reports whether
// the press changed anything.
func (a *App) KeyDown(key string) bool {
	var changed bool
	a.Scene.Exclusive(func() {
		changed = a.Controller.KeyDown(key)
	})
	return changed
}

// KeyUp forwards a key release to the camera controls.
func (a *App) KeyUp(key string) bool {
	var changed bool
	a.Scene.Exclusive(func() {
		changed = a.Controller.KeyUp(key)
	})
	return changed
}

// Snapshot renders one frame without advancing time and writes it as PNG.
func (a *App) Snapshot(path string) error {
	a.stats = a.Scene.Render(a.Canvas)
	if err := a.Canvas.SavePNG(path); err != nil {
		return err
	}
	a.log.Info("snapshot saved", zap.String("path", path), zap.Object("stats", a.stats))
	return nil
}
