package app

import (
	"errors"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/taigrr/gravel3d/internal/config"
	"github.com/taigrr/gravel3d/internal/input"
	"github.com/taigrr/gravel3d/pkg/math3d"
	"github.com/taigrr/gravel3d/pkg/render"
)

var shadedGreen = color.RGBA{G: 32, A: 255}

func newApp(t *testing.T, cfg *config.Config, opts ...input.Option) *App {
	t.Helper()
	a, err := New(cfg, 64, 48, nil, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return a
}

func TestDefaultScene(t *testing.T) {
	a := newApp(t, config.Default())

	stats := a.Tick()
	if stats.Drawn == 0 {
		t.Fatalf("nothing drawn: %+v", stats)
	}
	if a.Stats() != stats {
		t.Error("Stats() should return the last frame")
	}
	// The sun is behind the cube, so the face toward the camera only gets
	// ambient light: green 128 darkened by three quarters.
	if got := a.Canvas.GetPixel(32, 24); got != shadedGreen {
		t.Errorf("center pixel = %v, want %v", got, shadedGreen)
	}
	if got := a.Canvas.GetPixel(0, 0); got != render.ColorSkyBlue {
		t.Errorf("corner pixel = %v, want sky", got)
	}
	if got := a.TickDuration(); got != 10*time.Millisecond {
		t.Errorf("TickDuration() = %v, want 10ms at 100 fps", got)
	}
}

func TestSkyOverride(t *testing.T) {
	cfg := config.Default()
	cfg.Scene.Sky = [3]uint8{1, 2, 3}
	a := newApp(t, cfg)

	if got := a.Scene.Sky(); got != (color.RGBA{R: 1, G: 2, B: 3, A: 255}) {
		t.Errorf("Sky() = %v", got)
	}
}

func TestSceneFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.yaml")
	body := "sky: black\ncamera: {position: [0, 0, -3]}\nobjects: [{kind: cube, color: red}]\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	cfg.Scene.File = path
	a := newApp(t, cfg)

	if got := a.Scene.Camera().Frame.Position; got != math3d.V3(0, 0, -3) {
		t.Errorf("camera position = %v", got)
	}
	a.Tick()
	if got := a.Canvas.GetPixel(32, 24); got != render.ColorRed {
		t.Errorf("center pixel = %v, want red", got)
	}

	cfg.Scene.File = filepath.Join(dir, "missing.yaml")
	if _, err := New(cfg, 64, 48, nil); !errors.Is(err, ErrScene) || !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing scene file: got %v, want ErrScene wrapping os.ErrNotExist", err)
	}
}

func TestKeys(t *testing.T) {
	a := newApp(t, config.Default())

	if !a.KeyDown(input.KeyForward) {
		t.Fatal("KeyDown(w) should change velocity")
	}
	if a.KeyDown(input.KeyForward) {
		t.Error("a repeat should be ignored")
	}
	if got := a.Controller.Movement.Velocity; got != math3d.V3(0, 0, 2) {
		t.Errorf("velocity = %v, want walk speed forward", got)
	}
	if a.KeyDown("q") {
		t.Error("unmapped keys should be ignored")
	}
	if !a.KeyUp(input.KeyForward) {
		t.Error("KeyUp(w) should change velocity")
	}
	if got := a.Controller.Movement.Velocity; got != math3d.Zero3() {
		t.Errorf("velocity after release = %v", got)
	}
}

func TestResize(t *testing.T) {
	a := newApp(t, config.Default())
	a.Resize(100, 20)

	if a.Canvas.Width != 100 || a.Canvas.Height != 20 {
		t.Fatalf("canvas = %dx%d", a.Canvas.Width, a.Canvas.Height)
	}
	center := a.Scene.Camera().Project(math3d.V3(0, 0, 1))
	if center.Sub(math3d.V2(50, 10)).Len() > 1e-9 {
		t.Errorf("optical center = %v, want (50, 10)", center)
	}

	a.Resize(0, 10)
	if a.Canvas.Width != 100 {
		t.Error("a zero size should be ignored")
	}
}

func TestOutline(t *testing.T) {
	cfg := config.Default()
	cfg.Render.Outline = true
	a := newApp(t, cfg)

	if a.Scene.Camera().Outline == nil || *a.Scene.Camera().Outline != render.ColorBlack {
		t.Fatal("outline color not set")
	}
	a.Tick()
	if got := a.Canvas.GetPixel(32, 24); got != shadedGreen {
		t.Errorf("interior pixel = %v, want fill", got)
	}
}

func TestSnapshot(t *testing.T) {
	a := newApp(t, config.Default())
	path := filepath.Join(t.TempDir(), "frame.png")

	if err := a.Snapshot(path); err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 48 {
		t.Errorf("image size = %v", b)
	}
}
