// gravel3d-window shows the gravel3d scene in a desktop window.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/taigrr/gravel3d/internal/app"
	"github.com/taigrr/gravel3d/internal/config"
	"github.com/taigrr/gravel3d/internal/input"
	"github.com/taigrr/gravel3d/internal/logger"
)

// keyNames maps window keys onto controller keys.
var keyNames = map[ebiten.Key]string{
	ebiten.KeyW:          input.KeyForward,
	ebiten.KeyS:          input.KeyBackward,
	ebiten.KeyA:          input.KeyLeft,
	ebiten.KeyD:          input.KeyRight,
	ebiten.KeySpace:      input.KeyRise,
	ebiten.KeyC:          input.KeySink,
	ebiten.KeyArrowUp:    input.KeyLookUp,
	ebiten.KeyArrowDown:  input.KeyLookDown,
	ebiten.KeyArrowLeft:  input.KeyTurnLeft,
	ebiten.KeyArrowRight: input.KeyTurnRight,
}

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if config.WriteConfig() {
		if err := cfg.Save(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s\n", config.SavePath())
		return
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile, cfg.Logging.Console); err != nil {
		fmt.Fprintf(os.Stderr, "Error: init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg); err != nil {
		logger.Error("gravel3d-window failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	a, err := app.New(cfg, cfg.Render.Width, cfg.Render.Height, logger.Named("app"))
	if errors.Is(err, app.ErrScene) {
		logger.Warn("using default scene", zap.Error(err))
		cfg.Scene.File = ""
		a, err = app.New(cfg, cfg.Render.Width, cfg.Render.Height, logger.Named("app"))
	}
	if err != nil {
		return err
	}

	ebiten.SetWindowTitle("gravel3d")
	ebiten.SetWindowSize(cfg.Render.Width, cfg.Render.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.Render.FrameRate)

	return ebiten.RunGame(&game{app: a})
}

type game struct {
	app *app.App
	img *ebiten.Image
	pix []byte
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	for key, name := range keyNames {
		if inpututil.IsKeyJustPressed(key) {
			g.app.KeyDown(name)
		}
		if inpututil.IsKeyJustReleased(key) {
			g.app.KeyUp(name)
		}
	}
	g.app.Tick()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	fb := g.app.Canvas
	if g.img == nil || g.img.Bounds().Dx() != fb.Width || g.img.Bounds().Dy() != fb.Height {
		if g.img != nil {
			g.img.Deallocate()
		}
		g.img = ebiten.NewImage(fb.Width, fb.Height)
		g.pix = make([]byte, 4*fb.Width*fb.Height)
	}

	fb.CopyRGBA(g.pix)
	g.img.WritePixels(g.pix)
	screen.DrawImage(g.img, nil)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.app.Canvas.Width || outsideHeight != g.app.Canvas.Height {
		logger.Debug("window resized", zap.Int("width", outsideWidth), zap.Int("height", outsideHeight))
		g.app.Resize(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}
