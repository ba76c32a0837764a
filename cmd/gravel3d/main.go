// gravel3d - Terminal 3D Scene Walker
// Walk around a small flat-shaded world in your terminal.
//
// Controls:
//
//	W/S         - Walk forward/backward
//	A/D         - Step left/right
//	Space/C     - Rise/sink
//	Left/Right  - Turn
//	Up/Down     - Look up/down
//	Esc, Q      - Quit
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"go.uber.org/zap"

	"github.com/taigrr/gravel3d/internal/app"
	"github.com/taigrr/gravel3d/internal/config"
	"github.com/taigrr/gravel3d/internal/input"
	"github.com/taigrr/gravel3d/internal/logger"
)

// keyRelease stands in for release events on terminals that only repeat
// presses; it must outlast the typical initial repeat delay.
const keyRelease = 550 * time.Millisecond

var snapshot = flag.String("snapshot", "", "Render one frame to a PNG file and exit")

// keys are the controller keys in the order presses are matched.
var keys = []string{
	input.KeyForward, input.KeyBackward, input.KeyLeft, input.KeyRight,
	input.KeyRise, input.KeySink,
	input.KeyLookUp, input.KeyLookDown, input.KeyTurnLeft, input.KeyTurnRight,
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "gravel3d - Terminal 3D Scene Walker\n\n")
		fmt.Fprintf(os.Stderr, "Usage: gravel3d [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  W/S         - Walk forward/backward\n")
		fmt.Fprintf(os.Stderr, "  A/D         - Step left/right\n")
		fmt.Fprintf(os.Stderr, "  Space/C     - Rise/sink\n")
		fmt.Fprintf(os.Stderr, "  Arrows      - Turn and look\n")
		fmt.Fprintf(os.Stderr, "  Esc, Q      - Quit\n")
	}
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

	// The alt screen owns the terminal, so log to the file only.
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile, *snapshot != "" && cfg.Logging.Console); err != nil {
		fmt.Fprintf(os.Stderr, "Error: init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if *snapshot != "" {
		err = runSnapshot(cfg, *snapshot)
	} else {
		err = run(cfg)
	}
	if err != nil {
		logger.Error("gravel3d failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runSnapshot(cfg *config.Config, path string) error {
	a, err := app.New(cfg, cfg.Render.Width, cfg.Render.Height, logger.Named("app"))
	if err != nil {
		return err
	}
	return a.Snapshot(path)
}

// newApp builds the interactive viewer. A scene file that cannot be loaded
// is logged and replaced by the built-in scenery so the viewer still starts.
func newApp(cfg *config.Config, width, height int) (*app.App, error) {
	a, err := app.New(cfg, width, height, logger.Named("app"), input.WithReleaseAfter(keyRelease))
	if errors.Is(err, app.ErrScene) {
		logger.Warn("using default scene", zap.Error(err))
		cfg.Scene.File = ""
		a, err = app.New(cfg, width, height, logger.Named("app"), input.WithReleaseAfter(keyRelease))
	}
	return a, err
}

func run(cfg *config.Config) error {
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	// Each cell shows two pixel rows.
	a, err := newApp(cfg, width, height*2)
	if err != nil {
		return err
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Size as last reported by the terminal, owned by the event goroutine
	// until handed to the frame loop.
	sizes := make(chan [2]int, 1)

	go func() {
		for ev := range term.Events() {
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				select {
				case <-sizes:
				default:
				}
				sizes <- [2]int{ev.Width, ev.Height}

			case uv.KeyPressEvent:
				if ev.MatchString("escape", "q", "ctrl+c") {
					cancel()
					return
				}
				for _, k := range keys {
					if ev.MatchString(k) {
						a.KeyDown(k)
						break
					}
				}

			case uv.KeyReleaseEvent:
				for _, k := range keys {
					if ev.MatchString(k) {
						a.KeyUp(k)
						break
					}
				}
			}
		}
	}()

	cleanup := func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}

	targetDuration := a.TickDuration()
	logger.Info("running", zap.Int("cols", width), zap.Int("rows", height), zap.Duration("tick", targetDuration))

	for {
		select {
		case <-ctx.Done():
			cleanup()
			return nil
		case size := <-sizes:
			width, height = size[0], size[1]
			logger.Debug("terminal resized", zap.Int("cols", width), zap.Int("rows", height))
			term.Erase()
			term.Resize(width, height)
			a.Resize(width, height*2)
		default:
		}

		now := time.Now()

		a.Tick()
		a.Canvas.Draw(term, uv.Rect(0, 0, width, height))
		if err := term.Display(); err != nil {
			cleanup()
			return fmt.Errorf("display: %w", err)
		}

		elapsed := time.Since(now)
		if elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}
