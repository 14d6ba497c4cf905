// Package app runs the desktop preview: an SDL window driving the camera
// choreography from mouse and keyboard.
package app

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/towerview/internal/config"
	"github.com/Faultbox/towerview/internal/engine/debug"
	"github.com/Faultbox/towerview/internal/engine/input"
	"github.com/Faultbox/towerview/internal/engine/renderer"
	"github.com/Faultbox/towerview/internal/engine/window"
	"github.com/Faultbox/towerview/internal/explore"
	"github.com/Faultbox/towerview/internal/logger"
	"github.com/Faultbox/towerview/internal/navigation"
	"github.com/Faultbox/towerview/internal/viewer"
)

// App is the preview application.
type App struct {
	cfg      *config.Config
	running  bool
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	viewer   *viewer.Viewer
	watcher  *config.SceneWatcher

	dragging  bool
	dragStart [2]int
	title     string

	shots   debug.Screenshots
	capture bool
}

// New opens the window and builds the viewer for scene.
func New(cfg *config.Config, scene *config.Scene) (*App, error) {
	logger.Info("initializing preview",
		zap.String("scene", scene.Name),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
	)

	a := &App{
		cfg:   cfg,
		shots: debug.Screenshots{Dir: "screenshots", Prefix: "towerview"},
	}

	var err error
	a.window, err = window.New(window.Config{
		Title:      "towerview",
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Renderer needs the GL context the window just created.
	fbw, fbh := a.window.DrawableSize()
	a.renderer, err = renderer.New(renderer.Config{Width: fbw, Height: fbh}, scene.Building.Min, scene.Building.Max)
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	a.renderer.SetLight(scene.Light().LightDir())

	w, h := a.window.Size()
	a.viewer, err = viewer.New(scene, cfg.Motion, w, h, cfg.Window.Mobile)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create viewer: %w", err)
	}
	a.viewer.OnTransitionComplete(func(s navigation.State) {
		logger.Debug("camera arrived", zap.Stringer("state", s))
	})
	a.viewer.OnRestoreScroll(func(offset float64) {
		logger.Debug("page scroll restored", zap.Float64("offset", offset))
	})

	if cfg.Scene.Watch && cfg.Scene.Path != "" {
		a.watcher, err = config.WatchScene(cfg.Scene.Path, cfg.Motion.FOV)
		if err != nil {
			logger.Warn("scene hot reload disabled", zap.Error(err))
		}
	}

	a.input = input.New()

	logger.Info("preview ready")
	return a, nil
}

// Run starts the main loop and returns when the window is closed.
func (a *App) Run() error {
	a.running = true

	frameCount := 0
	fpsTimer := time.Now()

	logger.Info("starting preview loop")

	for a.running {
		now := time.Now()

		if a.input.Update() {
			a.running = false
			break
		}
		for _, event := range a.input.Events() {
			a.handle(event, now)
		}

		a.pollScene()

		frame := a.viewer.Tick(now)

		a.renderer.Begin()
		a.renderer.Draw(renderer.Camera{View: frame.View, Projection: frame.Projection}, frame.Model)
		a.renderer.End()
		if a.capture {
			a.capture = false
			pixels, w, h := a.renderer.ReadPixels()
			if _, err := a.shots.Save(pixels, w, h, now); err != nil {
				logger.Warn("screenshot failed", zap.Error(err))
			}
		}

		a.window.SwapBuffers()
		a.updateTitle(frame)

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			logger.Debug("fps", zap.Int("count", frameCount), zap.Stringer("driver", frame.Driver))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// Close releases the window, renderer and file watcher.
func (a *App) Close() {
	logger.Info("closing preview")

	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			logger.Warn("closing scene watcher", zap.Error(err))
		}
	}
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}

func (a *App) handle(ev input.Event, now time.Time) {
	switch ev.Type {
	case input.EventWindowResize:
		fbw, fbh := a.window.DrawableSize()
		a.renderer.Resize(fbw, fbh)
		a.viewer.Resize(ev.Width, ev.Height)

	case input.EventKeyDown:
		if !ev.Repeat {
			a.handleKey(ev.Key, now)
		}
		a.handleScrollKey(ev.Key)

	case input.EventMouseDown:
		if ev.Button == sdl.BUTTON_LEFT {
			a.dragging = true
			a.dragStart = [2]int{ev.MouseX, ev.MouseY}
		}
	case input.EventMouseUp:
		if ev.Button == sdl.BUTTON_LEFT {
			a.dragging = false
			if isClick(a.dragStart, ev.MouseX, ev.MouseY) && a.exploring() {
				// Errors are already logged by the viewer.
				_ = a.viewer.ClickRoom(ev.MouseX, ev.MouseY, now)
			}
		}

	case input.EventMouseMove:
		a.viewer.OnPointer(ev.MouseX, ev.MouseY)
		if a.dragging {
			a.viewer.Drag(float32(ev.DeltaX), float32(ev.DeltaY))
		}

	case input.EventMouseWheel:
		if a.exploring() {
			a.viewer.Zoom(ev.WheelY)
			return
		}
		a.viewer.ScrollBy(-float64(ev.WheelY) * a.cfg.Motion.ScrollStep)
	}
}

func (a *App) handleKey(key sdl.Scancode, now time.Time) {
	switch {
	case key == sdl.SCANCODE_Q:
		a.running = false
	case key == sdl.SCANCODE_F12:
		a.capture = true
	case key == sdl.SCANCODE_E:
		a.viewer.ToggleExplore(now)
	case key == sdl.SCANCODE_ESCAPE:
		if !a.viewer.CloseRoom(now) {
			a.viewer.ExitExplore(now)
		}
	case key >= sdl.SCANCODE_1 && key <= sdl.SCANCODE_9:
		// Errors are already logged by the viewer.
		_ = a.viewer.SelectRoomIndex(int(key-sdl.SCANCODE_1), now)
	}
}

func (a *App) handleScrollKey(key sdl.Scancode) {
	if a.exploring() {
		return
	}
	_, h := a.window.Size()
	switch key {
	case sdl.SCANCODE_DOWN:
		a.viewer.ScrollBy(a.cfg.Motion.ScrollStep)
	case sdl.SCANCODE_UP:
		a.viewer.ScrollBy(-a.cfg.Motion.ScrollStep)
	case sdl.SCANCODE_PAGEDOWN, sdl.SCANCODE_SPACE:
		a.viewer.ScrollBy(float64(h))
	case sdl.SCANCODE_PAGEUP:
		a.viewer.ScrollBy(-float64(h))
	case sdl.SCANCODE_HOME:
		a.viewer.OnScroll(0)
	}
}

// pollScene applies the newest reloaded scene, if any.
func (a *App) pollScene() {
	if a.watcher == nil {
		return
	}
	select {
	case scene, ok := <-a.watcher.Updates():
		if !ok {
			a.watcher = nil
			return
		}
		if err := a.viewer.ReloadScene(scene); err != nil {
			logger.Error("applying reloaded scene", zap.Error(err))
			return
		}
		a.renderer.SetBuilding(scene.Building.Min, scene.Building.Max)
		a.renderer.SetLight(scene.Light().LightDir())
	default:
	}
}

// isClick tells a click from the end of a drag.
func isClick(start [2]int, x, y int) bool {
	dx, dy := x-start[0], y-start[1]
	return dx*dx+dy*dy <= 16
}

func (a *App) exploring() bool {
	return a.viewer.Mode() == explore.ModeExplore
}

func (a *App) updateTitle(f viewer.Frame) {
	var title string
	switch {
	case f.Mode == explore.ModeScroll:
		title = fmt.Sprintf("towerview - %s - section %d (%.0f%%)",
			a.viewer.Scene().Name, f.Progress.Segment+1, f.Progress.LocalT*100)
	case f.Nav.RoomID != "":
		title = fmt.Sprintf("towerview - %s - %s", a.viewer.Scene().Name, f.Nav)
	default:
		title = fmt.Sprintf("towerview - %s - explore", a.viewer.Scene().Name)
	}
	if title != a.title {
		a.window.SetTitle(title)
		a.title = title
	}
}
