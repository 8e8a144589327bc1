package engine

import (
	"sync/atomic"
	"time"

	"github.com/pkg/errors"

	"github.com/spaghettifunk/buddha/engine/assets"
	"github.com/spaghettifunk/buddha/engine/config"
	"github.com/spaghettifunk/buddha/engine/core"
	"github.com/spaghettifunk/buddha/engine/platform"
	"github.com/spaghettifunk/buddha/engine/renderer"
	"github.com/spaghettifunk/buddha/engine/renderer/opengl"
	"github.com/spaghettifunk/buddha/engine/systems"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
	// Engine released everything it owned
	EngineStageShutdown
)

// while minimized there is nothing to draw
const suspendedSleep = 100 * time.Millisecond

// Window is the part of the platform layer the engine drives.
type Window interface {
	Startup(applicationName string, x, y, width, height uint32, vsync bool) error
	Shutdown() error
	PumpMessages() bool
	SwapBuffers()
	FramebufferSize() (uint32, uint32)
	GetAbsoluteTime() float64
	Sleep(d time.Duration)
}

type Engine struct {
	currentStage  Stage
	gameInstance  *Game
	isRunning     bool
	isSuspended   bool
	quit          atomic.Bool
	window        Window
	events        *core.EventBus
	systemManager *systems.SystemManager
	assetManager  *assets.AssetManager
	configUpdates <-chan *config.Config
	width         uint32
	height        uint32
	clock         *core.Clock
	metrics       *core.Metrics
	lastTime      float64
	frameCount    uint64
}

// New builds an engine drawing into a glfw window through OpenGL.
func New(g *Game) (*Engine, error) {
	if g == nil || g.ApplicationConfig == nil {
		return nil, errors.New("engine needs a game with an application config")
	}
	events := core.NewEventBus()
	p, err := platform.New(events)
	if err != nil {
		return nil, err
	}
	return newEngine(g, p, opengl.New(g.ApplicationConfig.Debug), events)
}

func newEngine(g *Game, window Window, backend renderer.RendererBackend, events *core.EventBus) (*Engine, error) {
	ac := g.ApplicationConfig

	sm, err := systems.NewSystemManager(renderer.New(backend), events, ac.Workers)
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}

	am, err := assets.NewAssetManager(ac.AssetsDir, sm.Jobs, backend)
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}

	g.SystemManager = sm
	g.AssetManager = am

	return &Engine{
		currentStage:  EngineStageUninitialized,
		gameInstance:  g,
		isRunning:     true,
		isSuspended:   false,
		window:        window,
		events:        events,
		systemManager: sm,
		assetManager:  am,
		width:         ac.StartWidth,
		height:        ac.StartHeight,
		clock:         core.NewClock(),
		metrics:       core.NewMetrics(),
	}, nil
}

func (e *Engine) Initialize() error {
	e.currentStage = EngineStageInitializing
	ac := e.gameInstance.ApplicationConfig

	// register some events
	e.events.Register(core.EVENT_CODE_APPLICATION_QUIT, e.onEvent)
	e.events.Register(core.EVENT_CODE_KEY_PRESSED, e.onKey)
	e.events.Register(core.EVENT_CODE_RESIZED, e.onResized)

	if err := e.window.Startup(ac.Name, ac.StartPosX, ac.StartPosY, ac.StartWidth, ac.StartHeight, ac.VSync); err != nil {
		return err
	}

	r := e.systemManager.Renderer
	if err := r.Initialize(ac.Name, ac.StartWidth, ac.StartHeight); err != nil {
		return err
	}

	// the drawable size differs from the window size on high-DPI displays
	if w, h := e.window.FramebufferSize(); w > 0 && h > 0 {
		e.width, e.height = w, h
	}
	if err := r.OnResize(e.width, e.height); err != nil {
		return err
	}

	if e.gameInstance.FnInitialize != nil {
		if err := e.gameInstance.FnInitialize(); err != nil {
			return err
		}
	}
	if e.gameInstance.FnOnResize != nil {
		if err := e.gameInstance.FnOnResize(e.width, e.height); err != nil {
			return err
		}
	}

	e.currentStage = EngineStageInitialized
	return nil
}

// WatchConfig makes the engine publish every config received on updates as an
// EVENT_CODE_CONFIG_RELOADED between two frames.
func (e *Engine) WatchConfig(updates <-chan *config.Config) {
	e.configUpdates = updates
}

// Quit asks the loop to stop before the next frame. Safe to call from any goroutine.
func (e *Engine) Quit() {
	e.quit.Store(true)
}

func (e *Engine) Run() error {
	if e.currentStage != EngineStageInitialized {
		return errors.New("engine must be initialized before running")
	}
	e.currentStage = EngineStageRunning

	e.clock.Start()
	e.clock.Update()
	e.lastTime = e.clock.Elapsed()

	targetFrameTime := e.gameInstance.ApplicationConfig.targetFrameTime()

	for e.isRunning {
		if e.quit.Load() {
			core.LogInfo("quit requested, shutting down.")
			e.isRunning = false
			break
		}

		if !e.window.PumpMessages() {
			e.isRunning = false
			break
		}
		e.dispatchConfigUpdates()
		// a quit event may have been fired while pumping
		if !e.isRunning {
			break
		}

		if e.isSuspended {
			e.window.Sleep(suspendedSleep)
			continue
		}

		// Update clock and get delta time.
		e.clock.Update()
		currentTime := e.clock.Elapsed()
		delta := currentTime - e.lastTime
		frameStartTime := e.window.GetAbsoluteTime()

		if e.gameInstance.FnUpdate != nil {
			if err := e.gameInstance.FnUpdate(delta); err != nil {
				core.LogError("Game update failed, shutting down: %s", err)
				e.isRunning = false
				return err
			}
		}

		// Call the game's render routine.
		if e.gameInstance.FnRender != nil {
			if err := e.gameInstance.FnRender(delta); err != nil {
				core.LogError("Game render failed, shutting down: %s", err)
				e.isRunning = false
				return err
			}
		}

		e.window.SwapBuffers()

		// Figure out how long the frame took and, if below the target, give
		// the rest back to the OS.
		frameElapsedTime := e.window.GetAbsoluteTime() - frameStartTime
		e.metrics.Update(frameElapsedTime)
		if targetFrameTime > 0 {
			remaining := targetFrameTime - time.Duration(frameElapsedTime*float64(time.Second))
			if remaining > time.Millisecond {
				e.window.Sleep(remaining - time.Millisecond)
			}
		}

		e.frameCount++
		if e.frameCount%600 == 0 {
			fps, ms := e.metrics.Frame()
			core.LogDebug("%.0f fps, %.2f ms/frame", fps, ms)
		}

		// Update last time
		e.lastTime = currentTime
	}

	return nil
}

func (e *Engine) dispatchConfigUpdates() {
	select {
	case cfg := <-e.configUpdates:
		if cfg != nil {
			e.events.Fire(core.EventContext{
				Type: core.EVENT_CODE_CONFIG_RELOADED,
				Data: cfg,
			})
		}
	default:
	}
}

// Shutdown releases game, assets, systems and the window in that order. Calling
// it more than once is a no-op.
func (e *Engine) Shutdown() error {
	if e.currentStage == EngineStageShuttingDown || e.currentStage == EngineStageShutdown {
		return nil
	}
	wasStarted := e.currentStage != EngineStageUninitialized
	e.currentStage = EngineStageShuttingDown

	if wasStarted && e.gameInstance.FnShutdown != nil {
		if err := e.gameInstance.FnShutdown(); err != nil {
			core.LogError("game shutdown failed: %s", err)
		}
	}
	// no decode may finish after the GPU resources are gone
	if err := e.systemManager.Shutdown(); err != nil {
		return err
	}
	if err := e.assetManager.Shutdown(); err != nil {
		return err
	}
	if wasStarted {
		if err := e.systemManager.Renderer.Shutdown(); err != nil {
			return err
		}
		if err := e.window.Shutdown(); err != nil {
			return err
		}
	}

	e.currentStage = EngineStageShutdown
	return nil
}

// GetFramebufferSize returns the width and height (in this order)
// of the application Framebuffer
func (e *Engine) GetFramebufferSize() (uint32, uint32) {
	return e.width, e.height
}

func (e *Engine) Stage() Stage {
	return e.currentStage
}

func (e *Engine) onEvent(context core.EventContext) {
	switch context.Type {
	case core.EVENT_CODE_APPLICATION_QUIT:
		{
			core.LogInfo("EVENT_CODE_APPLICATION_QUIT received, shutting down.")
			e.isRunning = false
		}
	}
}

func (e *Engine) onKey(context core.EventContext) {
	ke, ok := context.Data.(*core.KeyEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return
	}

	if ke.KeyCode == core.KEY_ESCAPE {
		// NOTE: Technically firing an event to itself, but there may be other listeners.
		e.events.Fire(core.EventContext{
			Type: core.EVENT_CODE_APPLICATION_QUIT,
		})
	}
}

func (e *Engine) onResized(context core.EventContext) {
	se, ok := context.Data.(*core.SystemEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return
	}

	width := se.WindowWidth
	height := se.WindowHeight

	// Handle minimization
	if width == 0 || height == 0 {
		if !e.isSuspended {
			core.LogInfo("Window minimized, suspending application.")
			e.isSuspended = true
		}
		return
	}
	if e.isSuspended {
		core.LogInfo("Window restored, resuming application.")
		e.isSuspended = false
	}

	// Check if different. If so, trigger a resize.
	if width == e.width && height == e.height {
		return
	}
	e.width = width
	e.height = height
	core.LogDebug("Window resize: %d, %d", width, height)

	if err := e.systemManager.Renderer.OnResize(width, height); err != nil {
		core.LogError(err.Error())
	}
	if e.gameInstance.FnOnResize != nil {
		if err := e.gameInstance.FnOnResize(width, height); err != nil {
			core.LogError(err.Error())
		}
	}
}
