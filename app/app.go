package app

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"time"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"

	"github.com/soocke/glyphpad/debug"
	"github.com/soocke/glyphpad/domain/surface"
	"github.com/soocke/glyphpad/ui/presenter"
	"github.com/soocke/glyphpad/ui/view"
)

const healthTimeout = 5 * time.Second

type app struct {
	title   string
	c       *AppContainer
	logger  *slog.Logger
	afterID string
	cancel  context.CancelFunc
}

// NewApp configures the root window. The container's components are wired
// to Tk in Start.
func NewApp(title string, c *AppContainer) *app {
	a := &app{title: title, c: c, logger: c.Logger}
	App.WmTitle(title)
	WmProtocol(App, "WM_DELETE_WINDOW", a.exitHandler)
	w := c.Config.CanvasWidth + 420
	h := c.Config.CanvasHeight + 120
	WmGeometry(App, fmt.Sprintf("%dx%d+100+100", w, h))
	return a
}

// Start builds the UI, optionally preloads an image and runs the Tk loop
// until the window closes.
func (a *app) Start(initialImage string) {
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	defer cancel()

	c := a.c
	c.RootView.Build(view.Handlers{
		OnInput: func(raw surface.RawEvent) {
			c.SurfacePresenter.Handle(raw, image.Point{})
		},
		OnClear:      c.SurfacePresenter.Clear,
		OnPredict:    c.SubmitPresenter.Submit,
		OnFileChosen: c.UploadPresenter.ChoosePath,
		OnRemove:     c.UploadPresenter.Remove,
		OnModel:      c.SubmitPresenter.SelectModel,
		OnSettings:   c.SettingsPresenter.Apply,
		OnExit:       a.exitHandler,
	})
	c.Loop = presenter.NewLoop(c.Queue, c.SurfacePresenter, a.scheduleUpdate)

	if c.Config.Debug {
		debug.Start(ctx, 2*time.Second, a.logger)
	}
	go a.checkHealth(ctx)
	if initialImage != "" {
		c.UploadPresenter.ChoosePath(initialImage)
	}

	a.scheduleUpdate()
	App.Wait()
}

// checkHealth logs model availability once at startup.
func (a *app) checkHealth(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()
	h, err := a.c.Client.Health(ctx)
	if a.logger == nil {
		return
	}
	if err != nil {
		a.logger.Warn("classifier health check failed", "endpoint", a.c.Client.Endpoint(), "error", err)
		return
	}
	a.logger.Info("classifier reachable", "endpoint", a.c.Client.Endpoint(), "status", h.Status)
	for _, m := range h.Unloaded() {
		a.logger.Warn("model not loaded on server", "model", m.String())
	}
}

func (a *app) exitHandler() {
	if a.afterID != "" {
		TclAfterCancel(a.afterID)
	}
	if a.cancel != nil {
		a.cancel()
	}
	Destroy(App)
}

func (a *app) scheduleUpdate() {
	// Schedule the next tick using TclAfter to stay on Tk's event loop thread.
	a.afterID = TclAfter(a.c.Config.TickInterval(), func() { a.c.Loop.Tick() })
}
