package app

import (
	"log/slog"

	"github.com/soocke/glyphpad/config"
	"github.com/soocke/glyphpad/domain/classifier"
	"github.com/soocke/glyphpad/domain/intake"
	"github.com/soocke/glyphpad/domain/predict"
	"github.com/soocke/glyphpad/domain/surface"
	"github.com/soocke/glyphpad/ui/model"
	"github.com/soocke/glyphpad/ui/presenter"
	"github.com/soocke/glyphpad/ui/view"
)

// AppContainer assembles models, services, presenters and the root view.
type AppContainer struct {
	Config       *config.Config
	ConfigPath   string
	Logger       *slog.Logger
	Capture      *model.CaptureContext
	Validator    *intake.Validator
	Client       *classifier.Client
	Orchestrator *predict.Orchestrator
	Queue        *presenter.Queue
	RootView     *view.RootView
	UI           view.UI

	// Presenters
	SurfacePresenter  *presenter.SurfacePresenter
	UploadPresenter   *presenter.UploadPresenter
	ResultPresenter   *presenter.ResultPresenter
	SubmitPresenter   *presenter.SubmitPresenter
	SettingsPresenter *presenter.SettingsPresenter
	Loop              *presenter.Loop
}

// BuildContainer constructs all components. No widgets are created here;
// the root view is built by the app once Tk is ready.
func BuildContainer(cfg *config.Config, cfgPath string, logger *slog.Logger) (*AppContainer, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &AppContainer{Config: cfg, ConfigPath: cfgPath, Logger: logger}

	client, err := classifier.New(cfg.Endpoint, classifier.WithTimeout(cfg.RequestTimeout()), classifier.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	c.Client = client
	c.Orchestrator = predict.NewOrchestrator(client, logger)
	c.Validator = intake.NewValidator(cfg.MaxUploadBytes)

	s := surface.New(cfg.CanvasWidth, cfg.CanvasHeight, surface.WithStrokeWidth(cfg.StrokeWidth))
	c.Capture = model.NewCaptureContext(s, predict.ParseModelChoice(cfg.DefaultModel))
	c.Queue = &presenter.Queue{}

	c.RootView = view.NewRootView(cfg, logger)
	c.UI = c.RootView

	c.SurfacePresenter = presenter.NewSurfacePresenter(c.Capture.Surface, c.UI)
	c.UploadPresenter = presenter.NewUploadPresenter(c.Capture, c.Validator, c.Queue, c.UI, c.UI, logger)
	c.ResultPresenter = presenter.NewResultPresenter(c.UI, c.UI, logger)
	c.SubmitPresenter = presenter.NewSubmitPresenter(c.Capture, c.Orchestrator, c.Queue, c.UI, c.ResultPresenter, cfg.RequestTimeout(), logger)
	c.SettingsPresenter = presenter.NewSettingsPresenter(cfg, cfgPath, client, c.SubmitPresenter, c.UI, logger)
	return c, nil
}
