package view

import (
	"image"
	"log/slog"

	"github.com/soocke/glyphpad/config"
	"github.com/soocke/glyphpad/domain/intake"
	"github.com/soocke/glyphpad/domain/predict"
	"github.com/soocke/glyphpad/domain/surface"
	"github.com/soocke/glyphpad/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Handlers are the user actions the root view forwards to presenters.
type Handlers struct {
	OnInput      func(surface.RawEvent)
	OnClear      func()
	OnPredict    func()
	OnFileChosen func(path string)
	OnRemove     func()
	OnModel      func(predict.ModelChoice)
	OnSettings   func(endpoint, timeout string) error
	OnExit       func()
}

// RootView composes the top-level application layout and wires UI callbacks.
// It owns the subviews and exposes the view contracts presenters depend on.
type RootView struct {
	cfg    *config.Config
	logger *slog.Logger

	surface  *surfaceView
	upload   *uploadPanel
	result   *resultPanel
	settings ConfigPanel
	notify   messageBox

	predictBtn *TButtonWidget
	modelBox   *TComboboxWidget
}

// UI abstracts the subset of view operations needed by presenters, enabling
// decoupling from the concrete RootView implementation.
type UI interface {
	ShowRaster(img *image.RGBA)
	ShowPreview(u *intake.Upload)
	ShowPrompt()
	ShowLoading()
	HideLoading()
	HideResult()
	ShowResult(label, confidence string)
	Notify(title, message string)
}

var _ UI = (*RootView)(nil)

func NewRootView(cfg *config.Config, logger *slog.Logger) *RootView {
	return &RootView{cfg: cfg, logger: logger}
}

// Build constructs the layout. Handlers are invoked on user actions.
func (rv *RootView) Build(h Handlers) {
	if rv == nil {
		return
	}
	theme.InitStyles()

	// Left column: drawing surface with Clear / Predict beneath it
	left := Frame()
	Grid(left, Row(0), Column(0), Sticky("n"), Padx("0.6m"), Pady("0.6m"))
	rv.surface = newSurfaceView(left, rv.cfg.CanvasWidth, rv.cfg.CanvasHeight, h.OnInput)
	clearBtn := TButton(Txt("Clear"), Style(theme.StyleDangerButton), Command(h.OnClear))
	Grid(clearBtn, In(left), Row(1), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	rv.predictBtn = TButton(Txt("Predict"), Style(theme.StylePrimaryButton), Command(h.OnPredict))
	Grid(rv.predictBtn, In(left), Row(1), Column(1), Sticky("we"), Padx("0.2m"), Pady("0.2m"))

	// Right column: upload, model choice, settings
	right := Frame()
	Grid(right, Row(0), Column(1), Sticky("n"), Padx("0.6m"), Pady("0.6m"))
	rv.upload = newUploadPanel(right, rv.cfg.MaxUploadBytes, func() {
		if path := rv.browse(); path != "" && h.OnFileChosen != nil {
			h.OnFileChosen(path)
		}
	}, h.OnRemove)
	rv.modelBox = newModelSelector(right, 3, predict.ParseModelChoice(rv.cfg.DefaultModel), rv.logger, h.OnModel)
	rv.settings = NewConfigPanel(rv.cfg, rv.logger, h.OnSettings)
	next := rv.settings.Build(right, 4)
	exitBtn := Button(Txt("Exit"), Command(h.OnExit))
	Grid(exitBtn, In(right), Row(next), Column(0), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.3m"))

	// Bottom row: loading indicator and result block
	bottom := Frame()
	Grid(bottom, Row(1), Column(0), Columnspan(2), Sticky("we"), Padx("0.6m"), Pady("0.4m"))
	rv.result = newResultPanel(bottom, 0)
}

func (rv *RootView) browse() string {
	files := GetOpenFile(Title("Select an image"))
	if len(files) == 0 {
		return ""
	}
	return files[0]
}

func (rv *RootView) ShowRaster(img *image.RGBA) {
	if rv != nil && rv.surface != nil {
		rv.surface.ShowRaster(img)
	}
}

func (rv *RootView) ShowPreview(u *intake.Upload) {
	if rv != nil && rv.upload != nil {
		rv.upload.ShowPreview(u)
	}
}

func (rv *RootView) ShowPrompt() {
	if rv != nil && rv.upload != nil {
		rv.upload.ShowPrompt()
	}
}

// ShowLoading shows the indicator and blocks further submissions and edits
// to the service settings until the request ends.
func (rv *RootView) ShowLoading() {
	if rv == nil {
		return
	}
	rv.result.ShowLoading()
	if rv.predictBtn != nil {
		rv.predictBtn.Configure(State("disabled"))
	}
	if rv.settings != nil {
		rv.settings.SetEditable(false)
	}
}

func (rv *RootView) HideLoading() {
	if rv == nil {
		return
	}
	rv.result.HideLoading()
	if rv.predictBtn != nil {
		rv.predictBtn.Configure(State("normal"))
	}
	if rv.settings != nil {
		rv.settings.SetEditable(true)
	}
}

func (rv *RootView) HideResult() {
	if rv != nil {
		rv.result.HideResult()
	}
}

func (rv *RootView) ShowResult(label, confidence string) {
	if rv != nil {
		rv.result.ShowResult(label, confidence)
	}
}

func (rv *RootView) Notify(title, message string) {
	if rv != nil {
		rv.notify.Notify(title, message)
	}
}
