package view

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/soocke/glyphpad/config"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// ConfigPanel is the service settings form. It shows values from
// *config.Config and hands the raw form text to onApply.
type ConfigPanel interface {
	Build(parent *FrameWidget, startRow int) (endRow int)
	SetEditable(enabled bool)
	ApplyChanges() // passes the form text to the apply handler
}

type configPanel struct {
	cfg      *config.Config
	logger   *slog.Logger
	onApply  func(endpoint, timeout string) error
	applyBtn *ButtonWidget
	widgets  map[string]*TextWidget
}

// NewConfigPanel creates the view showing cfg. onApply validates, applies
// and reports errors to the user.
func NewConfigPanel(cfg *config.Config, logger *slog.Logger, onApply func(endpoint, timeout string) error) ConfigPanel {
	return &configPanel{cfg: cfg, logger: logger, onApply: onApply, widgets: make(map[string]*TextWidget)}
}

func (v *configPanel) Build(parent *FrameWidget, startRow int) (row int) {
	c := v.cfg
	row = startRow
	makeRow := func(id, label, value string) {
		lbl := Label(Txt(label), Anchor("w"))
		Grid(lbl, In(parent), Row(row), Column(0), Sticky("w"), Padx("0.4m"), Pady("0.15m"))
		w := Text(Height(1), Width(28))
		Grid(w, In(parent), Row(row), Column(1), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
		w.Delete("1.0", END)
		w.Insert("1.0", value)
		v.widgets[id] = w
		row++
	}
	makeRow("endpoint", "Service Endpoint", c.Endpoint)
	makeRow("timeout", "Request Timeout (s)", strconv.Itoa(c.RequestTimeoutSeconds))
	v.applyBtn = Button(Txt("Apply Settings"), Command(func() { v.ApplyChanges() }))
	Grid(v.applyBtn, In(parent), Row(row), Column(0), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	row++
	return row
}

func (v *configPanel) SetEditable(enabled bool) {
	state := "disabled"
	if enabled {
		state = "normal"
	}
	for _, w := range v.widgets {
		if w != nil {
			w.Configure(State(state))
		}
	}
	if v.applyBtn != nil {
		v.applyBtn.Configure(State(state))
	}
}

func (v *configPanel) text(id string) string {
	w := v.widgets[id]
	if w == nil {
		return ""
	}
	return strings.TrimSpace(strings.Join(w.Get("1.0", END), ""))
}

func (v *configPanel) ApplyChanges() {
	if v.onApply == nil {
		return
	}
	if err := v.onApply(v.text("endpoint"), v.text("timeout")); err != nil && v.logger != nil {
		v.logger.Debug("settings not applied", "error", err)
	}
}
