package view

import (
	"github.com/soocke/glyphpad/ui/theme"

	//lint:ignore ST1001 Dot import for concise Tk widget DSL.
	. "modernc.org/tk9.0"
)

// resultPanel holds the loading indicator and the result block. Hidden
// widgets keep their grid slot and show empty text.
type resultPanel struct {
	loading    *LabelWidget
	labelLbl   *TLabelWidget
	confidence *TLabelWidget
}

func newResultPanel(parent *FrameWidget, row int) *resultPanel {
	r := &resultPanel{
		loading:    Label(Width(16), Anchor("w")),
		labelLbl:   TLabel(Style(theme.StyleResultLabel), Width(12)),
		confidence: TLabel(Style(theme.StyleResultLabel), Width(12)),
	}
	Grid(r.loading, In(parent), Row(row), Column(0), Sticky("w"), Padx("0.4m"))
	Grid(r.labelLbl, In(parent), Row(row), Column(1), Sticky("we"), Padx("0.2m"))
	Grid(r.confidence, In(parent), Row(row), Column(2), Sticky("we"), Padx("0.2m"))
	return r
}

func (r *resultPanel) ShowLoading() {
	if r == nil || r.loading == nil {
		return
	}
	r.loading.Configure(Txt("Predicting..."))
}

func (r *resultPanel) HideLoading() {
	if r == nil || r.loading == nil {
		return
	}
	r.loading.Configure(Txt(""))
}

func (r *resultPanel) HideResult() {
	if r == nil {
		return
	}
	r.labelLbl.Configure(Txt(""))
	r.confidence.Configure(Txt(""))
}

func (r *resultPanel) ShowResult(label, confidence string) {
	if r == nil {
		return
	}
	r.labelLbl.Configure(Txt("Prediction: " + label))
	r.confidence.Configure(Txt("Confidence: " + confidence))
}
