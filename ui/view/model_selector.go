package view

import (
	"log/slog"
	"strconv"

	"github.com/soocke/glyphpad/domain/predict"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// newModelSelector builds a read-only combobox over the known models.
// Exactly one model is selected at any time.
func newModelSelector(parent *FrameWidget, row int, initial predict.ModelChoice, logger *slog.Logger, onChange func(predict.ModelChoice)) *TComboboxWidget {
	models := predict.Models()
	labels := make([]string, len(models))
	current := 0
	for i, m := range models {
		labels[i] = m.Label()
		if m == initial {
			current = i
		}
	}
	Grid(Label(Txt("Model"), Anchor("w")), In(parent), Row(row), Column(0), Sticky("w"), Padx("0.4m"))
	cb := TCombobox(Values(labels), State("readonly"), Width(18))
	Grid(cb, In(parent), Row(row), Column(1), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	cb.Current(current)
	Bind(cb, "<<ComboboxSelected>>", Command(func() {
		idx, err := strconv.Atoi(cb.Current(nil))
		if err != nil || idx < 0 || idx >= len(models) {
			if logger != nil {
				logger.Error("model selection parse error", "error", err)
			}
			return
		}
		if onChange != nil {
			onChange(models[idx])
		}
	}))
	return cb
}
