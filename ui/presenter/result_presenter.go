package presenter

import (
	"errors"
	"io/fs"
	"log/slog"
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/soocke/glyphpad/domain/intake"
	"github.com/soocke/glyphpad/domain/predict"
)

// ResultView shows or hides the result block.
type ResultView interface {
	HideResult()
	ShowResult(label, confidence string)
}

// Notifier raises one blocking user notification.
type Notifier interface {
	Notify(title, message string)
}

const (
	msgEmptyInput      = "Please draw a character or upload an image."
	msgUnsupportedType = "Please select an image file."
	msgPredictionError = "Error making prediction: "
)

// FormatConfidence renders v verbatim with a percent sign; no rounding.
func FormatConfidence(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}

// UserMessage maps err to the text shown in the notification.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var (
		eie *predict.EmptyInputError
		ute *intake.UnsupportedTypeError
		tle *intake.TooLargeError
		de  *intake.DecodeError
		pe  *fs.PathError
	)
	switch {
	case errors.As(err, &eie):
		return msgEmptyInput
	case errors.As(err, &ute):
		return msgUnsupportedType
	case errors.As(err, &tle):
		limit := tle.Limit
		if limit <= 0 {
			limit = intake.DefaultMaxBytes
		}
		return "File size must be less than " + humanize.IBytes(uint64(limit)) + "."
	case errors.As(err, &de):
		return "Could not read image " + de.Name + "."
	case errors.As(err, &pe):
		return "Could not open " + pe.Path + "."
	}
	return msgPredictionError + err.Error()
}

// ResultPresenter renders classification outcomes.
type ResultPresenter struct {
	view   ResultView
	notify Notifier
	logger *slog.Logger
}

func NewResultPresenter(view ResultView, notify Notifier, logger *slog.Logger) *ResultPresenter {
	return &ResultPresenter{view: view, notify: notify, logger: logger}
}

// Show hides the block, fills it, then reveals it.
func (p *ResultPresenter) Show(res predict.Result) {
	if p == nil || p.view == nil {
		return
	}
	p.view.HideResult()
	p.view.ShowResult(res.Label, FormatConfidence(res.Confidence))
}

// Fail hides the block and raises a single notification.
func (p *ResultPresenter) Fail(err error) {
	if p == nil || err == nil {
		return
	}
	if p.view != nil {
		p.view.HideResult()
	}
	if p.logger != nil {
		p.logger.Error("prediction error", "error", err)
	}
	if p.notify != nil {
		p.notify.Notify("Error", UserMessage(err))
	}
}
