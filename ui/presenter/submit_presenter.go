package presenter

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/soocke/glyphpad/domain/predict"
	"github.com/soocke/glyphpad/ui/model"
)

// LoadingView is the busy affordance.
type LoadingView interface {
	ShowLoading()
	HideLoading()
}

// Predictor runs one classification.
type Predictor interface {
	Predict(ctx context.Context, req predict.Request, ind predict.LoadingIndicator) (predict.Result, error)
	InFlight() bool
}

// SubmitPresenter handles the Predict action: it picks the image on the UI
// thread, runs the request on a worker and hands the outcome to the result
// presenter.
type SubmitPresenter struct {
	ctx      *model.CaptureContext
	predict  Predictor
	dispatch Dispatcher
	loading  LoadingView
	result   *ResultPresenter
	logger   *slog.Logger
	timeout  atomic.Int64 // time.Duration; read by workers
	spawn    func(func())
}

func NewSubmitPresenter(ctx *model.CaptureContext, p Predictor, dispatch Dispatcher, loading LoadingView, result *ResultPresenter, timeout time.Duration, logger *slog.Logger) *SubmitPresenter {
	sp := &SubmitPresenter{ctx: ctx, predict: p, dispatch: dispatch, loading: loading, result: result, logger: logger, spawn: func(f func()) { go f() }}
	sp.SetTimeout(timeout)
	return sp
}

// SetTimeout changes the deadline applied to later submissions. Zero or
// less leaves requests bounded by the client alone.
func (p *SubmitPresenter) SetTimeout(d time.Duration) {
	if p == nil {
		return
	}
	p.timeout.Store(int64(d))
}

// Timeout returns the deadline applied to submissions.
func (p *SubmitPresenter) Timeout() time.Duration {
	if p == nil {
		return 0
	}
	return time.Duration(p.timeout.Load())
}

// SelectModel records the model picked in the selector.
func (p *SubmitPresenter) SelectModel(m predict.ModelChoice) {
	if p == nil || p.ctx == nil {
		return
	}
	p.ctx.SetModel(m)
}

// Submit starts a classification unless one is already running.
func (p *SubmitPresenter) Submit() {
	if p == nil || p.ctx == nil || p.predict == nil {
		return
	}
	if p.predict.InFlight() {
		if p.logger != nil {
			p.logger.Info("submit ignored, prediction in progress")
		}
		return
	}
	acq, err := predict.Acquire(p.ctx.Upload, p.ctx.Surface)
	if err != nil {
		p.result.Fail(err)
		return
	}
	req := predict.Request{Image: acq.Image, Model: p.ctx.Model()}
	if p.logger != nil {
		p.logger.Debug("submitting", "source", acq.Source.String(), "model", req.Model.String(), "bytes", len(acq.Image))
	}
	ind := &postedIndicator{dispatch: p.dispatch, view: p.loading}
	p.spawn(func() {
		ctx := context.Background()
		if d := p.Timeout(); d > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, d)
			defer cancel()
		}
		res, err := p.predict.Predict(ctx, req, ind)
		p.post(func() {
			switch {
			case errors.Is(err, predict.ErrBusy):
				if p.logger != nil {
					p.logger.Info("submit ignored, prediction in progress")
				}
			case err != nil:
				p.result.Fail(err)
			default:
				p.result.Show(res)
			}
		})
	})
}

func (p *SubmitPresenter) post(fn func()) {
	if p.dispatch == nil {
		fn()
		return
	}
	p.dispatch.Post(fn)
}

// postedIndicator forwards loading toggles from the worker to the UI thread.
type postedIndicator struct {
	dispatch Dispatcher
	view     LoadingView
}

func (i *postedIndicator) ShowLoading() {
	if i.view == nil {
		return
	}
	if i.dispatch == nil {
		i.view.ShowLoading()
		return
	}
	i.dispatch.Post(i.view.ShowLoading)
}

func (i *postedIndicator) HideLoading() {
	if i.view == nil {
		return
	}
	if i.dispatch == nil {
		i.view.HideLoading()
		return
	}
	i.dispatch.Post(i.view.HideLoading)
}
