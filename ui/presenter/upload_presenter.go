package presenter

import (
	"context"
	"log/slog"

	"github.com/soocke/glyphpad/domain/intake"
	"github.com/soocke/glyphpad/ui/model"
)

// UploadView toggles between the prompt and the preview region.
type UploadView interface {
	ShowPreview(u *intake.Upload)
	ShowPrompt()
}

// UploadDecoder validates and decodes a file.
type UploadDecoder interface {
	Decode(ctx context.Context, f intake.File) (*intake.Upload, error)
}

// UploadPresenter runs intake off the UI thread and commits results back on
// it. A selection or removal made while a decode is pending wins: the older
// decode is dropped when it completes.
type UploadPresenter struct {
	ctx      *model.CaptureContext
	decoder  UploadDecoder
	dispatch Dispatcher
	view     UploadView
	errs     Notifier
	logger   *slog.Logger

	// spawn runs work asynchronously; tests replace it to run inline.
	spawn func(func())
}

func NewUploadPresenter(ctx *model.CaptureContext, decoder UploadDecoder, dispatch Dispatcher, view UploadView, errs Notifier, logger *slog.Logger) *UploadPresenter {
	return &UploadPresenter{ctx: ctx, decoder: decoder, dispatch: dispatch, view: view, errs: errs, logger: logger, spawn: func(f func()) { go f() }}
}

// ChoosePath reads and decodes the file at path.
func (p *UploadPresenter) ChoosePath(path string) {
	if p == nil || p.ctx == nil || path == "" {
		return
	}
	gen := p.ctx.NextUploadGeneration()
	p.spawn(func() {
		f, err := intake.FromPath(path)
		if err != nil {
			p.finish(gen, nil, err)
			return
		}
		p.decode(gen, f)
	})
}

// Choose decodes an already loaded file.
func (p *UploadPresenter) Choose(f intake.File) {
	if p == nil || p.ctx == nil {
		return
	}
	gen := p.ctx.NextUploadGeneration()
	p.spawn(func() { p.decode(gen, f) })
}

func (p *UploadPresenter) decode(gen uint64, f intake.File) {
	if p.decoder == nil {
		return
	}
	u, err := p.decoder.Decode(context.Background(), f)
	p.finish(gen, u, err)
}

func (p *UploadPresenter) finish(gen uint64, u *intake.Upload, err error) {
	commit := func() {
		if p.ctx.UploadGeneration() != gen {
			if p.logger != nil {
				p.logger.Debug("stale upload discarded", "generation", gen)
			}
			return
		}
		if err != nil {
			if p.logger != nil {
				p.logger.Warn("upload rejected", "error", err)
			}
			if p.errs != nil {
				p.errs.Notify("Error", UserMessage(err))
			}
			return
		}
		p.ctx.Upload.Set(u)
		if p.view != nil {
			p.view.ShowPreview(u)
		}
		if p.logger != nil {
			p.logger.Info("upload ready", "name", u.Name, "mime", u.MIMEType, "bytes", u.Size, "width", u.Width, "height", u.Height)
		}
	}
	if p.dispatch == nil {
		commit()
		return
	}
	p.dispatch.Post(commit)
}

// Remove clears the slot and shows the upload prompt again.
func (p *UploadPresenter) Remove() {
	if p == nil || p.ctx == nil {
		return
	}
	p.ctx.NextUploadGeneration()
	p.ctx.Upload.Clear()
	if p.view != nil {
		p.view.ShowPrompt()
	}
}
