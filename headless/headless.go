// Package headless runs the classification pipeline without a window, for
// scripting and for checking a service from the command line.
package headless

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/soocke/glyphpad/config"
	"github.com/soocke/glyphpad/domain/classifier"
	"github.com/soocke/glyphpad/domain/intake"
	"github.com/soocke/glyphpad/domain/predict"
	"github.com/soocke/glyphpad/ui/presenter"
)

// Runner holds the services shared by the headless commands.
type Runner struct {
	cfg       *config.Config
	client    *classifier.Client
	validator *intake.Validator
	orch      *predict.Orchestrator
	logger    *slog.Logger
}

// New builds a runner from cfg. opts are applied after the config-derived
// client options.
func New(cfg *config.Config, logger *slog.Logger, opts ...classifier.Option) (*Runner, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	opts = append([]classifier.Option{classifier.WithTimeout(cfg.RequestTimeout()), classifier.WithLogger(logger)}, opts...)
	client, err := classifier.New(cfg.Endpoint, opts...)
	if err != nil {
		return nil, err
	}
	return &Runner{
		cfg:       cfg,
		client:    client,
		validator: intake.NewValidator(cfg.MaxUploadBytes),
		orch:      predict.NewOrchestrator(client, logger),
		logger:    logger,
	}, nil
}

// Predict classifies the image at path with model and writes
// "<label> <confidence>%" to out.
func (r *Runner) Predict(ctx context.Context, path string, model predict.ModelChoice, out io.Writer) (predict.Result, error) {
	f, err := intake.FromPath(path)
	if err != nil {
		return predict.Result{}, err
	}
	u, err := r.validator.Decode(ctx, f)
	if err != nil {
		return predict.Result{}, err
	}
	var slot intake.Slot
	slot.Set(u)
	acq, err := predict.Acquire(&slot, nil)
	if err != nil {
		return predict.Result{}, err
	}
	res, err := r.orch.Predict(ctx, predict.Request{Image: acq.Image, Model: model}, nil)
	if err != nil {
		return predict.Result{}, err
	}
	fmt.Fprintf(out, "%s %s\n", res.Label, presenter.FormatConfidence(res.Confidence))
	return res, nil
}

// Health writes the service status and per-model availability to out.
func (r *Runner) Health(ctx context.Context, out io.Writer) (*classifier.HealthStatus, error) {
	h, err := r.client.Health(ctx)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(out, "endpoint: %s\nstatus: %s\n", r.client.Endpoint(), h.Status)
	names := make([]string, 0, len(h.ModelsLoaded))
	for name := range h.ModelsLoaded {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		state := "not loaded"
		if h.ModelsLoaded[name] {
			state = "loaded"
		}
		fmt.Fprintf(out, "  %-12s %s\n", name, state)
	}
	return h, nil
}
