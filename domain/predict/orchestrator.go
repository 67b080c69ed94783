package predict

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/google/uuid"
)

// Orchestrator runs one classification at a time and guarantees the loading
// indicator is hidden on every exit path.
type Orchestrator struct {
	client   Classifier
	logger   *slog.Logger
	inFlight atomic.Bool
}

// NewOrchestrator returns an orchestrator using client for the network call.
func NewOrchestrator(client Classifier, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{client: client, logger: logger}
}

// InFlight reports whether a request is pending.
func (o *Orchestrator) InFlight() bool {
	return o != nil && o.inFlight.Load()
}

// Predict sends req and maps the outcome. ind may be nil.
func (o *Orchestrator) Predict(ctx context.Context, req Request, ind LoadingIndicator) (res Result, err error) {
	if o == nil || o.client == nil {
		return Result{}, &UnexpectedFault{Err: errors.New("no classifier configured")}
	}
	if !o.inFlight.CompareAndSwap(false, true) {
		return Result{}, ErrBusy
	}
	defer o.inFlight.Store(false)

	if !req.Model.Valid() {
		req.Model = DefaultModel
	}
	id := RequestID(ctx)
	if id == "" {
		id = uuid.NewString()
		ctx = WithRequestID(ctx, id)
	}

	if ind != nil {
		ind.ShowLoading()
		defer ind.HideLoading()
	}
	defer func() {
		if r := recover(); r != nil {
			res = Result{}
			err = &UnexpectedFault{Err: fmt.Errorf("panic: %v", r)}
		}
		o.logOutcome(id, req.Model, res, err)
	}()

	payload, cerr := o.client.Classify(ctx, req)
	if cerr != nil {
		return Result{}, classify(cerr)
	}
	if payload == nil {
		return Result{}, &UnexpectedFault{Err: errors.New("empty response")}
	}
	if !payload.Success {
		return Result{}, &ApplicationError{Message: payload.Error}
	}
	return Result{
		Label:      payload.Prediction,
		Confidence: payload.Confidence,
		Model:      req.Model,
		RequestID:  id,
	}, nil
}

// classify keeps typed transport and application errors and folds everything
// else into UnexpectedFault.
func classify(err error) error {
	var te *TransportError
	if errors.As(err, &te) {
		return te
	}
	var ae *ApplicationError
	if errors.As(err, &ae) {
		return ae
	}
	var uf *UnexpectedFault
	if errors.As(err, &uf) {
		return uf
	}
	return &UnexpectedFault{Err: err}
}

func (o *Orchestrator) logOutcome(id string, model ModelChoice, res Result, err error) {
	if o.logger == nil {
		return
	}
	if err != nil {
		o.logger.Error("prediction failed", "request_id", id, "model", model.String(), "error", err)
		return
	}
	o.logger.Info("prediction complete", "request_id", id, "model", model.String(), "label", res.Label, "confidence", res.Confidence)
}
