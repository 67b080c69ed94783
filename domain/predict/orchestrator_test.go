package predict

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingIndicator struct {
	mu     sync.Mutex
	shown  int
	hidden int
}

func (c *countingIndicator) ShowLoading() { c.mu.Lock(); c.shown++; c.mu.Unlock() }
func (c *countingIndicator) HideLoading() { c.mu.Lock(); c.hidden++; c.mu.Unlock() }

type stubClassifier struct {
	payload *Payload
	err     error
	panicV  any
	gotReq  Request
	gotID   string
	block   chan struct{}
	entered chan struct{}
}

func (s *stubClassifier) Classify(ctx context.Context, req Request) (*Payload, error) {
	s.gotReq = req
	s.gotID = RequestID(ctx)
	if s.entered != nil {
		close(s.entered)
	}
	if s.block != nil {
		<-s.block
	}
	if s.panicV != nil {
		panic(s.panicV)
	}
	return s.payload, s.err
}

func TestPredict_Success(t *testing.T) {
	ind := &countingIndicator{}
	c := &stubClassifier{payload: &Payload{Success: true, Prediction: "7", Confidence: 98.42, ModelUsed: "cnn"}}
	o := NewOrchestrator(c, nil)

	res, err := o.Predict(context.Background(), Request{Image: "data:x", Model: ModelCNN}, ind)
	require.NoError(t, err)
	assert.Equal(t, "7", res.Label)
	assert.Equal(t, 98.42, res.Confidence)
	assert.Equal(t, ModelCNN, res.Model)
	assert.NotEmpty(t, res.RequestID)
	assert.Equal(t, res.RequestID, c.gotID)
	assert.Equal(t, 1, ind.shown)
	assert.Equal(t, 1, ind.hidden)
	assert.False(t, o.InFlight())
}

func TestPredict_HidesLoadingOnEveryPath(t *testing.T) {
	cases := []struct {
		name   string
		client *stubClassifier
		check  func(t *testing.T, err error)
	}{
		{
			name:   "transport",
			client: &stubClassifier{err: &TransportError{StatusCode: 500, Status: "500 Internal Server Error"}},
			check: func(t *testing.T, err error) {
				var te *TransportError
				require.ErrorAs(t, err, &te)
				assert.Equal(t, 500, te.StatusCode)
			},
		},
		{
			name:   "application",
			client: &stubClassifier{payload: &Payload{Success: false, Error: "Model not loaded"}},
			check: func(t *testing.T, err error) {
				var ae *ApplicationError
				require.ErrorAs(t, err, &ae)
				assert.Equal(t, "Model not loaded", ae.Error())
			},
		},
		{
			name:   "application without message",
			client: &stubClassifier{payload: &Payload{Success: false}},
			check: func(t *testing.T, err error) {
				assert.EqualError(t, err, DefaultFailureMessage)
			},
		},
		{
			name:   "network",
			client: &stubClassifier{err: errors.New("connection refused")},
			check: func(t *testing.T, err error) {
				var uf *UnexpectedFault
				require.ErrorAs(t, err, &uf)
				assert.Contains(t, err.Error(), "connection refused")
			},
		},
		{
			name:   "panic",
			client: &stubClassifier{panicV: "kaboom"},
			check: func(t *testing.T, err error) {
				var uf *UnexpectedFault
				require.ErrorAs(t, err, &uf)
				assert.Contains(t, err.Error(), "kaboom")
			},
		},
		{
			name:   "nil payload",
			client: &stubClassifier{},
			check: func(t *testing.T, err error) {
				var uf *UnexpectedFault
				require.ErrorAs(t, err, &uf)
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ind := &countingIndicator{}
			o := NewOrchestrator(tc.client, nil)
			_, err := o.Predict(context.Background(), Request{Image: "data:x", Model: ModelResNet50}, ind)
			tc.check(t, err)
			assert.Equal(t, 1, ind.shown)
			assert.Equal(t, 1, ind.hidden, "loading indicator must be hidden exactly once")
			assert.False(t, o.InFlight())
		})
	}
}

func TestPredict_InvalidModelFallsBack(t *testing.T) {
	c := &stubClassifier{payload: &Payload{Success: true, Prediction: "A", Confidence: 50}}
	_, err := NewOrchestrator(c, nil).Predict(context.Background(), Request{Image: "data:x", Model: "vgg"}, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultModel, c.gotReq.Model)
}

func TestPredict_KeepsCallerRequestID(t *testing.T) {
	c := &stubClassifier{payload: &Payload{Success: true, Prediction: "A", Confidence: 50}}
	ctx := WithRequestID(context.Background(), "req-1")
	res, err := NewOrchestrator(c, nil).Predict(ctx, Request{Image: "data:x", Model: ModelCNN}, nil)
	require.NoError(t, err)
	assert.Equal(t, "req-1", res.RequestID)
	assert.Equal(t, "req-1", c.gotID)
}

func TestPredict_RejectsOverlap(t *testing.T) {
	c := &stubClassifier{
		payload: &Payload{Success: true, Prediction: "3", Confidence: 90},
		block:   make(chan struct{}),
		entered: make(chan struct{}),
	}
	o := NewOrchestrator(c, nil)
	first := &countingIndicator{}

	done := make(chan error, 1)
	go func() {
		_, err := o.Predict(context.Background(), Request{Image: "data:x", Model: ModelCNN}, first)
		done <- err
	}()
	<-c.entered
	require.True(t, o.InFlight())

	second := &countingIndicator{}
	_, err := o.Predict(context.Background(), Request{Image: "data:y", Model: ModelCNN}, second)
	assert.ErrorIs(t, err, ErrBusy)
	assert.Zero(t, second.shown, "rejected request must not touch the indicator")
	assert.Zero(t, second.hidden)

	close(c.block)
	require.NoError(t, <-done)
	assert.Equal(t, 1, first.hidden)
	assert.False(t, o.InFlight())
}

func TestPredict_NilOrchestrator(t *testing.T) {
	var o *Orchestrator
	_, err := o.Predict(context.Background(), Request{}, nil)
	var uf *UnexpectedFault
	assert.ErrorAs(t, err, &uf)
}
