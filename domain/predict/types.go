// Package predict selects the image to classify, refuses empty drawings and
// drives the single asynchronous classification round-trip.
package predict

import "context"

// Request is one classification request. Built fresh for every submission.
type Request struct {
	Image string      `json:"image"`
	Model ModelChoice `json:"model"`
}

// Payload is the JSON body returned by the classifier service.
type Payload struct {
	Success    bool    `json:"success"`
	Prediction string  `json:"prediction,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
	Error      string  `json:"error,omitempty"`
	ModelUsed  string  `json:"model_used,omitempty"`
}

// Result is a successful classification.
type Result struct {
	Label      string
	Confidence float64
	Model      ModelChoice
	RequestID  string
}

// Classifier performs the network call. Implementations return
// *TransportError for non-2xx responses.
type Classifier interface {
	Classify(ctx context.Context, req Request) (*Payload, error)
}

// LoadingIndicator is the busy affordance toggled around a request.
type LoadingIndicator interface {
	ShowLoading()
	HideLoading()
}

// UploadSource is the read side of the upload slot.
type UploadSource interface {
	Present() bool
	DataURI() string
}

// RasterSource is the read side of the drawing surface.
type RasterSource interface {
	IsBlank() bool
	Encode() (string, error)
}

type requestIDKey struct{}

// WithRequestID attaches a correlation id that the wire client sends along.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the id attached by WithRequestID, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
