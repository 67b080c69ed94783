package predict

import "fmt"

// Source identifies where the submitted image came from.
type Source int

const (
	SourceUpload Source = iota + 1
	SourceDrawing
)

func (s Source) String() string {
	switch s {
	case SourceUpload:
		return "upload"
	case SourceDrawing:
		return "drawing"
	default:
		return "unknown"
	}
}

// Acquisition is the image chosen for submission.
type Acquisition struct {
	Source Source
	Image  string
}

// Select prefers a committed upload over the drawing, even if the drawing
// has marks.
func Select(up UploadSource, raster RasterSource) (Acquisition, error) {
	if up != nil && up.Present() {
		return Acquisition{Source: SourceUpload, Image: up.DataURI()}, nil
	}
	if raster == nil {
		return Acquisition{}, ErrEmptyInput
	}
	uri, err := raster.Encode()
	if err != nil {
		return Acquisition{}, fmt.Errorf("encode drawing: %w", err)
	}
	return Acquisition{Source: SourceDrawing, Image: uri}, nil
}

// Guard rejects a blank drawing. Uploads always pass.
func Guard(acq Acquisition, raster RasterSource) error {
	if acq.Source != SourceDrawing {
		return nil
	}
	if raster == nil || raster.IsBlank() {
		return ErrEmptyInput
	}
	return nil
}

// Acquire runs Select then Guard.
func Acquire(up UploadSource, raster RasterSource) (Acquisition, error) {
	acq, err := Select(up, raster)
	if err != nil {
		return Acquisition{}, err
	}
	if err := Guard(acq, raster); err != nil {
		return Acquisition{}, err
	}
	return acq, nil
}
