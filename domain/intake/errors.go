package intake

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// UnsupportedTypeError reports a file whose MIME type is not image/*.
type UnsupportedTypeError struct {
	MIMEType string
}

func (e *UnsupportedTypeError) Error() string {
	if e.MIMEType == "" {
		return "unsupported file type: unknown"
	}
	return "unsupported file type: " + e.MIMEType
}

// TooLargeError reports a file above the configured byte limit.
type TooLargeError struct {
	Size  int64
	Limit int64
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("file is %s, limit is %s", humanize.IBytes(uint64(e.Size)), humanize.IBytes(uint64(e.Limit)))
}

// DecodeError reports bytes that passed validation but are not a decodable image.
type DecodeError struct {
	Name string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Name, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
