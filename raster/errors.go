package raster

import "fmt"

// DecodeError reports bytes that could not be interpreted as a supported
// raster format. It is a user data error: the whole job is rejected and
// retrying without different input cannot succeed.
type DecodeError struct {
	Encoding Encoding
	Ref      string
	Err      error
}

func (e *DecodeError) Error() string {
	if e.Ref != "" {
		return fmt.Sprintf("cannot parse (%s) data %q as an image: %v", e.Encoding, e.Ref, e.Err)
	}
	return fmt.Sprintf("cannot parse (%s) data as an image: %v", e.Encoding, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// NotFoundError reports an external image reference that does not exist.
// It is distinguished from DecodeError so callers can point at the
// reference instead of the file contents.
type NotFoundError struct {
	Ref string
	Err error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("image file %q could not be found: %v", e.Ref, e.Err)
}

func (e *NotFoundError) Unwrap() error { return e.Err }
