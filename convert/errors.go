package convert

import "errors"

// ErrUnsupportedInput is returned when a file is neither a PDF nor a
// supported image format. Batch runs skip such files with a warning
// instead of failing.
var ErrUnsupportedInput = errors.New("unsupported input format")
