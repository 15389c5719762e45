package capture

import "errors"

var (
	ErrNoCapture = errors.New("no matching process observed")
)
