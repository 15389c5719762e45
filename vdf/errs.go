package vdf

import "errors"

var (
	ErrMalformed = errors.New("malformed input")
	ErrEncode    = errors.New("encode error")
)
