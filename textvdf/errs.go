package textvdf

import "errors"

var (
	ErrSyntax  = errors.New("keyvalues syntax error")
	ErrNoBlock = errors.New("no such block")
)
