package shortcuts

import "errors"

var (
	ErrBadDocument = errors.New("bad shortcuts document")
	ErrWrite       = errors.New("write failure")
)
