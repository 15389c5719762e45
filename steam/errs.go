package steam

import "errors"

var ErrNotFound = errors.New("steam installation not found")
