package filter

import "errors"

// ErrInvalidRule indicates a rule that cannot be parsed.
var ErrInvalidRule = errors.New("invalid rule")
