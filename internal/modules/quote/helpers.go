package quote

import "errors"

var (
	errEmptyText        = errors.New("quote text must not be empty")
	errWeightOutOfRange = errors.New("weight must be between 1 and 10")
	errDuplicateQuote   = errors.New("an identical quote already exists")
	errInvalidAction    = errors.New("invalid action")
)
