package counters

import "errors"

// ErrSourceUnavailable is returned when a counter source cannot be opened or queried.
var ErrSourceUnavailable = errors.New("counter source unavailable")

// ErrParse is returned when a counter source does not match its expected format.
var ErrParse = errors.New("counter source parse error")

// ErrCoreIndex is returned when a parsed core index falls outside the CPU set.
var ErrCoreIndex = errors.New("core index out of range")
