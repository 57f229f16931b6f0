package todotxt

import "errors"

// Error variables for the todo.txt codec. Parse failures are fatal to the
// caller: malformed lines never reach the diff engine.
var (
	ErrEmptyLine     = errors.New("empty task line")
	ErrBadDate       = errors.New("invalid date")
	ErrBadRecurrence = errors.New("invalid recurrence")
)
