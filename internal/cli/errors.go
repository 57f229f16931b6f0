package cli

import "errors"

// Error variables for the command surface.
var (
	ErrFlagRequiresArg = errors.New("flag requires an argument")
	ErrUnknownFlag     = errors.New("unknown flag")
	ErrWrongArgCount   = errors.New("wrong number of arguments")

	// ErrUnresolvedConflicts reports a merge that still contains
	// conflict blocks. It maps to exit code 1 without an error line.
	ErrUnresolvedConflicts = errors.New("merge left unresolved conflicts")
)
