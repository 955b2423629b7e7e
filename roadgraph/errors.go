package roadgraph

import "errors"

// ErrInvalidArgument is the parent of every graph construction error.
// Callers that only care about the category can test with errors.Is.
var ErrInvalidArgument = errors.New("roadgraph: invalid argument")

var (
	ErrInvalidPoint    = invalidArgument("point has a non-finite coordinate")
	ErrNegativeLength  = invalidArgument("edge length must be a non-negative number")
	ErrUnknownVertex   = invalidArgument("endpoint is not a vertex of the graph")
	ErrUnknownStrategy = invalidArgument("unknown search strategy")
)

type argumentError struct {
	msg string
}

func invalidArgument(msg string) error {
	return &argumentError{msg: msg}
}

func (e *argumentError) Error() string {
	return "roadgraph: " + e.msg
}

func (e *argumentError) Unwrap() error {
	return ErrInvalidArgument
}
