package game

import "github.com/pkg/errors"

var (
	// ErrIllegalAction is returned when an action outside the legal set is applied.
	ErrIllegalAction = errors.New("illegal action")
	// ErrIllegalState is returned when a query does not fit the state, such as
	// a search on a terminal state or a result on an unfinished one.
	ErrIllegalState = errors.New("illegal state")
	// ErrConfiguration is returned for invalid searcher or driver settings.
	ErrConfiguration = errors.New("invalid configuration")
)

// ResultOf returns the result of a terminal state, or wraps ErrIllegalState.
// Games call it from their Result methods once they know the outcome.
func ResultOf(terminal bool, result Result) (Result, error) {
	if !terminal {
		return Draw, errors.Wrap(ErrIllegalState, "result requested for an unfinished game")
	}
	return result, nil
}
