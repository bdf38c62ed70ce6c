package scheduler

import "errors"

var (
	ErrEmptyTaskSet        = errors.New("task set is empty")
	ErrDuplicateTaskID     = errors.New("duplicate task ID")
	ErrHorizonOverflow     = errors.New("hyperperiod overflows int64")
	ErrHorizonTooLarge     = errors.New("hyperperiod exceeds simulation limit")
	ErrSearchSpaceTooLarge = errors.New("search space too large for exhaustive search")
)
