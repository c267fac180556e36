package simulation

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/simpop/period"
)

var (
	// ErrWrongEntity indicates a variable resolved against an entity kind
	// that does not own it. The finalizer treats this as "not applicable",
	// not as a failure.
	ErrWrongEntity = errors.New("simulation: variable belongs to another entity kind")
	// ErrBadArraySize indicates a committed array whose length differs from
	// the population count.
	ErrBadArraySize = errors.New("simulation: array length does not match population count")
	// ErrValueNotSet indicates no value was committed for the requested
	// (variable, period).
	ErrValueNotSet = errors.New("simulation: no value set for period")
)

// PeriodMismatchError reports an input period incompatible with the
// variable's definition period: finer grained, or undecomposable.
type PeriodMismatchError struct {
	Variable string
	Period   period.Period
	Message  string
}

func (e *PeriodMismatchError) Error() string {
	return fmt.Sprintf("simulation: %s", e.Message)
}

func newPeriodMismatch(name string, p period.Period, def period.Unit) *PeriodMismatchError {
	return &PeriodMismatchError{
		Variable: name,
		Period:   p,
		Message: fmt.Sprintf("unable to set a value for variable %q for period %s: values are defined per %s",
			name, p.Key(), def),
	}
}
