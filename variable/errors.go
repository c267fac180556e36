package variable

import "errors"

var (
	// ErrVariableNotFound indicates a name the registry does not declare.
	ErrVariableNotFound = errors.New("variable: not found")
	// ErrBadValue indicates a raw value that cannot be coerced to the variable's type.
	ErrBadValue = errors.New("variable: value cannot be coerced")
	// ErrBadVariable indicates an invalid declaration passed to NewRegistry.
	ErrBadVariable = errors.New("variable: invalid declaration")
)
