package period

import "errors"

var (
	// ErrMalformed indicates a key that matches none of the accepted period forms.
	ErrMalformed = errors.New("period: malformed period key")
	// ErrInvalidDate indicates a syntactically valid key naming an impossible date.
	ErrInvalidDate = errors.New("period: invalid calendar date")
)
