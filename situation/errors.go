package situation

import (
	"fmt"
	"strings"
)

// CodeNotFound marks errors caused by a name the model does not declare,
// the 404 of the error taxonomy.
const CodeNotFound = 404

// Error is the structured input error every validation failure surfaces:
// a path of keys locating the offending document fragment (entity kind,
// instance id, variable or role name, period, list position — as
// applicable), a human-readable message and an optional machine code.
// No failure is retried; the first one aborts the build.
type Error struct {
	Path    []string
	Message string
	Code    int
}

func (e *Error) Error() string {
	if len(e.Path) == 0 {
		return "situation: " + e.Message
	}
	return fmt.Sprintf("situation: %s: %s", strings.Join(e.Path, "/"), e.Message)
}

func newError(path []string, format string, args ...any) *Error {
	return &Error{Path: path, Message: fmt.Sprintf(format, args...)}
}

func newNotFoundError(path []string, format string, args ...any) *Error {
	return &Error{Path: path, Message: fmt.Sprintf(format, args...), Code: CodeNotFound}
}

// checkObject asserts that a document fragment is a mapping, failing with
// the canonical type-mismatch message at the given path.
func checkObject(v any, path []string) (*Object, error) {
	obj, ok := v.(*Object)
	if !ok {
		return nil, newError(path, "Invalid type: must be of type 'Object'.")
	}
	return obj, nil
}
