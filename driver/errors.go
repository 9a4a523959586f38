package driver

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

// Errors returned by drivers. Use errors.Is to test for them.
var (
	ErrConnection         = errors.New("driver: connection failure")
	ErrIdentifierNotFound = errors.New("driver: identifier not found")
	ErrPathNotFound       = errors.New("driver: path not found")
	ErrInvalidParameter   = errors.New("driver: invalid parameter")
	ErrClosed             = errors.New("driver: closed")
)

// ConnectionError is a storage failure at Path, which names the identifier
// and index path (or the key or table) that could not be reached.
type ConnectionError struct {
	Path string
	Err  error
}

func (e *ConnectionError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("driver: %v", e.Err)
	}
	return fmt.Sprintf("driver: %s: %v", e.Path, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// NewConnectionError returns a *ConnectionError marked ErrConnection.
func NewConnectionError(path string, err error) error {
	return errors.Mark(&ConnectionError{Path: path, Err: err}, ErrConnection)
}

// NotFound reports a missing identifier.
func NotFound(identifier string) error {
	return NewConnectionError(identifier, ErrIdentifierNotFound)
}

// Path renders an identifier and index path, e.g. "abc[0 2]".
func Path(identifier string, indexes ...int) string {
	if len(indexes) == 0 {
		return identifier
	}
	var b strings.Builder
	b.WriteString(identifier)
	b.WriteByte('[')
	for i, idx := range indexes {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%d", idx)
	}
	b.WriteByte(']')
	return b.String()
}

// InvalidParameter returns an error marked ErrInvalidParameter.
func InvalidParameter(identifier, format string, args ...interface{}) error {
	return errors.Mark(
		errors.Newf("driver: parameter %q: %s", identifier, fmt.Sprintf(format, args...)),
		ErrInvalidParameter,
	)
}
