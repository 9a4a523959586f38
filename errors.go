package geometry

import (
	"github.com/cockroachdb/errors"
)

// Error kinds returned by this package. Use errors.Is to test for them; the
// concrete error message names the offending argument.
var (
	ErrArgumentNull         = errors.New("geometry: argument is nil")
	ErrArgumentOutOfRange   = errors.New("geometry: argument out of range")
	ErrInvalidArgument      = errors.New("geometry: invalid argument")
	ErrUnsupportedOperation = errors.New("geometry: unsupported operation")
	ErrUnsupportedType      = errors.New("geometry: geometry type not supported")
)

// ArgumentNull returns an error marked ErrArgumentNull for the named argument.
func ArgumentNull(name string) error {
	return errors.Mark(errors.Newf("geometry: %s is nil", errors.Safe(name)), ErrArgumentNull)
}

// ArgumentOutOfRange returns an error marked ErrArgumentOutOfRange.
func ArgumentOutOfRange(name string, value, count int) error {
	return errors.Mark(
		errors.Newf("geometry: %s %d is out of range [0, %d)", errors.Safe(name), value, count),
		ErrArgumentOutOfRange,
	)
}

// InvalidArgument returns an error marked ErrInvalidArgument.
func InvalidArgument(format string, args ...interface{}) error {
	return errors.Mark(errors.Newf("geometry: "+format, args...), ErrInvalidArgument)
}

// UnsupportedOperation returns an error marked ErrUnsupportedOperation.
func UnsupportedOperation(op string, kind Kind) error {
	return errors.Mark(
		errors.Newf("geometry: %s is not supported by %s", errors.Safe(op), kind),
		ErrUnsupportedOperation,
	)
}

// UnsupportedType returns an error marked both ErrUnsupportedType and
// ErrInvalidArgument.
func UnsupportedType(g interface{}) error {
	err := errors.Newf("geometry: geometry type %T not supported", g)
	return errors.Mark(errors.Mark(err, ErrUnsupportedType), ErrInvalidArgument)
}
