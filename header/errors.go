package header

import (
	"errors"
	"fmt"
)

// ErrFieldConversion is matched by every FieldConversionError.
var ErrFieldConversion = errors.New("could not parse value for field")

// FieldConversionError is returned by Decode when the conversion registered
// for a field fails. The original error is available via Unwrap.
type FieldConversionError struct {
	Field string // internal name of the field
	Value string // raw value that failed to convert
	Err   error
}

// Error returns the error message.
func (err *FieldConversionError) Error() string {
	return fmt.Sprintf("could not parse value for field '%s': %v", err.Field, err.Err)
}

// Unwrap returns the error returned by the conversion.
func (err *FieldConversionError) Unwrap() error {
	return err.Err
}

// Is returns true for ErrFieldConversion.
func (err *FieldConversionError) Is(target error) bool {
	return target == ErrFieldConversion
}
