package converter

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// StructuringError reports why raw data could not be turned into the requested type.
type StructuringError struct {
	Target   string   // Go type that was requested
	Problems []string // one entry per offending field
	Err      error
}

func (e *StructuringError) Error() string {
	return fmt.Sprintf("structure %s: %s", e.Target, strings.Join(e.Problems, "; "))
}

func (e *StructuringError) Unwrap() error {
	return e.Err
}

// IsStructuringError returns true if err (or any wrapped error) is a StructuringError.
func IsStructuringError(err error) bool {
	var structErr *StructuringError
	return errors.As(err, &structErr)
}

func newStructuringError(target reflect.Type, err error) *StructuringError {
	structErr := &StructuringError{Target: typeName(target), Err: err}

	var decodeErr *mapstructure.Error
	if errors.As(err, &decodeErr) && len(decodeErr.Errors) > 0 {
		structErr.Problems = append(structErr.Problems, decodeErr.Errors...)
	} else {
		structErr.Problems = []string{err.Error()}
	}
	return structErr
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
