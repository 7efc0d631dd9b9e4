package dataset

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyTable is returned when a table has no series or no records at all.
	ErrEmptyTable = errors.New("table has no records")

	// ErrInvalidTableShape is returned when records are not homogeneous, a group
	// is empty, a value is not finite, or a rotation input is not rectangular.
	ErrInvalidTableShape = errors.New("invalid table shape")
)

// ShapeError locates a shape violation. Series and Index are -1 when the
// violation is not tied to a particular series or record.
type ShapeError struct {
	Series int
	Index  int
	Reason string
}

func (e *ShapeError) Error() string {
	switch {
	case e.Series < 0:
		return fmt.Sprintf("%v: %s", ErrInvalidTableShape, e.Reason)
	case e.Index < 0:
		return fmt.Sprintf("%v: series %d: %s", ErrInvalidTableShape, e.Series, e.Reason)
	default:
		return fmt.Sprintf("%v: series %d record %d: %s", ErrInvalidTableShape, e.Series, e.Index, e.Reason)
	}
}

func (e *ShapeError) Unwrap() error {
	return ErrInvalidTableShape
}

func shapeErr(series, index int, format string, args ...interface{}) error {
	return &ShapeError{Series: series, Index: index, Reason: fmt.Sprintf(format, args...)}
}
