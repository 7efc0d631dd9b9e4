package source

import (
	"fmt"
	"math"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
)

var nan = math.NaN()

type number interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~float32 | ~float64
}

type valueArray[T number] interface {
	Len() int
	IsNull(i int) bool
	Value(i int) T
}

func appendValues[T number](dst []float64, arr valueArray[T]) []float64 {
	for i := 0; i < arr.Len(); i++ {
		if arr.IsNull(i) {
			dst = append(dst, nan)
			continue
		}
		dst = append(dst, float64(arr.Value(i)))
	}
	return dst
}

// appendArray converts a numeric arrow array to float64, nulls becoming NaN.
func appendArray(dst []float64, column string, arr arrow.Array) ([]float64, error) {
	switch a := arr.(type) {
	case *array.Float64:
		return appendValues[float64](dst, a), nil
	case *array.Float32:
		return appendValues[float32](dst, a), nil
	case *array.Int64:
		return appendValues[int64](dst, a), nil
	case *array.Int32:
		return appendValues[int32](dst, a), nil
	case *array.Int16:
		return appendValues[int16](dst, a), nil
	case *array.Int8:
		return appendValues[int8](dst, a), nil
	case *array.Uint64:
		return appendValues[uint64](dst, a), nil
	case *array.Uint32:
		return appendValues[uint32](dst, a), nil
	case *array.Uint16:
		return appendValues[uint16](dst, a), nil
	case *array.Uint8:
		return appendValues[uint8](dst, a), nil
	case *array.Null:
		for i := 0; i < a.Len(); i++ {
			dst = append(dst, nan)
		}
		return dst, nil
	default:
		return nil, fmt.Errorf("column %q has non-numeric type %s", column, arr.DataType())
	}
}
