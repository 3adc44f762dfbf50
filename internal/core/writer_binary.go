package core

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/scigolib/eclio/internal/utils"
)

// writeBinaryArray writes the elements of data chunk by chunk, framing
// every chunk with two identical byte-length markers. Chunks are filled to
// the type's block capacity; only the final chunk may be short. The byte
// count produced equals SizeOnDiskBinary for the same count and type.
func writeBinaryArray[T any](w io.Writer, data []T, t ArrayType, elementSize int, put func([]byte, T)) error {
	sizeOfElement, maxBlockSize, err := BlockSizeBinary(t, elementSize)
	if err != nil {
		return err
	}
	maxElements := maxBlockSize / sizeOfElement

	rest := len(data)
	pos := 0

	for rest > 0 {
		num := rest
		if num > maxElements {
			num = maxElements
		}

		blockLen := int32(num * sizeOfElement)
		if err := writeInt32(w, blockLen); err != nil {
			return err
		}

		buf := utils.GetBuffer(num * sizeOfElement)
		for i := 0; i < num; i++ {
			put(buf[i*sizeOfElement:(i+1)*sizeOfElement], data[pos+i])
		}
		if _, err := w.Write(buf); err != nil {
			utils.ReleaseBuffer(buf)
			return err
		}
		utils.ReleaseBuffer(buf)

		if err := writeInt32(w, blockLen); err != nil {
			return err
		}

		pos += num
		rest -= num
	}

	return nil
}

// WriteBinaryInteArray writes INTE elements.
func WriteBinaryInteArray(w io.Writer, data []int32) error {
	return writeBinaryArray(w, data, Inte, sizeOfInte, func(b []byte, v int32) {
		binary.LittleEndian.PutUint32(b, uint32(utils.FlipInt32(v)))
	})
}

// WriteBinaryRealArray writes REAL elements.
func WriteBinaryRealArray(w io.Writer, data []float32) error {
	return writeBinaryArray(w, data, Real, sizeOfReal, func(b []byte, v float32) {
		binary.LittleEndian.PutUint32(b, math.Float32bits(utils.FlipFloat32(v)))
	})
}

// WriteBinaryDoubArray writes DOUB elements.
func WriteBinaryDoubArray(w io.Writer, data []float64) error {
	return writeBinaryArray(w, data, Doub, sizeOfDoub, func(b []byte, v float64) {
		binary.LittleEndian.PutUint64(b, math.Float64bits(utils.FlipFloat64(v)))
	})
}

// WriteBinaryLogiArray writes LOGI elements using the classic "true"
// sentinel, the canonical choice for output.
func WriteBinaryLogiArray(w io.Writer, data []bool) error {
	return writeBinaryArray(w, data, Logi, sizeOfLogi, func(b []byte, v bool) {
		value := falseValue
		if v {
			value = trueValueEcl
		}
		binary.LittleEndian.PutUint32(b, utils.FlipUint32(value))
	})
}

// WriteBinaryCharArray writes CHAR elements as 8-character fields padded
// with trailing blanks.
func WriteBinaryCharArray(w io.Writer, data []string) error {
	return writeBinaryCharElements(w, data, Char, sizeOfChar)
}

// WriteBinaryC0nnArray writes variable-width string elements of the given
// width, padded with trailing blanks.
func WriteBinaryC0nnArray(w io.Writer, data []string, elementSize int) error {
	return writeBinaryCharElements(w, data, C0nn, elementSize)
}

func writeBinaryCharElements(w io.Writer, data []string, t ArrayType, elementSize int) error {
	for _, s := range data {
		if len(s) > elementSize {
			return fmt.Errorf("%w: string %q longer than element size %d", ErrUnsupportedOperation, s, elementSize)
		}
	}
	return writeBinaryArray(w, data, t, elementSize, func(b []byte, v string) {
		n := copy(b, v)
		for i := n; i < len(b); i++ {
			b[i] = ' '
		}
	})
}
