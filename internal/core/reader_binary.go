package core

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/scigolib/eclio/internal/utils"
)

// Binary payloads are Fortran unformatted records: every chunk is framed by
// two identical int32 byte-length markers, and no chunk may hold more
// elements than the type's block capacity. Only the final chunk of an array
// may be short.

// readBinaryArray reads count elements of type t chunk by chunk, converting
// each raw element with conv. It validates the framing at every chunk
// boundary and never returns a partial result.
func readBinaryArray[T any](r io.Reader, count int64, t ArrayType, elementSize int, conv func([]byte) (T, error)) ([]T, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: negative element count %d", ErrUnsupportedOperation, count)
	}

	sizeOfElement, maxBlockSize, err := BlockSizeBinary(t, elementSize)
	if err != nil {
		return nil, err
	}
	maxElements := maxBlockSize / sizeOfElement

	arr := make([]T, 0, count)
	rest := count

	for rest > 0 {
		head, err := readInt32(r)
		if err != nil {
			return nil, utils.WrapError("chunk marker read failed", err)
		}

		num := int(head) / sizeOfElement
		if num > maxElements || num < 0 {
			return nil, fmt.Errorf("%w: inconsistent chunk header or incorrect number of elements", ErrCorruptBlock)
		}

		buf := utils.GetBuffer(num * sizeOfElement)
		if _, err := io.ReadFull(r, buf); err != nil {
			utils.ReleaseBuffer(buf)
			return nil, utils.WrapError("chunk data read failed", err)
		}

		for i := 0; i < num; i++ {
			v, err := conv(buf[i*sizeOfElement : (i+1)*sizeOfElement])
			if err != nil {
				utils.ReleaseBuffer(buf)
				return nil, err
			}
			arr = append(arr, v)
		}
		utils.ReleaseBuffer(buf)

		rest -= int64(num)

		if (num < maxElements && rest != 0) || (num == maxElements && rest < 0) {
			return nil, fmt.Errorf("%w: incorrect number of elements", ErrCorruptBlock)
		}

		tail, err := readInt32(r)
		if err != nil {
			return nil, utils.WrapError("chunk marker read failed", err)
		}
		if tail != head {
			return nil, fmt.Errorf("%w: tail not matching header", ErrCorruptBlock)
		}
	}

	return arr, nil
}

// ReadBinaryInteArray reads count INTE elements.
func ReadBinaryInteArray(r io.Reader, count int64) ([]int32, error) {
	return readBinaryArray(r, count, Inte, sizeOfInte, func(b []byte) (int32, error) {
		return utils.FlipInt32(int32(binary.LittleEndian.Uint32(b))), nil
	})
}

// ReadBinaryRealArray reads count REAL elements.
func ReadBinaryRealArray(r io.Reader, count int64) ([]float32, error) {
	return readBinaryArray(r, count, Real, sizeOfReal, func(b []byte) (float32, error) {
		return utils.FlipFloat32(floatFromHostBits(b)), nil
	})
}

// ReadBinaryDoubArray reads count DOUB elements.
func ReadBinaryDoubArray(r io.Reader, count int64) ([]float64, error) {
	return readBinaryArray(r, count, Doub, sizeOfDoub, func(b []byte) (float64, error) {
		return utils.FlipFloat64(doubleFromHostBits(b)), nil
	})
}

// ReadBinaryLogiArray reads count LOGI elements, mapping the two historical
// "true" sentinels and the "false" sentinel; any other pattern is invalid.
func ReadBinaryLogiArray(r io.Reader, count int64) ([]bool, error) {
	return readBinaryArray(r, count, Logi, sizeOfLogi, func(b []byte) (bool, error) {
		switch utils.FlipUint32(binary.LittleEndian.Uint32(b)) {
		case trueValueEcl, trueValueIx:
			return true, nil
		case falseValue:
			return false, nil
		}
		return false, fmt.Errorf("%w: unrecognized LOGI value 0x%08X", ErrInvalidBooleanEncoding, binary.BigEndian.Uint32(b))
	})
}

// ReadBinaryRawLogiArray reads count LOGI elements without decoding the
// sentinel patterns, preserving the exact encoding for rewriting.
func ReadBinaryRawLogiArray(r io.Reader, count int64) ([]uint32, error) {
	return readBinaryArray(r, count, Logi, sizeOfLogi, func(b []byte) (uint32, error) {
		return binary.LittleEndian.Uint32(b), nil
	})
}

// ReadBinaryCharArray reads count CHAR elements, right-trimming the padding
// blanks of each 8-character field.
func ReadBinaryCharArray(r io.Reader, count int64) ([]string, error) {
	return readBinaryArray(r, count, Char, sizeOfChar, func(b []byte) (string, error) {
		return strings.TrimRight(string(b), " "), nil
	})
}

// ReadBinaryC0nnArray reads count variable-width string elements of the
// given width, right-trimming padding blanks.
func ReadBinaryC0nnArray(r io.Reader, count int64, elementSize int) ([]string, error) {
	return readBinaryArray(r, count, C0nn, elementSize, func(b []byte) (string, error) {
		return strings.TrimRight(string(b), " "), nil
	})
}

// floatFromHostBits reinterprets 4 raw bytes as a host-order float32, the
// value the byte-order flip then corrects.
func floatFromHostBits(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}

// doubleFromHostBits reinterprets 8 raw bytes as a host-order float64.
func doubleFromHostBits(b []byte) float64 {
	return math.Float64frombits(binary.LittleEndian.Uint64(b))
}
