package utils

import (
	"math"
	"math/bits"
)

// The ECLIPSE exchange format stores every binary value big-endian. The
// codec reads raw bytes in host (little-endian) order and flips, so each
// flip function must be a pure involution: Flip(Flip(x)) == x for all bit
// patterns, NaN payloads of the floating variants included.

// FlipInt32 reverses the byte order of a 32-bit integer.
func FlipInt32(v int32) int32 {
	return int32(bits.ReverseBytes32(uint32(v)))
}

// FlipInt64 reverses the byte order of a 64-bit integer.
func FlipInt64(v int64) int64 {
	return int64(bits.ReverseBytes64(uint64(v)))
}

// FlipFloat32 reverses the byte order of a 32-bit float, operating on the
// raw bit pattern.
func FlipFloat32(v float32) float32 {
	return math.Float32frombits(bits.ReverseBytes32(math.Float32bits(v)))
}

// FlipFloat64 reverses the byte order of a 64-bit float, operating on the
// raw bit pattern.
func FlipFloat64(v float64) float64 {
	return math.Float64frombits(bits.ReverseBytes64(math.Float64bits(v)))
}

// FlipUint32 reverses the byte order of an unsigned 32-bit value. The LOGI
// sentinel encodings are compared as unsigned patterns.
func FlipUint32(v uint32) uint32 {
	return bits.ReverseBytes32(v)
}
