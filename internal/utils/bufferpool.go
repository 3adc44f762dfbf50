// Package utils provides utility functions for the ECLIPSE keyword codec.
package utils

import "sync"

// The largest physical chunk in the format is a full DOUB block of 8000
// bytes, so a fresh pool buffer covers any chunk without reallocating.
var bufferPool = sync.Pool{
	New: func() interface{} {
		return make([]byte, 0, 8192)
	},
}

// GetBuffer returns a byte slice from the pool.
func GetBuffer(size int) []byte {
	buf := bufferPool.Get().([]byte)
	if cap(buf) < size {
		return make([]byte, size)
	}
	return buf[:size]
}

// ReleaseBuffer returns a buffer to the pool.
func ReleaseBuffer(buf []byte) {
	//nolint:staticcheck // SA6002: slice descriptor copy is acceptable for sync.Pool
	bufferPool.Put(buf[:0])
}
