package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetBuffer(t *testing.T) {
	tests := []struct {
		name string
		size int
	}{
		{
			name: "chunk marker size",
			size: 4,
		},
		{
			name: "full INTE block",
			size: 4000,
		},
		{
			name: "full DOUB block within pool capacity",
			size: 8000,
		},
		{
			name: "larger than pool capacity",
			size: 16384,
		},
		{
			name: "zero size",
			size: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := GetBuffer(tt.size)
			require.NotNil(t, buf)
			require.Equal(t, tt.size, len(buf), "buffer length should match requested size")
			require.GreaterOrEqual(t, cap(buf), tt.size, "buffer capacity should be at least requested size")

			ReleaseBuffer(buf)
		})
	}
}

func TestBufferPoolReuse(t *testing.T) {
	buf1 := GetBuffer(4000)
	require.Equal(t, 4000, len(buf1))
	ReleaseBuffer(buf1)

	buf2 := GetBuffer(4000)
	require.Equal(t, 4000, len(buf2))
	require.GreaterOrEqual(t, cap(buf2), 4000)
	ReleaseBuffer(buf2)
}

func TestBufferPoolConcurrency(t *testing.T) {
	const goroutines = 10
	const iterations = 100

	done := make(chan bool, goroutines)

	for g := 0; g < goroutines; g++ {
		go func() {
			for i := 0; i < iterations; i++ {
				buf := GetBuffer(1024)
				buf[0] = byte(i)
				ReleaseBuffer(buf)
			}
			done <- true
		}()
	}

	for g := 0; g < goroutines; g++ {
		<-done
	}
}
