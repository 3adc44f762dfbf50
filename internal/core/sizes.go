package core

import "fmt"

// Size calculators compute the exact number of payload bytes an array
// occupies on disk without any I/O. Index-building readers rely on this to
// seek straight from one header to the next; the writers are required to
// produce byte counts that match these functions exactly.

// markerBytes is the cost of the two int32 length markers framing every
// binary chunk.
const markerBytes = 2 * sizeOfInte

// SizeOnDiskBinary returns the on-disk payload size in bytes of an array of
// count elements in binary mode, headers excluded.
func SizeOnDiskBinary(count int64, t ArrayType, elementSize int) (uint64, error) {
	if t == Mess {
		if count > 0 {
			return 0, fmt.Errorf("%w: type MESS can not have size > 0", ErrUnsupportedOperation)
		}
		return 0, nil
	}

	if count <= 0 {
		return 0, nil
	}

	sizeOfElement, maxBlockSize, err := BlockSizeBinary(t, elementSize)
	if err != nil {
		return 0, err
	}
	maxElements := maxBlockSize / sizeOfElement

	fullBlocks := uint64(count) / uint64(maxElements)
	rest := uint64(count) - fullBlocks*uint64(maxElements)

	size := fullBlocks * uint64(maxBlockSize+markerBytes)
	if rest > 0 {
		size += rest*uint64(sizeOfElement) + markerBytes
	}

	return size, nil
}

// SizeOnDiskFormatted returns the on-disk payload size in bytes of an array
// of count elements in formatted mode, header line excluded. Every element
// occupies exactly one column width; each line, full or trailing, ends with
// a single line terminator. Lines wrap independently within each block.
func SizeOnDiskFormatted(count int64, t ArrayType, elementSize int) (uint64, error) {
	if t == Mess {
		if count > 0 {
			return 0, fmt.Errorf("%w: type MESS can not have size > 0", ErrUnsupportedOperation)
		}
		return 0, nil
	}

	if count <= 0 {
		return 0, nil
	}

	maxElements, numColumns, columnWidth, err := BlockSizeFormatted(t, elementSize)
	if err != nil {
		return 0, err
	}

	fullBlocks := count / int64(maxElements)
	lastBlock := count % int64(maxElements)

	var size uint64

	if fullBlocks > 0 {
		linesPerBlock := maxElements / numColumns
		if maxElements%numColumns > 0 {
			linesPerBlock++
		}
		blockSize := int64(maxElements*columnWidth + linesPerBlock)
		size = uint64(fullBlocks * blockSize)
	}

	fullLines := lastBlock / int64(numColumns)
	rest := lastBlock % int64(numColumns)

	size += uint64(lastBlock)*uint64(columnWidth) + uint64(fullLines)
	if rest > 0 {
		size++
	}

	return size, nil
}
