// Package core implements the on-disk codec for the ECLIPSE keyword-array
// exchange format: fixed-format record headers, Fortran unformatted block
// framing in binary mode, and column-wrapped text in formatted mode.
package core

import (
	"fmt"
	"strconv"
)

// ArrayType identifies the element type of a keyword array. The set is
// closed; every registry lookup switches exhaustively over it so that a new
// variant is a compile-time hole, not a silent fallthrough.
type ArrayType uint8

// Array element types of the exchange format.
const (
	Inte ArrayType = iota // 32-bit integers (INTE).
	Real                  // 32-bit floats (REAL).
	Doub                  // 64-bit floats (DOUB).
	Logi                  // booleans with sentinel encoding (LOGI).
	Char                  // fixed 8-character strings (CHAR).
	C0nn                  // variable-width strings (C0NN, width in the tag).
	Mess                  // message keyword, carries no data (MESS).
)

// On-disk element sizes and maximum physical block sizes in bytes, binary
// mode. These are format constants shared with every other tool in the
// ecosystem, not tunables.
const (
	sizeOfInte = 4
	sizeOfReal = 4
	sizeOfDoub = 8
	sizeOfLogi = 4
	sizeOfChar = 8

	maxBlockSizeInte = 4000
	maxBlockSizeReal = 4000
	maxBlockSizeDoub = 8000
	maxBlockSizeLogi = 4000
	maxBlockSizeChar = 840
)

// Formatted-mode block parameters: elements per block, columns per line and
// column width per element type.
const (
	maxNumBlockInte = 1000
	maxNumBlockReal = 1000
	maxNumBlockDoub = 1000
	maxNumBlockLogi = 1000
	maxNumBlockChar = 105

	numColumnsInte = 6
	numColumnsReal = 4
	numColumnsDoub = 3
	numColumnsLogi = 25
	numColumnsChar = 7

	columnWidthInte = 12
	columnWidthReal = 17
	columnWidthDoub = 23
	columnWidthLogi = 3
	columnWidthChar = 11
)

// LOGI sentinel encodings, as decoded from the big-endian on-disk bytes.
// Two generations of tools wrote distinct "true" patterns; both are
// accepted on read, and the classic one is written.
const (
	trueValueEcl uint32 = 0xFFFFFFFF
	trueValueIx  uint32 = 0x00000001
	falseValue   uint32 = 0x00000000
)

// String returns the 4-character type tag for types with a fixed tag.
// C0nn tags carry the element width and are produced by typeTag.
func (t ArrayType) String() string {
	switch t {
	case Inte:
		return "INTE"
	case Real:
		return "REAL"
	case Doub:
		return "DOUB"
	case Logi:
		return "LOGI"
	case Char:
		return "CHAR"
	case C0nn:
		return "C0NN"
	case Mess:
		return "MESS"
	}
	return fmt.Sprintf("ArrayType(%d)", uint8(t))
}

// typeTag returns the exact 4-character tag written to disk for a type,
// encoding the element width for C0nn.
func typeTag(t ArrayType, elementSize int) string {
	if t == C0nn {
		return fmt.Sprintf("C%03d", elementSize)
	}
	return t.String()
}

// ResolveTypeTag maps a 4-character on-disk tag to an ArrayType and its
// element size. Tags of the form "Cnnn" resolve to C0nn with the 3-digit
// width as element size.
func ResolveTypeTag(tag string) (ArrayType, int, error) {
	switch tag {
	case "INTE":
		return Inte, sizeOfInte, nil
	case "REAL":
		return Real, sizeOfReal, nil
	case "DOUB":
		return Doub, sizeOfDoub, nil
	case "CHAR":
		return Char, sizeOfChar, nil
	case "LOGI":
		return Logi, sizeOfLogi, nil
	case "MESS":
		return Mess, 4, nil
	}

	if len(tag) == 4 && tag[0] == 'C' {
		width, err := strconv.Atoi(tag[1:])
		if err == nil && width > 0 {
			return C0nn, width, nil
		}
	}

	return 0, 0, fmt.Errorf("%w: tag %q", ErrUnknownArrayType, tag)
}

// BlockSizeBinary returns the element size and maximum physical block size
// in bytes for binary mode. For C0nn the block size scales with the
// externally supplied element width so that a block always holds the same
// number of string elements as CHAR.
func BlockSizeBinary(t ArrayType, elementSize int) (sizeOfElement, maxBlockSize int, err error) {
	switch t {
	case Inte:
		return sizeOfInte, maxBlockSizeInte, nil
	case Real:
		return sizeOfReal, maxBlockSizeReal, nil
	case Doub:
		return sizeOfDoub, maxBlockSizeDoub, nil
	case Logi:
		return sizeOfLogi, maxBlockSizeLogi, nil
	case Char:
		return sizeOfChar, maxBlockSizeChar, nil
	case C0nn:
		return elementSize, maxBlockSizeChar / sizeOfChar * elementSize, nil
	case Mess:
		return 0, 0, fmt.Errorf("%w: type MESS has no associated data", ErrUnsupportedOperation)
	}
	return 0, 0, fmt.Errorf("%w: %v", ErrUnknownArrayType, t)
}

// BlockSizeFormatted returns the maximum number of elements per block, the
// number of columns per line and the column width for formatted mode. The
// C0nn column width is the element width plus two quotes and a separator,
// with as many columns as fit an 80-character line.
func BlockSizeFormatted(t ArrayType, elementSize int) (maxElements, numColumns, columnWidth int, err error) {
	switch t {
	case Inte:
		return maxNumBlockInte, numColumnsInte, columnWidthInte, nil
	case Real:
		return maxNumBlockReal, numColumnsReal, columnWidthReal, nil
	case Doub:
		return maxNumBlockDoub, numColumnsDoub, columnWidthDoub, nil
	case Logi:
		return maxNumBlockLogi, numColumnsLogi, columnWidthLogi, nil
	case Char:
		return maxNumBlockChar, numColumnsChar, columnWidthChar, nil
	case C0nn:
		width := elementSize + 3
		return maxNumBlockChar, 80 / width, width, nil
	case Mess:
		return 0, 0, 0, fmt.Errorf("%w: type MESS has no associated data", ErrUnsupportedOperation)
	}
	return 0, 0, 0, fmt.Errorf("%w: %v", ErrUnknownArrayType, t)
}
