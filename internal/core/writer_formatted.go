package core

import (
	"fmt"
	"io"
	"strings"
)

// writeFormattedArray writes the elements of data as fixed-width columns.
// Every element occupies exactly one column width and every line, full or
// trailing, ends with a newline. Lines wrap independently within each block
// of the type's maximum element count, matching SizeOnDiskFormatted.
func writeFormattedArray[T any](w io.Writer, data []T, t ArrayType, elementSize int, format func(T) string) error {
	maxElements, numColumns, columnWidth, err := BlockSizeFormatted(t, elementSize)
	if err != nil {
		return err
	}

	for blockStart := 0; blockStart < len(data); blockStart += maxElements {
		blockEnd := blockStart + maxElements
		if blockEnd > len(data) {
			blockEnd = len(data)
		}
		block := data[blockStart:blockEnd]

		for i, v := range block {
			tok := format(v)
			if len(tok) != columnWidth {
				return fmt.Errorf("%w: element %q does not fit column width %d", ErrUnsupportedOperation, tok, columnWidth)
			}
			if _, err := io.WriteString(w, tok); err != nil {
				return err
			}
			if (i+1)%numColumns == 0 {
				if _, err := io.WriteString(w, "\n"); err != nil {
					return err
				}
			}
		}

		if len(block)%numColumns != 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
	}

	return nil
}

// WriteFormattedInteArray writes INTE elements, right-justified in 12
// columns of 6 per line.
func WriteFormattedInteArray(w io.Writer, data []int32) error {
	return writeFormattedArray(w, data, Inte, sizeOfInte, func(v int32) string {
		return fmt.Sprintf("%*d", columnWidthInte, v)
	})
}

// WriteFormattedRealArray writes REAL elements in scientific notation.
func WriteFormattedRealArray(w io.Writer, data []float32) error {
	return writeFormattedArray(w, data, Real, sizeOfReal, func(v float32) string {
		return fmt.Sprintf("%*.8E", columnWidthReal, float64(v))
	})
}

// WriteFormattedDoubArray writes DOUB elements in scientific notation with
// the Fortran 'D' exponent marker.
func WriteFormattedDoubArray(w io.Writer, data []float64) error {
	return writeFormattedArray(w, data, Doub, sizeOfDoub, func(v float64) string {
		s := strings.Replace(fmt.Sprintf("%.13E", v), "E", "D", 1)
		return fmt.Sprintf("%*s", columnWidthDoub, s)
	})
}

// WriteFormattedLogiArray writes LOGI elements as right-justified T or F.
func WriteFormattedLogiArray(w io.Writer, data []bool) error {
	return writeFormattedArray(w, data, Logi, sizeOfLogi, func(v bool) string {
		if v {
			return "  T"
		}
		return "  F"
	})
}

// WriteFormattedCharArray writes CHAR elements as quoted 8-character
// fields padded with trailing blanks.
func WriteFormattedCharArray(w io.Writer, data []string) error {
	return writeFormattedCharElements(w, data, Char, sizeOfChar)
}

// WriteFormattedC0nnArray writes variable-width string elements of the
// given width as quoted fields.
func WriteFormattedC0nnArray(w io.Writer, data []string, elementSize int) error {
	return writeFormattedCharElements(w, data, C0nn, elementSize)
}

func writeFormattedCharElements(w io.Writer, data []string, t ArrayType, elementSize int) error {
	for _, s := range data {
		if len(s) > elementSize {
			return fmt.Errorf("%w: string %q longer than element size %d", ErrUnsupportedOperation, s, elementSize)
		}
	}
	return writeFormattedArray(w, data, t, elementSize, func(v string) string {
		return fmt.Sprintf(" '%-*s'", elementSize, v)
	})
}
