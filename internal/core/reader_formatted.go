package core

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Formatted payloads are whitespace-separated tokens for numeric and
// logical types, and quote-delimited fixed-width fields for character
// types. Parsing starts at a caller-supplied byte offset; callers position
// themselves with SizeOnDiskFormatted, so the readers never track block
// boundaries on their own.

func isBlank(c byte) bool {
	return c == ' ' || c == '\n' || c == '\r' || c == '\t'
}

// readFormattedArray scans count blank-separated tokens starting at
// fromPos, converting each with parse.
func readFormattedArray[T any](data string, count int64, fromPos int64, parse func(string) (T, error)) ([]T, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: negative element count %d", ErrUnsupportedOperation, count)
	}

	arr := make([]T, 0, count)
	p := fromPos

	for i := int64(0); i < count; i++ {
		for p < int64(len(data)) && isBlank(data[p]) {
			p++
		}
		if p >= int64(len(data)) {
			return nil, fmt.Errorf("formatted data ended after %d of %d elements: %w", i, count, io.ErrUnexpectedEOF)
		}

		q := p
		for q < int64(len(data)) && !isBlank(data[q]) {
			q++
		}

		v, err := parse(data[p:q])
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
		p = q
	}

	return arr, nil
}

// ReadFormattedInteArray reads count INTE tokens starting at fromPos.
func ReadFormattedInteArray(data string, count int64, fromPos int64) ([]int32, error) {
	return readFormattedArray(data, count, fromPos, func(tok string) (int32, error) {
		v, err := strconv.ParseInt(tok, 10, 32)
		if err != nil {
			return 0, fmt.Errorf("could not convert %q to an integer: %w", tok, err)
		}
		return int32(v), nil
	})
}

// ReadFormattedRealArray reads count REAL tokens starting at fromPos. The
// tokens are parsed in double precision first: intermediate files can hold
// magnitudes outside float32 range, which must narrow rather than fail.
func ReadFormattedRealArray(data string, count int64, fromPos int64) ([]float32, error) {
	return readFormattedArray(data, count, fromPos, func(tok string) (float32, error) {
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return 0, fmt.Errorf("could not convert %q to a real value: %w", tok, err)
		}
		return float32(v), nil
	})
}

// ReadFormattedDoubArray reads count DOUB tokens starting at fromPos,
// normalizing Fortran exponent spelling before parsing.
func ReadFormattedDoubArray(data string, count int64, fromPos int64) ([]float64, error) {
	return readFormattedArray(data, count, fromPos, func(tok string) (float64, error) {
		v, err := strconv.ParseFloat(normalizeFortranExponent(tok), 64)
		if err != nil {
			return 0, fmt.Errorf("could not convert %q to a double value: %w", tok, err)
		}
		return v, nil
	})
}

// ReadFormattedLogiArray reads count LOGI tokens starting at fromPos. Only
// the leading character is inspected.
func ReadFormattedLogiArray(data string, count int64, fromPos int64) ([]bool, error) {
	return readFormattedArray(data, count, fromPos, func(tok string) (bool, error) {
		switch tok[0] {
		case 'T':
			return true, nil
		case 'F':
			return false, nil
		}
		return false, fmt.Errorf("%w: could not convert %q to a bool value", ErrInvalidBooleanEncoding, tok)
	})
}

// ReadFormattedCharArray reads count quote-delimited string elements of the
// given width starting at fromPos. An all-blank field decodes to the empty
// string; otherwise trailing padding blanks are trimmed.
func ReadFormattedCharArray(data string, count int64, fromPos int64, elementSize int) ([]string, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: negative element count %d", ErrUnsupportedOperation, count)
	}

	arr := make([]string, 0, count)
	p := fromPos

	for i := int64(0); i < count; i++ {
		q := indexByteFrom(data, '\'', p)
		if q < 0 || q+1+int64(elementSize) > int64(len(data)) {
			return nil, fmt.Errorf("formatted data ended after %d of %d elements: %w", i, count, io.ErrUnexpectedEOF)
		}

		value := data[q+1 : q+1+int64(elementSize)]
		if strings.TrimRight(value, " ") == "" {
			arr = append(arr, "")
		} else {
			arr = append(arr, strings.TrimRight(value, " "))
		}

		p = q + int64(elementSize) + 2
	}

	return arr, nil
}

// ReadFormattedRealRawStrings reads count REAL tokens starting at fromPos
// without parsing them, preserving the exact spelling for rewriting.
func ReadFormattedRealRawStrings(data string, count int64, fromPos int64) ([]string, error) {
	return readFormattedArray(data, count, fromPos, func(tok string) (string, error) {
		return tok, nil
	})
}

// normalizeFortranExponent rewrites Fortran exponent spellings so the token
// parses as standard scientific notation: a 'D' marker becomes 'E', and
// when no marker is present at all an 'E' is inserted before a bare sign
// character found past the first position, so that "1.23-100" reads as
// "1.23E-100". The insertion is a workaround carried over from files in the
// wild; its behavior on malformed input is deliberately left as is.
func normalizeFortranExponent(tok string) string {
	if i := strings.IndexByte(tok, 'D'); i >= 0 {
		tok = tok[:i] + "E" + tok[i+1:]
	}

	if !strings.Contains(tok, "E") && len(tok) > 1 {
		if i := strings.IndexAny(tok[1:], "-+"); i >= 0 {
			pos := i + 1
			tok = tok[:pos] + "E" + tok[pos:]
		}
	}

	return tok
}
