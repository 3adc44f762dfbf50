package core

import "errors"

// Sentinel error kinds reported by the codec. All decode failures wrap one
// of these, so callers can classify with errors.Is.
var (
	// ErrMalformedHeader reports a header whose framing is wrong: a length
	// marker other than 16, missing quote delimiters, or a name that is not
	// exactly 8 characters.
	ErrMalformedHeader = errors.New("malformed array header")

	// ErrUnknownArrayType reports a type tag outside the closed set.
	ErrUnknownArrayType = errors.New("unknown array type")

	// ErrInconsistentExtHeader reports an extended-size header pair whose
	// names differ or whose exponent is negative.
	ErrInconsistentExtHeader = errors.New("inconsistent extended-size header")

	// ErrCorruptBlock reports a data chunk with an out-of-range element
	// count or mismatched length markers.
	ErrCorruptBlock = errors.New("corrupt data block")

	// ErrInvalidBooleanEncoding reports a LOGI value outside the accepted
	// sentinel encodings.
	ErrInvalidBooleanEncoding = errors.New("invalid boolean encoding")

	// ErrUnsupportedOperation reports an operation the type cannot carry,
	// such as a nonzero element count for MESS.
	ErrUnsupportedOperation = errors.New("unsupported operation")
)
