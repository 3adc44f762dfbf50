package core

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/scigolib/eclio/internal/utils"
)

// Header layout, binary mode:
//
//	[int32 marker=16][8-byte name][int32 count][4-byte type tag][int32 marker=16]
//
// Counts beyond the native int32 range use the extended-size convention: a
// first header tagged "X231" whose count field holds the negated exponent,
// immediately followed by a second header with the same name carrying the
// low-order count. True count = low + exponent * 2^31.

// headerPayloadBytes is the fixed payload length both header markers must
// announce.
const headerPayloadBytes = 16

// extSizeTag marks the high-order header of an extended-size pair.
const extSizeTag = "X231"

// ArrayHeader describes one keyword array: its 8-character name (trailing
// blanks preserved), element count, type and element size in bytes.
type ArrayHeader struct {
	Name        string
	Count       int64
	Type        ArrayType
	ElementSize int
}

// readInt32 reads one big-endian int32, as host-order bytes corrected by a
// byte-order flip.
func readInt32(r io.Reader) (int32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return utils.FlipInt32(int32(binary.LittleEndian.Uint32(buf[:]))), nil
}

// writeInt32 writes one int32 in on-disk byte order.
func writeInt32(w io.Writer, v int32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], uint32(utils.FlipInt32(v)))
	_, err := w.Write(buf[:])
	return err
}

// rawHeader is one physical header record before extended-size resolution.
type rawHeader struct {
	name  string
	count int32
	tag   string
}

func readRawBinaryHeader(r io.Reader) (rawHeader, error) {
	var h rawHeader

	head, err := readInt32(r)
	if err != nil {
		return h, utils.WrapError("header marker read failed", err)
	}
	if head != headerPayloadBytes {
		return h, fmt.Errorf("%w: expected 16 bytes of header data, found %d", ErrMalformedHeader, head)
	}

	var name [8]byte
	if _, err := io.ReadFull(r, name[:]); err != nil {
		return h, utils.WrapError("header name read failed", err)
	}

	count, err := readInt32(r)
	if err != nil {
		return h, utils.WrapError("header count read failed", err)
	}

	var tag [4]byte
	if _, err := io.ReadFull(r, tag[:]); err != nil {
		return h, utils.WrapError("header type tag read failed", err)
	}

	tail, err := readInt32(r)
	if err != nil {
		return h, utils.WrapError("header marker read failed", err)
	}
	if tail != headerPayloadBytes {
		return h, fmt.Errorf("%w: expected 16 bytes of header data, found %d", ErrMalformedHeader, tail)
	}

	h.name = string(name[:])
	h.count = count
	h.tag = string(tag[:])
	return h, nil
}

// ReadBinaryHeader decodes the next array header from the stream, resolving
// the extended-size convention when present. The read is a two-state
// sequence: a primary header, then at most one extension header.
func ReadBinaryHeader(r io.Reader) (ArrayHeader, error) {
	var hdr ArrayHeader

	raw, err := readRawBinaryHeader(r)
	if err != nil {
		return hdr, err
	}

	count := int64(raw.count)
	tag := raw.tag

	if raw.tag == extSizeTag {
		exponent := int64(raw.count) * -1
		if exponent < 0 {
			return hdr, fmt.Errorf("%w: size of array should be negative", ErrInconsistentExtHeader)
		}

		ext, err := readRawBinaryHeader(r)
		if err != nil {
			return hdr, err
		}
		if ext.name != raw.name {
			return hdr, fmt.Errorf("%w: name should be same in both headers", ErrInconsistentExtHeader)
		}

		count = int64(ext.count) + exponent*(1<<31)
		tag = ext.tag
		raw = ext
	}

	arrType, elementSize, err := ResolveTypeTag(tag)
	if err != nil {
		return hdr, err
	}

	if count < 0 {
		return hdr, fmt.Errorf("%w: negative element count %d", ErrMalformedHeader, count)
	}
	if arrType == Mess && count != 0 {
		return hdr, fmt.Errorf("%w: type MESS can not have size > 0", ErrMalformedHeader)
	}

	hdr.Name = raw.name
	hdr.Count = count
	hdr.Type = arrType
	hdr.ElementSize = elementSize
	return hdr, nil
}

func writeRawBinaryHeader(w io.Writer, name string, count int32, tag string) error {
	if err := writeInt32(w, headerPayloadBytes); err != nil {
		return err
	}
	if _, err := io.WriteString(w, fmt.Sprintf("%-8s", name)); err != nil {
		return err
	}
	if err := writeInt32(w, count); err != nil {
		return err
	}
	if _, err := io.WriteString(w, tag); err != nil {
		return err
	}
	return writeInt32(w, headerPayloadBytes)
}

// WriteBinaryHeader encodes one array header, emitting the extended-size
// pair when the count does not fit the native int32 count field.
func WriteBinaryHeader(w io.Writer, name string, count int64, t ArrayType, elementSize int) error {
	if count < 0 {
		return fmt.Errorf("%w: negative element count %d", ErrUnsupportedOperation, count)
	}
	if t == Mess && count != 0 {
		return fmt.Errorf("%w: type MESS can not have size > 0", ErrUnsupportedOperation)
	}

	tag := typeTag(t, elementSize)

	if count > math.MaxInt32 {
		exponent := count >> 31
		low := count & math.MaxInt32
		if err := writeRawBinaryHeader(w, name, int32(-exponent), extSizeTag); err != nil {
			return err
		}
		return writeRawBinaryHeader(w, name, int32(low), tag)
	}

	return writeRawBinaryHeader(w, name, int32(count), tag)
}

// ReadFormattedHeader decodes one formatted-mode header line of the form
//
//	'NAME    '         COUNT 'TYPE'
//
// The name and type fields are quote-delimited; all four quotes must be
// present and the name must be exactly 8 characters. Formatted files never
// use the extended-size convention.
func ReadFormattedHeader(line string) (ArrayHeader, error) {
	var hdr ArrayHeader

	p1 := indexByteFrom(line, '\'', 0)
	p2 := indexByteFrom(line, '\'', p1+1)
	p3 := indexByteFrom(line, '\'', p2+1)
	p4 := indexByteFrom(line, '\'', p3+1)

	if p1 < 0 || p2 < 0 || p3 < 0 || p4 < 0 {
		return hdr, fmt.Errorf("%w: name and type should be enclosed with '", ErrMalformedHeader)
	}

	name := line[p1+1 : p2]
	countStr := strings.TrimSpace(line[p2+1 : p3])
	tag := line[p3+1 : p4]

	count, err := strconv.ParseInt(countStr, 10, 64)
	if err != nil {
		return hdr, fmt.Errorf("%w: invalid element count %q", ErrMalformedHeader, countStr)
	}

	arrType, elementSize, err := ResolveTypeTag(tag)
	if err != nil {
		return hdr, err
	}

	if len(name) != 8 {
		return hdr, fmt.Errorf("%w: name should be 8 characters, got %q", ErrMalformedHeader, name)
	}

	if count < 0 {
		return hdr, fmt.Errorf("%w: negative element count %d", ErrMalformedHeader, count)
	}
	if arrType == Mess && count != 0 {
		return hdr, fmt.Errorf("%w: type MESS can not have size > 0", ErrMalformedHeader)
	}

	hdr.Name = name
	hdr.Count = count
	hdr.Type = arrType
	hdr.ElementSize = elementSize
	return hdr, nil
}

// WriteFormattedHeader encodes one formatted-mode header line.
func WriteFormattedHeader(w io.Writer, name string, count int64, t ArrayType, elementSize int) error {
	if t == Mess && count != 0 {
		return fmt.Errorf("%w: type MESS can not have size > 0", ErrUnsupportedOperation)
	}
	_, err := fmt.Fprintf(w, " '%-8s' %11d '%-4s'\n", name, count, typeTag(t, elementSize))
	return err
}

// indexByteFrom locates c in s at or after position from, returning -1 when
// absent or when from is out of range.
func indexByteFrom(s string, c byte, from int64) int64 {
	if from < 0 || from > int64(len(s)) {
		return -1
	}
	i := strings.IndexByte(s[from:], c)
	if i < 0 {
		return -1
	}
	return from + int64(i)
}

// IsEOF probes the stream for end-of-file with a 4-byte read and restores
// the cursor when more data remains.
func IsEOF(r io.ReadSeeker) (bool, error) {
	pos, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return false, err
	}

	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return true, nil
		}
		return false, err
	}

	_, err = r.Seek(pos, io.SeekStart)
	return false, err
}
