// Package eclio reads and writes ECLIPSE-compatible keyword-array files:
// sequences of named, typed arrays stored either as Fortran unformatted
// binary records or as column-wrapped formatted text. A File indexes every
// array header without touching payloads, then decodes arrays on demand.
package eclio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/scigolib/eclio/internal/core"
	"github.com/scigolib/eclio/internal/utils"
)

// ArrayType identifies the element type of a keyword array.
type ArrayType = core.ArrayType

// Array element types of the exchange format.
const (
	Inte = core.Inte
	Real = core.Real
	Doub = core.Doub
	Logi = core.Logi
	Char = core.Char
	C0nn = core.C0nn
	Mess = core.Mess
)

// Error kinds reported by the codec, matchable with errors.Is.
var (
	ErrMalformedHeader        = core.ErrMalformedHeader
	ErrUnknownArrayType       = core.ErrUnknownArrayType
	ErrInconsistentExtHeader  = core.ErrInconsistentExtHeader
	ErrCorruptBlock           = core.ErrCorruptBlock
	ErrInvalidBooleanEncoding = core.ErrInvalidBooleanEncoding
	ErrUnsupportedOperation   = core.ErrUnsupportedOperation
)

// Header describes one keyword array in a file. Name is the array name
// with trailing padding blanks removed.
type Header struct {
	Name        string
	Type        ArrayType
	Count       int64
	ElementSize int
}

type arrayEntry struct {
	Header
	offset int64
}

// File is an open keyword-array file with its header index. Methods on one
// File must not be called concurrently; the underlying cursor is shared.
type File struct {
	path      string
	formatted bool
	osFile    *os.File
	text      string
	arrays    []arrayEntry
	index     map[string]int
}

// IsFormattedFilename reports whether the file extension selects the
// formatted (text) encoding. The rule uses only the filename: an extension
// is required, the reserved ".GRID" extension is always binary, and
// otherwise the first letter after the dot being one of A, B, C, F, G or H
// selects formatted.
func IsFormattedFilename(path string) (bool, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return false, fmt.Errorf("purported ECLIPSE filename %q does not contain extension", path)
	}
	if ext == ".GRID" {
		return false, nil
	}
	return len(ext) > 1 && strings.IndexByte("ABCFGH", ext[1]) >= 0, nil
}

// Open opens a keyword-array file and indexes all array headers in order,
// skipping payloads via the on-disk size calculators.
func Open(path string) (*File, error) {
	formatted, err := IsFormattedFilename(path)
	if err != nil {
		return nil, err
	}

	f := &File{
		path:      path,
		formatted: formatted,
		index:     make(map[string]int),
	}

	if formatted {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, utils.WrapError("file read failed", err)
		}
		f.text = string(data)
		if err := f.indexFormatted(); err != nil {
			return nil, err
		}
		return f, nil
	}

	osFile, err := os.Open(path)
	if err != nil {
		return nil, utils.WrapError("file open failed", err)
	}
	f.osFile = osFile

	if err := f.indexBinary(); err != nil {
		_ = osFile.Close()
		return nil, err
	}
	return f, nil
}

func (f *File) indexBinary() error {
	for {
		eof, err := core.IsEOF(f.osFile)
		if err != nil {
			return utils.WrapError("end-of-file probe failed", err)
		}
		if eof {
			return nil
		}

		hdr, err := core.ReadBinaryHeader(f.osFile)
		if err != nil {
			return err
		}

		offset, err := f.osFile.Seek(0, io.SeekCurrent)
		if err != nil {
			return utils.WrapError("cursor query failed", err)
		}

		size, err := core.SizeOnDiskBinary(hdr.Count, hdr.Type, hdr.ElementSize)
		if err != nil {
			return err
		}

		f.appendEntry(hdr, offset)

		if _, err := f.osFile.Seek(int64(size), io.SeekCurrent); err != nil {
			return utils.WrapError("payload skip failed", err)
		}
	}
}

func (f *File) indexFormatted() error {
	var pos int64
	for {
		if strings.TrimSpace(f.text[pos:]) == "" {
			return nil
		}

		lineEnd := int64(strings.IndexByte(f.text[pos:], '\n'))
		var line string
		if lineEnd < 0 {
			line = f.text[pos:]
			lineEnd = int64(len(f.text)) - pos
		} else {
			line = f.text[pos : pos+lineEnd]
		}

		hdr, err := core.ReadFormattedHeader(line)
		if err != nil {
			return err
		}

		dataStart := pos + lineEnd + 1

		size, err := core.SizeOnDiskFormatted(hdr.Count, hdr.Type, hdr.ElementSize)
		if err != nil {
			return err
		}

		f.appendEntry(hdr, dataStart)
		pos = dataStart + int64(size)

		if pos >= int64(len(f.text)) {
			return nil
		}
	}
}

func (f *File) appendEntry(hdr core.ArrayHeader, offset int64) {
	name := strings.TrimRight(hdr.Name, " ")
	f.arrays = append(f.arrays, arrayEntry{
		Header: Header{
			Name:        name,
			Type:        hdr.Type,
			Count:       hdr.Count,
			ElementSize: hdr.ElementSize,
		},
		offset: offset,
	})
	if _, seen := f.index[name]; !seen {
		f.index[name] = len(f.arrays) - 1
	}
}

// Headers returns all array headers in file order. Duplicate names keep
// their own entries; name-based getters resolve to the first occurrence.
func (f *File) Headers() []Header {
	headers := make([]Header, len(f.arrays))
	for i, e := range f.arrays {
		headers[i] = e.Header
	}
	return headers
}

// HasKey reports whether an array with the given name exists.
func (f *File) HasKey(name string) bool {
	_, ok := f.index[name]
	return ok
}

// Close releases the underlying file handle.
func (f *File) Close() error {
	if f.osFile != nil {
		return f.osFile.Close()
	}
	return nil
}

func (f *File) entryAt(index int) (arrayEntry, error) {
	if index < 0 || index >= len(f.arrays) {
		return arrayEntry{}, fmt.Errorf("array index %d out of range (file holds %d arrays)", index, len(f.arrays))
	}
	return f.arrays[index], nil
}

func (f *File) entryNamed(name string) (int, error) {
	i, ok := f.index[name]
	if !ok {
		return 0, fmt.Errorf("array %q not found in %s", name, f.path)
	}
	return i, nil
}

func (f *File) seekTo(e arrayEntry) error {
	_, err := f.osFile.Seek(e.offset, io.SeekStart)
	if err != nil {
		return utils.WrapError("payload seek failed", err)
	}
	return nil
}

// GetInte returns the named INTE array.
func (f *File) GetInte(name string) ([]int32, error) {
	i, err := f.entryNamed(name)
	if err != nil {
		return nil, err
	}
	return f.GetInteAt(i)
}

// GetInteAt returns the INTE array at the given file-order index.
func (f *File) GetInteAt(index int) ([]int32, error) {
	e, err := f.entryAt(index)
	if err != nil {
		return nil, err
	}
	if e.Type != Inte {
		return nil, fmt.Errorf("array %q is of type %v, not INTE", e.Name, e.Type)
	}
	if f.formatted {
		return core.ReadFormattedInteArray(f.text, e.Count, e.offset)
	}
	if err := f.seekTo(e); err != nil {
		return nil, err
	}
	return core.ReadBinaryInteArray(f.osFile, e.Count)
}

// GetReal returns the named REAL array.
func (f *File) GetReal(name string) ([]float32, error) {
	i, err := f.entryNamed(name)
	if err != nil {
		return nil, err
	}
	return f.GetRealAt(i)
}

// GetRealAt returns the REAL array at the given file-order index.
func (f *File) GetRealAt(index int) ([]float32, error) {
	e, err := f.entryAt(index)
	if err != nil {
		return nil, err
	}
	if e.Type != Real {
		return nil, fmt.Errorf("array %q is of type %v, not REAL", e.Name, e.Type)
	}
	if f.formatted {
		return core.ReadFormattedRealArray(f.text, e.Count, e.offset)
	}
	if err := f.seekTo(e); err != nil {
		return nil, err
	}
	return core.ReadBinaryRealArray(f.osFile, e.Count)
}

// GetDoub returns the named DOUB array.
func (f *File) GetDoub(name string) ([]float64, error) {
	i, err := f.entryNamed(name)
	if err != nil {
		return nil, err
	}
	return f.GetDoubAt(i)
}

// GetDoubAt returns the DOUB array at the given file-order index.
func (f *File) GetDoubAt(index int) ([]float64, error) {
	e, err := f.entryAt(index)
	if err != nil {
		return nil, err
	}
	if e.Type != Doub {
		return nil, fmt.Errorf("array %q is of type %v, not DOUB", e.Name, e.Type)
	}
	if f.formatted {
		return core.ReadFormattedDoubArray(f.text, e.Count, e.offset)
	}
	if err := f.seekTo(e); err != nil {
		return nil, err
	}
	return core.ReadBinaryDoubArray(f.osFile, e.Count)
}

// GetLogi returns the named LOGI array.
func (f *File) GetLogi(name string) ([]bool, error) {
	i, err := f.entryNamed(name)
	if err != nil {
		return nil, err
	}
	return f.GetLogiAt(i)
}

// GetLogiAt returns the LOGI array at the given file-order index.
func (f *File) GetLogiAt(index int) ([]bool, error) {
	e, err := f.entryAt(index)
	if err != nil {
		return nil, err
	}
	if e.Type != Logi {
		return nil, fmt.Errorf("array %q is of type %v, not LOGI", e.Name, e.Type)
	}
	if f.formatted {
		return core.ReadFormattedLogiArray(f.text, e.Count, e.offset)
	}
	if err := f.seekTo(e); err != nil {
		return nil, err
	}
	return core.ReadBinaryLogiArray(f.osFile, e.Count)
}

// GetChar returns the named CHAR or C0NN array.
func (f *File) GetChar(name string) ([]string, error) {
	i, err := f.entryNamed(name)
	if err != nil {
		return nil, err
	}
	return f.GetCharAt(i)
}

// GetCharAt returns the CHAR or C0NN array at the given file-order index.
func (f *File) GetCharAt(index int) ([]string, error) {
	e, err := f.entryAt(index)
	if err != nil {
		return nil, err
	}
	if e.Type != Char && e.Type != C0nn {
		return nil, fmt.Errorf("array %q is of type %v, not CHAR or C0NN", e.Name, e.Type)
	}
	if f.formatted {
		return core.ReadFormattedCharArray(f.text, e.Count, e.offset, e.ElementSize)
	}
	if err := f.seekTo(e); err != nil {
		return nil, err
	}
	if e.Type == C0nn {
		return core.ReadBinaryC0nnArray(f.osFile, e.Count, e.ElementSize)
	}
	return core.ReadBinaryCharArray(f.osFile, e.Count)
}

// CombineSummaryNumbers packs a (region, segment)-style pair of small
// integers into the single key used by summary-vector indexes.
func CombineSummaryNumbers(n1, n2 int) int {
	return core.CombineSummaryNumbers(n1, n2)
}

// SplitSummaryNumber unpacks a key produced by CombineSummaryNumbers.
func SplitSummaryNumber(n int) (int, int) {
	return core.SplitSummaryNumber(n)
}
