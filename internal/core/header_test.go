package core

import (
	"bytes"
	"encoding/binary"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// rawHeaderBytes synthesizes one physical header record independently of
// the codec under test: big-endian on-disk layout, markers of 16.
func rawHeaderBytes(name string, count int32, tag string) []byte {
	var buf bytes.Buffer
	_ = binary.Write(&buf, binary.BigEndian, int32(16))
	buf.WriteString(name)
	_ = binary.Write(&buf, binary.BigEndian, count)
	buf.WriteString(tag)
	_ = binary.Write(&buf, binary.BigEndian, int32(16))
	return buf.Bytes()
}

func TestReadBinaryHeader(t *testing.T) {
	tests := []struct {
		name     string
		stream   []byte
		wantName string
		wantType ArrayType
		wantSize int
		wantNum  int64
		wantErr  error
	}{
		{
			name:     "INTE header",
			stream:   rawHeaderBytes("TESTKEY ", 3, "INTE"),
			wantName: "TESTKEY ",
			wantType: Inte,
			wantSize: 4,
			wantNum:  3,
		},
		{
			name:     "DOUB header",
			stream:   rawHeaderBytes("PRESSURE", 1200, "DOUB"),
			wantName: "PRESSURE",
			wantType: Doub,
			wantSize: 8,
			wantNum:  1200,
		},
		{
			name:     "variable-width character header",
			stream:   rawHeaderBytes("NAMES   ", 7, "C042"),
			wantName: "NAMES   ",
			wantType: C0nn,
			wantSize: 42,
			wantNum:  7,
		},
		{
			name:     "MESS header with zero count",
			stream:   rawHeaderBytes("ENDSOL  ", 0, "MESS"),
			wantName: "ENDSOL  ",
			wantType: Mess,
			wantSize: 4,
			wantNum:  0,
		},
		{
			name: "extended-size pair",
			stream: append(
				rawHeaderBytes("BIGARRAY", -1, "X231"),
				rawHeaderBytes("BIGARRAY", 5, "INTE")...),
			wantName: "BIGARRAY",
			wantType: Inte,
			wantSize: 4,
			wantNum:  (1 << 31) + 5,
		},
		{
			name:    "wrong leading marker",
			stream:  corruptMarker(rawHeaderBytes("TESTKEY ", 3, "INTE"), 0, 15),
			wantErr: ErrMalformedHeader,
		},
		{
			name:    "unknown type tag",
			stream:  rawHeaderBytes("TESTKEY ", 3, "ZZZZ"),
			wantErr: ErrUnknownArrayType,
		},
		{
			name:    "negative count",
			stream:  rawHeaderBytes("BADARRAY", -5, "INTE"),
			wantErr: ErrMalformedHeader,
		},
		{
			name:    "MESS with nonzero count",
			stream:  rawHeaderBytes("ENDSOL  ", 3, "MESS"),
			wantErr: ErrMalformedHeader,
		},
		{
			name: "extended-size name mismatch",
			stream: append(
				rawHeaderBytes("BIGARRAY", -1, "X231"),
				rawHeaderBytes("OTHERKEY", 5, "INTE")...),
			wantErr: ErrInconsistentExtHeader,
		},
		{
			name:    "extended-size negative exponent",
			stream:  append(rawHeaderBytes("BIGARRAY", 2, "X231"), rawHeaderBytes("BIGARRAY", 5, "INTE")...),
			wantErr: ErrInconsistentExtHeader,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hdr, err := ReadBinaryHeader(bytes.NewReader(tt.stream))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantName, hdr.Name)
			require.Equal(t, tt.wantType, hdr.Type)
			require.Equal(t, tt.wantSize, hdr.ElementSize)
			require.Equal(t, tt.wantNum, hdr.Count)
		})
	}
}

func TestReadBinaryHeader_TailMarkerMismatch(t *testing.T) {
	stream := corruptMarker(rawHeaderBytes("TESTKEY ", 3, "INTE"), 20, 12)

	_, err := ReadBinaryHeader(bytes.NewReader(stream))
	require.ErrorIs(t, err, ErrMalformedHeader)
}

// corruptMarker overwrites the int32 at offset with a big-endian value.
func corruptMarker(stream []byte, offset int, value uint32) []byte {
	out := bytes.Clone(stream)
	binary.BigEndian.PutUint32(out[offset:offset+4], value)
	return out
}

func TestWriteBinaryHeader_RoundTrip(t *testing.T) {
	tests := []struct {
		name        string
		arrName     string
		count       int64
		arrType     ArrayType
		elementSize int
	}{
		{
			name:        "INTE header",
			arrName:     "TESTKEY",
			count:       3,
			arrType:     Inte,
			elementSize: 4,
		},
		{
			name:        "CHAR header",
			arrName:     "KEYWORDS",
			count:       12,
			arrType:     Char,
			elementSize: 8,
		},
		{
			name:        "C0NN header keeps its width",
			arrName:     "WGNAMES",
			count:       4,
			arrType:     C0nn,
			elementSize: 42,
		},
		{
			name:        "extended-size header",
			arrName:     "BIGARRAY",
			count:       (1 << 31) + 5,
			arrType:     Inte,
			elementSize: 4,
		},
		{
			name:        "largest native count",
			arrName:     "EDGECASE",
			count:       (1 << 31) - 1,
			arrType:     Real,
			elementSize: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := WriteBinaryHeader(&buf, tt.arrName, tt.count, tt.arrType, tt.elementSize)
			require.NoError(t, err)

			if tt.count > (1<<31)-1 {
				require.Equal(t, 48, buf.Len(), "extended-size counts need two physical headers")
			} else {
				require.Equal(t, 24, buf.Len())
			}

			hdr, err := ReadBinaryHeader(&buf)
			require.NoError(t, err)
			require.Equal(t, 8, len(hdr.Name))
			require.Equal(t, tt.arrName, strings.TrimRight(hdr.Name, " "))
			require.Equal(t, tt.count, hdr.Count)
			require.Equal(t, tt.arrType, hdr.Type)
			require.Equal(t, tt.elementSize, hdr.ElementSize)
		})
	}
}

func TestWriteBinaryHeader_MessWithCount(t *testing.T) {
	var buf bytes.Buffer
	err := WriteBinaryHeader(&buf, "ENDSOL", 3, Mess, 4)
	require.ErrorIs(t, err, ErrUnsupportedOperation)
}

func TestReadFormattedHeader(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		wantName string
		wantType ArrayType
		wantSize int
		wantNum  int64
		wantErr  error
	}{
		{
			name:     "INTE header line",
			line:     " 'TESTKEY '           3 'INTE'",
			wantName: "TESTKEY ",
			wantType: Inte,
			wantSize: 4,
			wantNum:  3,
		},
		{
			name:     "DOUB header line",
			line:     " 'PRESSURE'        1200 'DOUB'",
			wantName: "PRESSURE",
			wantType: Doub,
			wantSize: 8,
			wantNum:  1200,
		},
		{
			name:     "variable-width character header line",
			line:     " 'NAMES   '           7 'C042'",
			wantName: "NAMES   ",
			wantType: C0nn,
			wantSize: 42,
			wantNum:  7,
		},
		{
			name:    "missing quotes",
			line:    " TESTKEY            3 INTE",
			wantErr: ErrMalformedHeader,
		},
		{
			name:    "only three quotes",
			line:    " 'TESTKEY '           3 'INTE",
			wantErr: ErrMalformedHeader,
		},
		{
			name:    "name not 8 characters",
			line:    " 'TESTKEY'            3 'INTE'",
			wantErr: ErrMalformedHeader,
		},
		{
			name:    "unknown type tag",
			line:    " 'TESTKEY '           3 'ZZZZ'",
			wantErr: ErrUnknownArrayType,
		},
		{
			name:    "non-numeric count",
			line:    " 'TESTKEY '         abc 'INTE'",
			wantErr: ErrMalformedHeader,
		},
		{
			name:    "negative count",
			line:    " 'BADARRAY'          -5 'INTE'",
			wantErr: ErrMalformedHeader,
		},
		{
			name:     "MESS header line",
			line:     " 'ENDSOL  '           0 'MESS'",
			wantName: "ENDSOL  ",
			wantType: Mess,
			wantSize: 4,
			wantNum:  0,
		},
		{
			name:    "MESS with nonzero count",
			line:    " 'ENDSOL  '           3 'MESS'",
			wantErr: ErrMalformedHeader,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hdr, err := ReadFormattedHeader(tt.line)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantName, hdr.Name)
			require.Equal(t, tt.wantType, hdr.Type)
			require.Equal(t, tt.wantSize, hdr.ElementSize)
			require.Equal(t, tt.wantNum, hdr.Count)
		})
	}
}

func TestWriteFormattedHeader_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	err := WriteFormattedHeader(&buf, "PORO", 7, Real, 4)
	require.NoError(t, err)

	line, _, _ := bytes.Cut(buf.Bytes(), []byte("\n"))
	hdr, err := ReadFormattedHeader(string(line))
	require.NoError(t, err)
	require.Equal(t, "PORO    ", hdr.Name)
	require.Equal(t, int64(7), hdr.Count)
	require.Equal(t, Real, hdr.Type)
}

func TestIsEOF(t *testing.T) {
	stream := bytes.NewReader(rawHeaderBytes("TESTKEY ", 3, "INTE"))

	eof, err := IsEOF(stream)
	require.NoError(t, err)
	require.False(t, eof, "a full header remains")

	pos, err := stream.Seek(0, io.SeekCurrent)
	require.NoError(t, err)
	require.Equal(t, int64(0), pos, "probe must restore the cursor")

	_, err = stream.Seek(0, io.SeekEnd)
	require.NoError(t, err)
	eof, err = IsEOF(stream)
	require.NoError(t, err)
	require.True(t, eof)
}
