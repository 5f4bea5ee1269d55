package hexutil

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleIntelHexLine = ":10010000214601360121470136007EFE09D2190140"

func TestParseIntelHexLine(t *testing.T) {
	rec, err := ParseIntelHexLine(sampleIntelHexLine)
	require.NoError(t, err)
	assert.Equal(t, DataRecord, rec.Type)
	assert.Equal(t, uint16(0x0100), rec.Address)
	assert.Equal(t, []byte{
		0x21, 0x46, 0x01, 0x36, 0x01, 0x21, 0x47, 0x01,
		0x36, 0x00, 0x7E, 0xFE, 0x09, 0xD2, 0x19, 0x01,
	}, rec.Data)
	assert.Equal(t, byte(0x40), rec.Checksum)
}

func TestParseIntelHexLineLowercase(t *testing.T) {
	rec, err := ParseIntelHexLine(strings.ToLower(sampleIntelHexLine))
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0100), rec.Address)
	assert.Len(t, rec.Data, 16)
}

func TestParseIntelHexLineRecordTypes(t *testing.T) {
	tests := []struct {
		line string
		typ  byte
	}{
		{":00000001FF", EOFRecord},
		{":020000021000EC", SegmentAddressRecord},
		{":020000040000FA", LinearAddressRecord},
		{":0400000501000000F6", StartLinearRecord},
		{":00000006FA", 0x06},
	}
	for _, tt := range tests {
		rec, err := ParseIntelHexLine(tt.line)
		require.NoError(t, err, tt.line)
		assert.Equal(t, tt.typ, rec.Type, tt.line)
	}
}

func TestParseIntelHexLineErrors(t *testing.T) {
	tests := []struct {
		name string
		line string
		want error
	}{
		{"empty", "", ErrInvalidSigil},
		{"no colon", "10010000214601360121470136007EFE09D2190140", ErrInvalidSigil},
		{"not hex", ":qw00000001FF", ErrMalformedHex},
		{"odd digits", ":0000001FF", ErrMalformedHex},
		{"too short", ":000000FF", ErrLineTooShort},
		{"byte count too big", ":02000000FE", ErrLengthMismatch},
		{"byte count too small", ":0000000000FF", ErrLengthMismatch},
		{"checksum", ":00000001FE", ErrChecksumMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseIntelHexLine(tt.line)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestEncodeIntelHexRecord(t *testing.T) {
	rec, err := ParseIntelHexLine(sampleIntelHexLine)
	require.NoError(t, err)
	assert.Equal(t, sampleIntelHexLine, EncodeIntelHexRecord(DataRecord, rec.Address, rec.Data))
	assert.Equal(t, ":00000001FF", EncodeIntelHexEOF())
}

func TestEncodeIntelHexChunks(t *testing.T) {
	data := make([]byte, 40)
	for i := range data {
		data[i] = byte(i)
	}
	lines, err := EncodeIntelHex(0x1000, data, 16)
	require.NoError(t, err)
	require.Len(t, lines, 3)

	want := []struct {
		adr uint16
		n   int
	}{{0x1000, 16}, {0x1010, 16}, {0x1020, 8}}
	var got []byte
	for i, l := range lines {
		rec, err := ParseIntelHexLine(l)
		require.NoError(t, err)
		assert.Equal(t, want[i].adr, rec.Address)
		assert.Len(t, rec.Data, want[i].n)
		got = append(got, rec.Data...)
	}
	assert.Equal(t, data, got)
}

func TestEncodeIntelHexRoundTrip(t *testing.T) {
	for _, lineLength := range []int{1, 16, 32, 255} {
		data := make([]byte, 1000)
		for i := range data {
			data[i] = byte(i*31 + 7)
		}
		lines, err := EncodeIntelHex(0x2345, data, lineLength)
		require.NoError(t, err)

		next := uint32(0x2345)
		var got []byte
		for _, l := range lines {
			rec, err := ParseIntelHexLine(l)
			require.NoError(t, err)
			assert.Equal(t, next, uint32(rec.Address))
			assert.LessOrEqual(t, len(rec.Data), lineLength)
			next += uint32(len(rec.Data))
			got = append(got, rec.Data...)
		}
		assert.Equal(t, data, got, "line length %d", lineLength)
	}
}

func TestEncodeIntelHexErrors(t *testing.T) {
	_, err := EncodeIntelHex(0, []byte{1}, 0)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	_, err = EncodeIntelHex(0, []byte{1}, 256)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = EncodeIntelHex(0xFFF8, make([]byte, 16), 16)
	assert.ErrorIs(t, err, ErrAddressOutOfRange)

	lines, err := EncodeIntelHex(0xFFF0, make([]byte, 16), 16)
	require.NoError(t, err)
	assert.Len(t, lines, 1)

	lines, err = EncodeIntelHex(0, nil, 16)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

// Flipping any bit after the byte count must be caught by the checksum.
func TestChecksumCatchesBitFlips(t *testing.T) {
	raw, err := hex.DecodeString(sampleIntelHexLine[1:])
	require.NoError(t, err)

	for i := 1; i < len(raw); i++ {
		for bit := 0; bit < 8; bit++ {
			corrupt := append([]byte(nil), raw...)
			corrupt[i] ^= 1 << bit
			_, err := ParseIntelHexLine(makeLine(":", corrupt))
			assert.ErrorIs(t, err, ErrChecksumMismatch, "byte %d bit %d", i, bit)
		}
	}
}
