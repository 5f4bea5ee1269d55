package hexutil

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"
)

func byteSum(bytes []byte) byte {
	var sum byte
	for _, b := range bytes {
		sum += b
	}
	return sum
}

// twosComplementSum is the Intel HEX checksum of bytes.
func twosComplementSum(bytes []byte) byte {
	return ^byteSum(bytes) + 1
}

// onesComplementSum is the Motorola S-record checksum of bytes.
func onesComplementSum(bytes []byte) byte {
	return ^byteSum(bytes)
}

func checkSum(bytes []byte, sum func([]byte) byte) error {
	want := sum(bytes[:len(bytes)-1])
	last := bytes[len(bytes)-1]
	if want != last {
		return fmt.Errorf("%w (sum = %02X != %02X)", ErrChecksumMismatch, want, last)
	}
	return nil
}

func decodeHex(s string) ([]byte, error) {
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("%w: odd number of hex digits", ErrMalformedHex)
	}
	bytes, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedHex, err)
	}
	return bytes, nil
}

func be16(bytes []byte) uint16 {
	return binary.BigEndian.Uint16(bytes)
}

func makeLine(sigil string, bytes []byte) string {
	var sb strings.Builder
	sb.Grow(len(sigil) + 2*len(bytes))
	sb.WriteString(sigil)
	sb.WriteString(strings.ToUpper(hex.EncodeToString(bytes)))
	return sb.String()
}
