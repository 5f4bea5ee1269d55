package hexutil

import (
	"fmt"
)

// Constants definitions of IntelHex record types
const (
	DataRecord           byte = 0 // Record with data bytes
	EOFRecord            byte = 1 // Record with end of file indicator
	SegmentAddressRecord byte = 2 // Record with extended segment address
	StartSegmentRecord   byte = 3 // Record with start segment address
	LinearAddressRecord  byte = 4 // Record with extended linear address
	StartLinearRecord    byte = 5 // Record with start linear address
)

const (
	DefaultLineLength = 16
	MaxLineLength     = 255

	intelHexOverhead = 5 // byte count, address (2), type, checksum
	maxRecordAddress = 0xFFFF
)

// Record is a single decoded line of an Intel HEX or S-record file.
type Record struct {
	Type     byte
	Address  uint16
	Data     []byte
	Checksum byte
}

// ParseIntelHexLine decodes one Intel HEX line of the form
// :LLAAAATT<data>CC and verifies its length and checksum. The record type
// is not interpreted.
func ParseIntelHexLine(line string) (Record, error) {
	if len(line) == 0 || line[0] != ':' {
		return Record{}, fmt.Errorf("%w: no colon char on the first line character", ErrInvalidSigil)
	}
	bytes, err := decodeHex(line[1:])
	if err != nil {
		return Record{}, err
	}
	if len(bytes) < intelHexOverhead {
		return Record{}, fmt.Errorf("%w: %d bytes, need at least %d", ErrLineTooShort, len(bytes), intelHexOverhead)
	}
	size := int(bytes[0])
	if size+intelHexOverhead != len(bytes) {
		return Record{}, fmt.Errorf("%w: byte count %d, record holds %d data bytes",
			ErrLengthMismatch, size, len(bytes)-intelHexOverhead)
	}
	if err := checkSum(bytes, twosComplementSum); err != nil {
		return Record{}, err
	}
	return Record{
		Type:     bytes[3],
		Address:  be16(bytes[1:3]),
		Data:     bytes[4 : 4+size],
		Checksum: bytes[len(bytes)-1],
	}, nil
}

// EncodeIntelHexRecord formats a single record, computing its checksum.
// data must not exceed MaxLineLength bytes.
func EncodeIntelHexRecord(recordType byte, address uint16, data []byte) string {
	bytes := make([]byte, 0, len(data)+intelHexOverhead)
	bytes = append(bytes, byte(len(data)), byte(address>>8), byte(address), recordType)
	bytes = append(bytes, data...)
	bytes = append(bytes, twosComplementSum(bytes))
	return makeLine(":", bytes)
}

// EncodeIntelHex encodes data starting at start as consecutive data
// records of at most lineLength bytes each.
func EncodeIntelHex(start uint32, data []byte, lineLength int) ([]string, error) {
	if lineLength <= 0 || lineLength > MaxLineLength {
		return nil, fmt.Errorf("%w: line length %d not in 1..%d", ErrInvalidConfig, lineLength, MaxLineLength)
	}
	lines := make([]string, 0, (len(data)+lineLength-1)/lineLength)
	for off := 0; off < len(data); off += lineLength {
		chunk := data[off:min(off+lineLength, len(data))]
		adr := uint64(start) + uint64(off)
		if adr+uint64(len(chunk))-1 > maxRecordAddress {
			return nil, fmt.Errorf("%w: record at 0x%08X needs an extended address", ErrAddressOutOfRange, adr)
		}
		lines = append(lines, EncodeIntelHexRecord(DataRecord, uint16(adr), chunk))
	}
	return lines, nil
}

// EncodeIntelHexEOF returns the end of file record.
func EncodeIntelHexEOF() string {
	return EncodeIntelHexRecord(EOFRecord, 0, nil)
}
