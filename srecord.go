package hexutil

import (
	"fmt"
)

// S-record types sharing the 16-bit address layout.
const (
	SRecordHeader      byte = '0'
	SRecordData16      byte = '1'
	SRecordCount16     byte = '5'
	SRecordTermination byte = '9'

	srecordOverhead = 3 // address (2), checksum
)

type ChecksumRule int

const (
	// ChecksumTwosComplement negates the low byte of the sum, as Intel HEX
	// does.
	ChecksumTwosComplement ChecksumRule = iota
	// ChecksumOnesComplement is the Motorola rule: the low byte of the sum,
	// inverted.
	ChecksumOnesComplement
)

func (c ChecksumRule) sum() func([]byte) byte {
	if c == ChecksumOnesComplement {
		return onesComplementSum
	}
	return twosComplementSum
}

type srecordOptions struct {
	checksum ChecksumRule
}

type SRecordOption func(*srecordOptions)

func WithSRecordChecksum(rule ChecksumRule) SRecordOption {
	return func(o *srecordOptions) { o.checksum = rule }
}

// ParseSRecordLine decodes one S-record line of the form SnBBAAAA<data>CC.
// Only records with a 16-bit address field are understood; S1 carries data,
// S0, S5 and S9 are returned without data semantics.
func ParseSRecordLine(line string, opts ...SRecordOption) (Record, error) {
	o := srecordOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	if len(line) == 0 || line[0] != 'S' {
		return Record{}, fmt.Errorf("%w: line does not start with 'S'", ErrInvalidSigil)
	}
	if len(line) < 2 {
		return Record{}, fmt.Errorf("%w: missing record type", ErrLineTooShort)
	}
	t := line[1]
	switch t {
	case SRecordHeader, SRecordData16, SRecordCount16, SRecordTermination:
	default:
		return Record{}, fmt.Errorf("%w: S%c", ErrUnsupportedRecordType, t)
	}

	bytes, err := decodeHex(line[2:])
	if err != nil {
		return Record{}, err
	}
	if len(bytes) < srecordOverhead+1 {
		return Record{}, fmt.Errorf("%w: %d bytes, need at least %d", ErrLineTooShort, len(bytes), srecordOverhead+1)
	}
	count := int(bytes[0])
	if count < srecordOverhead || count != len(bytes)-1 {
		return Record{}, fmt.Errorf("%w: byte count %d, record holds %d bytes", ErrLengthMismatch, count, len(bytes)-1)
	}
	if err := checkSum(bytes, o.checksum.sum()); err != nil {
		return Record{}, err
	}
	return Record{
		Type:     t,
		Address:  be16(bytes[1:3]),
		Data:     bytes[3 : len(bytes)-1],
		Checksum: bytes[len(bytes)-1],
	}, nil
}
