package hexutil

import (
	"errors"
	"fmt"
)

// Sentinel errors. Parse and storage failures wrap one of these so callers
// can match them with errors.Is.
var (
	ErrIO                        = errors.New("i/o error")
	ErrInvalidSigil              = errors.New("invalid start code")
	ErrMalformedHex              = errors.New("malformed hex")
	ErrLineTooShort              = errors.New("line too short")
	ErrLengthMismatch            = errors.New("data length mismatch")
	ErrChecksumMismatch          = errors.New("checksum mismatch")
	ErrUnsupportedRecordType     = errors.New("unsupported record type")
	ErrAddressOutOfRange         = errors.New("address out of range")
	ErrSpanCrossesSectorBoundary = errors.New("span crosses sector boundary")
	ErrInvalidSectorSize         = errors.New("invalid sector size")
	ErrInvalidAddressSpace       = errors.New("invalid address space")
	ErrInvalidConfig             = errors.New("invalid config")
)

type ParseErrorType uint

const (
	SyntaxError   ParseErrorType = 1
	RecordError   ParseErrorType = 2
	DataError     ParseErrorType = 3
	ChecksumError ParseErrorType = 4
	StorageError  ParseErrorType = 5
)

func (t ParseErrorType) String() string {
	switch t {
	case SyntaxError:
		return "syntax error"
	case RecordError:
		return "record error"
	case DataError:
		return "data error"
	case ChecksumError:
		return "checksum error"
	case StorageError:
		return "storage error"
	}
	return "error"
}

// ParseError reports a failure while loading a text image, with the
// 1-based line number where it happened.
type ParseError struct {
	Type ParseErrorType
	Line uint
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %v at line %d", e.Type, e.Err, e.Line)
}

func (e *ParseError) Unwrap() error { return e.Err }

func newParseError(err error, line uint) error {
	return &ParseError{Type: classify(err), Line: line, Err: err}
}

func classify(err error) ParseErrorType {
	switch {
	case errors.Is(err, ErrInvalidSigil), errors.Is(err, ErrMalformedHex):
		return SyntaxError
	case errors.Is(err, ErrChecksumMismatch):
		return ChecksumError
	case errors.Is(err, ErrUnsupportedRecordType):
		return RecordError
	case errors.Is(err, ErrAddressOutOfRange), errors.Is(err, ErrSpanCrossesSectorBoundary):
		return StorageError
	}
	return DataError
}
