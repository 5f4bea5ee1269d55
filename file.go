package hexutil

import (
	"fmt"
	"os"
)

func openInput(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	return f, nil
}

// ReadIntelHexFile loads the Intel HEX file at path into m. The first
// malformed line aborts the load; bytes from earlier lines remain in m.
func ReadIntelHexFile(path string, m *Memory) error {
	f, err := openInput(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := m.ParseIntelHex(f); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// ReadSRecordFile loads the S-record file at path into m.
func ReadSRecordFile(path string, m *Memory) error {
	f, err := openInput(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := m.ParseSRecord(f); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// WriteIntelHexFile creates or truncates path and writes ranges of m to it
// as Intel HEX.
func WriteIntelHexFile(path string, m *Memory, ranges []AddressRange) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: %w", ErrIO, cerr)
		}
	}()
	if err := m.DumpIntelHex(f, ranges); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
