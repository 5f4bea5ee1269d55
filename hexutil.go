// Package hexutil loads Intel HEX and Motorola S-record firmware images into
// a sparse 32-bit memory map and writes stored ranges back as Intel HEX.
package hexutil

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/golang/glog"
)

// Structure with binary data segment fields
type DataSegment struct {
	Address uint32 // Starting address of data segment
	Data    []byte // Data segment bytes
}

// Memory is a firmware image: a sparse byte store plus the set of address
// ranges that have been written. It is the only mutator of both and is not
// safe for concurrent use.
type Memory struct {
	cfg      Config
	checksum ChecksumRule
	ranges   *RangeTracker // Written address ranges
	sectors  *SectorMap    // Sparse byte storage
	eofFlag  bool          // End of file record seen by the last Intel HEX load
	lineNum  uint          // Parser input line number
}

// NewMemory returns a Memory over the full 32-bit address space with 4 KiB
// sectors and 0xFF as erase value.
func NewMemory() *Memory {
	m, err := NewMemoryWithConfig(DefaultConfig())
	if err != nil {
		panic(err) // defaults are always valid
	}
	return m
}

func NewMemoryWithConfig(cfg Config) (*Memory, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	rule, _ := cfg.ChecksumRule()
	m := &Memory{cfg: cfg, checksum: rule}
	if err := m.Clear(); err != nil {
		return nil, err
	}
	return m, nil
}

// Clear drops all stored data and tracked ranges.
func (m *Memory) Clear() error {
	sectors, err := NewSectorMap(m.cfg.AddressSpace, m.cfg.SectorSize, m.cfg.EraseValue)
	if err != nil {
		return err
	}
	m.sectors = sectors
	m.ranges = NewRangeTracker()
	m.eofFlag = false
	m.lineNum = 0
	return nil
}

func (m *Memory) Config() Config { return m.cfg }

// SetLineLength changes the number of data bytes per record written by
// DumpIntelHex.
func (m *Memory) SetLineLength(n int) error {
	if n <= 0 || n > MaxLineLength {
		return fmt.Errorf("%w: line length %d not in 1..%d", ErrInvalidConfig, n, MaxLineLength)
	}
	m.cfg.LineLength = n
	return nil
}

// Sectors exposes the underlying map for inspection.
func (m *Memory) Sectors() *SectorMap { return m.sectors }

// Ranges returns the written address ranges in address order.
func (m *Memory) Ranges() []AddressRange { return m.ranges.Ranges() }

// EOF reports whether the last Intel HEX load contained an end of file record.
func (m *Memory) EOF() bool { return m.eofFlag }

// GetDataSegments returns one segment per written range.
func (m *Memory) GetDataSegments() ([]DataSegment, error) {
	segs := []DataSegment{}
	for _, r := range m.ranges.Ranges() {
		data, err := m.readRange(r)
		if err != nil {
			return nil, err
		}
		segs = append(segs, DataSegment{Address: uint32(r.Start), Data: data})
	}
	return segs, nil
}

func (m *Memory) checkSpan(adr uint32, size int) error {
	if size < 0 {
		return fmt.Errorf("%w: negative size %d", ErrAddressOutOfRange, size)
	}
	if end := uint64(adr) + uint64(size); end > m.sectors.Size() {
		return fmt.Errorf("%w: [0x%08X-0x%X) exceeds address space 0x%X", ErrAddressOutOfRange, adr, end, m.sectors.Size())
	}
	return nil
}

// readRange reads all bytes of r. A range longer than the largest int is
// refused rather than truncated.
func (m *Memory) readRange(r AddressRange) ([]byte, error) {
	if r.End < r.Start || r.End > m.sectors.Size() {
		return nil, fmt.Errorf("%w: range %v", ErrAddressOutOfRange, r)
	}
	if r.Len() > uint64(math.MaxInt) {
		return nil, fmt.Errorf("%w: range %v longer than %d bytes", ErrAddressOutOfRange, r, math.MaxInt)
	}
	return m.GetData(uint32(r.Start), int(r.Len()))
}

// forEachSector calls fn for every piece of [adr, adr+size) that lies in a
// single sector, passing the piece address and its offset into the span.
func (m *Memory) forEachSector(adr uint32, size int, fn func(adr uint32, off, n int) error) error {
	sectorSize := uint64(m.sectors.SectorSize())
	for off := 0; off < size; {
		a := uint64(adr) + uint64(off)
		n := int(min(sectorSize-a%sectorSize, uint64(size-off)))
		if err := fn(uint32(a), off, n); err != nil {
			return err
		}
		off += n
	}
	return nil
}

// SetData stores bytes at adr, splitting the write at sector boundaries,
// and records the written range.
func (m *Memory) SetData(adr uint32, bytes []byte) error {
	if len(bytes) == 0 {
		return nil
	}
	if err := m.checkSpan(adr, len(bytes)); err != nil {
		return err
	}
	m.ranges.MergeOrInsert(NewAddressRange(adr, len(bytes)))
	return m.forEachSector(adr, len(bytes), func(a uint32, off, n int) error {
		return m.sectors.SetBytes(a, bytes[off:off+n])
	})
}

// GetData reads size bytes at adr. Addresses never written read back as the
// erase value.
func (m *Memory) GetData(adr uint32, size int) ([]byte, error) {
	if err := m.checkSpan(adr, size); err != nil {
		return nil, err
	}
	data := make([]byte, 0, size)
	err := m.forEachSector(adr, size, func(a uint32, _, n int) error {
		b, err := m.sectors.GetBytes(a, n)
		if err != nil {
			return err
		}
		data = append(data, b...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (m *Memory) applyIntelHexRecord(rec Record) error {
	switch rec.Type {
	case DataRecord:
		glog.V(2).Infof("line %d: %d bytes at 0x%04X", m.lineNum, len(rec.Data), rec.Address)
		return m.SetData(uint32(rec.Address), rec.Data)
	case EOFRecord:
		m.eofFlag = true
	default:
		glog.V(1).Infof("line %d: ignoring record type %02X", m.lineNum, rec.Type)
	}
	return nil
}

func (m *Memory) applySRecord(rec Record) error {
	switch rec.Type {
	case SRecordData16:
		glog.V(2).Infof("line %d: %d bytes at 0x%04X", m.lineNum, len(rec.Data), rec.Address)
		return m.SetData(uint32(rec.Address), rec.Data)
	case SRecordHeader:
		glog.V(1).Infof("line %d: header %q", m.lineNum, rec.Data)
	default:
		glog.V(1).Infof("line %d: ignoring record type S%c", m.lineNum, rec.Type)
	}
	return nil
}

// scanLines feeds every non-blank line of reader to apply. The first error
// aborts the scan; data applied before it stays in place.
func (m *Memory) scanLines(reader io.Reader, apply func(line string) error) error {
	scanner := bufio.NewScanner(reader)
	m.lineNum = 0
	for scanner.Scan() {
		m.lineNum++
		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 {
			continue
		}
		if err := apply(line); err != nil {
			return newParseError(err, m.lineNum)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	glog.V(1).Infof("loaded %d lines, %d ranges", m.lineNum, m.ranges.Len())
	return nil
}

// ParseIntelHex loads Intel HEX text from reader into m.
func (m *Memory) ParseIntelHex(reader io.Reader) error {
	m.eofFlag = false
	return m.scanLines(reader, func(line string) error {
		rec, err := ParseIntelHexLine(line)
		if err != nil {
			return err
		}
		return m.applyIntelHexRecord(rec)
	})
}

// ParseSRecord loads S-record text from reader into m.
func (m *Memory) ParseSRecord(reader io.Reader) error {
	return m.scanLines(reader, func(line string) error {
		rec, err := ParseSRecordLine(line, WithSRecordChecksum(m.checksum))
		if err != nil {
			return err
		}
		return m.applySRecord(rec)
	})
}

// DumpIntelHex writes the given ranges, in the given order, as Intel HEX
// data records followed by an end of file record.
func (m *Memory) DumpIntelHex(writer io.Writer, ranges []AddressRange) error {
	bw := bufio.NewWriter(writer)
	for _, r := range ranges {
		data, err := m.readRange(r)
		if err != nil {
			return err
		}
		lines, err := EncodeIntelHex(uint32(r.Start), data, m.cfg.LineLength)
		if err != nil {
			return err
		}
		for _, l := range lines {
			if _, err := fmt.Fprintln(bw, l); err != nil {
				return fmt.Errorf("%w: %w", ErrIO, err)
			}
		}
	}
	if _, err := fmt.Fprintln(bw, EncodeIntelHexEOF()); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return nil
}
