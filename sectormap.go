package hexutil

import (
	"bytes"
	"fmt"
)

const (
	DefaultAddressSpace uint64 = 1 << 32 // 4 GiB
	DefaultSectorSize   uint32 = 4 * 1024
	DefaultEraseValue   byte   = 0xFF
)

// SectorMap is a byte store over a fixed address space divided into equal
// sectors. A sector's buffer is allocated, filled with the erase value, on
// the first write that touches it; until then it reads back as erased.
//
// Multi-byte accesses must stay within a single sector. Memory splits longer
// spans before calling into the map.
type SectorMap struct {
	size       uint64
	sectorSize uint32
	erase      byte
	sectors    [][]byte
}

func NewSectorMap(size uint64, sectorSize uint32, erase byte) (*SectorMap, error) {
	if sectorSize == 0 {
		return nil, fmt.Errorf("%w: sector size must be greater than zero", ErrInvalidSectorSize)
	}
	if size == 0 || size > DefaultAddressSpace {
		return nil, fmt.Errorf("%w: size 0x%X outside 32-bit address space", ErrInvalidAddressSpace, size)
	}
	if size%uint64(sectorSize) != 0 {
		return nil, fmt.Errorf("%w: size 0x%X is not a multiple of sector size 0x%X",
			ErrInvalidAddressSpace, size, sectorSize)
	}
	return &SectorMap{
		size:       size,
		sectorSize: sectorSize,
		erase:      erase,
		sectors:    make([][]byte, size/uint64(sectorSize)),
	}, nil
}

func (m *SectorMap) Size() uint64       { return m.size }
func (m *SectorMap) SectorSize() uint32 { return m.sectorSize }
func (m *SectorMap) SectorCount() int   { return len(m.sectors) }
func (m *SectorMap) EraseValue() byte   { return m.erase }

// AllocatedSectors returns the number of sectors holding a buffer.
func (m *SectorMap) AllocatedSectors() int {
	n := 0
	for _, s := range m.sectors {
		if s != nil {
			n++
		}
	}
	return n
}

func (m *SectorMap) locate(address uint32) (index int, offset uint32, err error) {
	if uint64(address) >= m.size {
		return 0, 0, fmt.Errorf("%w: 0x%08X >= 0x%X", ErrAddressOutOfRange, address, m.size)
	}
	return int(address / m.sectorSize), address % m.sectorSize, nil
}

// span resolves a run of n bytes starting at address to a single sector.
func (m *SectorMap) span(address uint32, n int) (index int, offset uint32, err error) {
	index, offset, err = m.locate(address)
	if err != nil {
		return 0, 0, err
	}
	if uint64(offset)+uint64(n) > uint64(m.sectorSize) {
		return 0, 0, fmt.Errorf("%w: 0x%08X+%d exceeds sector %d",
			ErrSpanCrossesSectorBoundary, address, n, index)
	}
	return index, offset, nil
}

func (m *SectorMap) sector(index int) []byte {
	s := m.sectors[index]
	if s == nil {
		s = bytes.Repeat([]byte{m.erase}, int(m.sectorSize))
		m.sectors[index] = s
	}
	return s
}

func (m *SectorMap) SetByte(address uint32, value byte) error {
	index, offset, err := m.locate(address)
	if err != nil {
		return err
	}
	m.sector(index)[offset] = value
	return nil
}

func (m *SectorMap) SetBytes(address uint32, data []byte) error {
	index, offset, err := m.span(address, len(data))
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}
	copy(m.sector(index)[offset:], data)
	return nil
}

func (m *SectorMap) GetByte(address uint32) (byte, error) {
	index, offset, err := m.locate(address)
	if err != nil {
		return 0, err
	}
	if s := m.sectors[index]; s != nil {
		return s[offset], nil
	}
	return m.erase, nil
}

// GetBytes returns a copy of size bytes at address. Unallocated sectors read
// as erase-value bytes.
func (m *SectorMap) GetBytes(address uint32, size int) ([]byte, error) {
	index, offset, err := m.span(address, size)
	if err != nil {
		return nil, err
	}
	s := m.sectors[index]
	if s == nil {
		return bytes.Repeat([]byte{m.erase}, size), nil
	}
	out := make([]byte, size)
	copy(out, s[offset:])
	return out, nil
}
