package hexutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadIntelHexFile(t *testing.T) {
	path := writeTemp(t, "in.hex", sampleIntelHexLine+"\n:00000001FF\n")
	m := NewMemory()
	require.NoError(t, ReadIntelHexFile(path, m))

	data, err := m.GetData(0x100, 16)
	require.NoError(t, err)
	assert.Equal(t, byte(0x21), data[0])
	assert.Equal(t, byte(0x01), data[15])
}

func TestReadIntelHexFileErrors(t *testing.T) {
	m := NewMemory()
	err := ReadIntelHexFile(filepath.Join(t.TempDir(), "missing.hex"), m)
	assert.ErrorIs(t, err, ErrIO)
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := writeTemp(t, "bad.hex", ":02010000DEAD72\nS1070100DEADBEEFC0\n")
	err = ReadIntelHexFile(path, m)
	assert.ErrorIs(t, err, ErrInvalidSigil)
	assert.Contains(t, err.Error(), path)
	assert.Len(t, m.Ranges(), 1)
}

func TestReadSRecordFile(t *testing.T) {
	path := writeTemp(t, "in.s19", "S00600004844521C\nS1070FFE01020304E2\nS9030000FD\n")
	cfg := DefaultConfig()
	cfg.AddressSpace = 0x10000
	m, err := NewMemoryWithConfig(cfg)
	require.NoError(t, err)
	require.NoError(t, ReadSRecordFile(path, m))

	data, err := m.GetData(0x0FFE, 4)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4}, data)
	assert.Equal(t, 2, m.Sectors().AllocatedSectors())
}

func TestWriteIntelHexFile(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.SetData(0x100, []byte{0xDE, 0xAD}))

	path := filepath.Join(t.TempDir(), "out.hex")
	require.NoError(t, os.WriteFile(path, []byte("stale content that must go away\n"), 0o644))
	require.NoError(t, WriteIntelHexFile(path, m, m.Ranges()))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, ":02010000DEAD72\n:00000001FF\n", string(got))

	back := NewMemory()
	require.NoError(t, ReadIntelHexFile(path, back))
	assert.Equal(t, m.Ranges(), back.Ranges())
}

func TestWriteIntelHexFileBadPath(t *testing.T) {
	m := NewMemory()
	err := WriteIntelHexFile(filepath.Join(t.TempDir(), "no", "such", "dir.hex"), m, nil)
	assert.ErrorIs(t, err, ErrIO)
}
