package hexutil

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the construction parameters of a Memory and the defaults
// used when reading and writing text images.
type Config struct {
	AddressSpace    uint64 `yaml:"address_space"`
	SectorSize      uint32 `yaml:"sector_size"`
	EraseValue      byte   `yaml:"erase_value"`
	LineLength      int    `yaml:"line_length"`
	SRecordChecksum string `yaml:"srecord_checksum"`
}

func DefaultConfig() Config {
	return Config{
		AddressSpace:    DefaultAddressSpace,
		SectorSize:      DefaultSectorSize,
		EraseValue:      DefaultEraseValue,
		LineLength:      DefaultLineLength,
		SRecordChecksum: "twos",
	}
}

// ParseConfig reads YAML over the defaults. Keys missing from data keep
// their default value; unknown keys are an error.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrIO, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.SectorSize == 0 {
		return fmt.Errorf("%w: sector_size must be greater than zero", ErrInvalidSectorSize)
	}
	if c.AddressSpace == 0 || c.AddressSpace > DefaultAddressSpace || c.AddressSpace%uint64(c.SectorSize) != 0 {
		return fmt.Errorf("%w: address_space 0x%X with sector_size 0x%X", ErrInvalidAddressSpace, c.AddressSpace, c.SectorSize)
	}
	if c.LineLength <= 0 || c.LineLength > MaxLineLength {
		return fmt.Errorf("%w: line_length %d not in 1..%d", ErrInvalidConfig, c.LineLength, MaxLineLength)
	}
	if _, err := c.ChecksumRule(); err != nil {
		return err
	}
	return nil
}

// ChecksumRule maps the srecord_checksum setting to a rule.
func (c Config) ChecksumRule() (ChecksumRule, error) {
	switch c.SRecordChecksum {
	case "", "twos":
		return ChecksumTwosComplement, nil
	case "ones":
		return ChecksumOnesComplement, nil
	}
	return 0, fmt.Errorf("%w: srecord_checksum %q, want twos or ones", ErrInvalidConfig, c.SRecordChecksum)
}
