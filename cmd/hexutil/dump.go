package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var (
	dumpAddr string
	dumpSize int
)

func init() {
	cmd := newDumpCmd()
	cmd.Flags().StringVar(&dumpAddr, "addr", "", "Start address (defaults to the first written range)")
	cmd.Flags().IntVar(&dumpSize, "size", 256, "Number of bytes to dump")
	rootCmd.AddCommand(cmd)
}

func newDumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump <image>",
		Short: "Hex dump part of an image",
		Long: `The dump command loads an image and prints memory contents as a hex
dump. Addresses that were never written show the erase value.

Example:
  hexutil dump firmware.hex --addr 0x100 --size 64`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(args)
		},
	}
}

func runDump(args []string) error {
	if dumpSize < 0 {
		return fmt.Errorf("size must not be negative")
	}
	m, err := loadImage(args[0])
	if err != nil {
		return err
	}

	var adr uint32
	if dumpAddr != "" {
		v, err := strconv.ParseUint(dumpAddr, 0, 32)
		if err != nil {
			return fmt.Errorf("invalid address %q: %w", dumpAddr, err)
		}
		adr = uint32(v)
	} else if ranges := m.Ranges(); len(ranges) > 0 {
		adr = uint32(ranges[0].Start)
	}

	data, err := m.GetData(adr, dumpSize)
	if err != nil {
		return err
	}
	if jsonOut {
		return printJSON(map[string]interface{}{
			"address": adr,
			"data":    fmt.Sprintf("%X", data),
		})
	}
	for _, line := range formatDump(adr, data) {
		printInfo("%s\n", line)
	}
	return nil
}

// formatDump renders data as 16-byte rows prefixed with their address.
func formatDump(adr uint32, data []byte) []string {
	var lines []string
	for off := 0; off < len(data); off += 16 {
		row := data[off:min(off+16, len(data))]
		var sb strings.Builder
		fmt.Fprintf(&sb, "%08X ", uint64(adr)+uint64(off))
		for i := 0; i < 16; i++ {
			if i == 8 {
				sb.WriteByte(' ')
			}
			if i < len(row) {
				fmt.Fprintf(&sb, " %02X", row[i])
			} else {
				sb.WriteString("   ")
			}
		}
		sb.WriteString("  |")
		for _, b := range row {
			if b >= 0x20 && b < 0x7F {
				sb.WriteByte(b)
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('|')
		lines = append(lines, sb.String())
	}
	return lines
}
