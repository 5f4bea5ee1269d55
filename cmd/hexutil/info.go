package main

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newInfoCmd())
}

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <image>",
		Short: "Show the written address ranges of an image",
		Long: `The info command loads an Intel HEX or S-record image and lists the
address ranges that hold data.

Example:
  hexutil info firmware.hex
  hexutil info firmware.s19 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(args)
		},
	}
}

type rangeInfo struct {
	Start uint64 `json:"start"`
	End   uint64 `json:"end"`
	Size  uint64 `json:"size"`
}

type imageInfo struct {
	File             string      `json:"file"`
	Ranges           []rangeInfo `json:"ranges"`
	TotalBytes       uint64      `json:"total_bytes"`
	SectorSize       uint32      `json:"sector_size"`
	AllocatedSectors int         `json:"allocated_sectors"`
}

func runInfo(args []string) error {
	m, err := loadImage(args[0])
	if err != nil {
		return err
	}

	info := imageInfo{
		File:             args[0],
		Ranges:           []rangeInfo{},
		SectorSize:       m.Sectors().SectorSize(),
		AllocatedSectors: m.Sectors().AllocatedSectors(),
	}
	for _, r := range m.Ranges() {
		info.Ranges = append(info.Ranges, rangeInfo{Start: r.Start, End: r.End, Size: r.Len()})
		info.TotalBytes += r.Len()
	}

	if jsonOut {
		return printJSON(info)
	}

	printInfo("%s: %d range(s), %d bytes\n", info.File, len(info.Ranges), info.TotalBytes)
	for _, r := range info.Ranges {
		printInfo("  0x%08X-0x%08X  %d bytes\n", r.Start, r.End, r.Size)
	}
	printInfo("%d sector(s) of %d bytes allocated\n", info.AllocatedSectors, info.SectorSize)
	return nil
}
