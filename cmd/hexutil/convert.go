package main

import (
	"fmt"

	"github.com/golang/glog"
	"github.com/spf13/cobra"

	hexutil "github.com/htkyst/hex-util"
)

var convertLineLength int

func init() {
	cmd := newConvertCmd()
	cmd.Flags().IntVar(&convertLineLength, "line-length", 0, "Data bytes per output record (default from config)")
	rootCmd.AddCommand(cmd)
}

func newConvertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "convert <image> <output.hex>",
		Short: "Re-emit an image as Intel HEX",
		Long: `The convert command loads an Intel HEX or S-record image and writes
every written address range to a new Intel HEX file.

Example:
  hexutil convert firmware.s19 firmware.hex
  hexutil convert firmware.hex out.hex --line-length 32`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(args)
		},
	}
}

func runConvert(args []string) error {
	in, out := args[0], args[1]
	m, err := loadImage(in)
	if err != nil {
		return err
	}

	if convertLineLength != 0 {
		if err := m.SetLineLength(convertLineLength); err != nil {
			return err
		}
	}

	ranges := m.Ranges()
	if err := hexutil.WriteIntelHexFile(out, m, ranges); err != nil {
		return fmt.Errorf("convert failed: %w", err)
	}
	glog.V(1).Infof("wrote %d range(s) to %s", len(ranges), out)

	if jsonOut {
		return printJSON(map[string]interface{}{
			"input":  in,
			"output": out,
			"ranges": len(ranges),
		})
	}
	printInfo("Wrote %d range(s) from %s to %s\n", len(ranges), in, out)
	return nil
}
