package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/golang/glog"
	"github.com/spf13/cobra"

	hexutil "github.com/htkyst/hex-util"
)

var (
	// Global flags
	configPath string
	inputFmt   string
	lzssInput  bool
	quiet      bool
	jsonOut    bool
)

var rootCmd = &cobra.Command{
	Use:   "hexutil",
	Short: "Inspect and convert Intel HEX and S-record firmware images",
	Long: `hexutil loads firmware images written as Intel HEX or Motorola
S-record text into a sparse 32-bit memory map, and can print the written
address ranges, dump memory contents or re-emit the image as Intel HEX.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// glog reads its settings from the Go flag set, which pflag has
		// already filled in.
		return flag.CommandLine.Parse(nil)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file")
	rootCmd.PersistentFlags().StringVar(&inputFmt, "format", formatAuto, "Input format (auto, ihex, srec)")
	rootCmd.PersistentFlags().BoolVar(&lzssInput, "lzss", false, "Input file is LZSS compressed")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		glog.Errorf("%v", err)
		glog.Flush()
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// newMemory builds an empty image from --config, or from the defaults.
func newMemory() (*hexutil.Memory, error) {
	cfg := hexutil.DefaultConfig()
	if configPath != "" {
		var err error
		cfg, err = hexutil.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		glog.V(1).Infof("config from %s: %+v", configPath, cfg)
	}
	return hexutil.NewMemoryWithConfig(cfg)
}
