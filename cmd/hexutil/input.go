package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/blacktop/lzss"
	"github.com/golang/glog"

	hexutil "github.com/htkyst/hex-util"
)

const (
	formatAuto = "auto"
	formatIHex = "ihex"
	formatSRec = "srec"
)

var formatByExt = map[string]string{
	".hex":  formatIHex,
	".ihex": formatIHex,
	".ihx":  formatIHex,
	".s19":  formatSRec,
	".srec": formatSRec,
	".mot":  formatSRec,
	".s":    formatSRec,
}

// sniffFormat guesses the format from the first non-blank character.
func sniffFormat(data []byte) (string, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return "", fmt.Errorf("empty input")
	}
	switch trimmed[0] {
	case ':':
		return formatIHex, nil
	case 'S':
		return formatSRec, nil
	}
	return "", fmt.Errorf("cannot detect input format from %q", trimmed[0])
}

func resolveFormat(path string) (string, error) {
	switch inputFmt {
	case formatIHex, formatSRec:
		return inputFmt, nil
	case formatAuto, "":
		return formatByExt[strings.ToLower(filepath.Ext(path))], nil
	}
	return "", fmt.Errorf("unknown format %q (want auto, ihex or srec)", inputFmt)
}

// loadImage reads path into a fresh Memory. Compressed input and input whose
// format cannot be told from its name are read whole before parsing.
func loadImage(path string) (*hexutil.Memory, error) {
	m, err := newMemory()
	if err != nil {
		return nil, err
	}
	format, err := resolveFormat(path)
	if err != nil {
		return nil, err
	}

	if !lzssInput && format != "" {
		glog.V(1).Infof("loading %s as %s", path, format)
		if format == formatSRec {
			err = hexutil.ReadSRecordFile(path, m)
		} else {
			err = hexutil.ReadIntelHexFile(path, m)
		}
		if err != nil {
			return nil, err
		}
		return m, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", hexutil.ErrIO, err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", hexutil.ErrIO, err)
	}
	if lzssInput {
		n := len(data)
		data = lzss.Decompress(data)
		glog.V(1).Infof("decompressed %d bytes to %d", n, len(data))
	}
	if format == "" {
		if format, err = sniffFormat(data); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	glog.V(1).Infof("loading %s as %s", path, format)

	r := bytes.NewReader(data)
	if format == formatSRec {
		err = m.ParseSRecord(r)
	} else {
		err = m.ParseIntelHex(r)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}
