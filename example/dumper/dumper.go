package main

import (
	"os"

	hexutil "github.com/htkyst/hex-util"
)

func main() {
	file, err := os.Create("output.hex")
	if err != nil {
		panic(err)
	}
	defer file.Close()

	mem := hexutil.NewMemory()
	if err := mem.SetLineLength(16); err != nil {
		panic(err)
	}
	if err := mem.SetData(0x8000, []byte{0x01, 0x02, 0x03, 0x04}); err != nil {
		panic(err)
	}
	if err := mem.SetData(0x2000, make([]byte, 256)); err != nil {
		panic(err)
	}

	if err := mem.DumpIntelHex(file, mem.Ranges()); err != nil {
		panic(err)
	}
}
