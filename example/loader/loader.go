package main

import (
	"fmt"

	hexutil "github.com/htkyst/hex-util"
)

func main() {
	mem := hexutil.NewMemory()
	err := hexutil.ReadIntelHexFile("example.hex", mem)
	if err != nil {
		panic(err)
	}
	segments, err := mem.GetDataSegments()
	if err != nil {
		panic(err)
	}
	for _, segment := range segments {
		fmt.Printf("%+v\n", segment)
	}
	bytes, err := mem.GetData(0xFFF0, 128)
	if err != nil {
		panic(err)
	}
	fmt.Printf("%v\n", bytes)
}
