package main

import "github.com/golang/glog"

func main() {
	defer glog.Flush()
	execute()
}
