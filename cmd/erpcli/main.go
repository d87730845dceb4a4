package main

import (
	"github.com/stitchwork/go-erp-client/cmd/erpcli/cmd"
)

func main() {
	cmd.Execute()
}
