package main

import (
	"fmt"
	"os"

	"github.com/multiversx/mx-ibc-go/cmd/ibc-core/cmd"
)

func main() {
	if err := cmd.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
