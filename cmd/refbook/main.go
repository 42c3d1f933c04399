package main

import (
	"os"

	"github.com/reglet-dev/refbook/cmd/refbook/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
