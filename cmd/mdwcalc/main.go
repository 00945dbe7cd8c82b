package main

import (
	"os"

	"github.com/msto63/mdwcalc/cmd/mdwcalc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
