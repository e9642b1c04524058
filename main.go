package main

import (
	"os"

	"github.com/abhisek/dermaquiz/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
