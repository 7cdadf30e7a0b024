package main

import (
	"os"

	"github.com/citydash/dashboard-app/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
