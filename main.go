package main

import (
	"os"

	"github.com/Sea-Snell/tpu-pod-launcher/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
