package main

import (
	"os"

	"github.com/Code-with-pranav/esg-rag-app/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
