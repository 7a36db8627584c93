// Command dataprep converts, imports and inspects family datasets.
package main

import (
	"fmt"
	"os"

	"github.com/theuddeshya/Dynasty/internal/logger"
	"github.com/theuddeshya/Dynasty/internal/logger/console"
)

func main() {
	logger.Init(console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug: os.Getenv("DEBUG") != "",
	}))

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
