package main

import (
	"fmt"
	"os"

	"github.com/oakwood-commons/treex/cmd"
	"github.com/oakwood-commons/treex/pkg/logger"
)

func main() {
	os.Exit(run())
}

// run keeps the deferred log flush ahead of os.Exit, which would skip it.
func run() int {
	defer logger.Sync()

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
