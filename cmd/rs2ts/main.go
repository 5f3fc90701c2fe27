package main

import (
	"fmt"
	"os"

	"github.com/teranos/rs2ts/cmd/rs2ts/commands"
	"github.com/teranos/rs2ts/logger"
)

func main() {
	err := commands.NewRootCmd().Execute()
	logger.Cleanup()
	if err != nil {
		fmt.Fprintln(os.Stderr, commands.FormatError(err))
		os.Exit(1)
	}
}
