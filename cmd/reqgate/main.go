package main

import (
	"errors"
	"os"

	"github.com/felixgeelhaar/reqgate/internal/infrastructure/cli"
)

func main() {
	os.Exit(exitCode(cli.Execute()))
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var cliErr *cli.CLIError
	if errors.As(err, &cliErr) && cliErr.ExitCode != 0 {
		return cliErr.ExitCode
	}
	return 1
}
