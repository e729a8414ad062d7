package main

import (
	"fmt"
	"os"

	"github.com/oakwood-commons/jview/cmd"
	"github.com/oakwood-commons/jview/pkg/logger"
)

func main() {
	err := cmd.Execute()
	if err != nil && err.Error() != "" {
		fmt.Fprintln(os.Stderr, err)
	}

	logger.Sync()
	if code := cmd.ExitCode(err); code != 0 {
		os.Exit(code)
	}
}
