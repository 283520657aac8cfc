package commands

import (
	"os"

	"paintrack/pkg/logger"
)

func ExitOnError(err error) {
	logger.Error("paintrack error", "err", err.Error())
	os.Exit(1)
}
