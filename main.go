package main

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/cesarberbelbr/household-finance-manager/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		logrus.WithError(err).Error("household-finance-manager exiting")
		os.Exit(1)
	}
}
