package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/clinic-journal/cmd/export"
	"fjacquet/clinic-journal/cmd/gaps"
	"fjacquet/clinic-journal/cmd/journal"
	"fjacquet/clinic-journal/cmd/ledger"
	"fjacquet/clinic-journal/cmd/root"
	"fjacquet/clinic-journal/cmd/serve"
	"fjacquet/clinic-journal/cmd/snapshot"
	"fjacquet/clinic-journal/internal/config"
	"fjacquet/clinic-journal/internal/logging"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func init() {
	// 1. Load environment variables silently first (no logging yet)
	loadEnvSilently()

	// 2. Configure the global log level before any logger is created
	logging.SetAllLogLevels(configureLogLevelDirectly())

	// 3. Initialize root command and add all subcommands
	root.Init()
	root.Cmd.AddCommand(journal.Cmd)
	root.Cmd.AddCommand(ledger.Cmd)
	root.Cmd.AddCommand(gaps.Cmd)
	root.Cmd.AddCommand(export.Cmd)
	root.Cmd.AddCommand(serve.Cmd)
	root.Cmd.AddCommand(snapshot.Cmd)
}

// loadEnvSilently loads environment variables without logging anything
func loadEnvSilently() {
	envFile := ".env"
	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		envFile = filepath.Join("..", ".env")
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			return
		}
	}
	_ = godotenv.Load(envFile)
}

// configureLogLevelDirectly reads CLINIC_LOG_LEVEL (or LOG_LEVEL) and
// returns the matching logrus level, info by default.
func configureLogLevelDirectly() logrus.Level {
	logLevelStr := config.GetEnv("CLINIC_LOG_LEVEL", os.Getenv("LOG_LEVEL"))
	if logLevelStr == "" {
		return logrus.InfoLevel
	}

	logLevel, err := logrus.ParseLevel(strings.ToLower(logLevelStr))
	if err != nil {
		return logrus.InfoLevel
	}
	return logLevel
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
