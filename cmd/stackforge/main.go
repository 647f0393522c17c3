// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/StackForge/cmd/stackforge/config"
	"github.com/AleutianAI/StackForge/pkg/logging"
	"github.com/AleutianAI/StackForge/pkg/ux"
)

// appLogger is initialized in the persistent pre-run and shared by all
// command handlers.
var appLogger *logging.Logger

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(CLIExitError)
	}
	if appLogger != nil {
		appLogger.Close()
	}
	os.Exit(CLIExitSuccess)
}

func init() {
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		initOutputMode()

		if err := config.Load(flagConfigPath); err != nil {
			ux.Error("failed to load configuration: %v", err)
			return err
		}

		level, err := resolveLogLevel(config.Global.Logging.Level)
		if err != nil {
			ux.Error("%v", err)
			return err
		}

		appLogger = logging.New(logging.Config{
			Level:   level,
			LogDir:  config.Global.Logging.Dir,
			Service: "stackforge",
			Quiet:   true, // file-only; terminal output goes through pkg/ux
		})
		return nil
	}
}

// resolveLogLevel applies the --log-level flag over the config value.
func resolveLogLevel(configLevel string) (logging.Level, error) {
	name := configLevel
	if flagLogLevel != "" {
		name = flagLogLevel
	}
	if name == "" {
		return logging.LevelInfo, nil
	}
	return logging.ParseLevel(name)
}
