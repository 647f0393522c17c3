// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/StackForge/pkg/catalog"
	"github.com/AleutianAI/StackForge/pkg/ux"
)

// --- Global Command Variables ---
var (
	flagClean       bool
	flagNoClean     bool
	flagKeepBackups bool
	flagNoBackups   bool
	flagJSON        bool
	flagLogLevel    string
	flagConfigPath  string
	flagPruneAge    string

	rootCmd = &cobra.Command{
		Use:   "stackforge [components...]",
		Short: "Scaffold a Docker Compose deployment workspace from a fixed component catalog",
		Long: `StackForge generates a complete Docker Compose deployment workspace
from a fixed catalog of infrastructure components. Dependencies are
resolved automatically (requesting grafana pulls in prometheus) and the
result is a deterministic docker-compose.yml plus per-component config,
volume declarations, environment defaults, and documentation stubs.

` + catalogUsageListing(),
		Args:          cobra.ArbitraryArgs,
		RunE:          runGenerate, // Defined in cmd_generate.go
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	listCmd = &cobra.Command{
		Use:   "list",
		Short: "List the available components and their dependencies",
		RunE:  runList, // Defined in cmd_list.go
	}

	// --- Backups ---
	backupsCmd = &cobra.Command{
		Use:   "backups",
		Short: "Manage timestamped manifest backups",
	}
	backupsListCmd = &cobra.Command{
		Use:   "list",
		Short: "List manifest backups, newest first",
		RunE:  runBackupsList, // Defined in cmd_backups.go
	}
	backupsRestoreCmd = &cobra.Command{
		Use:   "restore [backup-path]",
		Short: "Restore a manifest backup over the current docker-compose.yml",
		Args:  cobra.ExactArgs(1),
		RunE:  runBackupsRestore, // Defined in cmd_backups.go
	}
	backupsPruneCmd = &cobra.Command{
		Use:   "prune",
		Short: "Remove manifest backups older than --older-than",
		RunE:  runBackupsPrune, // Defined in cmd_backups.go
	}
)

// catalogUsageListing renders the live catalog for --help output.
func catalogUsageListing() string {
	reg := catalog.Builtin()

	var b strings.Builder
	b.WriteString("Available components:\n")
	width := 0
	for _, id := range reg.AllIDs() {
		if len(id) > width {
			width = len(id)
		}
	}
	for _, id := range reg.AllIDs() {
		desc, _ := reg.Describe(id)
		if dep, _ := reg.DependencyOf(id); dep != "" {
			desc += fmt.Sprintf(" (requires %s)", dep)
		}
		b.WriteString(fmt.Sprintf("  %-*s  %s\n", width, id, desc))
	}
	return b.String()
}

// init runs when the Go program starts
func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false,
		"Machine-readable JSON output (implies no colored prefixes)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "",
		"Log verbosity: debug, info, warn, or error (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "",
		"Path to stackforge.yaml (default ~/.stackforge/stackforge.yaml)")

	rootCmd.Flags().BoolVar(&flagClean, "clean", true,
		"Remove generated artifacts before regeneration (user files survive)")
	rootCmd.Flags().BoolVar(&flagNoClean, "no-clean", false,
		"Preserve existing artifacts; merges are idempotent")
	rootCmd.Flags().BoolVar(&flagKeepBackups, "keep-backups", true,
		"Back up the previous manifest before a clean run")
	rootCmd.Flags().BoolVar(&flagNoBackups, "no-backups", false,
		"Skip the manifest backup")

	// Errors from handlers are printed where they occur; flag parse errors
	// would otherwise be swallowed by SilenceErrors.
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		ux.Error("%v", err)
		_ = cmd.Usage()
		return err
	})

	rootCmd.AddCommand(listCmd)

	rootCmd.AddCommand(backupsCmd)
	backupsCmd.AddCommand(backupsListCmd)
	backupsCmd.AddCommand(backupsRestoreCmd)
	backupsCmd.AddCommand(backupsPruneCmd)
	backupsPruneCmd.Flags().StringVar(&flagPruneAge, "older-than", "168h",
		"Remove backups older than this duration (e.g. 72h, 168h)")
}

// effectiveClean resolves the --clean / --no-clean pair. --no-clean wins
// when both are given.
func effectiveClean() bool {
	if flagNoClean {
		return false
	}
	return flagClean
}

// effectiveBackups resolves the --keep-backups / --no-backups pair.
func effectiveBackups() bool {
	if flagNoBackups {
		return false
	}
	return flagKeepBackups
}

// initOutputMode applies --json to the ux layer before any command output.
func initOutputMode() {
	if flagJSON {
		ux.SetMachineMode(true)
	}
}
