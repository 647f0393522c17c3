// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/StackForge/cmd/stackforge/config"
	"github.com/AleutianAI/StackForge/pkg/ux"
)

// runBackupsList lists manifest backups, newest first.
func runBackupsList(cmd *cobra.Command, args []string) error {
	start := time.Now()
	mgr := newBackupManagerFromConfig(config.Global)
	ws := &Workspace{Root: config.Global.Workspace.Dir}

	backups, err := mgr.ListBackups(ws.ManifestPath())
	if err != nil {
		OutputError(flagJSON, "failed to list backups", err)
		return err
	}

	if flagJSON {
		result := BackupListResult{Count: len(backups)}
		for _, b := range backups {
			result.Backups = append(result.Backups, BackupEntry{
				Path:      b.Path,
				CreatedAt: b.CreatedAt,
				SizeBytes: b.Size,
			})
		}
		return OutputResult("backups list", start, result)
	}

	if len(backups) == 0 {
		ux.Info("no manifest backups found under %s", ws.BackupDir())
		return nil
	}

	ux.Title("Manifest backups")
	rows := make([][2]string, 0, len(backups))
	for _, b := range backups {
		rows = append(rows, [2]string{
			b.CreatedAt.Format("2006-01-02 15:04:05"),
			fmt.Sprintf("%s (%d bytes)", b.Path, b.Size),
		})
	}
	ux.Listing(rows)
	return nil
}

// runBackupsRestore copies a backup over the current manifest.
func runBackupsRestore(cmd *cobra.Command, args []string) error {
	mgr := newBackupManagerFromConfig(config.Global)

	if err := mgr.RestoreBackup(args[0]); err != nil {
		OutputError(flagJSON, "failed to restore backup", err)
		return err
	}

	ux.Success("restored %s", args[0])
	return nil
}

// runBackupsPrune removes backups older than --older-than.
func runBackupsPrune(cmd *cobra.Command, args []string) error {
	maxAge, err := time.ParseDuration(flagPruneAge)
	if err != nil {
		OutputError(flagJSON, "invalid --older-than duration", err)
		return err
	}

	mgr := newBackupManagerFromConfig(config.Global)
	ws := &Workspace{Root: config.Global.Workspace.Dir}

	removed, err := mgr.CleanOldBackups(ws.ManifestPath(), maxAge)
	if err != nil {
		OutputError(flagJSON, "failed to prune backups", err)
		return err
	}

	ux.Success("removed %d backup(s) older than %s", removed, flagPruneAge)
	return nil
}
