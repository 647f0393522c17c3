// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/StackForge/cmd/stackforge/config"
	"github.com/AleutianAI/StackForge/pkg/ux"
)

// runGenerate is the root command handler: validate, resolve, prepare the
// workspace, and assemble the manifest.
func runGenerate(cmd *cobra.Command, args []string) error {
	start := time.Now()

	if len(args) == 0 {
		err := errors.New("no components specified")
		ux.Error("%v", err)
		_ = cmd.Usage()
		return err
	}

	mgr, err := newScaffoldManager(config.Global, FactoryOptions{
		KeepBackups: effectiveBackups(),
	}, appLogger)
	if err != nil {
		OutputError(flagJSON, "failed to initialize", err)
		return err
	}

	opts := GenerateOptions{
		Components: args,
		Clean:      effectiveClean(),
	}

	ux.Info("generating workspace for %d component(s)", len(args))

	result, err := mgr.Generate(cmd.Context(), opts)
	if err != nil {
		if errors.Is(err, ErrEnvironmentSeedMissing) {
			ux.Error("stack.env is missing and cannot be seeded: %v", err)
			ux.Info("restore stack.env.template in the workspace root, or create stack.env yourself")
		} else {
			ux.Error("generation failed: %v", err)
		}
		if flagJSON {
			OutputError(true, "generation failed", err)
		}
		return err
	}

	if flagJSON {
		return OutputResult("generate", start, result)
	}

	printGenerateSummary(result)
	return nil
}

// printGenerateSummary prints the human-readable success summary.
func printGenerateSummary(result *GenerateResult) {
	for _, notice := range result.Notices {
		ux.Info("%s", notice)
	}
	for _, id := range result.Skipped {
		ux.Warning("component %q was skipped (no plugin)", id)
	}

	components := fmt.Sprintf("%d requested", len(result.Requested))
	if len(result.Added) > 0 {
		components += fmt.Sprintf(", %d added as dependencies", len(result.Added))
	}
	ux.Success("workspace generated (%s) in %v", components, result.Duration.Round(time.Millisecond))

	ux.Info("manifest:     %s", result.ManifestPath)
	ux.Info("environment:  %s", result.EnvPath)
	ux.Info("defaults doc: %s", result.EnvExamplePath)
	if result.ConfigFiles > 0 {
		ux.Info("config files: %d written", result.ConfigFiles)
	}

	ux.Info("next: review %s, then run: docker compose --env-file %s up -d",
		result.EnvPath, result.EnvPath)
}
