// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Exit codes for CLI commands.
const (
	CLIExitSuccess = 0 // Operation completed successfully
	CLIExitError   = 1 // Operation failed (bad input, workspace error, ...)
)

// CommandResult wraps command output with metadata for --json mode.
type CommandResult struct {
	APIVersion string      `json:"api_version"`
	Command    string      `json:"command"`
	Timestamp  time.Time   `json:"timestamp"`
	DurationMs int64       `json:"duration_ms"`
	Success    bool        `json:"success"`
	Data       interface{} `json:"data,omitempty"`
	Error      string      `json:"error,omitempty"`
}

// OutputJSON writes structured data as indented JSON to stdout.
func OutputJSON(data interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// OutputError writes an error in the appropriate format.
//
// # Inputs
//
//   - jsonMode: If true, output as JSON to stdout.
//   - msg: Human-readable error message.
//   - err: The underlying error.
func OutputError(jsonMode bool, msg string, err error) {
	if jsonMode {
		result := CommandResult{
			APIVersion: "1.0",
			Timestamp:  time.Now(),
			Success:    false,
			Error:      fmt.Sprintf("%s: %v", msg, err),
		}
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		encoder.Encode(result)
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
	}
}

// OutputResult emits a successful command result in JSON mode.
//
// # Inputs
//
//   - cmd: Command name for metadata.
//   - start: Start time for duration calculation.
//   - data: The data to output.
//
// # Outputs
//
//   - error: Non-nil if encoding fails.
func OutputResult(cmd string, start time.Time, data interface{}) error {
	result := CommandResult{
		APIVersion: "1.0",
		Command:    cmd,
		Timestamp:  time.Now(),
		DurationMs: time.Since(start).Milliseconds(),
		Success:    true,
		Data:       data,
	}
	return OutputJSON(result)
}

// CatalogListResult holds catalog listing output for --json mode.
type CatalogListResult struct {
	Components []CatalogEntry `json:"components"`
	Count      int            `json:"count"`
}

// CatalogEntry represents one catalog component in list output.
type CatalogEntry struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Dependency  string `json:"dependency,omitempty"`
}

// BackupListResult holds backup listing output for --json mode.
type BackupListResult struct {
	Backups []BackupEntry `json:"backups"`
	Count   int           `json:"count"`
}

// BackupEntry represents one manifest backup in list output.
type BackupEntry struct {
	Path      string    `json:"path"`
	CreatedAt time.Time `json:"created_at"`
	SizeBytes int64     `json:"size_bytes"`
}
