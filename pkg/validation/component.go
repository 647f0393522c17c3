// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package validation provides input validation utilities for security-critical operations.
//
// This package contains validators for user-provided inputs that end up in
// file paths or generated manifests. Using these validators prevents path
// traversal and keeps generated compose service names well-formed.
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// componentNamePattern matches valid component identifiers.
// Allows: lowercase letters, digits, hyphens, underscores.
// Must start with a letter. Max length: 32 characters.
// The shape matches what compose accepts as a service name and what the
// workspace layout accepts as a directory name under config/.
var componentNamePattern = regexp.MustCompile(`^[a-z][a-z0-9_-]{0,31}$`)

// ValidateComponentName validates a component identifier before it is used
// to build workspace paths or manifest sections.
//
// Valid names:
//   - 1-32 characters
//   - Lowercase letters a-z, digits 0-9
//   - Hyphens (-) and underscores (_) after the first character
//
// Returns an error if the name is invalid.
//
// Example:
//
//	if err := validation.ValidateComponentName(name); err != nil {
//	    return fmt.Errorf("invalid component: %w", err)
//	}
//	// Safe to use in a workspace path
func ValidateComponentName(name string) error {
	if name == "" {
		return fmt.Errorf("component name cannot be empty")
	}

	if !componentNamePattern.MatchString(name) {
		return fmt.Errorf("invalid component name: %q (must be 1-32 lowercase alphanumeric chars, hyphens, or underscores, starting with a letter)", name)
	}

	return nil
}

// ValidateComponentNames validates multiple component identifiers.
// Returns an error listing all invalid names if any fail validation.
func ValidateComponentNames(names []string) error {
	var invalid []string
	for _, n := range names {
		if err := ValidateComponentName(n); err != nil {
			invalid = append(invalid, n)
		}
	}

	if len(invalid) > 0 {
		return fmt.Errorf("invalid component names: %v", invalid)
	}
	return nil
}

// SanitizeComponentName normalizes and validates a component identifier.
// Returns the lowercase trimmed name if valid, or an error if invalid.
//
// Use this when accepting names from the command line:
//
//	safe, err := validation.SanitizeComponentName(arg)
//	if err != nil {
//	    return err
//	}
func SanitizeComponentName(name string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if err := ValidateComponentName(normalized); err != nil {
		return "", err
	}
	return normalized, nil
}
