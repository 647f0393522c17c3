// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package validation

import (
	"strings"
	"testing"
)

func TestValidateComponentName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "core", false},
		{"with digits", "postgresql16", false},
		{"with hyphen", "mongo-express", false},
		{"with underscore", "my_stack", false},
		{"max length", "a" + strings.Repeat("b", 31), false},
		{"empty", "", true},
		{"uppercase", "Core", true},
		{"leading digit", "9core", true},
		{"leading hyphen", "-core", true},
		{"too long", "a" + strings.Repeat("b", 32), true},
		{"path traversal", "../etc", true},
		{"slash", "core/extra", true},
		{"space", "core extra", true},
		{"shell metachar", "core;rm", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateComponentName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateComponentName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateComponentNames(t *testing.T) {
	if err := ValidateComponentNames([]string{"core", "redis"}); err != nil {
		t.Errorf("valid names rejected: %v", err)
	}

	err := ValidateComponentNames([]string{"core", "BAD", "also bad"})
	if err == nil {
		t.Fatal("expected error for invalid names")
	}
	// All invalid names are reported together.
	if !strings.Contains(err.Error(), "BAD") || !strings.Contains(err.Error(), "also bad") {
		t.Errorf("error should list every invalid name, got: %v", err)
	}
}

func TestSanitizeComponentName(t *testing.T) {
	got, err := SanitizeComponentName("  Redis ")
	if err != nil {
		t.Fatalf("SanitizeComponentName error = %v", err)
	}
	if got != "redis" {
		t.Errorf("SanitizeComponentName = %q, want %q", got, "redis")
	}

	if _, err := SanitizeComponentName("../escape"); err == nil {
		t.Error("expected error for traversal attempt")
	}
}
