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

	"github.com/AleutianAI/StackForge/pkg/catalog"
	"github.com/AleutianAI/StackForge/pkg/ux"
)

// runList prints the component catalog.
func runList(cmd *cobra.Command, args []string) error {
	start := time.Now()
	reg := catalog.Builtin()

	if flagJSON {
		result := CatalogListResult{Count: reg.Len()}
		for _, id := range reg.AllIDs() {
			desc, _ := reg.Describe(id)
			dep, _ := reg.DependencyOf(id)
			result.Components = append(result.Components, CatalogEntry{
				ID:          string(id),
				Description: desc,
				Dependency:  string(dep),
			})
		}
		return OutputResult("list", start, result)
	}

	ux.Title("Available components")
	rows := make([][2]string, 0, reg.Len())
	for _, id := range reg.AllIDs() {
		desc, _ := reg.Describe(id)
		if dep, _ := reg.DependencyOf(id); dep != "" {
			desc += fmt.Sprintf(" (requires %s)", dep)
		}
		rows = append(rows, [2]string{string(id), desc})
	}
	ux.Listing(rows)
	return nil
}
