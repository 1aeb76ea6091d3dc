// Copyright 2024 - 2026, the Inkwell contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package projects loads the list of personal open-source projects shown on
the projects page, optionally enriched with live repository metadata from
the GitHub API.
*/
package projects

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"
)

// Project is one entry of the projects page.
type Project struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	RepoURL     string `yaml:"repo"`
	Language    string `yaml:"language"`
	Pinned      bool   `yaml:"pinned"`

	// Stars is filled in by the GitHub enricher when enabled; zero means
	// unknown and the view omits it.
	Stars int `yaml:"-"`
}

// Load reads the projects YAML file. A missing file is not an error: the
// projects page simply renders empty.
func Load(path string) ([]Project, error) {
	raw, err := os.ReadFile(path) // #nosec G304 -- Only loading the configured projects file
	if os.IsNotExist(err) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read projects file %q: %w", path, err)
	}

	var list []Project

	if err := yaml.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("failed to parse projects file %q: %w", path, err)
	}

	// Pinned entries first, then case-insensitive by name.
	slices.SortStableFunc(list, func(a, b Project) int {
		if a.Pinned != b.Pinned {
			if a.Pinned {
				return -1
			}

			return 1
		}

		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})

	return list, nil
}
