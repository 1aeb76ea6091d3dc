// Copyright 2024 - 2026, the Inkwell contributors
// SPDX-License-Identifier: AGPL-3.0-only

package content

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// aboutFile is the optional about page source in the content directory.
const aboutFile = "about.md"

// LoadAbout renders dir/about.md to HTML. A missing file is not an error;
// the about page then falls back to the configured site description.
//
// Front matter on the about page is allowed but ignored.
func LoadAbout(dir string) (string, error) {
	raw, err := os.ReadFile(filepath.Join(dir, aboutFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}

		return "", fmt.Errorf("failed to read about page: %w", err)
	}

	body := string(raw)

	if _, rest, err := splitFrontMatter(body); err == nil {
		body = rest
	} else if !errors.Is(err, ErrNoFrontMatter) {
		return "", err
	}

	return renderMarkdown(body)
}
