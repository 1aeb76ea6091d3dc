// Copyright 2024 - 2026, the Inkwell contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Command genconfig prints a config.yaml populated with the default values,
// as a starting point for a new deployment.
package main

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"codeberg.org/inkwell/inkwell/config"
)

func main() {
	var cfg config.ServerConfig

	cfg.SetDefaults()

	out, err := yaml.MarshalWithOptions(&cfg, config.GetDurationEncoderOption())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to marshal default config: %v\n", err)
		os.Exit(1)
	}

	fmt.Print(string(out))
}
