// Copyright © 2026 MultiSplit contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/multisplit-demo/config.go
// Summary: Demo host configuration loading from ~/.config/multisplit/config.json

package main

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
)

// Config holds the demo host's tunables. It is not part of the engine's own
// configuration surface (multisplit.Options) — it's the host application's
// own settings, loaded the way the teacher loads texelation/config.json.
type Config struct {
	Epsilon         float64 `json:"epsilon"`
	HandleThickness int     `json:"handleThickness"`
	UndoDepth       int     `json:"undoDepth"`
	Animate         bool    `json:"animate"`
}

// Default returns the demo's built-in configuration.
func Default() *Config {
	return &Config{
		Epsilon:         0.05,
		HandleThickness: 1,
		UndoDepth:       100,
		Animate:         false,
	}
}

// Load reads ~/.config/multisplit/config.json, falling back to Default if
// the file is absent or the config directory can't be resolved.
func Load() (*Config, error) {
	cfg := Default()

	configDir, err := os.UserConfigDir()
	if err != nil {
		log.Printf("config: failed to get user config dir: %v", err)
		return cfg, nil
	}

	configPath := filepath.Join(configDir, "multisplit", "config.json")
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("config: no config file at %s, using defaults", configPath)
			return cfg, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	log.Printf("config: loaded from %s", configPath)
	return cfg, nil
}

// Save writes the configuration to ~/.config/multisplit/config.json.
func (c *Config) Save() error {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return err
	}
	dir := filepath.Join(configDir, "multisplit")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	path := filepath.Join(dir, "config.json")
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return err
	}
	log.Printf("config: saved to %s", path)
	return nil
}
