// Copyright 2026 Sudoku ZKP Contributors
//
// Package config loads the sudoku zero-knowledge prover's configuration
// from a YAML file, with ${VAR_NAME} environment variable substitution.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the settings shared by the setup and prove CLIs and the
// HTTP submission service.
type Config struct {
	Board  BoardSettings  `yaml:"board"`
	Keys   KeySettings    `yaml:"keys"`
	Server ServerSettings `yaml:"server"`
}

// BoardSettings fixes the puzzle dimension a compiled circuit serves.
type BoardSettings struct {
	BlockSize int `yaml:"block_size"` // n; N = n*n
}

// KeySettings locates the constraint system and Groth16 key files on disk.
type KeySettings struct {
	ConstraintSystemPath string `yaml:"constraint_system_path"`
	ProvingKeyPath       string `yaml:"proving_key_path"`
	VerifyingKeyPath     string `yaml:"verifying_key_path"`
}

// ServerSettings configures the HTTP proof-submission service.
type ServerSettings struct {
	ListenAddr string `yaml:"listen_addr"`
	LogLevel   string `yaml:"log_level"`
}

var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(:-([^}]*))?\}`)

// Load reads cfg from a YAML file at path, substituting ${VAR_NAME} and
// ${VAR_NAME:-default} references against the process environment before
// parsing.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}

	expanded := substituteEnvVars(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	cfg.applyDefaults()

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Board.BlockSize == 0 {
		c.Board.BlockSize = 3 // classic 9x9 board
	}
	if c.Keys.ConstraintSystemPath == "" {
		c.Keys.ConstraintSystemPath = "sudokuzk.cs"
	}
	if c.Keys.ProvingKeyPath == "" {
		c.Keys.ProvingKeyPath = "sudokuzk.pk"
	}
	if c.Keys.VerifyingKeyPath == "" {
		c.Keys.VerifyingKeyPath = "sudokuzk.vk"
	}
	if c.Server.ListenAddr == "" {
		c.Server.ListenAddr = "0.0.0.0:8080"
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = "info"
	}
}

// Validate checks the settings needed before any proving or verification
// can proceed.
func (c *Config) Validate() error {
	var errs []string
	if c.Board.BlockSize < 1 {
		errs = append(errs, "board.block_size must be >= 1")
	}
	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

func substituteEnvVars(content string) string {
	return envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		groups := envVarPattern.FindStringSubmatch(match)
		if len(groups) < 2 {
			return match
		}
		varName := groups[1]
		defaultValue := ""
		if len(groups) >= 4 {
			defaultValue = groups[3]
		}
		if value := os.Getenv(varName); value != "" {
			return value
		}
		return defaultValue
	})
}
