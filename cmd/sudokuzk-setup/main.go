// Copyright 2026 Sudoku ZKP Contributors
//
// Command sudokuzk-setup runs the one-time Groth16 trusted setup for a
// fixed Sudoku board dimension and writes the constraint system and keys
// to disk.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/zksudoku/sudoku-zkp/internal/sudokuzkp"
	"github.com/zksudoku/sudoku-zkp/pkg/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "sudokuzk.yaml", "path to the config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	board, err := sudokuzkp.NewBoard(cfg.Board.BlockSize)
	if err != nil {
		return fmt.Errorf("build board: %w", err)
	}

	prover := sudokuzkp.NewProver(board)
	if err := prover.Initialize(); err != nil {
		return fmt.Errorf("initialize prover: %w", err)
	}

	if err := prover.SaveKeys(cfg.Keys.ConstraintSystemPath, cfg.Keys.ProvingKeyPath, cfg.Keys.VerifyingKeyPath); err != nil {
		return fmt.Errorf("save keys: %w", err)
	}

	fmt.Printf("wrote constraint system to %s, proving key to %s, verifying key to %s\n",
		cfg.Keys.ConstraintSystemPath, cfg.Keys.ProvingKeyPath, cfg.Keys.VerifyingKeyPath)
	return nil
}
