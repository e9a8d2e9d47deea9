// Copyright 2026 Sudoku ZKP Contributors
//
// Command sudokuzk-prove loads previously generated Groth16 keys, builds
// a witness from a puzzle/solution/seed key JSON file, and writes the
// generated proof, with its public inputs, as JSON.
package main

import (
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/zksudoku/sudoku-zkp/internal/sudokuzkp"
	"github.com/zksudoku/sudoku-zkp/pkg/config"
)

type witnessFile struct {
	Puzzle     sudokuzkp.Puzzle   `json:"puzzle"`
	Solution   sudokuzkp.Solution `json:"solution"`
	SeedKeyHex string             `json:"seedKeyHex"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "sudokuzk.yaml", "path to the config file")
	witnessPath := flag.String("witness", "witness.json", "path to a puzzle/solution/seed key JSON file")
	outPath := flag.String("out", "proof.json", "path to write the generated proof")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	raw, err := os.ReadFile(*witnessPath)
	if err != nil {
		return fmt.Errorf("read witness file: %w", err)
	}
	var wf witnessFile
	if err := json.Unmarshal(raw, &wf); err != nil {
		return fmt.Errorf("parse witness file: %w", err)
	}

	var seedKey sudokuzkp.SeedKey
	seedKeyBytes, err := hex.DecodeString(strings.TrimPrefix(wf.SeedKeyHex, "0x"))
	if err != nil {
		return fmt.Errorf("decode seed key: %w", err)
	}
	if len(seedKeyBytes) != 32 {
		return fmt.Errorf("seed key must be 32 bytes, got %d", len(seedKeyBytes))
	}
	copy(seedKey[:], seedKeyBytes)

	board, err := sudokuzkp.NewBoard(cfg.Board.BlockSize)
	if err != nil {
		return fmt.Errorf("build board: %w", err)
	}

	prover := sudokuzkp.NewProver(board)
	if err := prover.InitializeFromKeys(cfg.Keys.ConstraintSystemPath, cfg.Keys.ProvingKeyPath, cfg.Keys.VerifyingKeyPath); err != nil {
		return fmt.Errorf("load keys: %w", err)
	}

	ciphertext, err := sudokuzkp.DeriveCiphertext(wf.Solution, seedKey, board)
	if err != nil {
		return fmt.Errorf("derive ciphertext: %w", err)
	}
	keyHash := sudokuzkp.DeriveKeyHash(seedKey)

	proof, err := prover.Prove(sudokuzkp.Assignment{
		Board:      board,
		Puzzle:     wf.Puzzle,
		Solution:   wf.Solution,
		SeedKey:    seedKey,
		KeyHash:    keyHash,
		Ciphertext: ciphertext,
	})
	if err != nil {
		return fmt.Errorf("generate proof: %w", err)
	}

	encoded, err := json.MarshalIndent(proof, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal proof: %w", err)
	}
	if err := os.WriteFile(*outPath, encoded, 0o644); err != nil {
		return fmt.Errorf("write proof file: %w", err)
	}

	fmt.Printf("wrote proof to %s\n", *outPath)
	return nil
}
