// Copyright 2026 Sudoku ZKP Contributors
//
// Shared type aliases for the grids and keys callers pass across this
// package's API.
package sudokuzkp

// Puzzle is an N x N grid of clue values, 0 marking a blank cell.
type Puzzle = [][]uint8

// Solution is an N x N grid of filled-in values in 1..N.
type Solution = [][]uint8

// Ciphertext is an N x N grid, Solution XORed cell-wise with the keystream.
type Ciphertext = [][]uint8

// SeedKey is the 256-bit private key the keystream and its hash derive from.
type SeedKey = [32]byte

// KeyHash is SHA-256(SeedKey || padding), the public commitment to SeedKey.
type KeyHash = [32]byte
