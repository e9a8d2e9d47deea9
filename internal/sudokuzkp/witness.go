// Copyright 2026 Sudoku ZKP Contributors
//
// Witness construction: deriving the keystream, ciphertext and key hash
// outside the circuit, and filling in a Circuit's full witness assignment.
package sudokuzkp

import (
	"crypto/sha256"
	"fmt"

	"github.com/consensys/gnark/frontend"

	"github.com/zksudoku/sudoku-zkp/internal/bitfield"
)

// cellAt reads the (row-major) k-th cell out of an N x N grid.
func cellAt(grid [][]uint8, board Board, k int) uint8 {
	n := board.N()
	return grid[k/n][k%n]
}

// DeriveKeystream computes the keystream bytes for board from seedKey:
// block i is SHA-256(seedKey[0:31] || byte(i)), which — because
// seedKey[0:31] is exactly 248 bits and the circuit's own padding
// constant is exactly the standard SHA-256 padding for a 32-byte message
// — is bit-identical to the in-circuit keystream gadget's digest i.
// Blocks are concatenated and truncated to one byte per cell.
func DeriveKeystream(seedKey [32]byte, board Board) ([]byte, error) {
	blocks, err := board.KeystreamBlocks()
	if err != nil {
		return nil, err
	}
	prefix := seedKey[:31]
	out := make([]byte, 0, blocks*sha256.Size)
	for i := 0; i < blocks; i++ {
		msg := make([]byte, 0, 32)
		msg = append(msg, prefix...)
		msg = append(msg, byte(i))
		digest := sha256.Sum256(msg)
		out = append(out, digest[:]...)
	}
	return out[:board.Cells()], nil
}

// DeriveKeyHash computes SHA-256(seedKey || padding), which (seedKey being
// exactly 32 bytes) is bit-identical to the standard SHA-256 digest of the
// 32-byte seed key itself.
func DeriveKeyHash(seedKey [32]byte) [32]byte {
	return sha256.Sum256(seedKey[:])
}

// DeriveCiphertext XORs solution with the seed key's keystream:
// ciphertext[k] = solution[k] XOR keystream[k].
func DeriveCiphertext(solution [][]uint8, seedKey [32]byte, board Board) ([][]uint8, error) {
	keystream, err := DeriveKeystream(seedKey, board)
	if err != nil {
		return nil, err
	}
	n := board.N()
	out := make([][]uint8, n)
	for i := range out {
		out[i] = make([]uint8, n)
	}
	for k := 0; k < board.Cells(); k++ {
		out[k/n][k%n] = cellAt(solution, board, k) ^ keystream[k]
	}
	return out, nil
}

// Assignment is the concrete instantiation of Circuit the prover hands to
// gnark: puzzle, solution, seed key, key hash and ciphertext are all
// required, since the key hash and ciphertext are public but must also be
// supplied to the witness filler so the public-input wires resolve
// correctly.
type Assignment struct {
	Board      Board
	Puzzle     [][]uint8
	Solution   [][]uint8
	SeedKey    [32]byte
	KeyHash    [32]byte
	Ciphertext [][]uint8
}

func validateGrid(grid [][]uint8, board Board, name string) error {
	n := board.N()
	if len(grid) != n {
		return fmt.Errorf("sudokuzkp: %s has %d rows, want %d", name, len(grid), n)
	}
	for i, row := range grid {
		if len(row) != n {
			return fmt.Errorf("sudokuzkp: %s row %d has %d cells, want %d", name, i, len(row), n)
		}
	}
	return nil
}

// BuildAssignment materializes a *Circuit (the gnark witness assignment)
// from a, computing the derived fields the circuit composition needs:
// puzzle/solution bit vectors, the puzzle-subset enforce flags, and the
// one-hot SolutionFlags the cell gadget's witness requires.
func BuildAssignment(a Assignment) (*Circuit, error) {
	if err := validateGrid(a.Puzzle, a.Board, "puzzle"); err != nil {
		return nil, err
	}
	if err := validateGrid(a.Solution, a.Board, "solution"); err != nil {
		return nil, err
	}
	if err := validateGrid(a.Ciphertext, a.Board, "ciphertext"); err != nil {
		return nil, err
	}

	c, err := NewCircuit(a.Board)
	if err != nil {
		return nil, err
	}
	dim := a.Board.N()
	cells := a.Board.Cells()

	inputBits := make([]int, 0, 2*cells*8+256)

	for k := 0; k < cells; k++ {
		pBits := bitfield.BitsFromByte(cellAt(a.Puzzle, a.Board, k))
		sBits := bitfield.BitsFromByte(cellAt(a.Solution, a.Board, k))
		eBits := bitfield.BitsFromByte(cellAt(a.Ciphertext, a.Board, k))
		for j := 0; j < 8; j++ {
			c.PuzzleValues[k][j] = pBits[j]
			c.SolutionValues[k][j] = sBits[j]
			c.EncryptedSolution[k][j] = eBits[j]
		}
		inputBits = append(inputBits, pBits[:]...)

		puzzleNonZero := false
		for _, b := range pBits {
			if b != 0 {
				puzzleNonZero = true
				break
			}
		}
		if puzzleNonZero {
			c.PuzzleEnforce[k] = 1
		} else {
			c.PuzzleEnforce[k] = 0
		}

		solNumber := bitfield.ByteFromBits(sBits)
		for i := 0; i < dim; i++ {
			if int(solNumber) == i+1 {
				c.SolutionFlags[k][i] = 1
			} else {
				c.SolutionFlags[k][i] = 0
			}
		}
	}
	for k := 0; k < cells; k++ {
		eBits := bitfield.BitsFromByte(cellAt(a.Ciphertext, a.Board, k))
		inputBits = append(inputBits, eBits[:]...)
	}

	keyHashBits := bitfield.BitsFromBytesMSB(a.KeyHash[:])
	for i, b := range keyHashBits {
		c.HSeedKey[i] = b
	}
	inputBits = append(inputBits, keyHashBits...)

	seedBits := bitfield.BitsFromBytesMSB(a.SeedKey[:])
	for i, b := range seedBits {
		c.SeedKey[i] = b
	}

	packed := bitfield.PackBitsToInts(inputBits)
	c.PublicFieldElements = make([]frontend.Variable, len(packed))
	for i, v := range packed {
		c.PublicFieldElements[i] = v
	}

	return c, nil
}

// BuildHappyPathAssignment is the S1/S6-style convenience constructor: it
// derives the ciphertext and key hash from solution and seedKey rather
// than requiring the caller to compute them, for the common case of
// proving a solution the caller actually knows is valid.
func BuildHappyPathAssignment(board Board, puzzle, solution [][]uint8, seedKey [32]byte) (*Circuit, error) {
	ciphertext, err := DeriveCiphertext(solution, seedKey, board)
	if err != nil {
		return nil, err
	}
	keyHash := DeriveKeyHash(seedKey)
	return BuildAssignment(Assignment{
		Board:      board,
		Puzzle:     puzzle,
		Solution:   solution,
		SeedKey:    seedKey,
		KeyHash:    keyHash,
		Ciphertext: ciphertext,
	})
}
