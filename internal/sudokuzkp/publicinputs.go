// Copyright 2026 Sudoku ZKP Contributors
//
// The outside-circuit public-input map.
package sudokuzkp

import (
	"math/big"

	"github.com/zksudoku/sudoku-zkp/internal/bitfield"
)

// PublicInputs builds the public-input vector a verifier assembles without
// touching a gnark circuit struct: the same puzzle || ciphertext ||
// key-hash bit ordering Circuit.Define packs, run through the plain-Go
// multipacking in bitfield.PackBitsToInts. A verifier that holds the
// puzzle, the ciphertext and the key hash (all public) can reconstruct
// this vector independently and compare it against what a proof claims.
func PublicInputs(board Board, puzzle Puzzle, ciphertext Ciphertext, keyHash KeyHash) ([]*big.Int, error) {
	if err := validateGrid(puzzle, board, "puzzle"); err != nil {
		return nil, err
	}
	if err := validateGrid(ciphertext, board, "ciphertext"); err != nil {
		return nil, err
	}

	cells := board.Cells()
	bits := make([]int, 0, 2*cells*8+256)

	for k := 0; k < cells; k++ {
		b := bitfield.BitsFromByte(cellAt(puzzle, board, k))
		bits = append(bits, b[:]...)
	}
	for k := 0; k < cells; k++ {
		b := bitfield.BitsFromByte(cellAt(ciphertext, board, k))
		bits = append(bits, b[:]...)
	}
	bits = append(bits, bitfield.BitsFromBytesMSB(keyHash[:])...)

	return bitfield.PackBitsToInts(bits), nil
}
