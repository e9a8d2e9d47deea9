// Copyright 2026 Sudoku ZKP Contributors
//
// Package sudokuzkp, continued: Circuit is the composition of cell,
// closure and keystream gadgets plus the puzzle/solution/ciphertext/hash
// wiring and the public-input multipacking.
package sudokuzkp

import (
	"fmt"

	"github.com/consensys/gnark/frontend"

	"github.com/zksudoku/sudoku-zkp/internal/bitfield"
	"github.com/zksudoku/sudoku-zkp/internal/sha256circuit"
)

// Circuit is the gnark circuit for a board of a given dimension. N, D and
// BlockSize are compile-time parameters rather than wires (N and BlockSize
// fix the board shape the slices below are sized from, D is the keystream
// block count), so they carry the "-" tag to keep gnark from trying to
// treat them as variables.
type Circuit struct {
	N         int `gnark:"-"`
	D         int `gnark:"-"`
	BlockSize int `gnark:"-"`

	// PublicFieldElements is input_as_field_elements: the only actual R1CS
	// public input, one element per Capacity bits of
	// puzzle || ciphertext || key-hash.
	PublicFieldElements []frontend.Variable `gnark:",public"`

	// PuzzleValues, EncryptedSolution and HSeedKey are input_as_bits
	// (auxiliary witness, not individually public): their concatenation,
	// bit for bit, is what PublicFieldElements packs.
	PuzzleValues      [][8]frontend.Variable
	EncryptedSolution [][8]frontend.Variable
	HSeedKey          [256]frontend.Variable

	// Private witness known only to the prover.
	SolutionValues [][8]frontend.Variable
	SeedKey        [256]frontend.Variable

	// SolutionFlags and PuzzleEnforce are witness-supplied auxiliary
	// variables (the cell gadget's one-hot flags and the puzzle-subset
	// enforce bit); the prover computes their values deterministically
	// from the fields above (see witness.go) since gnark has no
	// mid-Define allocation step to do it for us.
	SolutionFlags [][]frontend.Variable
	PuzzleEnforce []frontend.Variable
}

// NewCircuit allocates a Circuit shaped for board, with every slice sized
// but unvalued — suitable for frontend.Compile, which only inspects shape.
func NewCircuit(board Board) (*Circuit, error) {
	d, err := board.KeystreamBlocks()
	if err != nil {
		return nil, err
	}
	dim := board.N()
	cells := board.Cells()

	c := &Circuit{
		N:                 dim,
		D:                 d,
		BlockSize:         board.BlockSize(),
		PuzzleValues:      make([][8]frontend.Variable, cells),
		EncryptedSolution: make([][8]frontend.Variable, cells),
		SolutionValues:    make([][8]frontend.Variable, cells),
		SolutionFlags:     make([][]frontend.Variable, cells),
		PuzzleEnforce:     make([]frontend.Variable, cells),
	}
	for k := 0; k < cells; k++ {
		c.SolutionFlags[k] = make([]frontend.Variable, dim)
	}

	totalBits := 2*cells*8 + 256
	c.PublicFieldElements = make([]frontend.Variable, bitfield.NumElements(totalBits))

	return c, nil
}

// Define implements frontend.Circuit: it wires the cell, closure and
// keystream gadgets, the puzzle-subset coupling, the ciphertext XOR and
// the public-input packing.
func (c *Circuit) Define(api frontend.API) error {
	board, err := NewBoard(c.BlockSize)
	if err != nil {
		return err
	}
	if board.N() != c.N {
		return fmt.Errorf("sudokuzkp: circuit dimension %d does not match block size %d", c.N, c.BlockSize)
	}
	dim := c.N
	cells := board.Cells()

	// --- bit-ness of every allocated boolean --------------------------
	for k := 0; k < cells; k++ {
		bitfield.EnforceBoolean(api, c.PuzzleValues[k][:]...)
		bitfield.EnforceBoolean(api, c.EncryptedSolution[k][:]...)
		bitfield.EnforceBoolean(api, c.SolutionValues[k][:]...)
	}
	bitfield.EnforceBoolean(api, c.HSeedKey[:]...)
	bitfield.EnforceBoolean(api, c.SeedKey[:]...)
	for k := 0; k < cells; k++ {
		bitfield.EnforceBoolean(api, c.PuzzleEnforce[k])
	}

	// --- puzzle/solution numbers and cell gadgets ----------------------
	puzzleNumbers := make([]frontend.Variable, cells)
	solutionNumbers := make([]frontend.Variable, cells)
	for k := 0; k < cells; k++ {
		puzzleNumbers[k] = bitfield.CellNumber(api, c.PuzzleValues[k])
		solutionNumbers[k] = bitfield.CellNumber(api, c.SolutionValues[k])
		emitCellConstraints(api, solutionNumbers[k], c.SolutionFlags[k])
	}

	// --- puzzle-subset coupling -----------------------------------------
	for k := 0; k < cells; k++ {
		enforce := c.PuzzleEnforce[k]
		api.AssertIsEqual(api.Mul(puzzleNumbers[k], api.Sub(1, enforce)), 0)
		api.AssertIsEqual(api.Mul(enforce, api.Sub(solutionNumbers[k], puzzleNumbers[k])), 0)
	}

	// --- row / column / block closures -----------------------------------
	for i := 0; i < dim; i++ {
		emitClosureConstraints(api, flagsForIndices(c.SolutionFlags, board.RowIndices(i)))
		emitClosureConstraints(api, flagsForIndices(c.SolutionFlags, board.ColIndices(i)))
		emitClosureConstraints(api, flagsForIndices(c.SolutionFlags, board.BlockIndices(i)))
	}

	// --- key hash ---------------------------------------------------------
	pad := paddingBits()
	hBlock := make([]frontend.Variable, 0, sha256circuit.BlockBits)
	hBlock = append(hBlock, c.SeedKey[:]...)
	hBlock = append(hBlock, pad[:]...)
	hDigest := sha256circuit.Compress(api, hBlock)
	for i := 0; i < sha256circuit.DigestBits; i++ {
		api.AssertIsEqual(hDigest[i], c.HSeedKey[i])
	}

	// --- keystream and ciphertext XOR --------------------------------------
	keystream := emitKeystreamConstraints(api, c.SeedKey[:248], c.D)
	for k := 0; k < cells; k++ {
		for y := 0; y < 8; y++ {
			shaI := 8*k + y
			keyBit := keystream[shaI]
			sol := c.SolutionValues[k][y]
			enc := c.EncryptedSolution[k][y]
			// (2*sol)*keyBit = sol + keyBit - enc
			lhs := api.Mul(api.Mul(2, sol), keyBit)
			rhs := api.Sub(api.Add(sol, keyBit), enc)
			api.AssertIsEqual(lhs, rhs)
		}
	}

	// --- public-input packing -----------------------------------------------
	inputBits := make([]frontend.Variable, 0, 2*cells*8+256)
	for k := 0; k < cells; k++ {
		inputBits = append(inputBits, c.PuzzleValues[k][:]...)
	}
	for k := 0; k < cells; k++ {
		inputBits = append(inputBits, c.EncryptedSolution[k][:]...)
	}
	inputBits = append(inputBits, c.HSeedKey[:]...)

	packed := bitfield.MultiPack(api, inputBits)
	if len(packed) != len(c.PublicFieldElements) {
		return fmt.Errorf("sudokuzkp: packed input has %d elements, circuit declares %d", len(packed), len(c.PublicFieldElements))
	}
	for i := range packed {
		api.AssertIsEqual(packed[i], c.PublicFieldElements[i])
	}

	return nil
}

func flagsForIndices(flags [][]frontend.Variable, indices []int) [][]frontend.Variable {
	out := make([][]frontend.Variable, len(indices))
	for i, idx := range indices {
		out[i] = flags[idx]
	}
	return out
}

