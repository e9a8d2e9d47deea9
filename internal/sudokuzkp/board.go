// Copyright 2026 Sudoku ZKP Contributors
//
// Package sudokuzkp is the Sudoku zero-knowledge arithmetization: the R1CS
// gadgets (CellGadget, ClosureGadget, KeystreamGadget, SudokuGadget) and the
// surrounding gnark circuit, witness, and public-input-map plumbing.
package sudokuzkp

import "fmt"

// Board carries the dimension parameters shared by every gadget: n is the
// block side, N = n*n is the number of values/cells per row, and the
// puzzle is an N x N grid. n >= 1 and N < 256 are required so an 8-bit
// cell value suffices; NewBoard checks that precondition. The keystream
// block count, which must stay under 256 for a one-byte salt, is checked
// separately by KeystreamBlocks. A violation halts circuit construction
// with a descriptive error — it is not a witness-time satisfiability
// question.
type Board struct {
	blockSize int
	dim       int
}

// NewBoard validates and constructs a Board for block size n.
func NewBoard(n int) (Board, error) {
	if n < 1 {
		return Board{}, fmt.Errorf("sudokuzkp: block size n must be >= 1, got %d", n)
	}
	dim := n * n
	if dim >= 256 {
		return Board{}, fmt.Errorf("sudokuzkp: dimension N=%d (n=%d) must be < 256", dim, n)
	}
	return Board{blockSize: n, dim: dim}, nil
}

// N is the board's side length and the count of distinct cell values.
func (b Board) N() int { return b.dim }

// BlockSize is n, the side length of the board's square sub-blocks.
func (b Board) BlockSize() int { return b.blockSize }

// Cells is the total number of cells on the board, N*N.
func (b Board) Cells() int { return b.dim * b.dim }

// KeystreamBlocks is D, the number of SHA-256 blocks needed to cover
// N*N*8 keystream bits, and must itself stay under 256 so a one-byte
// counter salt suffices.
func (b Board) KeystreamBlocks() (int, error) {
	d := (b.Cells()*8 + 255) / 256
	if d >= 256 {
		return 0, fmt.Errorf("sudokuzkp: keystream block count D=%d does not fit a one-byte salt", d)
	}
	return d, nil
}

// RowIndices returns the cell indices (row-major) making up row i.
func (b Board) RowIndices(i int) []int {
	out := make([]int, b.dim)
	for j := 0; j < b.dim; j++ {
		out[j] = i*b.dim + j
	}
	return out
}

// ColIndices returns the cell indices (row-major) making up column i.
func (b Board) ColIndices(i int) []int {
	out := make([]int, b.dim)
	for j := 0; j < b.dim; j++ {
		out[j] = j*b.dim + i
	}
	return out
}

// BlockIndices returns the cell indices (row-major) making up the g-th
// n x n sub-block: start at (g/n * n, g%n * n) and collect the block.
func (b Board) BlockIndices(g int) []int {
	n := b.blockSize
	rowStart := (g / n) * n
	colStart := (g % n) * n
	out := make([]int, 0, b.dim)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			out = append(out, (rowStart+r)*b.dim+(colStart+c))
		}
	}
	return out
}
