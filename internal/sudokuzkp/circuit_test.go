// Copyright 2026 Sudoku ZKP Contributors
//
// Unit tests for Circuit's shape allocation and end-to-end satisfiability,
// both for valid witnesses and for witnesses that must be rejected.
package sudokuzkp

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend"
	"github.com/consensys/gnark/test"

	"github.com/zksudoku/sudoku-zkp/internal/bitfield"
)

// ============================================================================
// Shape tests
// ============================================================================

func TestNewCircuitShapesMatchBoard(t *testing.T) {
	board := mustBoard(t, 3)
	c, err := NewCircuit(board)
	if err != nil {
		t.Fatalf("NewCircuit: %v", err)
	}

	cells := board.Cells()
	if len(c.PuzzleValues) != cells {
		t.Errorf("PuzzleValues has %d entries, want %d", len(c.PuzzleValues), cells)
	}
	if len(c.EncryptedSolution) != cells {
		t.Errorf("EncryptedSolution has %d entries, want %d", len(c.EncryptedSolution), cells)
	}
	if len(c.SolutionValues) != cells {
		t.Errorf("SolutionValues has %d entries, want %d", len(c.SolutionValues), cells)
	}
	if len(c.SolutionFlags) != cells {
		t.Errorf("SolutionFlags has %d entries, want %d", len(c.SolutionFlags), cells)
	}
	for k, flags := range c.SolutionFlags {
		if len(flags) != board.N() {
			t.Errorf("SolutionFlags[%d] has %d entries, want %d", k, len(flags), board.N())
		}
	}
	if len(c.PuzzleEnforce) != cells {
		t.Errorf("PuzzleEnforce has %d entries, want %d", len(c.PuzzleEnforce), cells)
	}

	wantElements := bitfield.NumElements(2*cells*8 + 256)
	if len(c.PublicFieldElements) != wantElements {
		t.Errorf("PublicFieldElements has %d entries, want %d", len(c.PublicFieldElements), wantElements)
	}
}

// ============================================================================
// End-to-end satisfiability
// ============================================================================

func TestTrivialBoardSolvingSucceeds(t *testing.T) {
	assert := test.NewAssert(t)

	board := mustBoard(t, 1) // N=1: the only valid value is 1.
	puzzle := [][]uint8{{1}}
	solution := [][]uint8{{1}}
	var seedKey [32]byte
	for i := range seedKey {
		seedKey[i] = byte(i)
	}

	witness, err := BuildHappyPathAssignment(board, puzzle, solution, seedKey)
	if err != nil {
		t.Fatalf("BuildHappyPathAssignment: %v", err)
	}

	placeholder, err := NewCircuit(board)
	if err != nil {
		t.Fatalf("NewCircuit: %v", err)
	}

	assert.SolvingSucceeded(placeholder, witness,
		test.WithCurves(ecc.BN254), test.WithBackends(backend.GROTH16))
}

func TestFourByFourBoardSolvingSucceeds(t *testing.T) {
	assert := test.NewAssert(t)

	board := mustBoard(t, 2)
	puzzle, solution := validSudoku2()
	var seedKey [32]byte
	for i := range seedKey {
		seedKey[i] = byte(i * 5)
	}

	witness, err := BuildHappyPathAssignment(board, puzzle, solution, seedKey)
	if err != nil {
		t.Fatalf("BuildHappyPathAssignment: %v", err)
	}

	placeholder, err := NewCircuit(board)
	if err != nil {
		t.Fatalf("NewCircuit: %v", err)
	}

	assert.SolvingSucceeded(placeholder, witness,
		test.WithCurves(ecc.BN254), test.WithBackends(backend.GROTH16))
}

// ============================================================================
// Unsatisfiability: every gadget must actually reject a bad witness
// ============================================================================

// cloneGrid deep-copies a puzzle/solution/ciphertext grid so a test case can
// mutate one cell without disturbing a shared baseline.
func cloneGrid(grid [][]uint8) [][]uint8 {
	out := make([][]uint8, len(grid))
	for i, row := range grid {
		out[i] = append([]uint8{}, row...)
	}
	return out
}

func TestSolvingFailsForBadWitnesses(t *testing.T) {
	board := mustBoard(t, 2)
	puzzle, solution := validSudoku2()
	var seedKey [32]byte
	for i := range seedKey {
		seedKey[i] = byte(i * 5)
	}

	blankPuzzle := [][]uint8{
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}

	cases := []struct {
		name string
		// build returns the Assignment the gadget that's meant to fail
		// should reject.
		build func() (Assignment, error)
	}{
		{
			// S2: a solution that repeats a value in its first row violates
			// the row closure gadget, even though it's still internally
			// consistent with its own derived ciphertext and key hash.
			name: "duplicate value in row violates closure",
			build: func() (Assignment, error) {
				badSolution := cloneGrid(solution)
				badSolution[0][1] = badSolution[0][0] // duplicate, breaks row closure

				ciphertext, err := DeriveCiphertext(badSolution, seedKey, board)
				if err != nil {
					return Assignment{}, err
				}
				return Assignment{
					Board:      board,
					Puzzle:     blankPuzzle,
					Solution:   badSolution,
					SeedKey:    seedKey,
					KeyHash:    DeriveKeyHash(seedKey),
					Ciphertext: ciphertext,
				}, nil
			},
		},
		{
			// S3: the claimed ciphertext no longer matches
			// solution XOR keystream in its first byte.
			name: "tampered ciphertext byte violates the XOR identity",
			build: func() (Assignment, error) {
				ciphertext, err := DeriveCiphertext(solution, seedKey, board)
				if err != nil {
					return Assignment{}, err
				}
				ciphertext[0][0] ^= 0x01

				return Assignment{
					Board:      board,
					Puzzle:     puzzle,
					Solution:   solution,
					SeedKey:    seedKey,
					KeyHash:    DeriveKeyHash(seedKey),
					Ciphertext: ciphertext,
				}, nil
			},
		},
		{
			// S4: the claimed key hash no longer matches
			// SHA-256(seed key).
			name: "tampered key hash byte violates the hash gadget",
			build: func() (Assignment, error) {
				ciphertext, err := DeriveCiphertext(solution, seedKey, board)
				if err != nil {
					return Assignment{}, err
				}
				keyHash := DeriveKeyHash(seedKey)
				keyHash[0] ^= 0x01

				return Assignment{
					Board:      board,
					Puzzle:     puzzle,
					Solution:   solution,
					SeedKey:    seedKey,
					KeyHash:    keyHash,
					Ciphertext: ciphertext,
				}, nil
			},
		},
		{
			// S5: a clued puzzle cell disagrees with the solution at the
			// same position, violating the puzzle-subset coupling.
			name: "clued puzzle cell disagrees with the solution",
			build: func() (Assignment, error) {
				badPuzzle := cloneGrid(puzzle)
				// solution[0][0] == 1, so 2 is a genuine mismatch.
				badPuzzle[0][0] = 2

				ciphertext, err := DeriveCiphertext(solution, seedKey, board)
				if err != nil {
					return Assignment{}, err
				}
				return Assignment{
					Board:      board,
					Puzzle:     badPuzzle,
					Solution:   solution,
					SeedKey:    seedKey,
					KeyHash:    DeriveKeyHash(seedKey),
					Ciphertext: ciphertext,
				}, nil
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert := test.NewAssert(t)

			assignment, err := tc.build()
			if err != nil {
				t.Fatalf("build assignment: %v", err)
			}
			badWitness, err := BuildAssignment(assignment)
			if err != nil {
				t.Fatalf("BuildAssignment: %v", err)
			}

			placeholder, err := NewCircuit(board)
			if err != nil {
				t.Fatalf("NewCircuit: %v", err)
			}

			assert.SolvingFailed(placeholder, badWitness,
				test.WithCurves(ecc.BN254), test.WithBackends(backend.GROTH16))
		})
	}
}
