// Copyright 2026 Sudoku ZKP Contributors
//
// The cell gadget: proves a solved cell's number lies in {1...N}.
package sudokuzkp

import "github.com/consensys/gnark/frontend"

// emitCellConstraints proves a cell's number lies in {1...N} via a
// one-hot flags vector. It is written as a plain function over variables
// the circuit already owns, rather than a type that allocates its own
// storage. flags must already hold dim variables; this only constrains
// them:
//
//	flags[i] boolean
//	(number - (i+1)) * flags[i] = 0
//
// It does not assert that some flag is set — that is left to
// emitClosureConstraints.
func emitCellConstraints(api frontend.API, number frontend.Variable, flags []frontend.Variable) {
	for i, flag := range flags {
		api.AssertIsBoolean(flag)
		diff := api.Sub(number, i+1)
		api.AssertIsEqual(api.Mul(diff, flag), 0)
	}
}
