// Copyright 2026 Sudoku ZKP Contributors
//
// The closure gadget: proves a group of dim cells covers {1...dim} exactly
// once.
package sudokuzkp

import "github.com/consensys/gnark/frontend"

// emitClosureConstraints proves that the dim flag vectors in flagsGroup
// collectively cover {1...dim} exactly once. For each position i, exactly
// one of the dim cells has flags[i] set:
//
//	Sum_j flagsGroup[j][i] = 1
//
// Combined with emitCellConstraints on each of those cells, this forces
// each cell to have exactly one flag set and all dim values to appear.
func emitClosureConstraints(api frontend.API, flagsGroup [][]frontend.Variable) {
	dim := len(flagsGroup)
	for i := 0; i < dim; i++ {
		sum := frontend.Variable(0)
		for j := 0; j < dim; j++ {
			sum = api.Add(sum, flagsGroup[j][i])
		}
		api.AssertIsEqual(sum, 1)
	}
}
