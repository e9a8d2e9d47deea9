// Copyright 2026 Sudoku ZKP Contributors
//
// Package bitfield holds the bit/byte/field-element packing conventions
// shared by the Sudoku circuit gadgets: pack bit sequences into field
// elements and back, enforce bit-ness.
//
// Bit order convention, fixed throughout this module: within an 8-bit cell
// value, bit index 0 is the most significant bit (so the integer value is
// Sum(2^j * bits[7-j])). Within a field-element packing group, bit index 0
// is the least significant bit of that group (element = Sum(2^i * bit[i])),
// matching the multipacking scheme a caller's SNARK witness layer expects.
package bitfield

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark/frontend"
)

// Capacity is the number of bits safely packable into one BN254 scalar
// field element without wraparound (c = floor(log2|F|), one bit below the
// field's bit length so every packed group is guaranteed canonical).
const Capacity = 253

// EnforceBoolean asserts that every variable in bits is 0 or 1.
func EnforceBoolean(api frontend.API, bits ...frontend.Variable) {
	for _, b := range bits {
		api.AssertIsBoolean(b)
	}
}

// CellNumber packs an 8-bit, MSB-first cell bit vector into its integer
// value: Sum(2^j * bits[7-j]).
func CellNumber(api frontend.API, bits [8]frontend.Variable) frontend.Variable {
	num := frontend.Variable(0)
	weight := 1
	for j := 7; j >= 0; j-- {
		num = api.Add(num, api.Mul(bits[j], weight))
		weight *= 2
	}
	return num
}

// PackLSB packs up to Capacity boolean variables into a single field
// element, LSB-first: element = Sum(2^i * bits[i]).
func PackLSB(api frontend.API, bits []frontend.Variable) frontend.Variable {
	if len(bits) > Capacity {
		panic(fmt.Sprintf("bitfield: group of %d bits exceeds capacity %d", len(bits), Capacity))
	}
	if len(bits) == 0 {
		return frontend.Variable(0)
	}
	return api.FromBinary(bits...)
}

// MultiPack packs an arbitrary-length bit sequence into field elements of
// Capacity bits each (the final group may be short), in order: element j
// carries bits[j*c : min((j+1)*c, len(bits))]. This is the in-circuit half
// of the public-input packing; the plain-Go half used by verifiers that
// never touch a gnark circuit struct lives in PackBitsToInts.
func MultiPack(api frontend.API, bits []frontend.Variable) []frontend.Variable {
	n := NumElements(len(bits))
	out := make([]frontend.Variable, n)
	for j := 0; j < n; j++ {
		lo := j * Capacity
		hi := lo + Capacity
		if hi > len(bits) {
			hi = len(bits)
		}
		out[j] = PackLSB(api, bits[lo:hi])
	}
	return out
}

// NumElements returns ceil(totalBits / Capacity).
func NumElements(totalBits int) int {
	return (totalBits + Capacity - 1) / Capacity
}

// PackBitsToInts is the outside-circuit counterpart of MultiPack: it packs
// a slice of 0/1 ints into *big.Int field elements using the identical
// LSB-first, Capacity-bit grouping, for callers (verifiers, the public-input
// map) that build a witness vector without constructing a circuit.
func PackBitsToInts(bits []int) []*big.Int {
	n := NumElements(len(bits))
	out := make([]*big.Int, n)
	for j := 0; j < n; j++ {
		lo := j * Capacity
		hi := lo + Capacity
		if hi > len(bits) {
			hi = len(bits)
		}
		acc := new(big.Int)
		for i, k := hi-1, hi-lo-1; i >= lo; i, k = i-1, k-1 {
			if bits[i] != 0 {
				acc.SetBit(acc, k, 1)
			}
		}
		out[j] = acc
	}
	return out
}

// BitsFromByte decomposes a byte into 8 bits, MSB-first (bits[0] is the
// most significant bit), matching the cell bit-order convention above.
func BitsFromByte(b byte) [8]int {
	var bits [8]int
	for j := 0; j < 8; j++ {
		bits[j] = int((b >> uint(7-j)) & 1)
	}
	return bits
}

// ByteFromBits is the inverse of BitsFromByte.
func ByteFromBits(bits [8]int) byte {
	var b byte
	for j := 0; j < 8; j++ {
		if bits[j] != 0 {
			b |= 1 << uint(7-j)
		}
	}
	return b
}

// BitsFromBytesMSB flattens a byte slice into an MSB-first bit slice, one
// 8-bit group per byte — the conversion callers perform outside the
// circuit before handing cell values to the witness.
func BitsFromBytesMSB(data []byte) []int {
	out := make([]int, 0, len(data)*8)
	for _, b := range data {
		bits := BitsFromByte(b)
		out = append(out, bits[:]...)
	}
	return out
}
