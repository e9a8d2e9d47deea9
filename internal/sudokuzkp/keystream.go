// Copyright 2026 Sudoku ZKP Contributors
//
// The keystream gadget: derives a counter-mode SHA-256 keystream from the
// seed key for the solution's ciphertext XOR.
package sudokuzkp

import (
	"encoding/binary"

	"github.com/consensys/gnark/frontend"

	"github.com/zksudoku/sudoku-zkp/internal/bitfield"
	"github.com/zksudoku/sudoku-zkp/internal/sha256circuit"
)

// paddingBytes is the fixed 32-byte trailer that, appended to a 256-bit
// (32-byte) message, forms a correctly padded single 512-bit SHA-256
// block: first byte 0x80, then zeros, then the 64-bit big-endian bit
// length (256). Built programmatically rather than transcribed as a
// literal bit array, to avoid an off-by-one-bit transcription error.
func paddingBytes() [32]byte {
	var p [32]byte
	p[0] = 0x80
	binary.BigEndian.PutUint64(p[24:32], 256)
	return p
}

// paddingBits is the MSB-first bit form of paddingBytes, as circuit
// constants (plain 0/1 ints — frontend.Variable accepts Go ints as
// constant operands directly, so these need no boolean assertion).
func paddingBits() [256]frontend.Variable {
	bytes := paddingBytes()
	bits := bitfield.BitsFromBytesMSB(bytes[:])
	var out [256]frontend.Variable
	for i, b := range bits {
		out[i] = b
	}
	return out
}

// saltBits is the MSB-first 8-bit big-endian encoding of a keystream
// block index, as circuit constants.
func saltBits(index int) [8]frontend.Variable {
	bits := bitfield.BitsFromByte(byte(index))
	var out [8]frontend.Variable
	for i, b := range bits {
		out[i] = b
	}
	return out
}

// keystreamBlock builds block i's 512-bit message:
// seedKeyPrefix[0:248] || salt(i) || padding, and compresses it.
func keystreamBlock(api frontend.API, seedKeyPrefix []frontend.Variable, index int) []frontend.Variable {
	if len(seedKeyPrefix) != 248 {
		panic("sudokuzkp: seed key prefix must be 248 bits")
	}
	pad := paddingBits()
	salt := saltBits(index)

	block := make([]frontend.Variable, 0, sha256circuit.BlockBits)
	block = append(block, seedKeyPrefix...)
	block = append(block, salt[:]...)
	block = append(block, pad[:]...)

	return sha256circuit.Compress(api, block)
}

// emitKeystreamConstraints derives D SHA-256 digests, each compressed
// from seedKeyPrefix || salt(i) || the fixed padding, and returns their
// bits concatenated — the keystream.
// seedKeyPrefix must already be boolean-constrained by the caller (it is
// the first 248 bits of the circuit's SeedKey field, which the caller
// boolean-enforces once for all 256 bits).
func emitKeystreamConstraints(api frontend.API, seedKeyPrefix []frontend.Variable, blocks int) []frontend.Variable {
	keystream := make([]frontend.Variable, 0, blocks*sha256circuit.DigestBits)
	for i := 0; i < blocks; i++ {
		keystream = append(keystream, keystreamBlock(api, seedKeyPrefix, i)...)
	}
	return keystream
}
