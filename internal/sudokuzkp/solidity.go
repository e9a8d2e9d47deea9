// Copyright 2026 Sudoku ZKP Contributors
//
// Solidity calldata export for a Proof.
package sudokuzkp

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// proofABI encodes a Groth16 proof plus a variable-length public-input
// vector the way a bounty-style verifier contract expects: uint256[2] for
// A, uint256[2][2] for B, uint256[2] for C, uint256[] for the packed
// public inputs.
var proofABI = mustParseABI(`[{
	"name": "encodeProof",
	"type": "function",
	"inputs": [
		{"name": "proofA", "type": "uint256[2]"},
		{"name": "proofB", "type": "uint256[2][2]"},
		{"name": "proofC", "type": "uint256[2]"},
		{"name": "publicInputs", "type": "uint256[]"}
	]
}]`)

func mustParseABI(abiJSON string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(abiJSON))
	if err != nil {
		panic(fmt.Sprintf("sudokuzkp: failed to parse ABI: %v", err))
	}
	return parsed
}

// ToSolidityCalldata ABI-encodes proof for a verifier contract call,
// using go-ethereum's ABI encoder for type-correct packing.
func (proof *Proof) ToSolidityCalldata() ([]byte, error) {
	proofA := [2]*big.Int{nonNil(proof.ProofA[0]), nonNil(proof.ProofA[1])}
	proofB := [2][2]*big.Int{
		{nonNil(proof.ProofB[0][0]), nonNil(proof.ProofB[0][1])},
		{nonNil(proof.ProofB[1][0]), nonNil(proof.ProofB[1][1])},
	}
	proofC := [2]*big.Int{nonNil(proof.ProofC[0]), nonNil(proof.ProofC[1])}

	publicInputs := make([]*big.Int, len(proof.PublicInputs))
	for i, v := range proof.PublicInputs {
		publicInputs[i] = nonNil(v)
	}

	encoded, err := proofABI.Pack("encodeProof", proofA, proofB, proofC, publicInputs)
	if err != nil {
		return nil, fmt.Errorf("abi pack proof: %w", err)
	}
	if len(encoded) < 4 {
		return nil, errors.New("sudokuzkp: encoded data too short")
	}
	return encoded[4:], nil
}

// ToSolidityCalldataRaw encodes proof as raw 32-byte-aligned words,
// without struct/ABI framing, for contracts that expect concatenated
// uint256 values directly.
func (proof *Proof) ToSolidityCalldataRaw() []byte {
	encoded := make([]byte, 0, 32*(6+len(proof.PublicInputs)))
	encoded = append(encoded, padBigInt(proof.ProofA[0])...)
	encoded = append(encoded, padBigInt(proof.ProofA[1])...)
	encoded = append(encoded, padBigInt(proof.ProofB[0][0])...)
	encoded = append(encoded, padBigInt(proof.ProofB[0][1])...)
	encoded = append(encoded, padBigInt(proof.ProofB[1][0])...)
	encoded = append(encoded, padBigInt(proof.ProofB[1][1])...)
	encoded = append(encoded, padBigInt(proof.ProofC[0])...)
	encoded = append(encoded, padBigInt(proof.ProofC[1])...)
	for _, v := range proof.PublicInputs {
		encoded = append(encoded, padBigInt(v)...)
	}
	return encoded
}

// ProofHash returns a digest of proof's A/C points and public inputs,
// suitable for proof-submission deduplication.
func (proof *Proof) ProofHash() [32]byte {
	h := sha256.New()
	h.Write(padBigInt(proof.ProofA[0]))
	h.Write(padBigInt(proof.ProofA[1]))
	h.Write(padBigInt(proof.ProofC[0]))
	h.Write(padBigInt(proof.ProofC[1]))
	for _, v := range proof.PublicInputs {
		h.Write(padBigInt(v))
	}
	var result [32]byte
	copy(result[:], h.Sum(nil))
	return result
}

// ToHex renders ToSolidityCalldata as a hex string for debugging/logging.
func (proof *Proof) ToHex() string {
	calldata, _ := proof.ToSolidityCalldata()
	return hex.EncodeToString(calldata)
}

func nonNil(n *big.Int) *big.Int {
	if n == nil {
		return big.NewInt(0)
	}
	return n
}

func padBigInt(n *big.Int) []byte {
	if n == nil {
		return make([]byte, 32)
	}
	b := n.Bytes()
	if len(b) >= 32 {
		return b[len(b)-32:]
	}
	result := make([]byte, 32)
	copy(result[32-len(b):], b)
	return result
}
