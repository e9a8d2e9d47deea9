// Copyright 2026 Sudoku ZKP Contributors
//
// Unit tests for Prover's setup/prove/verify lifecycle and its Solidity
// calldata export.
package sudokuzkp

import (
	"math/big"
	"testing"
)

// ============================================================================
// Uninitialized prover guards
// ============================================================================

func TestUninitializedProverRejectsOperations(t *testing.T) {
	board := mustBoard(t, 1)
	p := NewProver(board)

	if _, err := p.Prove(Assignment{}); err == nil {
		t.Error("expected Prove to fail on an uninitialized prover")
	}
	if _, err := p.Verify(&Proof{}); err == nil {
		t.Error("expected Verify to fail on an uninitialized prover")
	}
	if err := p.SaveKeys("cs", "pk", "vk"); err == nil {
		t.Error("expected SaveKeys to fail on an uninitialized prover")
	}
	if _, err := p.ExportVerificationKey(); err == nil {
		t.Error("expected ExportVerificationKey to fail on an uninitialized prover")
	}
}

// ============================================================================
// End-to-end prove/verify round trip
// ============================================================================

func TestProveVerifyRoundTrip(t *testing.T) {
	board := mustBoard(t, 1)
	p := NewProver(board)
	if err := p.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	var seedKey [32]byte
	for i := range seedKey {
		seedKey[i] = byte(i + 11)
	}
	solution := [][]uint8{{1}}
	puzzle := [][]uint8{{1}}
	ciphertext, err := DeriveCiphertext(solution, seedKey, board)
	if err != nil {
		t.Fatalf("DeriveCiphertext: %v", err)
	}
	keyHash := DeriveKeyHash(seedKey)

	proof, err := p.Prove(Assignment{
		Board:      board,
		Puzzle:     puzzle,
		Solution:   solution,
		SeedKey:    seedKey,
		KeyHash:    keyHash,
		Ciphertext: ciphertext,
	})
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}
	if len(proof.PublicInputs) == 0 {
		t.Fatal("expected a non-empty public input vector on the generated proof")
	}

	valid, err := p.Verify(proof)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !valid {
		t.Fatal("expected a proof of a genuinely known solution to verify")
	}
}

func TestVerifyRejectsTamperedPublicInputs(t *testing.T) {
	board := mustBoard(t, 1)
	p := NewProver(board)
	if err := p.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	var seedKey [32]byte
	solution := [][]uint8{{1}}
	puzzle := [][]uint8{{1}}
	ciphertext, err := DeriveCiphertext(solution, seedKey, board)
	if err != nil {
		t.Fatalf("DeriveCiphertext: %v", err)
	}
	keyHash := DeriveKeyHash(seedKey)

	proof, err := p.Prove(Assignment{
		Board:      board,
		Puzzle:     puzzle,
		Solution:   solution,
		SeedKey:    seedKey,
		KeyHash:    keyHash,
		Ciphertext: ciphertext,
	})
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}

	tampered := *proof
	tampered.PublicInputs = append([]*big.Int{}, proof.PublicInputs...)
	tampered.PublicInputs[0] = new(big.Int).Add(tampered.PublicInputs[0], big.NewInt(1))

	valid, err := p.Verify(&tampered)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if valid {
		t.Fatal("expected verification to fail for a proof whose public inputs were altered")
	}
}

// ============================================================================
// Solidity calldata encoding
// ============================================================================

func TestToSolidityCalldataRoundTripsThroughABI(t *testing.T) {
	proof := &Proof{
		ProofA: [2]*big.Int{big.NewInt(1), big.NewInt(2)},
		ProofB: [2][2]*big.Int{{big.NewInt(3), big.NewInt(4)}, {big.NewInt(5), big.NewInt(6)}},
		ProofC: [2]*big.Int{big.NewInt(7), big.NewInt(8)},
		PublicInputs: []*big.Int{
			big.NewInt(9), big.NewInt(10), big.NewInt(11),
		},
	}

	calldata, err := proof.ToSolidityCalldata()
	if err != nil {
		t.Fatalf("ToSolidityCalldata: %v", err)
	}

	decoded := make(map[string]interface{})
	if err := proofABI.Methods["encodeProof"].Inputs.UnpackIntoMap(decoded, calldata); err != nil {
		t.Fatalf("unpack calldata: %v", err)
	}

	gotPublicInputs, ok := decoded["publicInputs"].([]*big.Int)
	if !ok {
		t.Fatalf("publicInputs has unexpected type %T", decoded["publicInputs"])
	}
	if len(gotPublicInputs) != len(proof.PublicInputs) {
		t.Fatalf("decoded %d public inputs, want %d", len(gotPublicInputs), len(proof.PublicInputs))
	}
	for i, v := range gotPublicInputs {
		if v.Cmp(proof.PublicInputs[i]) != 0 {
			t.Errorf("publicInputs[%d] = %s, want %s", i, v.String(), proof.PublicInputs[i].String())
		}
	}
}

func TestToSolidityCalldataRawIsFixedWidth(t *testing.T) {
	proof := &Proof{
		ProofA:       [2]*big.Int{big.NewInt(1), big.NewInt(2)},
		ProofB:       [2][2]*big.Int{{big.NewInt(3), big.NewInt(4)}, {big.NewInt(5), big.NewInt(6)}},
		ProofC:       [2]*big.Int{big.NewInt(7), big.NewInt(8)},
		PublicInputs: []*big.Int{big.NewInt(9)},
	}

	raw := proof.ToSolidityCalldataRaw()
	wantLen := 32 * (8 + len(proof.PublicInputs))
	if len(raw) != wantLen {
		t.Fatalf("ToSolidityCalldataRaw length = %d, want %d", len(raw), wantLen)
	}
}

func TestProofHashIsStableAndSensitiveToPublicInputs(t *testing.T) {
	base := &Proof{
		ProofA:       [2]*big.Int{big.NewInt(1), big.NewInt(2)},
		ProofB:       [2][2]*big.Int{{big.NewInt(3), big.NewInt(4)}, {big.NewInt(5), big.NewInt(6)}},
		ProofC:       [2]*big.Int{big.NewInt(7), big.NewInt(8)},
		PublicInputs: []*big.Int{big.NewInt(9)},
	}
	h1 := base.ProofHash()
	h2 := base.ProofHash()
	if h1 != h2 {
		t.Fatal("expected ProofHash to be deterministic for the same proof")
	}

	changed := *base
	changed.PublicInputs = []*big.Int{big.NewInt(10)}
	if changed.ProofHash() == h1 {
		t.Fatal("expected ProofHash to change when public inputs change")
	}
}
