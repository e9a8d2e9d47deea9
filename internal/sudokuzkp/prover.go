// Copyright 2026 Sudoku ZKP Contributors
//
// Package sudokuzkp, continued: Prover wraps circuit compilation, Groth16
// setup, proof generation/verification and key (de)serialization for a
// fixed board dimension.
package sudokuzkp

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"os"
	"sync"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	groth16bn254 "github.com/consensys/gnark/backend/groth16/bn254"
	"github.com/consensys/gnark/backend/witness"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
)

// Prover holds the compiled constraint system and Groth16 keys for one
// board dimension, guarded against concurrent setup/proving races.
type Prover struct {
	mu sync.RWMutex

	board Board

	cs constraint.ConstraintSystem
	pk groth16.ProvingKey
	vk groth16.VerifyingKey

	initialized bool
}

// Proof is a Groth16 proof plus the public inputs it was generated
// against, ready for local verification or on-chain export.
type Proof struct {
	ProofA [2]*big.Int    `json:"proofA"`
	ProofB [2][2]*big.Int `json:"proofB"`
	ProofC [2]*big.Int    `json:"proofC"`

	PublicInputs []*big.Int `json:"publicInputs"`
}

// VerificationKeyExport is the verification key in the coordinate layout
// a Solidity Groth16 verifier contract expects.
type VerificationKeyExport struct {
	Alpha1 [2]*big.Int    `json:"alpha1"`
	Beta2  [2][2]*big.Int `json:"beta2"`
	Gamma2 [2][2]*big.Int `json:"gamma2"`
	Delta2 [2][2]*big.Int `json:"delta2"`
	IC     [][2]*big.Int  `json:"ic"`
}

// NewProver creates an uninitialized prover for board.
func NewProver(board Board) *Prover {
	return &Prover{board: board}
}

// Initialize compiles the circuit and runs the Groth16 trusted setup.
// This is a one-time, potentially slow operation.
func (p *Prover) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}

	circuit, err := NewCircuit(p.board)
	if err != nil {
		return fmt.Errorf("allocate circuit: %w", err)
	}

	cs, err := frontend.Compile(ecc.BN254.ScalarField(), r1cs.NewBuilder, circuit)
	if err != nil {
		return fmt.Errorf("compile circuit: %w", err)
	}
	p.cs = cs

	pk, vk, err := groth16.Setup(cs)
	if err != nil {
		return fmt.Errorf("groth16 setup: %w", err)
	}
	p.pk = pk
	p.vk = vk

	p.initialized = true
	return nil
}

// InitializeFromKeys loads a previously saved constraint system, proving
// key and verification key from disk.
func (p *Prover) InitializeFromKeys(csPath, pkPath, vkPath string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}

	csFile, err := os.Open(csPath)
	if err != nil {
		return fmt.Errorf("open constraint system: %w", err)
	}
	defer csFile.Close()

	p.cs = groth16.NewCS(ecc.BN254)
	if _, err := p.cs.ReadFrom(csFile); err != nil {
		return fmt.Errorf("read constraint system: %w", err)
	}

	pkFile, err := os.Open(pkPath)
	if err != nil {
		return fmt.Errorf("open proving key: %w", err)
	}
	defer pkFile.Close()

	p.pk = groth16.NewProvingKey(ecc.BN254)
	if _, err := p.pk.ReadFrom(pkFile); err != nil {
		return fmt.Errorf("read proving key: %w", err)
	}

	vkFile, err := os.Open(vkPath)
	if err != nil {
		return fmt.Errorf("open verification key: %w", err)
	}
	defer vkFile.Close()

	p.vk = groth16.NewVerifyingKey(ecc.BN254)
	if _, err := p.vk.ReadFrom(vkFile); err != nil {
		return fmt.Errorf("read verification key: %w", err)
	}

	p.initialized = true
	return nil
}

// SaveKeys persists the constraint system and Groth16 keys to disk.
func (p *Prover) SaveKeys(csPath, pkPath, vkPath string) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if !p.initialized {
		return errors.New("sudokuzkp: prover not initialized")
	}

	csFile, err := os.Create(csPath)
	if err != nil {
		return fmt.Errorf("create constraint system file: %w", err)
	}
	defer csFile.Close()
	if _, err := p.cs.WriteTo(csFile); err != nil {
		return fmt.Errorf("write constraint system: %w", err)
	}

	pkFile, err := os.Create(pkPath)
	if err != nil {
		return fmt.Errorf("create proving key file: %w", err)
	}
	defer pkFile.Close()
	if _, err := p.pk.WriteTo(pkFile); err != nil {
		return fmt.Errorf("write proving key: %w", err)
	}

	vkFile, err := os.Create(vkPath)
	if err != nil {
		return fmt.Errorf("create verification key file: %w", err)
	}
	defer vkFile.Close()
	if _, err := p.vk.WriteTo(vkFile); err != nil {
		return fmt.Errorf("write verification key: %w", err)
	}

	return nil
}

// Prove builds the full witness from a and generates a Groth16 proof.
func (p *Prover) Prove(a Assignment) (*Proof, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if !p.initialized {
		return nil, errors.New("sudokuzkp: prover not initialized")
	}

	assignment, err := BuildAssignment(a)
	if err != nil {
		return nil, fmt.Errorf("build assignment: %w", err)
	}

	witnessData, err := frontend.NewWitness(assignment, ecc.BN254.ScalarField())
	if err != nil {
		return nil, fmt.Errorf("create witness: %w", err)
	}

	proof, err := groth16.Prove(p.cs, p.pk, witnessData)
	if err != nil {
		return nil, fmt.Errorf("generate proof: %w", err)
	}

	zkProof, err := extractProofComponents(proof)
	if err != nil {
		return nil, fmt.Errorf("extract proof components: %w", err)
	}

	publicInputs, err := PublicInputs(p.board, a.Puzzle, a.Ciphertext, a.KeyHash)
	if err != nil {
		return nil, fmt.Errorf("build public inputs: %w", err)
	}
	zkProof.PublicInputs = publicInputs

	return zkProof, nil
}

// Verify checks proof against p's verification key using proof's own
// recorded public inputs.
func (p *Prover) Verify(proof *Proof) (bool, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if !p.initialized {
		return false, errors.New("sudokuzkp: prover not initialized")
	}

	publicWitness, err := publicWitnessFromInts(proof.PublicInputs)
	if err != nil {
		return false, fmt.Errorf("build public witness: %w", err)
	}

	groth16Proof, err := reconstructProof(proof)
	if err != nil {
		return false, fmt.Errorf("reconstruct proof: %w", err)
	}

	if err := groth16.Verify(groth16Proof, p.vk, publicWitness); err != nil {
		return false, nil
	}
	return true, nil
}

// ExportVerificationKey returns the verification key in the coordinate
// layout a Solidity Groth16 verifier contract expects.
func (p *Prover) ExportVerificationKey() (*VerificationKeyExport, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if !p.initialized {
		return nil, errors.New("sudokuzkp: prover not initialized")
	}

	vkBN254, ok := p.vk.(*groth16bn254.VerifyingKey)
	if !ok {
		return nil, errors.New("sudokuzkp: verification key is not BN254 type")
	}

	alpha1X, alpha1Y := new(big.Int), new(big.Int)
	vkBN254.G1.Alpha.X.BigInt(alpha1X)
	vkBN254.G1.Alpha.Y.BigInt(alpha1Y)

	beta2X0, beta2X1, beta2Y0, beta2Y1 := new(big.Int), new(big.Int), new(big.Int), new(big.Int)
	vkBN254.G2.Beta.X.A0.BigInt(beta2X0)
	vkBN254.G2.Beta.X.A1.BigInt(beta2X1)
	vkBN254.G2.Beta.Y.A0.BigInt(beta2Y0)
	vkBN254.G2.Beta.Y.A1.BigInt(beta2Y1)

	gamma2X0, gamma2X1, gamma2Y0, gamma2Y1 := new(big.Int), new(big.Int), new(big.Int), new(big.Int)
	vkBN254.G2.Gamma.X.A0.BigInt(gamma2X0)
	vkBN254.G2.Gamma.X.A1.BigInt(gamma2X1)
	vkBN254.G2.Gamma.Y.A0.BigInt(gamma2Y0)
	vkBN254.G2.Gamma.Y.A1.BigInt(gamma2Y1)

	delta2X0, delta2X1, delta2Y0, delta2Y1 := new(big.Int), new(big.Int), new(big.Int), new(big.Int)
	vkBN254.G2.Delta.X.A0.BigInt(delta2X0)
	vkBN254.G2.Delta.X.A1.BigInt(delta2X1)
	vkBN254.G2.Delta.Y.A0.BigInt(delta2Y0)
	vkBN254.G2.Delta.Y.A1.BigInt(delta2Y1)

	icPoints := make([][2]*big.Int, len(vkBN254.G1.K))
	for i, icPoint := range vkBN254.G1.K {
		icX, icY := new(big.Int), new(big.Int)
		icPoint.X.BigInt(icX)
		icPoint.Y.BigInt(icY)
		icPoints[i] = [2]*big.Int{icX, icY}
	}

	return &VerificationKeyExport{
		Alpha1: [2]*big.Int{alpha1X, alpha1Y},
		Beta2:  [2][2]*big.Int{{beta2X0, beta2X1}, {beta2Y0, beta2Y1}},
		Gamma2: [2][2]*big.Int{{gamma2X0, gamma2X1}, {gamma2Y0, gamma2Y1}},
		Delta2: [2][2]*big.Int{{delta2X0, delta2X1}, {delta2Y0, delta2Y1}},
		IC:     icPoints,
	}, nil
}

// ExportVerificationKeyJSON marshals ExportVerificationKey for contract
// deployment tooling.
func (p *Prover) ExportVerificationKeyJSON() ([]byte, error) {
	export, err := p.ExportVerificationKey()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(export, "", "  ")
}

func extractProofComponents(proof groth16.Proof) (*Proof, error) {
	proofBN254, ok := proof.(*groth16bn254.Proof)
	if !ok {
		return nil, errors.New("sudokuzkp: proof is not BN254 type")
	}

	proofAX, proofAY := new(big.Int), new(big.Int)
	proofBN254.Ar.X.BigInt(proofAX)
	proofBN254.Ar.Y.BigInt(proofAY)

	proofBX0, proofBX1, proofBY0, proofBY1 := new(big.Int), new(big.Int), new(big.Int), new(big.Int)
	proofBN254.Bs.X.A0.BigInt(proofBX0)
	proofBN254.Bs.X.A1.BigInt(proofBX1)
	proofBN254.Bs.Y.A0.BigInt(proofBY0)
	proofBN254.Bs.Y.A1.BigInt(proofBY1)

	proofCX, proofCY := new(big.Int), new(big.Int)
	proofBN254.Krs.X.BigInt(proofCX)
	proofBN254.Krs.Y.BigInt(proofCY)

	return &Proof{
		ProofA: [2]*big.Int{proofAX, proofAY},
		ProofB: [2][2]*big.Int{{proofBX0, proofBX1}, {proofBY0, proofBY1}},
		ProofC: [2]*big.Int{proofCX, proofCY},
	}, nil
}

func reconstructProof(zkProof *Proof) (groth16.Proof, error) {
	proof := &groth16bn254.Proof{}
	proof.Ar.X.SetBigInt(zkProof.ProofA[0])
	proof.Ar.Y.SetBigInt(zkProof.ProofA[1])
	proof.Bs.X.A0.SetBigInt(zkProof.ProofB[0][0])
	proof.Bs.X.A1.SetBigInt(zkProof.ProofB[0][1])
	proof.Bs.Y.A0.SetBigInt(zkProof.ProofB[1][0])
	proof.Bs.Y.A1.SetBigInt(zkProof.ProofB[1][1])
	proof.Krs.X.SetBigInt(zkProof.ProofC[0])
	proof.Krs.Y.SetBigInt(zkProof.ProofC[1])
	return proof, nil
}

// publicWitnessFromInts builds a public-only gnark witness directly from
// already-packed field elements, for verifiers that never construct a
// Circuit assignment.
func publicWitnessFromInts(elements []*big.Int) (witness.Witness, error) {
	vars := make([]frontend.Variable, len(elements))
	for i, e := range elements {
		vars[i] = e
	}
	circuit := &Circuit{PublicFieldElements: vars}
	return frontend.NewWitness(circuit, ecc.BN254.ScalarField(), frontend.PublicOnly())
}
