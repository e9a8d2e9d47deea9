// Copyright 2026 Sudoku ZKP Contributors
//
// Package server exposes the sudoku zero-knowledge prover over HTTP:
// submit a proof for verification, or request a fresh proof for a known
// puzzle/solution/seed key.
package server

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"math/big"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/zksudoku/sudoku-zkp/internal/sudokuzkp"
)

// Handlers serves the proof submission and verification endpoints for one
// compiled board dimension.
type Handlers struct {
	prover *sudokuzkp.Prover
	board  sudokuzkp.Board
	logger *log.Logger
}

// NewHandlers creates handlers backed by an already-initialized prover.
func NewHandlers(prover *sudokuzkp.Prover, board sudokuzkp.Board, logger *log.Logger) *Handlers {
	if logger == nil {
		logger = log.New(log.Writer(), "[sudokuzkp] ", log.LstdFlags)
	}
	return &Handlers{prover: prover, board: board, logger: logger}
}

// verifyRequest is the body of POST /api/v1/proofs/verify.
type verifyRequest struct {
	ProofA       [2]*big.Int    `json:"proofA"`
	ProofB       [2][2]*big.Int `json:"proofB"`
	ProofC       [2]*big.Int    `json:"proofC"`
	PublicInputs []*big.Int     `json:"publicInputs"`
}

// proveRequest is the body of POST /api/v1/proofs/generate.
type proveRequest struct {
	Puzzle     sudokuzkp.Puzzle   `json:"puzzle"`
	Solution   sudokuzkp.Solution `json:"solution"`
	SeedKeyHex string             `json:"seedKeyHex"`
}

// HandleVerifyProof handles POST /api/v1/proofs/verify: it checks a
// submitted Groth16 proof and its public inputs against the compiled
// verification key.
func (h *Handlers) HandleVerifyProof(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "only POST is allowed")
		return
	}

	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "malformed proof payload")
		return
	}

	proof := &sudokuzkp.Proof{
		ProofA:       req.ProofA,
		ProofB:       req.ProofB,
		ProofC:       req.ProofC,
		PublicInputs: req.PublicInputs,
	}

	valid, err := h.prover.Verify(proof)
	if err != nil {
		h.logger.Printf("verify error: %v", err)
		h.writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "verification failed to run")
		return
	}

	requestID := uuid.New()
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"requestId": requestID,
		"valid":     valid,
	})
}

// HandleGenerateProof handles POST /api/v1/proofs/generate: given a
// puzzle, a known solution and a seed key, it derives the ciphertext and
// key hash and returns a fresh proof.
func (h *Handlers) HandleGenerateProof(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "only POST is allowed")
		return
	}

	var req proveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "malformed prove payload")
		return
	}

	seedKey, err := parseSeedKeyHex(req.SeedKeyHex)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "INVALID_SEED_KEY", err.Error())
		return
	}

	ciphertext, err := sudokuzkp.DeriveCiphertext(req.Solution, seedKey, h.board)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "INVALID_BOARD", err.Error())
		return
	}
	keyHash := sudokuzkp.DeriveKeyHash(seedKey)

	proof, err := h.prover.Prove(sudokuzkp.Assignment{
		Board:      h.board,
		Puzzle:     req.Puzzle,
		Solution:   req.Solution,
		SeedKey:    seedKey,
		KeyHash:    keyHash,
		Ciphertext: ciphertext,
	})
	if err != nil {
		h.logger.Printf("prove error: %v", err)
		h.writeError(w, http.StatusBadRequest, "PROVE_FAILED", err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, proof)
}

func parseSeedKeyHex(s string) (sudokuzkp.SeedKey, error) {
	var key sudokuzkp.SeedKey
	s = strings.TrimPrefix(s, "0x")
	decoded, err := hex.DecodeString(s)
	if err != nil {
		return key, fmt.Errorf("seed key is not valid hex: %w", err)
	}
	if len(decoded) != len(key) {
		return key, fmt.Errorf("seed key must be %d bytes, got %d", len(key), len(decoded))
	}
	copy(key[:], decoded)
	return key, nil
}

func (h *Handlers) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Printf("encode response: %v", err)
	}
}

func (h *Handlers) writeError(w http.ResponseWriter, status int, code, message string) {
	h.writeJSON(w, status, map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}

// Mux builds the HTTP routing table for the proof endpoints.
func (h *Handlers) Mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/proofs/verify", h.HandleVerifyProof)
	mux.HandleFunc("/api/v1/proofs/generate", h.HandleGenerateProof)
	return mux
}
