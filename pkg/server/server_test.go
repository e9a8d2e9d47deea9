// Copyright 2026 Sudoku ZKP Contributors
//
// Unit tests for the proof submission/verification HTTP handlers.
package server

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/zksudoku/sudoku-zkp/internal/sudokuzkp"
)

func testBoard(t *testing.T) sudokuzkp.Board {
	t.Helper()
	board, err := sudokuzkp.NewBoard(2)
	if err != nil {
		t.Fatalf("NewBoard: %v", err)
	}
	return board
}

// ============================================================================
// Handler construction
// ============================================================================

func TestNewHandlersDefaultsLogger(t *testing.T) {
	h := NewHandlers(sudokuzkp.NewProver(testBoard(t)), testBoard(t), nil)
	if h.logger == nil {
		t.Fatal("expected a default logger to be installed")
	}
}

func TestNewHandlersKeepsCustomLogger(t *testing.T) {
	custom := log.New(log.Writer(), "[test] ", log.LstdFlags)
	h := NewHandlers(sudokuzkp.NewProver(testBoard(t)), testBoard(t), custom)
	if h.logger != custom {
		t.Fatal("expected the custom logger to be preserved")
	}
}

// ============================================================================
// Method validation (no prover initialization required)
// ============================================================================

func TestHandleVerifyProofMethodNotAllowed(t *testing.T) {
	h := NewHandlers(sudokuzkp.NewProver(testBoard(t)), testBoard(t), nil)

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		req := httptest.NewRequest(method, "/api/v1/proofs/verify", nil)
		rr := httptest.NewRecorder()

		h.HandleVerifyProof(rr, req)

		if rr.Code != http.StatusMethodNotAllowed {
			t.Errorf("%s: status = %d, want %d", method, rr.Code, http.StatusMethodNotAllowed)
		}
		assertErrorCode(t, rr.Body.Bytes(), "METHOD_NOT_ALLOWED")
	}
}

func TestHandleGenerateProofMethodNotAllowed(t *testing.T) {
	h := NewHandlers(sudokuzkp.NewProver(testBoard(t)), testBoard(t), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/proofs/generate", nil)
	rr := httptest.NewRecorder()

	h.HandleGenerateProof(rr, req)

	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusMethodNotAllowed)
	}
	assertErrorCode(t, rr.Body.Bytes(), "METHOD_NOT_ALLOWED")
}

// ============================================================================
// Request validation
// ============================================================================

func TestHandleVerifyProofRejectsMalformedBody(t *testing.T) {
	h := NewHandlers(sudokuzkp.NewProver(testBoard(t)), testBoard(t), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/proofs/verify", bytes.NewBufferString("not json"))
	rr := httptest.NewRecorder()

	h.HandleVerifyProof(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
	assertErrorCode(t, rr.Body.Bytes(), "INVALID_REQUEST")
}

func TestHandleGenerateProofRejectsBadSeedKey(t *testing.T) {
	h := NewHandlers(sudokuzkp.NewProver(testBoard(t)), testBoard(t), nil)

	body, err := json.Marshal(proveRequest{
		Puzzle:     sudokuzkp.Puzzle{{1, 0}, {0, 1}},
		Solution:   sudokuzkp.Solution{{1, 2}, {2, 1}},
		SeedKeyHex: "not-hex",
	})
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/proofs/generate", bytes.NewBuffer(body))
	rr := httptest.NewRecorder()

	h.HandleGenerateProof(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
	assertErrorCode(t, rr.Body.Bytes(), "INVALID_SEED_KEY")
}

// ============================================================================
// Seed key hex parsing
// ============================================================================

func TestParseSeedKeyHex(t *testing.T) {
	key, err := parseSeedKeyHex("0x" + repeatHex("ab", 32))
	if err != nil {
		t.Fatalf("parseSeedKeyHex: %v", err)
	}
	for _, b := range key {
		if b != 0xab {
			t.Fatalf("unexpected byte %x in decoded seed key", b)
		}
	}
}

func TestParseSeedKeyHexRejectsWrongLength(t *testing.T) {
	if _, err := parseSeedKeyHex("abcd"); err == nil {
		t.Fatal("expected an error for a seed key shorter than 32 bytes")
	}
}

func TestParseSeedKeyHexRejectsNonHex(t *testing.T) {
	if _, err := parseSeedKeyHex(repeatHex("zz", 32)); err == nil {
		t.Fatal("expected an error for non-hex characters")
	}
}

// ============================================================================
// Routing
// ============================================================================

func TestMuxRoutesBothEndpoints(t *testing.T) {
	h := NewHandlers(sudokuzkp.NewProver(testBoard(t)), testBoard(t), nil)
	mux := h.Mux()

	for _, path := range []string{"/api/v1/proofs/verify", "/api/v1/proofs/generate"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, req)
		if rr.Code != http.StatusMethodNotAllowed {
			t.Errorf("%s: status = %d, want %d (unrouted paths 404 instead)", path, rr.Code, http.StatusMethodNotAllowed)
		}
	}
}

func assertErrorCode(t *testing.T, body []byte, want string) {
	t.Helper()
	var resp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if resp.Error.Code != want {
		t.Fatalf("error code = %q, want %q", resp.Error.Code, want)
	}
}

func repeatHex(pair string, n int) string {
	out := make([]byte, 0, len(pair)*n)
	for i := 0; i < n; i++ {
		out = append(out, pair...)
	}
	return string(out)
}
