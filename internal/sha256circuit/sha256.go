// Copyright 2026 Sudoku ZKP Contributors
//
// Package sha256circuit implements the SHA-256 compression function as
// R1CS constraints over a single 512-bit block. It is hand-rolled against
// frontend.API rather than pulled from a packaged hash gadget: rotations
// are free wire re-indexing, and boolean XOR is the field-generic identity
// a⊕b = a+b-2ab rather than the GF(2)-only a⊕b = a+b usable only when a
// circuit's whole field is GF(2), since this circuit runs over the BN254
// scalar field.
package sha256circuit

import (
	"github.com/consensys/gnark/frontend"
)

// BlockBits is the size of a single SHA-256 block.
const BlockBits = 512

// DigestBits is the size of a SHA-256 digest.
const DigestBits = 256

// word is a 32-bit value held as 32 boolean wires, LSB-first: word[i] is
// the bit of weight 2^i. This is the representation arithmetic (addition
// mod 2^32, via field packing) and bitwise ops (XOR/AND/NOT, rotation,
// via per-bit re-indexing) both want, so no conversion happens mid-round.
type word [32]frontend.Variable

var iv = [8]uint32{
	0x6a09e667, 0xbb67ae85, 0x3c6ef372, 0xa54ff53a,
	0x510e527f, 0x9b05688c, 0x1f83d9ab, 0x5be0cd19,
}

var k = [64]uint32{
	0x428a2f98, 0x71374491, 0xb5c0fbcf, 0xe9b5dba5,
	0x3956c25b, 0x59f111f1, 0x923f82a4, 0xab1c5ed5,
	0xd807aa98, 0x12835b01, 0x243185be, 0x550c7dc3,
	0x72be5d74, 0x80deb1fe, 0x9bdc06a7, 0xc19bf174,
	0xe49b69c1, 0xefbe4786, 0x0fc19dc6, 0x240ca1cc,
	0x2de92c6f, 0x4a7484aa, 0x5cb0a9dc, 0x76f988da,
	0x983e5152, 0xa831c66d, 0xb00327c8, 0xbf597fc7,
	0xc6e00bf3, 0xd5a79147, 0x06ca6351, 0x14292967,
	0x27b70a85, 0x2e1b2138, 0x4d2c6dfc, 0x53380d13,
	0x650a7354, 0x766a0abb, 0x81c2c92e, 0x92722c85,
	0xa2bfe8a1, 0xa81a664b, 0xc24b8b70, 0xc76c51a3,
	0xd192e819, 0xd6990624, 0xf40e3585, 0x106aa070,
	0x19a4c116, 0x1e376c08, 0x2748774c, 0x34b0bcb5,
	0x391c0cb3, 0x4ed8aa4a, 0x5b9cca4f, 0x682e6ff3,
	0x748f82ee, 0x78a5636f, 0x84c87814, 0x8cc70208,
	0x90befffa, 0xa4506ceb, 0xbef9a3f7, 0xc67178f2,
}

func constWord(v uint32) word {
	var w word
	for i := 0; i < 32; i++ {
		w[i] = int((v >> uint(i)) & 1)
	}
	return w
}

// wordFromMSBBits reads 32 consecutive bits, MSB-first (as they appear on
// the wire), into the internal LSB-first word representation.
func wordFromMSBBits(bits []frontend.Variable) word {
	var w word
	for i := 0; i < 32; i++ {
		w[i] = bits[31-i]
	}
	return w
}

// msbBitsFromWord is the inverse of wordFromMSBBits.
func msbBitsFromWord(w word) []frontend.Variable {
	out := make([]frontend.Variable, 32)
	for i := 0; i < 32; i++ {
		out[31-i] = w[i]
	}
	return out
}

func xorBit(api frontend.API, a, b frontend.Variable) frontend.Variable {
	// a⊕b = a+b-2ab, the general-field XOR identity.
	return api.Sub(api.Add(a, b), api.Mul(2, a, b))
}

func xorWord(api frontend.API, a, b word) word {
	var out word
	for i := range out {
		out[i] = xorBit(api, a[i], b[i])
	}
	return out
}

func xorWord3(api frontend.API, a, b, c word) word {
	return xorWord(api, xorWord(api, a, b), c)
}

func andWord(api frontend.API, a, b word) word {
	var out word
	for i := range out {
		out[i] = api.Mul(a[i], b[i])
	}
	return out
}

func notWord(api frontend.API, a word) word {
	var out word
	for i := range out {
		out[i] = api.Sub(1, a[i])
	}
	return out
}

// rotr rotates w right by n, i.e. the bit of weight 2^i in the result came
// from the bit of weight 2^((i+n) mod 32) in w.
func rotr(w word, n int) word {
	var out word
	for i := range out {
		out[i] = w[(i+n)%32]
	}
	return out
}

// shr shifts w right by n, filling vacated high bits with the constant 0.
func shr(w word, n int) word {
	var out word
	for i := range out {
		if i+n < 32 {
			out[i] = w[i+n]
		} else {
			out[i] = 0
		}
	}
	return out
}

// addMod32 adds 2 to 5 words modulo 2^32 by packing each into a field
// element (cheap: one linear combination each), summing in the field, and
// re-decomposing the low 32 bits of the sum — the standard way to get a
// mod-2^32 adder without a per-bit ripple-carry circuit.
func addMod32(api frontend.API, words ...word) word {
	sum := frontend.Variable(0)
	for _, w := range words {
		sum = api.Add(sum, api.FromBinary(w[:]...))
	}
	// len(words) <= 5, so the sum fits comfortably in 35 bits.
	bits := api.ToBinary(sum, 35)
	var out word
	copy(out[:], bits[:32])
	return out
}

func smallSigma0(api frontend.API, x word) word {
	return xorWord3(api, rotr(x, 7), rotr(x, 18), shr(x, 3))
}

func smallSigma1(api frontend.API, x word) word {
	return xorWord3(api, rotr(x, 17), rotr(x, 19), shr(x, 10))
}

func bigSigma0(api frontend.API, x word) word {
	return xorWord3(api, rotr(x, 2), rotr(x, 13), rotr(x, 22))
}

func bigSigma1(api frontend.API, x word) word {
	return xorWord3(api, rotr(x, 6), rotr(x, 11), rotr(x, 25))
}

func choose(api frontend.API, e, f, g word) word {
	return xorWord(api, andWord(api, e, f), andWord(api, notWord(api, e), g))
}

func majority(api frontend.API, a, b, c word) word {
	return xorWord3(api, andWord(api, a, b), andWord(api, a, c), andWord(api, b, c))
}

// Compress runs the SHA-256 compression function over a single 512-bit
// block (bits, MSB-first) against the fixed SHA-256 IV, returning the
// 256-bit digest, MSB-first. The caller enforces bit-ness of the inputs
// before calling Compress; every bit this function itself produces is a
// deterministic function (XOR/AND/NOT/rotate/mod-32-add) of already-boolean
// wires, so it is boolean by construction and needs no further assertion.
func Compress(api frontend.API, bits []frontend.Variable) []frontend.Variable {
	if len(bits) != BlockBits {
		panic("sha256circuit: block must be exactly 512 bits")
	}

	var w [64]word
	for i := 0; i < 16; i++ {
		w[i] = wordFromMSBBits(bits[i*32 : (i+1)*32])
	}
	for i := 16; i < 64; i++ {
		w[i] = addMod32(api,
			smallSigma1(api, w[i-2]), w[i-7],
			smallSigma0(api, w[i-15]), w[i-16],
		)
	}

	a, b, c, d := constWord(iv[0]), constWord(iv[1]), constWord(iv[2]), constWord(iv[3])
	e, f, g, h := constWord(iv[4]), constWord(iv[5]), constWord(iv[6]), constWord(iv[7])

	for t := 0; t < 64; t++ {
		temp1 := addMod32(api, h, bigSigma1(api, e), choose(api, e, f, g), constWord(k[t]), w[t])
		temp2 := addMod32(api, bigSigma0(api, a), majority(api, a, b, c))

		h = g
		g = f
		f = e
		e = addMod32(api, d, temp1)
		d = c
		c = b
		b = a
		a = addMod32(api, temp1, temp2)
	}

	h0 := addMod32(api, constWord(iv[0]), a)
	h1 := addMod32(api, constWord(iv[1]), b)
	h2 := addMod32(api, constWord(iv[2]), c)
	h3 := addMod32(api, constWord(iv[3]), d)
	h4 := addMod32(api, constWord(iv[4]), e)
	h5 := addMod32(api, constWord(iv[5]), f)
	h6 := addMod32(api, constWord(iv[6]), g)
	h7 := addMod32(api, constWord(iv[7]), h)

	out := make([]frontend.Variable, 0, DigestBits)
	for _, hw := range []word{h0, h1, h2, h3, h4, h5, h6, h7} {
		out = append(out, msbBitsFromWord(hw)...)
	}
	return out
}
