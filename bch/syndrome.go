package bch

import "math/bits"

// computeSyndromes evaluates the received ECC polynomial r(X) — held as
// ECCBits bits across c.eccWords words, MSB-first, tail-masked — at
// alpha^1, alpha^3, ..., alpha^(2t-1) (spec.md §4.4). Those are exactly the
// odd cyclotomic-coset leaders computeGeneratorPolynomial marks, so they're
// the syndromes that can be non-zero for a codeword divisible by g(X). The
// even syndromes S_2, S_4, ..., S_2t are then filled in using the
// characteristic-2 Frobenius identity S_(2k) = (S_k)^2, which holds because
// r(X) has GF(2) coefficients: r(x)^2 = r(x^2) in any field of
// characteristic 2.
//
// c.syn is indexed 1..2t (index 0 unused) to match the S_j = r(alpha^j)
// naming used throughout spec.md §4.4-§4.6.
func (c *Codec) computeSyndromes(r []uint32) {
	for i := 1; i <= 2*c.T; i++ {
		c.syn[i] = 0
	}

	for j := 1; j <= 2*c.T-1; j += 2 {
		c.syn[j] = c.evalECCPoly(r, j)
	}
	for k := 1; k <= c.T; k++ {
		if 2*k <= 2*c.T {
			c.syn[2*k] = c.gfMul(c.syn[k], c.syn[k])
		}
	}
}

// evalECCPoly evaluates the polynomial represented by r (ECCBits
// coefficients, MSB-first across eccWords words) at alpha^j, by walking the
// set bits of each word exactly as spec.md §4.4 describes: repeatedly take
// the position of the most-significant remaining set bit and clear it.
func (c *Codec) evalECCPoly(r []uint32, j int) uint16 {
	var sum uint16
	for w := 0; w < c.eccWords; w++ {
		poly := r[w]
		// Global bit index (from the MSB of the whole register) of bit
		// `bit` within word w.
		base := w * 32
		for poly != 0 {
			bit := 31 - bits.LeadingZeros32(poly)
			poly ^= 1 << uint(bit)

			globalBit := base + (31 - bit)
			if globalBit >= c.ECCBits {
				continue
			}
			exponent := c.ECCBits - 1 - globalBit
			sum ^= c.gfExp(j * exponent)
		}
	}
	return sum
}
