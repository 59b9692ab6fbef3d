package bch

// computeErrorLocatorPolynomial runs the binary (characteristic-2)
// simplification of Berlekamp-Massey described in spec.md §4.5: it
// maintains the current locator elp, the previous locator pelp, the
// previous discrepancy pd and the step index pp at which pelp was last
// promoted, updating elp by an X^(2i-pp)-shifted multiple of pelp whenever
// the discrepancy is non-zero.
//
// Returns deg(Λ) if it settled at or below t, or -1 if more than t errors
// occurred (the degree overflowed during the iteration).
func (c *Codec) computeErrorLocatorPolynomial() int {
	t := c.T

	elp := &c.elp
	pelp := &c.poly2t[0]
	elpCopy := &c.poly2t[1]

	for i := range elp.c {
		elp.c[i] = 0
	}
	elp.deg = 0
	elp.c[0] = 1

	for i := range pelp.c {
		pelp.c[i] = 0
	}
	pelp.deg = 0
	pelp.c[0] = 1

	d := c.syn[1]
	pd := uint16(1)
	pp := -1

	for i := 0; i < t && elp.deg <= t; i++ {
		if d != 0 {
			elpCopy.set(*elp)

			k := 2*i - pp
			tmp := int(c.logTab[d]) + c.N - int(c.logTab[pd])
			for j := 0; j <= pelp.deg; j++ {
				if pelp.c[j] == 0 {
					continue
				}
				pos := j + k
				if pos < 0 || pos >= len(elp.c) {
					continue
				}
				l := int(c.logTab[pelp.c[j]])
				elp.c[pos] ^= c.gfExp(tmp + l)
			}

			newDeg := 0
			for idx := len(elp.c) - 1; idx >= 0; idx-- {
				if elp.c[idx] != 0 {
					newDeg = idx
					break
				}
			}
			elp.deg = newDeg

			if elp.deg > elpCopy.deg {
				pelp.set(*elpCopy)
				pd = d
				pp = 2 * i
			}
		}

		if i < t-1 {
			next := c.syn[2*i+3]
			for j := 1; j <= elp.deg && j < len(elp.c); j++ {
				next ^= c.gfMul(elp.c[j], c.syn[2*i+3-j])
			}
			d = next
		}
	}

	if elp.deg > t {
		return -1
	}
	return elp.deg
}
