package bch

// defaultPrimPoly holds the default primitive polynomial for each supported
// m (5..15), indexed by m-5. Same table as bch.c's prim_poly_tab.
var defaultPrimPoly = [...]uint32{
	0x25,   // m=5
	0x43,   // m=6
	0x83,   // m=7
	0x11d,  // m=8
	0x211,  // m=9
	0x409,  // m=10
	0x805,  // m=11
	0x1053, // m=12
	0x201b, // m=13
	0x402b, // m=14
	0x8003, // m=15
}

// degree returns the position of the highest set bit of p, i.e. deg(p) when
// p is read as a GF(2) polynomial.
func degree(p uint32) int {
	d := -1
	for p != 0 {
		d++
		p >>= 1
	}
	return d
}

// buildGFTables constructs pow_tab and log_tab for GF(2^m) from the
// primitive polynomial prim (spec.md §4.1). It mirrors the table-building
// loop in fx25_init.go's init_rs_char: start at x=1, repeatedly multiply by
// the field generator (shift left, reduce by prim on overflow), recording
// pow/log pairs, and reject the polynomial if it isn't actually primitive
// (the walk doesn't return to 1 until exactly n steps).
func buildGFTables(m int, prim uint32) (powTab, logTab []uint16, ok bool) {
	if degree(prim) != m {
		return nil, nil, false
	}

	n := (1 << uint(m)) - 1
	powTab = make([]uint16, n+1)
	logTab = make([]uint16, n+1)

	x := uint32(1)
	for i := 0; i < n; i++ {
		powTab[i] = uint16(x)
		logTab[x] = uint16(i)

		x <<= 1
		if x&(1<<uint(m)) != 0 {
			x ^= prim
		}
		if x == 1 && i != n-1 {
			// Cycle closed early: prim is not primitive.
			return nil, nil, false
		}
	}
	if x != 1 {
		return nil, nil, false
	}
	powTab[n] = 1

	return powTab, logTab, true
}

// gfMul multiplies two field elements using the log/pow tables.
func (c *Codec) gfMul(a, b uint16) uint16 {
	if a == 0 || b == 0 {
		return 0
	}
	s := int(c.logTab[a]) + int(c.logTab[b])
	if s >= c.N {
		s -= c.N
	}
	return c.powTab[s]
}

// gfDiv divides field element a by b (b must be non-zero).
func (c *Codec) gfDiv(a, b uint16) uint16 {
	if a == 0 {
		return 0
	}
	s := int(c.logTab[a]) - int(c.logTab[b])
	if s < 0 {
		s += c.N
	}
	return c.powTab[s]
}

// gfExp raises the primitive element to the given exponent, reduced mod n.
func (c *Codec) gfExp(e int) uint16 {
	e %= c.N
	if e < 0 {
		e += c.N
	}
	return c.powTab[e]
}

// gfInv returns the multiplicative inverse of a (a must be non-zero).
func (c *Codec) gfInv(a uint16) uint16 {
	return c.powTab[c.N-int(c.logTab[a])]
}

// gfSqrt returns the unique square root of a in GF(2^m) (squaring is linear
// in characteristic 2, so every element has exactly one square root).
func (c *Codec) gfSqrt(a uint16) uint16 {
	if a == 0 {
		return 0
	}
	l := int(c.logTab[a])
	if l&1 != 0 {
		l += c.N
	}
	return c.powTab[l/2]
}

// trace computes Tr(x) = Σ x^(2^i) for i=0..m-1, the GF(2^m) -> GF(2) trace
// map used by the degree-2 solver and the Berlekamp-Trace factoriser.
func (c *Codec) trace(x uint16) int {
	if x == 0 {
		return 0
	}
	sum := uint16(0)
	v := x
	for i := 0; i < c.M; i++ {
		sum ^= v
		v = c.gfMul(v, v)
	}
	if sum != 0 {
		return 1
	}
	return 0
}

// buildXiTable computes the basis xi_tab[0..m] used by the degree-2 BTZ
// solver: for i in 0..m-1, xiTab[i+1] satisfies xi^2 + xi = alpha^i +
// Tr(alpha^i)*alpha^k for a fixed k such that alpha^k has trace 1, and
// xiTab[0] is 0 (spec.md §4.6, degree 2 case).
func (c *Codec) buildXiTable() {
	// Find k with Tr(alpha^k) == 1; such a k always exists since the trace
	// map is onto GF(2) and non-constant.
	k := 0
	for i := 0; i < c.M; i++ {
		if c.trace(c.gfExp(i)) == 1 {
			k = i
			break
		}
	}
	alphaK := c.gfExp(k)

	c.xiTab = make([]uint16, c.M+1)
	c.xiTab[0] = 0
	for i := 1; i <= c.M; i++ {
		u := c.gfExp(i - 1)
		if c.trace(u) == 1 {
			u ^= alphaK
		}
		// Solve z^2 + z = u by brute force over the field; z^2+z is 2-to-1
		// onto the trace-0 subspace, so exactly two roots exist and either
		// serves as a basis element.
		found := uint16(0)
		if c.gfMul(0, 0)^0 == u {
			found = 0
		} else {
			for e := 0; e < c.N; e++ {
				el := c.powTab[e]
				if c.gfMul(el, el)^el == u {
					found = el
					break
				}
			}
		}
		c.xiTab[i] = found
	}
}
