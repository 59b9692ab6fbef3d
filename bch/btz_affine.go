package bch

// Closed-form root finders for Λ(X) of degree 2, 3 and 4 (spec.md §4.6),
// plus the GF(2) linear system solver find_affine4_roots reduces to.

// findDeg2Roots solves a*X^2 + b*X + c = 0. Substituting X = (b/a)*z turns
// this into z^2 + z = u with u = a*c/b^2, which has a solution (two of
// them, z and z+1) iff Tr(u) == 0. z is assembled from xiTab by linearity:
// z^2+z is additive in characteristic 2, and xiTab[i+1] solves
// xi^2+xi = alpha^i + Tr(alpha^i)*alphaK, so summing xiTab[i+1] over the
// set bits of u (u's value IS its coordinate vector in the alpha^0..
// alpha^(m-1) basis) sums those correction terms an even number of times
// exactly when Tr(u) == 0, cancelling them and leaving z^2+z == u.
func (c *Codec) findDeg2Roots(a, b, cc uint16) ([]uint16, bool) {
	if a == 0 || b == 0 {
		return nil, false
	}
	u := c.gfMul(c.gfMul(a, cc), c.gfInv(c.gfMul(b, b)))
	if c.trace(u) != 0 {
		return nil, false
	}

	var z uint16
	for i := 0; i < c.M; i++ {
		if u&(1<<uint(i)) != 0 {
			z ^= c.xiTab[i+1]
		}
	}
	if c.gfMul(z, z)^z != u {
		return nil, false
	}

	ba := c.gfDiv(b, a)
	x0 := c.gfMul(ba, z)
	x1 := c.gfMul(ba, z^1)
	return []uint16{x0, x1}, true
}

// findDeg3Roots solves lam[3]*X^3 + lam[2]*X^2 + lam[1]*X + lam[0] = 0 by
// lifting it to a degree-4 affine polynomial: multiplying the monic cubic
// p(X) = X^3 + c2*X^2 + c1*X + c0 by (X + c2) cancels the X^3 term of the
// product (the two X^3 contributions are c2*X^3 from each factor, which
// XOR to zero), leaving a degree-4 polynomial with no cubic term whose
// roots are the cubic's three roots plus the extra root c2 introduced by
// the multiplication.
func (c *Codec) findDeg3Roots(lam []uint16) ([]uint16, bool) {
	if lam[3] == 0 {
		return nil, false
	}
	inv3 := c.gfInv(lam[3])
	c0 := c.gfMul(lam[0], inv3)
	c1 := c.gfMul(lam[1], inv3)
	c2 := c.gfMul(lam[2], inv3)

	a2 := c2
	quart := []uint16{
		c.gfMul(c0, a2),                  // constant term
		c0 ^ c.gfMul(c1, a2),              // X^1
		c1 ^ c.gfMul(c2, a2),              // X^2
		0,                                 // X^3 (cancels by construction)
		1,                                 // X^4
	}

	roots, ok := c.findDeg4Roots(quart)
	if !ok {
		return nil, false
	}

	out := make([]uint16, 0, 3)
	dropped := false
	for _, r := range roots {
		if !dropped && r == a2 {
			dropped = true
			continue
		}
		out = append(out, r)
	}
	if !dropped || len(out) != 3 {
		return nil, false
	}
	return out, true
}

// findDeg4Roots solves lam[4]*X^4 + lam[3]*X^3 + lam[2]*X^2 + lam[1]*X +
// lam[0] = 0 (lam already normalized so lam[4] == 1).
//
// When lam[3] == 0 the polynomial is already of the affine (linearized plus
// constant) form X^4 + a*X^2 + b*X + c and find_affine4_roots applies
// directly.
//
// Otherwise, shift X = Z + e with e chosen so the resulting Z^1 coefficient
// vanishes (e^2 = lam1/lam3 cancels it — expand (Z+e)^4+lam3(Z+e)^3+
// lam2(Z+e)^2+lam1(Z+e)+lam0 and the Z^1 coefficient comes out to
// lam3*e^2+lam1), giving Z^4+lam3*Z^3+p2*Z^2+0*Z+d' with d' = P(e) (the
// original polynomial evaluated at e). If d' == 0 then e is itself a root:
// peel it off and solve the remaining cubic. Otherwise take the reciprocal
// Y = 1/Z: that turns "no Z^1 term" into "no Y^3 term", landing back in the
// affine case solvable by find_affine4_roots, and X = e + 1/Y recovers the
// original roots.
func (c *Codec) findDeg4Roots(lam []uint16) ([]uint16, bool) {
	c0, c1, c2, c3 := lam[0], lam[1], lam[2], lam[3]

	if c3 == 0 {
		roots, ok := c.findAffine4Roots(c2, c1, c0)
		if !ok {
			return nil, false
		}
		return roots, true
	}

	e := c.gfSqrt(c.gfDiv(c1, c3))
	p := gfPoly{deg: 4, c: []uint16{c0, c1, c2, c3, 1}}
	dPrime := c.evalAt(p, e)

	if dPrime == 0 {
		// P(X) = (X+e)(X^3 + q2*X^2 + q1*X + q0).
		q2 := c3 ^ e
		q1 := c.gfMul(e, e) ^ c.gfMul(c3, e) ^ c2
		cubic := []uint16{
			c1 ^ c.gfMul(e, q1),
			q1,
			q2,
		}
		roots, ok := c.findCubicGivenMonic(cubic)
		if !ok {
			return nil, false
		}
		out := append(roots, e)
		return out, true
	}

	p2 := c.gfMul(c3, e) ^ c2
	invD := c.gfInv(dPrime)
	aPrime := c.gfMul(p2, invD)
	bPrime := c.gfMul(c3, invD)
	cPrime := invD

	yRoots, ok := c.findAffine4Roots(aPrime, bPrime, cPrime)
	if !ok {
		return nil, false
	}

	out := make([]uint16, 0, 4)
	for _, y := range yRoots {
		if y == 0 {
			return nil, false
		}
		z := c.gfInv(y)
		out = append(out, z^e)
	}
	return out, true
}

// findCubicGivenMonic solves a monic cubic X^3 + c2*X^2 + c1*X + c0 = 0,
// reusing the same (X+c2) lift findDeg3Roots uses.
func (c *Codec) findCubicGivenMonic(m []uint16) ([]uint16, bool) {
	return c.findDeg3Roots([]uint16{m[0], m[1], m[2], 1})
}

// findAffine4Roots solves X^4 + a*X^2 + b*X + c = 0. L(X) = X^4+a*X^2+b*X
// is GF(2)-linear (X^4 is the double Frobenius X->X->X^2->X^4, a*X^2 is a
// scaled Frobenius, b*X is a scalar multiple, and all three distribute over
// addition in characteristic 2), so solving L(X) = c is a genuine linear
// system over GF(2)^m: express the unknown X as Σ x_i*alpha^i, and
// L(X) = Σ x_i*L(alpha^i) must equal c.
func (c *Codec) findAffine4Roots(a, b, cc uint16) ([]uint16, bool) {
	m := c.M
	cols := make([]uint16, m)
	for i := 0; i < m; i++ {
		ai := c.gfExp(i)
		term := c.gfExp(4 * i)
		if a != 0 {
			term ^= c.gfMul(a, c.gfMul(ai, ai))
		}
		if b != 0 {
			term ^= c.gfMul(b, ai)
		}
		cols[i] = term
	}

	sols, ok := c.solveLinearSystem(cols, cc, 4)
	if !ok {
		return nil, false
	}
	return sols, true
}

// solveLinearSystem solves, for an unknown GF(2)^m vector x (packed as a
// field element, bit i of x is the coefficient of alpha^i), the system
// Σ_i x_i*cols[i] = rhs. Solutions are found by Gaussian elimination over
// GF(2) on the row-major view of cols (row r, column i is bit r of
// cols[i]), then enumerating the free (non-pivot) variables. Returns
// ok=false unless the system has exactly nsol solutions.
func (c *Codec) solveLinearSystem(cols []uint16, rhs uint16, nsol int) ([]uint16, bool) {
	m := c.M
	rows := make([]uint32, m)
	for r := 0; r < m; r++ {
		var row uint32
		for i := 0; i < m; i++ {
			if cols[i]&(1<<uint(r)) != 0 {
				row |= 1 << uint(i)
			}
		}
		if rhs&(1<<uint(r)) != 0 {
			row |= 1 << uint(m)
		}
		rows[r] = row
	}

	pivotForCol := make([]int, m)
	for i := range pivotForCol {
		pivotForCol[i] = -1
	}

	row := 0
	for col := 0; col < m && row < m; col++ {
		sel := -1
		for r := row; r < m; r++ {
			if rows[r]&(1<<uint(col)) != 0 {
				sel = r
				break
			}
		}
		if sel == -1 {
			continue
		}
		rows[row], rows[sel] = rows[sel], rows[row]
		for r := 0; r < m; r++ {
			if r != row && rows[r]&(1<<uint(col)) != 0 {
				rows[r] ^= rows[row]
			}
		}
		pivotForCol[col] = row
		row++
	}

	for r := row; r < m; r++ {
		if rows[r]&(1<<uint(m)) != 0 {
			return nil, false
		}
	}

	var freeCols []int
	for col := 0; col < m; col++ {
		if pivotForCol[col] == -1 {
			freeCols = append(freeCols, col)
		}
	}
	if len(freeCols) >= 31 || 1<<uint(len(freeCols)) != nsol {
		return nil, false
	}

	sols := make([]uint16, 0, nsol)
	for mask := 0; mask < nsol; mask++ {
		var x uint32
		for fi, col := range freeCols {
			if mask&(1<<uint(fi)) != 0 {
				x |= 1 << uint(col)
			}
		}
		for col := 0; col < m; col++ {
			r := pivotForCol[col]
			if r == -1 {
				continue
			}
			bit := (rows[r] >> uint(m)) & 1
			for _, fc := range freeCols {
				if rows[r]&(1<<uint(fc)) != 0 {
					bit ^= (x >> uint(fc)) & 1
				}
			}
			if bit != 0 {
				x |= 1 << uint(col)
			}
		}
		sols = append(sols, uint16(x))
	}
	return sols, true
}
