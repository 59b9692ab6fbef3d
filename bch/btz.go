package bch

// This file implements the BTZ root finder of spec.md §4.6: closed-form
// solvers for Λ(X) of degree 1-4, falling back to the Berlekamp-Trace
// Algorithm (BTA) for degree > 4. BTA repeatedly computes a trace
// polynomial T_k(X) = Tr(alpha^k X) mod f and splits f via gcd(f, T_k)
// whenever that gcd is a proper, non-trivial factor, recursing on both
// halves with k+1. Recursion depth is bounded by m (spec.md §9: "BTA
// halves, at best, degree per level and bounds recursion depth by m<=15").
//
// Each returned root is reported as log(1/root) mod n, not log(root): the
// root value r solves Λ(r)=0, but the position the decoder wants is the
// discrete log of r's multiplicative inverse (for degree 1, c1*X + c0 has
// the root r = c0/c1, and the position is log(c1) - log(c0) = log(1/r)
// mod n). rootToPos applies that inversion uniformly to every degree's
// output.

// rootToPos converts a field element that is a root of Λ(X) into the
// spec.md §4.6 "log(1/r)" position value: log(r) negated modulo n, i.e.
// the log of r's multiplicative inverse rather than of r itself.
func (c *Codec) rootToPos(r uint16) int {
	if r == 0 {
		return 0
	}
	return (c.N - int(c.logTab[r])) % c.N
}

// findRoots returns the roots of lam (a polynomial with 1 <= deg <= t) as
// bit positions, or ok=false if the roots found don't account for the full
// degree (more than t errors occurred; spec.md §4.7 turns this into
// ErrBadMessage).
func (c *Codec) findRoots(lam gfPoly) ([]int, bool) {
	if lam.deg == 0 {
		return nil, false
	}

	monic := newPoly(lam.deg)
	monic.set(lam)
	if monic.c[monic.deg] != 1 {
		inv := c.gfInv(monic.c[monic.deg])
		for i := 0; i <= monic.deg; i++ {
			monic.c[i] = c.gfMul(monic.c[i], inv)
		}
	}

	var out []int
	if !c.btaFindRoots(monic, 1, 0, &out) {
		return nil, false
	}
	if len(out) != lam.deg {
		return nil, false
	}
	return out, true
}

// btaFindRoots dispatches on deg(f): degree 1-4 use the closed-form
// solvers below, degree > 4 splits via BTA trying k = k0..m. depth is only
// used to bound runaway recursion as a defensive backstop (real termination
// is k > m in the BTA loop, per spec.md §4.6).
func (c *Codec) btaFindRoots(f gfPoly, k0, depth int, out *[]int) bool {
	if depth > c.M+4 {
		return false
	}

	switch f.deg {
	case 1:
		pos := c.rootToPos(c.gfDiv(f.c[0], f.c[1]))
		*out = append(*out, pos)
		return true
	case 2:
		roots, ok := c.findDeg2Roots(f.c[2], f.c[1], f.c[0])
		if !ok {
			return false
		}
		for _, r := range roots {
			*out = append(*out, c.rootToPos(r))
		}
		return true
	case 3:
		roots, ok := c.findDeg3Roots(f.c[:4])
		if !ok {
			return false
		}
		for _, r := range roots {
			*out = append(*out, c.rootToPos(r))
		}
		return true
	case 4:
		roots, ok := c.findDeg4Roots(f.c[:5])
		if !ok {
			return false
		}
		for _, r := range roots {
			*out = append(*out, c.rootToPos(r))
		}
		return true
	}

	for k := k0; k <= c.M; k++ {
		tk := c.computeTrace(f, k)
		g := c.polyGCD(f, tk)
		if g.deg > 0 && g.deg < f.deg {
			q := c.polyDivExact(f, g)
			return c.btaFindRoots(g, k+1, depth+1, out) && c.btaFindRoots(q, k+1, depth+1, out)
		}
	}
	return false
}

// computeTrace evaluates T_k(X) = Tr(alpha^k * X) mod f by repeated
// squaring: u_0 = alpha^k*X mod f, u_i = u_(i-1)^2 mod f, and
// T_k = sum_{i=0}^{m-1} u_i.
func (c *Codec) computeTrace(f gfPoly, k int) gfPoly {
	cap1 := f.deg
	if cap1 < 1 {
		cap1 = 1
	}

	u := newPoly(cap1)
	u.deg = 1
	u.c[1] = c.gfExp(k)
	if u.deg >= f.deg {
		c.polyMod(&u, f)
	}

	t := newPoly(cap1)
	t.set(u)

	cur := newPoly(cap1)
	cur.set(u)
	sq := newPoly(2 * cap1)

	for i := 1; i < c.M; i++ {
		c.polyMul(&sq, cur, cur)
		c.polyMod(&sq, f)
		cur.set(sq)
		c.polyAdd(&t, t, cur)
	}
	return t
}

// polyAdd computes dst = a + b (coefficient-wise XOR). dst must have
// capacity for max(a.deg, b.deg).
func (c *Codec) polyAdd(dst *gfPoly, a, b gfPoly) {
	maxDeg := a.deg
	if b.deg > maxDeg {
		maxDeg = b.deg
	}
	for i := 0; i <= maxDeg; i++ {
		var av, bv uint16
		if i <= a.deg {
			av = a.c[i]
		}
		if i <= b.deg {
			bv = b.c[i]
		}
		dst.c[i] = av ^ bv
	}
	dst.deg = maxDeg
	dst.trim()
}

// polyMul computes the full (unreduced) product dst = a*b. dst must have
// capacity for a.deg+b.deg.
func (c *Codec) polyMul(dst *gfPoly, a, b gfPoly) {
	for i := range dst.c {
		dst.c[i] = 0
	}
	for i := 0; i <= a.deg; i++ {
		if a.c[i] == 0 {
			continue
		}
		for j := 0; j <= b.deg; j++ {
			if b.c[j] == 0 {
				continue
			}
			dst.c[i+j] ^= c.gfMul(a.c[i], b.c[j])
		}
	}
	dst.deg = a.deg + b.deg
	dst.trim()
}

// polyMod reduces a modulo f in place (long division, high degree to low).
func (c *Codec) polyMod(a *gfPoly, f gfPoly) {
	if a.deg < f.deg {
		return
	}
	lead := c.gfInv(f.c[f.deg])
	for pos := a.deg; pos >= f.deg; pos-- {
		if a.c[pos] == 0 {
			continue
		}
		factor := c.gfMul(a.c[pos], lead)
		shift := pos - f.deg
		for i := 0; i <= f.deg; i++ {
			a.c[shift+i] ^= c.gfMul(factor, f.c[i])
		}
	}
	newDeg := f.deg - 1
	if newDeg < 0 {
		newDeg = 0
	}
	for newDeg > 0 && a.c[newDeg] == 0 {
		newDeg--
	}
	a.deg = newDeg
}

// polyDivExact returns f/g assuming g divides f exactly (used after a BTA
// split, where g was constructed as a genuine factor of f).
func (c *Codec) polyDivExact(f, g gfPoly) gfPoly {
	rem := newPoly(f.deg)
	rem.set(f)

	q := newPoly(f.deg - g.deg)
	lead := c.gfInv(g.c[g.deg])
	for pos := f.deg; pos >= g.deg; pos-- {
		if rem.c[pos] == 0 {
			continue
		}
		factor := c.gfMul(rem.c[pos], lead)
		shift := pos - g.deg
		q.c[shift] = factor
		for i := 0; i <= g.deg; i++ {
			rem.c[shift+i] ^= c.gfMul(factor, g.c[i])
		}
	}
	q.deg = f.deg - g.deg
	q.trim()
	return q
}

// polyGCD computes gcd(a, b), normalized to a monic leading coefficient.
func (c *Codec) polyGCD(a, b gfPoly) gfPoly {
	x := newPoly(a.deg)
	x.set(a)
	y := newPoly(b.deg)
	y.set(b)

	for !(y.deg == 0 && y.c[0] == 0) {
		r := newPoly(x.deg)
		r.set(x)
		c.polyMod(&r, y)
		x, y = y, r
	}

	if x.deg == 0 && x.c[0] == 0 {
		return x
	}
	if x.c[x.deg] != 1 {
		inv := c.gfInv(x.c[x.deg])
		for i := 0; i <= x.deg; i++ {
			x.c[i] = c.gfMul(x.c[i], inv)
		}
	}
	return x
}
