package bch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// rootsFromProduct expands prod(X+r_i) for the given roots into monic
// coefficients c[0..len(roots)], used to build test polynomials with known
// roots.
func rootsFromProduct(c *Codec, roots []uint16) gfPoly {
	p := newPoly(len(roots))
	p.deg = 0
	p.c[0] = 1
	tmp := newPoly(len(roots))
	for _, r := range roots {
		c.polyMulRoot(&tmp, p, r)
		p.set(tmp)
	}
	return p
}

func TestFindAffine4RootsKnownRoots(t *testing.T) {
	c, err := New(6, 4)
	assert.NoError(t, err)

	// Pick 4 distinct roots whose product polynomial has no X^3 term by
	// construction: the affine solver only handles lam3==0, so build the
	// polynomial from 4 roots that happen to sum (XOR) to zero, which is
	// exactly the "no X^3 coefficient" condition for a monic quartic.
	for e0 := 1; e0 < 8; e0++ {
		r0 := c.gfExp(e0)
		r1 := c.gfExp(e0 + 5)
		r2 := c.gfExp(e0 + 13)
		r3 := r0 ^ r1 ^ r2
		if r3 == 0 || r3 == r0 || r3 == r1 || r3 == r2 {
			continue
		}

		p := rootsFromProduct(c, []uint16{r0, r1, r2, r3})
		if p.deg != 4 || p.c[3] != 0 {
			continue
		}

		roots, ok := c.findAffine4Roots(p.c[2], p.c[1], p.c[0])
		assert.True(t, ok, "affine4 solver should find roots for e0=%d", e0)
		if ok {
			assert.ElementsMatch(t, []uint16{r0, r1, r2, r3}, roots)
		}
		return
	}
	t.Fatal("did not find a usable test quartic")
}

func TestFindDeg3RootsKnownRoots(t *testing.T) {
	c, err := New(6, 3)
	assert.NoError(t, err)

	r0, r1, r2 := c.gfExp(1), c.gfExp(9), c.gfExp(20)
	p := rootsFromProduct(c, []uint16{r0, r1, r2})
	assert.Equal(t, 3, p.deg)

	roots, ok := c.findDeg3Roots(p.c[:4])
	assert.True(t, ok)
	if ok {
		assert.ElementsMatch(t, []uint16{r0, r1, r2}, roots)
	}
}

func TestFindRootsDispatchesByDegree(t *testing.T) {
	c, err := New(7, 5)
	assert.NoError(t, err)

	for _, deg := range []int{1, 2, 3, 4, 5} {
		roots := make([]uint16, deg)
		for i := range roots {
			roots[i] = c.gfExp(3 + i*7)
		}
		p := rootsFromProduct(c, roots)
		if p.deg != deg {
			continue
		}

		positions, ok := c.findRoots(p)
		assert.Truef(t, ok, "findRoots should succeed for degree %d", deg)
		if !ok {
			continue
		}
		assert.Len(t, positions, deg)

		expect := make(map[int]bool, deg)
		for _, r := range roots {
			expect[c.rootToPos(r)] = true
		}
		for _, pos := range positions {
			assert.True(t, expect[pos], "unexpected root position %d", pos)
		}
	}
}

func TestPolyDivExactRecoversQuotient(t *testing.T) {
	c, err := New(6, 4)
	assert.NoError(t, err)

	b := gfPoly{deg: 2, c: []uint16{c.gfExp(5), c.gfExp(6), 1}}
	wantQ := gfPoly{deg: 2, c: []uint16{c.gfExp(1), c.gfExp(2), 1}}

	a := newPoly(wantQ.deg + b.deg)
	c.polyMul(&a, wantQ, b)

	gotQ := c.polyDivExact(a, b)
	assert.Equal(t, wantQ.deg, gotQ.deg)
	for i := 0; i <= wantQ.deg; i++ {
		assert.Equal(t, wantQ.c[i], gotQ.c[i], "mismatch at coefficient %d", i)
	}
}

func TestPolyGCDOfCoprimeFactorsRecoversFactor(t *testing.T) {
	c, err := New(6, 4)
	assert.NoError(t, err)

	f1 := gfPoly{deg: 1, c: []uint16{c.gfExp(3), 1}}
	f2 := gfPoly{deg: 1, c: []uint16{c.gfExp(9), 1}}

	prod := newPoly(f1.deg + f2.deg)
	c.polyMul(&prod, f1, f2)

	g := c.polyGCD(prod, f1)
	assert.Equal(t, f1.deg, g.deg)
	for i := 0; i <= f1.deg; i++ {
		assert.Equal(t, f1.c[i], g.c[i])
	}
}
