package bch

import "fmt"

// Codec is a runtime-configured binary BCH encoder/decoder over GF(2^m)
// (spec.md §3). It is immutable after New returns except for its scratch
// buffers, which Encode/Decode reuse across calls — a single Codec must not
// be used concurrently from more than one goroutine, though independent
// Codecs are fully parallel-safe (spec.md §5).
type Codec struct {
	M, T, N int
	ECCBits int
	ECCBytes int

	powTab, logTab []uint16
	xiTab          []uint16
	genWords       []uint32
	eccWords       int
	mod8Tab        [4][256][]uint32

	eccBuf, eccBuf2 []uint32
	syn             []uint16
	cache           []uint16
	elp             gfPoly
	poly2t          [5]gfPoly

	dataBuf []byte
	alloc   *arena
}

// Option configures New. The zero value of Options is "use the default
// primitive polynomial for m, allocate from the Go heap" — matching
// spec.md §6's `init(m, t, prim_poly=0)` where 0 means "use the default".
type Option func(*newOptions)

type newOptions struct {
	primPoly uint32
	arena    *arena
}

// WithPrimitivePolynomial overrides the default primitive polynomial for m
// (spec.md §4.1 lists the defaults). Construction fails if the supplied
// polynomial doesn't have degree m or isn't actually primitive.
func WithPrimitivePolynomial(p uint32) Option {
	return func(o *newOptions) { o.primPoly = p }
}

// WithArena backs the codec's fixed-size tables with a caller-supplied
// buffer (spec.md §5's "embedded-friendly bump allocator"), instead of the
// Go heap. Free resets the arena to empty rather than releasing memory back
// to a garbage collector.
func WithArena(buf []byte) Option {
	return func(o *newOptions) { o.arena = newArena(buf) }
}

// New builds a Codec for the given (m, t). It returns ErrInvalidArgument if
// m is outside [5, 15], t < 1, or m*t >= 2^m-1; ErrConstruction if the
// primitive polynomial (default or supplied via WithPrimitivePolynomial)
// isn't actually primitive of degree m, or if an arena was supplied and ran
// out of room.
func New(m, t int, opts ...Option) (*Codec, error) {
	if m < 5 || m > 15 {
		return nil, fmt.Errorf("bch: m=%d: %w", m, ErrInvalidArgument)
	}
	if t < 1 {
		return nil, fmt.Errorf("bch: t=%d: %w", t, ErrInvalidArgument)
	}
	n := (1 << uint(m)) - 1
	if m*t >= n {
		return nil, fmt.Errorf("bch: m*t=%d >= n=%d: %w", m*t, n, ErrInvalidArgument)
	}

	var o newOptions
	for _, opt := range opts {
		opt(&o)
	}
	prim := o.primPoly
	if prim == 0 {
		prim = defaultPrimPoly[m-5]
	}

	powTab, logTab, ok := buildGFTables(m, prim)
	if !ok {
		return nil, fmt.Errorf("bch: primitive polynomial 0x%x invalid for m=%d: %w", prim, m, ErrConstruction)
	}

	c := &Codec{
		M: m, T: t, N: n,
		powTab: powTab, logTab: logTab,
		alloc: o.arena,
	}

	c.computeGeneratorPolynomial()
	c.buildMod8Tables()
	c.buildXiTable()

	scratchCap := 2*t + 2

	var err error
	if c.alloc != nil {
		var g []uint32
		if g, err = c.allocU32(len(c.genWords)); err != nil {
			return nil, err
		}
		copy(g, c.genWords)
		c.genWords = g
		for _, tab := range []*[]uint16{&c.powTab, &c.logTab, &c.xiTab} {
			var s []uint16
			if s, err = c.allocU16(len(*tab)); err != nil {
				return nil, err
			}
			copy(s, *tab)
			*tab = s
		}
	}
	if c.eccBuf, err = c.allocU32(c.eccWords); err != nil {
		return nil, err
	}
	if c.eccBuf2, err = c.allocU32(c.eccWords); err != nil {
		return nil, err
	}
	if c.syn, err = c.allocU16(2*t + 2); err != nil {
		return nil, err
	}
	if c.cache, err = c.allocU16(2*t + 2); err != nil {
		return nil, err
	}

	c.elp = newPoly(scratchCap)
	for i := range c.poly2t {
		c.poly2t[i] = newPoly(scratchCap)
	}

	return c, nil
}

// allocU16 carves a zeroed uint16 slice either from the codec's arena (if
// one was supplied via WithArena) or the Go heap.
func (c *Codec) allocU16(n int) ([]uint16, error) {
	if c.alloc != nil {
		s, ok := c.alloc.allocUint16(n)
		if !ok {
			return nil, fmt.Errorf("bch: arena exhausted: %w", ErrConstruction)
		}
		return s, nil
	}
	return make([]uint16, n), nil
}

// allocU32 is allocU16's uint32 counterpart.
func (c *Codec) allocU32(n int) ([]uint32, error) {
	if c.alloc != nil {
		s, ok := c.alloc.allocUint32(n)
		if !ok {
			return nil, fmt.Errorf("bch: arena exhausted: %w", ErrConstruction)
		}
		return s, nil
	}
	return make([]uint32, n), nil
}

// Free releases the codec's resources. For an arena-backed codec this
// resets the arena to empty (spec.md §5); for a heap-backed codec it drops
// references so the garbage collector can reclaim them.
func (c *Codec) Free() {
	if c.alloc != nil {
		c.alloc.reset()
	}
	c.powTab, c.logTab = nil, nil
	c.genWords = nil
	c.xiTab = nil
	c.eccBuf, c.eccBuf2 = nil, nil
	c.syn, c.cache = nil, nil
	c.dataBuf = nil
	for b := range c.mod8Tab {
		for i := range c.mod8Tab[b] {
			c.mod8Tab[b][i] = nil
		}
	}
}

// DecodeInput selects one of the four call shapes spec.md §4.7 describes.
// Exactly one combination of fields should be populated:
//
//   - Data + RecvECC: re-encode Data to obtain calc_ecc, XOR with RecvECC.
//   - RecvECC + CalcECC: XOR both directly.
//   - CalcECC alone: already pre-XORed, used as the syndrome input as-is.
//   - Syn: syndromes already computed; skip straight to Berlekamp-Massey.
//
// Data's length bounds the "error is in the data region" vs. "error is in
// the ecc region" classification in the returned error locations, so it
// should be set whenever available even when RecvECC/CalcECC/Syn do the
// heavy lifting.
type DecodeInput struct {
	Data    []byte
	RecvECC []byte
	CalcECC []byte
	Syn     []uint16
}

// Decode runs the three-stage decoder pipeline (syndromes -> Berlekamp-
// Massey -> BTZ root finding -> post-processing) and returns the number of
// bit errors found, writing their positions into errloc (which must have
// capacity >= t). A non-nil error is ErrInvalidArgument (data too long for
// this codec) or ErrBadMessage (more errors than this codec was built to
// correct).
func (c *Codec) Decode(in DecodeInput, errloc []int) (int, error) {
	if in.Data != nil && len(in.Data) > c.MaxDataBytes() {
		return 0, ErrInvalidArgument
	}
	if len(errloc) < c.T {
		return 0, ErrInvalidArgument
	}

	var zero bool
	switch {
	case in.Syn != nil:
		copy(c.syn, in.Syn)

	case in.CalcECC != nil && in.RecvECC == nil:
		r := c.eccBuf
		unpackWords(in.CalcECC, r)
		zero = allZeroWords(r)
		if !zero {
			c.computeSyndromes(r)
		}

	case in.RecvECC != nil:
		calc := in.CalcECC
		r := c.eccBuf
		for i := range r {
			r[i] = 0
		}
		if calc == nil {
			if in.Data == nil {
				return 0, ErrInvalidArgument
			}
			c.encodeInto(in.Data, r)
		} else {
			unpackWords(calc, r)
		}

		recv := c.eccBuf2
		unpackWords(in.RecvECC, recv)
		for i := range r {
			r[i] ^= recv[i]
		}
		c.maskTail(r)

		zero = allZeroWords(r)
		if !zero {
			c.computeSyndromes(r)
		}

	default:
		return 0, ErrInvalidArgument
	}

	if zero {
		return 0, nil
	}

	deg := c.computeErrorLocatorPolynomial()
	if deg < 0 {
		return 0, ErrBadMessage
	}
	if deg == 0 {
		return 0, nil
	}

	roots, ok := c.findRoots(c.elp)
	if !ok {
		return 0, ErrBadMessage
	}

	nbits := c.eccWords * 32
	if in.Data != nil {
		nbits = 8*len(in.Data) + c.ECCBits
	}

	for i, pos := range roots {
		loc := nbits - 1 - pos
		if loc < 0 || loc >= nbits {
			return 0, ErrBadMessage
		}
		loc = (loc &^ 7) | (7 - (loc & 7))
		errloc[i] = loc
	}

	return len(roots), nil
}

// allZeroWords reports whether every word in r is zero.
func allZeroWords(r []uint32) bool {
	for _, w := range r {
		if w != 0 {
			return false
		}
	}
	return true
}
