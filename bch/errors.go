package bch

import "errors"

// Stable ABI error codes, mirrored from spec.md §6/§7.
const (
	codeInvalidArgument = -11
	codeBadMessage      = -13
)

// ErrInvalidArgument is returned (wrapped) when construction or decode
// parameters are out of range: a bad (m, t) pair, an oversized len, or a
// required slice that's nil/too short.
var ErrInvalidArgument = errors.New("bch: invalid argument")

// ErrBadMessage is returned (wrapped) when the decoder could not produce a
// coherent error vector: Berlekamp-Massey reported degree > t, the root
// finder found a number of roots that doesn't match deg(Λ), or a computed
// error position landed outside the codeword. It indicates more than t
// errors occurred; miscorrection past that point is possible and
// undetectable by construction (spec.md §7).
var ErrBadMessage = errors.New("bch: bad message")

// ErrConstruction is returned by New when the primitive polynomial supplied
// (or implied by m) is not actually primitive, or the arena allocator ran
// out of room.
var ErrConstruction = errors.New("bch: construction failed")
