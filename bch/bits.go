package bch

// Bit-oriented adapter (spec.md §4.8) and the trivial in-place correction
// helpers (spec.md §6's correct/correctbits) — both explicitly named as
// "external collaborators, interfaces only" in spec.md §1's Non-goals
// (i.e. out of scope for the hard engineering the rest of this package is
// about, but still part of the public surface callers are promised).

// Correct toggles the bits named by errloc[:nerr] in data (each position is
// a bit index as returned by Decode: byte data[p/8], bit p%8).
func Correct(data []byte, errloc []int, nerr int) {
	for _, p := range errloc[:nerr] {
		b := p / 8
		if b < 0 || b >= len(data) {
			continue
		}
		data[b] ^= 1 << uint(p%8)
	}
}

// EncodeBits converts a bit-per-byte array (only bit 0 of each input byte
// is read) into packed, left-padded bytes, then computes its ECC the same
// way Encode does for byte-packed data. dataBits must have length
// n-ECCBits; eccBitsOut must have length ECCBits (one output byte per
// coded bit, bit 0 set or clear).
func (c *Codec) EncodeBits(dataBits []byte, eccBitsOut []byte) error {
	k := c.N - c.ECCBits
	if len(dataBits) != k {
		return ErrInvalidArgument
	}
	if len(eccBitsOut) != c.ECCBits {
		return ErrInvalidArgument
	}

	packed, _ := packBits(dataBits)
	ecc := make([]byte, c.ECCBytes)
	if err := c.Encode(packed, ecc); err != nil {
		return err
	}

	unpackBitsInto(ecc, c.ECCBits, eccBitsOut)
	return nil
}

// DecodeBits is EncodeBits's decoder counterpart: dataBits and recvECCBits
// are bit-per-byte arrays (the data portion and the received ECC portion of
// a transmitted, possibly-corrupted codeword); errloc receives corrected
// bit positions in the caller's bit-stream index space (i.e. already
// shifted by the padding introduced when packing dataBits into bytes).
func (c *Codec) DecodeBits(dataBits, recvECCBits []byte, errloc []int) (int, error) {
	k := c.N - c.ECCBits
	if len(dataBits) != k || len(recvECCBits) != c.ECCBits {
		return 0, ErrInvalidArgument
	}

	packedData, nPad := packBits(dataBits)
	recvECC := make([]byte, c.ECCBytes)
	for i := 0; i < c.ECCBits; i++ {
		if recvECCBits[i]&1 != 0 {
			recvECC[i/8] |= 1 << uint(7-i%8)
		}
	}

	raw := make([]int, len(errloc))
	n, err := c.Decode(DecodeInput{Data: packedData, RecvECC: recvECC}, raw)
	if err != nil {
		return 0, err
	}

	for i := 0; i < n; i++ {
		e := raw[i]
		e = (e &^ 7) | (7 - (e & 7))
		errloc[i] = e - nPad
	}
	return n, nil
}

// CorrectBits is Correct's bit-per-byte counterpart.
func CorrectBits(dataBits []byte, errloc []int, nerr int) {
	for _, p := range errloc[:nerr] {
		if p < 0 || p >= len(dataBits) {
			continue
		}
		dataBits[p] ^= 1
	}
}

// packBits packs a bit-per-byte array (only bit 0 read, MSB-first bit
// ordering within the conceptual stream) into bytes, left-padding with
// zero bits so the result is a whole number of bytes. Returns the packed
// bytes and the number of pad bits introduced at the front.
func packBits(bits []byte) ([]byte, int) {
	nPad := (8 - len(bits)%8) % 8
	total := nPad + len(bits)
	out := make([]byte, total/8)
	for i := 0; i < len(bits); i++ {
		pos := nPad + i
		if bits[i]&1 != 0 {
			out[pos/8] |= 1 << uint(7-pos%8)
		}
	}
	return out, nPad
}

// unpackBitsInto unpacks the high nBits bits of packed (MSB-first) into
// out, one output byte per bit (bit 0 set or clear).
func unpackBitsInto(packed []byte, nBits int, out []byte) {
	for i := 0; i < nBits; i++ {
		byteIdx := i / 8
		var bit byte
		if byteIdx < len(packed) {
			bit = (packed[byteIdx] >> uint(7-i%8)) & 1
		}
		out[i] = bit
	}
}
