package bch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSmallestSupportedCodec(t *testing.T) {
	c, err := New(5, 2)
	assert.NoError(t, err)
	assert.Equal(t, 31, c.N)
	assert.Equal(t, 10, c.ECCBits)
	assert.Equal(t, 2, c.ECCBytes)
}

func TestNewRejectsInvalidParameters(t *testing.T) {
	_, err := New(4, 2)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = New(16, 2)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = New(8, 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = New(5, 10) // m*t=50 >= n=31
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestNewRejectsNonPrimitivePolynomial(t *testing.T) {
	_, err := New(5, 2, WithPrimitivePolynomial(0x3f))
	assert.ErrorIs(t, err, ErrConstruction)
}

func TestEncodeAllZeroDataYieldsZeroECC(t *testing.T) {
	c, err := New(8, 4)
	assert.NoError(t, err)

	data := make([]byte, 3)
	ecc := make([]byte, c.ECCBytes)
	err = c.Encode(data, ecc)
	assert.NoError(t, err)

	for _, b := range ecc {
		assert.Equal(t, byte(0), b)
	}
}

func TestEncodeRejectsOversizedData(t *testing.T) {
	c, err := New(5, 2)
	assert.NoError(t, err)

	data := make([]byte, c.MaxDataBytes()+1)
	ecc := make([]byte, c.ECCBytes)
	err = c.Encode(data, ecc)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestDecodeNoErrorsShortCircuits(t *testing.T) {
	c, err := New(8, 4)
	assert.NoError(t, err)

	data := []byte("Hello")
	ecc := make([]byte, c.ECCBytes)
	assert.NoError(t, c.Encode(data, ecc))

	errloc := make([]int, c.T)
	n, err := c.Decode(DecodeInput{Data: data, RecvECC: ecc}, errloc)
	assert.NoError(t, err)
	assert.Equal(t, 0, n)
}

func flipBit(buf []byte, bitFromMSB int) {
	b := bitFromMSB / 8
	bit := 7 - bitFromMSB%8
	buf[b] ^= 1 << uint(bit)
}

func TestDecodeCorrectsTwoBitErrors(t *testing.T) {
	c, err := New(8, 4)
	assert.NoError(t, err)

	data := []byte("Hello")
	ecc := make([]byte, c.ECCBytes)
	assert.NoError(t, c.Encode(data, ecc))

	joint := append(append([]byte{}, data...), ecc...)
	flipBit(joint, 3)
	flipBit(joint, 17)

	corruptData := joint[:len(data)]
	corruptECC := joint[len(data):]

	errloc := make([]int, c.T)
	n, err := c.Decode(DecodeInput{Data: corruptData, RecvECC: corruptECC}, errloc)
	assert.NoError(t, err)
	assert.Equal(t, 2, n)

	fixed := make([]byte, len(joint))
	copy(fixed, joint)
	Correct(fixed, errloc[:n], n)
	assert.Equal(t, data, fixed[:len(data)])
	assert.Equal(t, ecc, fixed[len(data):])
}

func TestDecodeRejectsOversizedLen(t *testing.T) {
	c, err := New(5, 2)
	assert.NoError(t, err)

	data := make([]byte, c.MaxDataBytes()+1)
	errloc := make([]int, c.T)
	_, err = c.Decode(DecodeInput{Data: data, RecvECC: make([]byte, c.ECCBytes)}, errloc)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestDecodeRecoversFullCapacityErrors(t *testing.T) {
	c, err := New(13, 8)
	assert.NoError(t, err)

	data := make([]byte, 512)
	for i := range data {
		data[i] = byte(i*37 + 11)
	}
	ecc := make([]byte, c.ECCBytes)
	assert.NoError(t, c.Encode(data, ecc))

	joint := append(append([]byte{}, data...), ecc...)
	totalBits := len(joint) * 8
	positions := []int{0, 9, 41, 103, 256*8 + 3, 400*8 + 7, totalBits - 16, totalBits - 1}
	for _, p := range positions {
		flipBit(joint, p)
	}

	errloc := make([]int, c.T)
	n, err := c.Decode(DecodeInput{Data: joint[:len(data)], RecvECC: joint[len(data):]}, errloc)
	assert.NoError(t, err)
	assert.Equal(t, len(positions), n)

	fixed := make([]byte, len(joint))
	copy(fixed, joint)
	Correct(fixed, errloc[:n], n)
	assert.Equal(t, data, fixed[:len(data)])
	assert.Equal(t, ecc, fixed[len(data):])
}

func TestDecodeCallShapeEquivalence(t *testing.T) {
	c, err := New(8, 4)
	assert.NoError(t, err)

	data := []byte("test!")
	ecc := make([]byte, c.ECCBytes)
	assert.NoError(t, c.Encode(data, ecc))

	joint := append(append([]byte{}, data...), ecc...)
	flipBit(joint, 5)
	corruptData := joint[:len(data)]
	corruptECC := joint[len(data):]

	locA := make([]int, c.T)
	nA, errA := c.Decode(DecodeInput{Data: corruptData, RecvECC: corruptECC}, locA)
	assert.NoError(t, errA)

	calcECC := make([]byte, c.ECCBytes)
	assert.NoError(t, c.Encode(corruptData, calcECC))
	locB := make([]int, c.T)
	nB, errB := c.Decode(DecodeInput{Data: corruptData, RecvECC: corruptECC, CalcECC: calcECC}, locB)
	assert.NoError(t, errB)

	assert.Equal(t, nA, nB)
	assert.Equal(t, locA[:nA], locB[:nB])
}

func TestEncodeIdempotence(t *testing.T) {
	c, err := New(8, 4)
	assert.NoError(t, err)

	data := []byte("idempotent")

	ecc1 := make([]byte, c.ECCBytes)
	assert.NoError(t, c.Encode(data, ecc1))

	ecc2 := make([]byte, c.ECCBytes)
	assert.NoError(t, c.Encode(data, ecc2))

	assert.Equal(t, ecc1, ecc2, "re-encoding the same data from a freshly zeroed ecc buffer must be deterministic")

	// A full codeword (data||ecc) is, by construction, a multiple of g(X):
	// re-encoding it from a zeroed buffer must produce an all-zero remainder.
	joint := append(append([]byte{}, data...), ecc1...)
	zeroCheck := make([]byte, c.ECCBytes)
	assert.NoError(t, c.Encode(joint, zeroCheck))
	for _, b := range zeroCheck {
		assert.Equal(t, byte(0), b)
	}
}
