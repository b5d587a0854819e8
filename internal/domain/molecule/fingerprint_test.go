package molecule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/rdkit-go/pkg/errors"
)

func TestParseBitString(t *testing.T) {
	bv, err := ParseBitString("morgan", "1010000011")
	require.NoError(t, err)

	assert.Equal(t, "morgan", bv.Kind())
	assert.Equal(t, 10, bv.Len())
	assert.Equal(t, 4, bv.Count())
	assert.Equal(t, []int{0, 2, 8, 9}, bv.OnBits())
	assert.Equal(t, []byte{0x05, 0x03}, bv.Bytes())
	assert.Equal(t, "1010000011", bv.String())
	assert.InDelta(t, 0.4, bv.Density(), 1e-9)

	assert.True(t, bv.Test(2))
	assert.False(t, bv.Test(1))
	assert.False(t, bv.Test(-1))
	assert.False(t, bv.Test(10))
}

func TestParseBitString_Invalid(t *testing.T) {
	for _, in := range []string{"", "10x1", "1 0"} {
		_, err := ParseBitString("rdkit", in)
		require.Error(t, err, in)
		assert.True(t, errors.IsCode(err, errors.ErrCodeMoleculeInvalidFormat), in)
	}
}

func TestBitVectorFromBytes(t *testing.T) {
	raw := []byte{0x05, 0x03}
	bv, err := BitVectorFromBytes("maccs", raw, 10)
	require.NoError(t, err)
	assert.Equal(t, "1010000011", bv.String())

	raw[0] = 0
	assert.Equal(t, 4, bv.Count(), "input buffer is copied")

	out := bv.Bytes()
	out[1] = 0xff
	assert.True(t, bv.Test(0))
	assert.False(t, bv.Test(7))
}

func TestBitVectorFromBytes_Invalid(t *testing.T) {
	cases := []struct {
		name   string
		data   []byte
		length int
	}{
		{"zero length", []byte{}, 0},
		{"short buffer", []byte{0x01}, 9},
		{"long buffer", []byte{0x01, 0x00}, 8},
		{"trailing bits", []byte{0x00, 0x04}, 10},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := BitVectorFromBytes("x", tc.data, tc.length)
			assert.True(t, errors.IsCode(err, errors.ErrCodeMoleculeInvalidFormat))
		})
	}
}

func TestBitVector_RoundTripThroughBytes(t *testing.T) {
	s := "0110100101101001011"
	a, err := ParseBitString("pattern", s)
	require.NoError(t, err)
	b, err := BitVectorFromBytes("pattern", a.Bytes(), a.Len())
	require.NoError(t, err)
	assert.Equal(t, s, b.String())
}

//Personal.AI order the ending
