package rdkit

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetails_Encode(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		d    Details
		want string
	}{
		{"empty", NewDetails(), `{}`},
		{"bool", NewDetails().WithBool("sanitize", false), `{"sanitize":false}`},
		{"int", NewDetails().WithInt("nBits", 2048), `{"nBits":2048}`},
		{"string", NewDetails().WithString("legend", "eth\"anol"), `{"legend":"eth\"anol"}`},
		{
			"insertion order",
			NewDetails().WithBool("sanitize", true).WithBool("kekulize", false).WithInt("width", 300),
			`{"sanitize":true,"kekulize":false,"width":300}`,
		},
		{
			"overwrite keeps position",
			NewDetails().WithInt("a", 1).WithInt("b", 2).WithInt("a", 3),
			`{"a":3,"b":2}`,
		},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tc.d.Encode())
			assert.Equal(t, tc.want, tc.d.String())
			assert.True(t, json.Valid([]byte(tc.d.Encode())))
		})
	}
}

func TestDetails_Immutable(t *testing.T) {
	base := NewDetails().WithBool("useChirality", true)
	a := base.WithInt("maxMatches", 1)
	b := base.WithInt("maxMatches", 5)

	assert.Equal(t, 1, base.Len())
	assert.Equal(t, `{"useChirality":true,"maxMatches":1}`, a.Encode())
	assert.Equal(t, `{"useChirality":true,"maxMatches":5}`, b.Encode())
}

func TestDetails_With(t *testing.T) {
	d := NewDetails().
		With("a", true).
		With("b", int64(7)).
		With("c", uint8(3)).
		With("d", "x")
	assert.Equal(t, `{"a":true,"b":7,"c":3,"d":"x"}`, d.Encode())

	v, ok := d.Get("b")
	require.True(t, ok)
	assert.Equal(t, 7, v)
	_, ok = d.Get("missing")
	assert.False(t, ok)

	assert.Panics(t, func() { NewDetails().With("f", 1.5) })
	assert.Panics(t, func() { NewDetails().With("m", map[string]int{}) })
}

func TestDetails_Merge(t *testing.T) {
	a := NewDetails().WithInt("width", 250).WithInt("height", 200)
	b := NewDetails().WithInt("height", 400).WithBool("addStereoAnnotation", true)

	assert.Equal(t, `{"width":250,"height":400,"addStereoAnnotation":true}`, a.Merge(b).Encode())
	assert.Equal(t, `{"width":250,"height":200}`, a.Encode())
}

func TestDetails_MarshalJSON(t *testing.T) {
	wrapper := struct {
		Details Details `json:"details"`
	}{NewDetails().WithInt("randomSeed", 42)}

	raw, err := json.Marshal(wrapper)
	require.NoError(t, err)
	assert.Equal(t, `{"details":{"randomSeed":42}}`, string(raw))
}

//Personal.AI order the ending
