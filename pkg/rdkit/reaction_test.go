package rdkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const oxidation = "[CH3:1][OH:2]>>[CH2:1]=[OH0:2]"

func TestReactionFromSMARTS(t *testing.T) {
	h, fake := newTestHandle(t)

	rxn, err := h.ReactionFromSMARTS(oxidation)
	require.NoError(t, err)
	assert.Equal(t, oxidation, rxn.Input())
	assert.Equal(t, "Reaction("+oxidation+")", rxn.String())
	assert.Equal(t, KindReaction, rxn.Kind())

	svg, err := rxn.SVG(0, 0)
	require.NoError(t, err)
	assert.Contains(t, svg, "<svg")
	assert.Contains(t, svg, "width='250px'")
	assert.Contains(t, svg, "height='200px'")

	svg, err = rxn.SVG(600, 150)
	require.NoError(t, err)
	assert.Contains(t, svg, "width='600px'")

	require.NoError(t, rxn.Close())
	require.NoError(t, rxn.Close())
	_, err = rxn.SVG(0, 0)
	assert.True(t, IsReleased(err))
	assertNoLeaks(t, h, fake)
}

func TestReactionFromSMARTS_Invalid(t *testing.T) {
	h, fake := newTestHandle(t)

	rxn, err := h.ReactionFromSMARTS("CCO")
	assert.Nil(t, rxn)
	assert.True(t, IsInvalidInput(err))

	fake.ReturnZeroSize("get_rxn")
	_, err = h.ReactionFromSMARTS(oxidation)
	assert.True(t, IsInvalidInput(err))
	assertNoLeaks(t, h, fake)
}

func TestReaction_Clone(t *testing.T) {
	h, fake := newTestHandle(t)

	rxn, err := h.ReactionFromSMARTS(oxidation)
	require.NoError(t, err)
	dup, err := rxn.Clone()
	require.NoError(t, err)
	require.NoError(t, rxn.Close())

	svg, err := dup.SVG(0, 0)
	require.NoError(t, err)
	assert.Contains(t, svg, oxidation)

	require.NoError(t, dup.Close())
	assertNoLeaks(t, h, fake)
}

func TestReaction_SVGNullIsBadPointer(t *testing.T) {
	h, fake := newTestHandle(t)
	fake.FailWithNull("get_rxn_svg")

	rxn, err := h.ReactionFromSMARTS(oxidation)
	require.NoError(t, err)
	defer rxn.Close()

	_, err = rxn.SVG(0, 0)
	assert.True(t, IsBadPointer(err))
}

//Personal.AI order the ending
