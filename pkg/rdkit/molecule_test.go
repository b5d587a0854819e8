package rdkit

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMolFromSMILES_Canonical(t *testing.T) {
	t.Parallel()
	cases := []struct {
		in, want string
	}{
		{"CCO", "CCO"},
		{"OCC", "CCO"},
		{"n1ccccc1", "c1ccncc1"},
		{"OCCCN", "NCCCO"},
		{"C1=CC=CC=C1OC", "COc1ccccc1"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.in, func(t *testing.T) {
			t.Parallel()
			h, fake := newTestHandle(t)
			mol, err := h.MolFromSMILES(tc.in)
			require.NoError(t, err)

			got, err := mol.SMILES()
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, "Molecule("+tc.want+")", mol.String())

			require.NoError(t, mol.Close())
			assertNoLeaks(t, h, fake)
		})
	}
}

func TestMolFromSMILES_InvalidInput(t *testing.T) {
	h, fake := newTestHandle(t)

	mol, err := h.MolFromSMILES("C?C")
	assert.Nil(t, mol)
	require.Error(t, err)
	assert.True(t, IsInvalidInput(err))
	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.Contains(t, err.Error(), "invalid input")
	assertNoLeaks(t, h, fake)
}

func TestMolFromSMILES_ZeroLengthPickleIsFreed(t *testing.T) {
	h, fake := newTestHandle(t)
	fake.ReturnZeroSize("get_mol")

	_, err := h.MolFromSMILES("CCO")
	require.Error(t, err)
	assert.True(t, IsInvalidInput(err))
	assert.Equal(t, 1, fake.Calls("free_ptr"))
	assertNoLeaks(t, h, fake)
}

func TestMolFromSMILES_KeepExplicitHydrogens(t *testing.T) {
	h, _ := newTestHandle(t)
	const explicit = "[H]OC([H])([H])C([H])([H])[H]"

	kept, err := h.MolFromSMILES(explicit, WithRemoveHs(false))
	require.NoError(t, err)
	defer kept.Close()
	smiles, err := kept.SMILES()
	require.NoError(t, err)
	assert.Equal(t, explicit, smiles)

	removed, err := h.MolFromSMILES(explicit)
	require.NoError(t, err)
	defer removed.Close()
	smiles, err = removed.SMILES()
	require.NoError(t, err)
	assert.Equal(t, "CCO", smiles)
}

func TestMolFromSMARTS(t *testing.T) {
	h, fake := newTestHandle(t)

	q, err := h.MolFromSMARTS("ccO")
	require.NoError(t, err)
	assert.True(t, q.IsQuery())
	smarts, err := q.SMARTS()
	require.NoError(t, err)
	assert.Equal(t, "ccO", smarts)

	_, err = h.MolFromSMARTS("c!c")
	assert.True(t, IsInvalidInput(err))

	require.NoError(t, q.Close())
	assertNoLeaks(t, h, fake)
}

func TestMolecule_Match(t *testing.T) {
	h, fake := newTestHandle(t)

	mol, err := h.MolFromSMILES("c1ccccc1O")
	require.NoError(t, err)
	pattern, err := h.MolFromSMARTS("ccO")
	require.NoError(t, err)

	matches, err := mol.Match(pattern)
	require.NoError(t, err)
	assert.Equal(t, [][]int{{0, 5, 6}, {4, 5, 6}}, matches)

	ok, err := mol.HasMatch(pattern)
	require.NoError(t, err)
	assert.True(t, ok)

	limited, err := mol.Match(pattern, WithMaxMatches(1))
	require.NoError(t, err)
	assert.Equal(t, [][]int{{0, 5, 6}}, limited)

	require.NoError(t, mol.Close())
	require.NoError(t, pattern.Close())
	assertNoLeaks(t, h, fake)
}

func TestMolecule_MatchMoleculePattern(t *testing.T) {
	h, _ := newTestHandle(t)

	mol, err := h.MolFromSMILES("C1=CC=CC=C1OC")
	require.NoError(t, err)
	defer mol.Close()
	pattern, err := h.MolFromSMILES("COC")
	require.NoError(t, err)
	defer pattern.Close()

	matches, err := mol.Match(pattern)
	require.NoError(t, err)
	assert.Equal(t, [][]int{{0, 1, 2}}, matches)
}

func TestMolecule_MatchNone(t *testing.T) {
	h, fake := newTestHandle(t)

	mol, err := h.MolFromSMILES("CCO")
	require.NoError(t, err)
	defer mol.Close()
	pattern, err := h.MolFromSMARTS("N")
	require.NoError(t, err)
	defer pattern.Close()

	matches, err := mol.Match(pattern)
	require.NoError(t, err)
	assert.Nil(t, matches)

	ok, err := mol.HasMatch(pattern)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 2, fake.Calls("get_substruct_matches"))
}

func TestMolecule_MatchChirality(t *testing.T) {
	h, _ := newTestHandle(t)

	mol, err := h.MolFromSMILES("CC[C@H](F)Cl")
	require.NoError(t, err)
	defer mol.Close()
	pattern, err := h.MolFromSMILES("C[C@@H](F)Cl")
	require.NoError(t, err)
	defer pattern.Close()

	strict, err := mol.Match(pattern)
	require.NoError(t, err)
	assert.Nil(t, strict)

	loose, err := mol.Match(pattern, WithUseChirality(false))
	require.NoError(t, err)
	assert.Equal(t, [][]int{{1, 2, 3, 4}}, loose)
}

func TestMolecule_HasMatchKeepsCallerOptions(t *testing.T) {
	h, _ := newTestHandle(t)

	mol, err := h.MolFromSMILES("CC[C@H](F)Cl")
	require.NoError(t, err)
	defer mol.Close()
	pattern, err := h.MolFromSMILES("C[C@@H](F)Cl")
	require.NoError(t, err)
	defer pattern.Close()

	opts := make([]MatchOption, 1, 4)
	opts[0] = WithUseChirality(false)
	ok, err := mol.HasMatch(pattern, opts...)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Nil(t, opts[:2][1])
}

func TestMolecule_MatchSelf(t *testing.T) {
	h, _ := newTestHandle(t)

	mol, err := h.MolFromSMILES("CCO")
	require.NoError(t, err)
	defer mol.Close()

	_, err = mol.Match(mol)
	assert.NoError(t, err)
}

func TestMolecule_MatchTypeMismatch(t *testing.T) {
	h, fake := newTestHandle(t)

	mol, err := h.MolFromSMILES("CCO")
	require.NoError(t, err)
	defer mol.Close()
	rxn, err := h.ReactionFromSMARTS("[CH3:1][OH:2]>>[CH2:1]=[OH0:2]")
	require.NoError(t, err)
	defer rxn.Close()

	_, err = mol.Match(rxn)
	require.Error(t, err)
	assert.True(t, IsTypeMismatch(err))
	assert.Contains(t, err.Error(), "expected molecule")

	_, err = mol.Match(nil)
	assert.True(t, IsTypeMismatch(err))

	var nilMol *Molecule
	_, err = mol.Match(nilMol)
	assert.True(t, IsTypeMismatch(err))

	assert.Zero(t, fake.Calls("get_substruct_matches"))
}

func TestMolecule_MatchNullResult(t *testing.T) {
	h, fake := newTestHandle(t)
	fake.FailWithNull("get_substruct_matches")

	mol, err := h.MolFromSMILES("CCO")
	require.NoError(t, err)
	defer mol.Close()
	pattern, err := h.MolFromSMARTS("CO")
	require.NoError(t, err)
	defer pattern.Close()

	_, err = mol.Match(pattern)
	assert.True(t, IsBadPointer(err))
}

func TestDecodeMatches(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want [][]int
		err  bool
	}{
		{"empty object", "{}", nil, false},
		{"empty array", "[]", nil, false},
		{"one", `[{"atoms":[1,2],"bonds":[0]}]`, [][]int{{1, 2}}, false},
		{"zero atoms", `[{"atoms":[],"bonds":[]}]`, [][]int{{}}, false},
		{"garbage", "not json", nil, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := decodeMatches(tc.raw)
			if tc.err {
				assert.True(t, IsBadPointer(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestMolecule_CloseTwiceAndUseAfterClose(t *testing.T) {
	h, fake := newTestHandle(t)

	mol, err := h.MolFromSMILES("CCO")
	require.NoError(t, err)
	require.NoError(t, mol.Close())
	require.NoError(t, mol.Close())
	assert.True(t, mol.Released())
	assert.Equal(t, 1, fake.Calls("free_ptr"))

	_, err = mol.SMILES()
	assert.True(t, IsReleased(err))
	_, err = mol.AddHsInPlace()
	assert.True(t, IsReleased(err))

	other, err := h.MolFromSMILES("CO")
	require.NoError(t, err)
	defer other.Close()
	_, err = other.Match(mol)
	assert.True(t, IsReleased(err))
	assert.Equal(t, 1, fake.Heap.Live())
}

func TestMolecule_Clone(t *testing.T) {
	h, fake := newTestHandle(t)

	mol, err := h.MolFromSMILES("OCC")
	require.NoError(t, err)
	dup, err := mol.Clone()
	require.NoError(t, err)

	assert.Equal(t, int64(2), h.LiveBuffers())
	smiles, err := dup.SMILES()
	require.NoError(t, err)
	assert.Equal(t, "CCO", smiles)

	require.NoError(t, mol.Close())
	smiles, err = dup.SMILES()
	require.NoError(t, err)
	assert.Equal(t, "CCO", smiles)

	require.NoError(t, dup.Close())
	assertNoLeaks(t, h, fake)
}

func TestMolecule_CloneQuery(t *testing.T) {
	h, _ := newTestHandle(t)

	q, err := h.MolFromSMARTS("ccO")
	require.NoError(t, err)
	defer q.Close()
	dup, err := q.Clone()
	require.NoError(t, err)
	defer dup.Close()
	assert.True(t, dup.IsQuery())
}

func TestKind(t *testing.T) {
	assert.Equal(t, "molecule", KindMolecule.String())
	assert.Equal(t, "reaction", KindReaction.String())
	assert.Equal(t, "kind(9)", Kind(9).String())
	assert.Equal(t, KindMolecule, (&Molecule{}).Kind())
	assert.Equal(t, KindReaction, (&Reaction{}).Kind())
}

//Personal.AI order the ending
