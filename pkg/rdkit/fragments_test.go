package rdkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMolecule_Fragments(t *testing.T) {
	h, fake := newTestHandle(t)

	mol, err := h.MolFromSMILES("OCC.n1ccccc1.[Na+]")
	require.NoError(t, err)

	frags, err := mol.Fragments()
	require.NoError(t, err)
	require.Len(t, frags, 3)

	want := []string{"CCO", "c1ccncc1", "[Na+]"}
	for i, f := range frags {
		assert.Equal(t, want[i], smilesOf(t, f))
	}

	// fragments outlive their parent
	require.NoError(t, mol.Close())
	assert.Equal(t, "CCO", smilesOf(t, frags[0]))

	for _, f := range frags {
		require.NoError(t, f.Close())
	}
	assertNoLeaks(t, h, fake)
}

func TestMolecule_FragmentsSingleComponent(t *testing.T) {
	h, fake := newTestHandle(t)

	mol, err := h.MolFromSMILES("CCO")
	require.NoError(t, err)
	frags, err := mol.Fragments(WithSanitizeFragments(false))
	require.NoError(t, err)
	require.Len(t, frags, 1)

	require.NoError(t, frags[0].Close())
	require.NoError(t, mol.Close())
	assertNoLeaks(t, h, fake)
}

func TestMolecule_FragmentsNullArray(t *testing.T) {
	h, fake := newTestHandle(t)
	fake.FailWithNull("get_mol_frags")

	mol, err := h.MolFromSMILES("CCO.CC")
	require.NoError(t, err)
	_, err = mol.Fragments()
	assert.True(t, IsBadPointer(err))

	require.NoError(t, mol.Close())
	assertNoLeaks(t, h, fake)
}

func TestMolecule_FragmentsNullEntryReleasesEverything(t *testing.T) {
	h, fake := newTestHandle(t)
	fake.NullFragmentAt(1)

	mol, err := h.MolFromSMILES("CCO.CC.CN")
	require.NoError(t, err)
	frags, err := mol.Fragments()
	assert.Nil(t, frags)
	assert.True(t, IsBadPointer(err))

	require.NoError(t, mol.Close())
	assertNoLeaks(t, h, fake)
}

func TestUnmarshalFragments_Empty(t *testing.T) {
	h, fake := newTestHandle(t)

	frags, err := h.unmarshalFragments(func(sizes, count *uintptr) uintptr {
		*sizes = fake.Heap.AllocWords(nil)
		*count = 0
		return fake.Heap.AllocWords(nil)
	})
	require.NoError(t, err)
	assert.Empty(t, frags)
	assertNoLeaks(t, h, fake)
}

//Personal.AI order the ending
