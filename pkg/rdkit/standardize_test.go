package rdkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const explicitEthanol = "[H]OC([H])([H])C([H])([H])[H]"

func smilesOf(t *testing.T, m *Molecule) string {
	t.Helper()
	s, err := m.SMILES()
	require.NoError(t, err)
	return s
}

func TestMolecule_AddHsInPlace(t *testing.T) {
	h, fake := newTestHandle(t)

	mol, err := h.MolFromSMILES("CCO")
	require.NoError(t, err)
	got, err := mol.AddHsInPlace()
	require.NoError(t, err)
	assert.Same(t, mol, got)
	assert.Equal(t, explicitEthanol, smilesOf(t, mol))

	got, err = mol.RemoveHsInPlace()
	require.NoError(t, err)
	assert.Same(t, mol, got)
	assert.Equal(t, "CCO", smilesOf(t, mol))

	require.NoError(t, mol.Close())
	assertNoLeaks(t, h, fake)
}

func TestMolecule_AddHsCopy(t *testing.T) {
	h, fake := newTestHandle(t)

	mol, err := h.MolFromSMILES("CCO")
	require.NoError(t, err)
	withHs, err := mol.AddHs()
	require.NoError(t, err)

	assert.NotSame(t, mol, withHs)
	assert.Equal(t, "CCO", smilesOf(t, mol))
	assert.Equal(t, explicitEthanol, smilesOf(t, withHs))

	stripped, err := withHs.RemoveHs()
	require.NoError(t, err)
	assert.Equal(t, "CCO", smilesOf(t, stripped))
	assert.Equal(t, explicitEthanol, smilesOf(t, withHs))

	for _, m := range []*Molecule{mol, withHs, stripped} {
		require.NoError(t, m.Close())
	}
	assertNoLeaks(t, h, fake)
}

func TestMolecule_StandardizationPrimitives(t *testing.T) {
	type op struct {
		name    string
		input   string
		want    string
		copy    func(*Molecule) (*Molecule, error)
		inPlace func(*Molecule) (*Molecule, error)
	}
	ops := []op{
		{"cleanup", "[Pt]CCN(=O)=O", "[CH2-]C[N+](=O)[O-].[Pt+]", (*Molecule).Cleanup, (*Molecule).CleanupInPlace},
		{"normalize", "[CH2-]CN(=O)=O", "[CH2-]C[N+](=O)[O-]", (*Molecule).Normalize, (*Molecule).NormalizeInPlace},
		{"neutralize", "[CH2-]CN(=O)=O", "CCN(=O)=O", (*Molecule).Neutralize, (*Molecule).NeutralizeInPlace},
		{"reionize", "[O-]c1cc(C(=O)O)ccc1", "O=C([O-])c1cccc(O)c1", (*Molecule).Reionize, (*Molecule).ReionizeInPlace},
		{"canonical_tautomer", "OC(O)C(=N)CO", "NC(CO)C(=O)O", (*Molecule).CanonicalTautomer, (*Molecule).CanonicalTautomerInPlace},
		{"charge_parent", "[Pt]CCN(=O)=O", "CC[N+](=O)[O-]", (*Molecule).ChargeParent, (*Molecule).ChargeParentInPlace},
		{"fragment_parent", "[Pt]CCN(=O)=O", "[CH2-]C[N+](=O)[O-]", (*Molecule).FragmentParent, (*Molecule).FragmentParentInPlace},
	}
	for _, tc := range ops {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			h, fake := newTestHandle(t)

			mol, err := h.MolFromSMILES(tc.input)
			require.NoError(t, err)
			before := smilesOf(t, mol)

			dup, err := tc.copy(mol)
			require.NoError(t, err)
			assert.Equal(t, before, smilesOf(t, mol), "copy must not touch the receiver")
			assert.Equal(t, tc.want, smilesOf(t, dup))

			same, err := tc.inPlace(mol)
			require.NoError(t, err)
			assert.Same(t, mol, same)
			assert.Equal(t, tc.want, smilesOf(t, mol))
			assert.Equal(t, 2, fake.Calls(tc.name))

			require.NoError(t, dup.Close())
			require.NoError(t, mol.Close())
			assertNoLeaks(t, h, fake)
		})
	}
}

func TestMolecule_BadStatusKeepsBuffer(t *testing.T) {
	h, fake := newTestHandle(t)
	fake.FailWithStatus("cleanup", 0)

	mol, err := h.MolFromSMILES("[Pt]CCN(=O)=O")
	require.NoError(t, err)
	before := smilesOf(t, mol)

	got, err := mol.CleanupInPlace()
	assert.Nil(t, got)
	require.Error(t, err)
	assert.True(t, IsBadStatus(err))
	assert.Contains(t, err.Error(), "bad status: 0")
	assert.Equal(t, before, smilesOf(t, mol))

	dup, err := mol.Cleanup()
	assert.Nil(t, dup)
	assert.True(t, IsBadStatus(err))
	assert.Equal(t, int64(1), h.LiveBuffers(), "failed copy must be released")

	require.NoError(t, mol.Close())
	assertNoLeaks(t, h, fake)
}

func TestMolecule_BadStatusOtherCodes(t *testing.T) {
	h, fake := newTestHandle(t)
	fake.FailWithStatus("add_hs", -1)

	mol, err := h.MolFromSMILES("CCO")
	require.NoError(t, err)
	defer mol.Close()

	_, err = mol.AddHsInPlace()
	assert.True(t, IsBadStatus(err))
	assert.Contains(t, err.Error(), "bad status: -1")
	assert.Equal(t, "CCO", smilesOf(t, mol))
}

func TestMolecule_Standardize(t *testing.T) {
	h, fake := newTestHandle(t)

	mol, err := h.MolFromSMILES("[Pt]CCN(=O)=O")
	require.NoError(t, err)

	out, err := mol.Standardize(StepFragmentParent, StepNeutralize)
	require.NoError(t, err)
	assert.Equal(t, "O=N(=O)CC[Pt]", smilesOf(t, mol))
	assert.Equal(t, 1, fake.Calls("fragment_parent"))
	assert.Equal(t, 1, fake.Calls("neutralize"))
	require.NoError(t, out.Close())

	_, err = mol.Standardize(Step("polish"))
	assert.True(t, IsInvalidArgument(err))
	assert.Equal(t, 2, fake.Calls("get_mol"), "unknown step rejected before cloning")

	same, err := mol.StandardizeInPlace(StepCleanup)
	require.NoError(t, err)
	assert.Same(t, mol, same)
	assert.Equal(t, "[CH2-]C[N+](=O)[O-].[Pt+]", smilesOf(t, mol))

	require.NoError(t, mol.Close())
	assertNoLeaks(t, h, fake)
}

func TestParseStep(t *testing.T) {
	for _, s := range Steps {
		got, err := ParseStep(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
	got, err := ParseStep(" Canonical-Tautomer ")
	require.NoError(t, err)
	assert.Equal(t, StepCanonicalTautomer, got)

	_, err = ParseStep("sparkle")
	assert.True(t, IsInvalidArgument(err))
}

//Personal.AI order the ending
