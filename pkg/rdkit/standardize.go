package rdkit

import (
	"fmt"
	"strings"
)

// Step names one standardization primitive.
type Step string

const (
	StepCleanup           Step = "cleanup"
	StepNormalize         Step = "normalize"
	StepNeutralize        Step = "neutralize"
	StepReionize          Step = "reionize"
	StepCanonicalTautomer Step = "canonical_tautomer"
	StepChargeParent      Step = "charge_parent"
	StepFragmentParent    Step = "fragment_parent"
	StepAddHs             Step = "add_hs"
	StepRemoveHs          Step = "remove_hs"
)

// Steps lists every primitive in a stable order.
var Steps = []Step{
	StepCleanup, StepNormalize, StepNeutralize, StepReionize, StepCanonicalTautomer,
	StepChargeParent, StepFragmentParent, StepAddHs, StepRemoveHs,
}

// ParseStep accepts a step name, case-insensitive, with '-' or '_'.
func ParseStep(name string) (Step, error) {
	s := Step(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_"))
	for _, known := range Steps {
		if s == known {
			return s, nil
		}
	}
	return "", errInvalidArgument(fmt.Sprintf("unknown standardization step %q", name))
}

func (m *Molecule) inPlace(fn string, call func(ptr, size *uintptr, details string) int16) (*Molecule, error) {
	if err := m.mutate(fn, func(ptr, size *uintptr) int16 { return call(ptr, size, "{}") }); err != nil {
		return nil, err
	}
	return m, nil
}

// copyThen applies op to a duplicate of m.  The duplicate is closed if op
// fails.
func (m *Molecule) copyThen(op func(*Molecule) (*Molecule, error)) (*Molecule, error) {
	dup, err := m.Clone()
	if err != nil {
		return nil, err
	}
	if _, err := op(dup); err != nil {
		_ = dup.Close()
		return nil, err
	}
	return dup, nil
}

// CleanupInPlace runs the MolStandardize cleanup pass on m and returns m.
func (m *Molecule) CleanupInPlace() (*Molecule, error) {
	return m.inPlace("cleanup", m.h.lib.Cleanup)
}

// NormalizeInPlace applies the functional-group normalization transforms.
func (m *Molecule) NormalizeInPlace() (*Molecule, error) {
	return m.inPlace("normalize", m.h.lib.Normalize)
}

// NeutralizeInPlace neutralizes charged atoms where a neutral form exists.
func (m *Molecule) NeutralizeInPlace() (*Molecule, error) {
	return m.inPlace("neutralize", m.h.lib.Neutralize)
}

// ReionizeInPlace moves charges so the strongest acids ionize first.
func (m *Molecule) ReionizeInPlace() (*Molecule, error) {
	return m.inPlace("reionize", m.h.lib.Reionize)
}

// CanonicalTautomerInPlace replaces m with its canonical tautomer.
func (m *Molecule) CanonicalTautomerInPlace() (*Molecule, error) {
	return m.inPlace("canonical_tautomer", m.h.lib.CanonicalTautomer)
}

// ChargeParentInPlace replaces m with its uncharged fragment parent.
func (m *Molecule) ChargeParentInPlace() (*Molecule, error) {
	return m.inPlace("charge_parent", m.h.lib.ChargeParent)
}

// FragmentParentInPlace keeps only the largest organic fragment.
func (m *Molecule) FragmentParentInPlace() (*Molecule, error) {
	return m.inPlace("fragment_parent", m.h.lib.FragmentParent)
}

// AddHsInPlace makes every hydrogen explicit.
func (m *Molecule) AddHsInPlace() (*Molecule, error) {
	if err := m.mutate("add_hs", m.h.lib.AddHs); err != nil {
		return nil, err
	}
	return m, nil
}

// RemoveHsInPlace removes all explicit hydrogens.
func (m *Molecule) RemoveHsInPlace() (*Molecule, error) {
	if err := m.mutate("remove_all_hs", m.h.lib.RemoveAllHs); err != nil {
		return nil, err
	}
	return m, nil
}

// Cleanup returns a standardized copy; m is unchanged.  The same holds for
// every copying primitive below.
func (m *Molecule) Cleanup() (*Molecule, error) {
	return m.copyThen((*Molecule).CleanupInPlace)
}

// Normalize is the copying form of NormalizeInPlace.
func (m *Molecule) Normalize() (*Molecule, error) {
	return m.copyThen((*Molecule).NormalizeInPlace)
}

// Neutralize is the copying form of NeutralizeInPlace.
func (m *Molecule) Neutralize() (*Molecule, error) {
	return m.copyThen((*Molecule).NeutralizeInPlace)
}

// Reionize is the copying form of ReionizeInPlace.
func (m *Molecule) Reionize() (*Molecule, error) {
	return m.copyThen((*Molecule).ReionizeInPlace)
}

// CanonicalTautomer is the copying form of CanonicalTautomerInPlace.
func (m *Molecule) CanonicalTautomer() (*Molecule, error) {
	return m.copyThen((*Molecule).CanonicalTautomerInPlace)
}

// ChargeParent is the copying form of ChargeParentInPlace.
func (m *Molecule) ChargeParent() (*Molecule, error) {
	return m.copyThen((*Molecule).ChargeParentInPlace)
}

// FragmentParent is the copying form of FragmentParentInPlace.
func (m *Molecule) FragmentParent() (*Molecule, error) {
	return m.copyThen((*Molecule).FragmentParentInPlace)
}

// AddHs returns a copy of m with explicit hydrogens.
func (m *Molecule) AddHs() (*Molecule, error) {
	return m.copyThen((*Molecule).AddHsInPlace)
}

// RemoveHs returns a copy of m without explicit hydrogens.
func (m *Molecule) RemoveHs() (*Molecule, error) {
	return m.copyThen((*Molecule).RemoveHsInPlace)
}

func (m *Molecule) applyInPlace(step Step) error {
	var err error
	switch step {
	case StepCleanup:
		_, err = m.CleanupInPlace()
	case StepNormalize:
		_, err = m.NormalizeInPlace()
	case StepNeutralize:
		_, err = m.NeutralizeInPlace()
	case StepReionize:
		_, err = m.ReionizeInPlace()
	case StepCanonicalTautomer:
		_, err = m.CanonicalTautomerInPlace()
	case StepChargeParent:
		_, err = m.ChargeParentInPlace()
	case StepFragmentParent:
		_, err = m.FragmentParentInPlace()
	case StepAddHs:
		_, err = m.AddHsInPlace()
	case StepRemoveHs:
		_, err = m.RemoveHsInPlace()
	default:
		err = errInvalidArgument(fmt.Sprintf("unknown standardization step %q", string(step)))
	}
	return err
}

// StandardizeInPlace applies steps in order and stops at the first failure.
// Steps already applied stay applied.
func (m *Molecule) StandardizeInPlace(steps ...Step) (*Molecule, error) {
	for _, s := range steps {
		if err := m.applyInPlace(s); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Standardize applies steps to a copy of m.
func (m *Molecule) Standardize(steps ...Step) (*Molecule, error) {
	for _, s := range steps {
		if _, err := ParseStep(string(s)); err != nil {
			return nil, err
		}
	}
	return m.copyThen(func(dup *Molecule) (*Molecule, error) {
		return dup.StandardizeInPlace(steps...)
	})
}

//Personal.AI order the ending
