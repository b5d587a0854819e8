package rdkit

import "time"

type fragmentConfig struct {
	sanitize bool
}

// FragmentOption adjusts Fragments.
type FragmentOption func(*fragmentConfig)

// WithSanitizeFragments controls sanitization of each fragment.  Default true.
func WithSanitizeFragments(v bool) FragmentOption {
	return func(c *fragmentConfig) { c.sanitize = v }
}

// Fragments splits m into its connected components, in the order RDKit
// discovers them.  Each fragment is an independent Molecule the caller must
// Close.  A molecule with no atoms yields an empty slice.
func (m *Molecule) Fragments(opts ...FragmentOption) ([]*Molecule, error) {
	cfg := fragmentConfig{sanitize: true}
	for _, o := range opts {
		o(&cfg)
	}
	details := NewDetails().WithBool("sanitizeFrags", cfg.sanitize).Encode()

	var frags []*Molecule
	err := m.withPickle(func(ptr, size uintptr) (err error) {
		start := time.Now()
		defer func() { m.h.observe("get_mol_frags", start, err) }()
		frags, err = m.h.unmarshalFragments(func(sizes, count *uintptr) uintptr {
			return m.h.lib.GetMolFrags(ptr, size, sizes, count, details, nil)
		})
		return err
	})
	return frags, err
}

// unmarshalFragments adopts every pickle of a char**/size_t* pair and frees
// both outer arrays on every path.  If any pickle is null the fragments
// adopted so far are closed, the rest freed, and a bad pointer error
// returned.
func (h *Handle) unmarshalFragments(call func(sizes, count *uintptr) uintptr) ([]*Molecule, error) {
	var sizes, count uintptr
	arr := call(&sizes, &count)
	defer h.free(sizes)
	if arr == 0 {
		return nil, errBadPointer("get_mol_frags")
	}
	defer h.free(arr)

	n := int(count)
	frags := make([]*Molecule, 0, n)
	for i := 0; i < n; i++ {
		p := h.lib.PtrAt(arr, i)
		if p == 0 {
			for _, f := range frags {
				_ = f.Close()
			}
			for j := i + 1; j < n; j++ {
				h.free(h.lib.PtrAt(arr, j))
			}
			return nil, errBadPointer("get_mol_frags")
		}
		frags = append(frags, h.newMolecule(h.adopt(p, h.lib.SizeAt(sizes, i)), false))
	}
	return frags, nil
}

//Personal.AI order the ending
