package rdkit

import "time"

// HasCoords returns 0 when m has no conformer, otherwise 2 or 3.
func (m *Molecule) HasCoords() (int, error) {
	var dim int16
	err := m.withPickle(func(ptr, size uintptr) error {
		start := time.Now()
		dim = m.h.lib.HasCoords(ptr, size)
		m.h.observe("has_coords", start, nil)
		return nil
	})
	return int(dim), err
}

// Set2DCoords computes a 2D layout in place, with Coordgen when the handle
// prefers it.
func (m *Molecule) Set2DCoords() error {
	return m.mutate("set_2d_coords", m.h.lib.Set2DCoords)
}

// Set3DCoords embeds m in 3D in place.  params is passed through to the
// embedder (randomSeed, maxIterations, ...).
func (m *Molecule) Set3DCoords(params Details) error {
	enc := params.Encode()
	return m.mutate("set_3d_coords", func(ptr, size *uintptr) int16 {
		return m.h.lib.Set3DCoords(ptr, size, enc)
	})
}

//Personal.AI order the ending
