package rdkit

import (
	"encoding/json"
	"fmt"
)

// Default depiction size in pixels.
const (
	DefaultSVGWidth  = 250
	DefaultSVGHeight = 200
)

// SMILES returns the canonical SMILES of m.
func (m *Molecule) SMILES() (string, error) {
	return m.readString("get_smiles", func(ptr, size uintptr) uintptr {
		return m.h.lib.GetSmiles(ptr, size, "{}")
	})
}

// SMARTS returns m written as SMARTS.
func (m *Molecule) SMARTS() (string, error) {
	return m.readString("get_smarts", func(ptr, size uintptr) uintptr {
		return m.h.lib.GetSmarts(ptr, size, "{}")
	})
}

// CXSMILES returns canonical SMILES with ChemAxon extensions.
func (m *Molecule) CXSMILES() (string, error) {
	return m.readString("get_cxsmiles", func(ptr, size uintptr) uintptr {
		return m.h.lib.GetCXSmiles(ptr, size, "{}")
	})
}

// CXSMARTS returns SMARTS with ChemAxon extensions.
func (m *Molecule) CXSMARTS() (string, error) {
	return m.readString("get_cxsmarts", func(ptr, size uintptr) uintptr {
		return m.h.lib.GetCXSmarts(ptr, size, "{}")
	})
}

// JSON returns the commonchem/rdkitjson document for m.
func (m *Molecule) JSON() (string, error) {
	return m.readString("get_json", func(ptr, size uintptr) uintptr {
		return m.h.lib.GetJSON(ptr, size, "{}")
	})
}

// Molblock returns a V2000 MDL mol block.
func (m *Molecule) Molblock() (string, error) {
	return m.readString("get_molblock", func(ptr, size uintptr) uintptr {
		return m.h.lib.GetMolblock(ptr, size, "{}")
	})
}

// V3KMolblock returns a V3000 MDL mol block.
func (m *Molecule) V3KMolblock() (string, error) {
	return m.readString("get_v3kmolblock", func(ptr, size uintptr) uintptr {
		return m.h.lib.GetV3KMolblock(ptr, size, "{}")
	})
}

func svgDetails(width, height int) (string, error) {
	if width < 0 || height < 0 {
		return "", errInvalidArgument("width and height must not be negative")
	}
	if width == 0 {
		width = DefaultSVGWidth
	}
	if height == 0 {
		height = DefaultSVGHeight
	}
	return NewDetails().WithInt("width", width).WithInt("height", height).Encode(), nil
}

// SVG depicts m.  A zero width or height selects the default size.
func (m *Molecule) SVG(width, height int) (string, error) {
	details, err := svgDetails(width, height)
	if err != nil {
		return "", err
	}
	return m.readString("get_svg", func(ptr, size uintptr) uintptr {
		return m.h.lib.GetSVG(ptr, size, details)
	})
}

// Descriptors returns RDKit's standard descriptor set keyed by name.
func (m *Molecule) Descriptors() (map[string]float64, error) {
	raw, err := m.readString("get_descriptors", func(ptr, size uintptr) uintptr {
		return m.h.lib.GetDescriptors(ptr, size)
	})
	if err != nil {
		return nil, err
	}
	out := make(map[string]float64)
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, errBadPointer("get_descriptors").WithCause(err)
	}
	return out, nil
}

// NumAtoms counts atoms.  With onlyExplicit the count is summed over every
// molecule of the JSON graph; otherwise implicit hydrogens are included.
func (m *Molecule) NumAtoms(onlyExplicit bool) (int, error) {
	if !onlyExplicit {
		return m.descriptorInt("NumAtoms")
	}
	raw, err := m.JSON()
	if err != nil {
		return 0, err
	}
	var doc struct {
		Molecules []struct {
			Atoms []json.RawMessage `json:"atoms"`
		} `json:"molecules"`
	}
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return 0, errBadPointer("get_json").WithCause(err)
	}
	n := 0
	for _, mol := range doc.Molecules {
		n += len(mol.Atoms)
	}
	return n, nil
}

// NumHeavyAtoms counts non-hydrogen atoms.
func (m *Molecule) NumHeavyAtoms() (int, error) {
	return m.descriptorInt("NumHeavyAtoms")
}

func (m *Molecule) descriptorInt(name string) (int, error) {
	d, err := m.Descriptors()
	if err != nil {
		return 0, err
	}
	v, ok := d[name]
	if !ok {
		return 0, errBadPointer("get_descriptors").WithDetail(fmt.Sprintf("descriptor %s missing", name))
	}
	return int(v), nil
}

//Personal.AI order the ending
