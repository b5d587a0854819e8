package rdkit

import (
	"fmt"
	"strings"
)

// FingerprintKind names a fingerprint family.
type FingerprintKind string

const (
	FingerprintRDKit              FingerprintKind = "rdkit"
	FingerprintMorgan             FingerprintKind = "morgan"
	FingerprintPattern            FingerprintKind = "pattern"
	FingerprintTopologicalTorsion FingerprintKind = "topological_torsion"
	FingerprintAtomPair           FingerprintKind = "atom_pair"
	FingerprintMACCS              FingerprintKind = "maccs"
)

// FingerprintKinds lists every supported family.
var FingerprintKinds = []FingerprintKind{
	FingerprintRDKit, FingerprintMorgan, FingerprintPattern,
	FingerprintTopologicalTorsion, FingerprintAtomPair, FingerprintMACCS,
}

// ParseFingerprintKind accepts a family name, case-insensitive, with '-' or
// '_' separators.
func ParseFingerprintKind(name string) (FingerprintKind, error) {
	k := FingerprintKind(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_"))
	for _, known := range FingerprintKinds {
		if k == known {
			return k, nil
		}
	}
	return "", errInvalidArgument(fmt.Sprintf("unknown fingerprint kind %q", name))
}

// MACCSLength is the number of usable MACCS keys; bit 0 of the native
// string is reserved and dropped.
const MACCSLength = 166

// DefaultFingerprintLength is the bit length used when none is given.
const DefaultFingerprintLength = 2048

// FingerprintOptions is implemented by the option struct of each family.
type FingerprintOptions interface {
	Kind() FingerprintKind
	validate() error
	details() Details
}

func validateLength(n int) error {
	if n < 1 {
		return errInvalidArgument("length must be greater than 0")
	}
	return nil
}

// RDKitFPOptions configures path-based RDKit fingerprints.
type RDKitFPOptions struct {
	MinPath       int
	MaxPath       int
	Length        int
	BitsPerHash   int
	UseHs         bool
	BranchedPaths bool
	UseBondOrder  bool
}

// DefaultRDKitFPOptions mirrors the library defaults: paths of 1 to 7 bonds,
// two bits per hash.
func DefaultRDKitFPOptions() RDKitFPOptions {
	return RDKitFPOptions{
		MinPath: 1, MaxPath: 7, Length: DefaultFingerprintLength, BitsPerHash: 2,
		UseHs: true, BranchedPaths: true, UseBondOrder: true,
	}
}

func (RDKitFPOptions) Kind() FingerprintKind { return FingerprintRDKit }
func (o RDKitFPOptions) validate() error     { return validateLength(o.Length) }
func (o RDKitFPOptions) details() Details {
	return NewDetails().
		WithInt("minPath", o.MinPath).
		WithInt("maxPath", o.MaxPath).
		WithInt("nBits", o.Length).
		WithInt("nBitsPerHash", o.BitsPerHash).
		WithBool("useHs", o.UseHs).
		WithBool("branchedPaths", o.BranchedPaths).
		WithBool("useBondOrder", o.UseBondOrder)
}

// MorganOptions configures circular fingerprints.
type MorganOptions struct {
	Radius       int
	Length       int
	UseChirality bool
	UseBondTypes bool
}

// DefaultMorganOptions uses radius 3 with bond types and without chirality.
func DefaultMorganOptions() MorganOptions {
	return MorganOptions{Radius: 3, Length: DefaultFingerprintLength, UseBondTypes: true}
}

func (MorganOptions) Kind() FingerprintKind { return FingerprintMorgan }

func (o MorganOptions) validate() error {
	if o.Radius < 1 {
		return errInvalidArgument("radius must be greater than 0")
	}
	return validateLength(o.Length)
}

func (o MorganOptions) details() Details {
	return NewDetails().
		WithInt("radius", o.Radius).
		WithInt("nBits", o.Length).
		WithBool("useChirality", o.UseChirality).
		WithBool("useBondTypes", o.UseBondTypes)
}

// PatternOptions configures the substructure-screening pattern fingerprint.
type PatternOptions struct {
	Length     int
	Tautomeric bool
}

// DefaultPatternOptions returns a non-tautomeric pattern fingerprint of
// DefaultFingerprintLength bits.
func DefaultPatternOptions() PatternOptions {
	return PatternOptions{Length: DefaultFingerprintLength}
}

func (PatternOptions) Kind() FingerprintKind { return FingerprintPattern }
func (o PatternOptions) validate() error     { return validateLength(o.Length) }
func (o PatternOptions) details() Details {
	return NewDetails().
		WithInt("nBits", o.Length).
		WithBool("tautomericFingerprint", o.Tautomeric)
}

// TopologicalTorsionOptions configures topological torsion fingerprints.
type TopologicalTorsionOptions struct {
	Length int
}

// DefaultTopologicalTorsionOptions returns DefaultFingerprintLength bits.
func DefaultTopologicalTorsionOptions() TopologicalTorsionOptions {
	return TopologicalTorsionOptions{Length: DefaultFingerprintLength}
}

func (TopologicalTorsionOptions) Kind() FingerprintKind { return FingerprintTopologicalTorsion }
func (o TopologicalTorsionOptions) validate() error     { return validateLength(o.Length) }
func (o TopologicalTorsionOptions) details() Details {
	return NewDetails().WithInt("nBits", o.Length)
}

// AtomPairOptions configures atom-pair fingerprints; MinLength and
// MaxLength bound the topological distance between paired atoms.
type AtomPairOptions struct {
	Length    int
	MinLength int
	MaxLength int
}

// DefaultAtomPairOptions pairs atoms 1 to 30 bonds apart.
func DefaultAtomPairOptions() AtomPairOptions {
	return AtomPairOptions{Length: DefaultFingerprintLength, MinLength: 1, MaxLength: 30}
}

func (AtomPairOptions) Kind() FingerprintKind { return FingerprintAtomPair }
func (o AtomPairOptions) validate() error     { return validateLength(o.Length) }
func (o AtomPairOptions) details() Details {
	return NewDetails().
		WithInt("nBits", o.Length).
		WithInt("minLength", o.MinLength).
		WithInt("maxLength", o.MaxLength)
}

// MACCSOptions selects the 166 MACCS structural keys; it has no parameters.
type MACCSOptions struct{}

func (MACCSOptions) Kind() FingerprintKind { return FingerprintMACCS }
func (MACCSOptions) validate() error       { return nil }
func (MACCSOptions) details() Details      { return NewDetails() }

// DefaultFingerprintOptions returns default options for kind, overriding
// the length and, for Morgan, the radius when they are non-zero.
func DefaultFingerprintOptions(kind FingerprintKind, length, radius int) (FingerprintOptions, error) {
	pick := func(def int) int {
		if length != 0 {
			return length
		}
		return def
	}
	switch kind {
	case FingerprintRDKit:
		o := DefaultRDKitFPOptions()
		o.Length = pick(o.Length)
		return o, nil
	case FingerprintMorgan:
		o := DefaultMorganOptions()
		o.Length = pick(o.Length)
		if radius != 0 {
			o.Radius = radius
		}
		return o, nil
	case FingerprintPattern:
		o := DefaultPatternOptions()
		o.Length = pick(o.Length)
		return o, nil
	case FingerprintTopologicalTorsion:
		o := DefaultTopologicalTorsionOptions()
		o.Length = pick(o.Length)
		return o, nil
	case FingerprintAtomPair:
		o := DefaultAtomPairOptions()
		o.Length = pick(o.Length)
		return o, nil
	case FingerprintMACCS:
		return MACCSOptions{}, nil
	default:
		return nil, errInvalidArgument(fmt.Sprintf("unknown fingerprint kind %q", string(kind)))
	}
}

type fpEntry struct {
	name      string
	bytesName string
	text      func(*Handle, uintptr, uintptr, string) uintptr
	bytes     func(*Handle, uintptr, uintptr, *uintptr, string) uintptr
}

var fpEntries = map[FingerprintKind]fpEntry{
	FingerprintRDKit: {
		"get_rdkit_fp", "get_rdkit_fp_as_bytes",
		func(h *Handle, p, s uintptr, d string) uintptr { return h.lib.GetRDKitFP(p, s, d) },
		func(h *Handle, p, s uintptr, n *uintptr, d string) uintptr {
			return h.lib.GetRDKitFPAsBytes(p, s, n, d)
		},
	},
	FingerprintMorgan: {
		"get_morgan_fp", "get_morgan_fp_as_bytes",
		func(h *Handle, p, s uintptr, d string) uintptr { return h.lib.GetMorganFP(p, s, d) },
		func(h *Handle, p, s uintptr, n *uintptr, d string) uintptr {
			return h.lib.GetMorganFPAsBytes(p, s, n, d)
		},
	},
	FingerprintPattern: {
		"get_pattern_fp", "get_pattern_fp_as_bytes",
		func(h *Handle, p, s uintptr, d string) uintptr { return h.lib.GetPatternFP(p, s, d) },
		func(h *Handle, p, s uintptr, n *uintptr, d string) uintptr {
			return h.lib.GetPatternFPAsBytes(p, s, n, d)
		},
	},
	FingerprintTopologicalTorsion: {
		"get_topological_torsion_fp", "get_topological_torsion_fp_as_bytes",
		func(h *Handle, p, s uintptr, d string) uintptr { return h.lib.GetTopologicalTorsionFP(p, s, d) },
		func(h *Handle, p, s uintptr, n *uintptr, d string) uintptr {
			return h.lib.GetTopologicalTorsionFPAsBytes(p, s, n, d)
		},
	},
	FingerprintAtomPair: {
		"get_atom_pair_fp", "get_atom_pair_fp_as_bytes",
		func(h *Handle, p, s uintptr, d string) uintptr { return h.lib.GetAtomPairFP(p, s, d) },
		func(h *Handle, p, s uintptr, n *uintptr, d string) uintptr {
			return h.lib.GetAtomPairFPAsBytes(p, s, n, d)
		},
	},
	FingerprintMACCS: {
		"get_maccs_fp", "get_maccs_fp_as_bytes",
		func(h *Handle, p, s uintptr, _ string) uintptr { return h.lib.GetMACCSFP(p, s) },
		func(h *Handle, p, s uintptr, n *uintptr, _ string) uintptr { return h.lib.GetMACCSFPAsBytes(p, s, n) },
	},
}

func lookupFingerprint(opts FingerprintOptions) (fpEntry, string, error) {
	if opts == nil {
		return fpEntry{}, "", errInvalidArgument("fingerprint options are required")
	}
	e, ok := fpEntries[opts.Kind()]
	if !ok {
		return fpEntry{}, "", errInvalidArgument(fmt.Sprintf("unknown fingerprint kind %q", string(opts.Kind())))
	}
	if err := opts.validate(); err != nil {
		return fpEntry{}, "", err
	}
	return e, opts.details().Encode(), nil
}

// Fingerprint returns the fingerprint as a string of '0' and '1' whose
// length equals the requested bit length (166 for MACCS).  Options are
// validated before any native call.
func (m *Molecule) Fingerprint(opts FingerprintOptions) (string, error) {
	e, details, err := lookupFingerprint(opts)
	if err != nil {
		return "", err
	}
	bits, err := m.readString(e.name, func(ptr, size uintptr) uintptr {
		return e.text(m.h, ptr, size, details)
	})
	if err != nil {
		return "", err
	}
	if opts.Kind() == FingerprintMACCS && len(bits) > 0 {
		bits = bits[1:]
	}
	return bits, nil
}

// FingerprintBytes returns the packed native representation, bit i of the
// fingerprint at byte i/8, bit i%8.  MACCS keeps its reserved bit 0.
func (m *Molecule) FingerprintBytes(opts FingerprintOptions) ([]byte, error) {
	e, details, err := lookupFingerprint(opts)
	if err != nil {
		return nil, err
	}
	var out []byte
	err = m.withPickle(func(ptr, size uintptr) error {
		b, err := m.h.callBytes(e.bytesName, func(n *uintptr) uintptr {
			return e.bytes(m.h, ptr, size, n, details)
		})
		out = b
		return err
	})
	return out, err
}

// RDKitFingerprint is Fingerprint with RDKitFPOptions.
func (m *Molecule) RDKitFingerprint(opts RDKitFPOptions) (string, error) {
	return m.Fingerprint(opts)
}

// MorganFingerprint is Fingerprint with MorganOptions.
func (m *Molecule) MorganFingerprint(opts MorganOptions) (string, error) {
	return m.Fingerprint(opts)
}

// PatternFingerprint is Fingerprint with PatternOptions.
func (m *Molecule) PatternFingerprint(opts PatternOptions) (string, error) {
	return m.Fingerprint(opts)
}

// TopologicalTorsionFingerprint is Fingerprint with TopologicalTorsionOptions.
func (m *Molecule) TopologicalTorsionFingerprint(opts TopologicalTorsionOptions) (string, error) {
	return m.Fingerprint(opts)
}

// AtomPairFingerprint is Fingerprint with AtomPairOptions.
func (m *Molecule) AtomPairFingerprint(opts AtomPairOptions) (string, error) {
	return m.Fingerprint(opts)
}

// MACCSFingerprint returns the MACCSLength keys with the reserved bit dropped.
func (m *Molecule) MACCSFingerprint() (string, error) {
	return m.Fingerprint(MACCSOptions{})
}

//Personal.AI order the ending
