package rdkit

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"
	"unsafe"
)

// Kind tells Molecules and Reactions apart where either may be passed.
type Kind int

const (
	KindMolecule Kind = iota + 1
	KindReaction
)

func (k Kind) String() string {
	switch k {
	case KindMolecule:
		return "molecule"
	case KindReaction:
		return "reaction"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Entity is anything backed by a native pickle.
type Entity interface {
	Kind() Kind
	Close() error
}

// Molecule owns one native molecule pickle.
//
// Read-only methods may run concurrently.  Mutating methods (the *InPlace
// family, AddHsInPlace, Set2DCoords, ...) take an exclusive lock, so a
// Molecule is never mutated from two goroutines at once.
type Molecule struct {
	h     *Handle
	mu    sync.RWMutex
	buf   buffer
	query bool
}

var _ Entity = (*Molecule)(nil)

func (h *Handle) newMolecule(b buffer, query bool) *Molecule {
	m := &Molecule{h: h, buf: b, query: query}
	h.trackFinalizer(m, (*Molecule).finalize)
	return m
}

func (m *Molecule) finalize() { _ = m.Close() }

// Kind reports KindMolecule.
func (m *Molecule) Kind() Kind { return KindMolecule }

// IsQuery reports whether m was parsed as a SMARTS query.
func (m *Molecule) IsQuery() bool { return m.query }

// Close releases the native pickle.  It is safe to call more than once.
func (m *Molecule) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.h.release(&m.buf)
	return nil
}

// Released reports whether Close has run.
func (m *Molecule) Released() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.buf.empty()
}

type parseConfig struct {
	sanitize bool
	kekulize bool
	removeHs bool
}

// ParseOption adjusts MolFromSMILES.
type ParseOption func(*parseConfig)

// WithSanitize controls valence checks and aromaticity perception.
func WithSanitize(v bool) ParseOption { return func(c *parseConfig) { c.sanitize = v } }

// WithKekulize controls whether aromatic bonds are kekulized after parsing.
func WithKekulize(v bool) ParseOption { return func(c *parseConfig) { c.kekulize = v } }

// WithRemoveHs controls whether explicit hydrogens in the input are turned
// into implicit ones.
func WithRemoveHs(v bool) ParseOption { return func(c *parseConfig) { c.removeHs = v } }

// MolFromSMILES parses a SMILES string.  Sanitization, kekulization and
// hydrogen removal are on unless switched off.
func (h *Handle) MolFromSMILES(text string, opts ...ParseOption) (*Molecule, error) {
	cfg := parseConfig{sanitize: true, kekulize: true, removeHs: true}
	for _, o := range opts {
		o(&cfg)
	}
	details := NewDetails().
		WithBool("sanitize", cfg.sanitize).
		WithBool("kekulize", cfg.kekulize).
		WithBool("removeHs", cfg.removeHs).
		Encode()
	b, err := h.construct("get_mol", func(size *uintptr) uintptr {
		return h.lib.GetMol(text, size, details)
	})
	if err != nil {
		return nil, err
	}
	return h.newMolecule(b, false), nil
}

// MolFromSMARTS parses a SMARTS query for use as a Match pattern.
func (h *Handle) MolFromSMARTS(text string) (*Molecule, error) {
	b, err := h.construct("get_qmol", func(size *uintptr) uintptr {
		return h.lib.GetQMol(text, size, "{}")
	})
	if err != nil {
		return nil, err
	}
	return h.newMolecule(b, true), nil
}

// withPickle runs fn under the read lock with the current pickle.
func (m *Molecule) withPickle(fn func(ptr, size uintptr) error) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.buf.empty() {
		return errReleased("molecule")
	}
	return fn(m.buf.ptr, m.buf.size)
}

// readString calls a pickle reader that returns a C string.
func (m *Molecule) readString(fn string, call func(ptr, size uintptr) uintptr) (string, error) {
	var out string
	err := m.withPickle(func(ptr, size uintptr) error {
		s, err := m.h.callString(fn, func() uintptr { return call(ptr, size) })
		out = s
		return err
	})
	return out, err
}

// mutate runs a status-returning call on the pickle.  The new pointer and
// size are committed only when the call reports success.
func (m *Molecule) mutate(fn string, call func(ptr, size *uintptr) int16) (err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.buf.empty() {
		return errReleased("molecule")
	}
	start := time.Now()
	defer func() { m.h.observe(fn, start, err) }()

	ptr, size := m.buf.ptr, m.buf.size
	if err := checkStatus(fn, call(&ptr, &size)); err != nil {
		return err
	}
	if ptr == 0 || size == 0 {
		// The library retired the old pickle and gave nothing back.
		m.h.forget(&m.buf)
		return errBadPointer(fn)
	}
	m.h.replace(&m.buf, ptr, size)
	return nil
}

type matchConfig struct {
	useChirality bool
	maxMatches   int
}

// MatchOption adjusts Match.
type MatchOption func(*matchConfig)

// WithUseChirality makes matching respect stereochemistry.  It is on
// unless set to false.
func WithUseChirality(v bool) MatchOption { return func(c *matchConfig) { c.useChirality = v } }

// WithMaxMatches caps the number of matches.  n <= 0 means unbounded.
func WithMaxMatches(n int) MatchOption { return func(c *matchConfig) { c.maxMatches = n } }

// Match returns the atom indices of m matched by each occurrence of
// pattern, in the order RDKit enumerates them.  It returns nil when there
// is no match.  pattern must be a *Molecule.
func (m *Molecule) Match(pattern Entity, opts ...MatchOption) ([][]int, error) {
	p, ok := pattern.(*Molecule)
	if !ok || p == nil {
		return nil, errTypeMismatch(pattern)
	}
	cfg := matchConfig{useChirality: true}
	for _, o := range opts {
		o(&cfg)
	}
	details := NewDetails().WithBool("useChirality", cfg.useChirality)
	if cfg.maxMatches > 0 {
		details = details.WithInt("maxMatches", cfg.maxMatches)
	}
	enc := details.Encode()

	unlock, err := rlockPair(m, p)
	if err != nil {
		return nil, err
	}
	defer unlock()
	raw, err := m.h.callString("get_substruct_matches", func() uintptr {
		return m.h.lib.GetSubstructMatches(m.buf.ptr, m.buf.size, p.buf.ptr, p.buf.size, enc)
	})
	if err != nil {
		return nil, err
	}
	return decodeMatches(raw)
}

// HasMatch reports whether pattern occurs in m at least once.
func (m *Molecule) HasMatch(pattern Entity, opts ...MatchOption) (bool, error) {
	matches, err := m.Match(pattern, append(append([]MatchOption(nil), opts...), WithMaxMatches(1))...)
	return matches != nil, err
}

// rlockPair read-locks a and b in address order and checks both are live.
func rlockPair(a, b *Molecule) (func(), error) {
	first, second := a, b
	if uintptr(unsafe.Pointer(b)) < uintptr(unsafe.Pointer(a)) {
		first, second = b, a
	}
	first.mu.RLock()
	if second != first {
		second.mu.RLock()
	}
	unlock := func() {
		if second != first {
			second.mu.RUnlock()
		}
		first.mu.RUnlock()
	}
	if a.buf.empty() || b.buf.empty() {
		unlock()
		return nil, errReleased("molecule")
	}
	return unlock, nil
}

type substructMatch struct {
	Atoms []int `json:"atoms"`
}

// decodeMatches reads the native match list.  RDKit answers "{}" rather than
// "[]" when nothing matches.
func decodeMatches(raw string) ([][]int, error) {
	var list []substructMatch
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		var obj map[string]interface{}
		if json.Unmarshal([]byte(raw), &obj) == nil {
			return nil, nil
		}
		return nil, errBadPointer("get_substruct_matches").WithCause(err)
	}
	if len(list) == 0 {
		return nil, nil
	}
	out := make([][]int, len(list))
	for i, match := range list {
		atoms := match.Atoms
		if atoms == nil {
			atoms = []int{}
		}
		out[i] = atoms
	}
	return out, nil
}

// Clone duplicates m by re-parsing its SMILES with sanitization,
// kekulization and hydrogen removal switched off.  A query molecule is
// re-parsed from its SMARTS instead, since SMILES would drop its query
// features.
func (m *Molecule) Clone() (*Molecule, error) {
	if m.query {
		smarts, err := m.SMARTS()
		if err != nil {
			return nil, err
		}
		return m.h.MolFromSMARTS(smarts)
	}
	smiles, err := m.SMILES()
	if err != nil {
		return nil, err
	}
	return m.h.MolFromSMILES(smiles, WithSanitize(false), WithKekulize(false), WithRemoveHs(false))
}

// String renders m as Molecule(<smiles>) for logs.
func (m *Molecule) String() string {
	smiles, err := m.SMILES()
	if err != nil {
		return "Molecule(<" + err.Error() + ">)"
	}
	return "Molecule(" + smiles + ")"
}

//Personal.AI order the ending
