package testutil

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"
	"sync"

	"github.com/turtacn/rdkit-go/internal/infrastructure/native"
)

// FakeVersion is the version string reported by FakeRDKit.
const FakeVersion = "2024.03.5"

// FakeRDKit is an in-memory stand-in for librdkitcffi.  It follows the
// native ownership rules exactly: every returned pointer comes from Heap,
// mutating calls retire the old pickle and hand back a new one, and the
// fragment call returns caller-owned outer arrays.  Chemistry comes from
// small fixture tables; unknown inputs round-trip unchanged.
type FakeRDKit struct {
	Heap *FakeHeap

	mu             sync.Mutex
	calls          map[string]int
	nulls          map[string]bool
	zeroSize       map[string]bool
	statuses       map[string]int16
	nullFragmentAt int
	logging        bool
	logs           map[uintptr]*strings.Builder
	coordgen       int16
	legacyStereo   int16
	nonTetrahedral int16
}

// NewFakeRDKit returns a fake with an empty heap and no injected failures.
func NewFakeRDKit() *FakeRDKit {
	return &FakeRDKit{
		Heap:           NewFakeHeap(),
		calls:          make(map[string]int),
		nulls:          make(map[string]bool),
		zeroSize:       make(map[string]bool),
		statuses:       make(map[string]int16),
		nullFragmentAt: -1,
		logs:           make(map[uintptr]*strings.Builder),
		legacyStereo:   1,
	}
}

// ── failure injection ────────────────────────────────────────────────────────

// FailWithNull makes the named pointer-returning function return 0.
func (f *FakeRDKit) FailWithNull(fn string) {
	f.mu.Lock()
	f.nulls[fn] = true
	f.mu.Unlock()
}

// FailWithStatus makes the named status-returning function return status.
func (f *FakeRDKit) FailWithStatus(fn string, status int16) {
	f.mu.Lock()
	f.statuses[fn] = status
	f.mu.Unlock()
}

// ReturnZeroSize makes the named constructor succeed with a 0-byte pickle.
func (f *FakeRDKit) ReturnZeroSize(fn string) {
	f.mu.Lock()
	f.zeroSize[fn] = true
	f.mu.Unlock()
}

// NullFragmentAt makes get_mol_frags report a null pickle at index i.
func (f *FakeRDKit) NullFragmentAt(i int) {
	f.mu.Lock()
	f.nullFragmentAt = i
	f.mu.Unlock()
}

// Calls returns how many times the named native function ran.
func (f *FakeRDKit) Calls(fn string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[fn]
}

// TotalCalls returns the number of native calls of any kind.
func (f *FakeRDKit) TotalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

// LoggingEnabled reports the enable_logging/disable_logging switch.
func (f *FakeRDKit) LoggingEnabled() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.logging
}

// CoordgenPreferred reports the last prefer_coordgen value.
func (f *FakeRDKit) CoordgenPreferred() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.coordgen != 0
}

func (f *FakeRDKit) record(fn string) {
	f.mu.Lock()
	f.calls[fn]++
	f.mu.Unlock()
}

func (f *FakeRDKit) shouldNull(fn string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.nulls[fn]
}

func (f *FakeRDKit) injectedStatus(fn string) (int16, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.statuses[fn]
	return s, ok
}

func (f *FakeRDKit) logf(format string, args ...interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.logging {
		return
	}
	for _, b := range f.logs {
		fmt.Fprintf(b, "[00:00:00] "+format+"\n", args...)
	}
}

// ── pickles ──────────────────────────────────────────────────────────────────

type fakePickle struct {
	kind   string
	coords int
	text   string
}

const pickleSep = "\x1f"

func (p fakePickle) encode() []byte {
	return []byte(p.kind + pickleSep + strconv.Itoa(p.coords) + pickleSep + p.text)
}

func (f *FakeRDKit) allocPickle(p fakePickle) (uintptr, uintptr) {
	b := p.encode()
	return f.Heap.AllocBytes(b), uintptr(len(b))
}

func (f *FakeRDKit) readPickle(ptr, sz uintptr) (fakePickle, bool) {
	raw := f.Heap.Bytes(ptr, sz)
	parts := strings.SplitN(string(raw), pickleSep, 3)
	if len(parts) != 3 {
		return fakePickle{}, false
	}
	coords, err := strconv.Atoi(parts[1])
	if err != nil {
		return fakePickle{}, false
	}
	return fakePickle{kind: parts[0], coords: coords, text: parts[2]}, true
}

func parseDetails(details string) (map[string]interface{}, bool) {
	out := map[string]interface{}{}
	if details == "" {
		return out, true
	}
	if err := json.Unmarshal([]byte(details), &out); err != nil {
		return nil, false
	}
	return out, true
}

func detailBool(d map[string]interface{}, key string, def bool) bool {
	if v, ok := d[key].(bool); ok {
		return v
	}
	return def
}

func detailInt(d map[string]interface{}, key string, def int) int {
	if v, ok := d[key].(float64); ok {
		return int(v)
	}
	return def
}

// ── fixtures ─────────────────────────────────────────────────────────────────

const explicitEthanol = "[H]OC([H])([H])C([H])([H])[H]"

var fakeCanonical = map[string]string{
	"n1ccccc1":             "c1ccncc1",
	"OCCCN":                "NCCCO",
	"N(C)(C)(C)C":          "CN(C)(C)C",
	"C1=CC=CC=C1OC":        "COc1ccccc1",
	"[O-]c1cc(C(=O)O)ccc1": "O=C(O)c1cccc([O-])c1",
	"OC(O)C(=N)CO":         "N=C(CO)C(O)O",
	"[Pt]CCN(=O)=O":        "O=N(=O)CC[Pt]",
	"OCC":                  "CCO",
}

var fakeTransforms = map[string]map[string]string{
	"add_hs":             {"CCO": explicitEthanol},
	"remove_all_hs":      {explicitEthanol: "CCO"},
	"cleanup":            {"O=N(=O)CC[Pt]": "[CH2-]C[N+](=O)[O-].[Pt+]"},
	"normalize":          {"[CH2-]CN(=O)=O": "[CH2-]C[N+](=O)[O-]"},
	"neutralize":         {"[CH2-]CN(=O)=O": "CCN(=O)=O"},
	"reionize":           {"O=C(O)c1cccc([O-])c1": "O=C([O-])c1cccc(O)c1"},
	"canonical_tautomer": {"N=C(CO)C(O)O": "NC(CO)C(=O)O"},
	"charge_parent":      {"O=N(=O)CC[Pt]": "CC[N+](=O)[O-]"},
	"fragment_parent":    {"O=N(=O)CC[Pt]": "[CH2-]C[N+](=O)[O-]"},
}

var fakeSmarts = map[string]string{
	"Cc1ccccc1": "[#6]-[#6]1:[#6]:[#6]:[#6]:[#6]:[#6]:1",
	"CCO":       "[#6]-[#6]-[#8]",
}

// fakeMatches is keyed by "<target>|<query kind>:<query text>".
var fakeMatches = map[string][][]int{
	"c1ccccc1O|qmol:ccO":  {{0, 5, 6}, {4, 5, 6}},
	"COc1ccccc1|mol:COC":  {{0, 1, 2}},
	"COc1ccccc1|qmol:COc": {{0, 1, 2}},
	"CCO|qmol:CO":         {{1, 2}},
	"CCO|mol:CO":          {{1, 2}},
}

// fakeAchiralMatches apply only when useChirality is false.
var fakeAchiralMatches = map[string][][]int{
	"CC[C@H](F)Cl|mol:C[C@@H](F)Cl":  {{1, 2, 3, 4}},
	"CC[C@H](F)Cl|qmol:C[C@@H](F)Cl": {{1, 2, 3, 4}},
}

var fakeImplicitHs = map[string]int{
	"CCO":       6,
	"Cc1ccccc1": 8,
	"c1ccccc1O": 6,
}

func fakeInvalid(text string) bool {
	return strings.ContainsAny(text, "?!")
}

func fakeCanonicalize(text string) string {
	if v, ok := fakeCanonical[text]; ok {
		return v
	}
	if text == "" {
		return ""
	}
	parts := strings.Split(text, ".")
	for i, p := range parts {
		if v, ok := fakeCanonical[p]; ok {
			parts[i] = v
		}
	}
	return strings.Join(parts, ".")
}

// fakeAtomCount counts explicit atoms and explicit hydrogens in a SMILES.
func fakeAtomCount(smiles string) (atoms, hydrogens int) {
	for i := 0; i < len(smiles); i++ {
		c := smiles[i]
		switch {
		case c == '[':
			end := strings.IndexByte(smiles[i:], ']')
			if end < 0 {
				return atoms, hydrogens
			}
			inner := smiles[i+1 : i+end]
			atoms++
			if strings.HasPrefix(inner, "H") && (len(inner) == 1 || !isLower(inner[1])) {
				hydrogens++
			}
			i += end
		case c == 'C' && i+1 < len(smiles) && smiles[i+1] == 'l',
			c == 'B' && i+1 < len(smiles) && smiles[i+1] == 'r':
			atoms++
			i++
		case strings.IndexByte("BCNOPSFI", c) >= 0, strings.IndexByte("bcnops", c) >= 0:
			atoms++
		}
	}
	return atoms, hydrogens
}

func isLower(c byte) bool { return c >= 'a' && c <= 'z' }

func fakeBits(text, family string, n int) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(family + ":" + text))
	state := h.Sum64()
	var sb strings.Builder
	sb.Grow(n)
	var word uint64
	for i := 0; i < n; i++ {
		if i%64 == 0 {
			state += 0x9e3779b97f4a7c15
			z := state
			z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
			z = (z ^ (z >> 27)) * 0x94d049bb133111eb
			word = z ^ (z >> 31)
		}
		if word>>(uint(i)%64)&1 == 1 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

func packBits(bits string) []byte {
	out := make([]byte, (len(bits)+7)/8)
	for i := 0; i < len(bits); i++ {
		if bits[i] == '1' {
			out[i/8] |= 1 << (uint(i) % 8)
		}
	}
	return out
}

func fakeSVG(label string, d map[string]interface{}) string {
	w := detailInt(d, "width", 250)
	h := detailInt(d, "height", 200)
	return fmt.Sprintf("<?xml version='1.0' encoding='iso-8859-1'?>\n"+
		"<svg version='1.1' baseProfile='full' xmlns='http://www.w3.org/2000/svg' xml:space='preserve' width='%dpx' height='%dpx' viewBox='0 0 %d %d'>\n"+
		"<!-- %s -->\n</svg>\n", w, h, w, h, label)
}

// ── Library ──────────────────────────────────────────────────────────────────

// Library returns a native.Library whose function table is served by f.
func (f *FakeRDKit) Library() *native.Library {
	b := &native.Bindings{}

	parse := func(name, kind string) func(string, *uintptr, string) uintptr {
		return func(input string, sz *uintptr, details string) uintptr {
			f.record(name)
			d, ok := parseDetails(details)
			if !ok || f.shouldNull(name) || fakeInvalid(input) {
				f.logf("%s Parse Error: syntax error while parsing: %s", strings.ToUpper(kind), input)
				return 0
			}
			text := input
			if kind == "mol" {
				if detailBool(d, "removeHs", true) && text == explicitEthanol {
					text = "CCO"
				}
				text = fakeCanonicalize(text)
			}
			if kind == "rxn" && !strings.Contains(text, ">>") {
				return 0
			}
			p, n := f.allocPickle(fakePickle{kind: kind, text: text})
			f.mu.Lock()
			zero := f.zeroSize[name]
			f.mu.Unlock()
			if zero {
				n = 0
			}
			*sz = n
			return p
		}
	}
	b.GetMol = parse("get_mol", "mol")
	b.GetQMol = parse("get_qmol", "qmol")
	b.GetRxn = parse("get_rxn", "rxn")

	reader := func(name string, render func(p fakePickle, d map[string]interface{}) string) func(uintptr, uintptr, string) uintptr {
		return func(pkl, sz uintptr, details string) uintptr {
			f.record(name)
			if f.shouldNull(name) {
				return 0
			}
			p, ok := f.readPickle(pkl, sz)
			d, dok := parseDetails(details)
			if !ok || !dok {
				return 0
			}
			return f.Heap.AllocString(render(p, d))
		}
	}
	b.GetSmiles = reader("get_smiles", func(p fakePickle, _ map[string]interface{}) string { return p.text })
	b.GetCXSmiles = reader("get_cxsmiles", func(p fakePickle, _ map[string]interface{}) string { return p.text })
	smarts := func(p fakePickle, _ map[string]interface{}) string {
		if p.kind == "qmol" {
			return p.text
		}
		if v, ok := fakeSmarts[p.text]; ok {
			return v
		}
		return p.text
	}
	b.GetSmarts = reader("get_smarts", smarts)
	b.GetCXSmarts = reader("get_cxsmarts", smarts)
	// one molecules entry per dot-separated part
	b.GetJSON = reader("get_json", func(p fakePickle, _ map[string]interface{}) string {
		parts := strings.Split(p.text, ".")
		mols := make([]string, len(parts))
		for i, part := range parts {
			atoms, _ := fakeAtomCount(part)
			list := strings.TrimSuffix(strings.Repeat(`{"z":6},`, atoms), ",")
			mols[i] = fmt.Sprintf(`{"atoms":[%s],"bonds":[]}`, list)
		}
		return fmt.Sprintf(`{"rdkitjson":{"version":11},"defaults":{},"molecules":[%s]}`, strings.Join(mols, ","))
	})
	b.GetMolblock = reader("get_molblock", func(p fakePickle, _ map[string]interface{}) string {
		atoms, _ := fakeAtomCount(p.text)
		return fmt.Sprintf("\n     RDKit          %dD\n\n%3d  0  0  0  0  0  0  0  0  0999 V2000\nM  END\n", max(p.coords, 2), atoms)
	})
	b.GetV3KMolblock = reader("get_v3kmolblock", func(p fakePickle, _ map[string]interface{}) string {
		atoms, _ := fakeAtomCount(p.text)
		return fmt.Sprintf("\n     RDKit          %dD\n\n  0  0  0  0  0  0  0  0  0  0999 V3000\nM  V30 BEGIN CTAB\nM  V30 COUNTS %d 0 0 0 0\nM  V30 END CTAB\nM  END\n", max(p.coords, 2), atoms)
	})
	b.GetSVG = reader("get_svg", func(p fakePickle, d map[string]interface{}) string { return fakeSVG(p.text, d) })
	b.GetRxnSVG = reader("get_rxn_svg", func(p fakePickle, d map[string]interface{}) string { return fakeSVG(p.text, d) })

	b.GetMolFrags = func(pkl, pklSz uintptr, sizes *uintptr, count *uintptr, details string, mappings *uintptr) uintptr {
		f.record("get_mol_frags")
		if f.shouldNull("get_mol_frags") {
			return 0
		}
		p, ok := f.readPickle(pkl, pklSz)
		if _, dok := parseDetails(details); !ok || !dok {
			return 0
		}
		var parts []string
		if p.text != "" {
			parts = strings.Split(p.text, ".")
		}
		f.mu.Lock()
		nullAt := f.nullFragmentAt
		f.mu.Unlock()
		ptrs := make([]uintptr, len(parts))
		szs := make([]uintptr, len(parts))
		for i, part := range parts {
			if i == nullAt {
				continue
			}
			ptrs[i], szs[i] = f.allocPickle(fakePickle{kind: "mol", text: fakeCanonicalize(part)})
		}
		*sizes = f.Heap.AllocWords(szs)
		*count = uintptr(len(parts))
		if mappings != nil {
			*mappings = f.Heap.AllocString(`{"frags":[],"fragsMolAtomMapping":[]}`)
		}
		return f.Heap.AllocWords(ptrs)
	}

	matches := func(name string, single bool) func(uintptr, uintptr, uintptr, uintptr, string) uintptr {
		return func(molPkl, molSz, qPkl, qSz uintptr, options string) uintptr {
			f.record(name)
			if f.shouldNull(name) {
				return 0
			}
			mol, ok := f.readPickle(molPkl, molSz)
			q, qok := f.readPickle(qPkl, qSz)
			d, dok := parseDetails(options)
			if !ok || !qok || !dok {
				return 0
			}
			key := mol.text + "|" + q.kind + ":" + q.text
			found := fakeMatches[key]
			if !detailBool(d, "useChirality", true) && found == nil {
				found = fakeAchiralMatches[key]
			}
			if limit := detailInt(d, "maxMatches", 0); limit > 0 && len(found) > limit {
				found = found[:limit]
			}
			type match struct {
				Atoms []int `json:"atoms"`
				Bonds []int `json:"bonds"`
			}
			if len(found) == 0 {
				return f.Heap.AllocString("{}")
			}
			out := make([]match, len(found))
			for i, m := range found {
				out[i] = match{Atoms: m, Bonds: []int{}}
			}
			var raw []byte
			if single {
				raw, _ = json.Marshal(out[0])
			} else {
				raw, _ = json.Marshal(out)
			}
			return f.Heap.AllocBytes(raw)
		}
	}
	b.GetSubstructMatch = matches("get_substruct_match", true)
	b.GetSubstructMatches = matches("get_substruct_matches", false)

	b.GetDescriptors = func(pkl, sz uintptr) uintptr {
		f.record("get_descriptors")
		if f.shouldNull("get_descriptors") {
			return 0
		}
		p, ok := f.readPickle(pkl, sz)
		if !ok {
			return 0
		}
		atoms, hs := fakeAtomCount(p.text)
		heavy := atoms - hs
		raw, _ := json.Marshal(map[string]float64{
			"NumAtoms":      float64(atoms + fakeImplicitHs[p.text]),
			"NumHeavyAtoms": float64(heavy),
			"NumRings":      float64(strings.Count(p.text, "1") / 2),
			"exactmw":       float64(heavy) * 12.0,
		})
		return f.Heap.AllocBytes(raw)
	}

	fp := func(name, family string, fixed int) func(uintptr, uintptr, string) uintptr {
		return func(pkl, sz uintptr, details string) uintptr {
			f.record(name)
			if f.shouldNull(name) {
				return 0
			}
			p, ok := f.readPickle(pkl, sz)
			d, dok := parseDetails(details)
			if !ok || !dok {
				return 0
			}
			n := fixed
			if n == 0 {
				n = detailInt(d, "nBits", 2048)
			}
			return f.Heap.AllocString(fakeBits(p.text, family, n))
		}
	}
	fpBytes := func(name, family string, fixed int) func(uintptr, uintptr, *uintptr, string) uintptr {
		inner := fp(name, family, fixed)
		return func(pkl, sz uintptr, nbytes *uintptr, details string) uintptr {
			bitsPtr := inner(pkl, sz, details)
			if bitsPtr == 0 {
				return 0
			}
			bits := f.Heap.String(bitsPtr)
			f.Heap.Free(bitsPtr)
			packed := packBits(bits)
			*nbytes = uintptr(len(packed))
			return f.Heap.AllocBytes(packed)
		}
	}
	b.GetMorganFP = fp("get_morgan_fp", "morgan", 0)
	b.GetMorganFPAsBytes = fpBytes("get_morgan_fp_as_bytes", "morgan", 0)
	b.GetRDKitFP = fp("get_rdkit_fp", "rdkit", 0)
	b.GetRDKitFPAsBytes = fpBytes("get_rdkit_fp_as_bytes", "rdkit", 0)
	b.GetPatternFP = fp("get_pattern_fp", "pattern", 0)
	b.GetPatternFPAsBytes = fpBytes("get_pattern_fp_as_bytes", "pattern", 0)
	b.GetTopologicalTorsionFP = fp("get_topological_torsion_fp", "torsion", 0)
	b.GetTopologicalTorsionFPAsBytes = fpBytes("get_topological_torsion_fp_as_bytes", "torsion", 0)
	b.GetAtomPairFP = fp("get_atom_pair_fp", "atompair", 0)
	b.GetAtomPairFPAsBytes = fpBytes("get_atom_pair_fp_as_bytes", "atompair", 0)
	maccs := fp("get_maccs_fp", "maccs", 167)
	b.GetMACCSFP = func(pkl, sz uintptr) uintptr { return maccs(pkl, sz, "{}") }
	maccsBytes := fpBytes("get_maccs_fp_as_bytes", "maccs", 167)
	b.GetMACCSFPAsBytes = func(pkl, sz uintptr, nbytes *uintptr) uintptr { return maccsBytes(pkl, sz, nbytes, "{}") }

	mutate := func(name string, apply func(p *fakePickle, d map[string]interface{}) bool) func(*uintptr, *uintptr, string) int16 {
		return func(pkl *uintptr, sz *uintptr, details string) int16 {
			f.record(name)
			if st, ok := f.injectedStatus(name); ok {
				return st
			}
			p, ok := f.readPickle(*pkl, *sz)
			d, dok := parseDetails(details)
			if !ok || !dok || !apply(&p, d) {
				return 0
			}
			newPtr, newSz := f.allocPickle(p)
			f.Heap.Free(*pkl)
			*pkl, *sz = newPtr, newSz
			return 1
		}
	}
	transform := func(name string) func(*uintptr, *uintptr, string) int16 {
		return mutate(name, func(p *fakePickle, _ map[string]interface{}) bool {
			if v, ok := fakeTransforms[name][p.text]; ok {
				p.text = v
			}
			return true
		})
	}
	addHs := transform("add_hs")
	b.AddHs = func(pkl *uintptr, sz *uintptr) int16 { return addHs(pkl, sz, "") }
	removeHs := transform("remove_all_hs")
	b.RemoveAllHs = func(pkl *uintptr, sz *uintptr) int16 { return removeHs(pkl, sz, "") }
	b.Cleanup = transform("cleanup")
	b.Normalize = transform("normalize")
	b.Neutralize = transform("neutralize")
	b.Reionize = transform("reionize")
	b.CanonicalTautomer = transform("canonical_tautomer")
	b.ChargeParent = transform("charge_parent")
	b.FragmentParent = transform("fragment_parent")

	b.PreferCoordgen = func(val int16) {
		f.record("prefer_coordgen")
		f.mu.Lock()
		f.coordgen = val
		f.mu.Unlock()
	}
	b.HasCoords = func(pkl, sz uintptr) int16 {
		f.record("has_coords")
		p, ok := f.readPickle(pkl, sz)
		if !ok {
			return 0
		}
		return int16(p.coords)
	}
	set2D := mutate("set_2d_coords", func(p *fakePickle, _ map[string]interface{}) bool {
		p.coords = 2
		return true
	})
	b.Set2DCoords = func(pkl *uintptr, sz *uintptr) int16 { return set2D(pkl, sz, "") }
	b.Set3DCoords = mutate("set_3d_coords", func(p *fakePickle, _ map[string]interface{}) bool {
		p.coords = 3
		return true
	})

	b.FreePtr = func(p uintptr) {
		f.record("free_ptr")
		f.Heap.Free(p)
	}

	b.Version = func() uintptr {
		f.record("version")
		if f.shouldNull("version") {
			return 0
		}
		return f.Heap.AllocString(FakeVersion)
	}
	b.EnableLogging = func() {
		f.record("enable_logging")
		f.mu.Lock()
		f.logging = true
		f.mu.Unlock()
	}
	b.DisableLogging = func() {
		f.record("disable_logging")
		f.mu.Lock()
		f.logging = false
		f.mu.Unlock()
	}

	b.UseLegacyStereoPerception = func(val int16) int16 {
		f.record("use_legacy_stereo_perception")
		f.mu.Lock()
		defer f.mu.Unlock()
		prev := f.legacyStereo
		f.legacyStereo = val
		return prev
	}
	b.AllowNonTetrahedralChirality = func(val int16) int16 {
		f.record("allow_non_tetrahedral_chirality")
		f.mu.Lock()
		defer f.mu.Unlock()
		prev := f.nonTetrahedral
		f.nonTetrahedral = val
		return prev
	}

	openLog := func(name string) func(string) uintptr {
		return func(logName string) uintptr {
			f.record(name)
			if logName == "" || f.shouldNull(name) {
				return 0
			}
			h := f.Heap.AllocWords([]uintptr{0})
			f.mu.Lock()
			f.logs[h] = &strings.Builder{}
			f.mu.Unlock()
			return h
		}
	}
	b.SetLogTee = openLog("set_log_tee")
	b.SetLogCapture = openLog("set_log_capture")
	b.GetLogBuffer = func(h uintptr) uintptr {
		f.record("get_log_buffer")
		f.mu.Lock()
		buf, ok := f.logs[h]
		var s string
		if ok {
			s = buf.String()
		}
		f.mu.Unlock()
		if !ok {
			return 0
		}
		return f.Heap.AllocString(s)
	}
	b.ClearLogBuffer = func(h uintptr) int16 {
		f.record("clear_log_buffer")
		f.mu.Lock()
		defer f.mu.Unlock()
		buf, ok := f.logs[h]
		if !ok {
			return 0
		}
		buf.Reset()
		return 1
	}
	b.DestroyLogHandle = func(h *uintptr) int16 {
		f.record("destroy_log_handle")
		f.mu.Lock()
		_, ok := f.logs[*h]
		delete(f.logs, *h)
		f.mu.Unlock()
		if !ok {
			return 0
		}
		f.Heap.Free(*h)
		*h = 0
		return 1
	}

	return &native.Library{Bindings: b, Memory: f.Heap, Path: "fake://librdkitcffi"}
}

//Personal.AI order the ending
