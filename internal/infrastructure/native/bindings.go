// Package native binds the RDKit MinimalLib C API (librdkitcffi) without cgo.
//
// Every exported symbol of cffiwrapper.h used by rdkit-go has one func field
// on Bindings.  Pointers crossing the boundary are carried as uintptr and
// only turned back into Go memory through a Memory implementation.  Strings
// passed as Go string arguments are copied to NUL-terminated C strings for
// the duration of the call.
package native

// Bindings is the fixed native function table.  It is written once during
// Load and read-only afterwards.
type Bindings struct {
	// I/O
	GetMol         func(input string, molSz *uintptr, details string) uintptr
	GetQMol        func(input string, molSz *uintptr, details string) uintptr
	GetRxn         func(input string, rxnSz *uintptr, details string) uintptr
	GetMolblock    func(pkl, pklSz uintptr, details string) uintptr
	GetV3KMolblock func(pkl, pklSz uintptr, details string) uintptr
	GetSmiles      func(pkl, pklSz uintptr, details string) uintptr
	GetSmarts      func(pkl, pklSz uintptr, details string) uintptr
	GetCXSmiles    func(pkl, pklSz uintptr, details string) uintptr
	GetCXSmarts    func(pkl, pklSz uintptr, details string) uintptr
	GetJSON        func(pkl, pklSz uintptr, details string) uintptr

	// GetMolFrags returns a char** of fragment pickles.  sizes receives a
	// size_t* array and count the number of fragments; both arrays are owned
	// by the caller.  mappings may be nil.
	GetMolFrags func(pkl, pklSz uintptr, sizes *uintptr, count *uintptr, details string, mappings *uintptr) uintptr

	// substructure
	GetSubstructMatch   func(molPkl, molSz, queryPkl, querySz uintptr, options string) uintptr
	GetSubstructMatches func(molPkl, molSz, queryPkl, querySz uintptr, options string) uintptr

	// drawing
	GetSVG    func(pkl, pklSz uintptr, details string) uintptr
	GetRxnSVG func(pkl, pklSz uintptr, details string) uintptr

	// calculators
	GetDescriptors                 func(pkl, pklSz uintptr) uintptr
	GetMorganFP                    func(pkl, pklSz uintptr, details string) uintptr
	GetMorganFPAsBytes             func(pkl, pklSz uintptr, nbytes *uintptr, details string) uintptr
	GetRDKitFP                     func(pkl, pklSz uintptr, details string) uintptr
	GetRDKitFPAsBytes              func(pkl, pklSz uintptr, nbytes *uintptr, details string) uintptr
	GetPatternFP                   func(pkl, pklSz uintptr, details string) uintptr
	GetPatternFPAsBytes            func(pkl, pklSz uintptr, nbytes *uintptr, details string) uintptr
	GetTopologicalTorsionFP        func(pkl, pklSz uintptr, details string) uintptr
	GetTopologicalTorsionFPAsBytes func(pkl, pklSz uintptr, nbytes *uintptr, details string) uintptr
	GetAtomPairFP                  func(pkl, pklSz uintptr, details string) uintptr
	GetAtomPairFPAsBytes           func(pkl, pklSz uintptr, nbytes *uintptr, details string) uintptr
	GetMACCSFP                     func(pkl, pklSz uintptr) uintptr
	GetMACCSFPAsBytes              func(pkl, pklSz uintptr, nbytes *uintptr) uintptr

	// modification; status 1 means success
	AddHs       func(pkl *uintptr, pklSz *uintptr) int16
	RemoveAllHs func(pkl *uintptr, pklSz *uintptr) int16

	// standardization
	Cleanup           func(pkl *uintptr, pklSz *uintptr, details string) int16
	Normalize         func(pkl *uintptr, pklSz *uintptr, details string) int16
	Neutralize        func(pkl *uintptr, pklSz *uintptr, details string) int16
	Reionize          func(pkl *uintptr, pklSz *uintptr, details string) int16
	CanonicalTautomer func(pkl *uintptr, pklSz *uintptr, details string) int16
	ChargeParent      func(pkl *uintptr, pklSz *uintptr, details string) int16
	FragmentParent    func(pkl *uintptr, pklSz *uintptr, details string) int16

	// coordinates
	PreferCoordgen func(val int16)
	HasCoords      func(pkl, pklSz uintptr) int16
	Set2DCoords    func(pkl *uintptr, pklSz *uintptr) int16
	Set3DCoords    func(pkl *uintptr, pklSz *uintptr, params string) int16

	// housekeeping
	FreePtr func(ptr uintptr)

	// other
	Version        func() uintptr
	EnableLogging  func()
	DisableLogging func()

	// chirality switches return the previous value
	UseLegacyStereoPerception    func(val int16) int16
	AllowNonTetrahedralChirality func(val int16) int16

	// logging side channel
	SetLogTee        func(logName string) uintptr
	SetLogCapture    func(logName string) uintptr
	DestroyLogHandle func(handle *uintptr) int16
	GetLogBuffer     func(handle uintptr) uintptr
	ClearLogBuffer   func(handle uintptr) int16
}

// Symbol pairs a C symbol name with the Bindings field it populates.
type Symbol struct {
	Name string
	Fn   interface{}
}

// Symbols lists every entry point in registration order.  Fn is a pointer
// to the corresponding func field of b.
func (b *Bindings) Symbols() []Symbol {
	return []Symbol{
		{"get_mol", &b.GetMol},
		{"get_qmol", &b.GetQMol},
		{"get_rxn", &b.GetRxn},
		{"get_molblock", &b.GetMolblock},
		{"get_v3kmolblock", &b.GetV3KMolblock},
		{"get_smiles", &b.GetSmiles},
		{"get_smarts", &b.GetSmarts},
		{"get_cxsmiles", &b.GetCXSmiles},
		{"get_cxsmarts", &b.GetCXSmarts},
		{"get_json", &b.GetJSON},
		{"get_mol_frags", &b.GetMolFrags},

		{"get_substruct_match", &b.GetSubstructMatch},
		{"get_substruct_matches", &b.GetSubstructMatches},

		{"get_svg", &b.GetSVG},
		{"get_rxn_svg", &b.GetRxnSVG},

		{"get_descriptors", &b.GetDescriptors},
		{"get_morgan_fp", &b.GetMorganFP},
		{"get_morgan_fp_as_bytes", &b.GetMorganFPAsBytes},
		{"get_rdkit_fp", &b.GetRDKitFP},
		{"get_rdkit_fp_as_bytes", &b.GetRDKitFPAsBytes},
		{"get_pattern_fp", &b.GetPatternFP},
		{"get_pattern_fp_as_bytes", &b.GetPatternFPAsBytes},
		{"get_topological_torsion_fp", &b.GetTopologicalTorsionFP},
		{"get_topological_torsion_fp_as_bytes", &b.GetTopologicalTorsionFPAsBytes},
		{"get_atom_pair_fp", &b.GetAtomPairFP},
		{"get_atom_pair_fp_as_bytes", &b.GetAtomPairFPAsBytes},
		{"get_maccs_fp", &b.GetMACCSFP},
		{"get_maccs_fp_as_bytes", &b.GetMACCSFPAsBytes},

		{"add_hs", &b.AddHs},
		{"remove_all_hs", &b.RemoveAllHs},

		{"cleanup", &b.Cleanup},
		{"normalize", &b.Normalize},
		{"neutralize", &b.Neutralize},
		{"reionize", &b.Reionize},
		{"canonical_tautomer", &b.CanonicalTautomer},
		{"charge_parent", &b.ChargeParent},
		{"fragment_parent", &b.FragmentParent},

		{"prefer_coordgen", &b.PreferCoordgen},
		{"has_coords", &b.HasCoords},
		{"set_2d_coords", &b.Set2DCoords},
		{"set_3d_coords", &b.Set3DCoords},

		{"free_ptr", &b.FreePtr},

		{"version", &b.Version},
		{"enable_logging", &b.EnableLogging},
		{"disable_logging", &b.DisableLogging},

		{"use_legacy_stereo_perception", &b.UseLegacyStereoPerception},
		{"allow_non_tetrahedral_chirality", &b.AllowNonTetrahedralChirality},

		{"set_log_tee", &b.SetLogTee},
		{"set_log_capture", &b.SetLogCapture},
		{"destroy_log_handle", &b.DestroyLogHandle},
		{"get_log_buffer", &b.GetLogBuffer},
		{"clear_log_buffer", &b.ClearLogBuffer},
	}
}

//Personal.AI order the ending
