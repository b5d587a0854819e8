package cli

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/turtacn/rdkit-go/internal/application/molecule"
	"github.com/turtacn/rdkit-go/pkg/errors"
)

// inputFlags are shared by every single-molecule command.
type inputFlags struct {
	query  bool
	keepHs bool
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.query, "query", false, "parse the input as a SMARTS query")
	cmd.Flags().BoolVar(&f.keepHs, "keep-hs", false, "keep explicit hydrogens from the input")
}

func (f *inputFlags) input(cmd *cobra.Command, arg string) (molecule.MoleculeInput, error) {
	text, err := readInput(cmd, arg)
	if err != nil {
		return molecule.MoleculeInput{}, err
	}
	return molecule.MoleculeInput{Molecule: text, Query: f.query, KeepHs: f.keepHs}, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print CLI and RDKit versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, ctx, cancel, err := serviceFor(cmd)
			if err != nil {
				return err
			}
			defer cancel()
			v, err := svc.Version(ctx)
			if err != nil {
				return err
			}
			return PrintResult(cmd, versionView{CLI: Version, Commit: GitCommit, RDKit: v})
		},
	}
}

func newCanonicalCmd() *cobra.Command {
	var in inputFlags
	cmd := &cobra.Command{
		Use:   "canonical <molecule>",
		Short: "Print the canonical SMILES of a molecule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, ctx, cancel, err := serviceFor(cmd)
			if err != nil {
				return err
			}
			defer cancel()
			mi, err := in.input(cmd, args[0])
			if err != nil {
				return err
			}
			res, err := svc.Canonicalize(ctx, &mi)
			if err != nil {
				return err
			}
			return PrintResult(cmd, canonicalView{res})
		},
	}
	in.register(cmd)
	return cmd
}

func newConvertCmd() *cobra.Command {
	var (
		in inputFlags
		to string
	)
	names := make([]string, len(molecule.Formats))
	for i, f := range molecule.Formats {
		names[i] = string(f)
	}
	cmd := &cobra.Command{
		Use:   "convert <molecule>",
		Short: "Convert a molecule to another notation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, ctx, cancel, err := serviceFor(cmd)
			if err != nil {
				return err
			}
			defer cancel()
			mi, err := in.input(cmd, args[0])
			if err != nil {
				return err
			}
			res, err := svc.Convert(ctx, &molecule.ConvertInput{MoleculeInput: mi, Format: to})
			if err != nil {
				return err
			}
			return PrintResult(cmd, convertView{res})
		},
	}
	in.register(cmd)
	cmd.Flags().StringVarP(&to, "to", "t", string(molecule.FormatMolblock), "target format: "+strings.Join(names, "|"))
	return cmd
}

func newMatchCmd() *cobra.Command {
	var (
		in           inputFlags
		pattern      string
		useChirality bool
		maxMatches   int
	)
	cmd := &cobra.Command{
		Use:   "match <molecule>",
		Short: "List substructure matches of a SMARTS pattern",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, ctx, cancel, err := serviceFor(cmd)
			if err != nil {
				return err
			}
			defer cancel()
			mi, err := in.input(cmd, args[0])
			if err != nil {
				return err
			}
			input := &molecule.MatchInput{
				MoleculeInput: mi,
				Pattern:       pattern,
				MaxMatches:    maxMatches,
			}
			if cmd.Flags().Changed("chirality") {
				input.UseChirality = &useChirality
			}
			res, err := svc.Match(ctx, input)
			if err != nil {
				return err
			}
			return PrintResult(cmd, matchView{res})
		},
	}
	in.register(cmd)
	cmd.Flags().StringVarP(&pattern, "pattern", "p", "", "SMARTS pattern (required)")
	cmd.Flags().BoolVar(&useChirality, "chirality", true, "respect stereochemistry when matching (--chirality=false to ignore it)")
	cmd.Flags().IntVar(&maxMatches, "max", 0, "stop after this many matches (0 = library default)")
	_ = cmd.MarkFlagRequired("pattern")
	return cmd
}

// fpFlags are shared by fingerprint and similarity.
type fpFlags struct {
	kind   string
	length int
	radius int
}

func (f *fpFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.kind, "kind", "k", "morgan", "fingerprint kind: rdkit|morgan|pattern|topological_torsion|atom_pair|maccs")
	cmd.Flags().IntVarP(&f.length, "length", "l", 0, "bit length (0 = kind default)")
	cmd.Flags().IntVarP(&f.radius, "radius", "r", 0, "Morgan radius (0 = default)")
}

func newFingerprintCmd() *cobra.Command {
	var (
		in inputFlags
		fp fpFlags
	)
	cmd := &cobra.Command{
		Use:   "fingerprint <molecule>",
		Short: "Print a molecular fingerprint as a bit string",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, ctx, cancel, err := serviceFor(cmd)
			if err != nil {
				return err
			}
			defer cancel()
			mi, err := in.input(cmd, args[0])
			if err != nil {
				return err
			}
			res, err := svc.Fingerprint(ctx, &molecule.FingerprintInput{
				MoleculeInput: mi, Kind: fp.kind, Length: fp.length, Radius: fp.radius,
			})
			if err != nil {
				return err
			}
			return PrintResult(cmd, fingerprintView{res})
		},
	}
	in.register(cmd)
	fp.register(cmd)
	return cmd
}

func newSimilarityCmd() *cobra.Command {
	var (
		in     inputFlags
		fp     fpFlags
		metric string
	)
	cmd := &cobra.Command{
		Use:   "similarity <molecule> <molecule>",
		Short: "Compare two molecules by fingerprint similarity",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, ctx, cancel, err := serviceFor(cmd)
			if err != nil {
				return err
			}
			defer cancel()
			if args[0] == "-" && args[1] == "-" {
				return errors.InvalidParam("only one molecule may be read from standard input")
			}
			a, err := in.input(cmd, args[0])
			if err != nil {
				return err
			}
			b, err := in.input(cmd, args[1])
			if err != nil {
				return err
			}
			res, err := svc.Similarity(ctx, &molecule.SimilarityInput{
				A: a, B: b, Kind: fp.kind, Length: fp.length, Radius: fp.radius, Metric: metric,
			})
			if err != nil {
				return err
			}
			return PrintResult(cmd, similarityView{res})
		},
	}
	in.register(cmd)
	fp.register(cmd)
	cmd.Flags().StringVarP(&metric, "metric", "m", "tanimoto", "similarity metric: tanimoto|dice")
	return cmd
}

func newStandardizeCmd() *cobra.Command {
	var (
		in    inputFlags
		steps []string
	)
	cmd := &cobra.Command{
		Use:   "standardize <molecule>",
		Short: "Apply standardization steps and print the result",
		Long: "Applies the given steps in order.  Without --steps the default pipeline\n" +
			"(cleanup, fragment_parent, neutralize) runs.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, ctx, cancel, err := serviceFor(cmd)
			if err != nil {
				return err
			}
			defer cancel()
			mi, err := in.input(cmd, args[0])
			if err != nil {
				return err
			}
			res, err := svc.Standardize(ctx, &molecule.StandardizeInput{MoleculeInput: mi, Steps: steps})
			if err != nil {
				return err
			}
			return PrintResult(cmd, standardizeView{res})
		},
	}
	in.register(cmd)
	cmd.Flags().StringSliceVarP(&steps, "steps", "s", nil, "comma-separated steps, e.g. cleanup,charge_parent")
	return cmd
}

func newFragmentsCmd() *cobra.Command {
	var (
		in         inputFlags
		noSanitize bool
	)
	cmd := &cobra.Command{
		Use:   "fragments <molecule>",
		Short: "Split a molecule into its disconnected fragments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, ctx, cancel, err := serviceFor(cmd)
			if err != nil {
				return err
			}
			defer cancel()
			mi, err := in.input(cmd, args[0])
			if err != nil {
				return err
			}
			fi := &molecule.FragmentsInput{MoleculeInput: mi}
			if noSanitize {
				sanitize := false
				fi.Sanitize = &sanitize
			}
			res, err := svc.Fragments(ctx, fi)
			if err != nil {
				return err
			}
			return PrintResult(cmd, fragmentsView{res})
		},
	}
	in.register(cmd)
	cmd.Flags().BoolVar(&noSanitize, "no-sanitize", false, "skip sanitization of each fragment")
	return cmd
}

func newDescriptorsCmd() *cobra.Command {
	var in inputFlags
	cmd := &cobra.Command{
		Use:   "descriptors <molecule>",
		Short: "Print atom counts and RDKit descriptors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, ctx, cancel, err := serviceFor(cmd)
			if err != nil {
				return err
			}
			defer cancel()
			mi, err := in.input(cmd, args[0])
			if err != nil {
				return err
			}
			res, err := svc.Descriptors(ctx, &mi)
			if err != nil {
				return err
			}
			return PrintResult(cmd, descriptorsView{res})
		},
	}
	in.register(cmd)
	return cmd
}

func newDepictCmd() *cobra.Command {
	var (
		in            inputFlags
		width, height int
		out           string
		reaction      bool
	)
	cmd := &cobra.Command{
		Use:   "depict <molecule|reaction>",
		Short: "Render a molecule or reaction as SVG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, ctx, cancel, err := serviceFor(cmd)
			if err != nil {
				return err
			}
			defer cancel()
			mi, err := in.input(cmd, args[0])
			if err != nil {
				return err
			}

			var res *molecule.DepictResult
			if reaction {
				res, err = svc.DepictReaction(ctx, &molecule.DepictReactionInput{Reaction: mi.Molecule, Width: width, Height: height})
			} else {
				res, err = svc.Depict(ctx, &molecule.DepictInput{MoleculeInput: mi, Width: width, Height: height})
			}
			if err != nil {
				return err
			}

			if out == "" {
				return PrintResult(cmd, depictView{res})
			}
			if err := os.WriteFile(out, []byte(res.SVG), 0o644); err != nil {
				return errors.Wrap(err, errors.ErrCodeInternal, "failed to write SVG")
			}
			PrintSuccess(cmd, fmt.Sprintf("wrote %d bytes to %s", len(res.SVG), out))
			return nil
		},
	}
	in.register(cmd)
	cmd.Flags().IntVar(&width, "width", 0, "image width in pixels (0 = library default)")
	cmd.Flags().IntVar(&height, "height", 0, "image height in pixels (0 = library default)")
	cmd.Flags().StringVarP(&out, "out", "f", "", "write the SVG to this file instead of stdout")
	cmd.Flags().BoolVar(&reaction, "reaction", false, "treat the input as reaction SMARTS")
	return cmd
}

// ── views ────────────────────────────────────────────────────────────────────

type versionView struct {
	CLI    string `json:"cli"`
	Commit string `json:"commit"`
	RDKit  string `json:"rdkit"`
}

func (v versionView) String() string {
	return fmt.Sprintf("rdkit-go %s (commit %s)\nRDKit %s", v.CLI, v.Commit, v.RDKit)
}

func (v versionView) TableHeaders() []string { return []string{"Component", "Version"} }
func (v versionView) TableRows() [][]string {
	return [][]string{{"rdkit-go", v.CLI}, {"commit", v.Commit}, {"RDKit", v.RDKit}}
}

type canonicalView struct{ *molecule.CanonicalResult }

func (v canonicalView) String() string         { return v.SMILES }
func (v canonicalView) TableHeaders() []string { return []string{"SMILES"} }
func (v canonicalView) TableRows() [][]string  { return [][]string{{v.SMILES}} }

type convertView struct{ *molecule.ConvertResult }

func (v convertView) String() string         { return strings.TrimRight(v.Value, "\n") }
func (v convertView) TableHeaders() []string { return []string{"Format", "Value"} }
func (v convertView) TableRows() [][]string {
	return [][]string{{string(v.Format), strings.TrimRight(v.Value, "\n")}}
}

type matchView struct{ *molecule.MatchResult }

func joinInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.Itoa(x)
	}
	return strings.Join(parts, " ")
}

func (v matchView) String() string {
	if !v.Matched {
		return color.YellowString("no match")
	}
	lines := make([]string, len(v.Matches))
	for i, m := range v.Matches {
		lines[i] = joinInts(m)
	}
	return strings.Join(lines, "\n")
}

func (v matchView) TableHeaders() []string { return []string{"#", "Atoms"} }
func (v matchView) TableRows() [][]string {
	rows := make([][]string, len(v.Matches))
	for i, m := range v.Matches {
		rows[i] = []string{strconv.Itoa(i + 1), joinInts(m)}
	}
	return rows
}

type fingerprintView struct{ *molecule.FingerprintResult }

func (v fingerprintView) String() string         { return v.Bits }
func (v fingerprintView) TableHeaders() []string { return []string{"Kind", "Length", "On bits"} }
func (v fingerprintView) TableRows() [][]string {
	return [][]string{{string(v.Kind), strconv.Itoa(v.Length), strconv.Itoa(v.OnBits)}}
}

type similarityView struct{ *molecule.SimilarityResult }

func (v similarityView) String() string {
	return fmt.Sprintf("%.4f %s", v.Score, classColor(v.Classification))
}

func classColor(class string) string {
	switch class {
	case "identical", "high":
		return color.GreenString(class)
	case "moderate":
		return color.YellowString(class)
	default:
		return class
	}
}

func (v similarityView) TableHeaders() []string {
	return []string{"Kind", "Metric", "Score", "Class"}
}
func (v similarityView) TableRows() [][]string {
	return [][]string{{string(v.Kind), string(v.Metric), strconv.FormatFloat(v.Score, 'f', 4, 64), v.Classification}}
}

type standardizeView struct{ *molecule.StandardizeResult }

func (v standardizeView) String() string         { return v.SMILES }
func (v standardizeView) TableHeaders() []string { return []string{"Step", "SMILES"} }
func (v standardizeView) TableRows() [][]string {
	steps := make([]string, len(v.Steps))
	for i, s := range v.Steps {
		steps[i] = string(s)
	}
	return [][]string{{strings.Join(steps, ","), v.SMILES}}
}

type fragmentsView struct{ *molecule.FragmentsResult }

func (v fragmentsView) String() string         { return strings.Join(v.Fragments, "\n") }
func (v fragmentsView) TableHeaders() []string { return []string{"#", "SMILES"} }
func (v fragmentsView) TableRows() [][]string {
	rows := make([][]string, len(v.Fragments))
	for i, f := range v.Fragments {
		rows[i] = []string{strconv.Itoa(i + 1), f}
	}
	return rows
}

type descriptorsView struct{ *molecule.DescriptorsResult }

func (v descriptorsView) sortedNames() []string {
	names := make([]string, 0, len(v.Descriptors))
	for name := range v.Descriptors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func formatFloat(f float64) string { return strconv.FormatFloat(f, 'g', 8, 64) }

func (v descriptorsView) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "num_atoms=%d\nnum_heavy_atoms=%d", v.NumAtoms, v.NumHeavyAtoms)
	for _, name := range v.sortedNames() {
		fmt.Fprintf(&sb, "\n%s=%s", name, formatFloat(v.Descriptors[name]))
	}
	return sb.String()
}

func (v descriptorsView) TableHeaders() []string { return []string{"Descriptor", "Value"} }
func (v descriptorsView) TableRows() [][]string {
	rows := [][]string{
		{"num_atoms", strconv.Itoa(v.NumAtoms)},
		{"num_heavy_atoms", strconv.Itoa(v.NumHeavyAtoms)},
	}
	for _, name := range v.sortedNames() {
		rows = append(rows, []string{name, formatFloat(v.Descriptors[name])})
	}
	return rows
}

type depictView struct{ *molecule.DepictResult }

func (v depictView) String() string { return strings.TrimRight(v.SVG, "\n") }

//Personal.AI order the ending
