// Package molecule provides the application-level service for molecule operations.
// It sits between the HTTP/CLI front ends and the native binding: every call
// parses its own molecules from text and closes them before returning.
package molecule

import (
	"context"
	"strconv"
	"strings"
	"time"

	domainMol "github.com/turtacn/rdkit-go/internal/domain/molecule"
	"github.com/turtacn/rdkit-go/internal/infrastructure/database/redis"
	"github.com/turtacn/rdkit-go/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/rdkit-go/pkg/errors"
	"github.com/turtacn/rdkit-go/pkg/rdkit"
)

// Service defines the molecule operations exposed by the server and CLI.
type Service interface {
	Version(ctx context.Context) (string, error)
	Canonicalize(ctx context.Context, input *MoleculeInput) (*CanonicalResult, error)
	Convert(ctx context.Context, input *ConvertInput) (*ConvertResult, error)
	Match(ctx context.Context, input *MatchInput) (*MatchResult, error)
	Fingerprint(ctx context.Context, input *FingerprintInput) (*FingerprintResult, error)
	Similarity(ctx context.Context, input *SimilarityInput) (*SimilarityResult, error)
	Standardize(ctx context.Context, input *StandardizeInput) (*StandardizeResult, error)
	Fragments(ctx context.Context, input *FragmentsInput) (*FragmentsResult, error)
	Descriptors(ctx context.Context, input *MoleculeInput) (*DescriptorsResult, error)
	Depict(ctx context.Context, input *DepictInput) (*DepictResult, error)
	DepictReaction(ctx context.Context, input *DepictReactionInput) (*DepictResult, error)
	Batch(ctx context.Context, input *BatchInput) (*BatchResult, error)
}

// MoleculeInput names one molecule.  Query selects SMARTS parsing; KeepHs
// keeps explicit hydrogens from the input.
type MoleculeInput struct {
	Molecule string `json:"molecule"`
	Query    bool   `json:"query,omitempty"`
	KeepHs   bool   `json:"keep_hs,omitempty"`
}

// Format is an output notation supported by Convert.
type Format string

const (
	FormatSMILES      Format = "smiles"
	FormatSMARTS      Format = "smarts"
	FormatCXSMILES    Format = "cxsmiles"
	FormatCXSMARTS    Format = "cxsmarts"
	FormatJSON        Format = "json"
	FormatMolblock    Format = "molblock"
	FormatV3KMolblock Format = "v3kmolblock"
)

// Formats lists every Convert target.
var Formats = []Format{
	FormatSMILES, FormatSMARTS, FormatCXSMILES, FormatCXSMARTS,
	FormatJSON, FormatMolblock, FormatV3KMolblock,
}

// ParseFormat is case-insensitive.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", errors.Newf(errors.ErrCodeMoleculeInvalidFormat, "unsupported format %q", s)
}

type ConvertInput struct {
	MoleculeInput
	Format string `json:"format"`
}

// MatchInput leaves chirality on when UseChirality is nil.
type MatchInput struct {
	MoleculeInput
	Pattern      string `json:"pattern"`
	UseChirality *bool  `json:"use_chirality,omitempty"`
	MaxMatches   int    `json:"max_matches,omitempty"`
}

type FingerprintInput struct {
	MoleculeInput
	Kind   string `json:"kind"`
	Length int    `json:"length,omitempty"`
	Radius int    `json:"radius,omitempty"`
}

type SimilarityInput struct {
	A      MoleculeInput `json:"a"`
	B      MoleculeInput `json:"b"`
	Kind   string        `json:"kind,omitempty"`
	Length int           `json:"length,omitempty"`
	Radius int           `json:"radius,omitempty"`
	Metric string        `json:"metric,omitempty"`
}

type StandardizeInput struct {
	MoleculeInput
	Steps []string `json:"steps,omitempty"`
}

type FragmentsInput struct {
	MoleculeInput
	Sanitize *bool `json:"sanitize,omitempty"`
}

type DepictInput struct {
	MoleculeInput
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`
}

type DepictReactionInput struct {
	Reaction string `json:"reaction"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
}

type CanonicalResult struct {
	SMILES string `json:"smiles"`
}

type ConvertResult struct {
	Format Format `json:"format"`
	Value  string `json:"value"`
}

type MatchResult struct {
	Matched bool    `json:"matched"`
	Count   int     `json:"count"`
	Matches [][]int `json:"matches"`
}

type FingerprintResult struct {
	Kind   rdkit.FingerprintKind `json:"kind"`
	Length int                   `json:"length"`
	OnBits int                   `json:"on_bits"`
	Bits   string                `json:"bits"`
}

type SimilarityResult struct {
	Kind           rdkit.FingerprintKind      `json:"kind"`
	Metric         domainMol.SimilarityMetric `json:"metric"`
	Score          float64                    `json:"score"`
	Classification string                     `json:"classification"`
}

type StandardizeResult struct {
	SMILES string       `json:"smiles"`
	Steps  []rdkit.Step `json:"steps"`
}

type FragmentsResult struct {
	Fragments []string `json:"fragments"`
}

type DescriptorsResult struct {
	NumAtoms      int                `json:"num_atoms"`
	NumHeavyAtoms int                `json:"num_heavy_atoms"`
	Descriptors   map[string]float64 `json:"descriptors"`
}

type DepictResult struct {
	SVG string `json:"svg"`
}

// DefaultStandardizeSteps run when a request names no steps.
var DefaultStandardizeSteps = []rdkit.Step{
	rdkit.StepCleanup, rdkit.StepFragmentParent, rdkit.StepNeutralize,
}

// BatchObserver counts batch items by outcome.
type BatchObserver interface {
	RecordBatchItem(operation string, err error)
}

type nopBatchObserver struct{}

func (nopBatchObserver) RecordBatchItem(string, error) {}

// Options tunes a Service.
type Options struct {
	Concurrency  int
	MaxBatchSize int
	CacheTTL     time.Duration
}

// serviceImpl implements the Service interface.
type serviceImpl struct {
	handle   *rdkit.Handle
	cache    redis.Cache
	observer BatchObserver
	opts     Options
	logger   logging.Logger
}

// NewService wires a Service.  A nil cache disables caching; a nil
// observer discards batch counts.
func NewService(handle *rdkit.Handle, cache redis.Cache, observer BatchObserver, opts Options, logger logging.Logger) Service {
	if handle == nil {
		panic("molecule: nil handle")
	}
	if cache == nil {
		cache = redis.NopCache{}
	}
	if observer == nil {
		observer = nopBatchObserver{}
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	if opts.MaxBatchSize < 1 {
		opts.MaxBatchSize = 1000
	}
	return &serviceImpl{
		handle:   handle,
		cache:    cache,
		observer: observer,
		opts:     opts,
		logger:   logger.Named("molecule"),
	}
}

func (s *serviceImpl) Version(ctx context.Context) (string, error) {
	return s.handle.Version()
}

// parse builds the molecule named by in.  The caller must Close it.
func (s *serviceImpl) parse(ctx context.Context, in MoleculeInput) (*rdkit.Molecule, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Molecule) == "" {
		return nil, errors.InvalidParam("molecule is required")
	}
	if in.Query {
		return s.handle.MolFromSMARTS(in.Molecule)
	}
	if in.KeepHs {
		return s.handle.MolFromSMILES(in.Molecule, rdkit.WithRemoveHs(false))
	}
	return s.handle.MolFromSMILES(in.Molecule)
}

// withMolecule parses in, runs fn, and closes the molecule.
func (s *serviceImpl) withMolecule(ctx context.Context, in MoleculeInput, fn func(*rdkit.Molecule) error) error {
	mol, err := s.parse(ctx, in)
	if err != nil {
		return err
	}
	defer mol.Close()
	return fn(mol)
}

func (s *serviceImpl) Canonicalize(ctx context.Context, input *MoleculeInput) (*CanonicalResult, error) {
	var out CanonicalResult
	err := s.withMolecule(ctx, *input, func(m *rdkit.Molecule) (err error) {
		out.SMILES, err = m.SMILES()
		return err
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *serviceImpl) Convert(ctx context.Context, input *ConvertInput) (*ConvertResult, error) {
	format, err := ParseFormat(input.Format)
	if err != nil {
		return nil, err
	}
	out := ConvertResult{Format: format}
	err = s.withMolecule(ctx, input.MoleculeInput, func(m *rdkit.Molecule) (err error) {
		out.Value, err = render(m, format)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func render(m *rdkit.Molecule, f Format) (string, error) {
	switch f {
	case FormatSMARTS:
		return m.SMARTS()
	case FormatCXSMILES:
		return m.CXSMILES()
	case FormatCXSMARTS:
		return m.CXSMARTS()
	case FormatJSON:
		return m.JSON()
	case FormatMolblock:
		return m.Molblock()
	case FormatV3KMolblock:
		return m.V3KMolblock()
	default:
		return m.SMILES()
	}
}

func (s *serviceImpl) Match(ctx context.Context, input *MatchInput) (*MatchResult, error) {
	if strings.TrimSpace(input.Pattern) == "" {
		return nil, errors.InvalidParam("pattern is required")
	}
	if input.MaxMatches < 0 {
		return nil, errors.InvalidParam("max_matches must not be negative")
	}
	var out MatchResult
	err := s.withMolecule(ctx, input.MoleculeInput, func(m *rdkit.Molecule) error {
		pattern, err := s.handle.MolFromSMARTS(input.Pattern)
		if err != nil {
			return err
		}
		defer pattern.Close()

		var opts []rdkit.MatchOption
		if input.UseChirality != nil {
			opts = append(opts, rdkit.WithUseChirality(*input.UseChirality))
		}
		if input.MaxMatches > 0 {
			opts = append(opts, rdkit.WithMaxMatches(input.MaxMatches))
		}
		matches, err := m.Match(pattern, opts...)
		if err != nil {
			return err
		}
		if matches == nil {
			matches = [][]int{}
		}
		out = MatchResult{Matched: len(matches) > 0, Count: len(matches), Matches: matches}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// fingerprintOptions resolves kind, length and radius; an empty kind is Morgan.
func fingerprintOptions(kind string, length, radius int) (rdkit.FingerprintOptions, error) {
	if kind == "" {
		kind = string(rdkit.FingerprintMorgan)
	}
	k, err := rdkit.ParseFingerprintKind(kind)
	if err != nil {
		return nil, errors.Newf(errors.ErrCodeFingerprintTypeUnsupported, "unsupported fingerprint type %q", kind)
	}
	return rdkit.DefaultFingerprintOptions(k, length, radius)
}

// bits returns the fingerprint bit string of in, through the cache.
func (s *serviceImpl) bits(ctx context.Context, in MoleculeInput, opts rdkit.FingerprintOptions, length, radius int) (string, error) {
	key := redis.Key("fp", in.Molecule, strconv.FormatBool(in.Query), strconv.FormatBool(in.KeepHs),
		string(opts.Kind()), strconv.Itoa(length), strconv.Itoa(radius))
	return s.cache.GetOrLoad(ctx, key, s.opts.CacheTTL, func(ctx context.Context) (string, error) {
		var fp string
		err := s.withMolecule(ctx, in, func(m *rdkit.Molecule) (err error) {
			fp, err = m.Fingerprint(opts)
			return err
		})
		return fp, err
	})
}

func (s *serviceImpl) Fingerprint(ctx context.Context, input *FingerprintInput) (*FingerprintResult, error) {
	opts, err := fingerprintOptions(input.Kind, input.Length, input.Radius)
	if err != nil {
		return nil, err
	}
	if err := s.validateMolecule(input.MoleculeInput); err != nil {
		return nil, err
	}
	fp, err := s.bits(ctx, input.MoleculeInput, opts, input.Length, input.Radius)
	if err != nil {
		return nil, err
	}
	bv, err := domainMol.ParseBitString(string(opts.Kind()), fp)
	if err != nil {
		return nil, err
	}
	return &FingerprintResult{Kind: opts.Kind(), Length: bv.Len(), OnBits: bv.Count(), Bits: fp}, nil
}

func (s *serviceImpl) Similarity(ctx context.Context, input *SimilarityInput) (*SimilarityResult, error) {
	metric, err := domainMol.ParseSimilarityMetric(input.Metric)
	if err != nil {
		return nil, err
	}
	calc, err := domainMol.NewSimilarityCalculator(metric)
	if err != nil {
		return nil, err
	}
	opts, err := fingerprintOptions(input.Kind, input.Length, input.Radius)
	if err != nil {
		return nil, err
	}

	vectors := make([]*domainMol.BitVector, 2)
	for i, in := range []MoleculeInput{input.A, input.B} {
		if err := s.validateMolecule(in); err != nil {
			return nil, err
		}
		fp, err := s.bits(ctx, in, opts, input.Length, input.Radius)
		if err != nil {
			return nil, err
		}
		if vectors[i], err = domainMol.ParseBitString(string(opts.Kind()), fp); err != nil {
			return nil, err
		}
	}

	score, err := calc.Calculate(vectors[0], vectors[1])
	if err != nil {
		return nil, err
	}
	return &SimilarityResult{
		Kind:           opts.Kind(),
		Metric:         metric,
		Score:          score,
		Classification: domainMol.ClassifySimilarity(score),
	}, nil
}

// parseSteps resolves step names; an empty list is DefaultStandardizeSteps.
func parseSteps(names []string) ([]rdkit.Step, error) {
	if len(names) == 0 {
		return append([]rdkit.Step(nil), DefaultStandardizeSteps...), nil
	}
	steps := make([]rdkit.Step, len(names))
	for i, n := range names {
		st, err := rdkit.ParseStep(n)
		if err != nil {
			return nil, errors.Newf(errors.ErrCodeStandardizationStepUnknown, "unknown standardization step %q", n)
		}
		steps[i] = st
	}
	return steps, nil
}

func (s *serviceImpl) Standardize(ctx context.Context, input *StandardizeInput) (*StandardizeResult, error) {
	steps, err := parseSteps(input.Steps)
	if err != nil {
		return nil, err
	}
	out := StandardizeResult{Steps: steps}
	err = s.withMolecule(ctx, input.MoleculeInput, func(m *rdkit.Molecule) (err error) {
		if _, err = m.StandardizeInPlace(steps...); err != nil {
			return err
		}
		out.SMILES, err = m.SMILES()
		return err
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *serviceImpl) Fragments(ctx context.Context, input *FragmentsInput) (*FragmentsResult, error) {
	var opts []rdkit.FragmentOption
	if input.Sanitize != nil {
		opts = append(opts, rdkit.WithSanitizeFragments(*input.Sanitize))
	}
	var out FragmentsResult
	err := s.withMolecule(ctx, input.MoleculeInput, func(m *rdkit.Molecule) error {
		frags, err := m.Fragments(opts...)
		if err != nil {
			return err
		}
		defer func() {
			for _, f := range frags {
				_ = f.Close()
			}
		}()
		out.Fragments = make([]string, len(frags))
		for i, f := range frags {
			if out.Fragments[i], err = f.SMILES(); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *serviceImpl) Descriptors(ctx context.Context, input *MoleculeInput) (*DescriptorsResult, error) {
	var out DescriptorsResult
	err := s.withMolecule(ctx, *input, func(m *rdkit.Molecule) (err error) {
		if out.Descriptors, err = m.Descriptors(); err != nil {
			return err
		}
		if out.NumAtoms, err = m.NumAtoms(false); err != nil {
			return err
		}
		out.NumHeavyAtoms, err = m.NumHeavyAtoms()
		return err
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *serviceImpl) Depict(ctx context.Context, input *DepictInput) (*DepictResult, error) {
	if err := s.validateMolecule(input.MoleculeInput); err != nil {
		return nil, err
	}
	if input.Width < 0 || input.Height < 0 {
		return nil, errors.InvalidParam("width and height must not be negative")
	}
	key := redis.Key("depict", input.Molecule, strconv.FormatBool(input.Query), strconv.FormatBool(input.KeepHs),
		strconv.Itoa(input.Width), strconv.Itoa(input.Height))
	svg, err := s.cache.GetOrLoad(ctx, key, s.opts.CacheTTL, func(ctx context.Context) (string, error) {
		var svg string
		err := s.withMolecule(ctx, input.MoleculeInput, func(m *rdkit.Molecule) (err error) {
			svg, err = m.SVG(input.Width, input.Height)
			return err
		})
		return svg, err
	})
	if err != nil {
		return nil, err
	}
	return &DepictResult{SVG: svg}, nil
}

func (s *serviceImpl) DepictReaction(ctx context.Context, input *DepictReactionInput) (*DepictResult, error) {
	if strings.TrimSpace(input.Reaction) == "" {
		return nil, errors.InvalidParam("reaction is required")
	}
	if input.Width < 0 || input.Height < 0 {
		return nil, errors.InvalidParam("width and height must not be negative")
	}
	key := redis.Key("rxn", input.Reaction, strconv.Itoa(input.Width), strconv.Itoa(input.Height))
	svg, err := s.cache.GetOrLoad(ctx, key, s.opts.CacheTTL, func(ctx context.Context) (string, error) {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		rxn, err := s.handle.ReactionFromSMARTS(input.Reaction)
		if err != nil {
			return "", err
		}
		defer rxn.Close()
		return rxn.SVG(input.Width, input.Height)
	})
	if err != nil {
		return nil, err
	}
	return &DepictResult{SVG: svg}, nil
}

func (s *serviceImpl) validateMolecule(in MoleculeInput) error {
	if strings.TrimSpace(in.Molecule) == "" {
		return errors.InvalidParam("molecule is required")
	}
	return nil
}

//Personal.AI order the ending
