package client

import (
	"context"
	"encoding/json"

	"github.com/turtacn/rdkit-go/pkg/errors"
)

// ---------------------------------------------------------------------------
// DTOs: request / response
// ---------------------------------------------------------------------------

// Input names one molecule as SMILES, SMARTS (Query) or a molblock.
type Input struct {
	Molecule string `json:"molecule"`
	Query    bool   `json:"query,omitempty"`
	KeepHs   bool   `json:"keep_hs,omitempty"`
}

func (in Input) validate() error {
	if in.Molecule == "" {
		return errors.InvalidParam("molecule is required")
	}
	return nil
}

type ConvertRequest struct {
	Input
	Format string `json:"format"`
}

// MatchRequest matches with chirality unless UseChirality points to false.
type MatchRequest struct {
	Input
	Pattern      string `json:"pattern"`
	UseChirality *bool  `json:"use_chirality,omitempty"`
	MaxMatches   int    `json:"max_matches,omitempty"`
}

type FingerprintRequest struct {
	Input
	Kind   string `json:"kind,omitempty"`
	Length int    `json:"length,omitempty"`
	Radius int    `json:"radius,omitempty"`
}

type SimilarityRequest struct {
	A      Input  `json:"a"`
	B      Input  `json:"b"`
	Kind   string `json:"kind,omitempty"`
	Length int    `json:"length,omitempty"`
	Radius int    `json:"radius,omitempty"`
	Metric string `json:"metric,omitempty"`
}

type StandardizeRequest struct {
	Input
	Steps []string `json:"steps,omitempty"`
}

type FragmentsRequest struct {
	Input
	Sanitize *bool `json:"sanitize,omitempty"`
}

type DepictRequest struct {
	Input
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`
}

type ReactionDepictRequest struct {
	Reaction string `json:"reaction"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
}

// BatchRequest applies Operation ("canonical", "convert", "fingerprint",
// "descriptors" or "standardize") to every molecule.  Only the option
// fields of that operation are read.
type BatchRequest struct {
	Operation string   `json:"operation"`
	Molecules []string `json:"molecules"`
	Query     bool     `json:"query,omitempty"`
	Format    string   `json:"format,omitempty"`
	Kind      string   `json:"kind,omitempty"`
	Length    int      `json:"length,omitempty"`
	Radius    int      `json:"radius,omitempty"`
	Steps     []string `json:"steps,omitempty"`
}

type CanonicalResult struct {
	SMILES string `json:"smiles"`
}

type ConvertResult struct {
	Format string `json:"format"`
	Value  string `json:"value"`
}

// MatchResult lists atom indices of each match in pattern atom order.
type MatchResult struct {
	Matched bool    `json:"matched"`
	Count   int     `json:"count"`
	Matches [][]int `json:"matches"`
}

type FingerprintResult struct {
	Kind   string `json:"kind"`
	Length int    `json:"length"`
	OnBits int    `json:"on_bits"`
	Bits   string `json:"bits"`
}

type SimilarityResult struct {
	Kind           string  `json:"kind"`
	Metric         string  `json:"metric"`
	Score          float64 `json:"score"`
	Classification string  `json:"classification"`
}

type StandardizeResult struct {
	SMILES string   `json:"smiles"`
	Steps  []string `json:"steps"`
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

// BatchItem holds one molecule's outcome.  Result is the raw JSON of the
// per-operation result; decode it with DecodeResult.
type BatchItem struct {
	Index  int             `json:"index"`
	Input  string          `json:"input"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  *ItemError      `json:"error,omitempty"`
}

// DecodeResult unmarshals the item's result into v, e.g. a
// *CanonicalResult for a canonical batch.
func (it BatchItem) DecodeResult(v interface{}) error {
	if it.Error != nil {
		return &APIError{Code: it.Error.Code, Message: it.Error.Message}
	}
	return json.Unmarshal(it.Result, v)
}

type ItemError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type BatchResult struct {
	Operation string      `json:"operation"`
	Succeeded int         `json:"succeeded"`
	Failed    int         `json:"failed"`
	Items     []BatchItem `json:"items"`
}

// ---------------------------------------------------------------------------
// MoleculesClient
// ---------------------------------------------------------------------------

// MoleculesClient wraps /api/v1/molecules.
type MoleculesClient struct {
	client *Client
}

const moleculesPath = "/api/v1/molecules"

// call validates in, posts body and decodes into a fresh T.
func call[T any](ctx context.Context, c *Client, path string, in Input, body interface{}) (*T, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var out T
	if err := c.post(ctx, path, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (m *MoleculesClient) Canonical(ctx context.Context, in Input) (*CanonicalResult, error) {
	return call[CanonicalResult](ctx, m.client, moleculesPath+"/canonical", in, in)
}

func (m *MoleculesClient) Convert(ctx context.Context, req ConvertRequest) (*ConvertResult, error) {
	if req.Format == "" {
		return nil, errors.InvalidParam("format is required")
	}
	return call[ConvertResult](ctx, m.client, moleculesPath+"/convert", req.Input, req)
}

func (m *MoleculesClient) Match(ctx context.Context, req MatchRequest) (*MatchResult, error) {
	if req.Pattern == "" {
		return nil, errors.InvalidParam("pattern is required")
	}
	return call[MatchResult](ctx, m.client, moleculesPath+"/match", req.Input, req)
}

func (m *MoleculesClient) Fingerprint(ctx context.Context, req FingerprintRequest) (*FingerprintResult, error) {
	return call[FingerprintResult](ctx, m.client, moleculesPath+"/fingerprint", req.Input, req)
}

func (m *MoleculesClient) Similarity(ctx context.Context, req SimilarityRequest) (*SimilarityResult, error) {
	if err := req.B.validate(); err != nil {
		return nil, err
	}
	return call[SimilarityResult](ctx, m.client, moleculesPath+"/similarity", req.A, req)
}

func (m *MoleculesClient) Standardize(ctx context.Context, req StandardizeRequest) (*StandardizeResult, error) {
	return call[StandardizeResult](ctx, m.client, moleculesPath+"/standardize", req.Input, req)
}

func (m *MoleculesClient) Fragments(ctx context.Context, req FragmentsRequest) (*FragmentsResult, error) {
	return call[FragmentsResult](ctx, m.client, moleculesPath+"/fragments", req.Input, req)
}

func (m *MoleculesClient) Descriptors(ctx context.Context, in Input) (*DescriptorsResult, error) {
	return call[DescriptorsResult](ctx, m.client, moleculesPath+"/descriptors", in, in)
}

func (m *MoleculesClient) Depict(ctx context.Context, req DepictRequest) (*DepictResult, error) {
	if req.Width < 0 || req.Height < 0 {
		return nil, errors.InvalidParam("width and height must not be negative")
	}
	return call[DepictResult](ctx, m.client, moleculesPath+"/depict", req.Input, req)
}

// Batch fails as a whole only for an invalid request; per-molecule
// failures are reported in the items.
func (m *MoleculesClient) Batch(ctx context.Context, req BatchRequest) (*BatchResult, error) {
	if len(req.Molecules) == 0 {
		return nil, errors.InvalidParam("molecules must not be empty")
	}
	var out BatchResult
	if err := m.client.post(ctx, moleculesPath+"/batch", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ---------------------------------------------------------------------------
// ReactionsClient
// ---------------------------------------------------------------------------

// ReactionsClient wraps /api/v1/reactions.
type ReactionsClient struct {
	client *Client
}

func (r *ReactionsClient) Depict(ctx context.Context, req ReactionDepictRequest) (*DepictResult, error) {
	if req.Reaction == "" {
		return nil, errors.InvalidParam("reaction is required")
	}
	var out DepictResult
	if err := r.client.post(ctx, "/api/v1/reactions/depict", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

//Personal.AI order the ending
