package molecule

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/turtacn/rdkit-go/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/rdkit-go/pkg/errors"
)

// BatchOperation names the per-item operation of a batch.
type BatchOperation string

const (
	BatchCanonical   BatchOperation = "canonical"
	BatchConvert     BatchOperation = "convert"
	BatchFingerprint BatchOperation = "fingerprint"
	BatchDescriptors BatchOperation = "descriptors"
	BatchStandardize BatchOperation = "standardize"
)

// BatchOperations lists every batch operation.
var BatchOperations = []BatchOperation{
	BatchCanonical, BatchConvert, BatchFingerprint, BatchDescriptors, BatchStandardize,
}

func ParseBatchOperation(s string) (BatchOperation, error) {
	op := BatchOperation(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range BatchOperations {
		if op == known {
			return op, nil
		}
	}
	return "", errors.Newf(errors.ErrCodeBadRequest, "unsupported batch operation %q", s)
}

// BatchInput applies one operation to many molecules.  The option fields
// are those of the matching single-item input.
type BatchInput struct {
	Operation string   `json:"operation"`
	Molecules []string `json:"molecules"`
	Query     bool     `json:"query,omitempty"`
	Format    string   `json:"format,omitempty"`
	Kind      string   `json:"kind,omitempty"`
	Length    int      `json:"length,omitempty"`
	Radius    int      `json:"radius,omitempty"`
	Steps     []string `json:"steps,omitempty"`
}

// BatchItem is the outcome for one input, in input order.  Exactly one of
// Result and Error is set.
type BatchItem struct {
	Index  int         `json:"index"`
	Input  string      `json:"input"`
	Result interface{} `json:"result,omitempty"`
	Error  *ItemError  `json:"error,omitempty"`
}

// ItemError is the wire form of a per-item failure.
type ItemError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type BatchResult struct {
	Operation BatchOperation `json:"operation"`
	Succeeded int            `json:"succeeded"`
	Failed    int            `json:"failed"`
	Items     []BatchItem    `json:"items"`
}

// Batch runs the operation over every input with at most Concurrency items
// in flight.  Item failures are reported per item; only cancellation or an
// invalid request fails the whole batch.
func (s *serviceImpl) Batch(ctx context.Context, input *BatchInput) (*BatchResult, error) {
	op, err := ParseBatchOperation(input.Operation)
	if err != nil {
		return nil, err
	}
	if len(input.Molecules) == 0 {
		return nil, errors.InvalidParam("molecules must not be empty")
	}
	if len(input.Molecules) > s.opts.MaxBatchSize {
		return nil, errors.Newf(errors.ErrCodeBatchLimitExceeded,
			"batch of %d exceeds the limit of %d", len(input.Molecules), s.opts.MaxBatchSize)
	}
	run, err := s.batchRunner(op, input)
	if err != nil {
		return nil, err
	}

	items := make([]BatchItem, len(input.Molecules))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Concurrency)
	for i, text := range input.Molecules {
		i, text := i, text
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			res, err := run(gCtx, MoleculeInput{Molecule: text, Query: input.Query})
			s.observer.RecordBatchItem(string(op), err)
			items[i] = BatchItem{Index: i, Input: text}
			if err != nil {
				items[i].Error = toItemError(err)
				return nil
			}
			items[i].Result = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := &BatchResult{Operation: op, Items: items}
	for _, it := range items {
		if it.Error != nil {
			out.Failed++
		} else {
			out.Succeeded++
		}
	}
	s.logger.Debug("batch completed",
		logging.String("operation", string(op)),
		logging.Int("succeeded", out.Succeeded),
		logging.Int("failed", out.Failed),
	)
	return out, nil
}

type batchFunc func(ctx context.Context, in MoleculeInput) (interface{}, error)

// batchRunner validates the shared options once and returns the per-item call.
func (s *serviceImpl) batchRunner(op BatchOperation, input *BatchInput) (batchFunc, error) {
	switch op {
	case BatchConvert:
		if _, err := ParseFormat(input.Format); err != nil {
			return nil, err
		}
		return func(ctx context.Context, in MoleculeInput) (interface{}, error) {
			return s.Convert(ctx, &ConvertInput{MoleculeInput: in, Format: input.Format})
		}, nil
	case BatchFingerprint:
		if _, err := fingerprintOptions(input.Kind, input.Length, input.Radius); err != nil {
			return nil, err
		}
		return func(ctx context.Context, in MoleculeInput) (interface{}, error) {
			return s.Fingerprint(ctx, &FingerprintInput{MoleculeInput: in, Kind: input.Kind, Length: input.Length, Radius: input.Radius})
		}, nil
	case BatchDescriptors:
		return func(ctx context.Context, in MoleculeInput) (interface{}, error) {
			return s.Descriptors(ctx, &in)
		}, nil
	case BatchStandardize:
		if _, err := parseSteps(input.Steps); err != nil {
			return nil, err
		}
		return func(ctx context.Context, in MoleculeInput) (interface{}, error) {
			return s.Standardize(ctx, &StandardizeInput{MoleculeInput: in, Steps: input.Steps})
		}, nil
	default:
		return func(ctx context.Context, in MoleculeInput) (interface{}, error) {
			return s.Canonicalize(ctx, &in)
		}, nil
	}
}

func toItemError(err error) *ItemError {
	if ae, ok := errors.AsAppError(err); ok {
		return &ItemError{Code: string(ae.Code), Message: ae.Error()}
	}
	return &ItemError{Code: string(errors.CodeUnknown), Message: err.Error()}
}

//Personal.AI order the ending
