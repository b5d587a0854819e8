// Package rdkit is a Go binding for the RDKit MinimalLib C API.
//
// A Handle owns the loaded library.  Molecules and Reactions are created
// from a Handle and each owns exactly one native pickle, released by Close
// or, failing that, by a finalizer.  Read-only results are copied into Go
// memory and their native buffers freed before the call returns.
//
//	h, err := rdkit.Default()
//	mol, err := h.MolFromSMILES("c1ccccc1O")
//	defer mol.Close()
//	pattern, err := h.MolFromSMARTS("ccO")
//	defer pattern.Close()
//	matches, err := mol.Match(pattern) // [[0 5 6] [4 5 6]]
package rdkit

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/turtacn/rdkit-go/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/rdkit-go/internal/infrastructure/native"
	apperrors "github.com/turtacn/rdkit-go/pkg/errors"
)

// Instrumentation receives one observation per native call and the current
// number of live owned buffers.
type Instrumentation interface {
	ObserveCall(function string, elapsed time.Duration, err error)
	SetLiveBuffers(n int64)
}

type nopInstrumentation struct{}

func (nopInstrumentation) ObserveCall(string, time.Duration, error) {}
func (nopInstrumentation) SetLiveBuffers(int64)                     {}

// Handle is a loaded librdkitcffi.  It is safe for concurrent use; its
// function table is read-only after construction.
type Handle struct {
	lib        *native.Library
	logger     logging.Logger
	instr      Instrumentation
	finalizers bool
	live       atomic.Int64
}

// Option configures a Handle.
type Option func(*Handle)

// WithLogger sets the logger used for load and call diagnostics.
func WithLogger(l logging.Logger) Option {
	return func(h *Handle) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithInstrumentation installs a call observer, typically Prometheus metrics.
func WithInstrumentation(i Instrumentation) Option {
	return func(h *Handle) {
		if i != nil {
			h.instr = i
		}
	}
}

// WithoutFinalizers disables GC release of unclosed objects.  Leak tests use
// it so an unclosed buffer stays visible.
func WithoutFinalizers() Option {
	return func(h *Handle) { h.finalizers = false }
}

func newHandle(opts []Option) *Handle {
	h := &Handle{logger: logging.Default(), instr: nopInstrumentation{}, finalizers: true}
	for _, o := range opts {
		o(h)
	}
	h.logger = h.logger.Named("rdkit")
	return h
}

// NewHandle wraps an already loaded library.  lib must not be nil.
func NewHandle(lib *native.Library, opts ...Option) *Handle {
	if lib == nil || lib.Bindings == nil || lib.Memory == nil {
		panic("rdkit: NewHandle requires a loaded library")
	}
	h := newHandle(opts)
	h.lib = lib
	return h
}

// Open loads librdkitcffi from the first usable path in paths.
func Open(paths []string, opts ...Option) (*Handle, error) {
	h := newHandle(opts)
	lib, err := native.NewLoader(h.logger).Load(paths)
	if err != nil {
		return nil, err
	}
	h.lib = lib
	return h, nil
}

var (
	defaultMu     sync.Mutex
	defaultHandle *Handle
)

// Default returns the process-wide Handle, loading it on first use from
// native.CandidatePaths.  A successful load is kept for the life of the
// process; a failed load is not cached and the next call retries.
func Default() (*Handle, error) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultHandle != nil {
		return defaultHandle, nil
	}
	h, err := Open(native.CandidatePaths(nil, native.ExecutableVendorRoot()))
	if err != nil {
		return nil, err
	}
	defaultHandle = h
	return h, nil
}

// SetDefault installs h as the process-wide Handle.  Binaries call it once
// at startup after loading from configured paths.
func SetDefault(h *Handle) {
	defaultMu.Lock()
	defaultHandle = h
	defaultMu.Unlock()
}

// LibraryPath returns the path the library was loaded from.
func (h *Handle) LibraryPath() string { return h.lib.Path }

// LiveBuffers returns the number of owned pickles not yet released.
func (h *Handle) LiveBuffers() int64 { return h.live.Load() }

// Version returns the RDKit version string.
func (h *Handle) Version() (string, error) {
	return h.callString("version", func() uintptr { return h.lib.Version() })
}

// EnableLogging and DisableLogging switch RDKit's own log streams.
func (h *Handle) EnableLogging()  { h.lib.EnableLogging() }
func (h *Handle) DisableLogging() { h.lib.DisableLogging() }

// PreferCoordgen selects the Coordgen 2D layout engine process-wide.
func (h *Handle) PreferCoordgen(prefer bool) {
	h.lib.PreferCoordgen(boolToShort(prefer))
}

// UseLegacyStereoPerception toggles legacy stereo perception and returns
// the previous setting.
func (h *Handle) UseLegacyStereoPerception(enabled bool) bool {
	return h.lib.UseLegacyStereoPerception(boolToShort(enabled)) != 0
}

// AllowNonTetrahedralChirality toggles non-tetrahedral chirality support and
// returns the previous setting.
func (h *Handle) AllowNonTetrahedralChirality(enabled bool) bool {
	return h.lib.AllowNonTetrahedralChirality(boolToShort(enabled)) != 0
}

func boolToShort(b bool) int16 {
	if b {
		return 1
	}
	return 0
}

// observe records a finished native call.  Caller-side mistakes such as an
// unparsable SMILES are logged at debug.
func (h *Handle) observe(fn string, start time.Time, err error) {
	h.instr.ObserveCall(fn, time.Since(start), err)
	if err != nil && callerMistake(err) {
		h.logger.Debug("native call rejected input", logging.String(logging.FieldFunction, fn), logging.Err(err))
		return
	}
	logging.LogNativeCall(h.logger, fn, start, err)
}

func callerMistake(err error) bool {
	switch apperrors.GetCode(err) {
	case apperrors.ErrCodeRDKitInvalidInput, apperrors.ErrCodeRDKitInvalidArgument,
		apperrors.ErrCodeRDKitTypeMismatch, apperrors.ErrCodeRDKitReleased:
		return true
	}
	return false
}

func (h *Handle) trackFinalizer(obj interface{}, finalize interface{}) {
	if h.finalizers {
		runtime.SetFinalizer(obj, finalize)
	}
}

//Personal.AI order the ending
