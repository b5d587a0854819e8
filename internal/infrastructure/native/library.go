package native

import (
	"fmt"

	"github.com/turtacn/rdkit-go/internal/infrastructure/monitoring/logging"
	apperrors "github.com/turtacn/rdkit-go/pkg/errors"
)

// Library is a loaded librdkitcffi: its function table, a reader for the
// memory it hands back, and the path it was loaded from.
type Library struct {
	*Bindings
	Memory
	Path string
}

// Loader opens candidate shared objects and binds the function table.  The
// zero value is not usable; use NewLoader.  Hooks are exported so tests can
// exercise candidate fallback without a real library on disk.
type Loader struct {
	Open   func(path string) (uintptr, error)
	Sym    func(handle uintptr, name string) (uintptr, error)
	Bind   func(fn interface{}, addr uintptr)
	Close  func(handle uintptr) error
	Memory Memory
	Logger logging.Logger
}

// NewLoader returns a Loader backed by the platform dynamic linker.
func NewLoader(logger logging.Logger) *Loader {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Loader{
		Open:   systemOpen,
		Sym:    systemSym,
		Bind:   systemBind,
		Close:  systemClose,
		Memory: CMemory{},
		Logger: logger.Named("native"),
	}
}

// Load tries paths in order.  The first candidate that opens and resolves
// every symbol wins.  When all fail, the last error is returned wrapped as a
// library load error.
func (l *Loader) Load(paths []string) (*Library, error) {
	if len(paths) == 0 {
		return nil, apperrors.New(apperrors.ErrCodeRDKitLibraryLoad, "rdkit library could not be loaded").
			WithDetail("no candidate paths")
	}

	var lastErr error
	for _, path := range paths {
		lib, err := l.loadOne(path)
		if err == nil {
			l.Logger.Info("rdkit library loaded", logging.String(logging.FieldLibrary, path))
			return lib, nil
		}
		l.Logger.Debug("rdkit library candidate rejected",
			logging.String(logging.FieldLibrary, path), logging.Err(err))
		lastErr = err
	}
	return nil, apperrors.Wrap(lastErr, apperrors.ErrCodeRDKitLibraryLoad, "rdkit library could not be loaded").
		WithDetail(fmt.Sprintf("tried %d candidate(s)", len(paths)))
}

func (l *Loader) loadOne(path string) (lib *Library, err error) {
	handle, err := l.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	b := &Bindings{}
	symbols := b.Symbols()
	addrs := make([]uintptr, len(symbols))
	for i, s := range symbols {
		addr, serr := l.Sym(handle, s.Name)
		if serr == nil && addr == 0 {
			serr = fmt.Errorf("nil address")
		}
		if serr != nil {
			l.closeQuietly(handle)
			return nil, fmt.Errorf("%s: missing symbol %s: %w", path, s.Name, serr)
		}
		addrs[i] = addr
	}

	defer func() {
		if r := recover(); r != nil {
			l.closeQuietly(handle)
			lib, err = nil, fmt.Errorf("%s: bind: %v", path, r)
		}
	}()
	for i, s := range symbols {
		l.Bind(s.Fn, addrs[i])
	}
	return &Library{Bindings: b, Memory: l.Memory, Path: path}, nil
}

func (l *Loader) closeQuietly(handle uintptr) {
	if l.Close == nil {
		return
	}
	if err := l.Close(handle); err != nil {
		l.Logger.Debug("dlclose failed", logging.Err(err))
	}
}

//Personal.AI order the ending
