package rdkit

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/rdkit-go/internal/testutil"
)

type recordingInstrumentation struct {
	mu    sync.Mutex
	calls map[string]int
	errs  map[string]int
	live  []int64
}

func newRecordingInstrumentation() *recordingInstrumentation {
	return &recordingInstrumentation{calls: map[string]int{}, errs: map[string]int{}}
}

func (r *recordingInstrumentation) ObserveCall(fn string, _ time.Duration, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls[fn]++
	if err != nil {
		r.errs[fn]++
	}
}

func (r *recordingInstrumentation) SetLiveBuffers(n int64) {
	r.mu.Lock()
	r.live = append(r.live, n)
	r.mu.Unlock()
}

// newTestHandle returns a Handle over a fresh FakeRDKit.  The test fails if
// the fake heap recorded any ownership violation.
func newTestHandle(t *testing.T, opts ...Option) (*Handle, *testutil.FakeRDKit) {
	t.Helper()
	fake := testutil.NewFakeRDKit()
	opts = append([]Option{WithLogger(testutil.NewMockLogger()), WithoutFinalizers()}, opts...)
	h := NewHandle(fake.Library(), opts...)
	t.Cleanup(func() {
		assert.Empty(t, fake.Heap.Violations(), "native heap violations")
	})
	return h, fake
}

// assertNoLeaks checks that every native allocation has been freed.
func assertNoLeaks(t *testing.T, h *Handle, fake *testutil.FakeRDKit) {
	t.Helper()
	assert.Zero(t, fake.Heap.Live(), "live native blocks: %v", fake.Heap.LiveAddresses())
	assert.Zero(t, h.LiveBuffers())
}

func TestNewHandle_NilLibraryPanics(t *testing.T) {
	assert.Panics(t, func() { NewHandle(nil) })
}

func TestOpen_NoCandidates(t *testing.T) {
	_, err := Open(nil, WithLogger(testutil.NewMockLogger()))
	require.Error(t, err)
	assert.True(t, IsLibraryLoad(err))
	assert.True(t, errors.Is(err, ErrLibraryLoad))
}

func TestOpen_MissingLibrary(t *testing.T) {
	_, err := Open([]string{"/nonexistent/librdkitcffi.so"}, WithLogger(testutil.NewMockLogger()))
	require.Error(t, err)
	assert.True(t, IsLibraryLoad(err))
}

func TestHandle_Version(t *testing.T) {
	h, fake := newTestHandle(t)

	v, err := h.Version()
	require.NoError(t, err)
	assert.Equal(t, testutil.FakeVersion, v)
	assert.Equal(t, 1, fake.Calls("free_ptr"))
	assertNoLeaks(t, h, fake)
}

func TestHandle_VersionNullIsBadPointer(t *testing.T) {
	h, fake := newTestHandle(t)
	fake.FailWithNull("version")

	_, err := h.Version()
	require.Error(t, err)
	assert.True(t, IsBadPointer(err))
	assert.Zero(t, fake.Calls("free_ptr"))
}

func TestHandle_LibraryPath(t *testing.T) {
	h, _ := newTestHandle(t)
	assert.Equal(t, "fake://librdkitcffi", h.LibraryPath())
}

func TestHandle_LoggingSwitches(t *testing.T) {
	h, fake := newTestHandle(t)

	h.EnableLogging()
	assert.True(t, fake.LoggingEnabled())
	h.DisableLogging()
	assert.False(t, fake.LoggingEnabled())
}

func TestHandle_PreferCoordgen(t *testing.T) {
	h, fake := newTestHandle(t)

	h.PreferCoordgen(true)
	assert.True(t, fake.CoordgenPreferred())
	h.PreferCoordgen(false)
	assert.False(t, fake.CoordgenPreferred())
}

func TestHandle_ChiralitySwitchesReturnPrevious(t *testing.T) {
	h, _ := newTestHandle(t)

	assert.True(t, h.UseLegacyStereoPerception(false))
	assert.False(t, h.UseLegacyStereoPerception(true))

	assert.False(t, h.AllowNonTetrahedralChirality(true))
	assert.True(t, h.AllowNonTetrahedralChirality(false))
}

func TestHandle_Instrumentation(t *testing.T) {
	instr := newRecordingInstrumentation()
	h, fake := newTestHandle(t, WithInstrumentation(instr))

	mol, err := h.MolFromSMILES("CCO")
	require.NoError(t, err)
	_, err = h.MolFromSMILES("C?C")
	require.Error(t, err)
	require.NoError(t, mol.Close())

	assert.Equal(t, 2, instr.calls["get_mol"])
	assert.Equal(t, 1, instr.errs["get_mol"])
	assert.Equal(t, []int64{1, 0}, instr.live)
	assertNoLeaks(t, h, fake)
}

func TestHandle_RejectedInputLogsAtDebug(t *testing.T) {
	logger := testutil.NewMockLogger()
	h, _ := newTestHandle(t, WithLogger(logger))

	_, err := h.MolFromSMILES("C?C")
	require.Error(t, err)

	assert.True(t, logger.HasMessage("debug", "native call rejected input"))
	assert.False(t, logger.HasMessageContaining("warn", "native call"))
}

func TestHandle_BadStatusLogsAtWarn(t *testing.T) {
	logger := testutil.NewMockLogger()
	h, fake := newTestHandle(t, WithLogger(logger))
	fake.FailWithStatus("cleanup", 0)

	mol, err := h.MolFromSMILES("CCO")
	require.NoError(t, err)
	defer mol.Close()
	_, err = mol.CleanupInPlace()
	require.Error(t, err)

	assert.True(t, logger.HasMessageContaining("warn", "native call"))
}

func TestSetDefault(t *testing.T) {
	h, _ := newTestHandle(t)
	SetDefault(h)
	t.Cleanup(func() { SetDefault(nil) })

	got, err := Default()
	require.NoError(t, err)
	assert.Same(t, h, got)
}

func TestHandle_ConcurrentMolecules(t *testing.T) {
	h, fake := newTestHandle(t)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			mol, err := h.MolFromSMILES("OCC")
			if !assert.NoError(t, err) {
				return
			}
			defer mol.Close()
			smiles, err := mol.SMILES()
			assert.NoError(t, err)
			assert.Equal(t, "CCO", smiles)
		}()
	}
	wg.Wait()
	assertNoLeaks(t, h, fake)
}

//Personal.AI order the ending
