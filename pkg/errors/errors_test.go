package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/rdkit-go/pkg/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// New / Wrap
// ─────────────────────────────────────────────────────────────────────────────

func TestNew_FieldsAreSetCorrectly(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		code    errors.ErrorCode
		message string
	}{
		{"invalid input", errors.ErrCodeRDKitInvalidInput, "invalid input"},
		{"bad status", errors.ErrCodeRDKitBadStatus, "bad status: 0"},
		{"internal", errors.CodeInternal, "unexpected failure"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ae := errors.New(tc.code, tc.message)
			require.NotNil(t, ae)
			assert.Equal(t, tc.code, ae.Code)
			assert.Equal(t, tc.message, ae.Message)
			assert.Empty(t, ae.Detail)
			assert.Nil(t, ae.Cause)
		})
	}
}

func TestNewf_FormatsMessage(t *testing.T) {
	t.Parallel()

	ae := errors.Newf(errors.ErrCodeRDKitBadStatus, "bad status: %d", 0)
	assert.Equal(t, "bad status: 0", ae.Message)
}

func TestWrap_NilErrReturnsNil(t *testing.T) {
	t.Parallel()

	assert.Nil(t, errors.Wrap(nil, errors.CodeInternal, "ignored"))
}

func TestWrap_CauseChainIsPreserved(t *testing.T) {
	t.Parallel()

	root := stderrors.New("dlopen: no such file")
	wrapped := errors.Wrap(root, errors.ErrCodeRDKitLibraryLoad, "rdkit library could not be loaded")

	require.NotNil(t, wrapped)
	assert.Equal(t, errors.ErrCodeRDKitLibraryLoad, wrapped.Code)
	assert.Equal(t, root, wrapped.Cause)
	assert.Equal(t, root, stderrors.Unwrap(wrapped))
	assert.ErrorIs(t, wrapped, root)
}

func TestWrap_PreservesOriginalCodeWhenCodeUnknown(t *testing.T) {
	t.Parallel()

	inner := errors.New(errors.ErrCodeRDKitInvalidInput, "invalid input")
	outer := errors.Wrap(inner, errors.CodeUnknown, "parsing batch item 3")

	assert.Equal(t, errors.ErrCodeRDKitInvalidInput, outer.Code)
}

func TestWrap_OverridesCodeWhenExplicit(t *testing.T) {
	t.Parallel()

	inner := errors.New(errors.ErrCodeRDKitInvalidInput, "invalid input")
	outer := errors.Wrap(inner, errors.CodeInternal, "unexpected")

	assert.Equal(t, errors.CodeInternal, outer.Code)
}

// ─────────────────────────────────────────────────────────────────────────────
// Error() / Is
// ─────────────────────────────────────────────────────────────────────────────

func TestError_Format(t *testing.T) {
	t.Parallel()

	ae := errors.New(errors.ErrCodeRDKitInvalidInput, "invalid input")
	assert.Equal(t, "[RDK_001] invalid input", ae.Error())
	assert.Equal(t, "[RDK_001] invalid input: smiles=?", ae.WithDetail("smiles=?").Error())
}

func TestIs_MatchesByCode(t *testing.T) {
	t.Parallel()

	sentinel := &errors.AppError{Code: errors.ErrCodeRDKitBadPointer}
	err := fmt.Errorf("get_svg: %w", errors.New(errors.ErrCodeRDKitBadPointer, "bad pointer"))

	assert.ErrorIs(t, err, sentinel)
	assert.NotErrorIs(t, err, &errors.AppError{Code: errors.ErrCodeRDKitBadStatus})
}

func TestHTTPStatus(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 400, errors.New(errors.ErrCodeRDKitInvalidArgument, "x").HTTPStatus())
}

// ─────────────────────────────────────────────────────────────────────────────
// WithDetail / WithCause
// ─────────────────────────────────────────────────────────────────────────────

func TestWithDetail_CopySemantics(t *testing.T) {
	t.Parallel()

	original := errors.New(errors.CodeNotFound, "missing")
	detailed := original.WithDetail("id=42")

	assert.Empty(t, original.Detail)
	assert.Equal(t, "id=42", detailed.Detail)
	assert.Equal(t, original.Code, detailed.Code)

	var nilErr *errors.AppError
	assert.Nil(t, nilErr.WithDetail("x"))
}

func TestWithCause_CopySemantics(t *testing.T) {
	t.Parallel()

	cause := stderrors.New("cause")
	original := errors.New(errors.CodeInternal, "failure")
	withCause := original.WithCause(cause)

	assert.Nil(t, original.Cause)
	assert.Equal(t, cause, stderrors.Unwrap(withCause))

	var nilErr *errors.AppError
	assert.Nil(t, nilErr.WithCause(cause))
}

// ─────────────────────────────────────────────────────────────────────────────
// IsCode / GetCode
// ─────────────────────────────────────────────────────────────────────────────

func TestIsCode_NestedChain(t *testing.T) {
	t.Parallel()

	root := errors.New(errors.ErrCodeRDKitBadStatus, "bad status: 0")
	wrapped := fmt.Errorf("standardize: %w", errors.Wrap(root, errors.CodeInternal, "service error"))

	assert.True(t, errors.IsCode(wrapped, errors.ErrCodeRDKitBadStatus))
	assert.True(t, errors.IsCode(wrapped, errors.CodeInternal))
	assert.False(t, errors.IsCode(wrapped, errors.ErrCodeRDKitInvalidInput))
	assert.False(t, errors.IsCode(nil, errors.CodeInternal))
}

func TestIsNotFound(t *testing.T) {
	t.Parallel()

	assert.True(t, errors.IsNotFound(errors.NotFound("x")))
	assert.True(t, errors.IsNotFound(fmt.Errorf("ctx: %w", errors.NotFound("x"))))
	assert.False(t, errors.IsNotFound(errors.InvalidParam("x")))
	assert.False(t, errors.IsNotFound(stderrors.New("x")))
}

func TestGetCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, errors.CodeOK, errors.GetCode(nil))
	assert.Equal(t, errors.CodeUnknown, errors.GetCode(stderrors.New("plain")))
	assert.Equal(t, errors.ErrCodeRDKitReleased, errors.GetCode(errors.New(errors.ErrCodeRDKitReleased, "released")))
}

func TestAsAppError(t *testing.T) {
	t.Parallel()

	inner := errors.New(errors.ErrCodeRDKitBadStatus, "bad status")
	ae, ok := errors.AsAppError(fmt.Errorf("mutating: %w", inner))
	require.True(t, ok)
	assert.Same(t, inner, ae)

	_, ok = errors.AsAppError(stderrors.New("plain"))
	assert.False(t, ok)
}

func TestConvenienceFactories(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err  *errors.AppError
		code errors.ErrorCode
	}{
		{errors.NotFound("x"), errors.CodeNotFound},
		{errors.InvalidParam("x"), errors.CodeInvalidParam},
		{errors.Unavailable("x"), errors.ErrCodeServiceUnavailable},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.code, tc.err.Code)
		assert.NotEmpty(t, tc.err.Stack)
	}
}

//Personal.AI order the ending
