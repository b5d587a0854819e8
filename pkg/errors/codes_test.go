package errors

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorCode_String(t *testing.T) {
	assert.Equal(t, "COMMON_001", ErrCodeInternal.String())
	assert.Equal(t, "RDK_001", ErrCodeRDKitInvalidInput.String())
}

func TestHTTPStatusForCode(t *testing.T) {
	tests := []struct {
		code     ErrorCode
		expected int
	}{
		{ErrCodeInternal, 500},
		{ErrCodeBadRequest, 400},
		{ErrCodeNotFound, 404},
		{ErrCodeValidation, 422},
		{ErrCodeRDKitInvalidInput, 400},
		{ErrCodeRDKitTypeMismatch, 400},
		{ErrCodeRDKitBadStatus, 422},
		{ErrCodeRDKitBadPointer, 500},
		{ErrCodeRDKitInvalidArgument, 400},
		{ErrCodeRDKitLibraryLoad, 503},
		{ErrCodeRDKitReleased, 409},
		{ErrorCode("UNKNOWN"), 500},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, HTTPStatusForCode(tt.code), tt.code.String())
	}
}

func TestDefaultMessageForCode(t *testing.T) {
	assert.Equal(t, "internal server error", DefaultMessageForCode(ErrCodeInternal))
	assert.Equal(t, "invalid input", DefaultMessageForCode(ErrCodeRDKitInvalidInput))
	assert.Equal(t, "bad pointer", DefaultMessageForCode(ErrCodeRDKitBadPointer))
	assert.Equal(t, "unknown error", DefaultMessageForCode(ErrorCode("UNKNOWN")))
}

func TestIsClientError(t *testing.T) {
	assert.True(t, IsClientError(ErrCodeBadRequest))
	assert.True(t, IsClientError(ErrCodeRDKitInvalidArgument))
	assert.False(t, IsClientError(ErrCodeRDKitBadPointer))
}

func TestIsServerError(t *testing.T) {
	assert.True(t, IsServerError(ErrCodeInternal))
	assert.True(t, IsServerError(ErrCodeRDKitLibraryLoad))
	assert.False(t, IsServerError(ErrCodeRDKitTypeMismatch))
}

func TestModuleForCode(t *testing.T) {
	assert.Equal(t, "COMMON", ModuleForCode(ErrCodeInternal))
	assert.Equal(t, "RDK", ModuleForCode(ErrCodeRDKitBadStatus))
	assert.Equal(t, "MOL", ModuleForCode(ErrCodeFingerprintTypeUnsupported))
	assert.Equal(t, "UNKNOWN", ModuleForCode(ErrorCode("")))
}

func TestAllCodesHaveStatusAndMessage(t *testing.T) {
	pattern := regexp.MustCompile(`^[A-Z]+_\d{3}$`)
	for code := range ErrorCodeHTTPStatus {
		assert.Regexp(t, pattern, string(code))
		_, ok := ErrorCodeMessage[code]
		assert.True(t, ok, "missing message for %s", code)
	}
	assert.Len(t, ErrorCodeMessage, len(ErrorCodeHTTPStatus))
}

//Personal.AI order the ending
