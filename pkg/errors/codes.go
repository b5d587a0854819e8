package errors

import (
	"net/http"
	"strings"
)

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common Error Codes
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeNotFound           ErrorCode = "COMMON_005"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_008"
	ErrCodeTimeout            ErrorCode = "COMMON_009"
	ErrCodeValidation         ErrorCode = "COMMON_010"
	ErrCodeCacheError         ErrorCode = "COMMON_013"
	ErrCodePayloadTooLarge    ErrorCode = "COMMON_014"
)

// Aliases used at call sites.
const (
	CodeInternal     = ErrCodeInternal
	CodeInvalidParam = ErrCodeBadRequest
	CodeNotFound     = ErrCodeNotFound
	CodeOK           = ErrorCode("OK")
	CodeUnknown      = ErrorCode("UNKNOWN")
)

// Native binding error codes.  Each maps to one failure class of the
// RDKit MinimalLib call boundary.
const (
	// ErrCodeRDKitInvalidInput: a parse entry point returned null.
	ErrCodeRDKitInvalidInput ErrorCode = "RDK_001"
	// ErrCodeRDKitTypeMismatch: an argument is not the expected entity kind.
	ErrCodeRDKitTypeMismatch ErrorCode = "RDK_002"
	// ErrCodeRDKitBadStatus: a mutating call returned a status other than 1.
	ErrCodeRDKitBadStatus ErrorCode = "RDK_003"
	// ErrCodeRDKitBadPointer: a non-constructor call returned null.
	ErrCodeRDKitBadPointer ErrorCode = "RDK_004"
	// ErrCodeRDKitInvalidArgument: a locally checked precondition failed.
	ErrCodeRDKitInvalidArgument ErrorCode = "RDK_005"
	// ErrCodeRDKitLibraryLoad: no candidate shared library could be bound.
	ErrCodeRDKitLibraryLoad ErrorCode = "RDK_006"
	// ErrCodeRDKitReleased: the object's native buffer was already released.
	ErrCodeRDKitReleased ErrorCode = "RDK_007"
)

// Molecule service error codes
const (
	ErrCodeMoleculeInvalidFormat      ErrorCode = "MOL_003"
	ErrCodeFingerprintTypeUnsupported ErrorCode = "MOL_008"
	ErrCodeSimilarityThresholdInvalid ErrorCode = "MOL_010"
	ErrCodeStandardizationStepUnknown ErrorCode = "MOL_016"
	ErrCodeBatchLimitExceeded         ErrorCode = "MOL_017"
)

// ErrorCodeHTTPStatus maps ErrorCodes to HTTP status codes.
var ErrorCodeHTTPStatus = map[ErrorCode]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
	ErrCodeTimeout:            http.StatusGatewayTimeout,
	ErrCodeValidation:         http.StatusUnprocessableEntity,
	ErrCodeCacheError:         http.StatusInternalServerError,
	ErrCodePayloadTooLarge:    http.StatusRequestEntityTooLarge,

	ErrCodeRDKitInvalidInput:    http.StatusBadRequest,
	ErrCodeRDKitTypeMismatch:    http.StatusBadRequest,
	ErrCodeRDKitBadStatus:       http.StatusUnprocessableEntity,
	ErrCodeRDKitBadPointer:      http.StatusInternalServerError,
	ErrCodeRDKitInvalidArgument: http.StatusBadRequest,
	ErrCodeRDKitLibraryLoad:     http.StatusServiceUnavailable,
	ErrCodeRDKitReleased:        http.StatusConflict,

	ErrCodeMoleculeInvalidFormat:      http.StatusBadRequest,
	ErrCodeFingerprintTypeUnsupported: http.StatusBadRequest,
	ErrCodeSimilarityThresholdInvalid: http.StatusBadRequest,
	ErrCodeStandardizationStepUnknown: http.StatusBadRequest,
	ErrCodeBatchLimitExceeded:         http.StatusRequestEntityTooLarge,
}

// ErrorCodeMessage maps ErrorCodes to default messages.
var ErrorCodeMessage = map[ErrorCode]string{
	ErrCodeInternal:           "internal server error",
	ErrCodeBadRequest:         "bad request",
	ErrCodeNotFound:           "resource not found",
	ErrCodeServiceUnavailable: "service unavailable",
	ErrCodeTimeout:            "request timeout",
	ErrCodeValidation:         "validation failed",
	ErrCodeCacheError:         "cache error",
	ErrCodePayloadTooLarge:    "request body too large",

	ErrCodeRDKitInvalidInput:    "invalid input",
	ErrCodeRDKitTypeMismatch:    "expected molecule",
	ErrCodeRDKitBadStatus:       "bad status",
	ErrCodeRDKitBadPointer:      "bad pointer",
	ErrCodeRDKitInvalidArgument: "invalid argument",
	ErrCodeRDKitLibraryLoad:     "rdkit library could not be loaded",
	ErrCodeRDKitReleased:        "object already released",

	ErrCodeMoleculeInvalidFormat:      "unsupported molecule format",
	ErrCodeFingerprintTypeUnsupported: "unsupported fingerprint type",
	ErrCodeSimilarityThresholdInvalid: "invalid similarity threshold",
	ErrCodeStandardizationStepUnknown: "unknown standardization step",
	ErrCodeBatchLimitExceeded:         "batch size limit exceeded",
}

// HTTPStatusForCode returns the HTTP status code for an ErrorCode.
func HTTPStatusForCode(code ErrorCode) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DefaultMessageForCode returns the default message for an ErrorCode.
func DefaultMessageForCode(code ErrorCode) string {
	if msg, ok := ErrorCodeMessage[code]; ok {
		return msg
	}
	return "unknown error"
}

// IsClientError returns true if the ErrorCode corresponds to a 4xx HTTP status.
func IsClientError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 400 && status < 500
}

// IsServerError returns true if the ErrorCode corresponds to a 5xx HTTP status.
func IsServerError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 500 && status < 600
}

// ModuleForCode returns the module prefix of an ErrorCode.
func ModuleForCode(code ErrorCode) string {
	parts := strings.Split(string(code), "_")
	if len(parts) > 0 && parts[0] != "" {
		return parts[0]
	}
	return "UNKNOWN"
}

//Personal.AI order the ending
