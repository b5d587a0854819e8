package rdkit

import (
	"fmt"

	apperrors "github.com/turtacn/rdkit-go/pkg/errors"
)

// Sentinels for errors.Is.  Returned errors carry the same code plus a
// detail naming the native function or argument involved.
var (
	ErrInvalidInput    = &apperrors.AppError{Code: apperrors.ErrCodeRDKitInvalidInput, Message: "invalid input"}
	ErrTypeMismatch    = &apperrors.AppError{Code: apperrors.ErrCodeRDKitTypeMismatch, Message: "expected molecule"}
	ErrBadStatus       = &apperrors.AppError{Code: apperrors.ErrCodeRDKitBadStatus, Message: "bad status"}
	ErrBadPointer      = &apperrors.AppError{Code: apperrors.ErrCodeRDKitBadPointer, Message: "bad pointer"}
	ErrInvalidArgument = &apperrors.AppError{Code: apperrors.ErrCodeRDKitInvalidArgument, Message: "invalid argument"}
	ErrLibraryLoad     = &apperrors.AppError{Code: apperrors.ErrCodeRDKitLibraryLoad, Message: "rdkit library could not be loaded"}
	ErrReleased        = &apperrors.AppError{Code: apperrors.ErrCodeRDKitReleased, Message: "object already released"}
)

func errInvalidInput(fn string) *apperrors.AppError {
	return apperrors.New(apperrors.ErrCodeRDKitInvalidInput, "invalid input").WithDetail(fn)
}

func errTypeMismatch(got Entity) *apperrors.AppError {
	return apperrors.New(apperrors.ErrCodeRDKitTypeMismatch, "expected molecule").
		WithDetail(fmt.Sprintf("got %T", got))
}

func errBadStatus(fn string, status int16) *apperrors.AppError {
	return apperrors.Newf(apperrors.ErrCodeRDKitBadStatus, "bad status: %d", status).WithDetail(fn)
}

func errBadPointer(fn string) *apperrors.AppError {
	return apperrors.New(apperrors.ErrCodeRDKitBadPointer, "bad pointer").WithDetail(fn)
}

func errInvalidArgument(message string) *apperrors.AppError {
	return apperrors.New(apperrors.ErrCodeRDKitInvalidArgument, message)
}

func errReleased(what string) *apperrors.AppError {
	return apperrors.New(apperrors.ErrCodeRDKitReleased, what+" already released")
}

// Predicates for the binding error classes.  Each looks through wrapped
// errors.
func IsInvalidInput(err error) bool { return apperrors.IsCode(err, apperrors.ErrCodeRDKitInvalidInput) }
func IsTypeMismatch(err error) bool { return apperrors.IsCode(err, apperrors.ErrCodeRDKitTypeMismatch) }
func IsBadStatus(err error) bool    { return apperrors.IsCode(err, apperrors.ErrCodeRDKitBadStatus) }
func IsBadPointer(err error) bool   { return apperrors.IsCode(err, apperrors.ErrCodeRDKitBadPointer) }
func IsInvalidArgument(err error) bool {
	return apperrors.IsCode(err, apperrors.ErrCodeRDKitInvalidArgument)
}
func IsLibraryLoad(err error) bool { return apperrors.IsCode(err, apperrors.ErrCodeRDKitLibraryLoad) }
func IsReleased(err error) bool    { return apperrors.IsCode(err, apperrors.ErrCodeRDKitReleased) }

//Personal.AI order the ending
