package service

import (
	"database/sql"
	"errors"

	"github.com/code19m/errx"

	"formapi/internal/repository"
)

// Error codes returned to API clients.
const (
	CodeFormationNotFound   = "FORMATION_NOT_FOUND"
	CodeFormationTitleTaken = "FORMATION_TITLE_EXISTS"
	CodePublicationNotFound = "PUBLICATION_NOT_FOUND"
	CodeUnsupportedMedia    = "UNSUPPORTED_MEDIA_TYPE"
	CodeUserNotFound        = "USER_NOT_FOUND"
	CodeInvalidCredentials  = "INVALID_CREDENTIALS"
	CodeInvalidSort         = "INVALID_SORT"
	CodeValidation          = "VALIDATION_FAILED"
	CodeConflict            = "CONFLICT"
)

// ErrInvalidCredentials is returned by Login for an unknown email or a wrong password.
var ErrInvalidCredentials = errx.New("invalid email or password",
	errx.WithCode(CodeInvalidCredentials),
	errx.WithType(errx.T_Authentication))

func notFound(code, msg string, id int64) error {
	return errx.New(msg,
		errx.WithCode(code),
		errx.WithType(errx.T_NotFound),
		errx.WithDetails(errx.D{"id": id}))
}

func formationNotFound(id int64) error {
	return notFound(CodeFormationNotFound, "formation not found", id)
}

func publicationNotFound(id int64) error {
	return notFound(CodePublicationNotFound, "publication not found", id)
}

func userNotFound(id int64) error {
	return notFound(CodeUserNotFound, "user not found", id)
}

func validation(code, msg string) error {
	return errx.New(msg, errx.WithCode(code), errx.WithType(errx.T_Validation))
}

// repoError classifies repository failures that carry meaning for callers.
// Everything else is wrapped as an internal error.
func repoError(err error) error {
	switch {
	case errors.Is(err, repository.ErrConflict):
		return errx.Wrap(err, errx.WithCode(CodeConflict), errx.WithType(errx.T_Conflict))
	case errors.Is(err, repository.ErrInvalidSort):
		return errx.Wrap(err, errx.WithCode(CodeInvalidSort), errx.WithType(errx.T_Validation))
	default:
		return errx.Wrap(err)
	}
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
