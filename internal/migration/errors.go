package migration

import (
	"errors"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-docmigrate/internal/markdown"
)

const (
	TextCodeDocumentRead   = "DOCUMENT_READ_FAILED"
	TextCodeDocumentDecode = "DOCUMENT_DECODE_FAILED"
	TextCodeObjectCreate   = "OBJECT_CREATE_FAILED"
)

var (
	// ErrCreatorRequired is returned when object creation is requested without
	// an ObjectCreator.
	ErrCreatorRequired = errors.New("migration: object creator is required when CreateObjects is enabled")
	// ErrSpaceIDRequired is returned when object creation has no target space.
	ErrSpaceIDRequired = errors.New("migration: space id is required when CreateObjects is enabled")
)

func wrapLoadError(err error) error {
	if err == nil {
		return nil
	}
	var loadErr *markdown.LoadError
	if errors.As(err, &loadErr) && loadErr.Failure == markdown.FailureDecode {
		return goerrors.Wrap(err, goerrors.CategoryValidation, err.Error()).
			WithTextCode(TextCodeDocumentDecode)
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, err.Error()).
		WithTextCode(TextCodeDocumentRead)
}

func wrapCreateError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "create object: "+err.Error()).
		WithTextCode(TextCodeObjectCreate)
}
