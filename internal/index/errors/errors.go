// Package errors provides sentinel errors for document indexing.
// They let the pipeline tell per-document failures from a failed index build.
package errors

import "errors"

var (
	// ErrMissingSortKey indicates a document lacks the configured orderBy property.
	ErrMissingSortKey = errors.New("missing sort key")

	// ErrInvalidSortKey indicates the orderBy value cannot be converted to the configured type.
	ErrInvalidSortKey = errors.New("invalid sort key")

	// ErrDocumentParse indicates a source document could not be read or its front matter parsed.
	ErrDocumentParse = errors.New("document parse failed")

	// ErrWalkFailed indicates traversal of the source directory failed.
	ErrWalkFailed = errors.New("source directory walk failed")

	// ErrIndexNotBuilt indicates front matter indexing was disabled for this run.
	ErrIndexNotBuilt = errors.New("document index not built")
)
