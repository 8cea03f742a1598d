// Package errors provides sentinel errors for artifact rendering. Each marks a
// failure local to one template and page; siblings keep rendering.
package errors

import (
	"errors"

	ierrors "git.home.luguber.info/inful/publisher/internal/index/errors"
)

var (
	// ErrTemplateRead indicates a template file is missing or unreadable.
	ErrTemplateRead = errors.New("template read failed")

	// ErrTemplateRender indicates a template failed to parse or execute.
	ErrTemplateRender = errors.New("template render failed")

	// ErrWrite indicates an artifact could not be written to the destination.
	ErrWrite = errors.New("artifact write failed")

	// ErrDocumentParse indicates a source document feeding an artifact could not be parsed.
	ErrDocumentParse = ierrors.ErrDocumentParse

	// ErrOutlineMissing indicates SUMMARY.md was absent when the TOC was rendered.
	ErrOutlineMissing = errors.New("outline file missing")
)
