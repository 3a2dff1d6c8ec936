package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	// A missing tally is the sole trigger for a category's initial crawl.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Remote API Errors.

	// ErrTransport indicates the wiki API could not be reached or answered
	// with an unusable HTTP status.
	ErrTransport = errors.New("transport failure")

	// ErrMalformedResponse indicates the JSON envelope or its continuation
	// object did not have the expected shape.
	ErrMalformedResponse = errors.New("malformed response")

	// Extraction Errors.

	// ErrMalformedPage indicates the page text has no language header at all.
	ErrMalformedPage = errors.New("malformed page")

	// ErrMalformedFormat indicates a header segment contains <lang> tags
	// that do not resolve to complete code blocks.
	ErrMalformedFormat = errors.New("malformed format")

	// Local Errors.

	// ErrFilesystem indicates the mirror tree or a state file could not be
	// read or written.
	ErrFilesystem = errors.New("filesystem failure")

	// ErrVersionControl indicates a version-control command failed.
	ErrVersionControl = errors.New("version control failure")
)
