package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates a file extension no extractor handles.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrExtractionFailed indicates a supported file could not be parsed.
	ErrExtractionFailed = errors.New("extraction failed")

	// ErrFileTooLarge indicates a file exceeds the configured size ceiling.
	ErrFileTooLarge = errors.New("file too large")

	// ErrOCRUnavailable indicates the binary was built without OCR support.
	// Image documents contribute no text in that case.
	ErrOCRUnavailable = errors.New("OCR support unavailable")

	// ErrToolNotFound indicates a required external helper binary is missing.
	ErrToolNotFound = errors.New("external tool not found")

	// ErrNoContent indicates no analysable text was found for a request.
	ErrNoContent = errors.New("no analysable content")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	// Analysis cannot run without it.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")
)
