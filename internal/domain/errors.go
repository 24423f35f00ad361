package domain

import "errors"

// Sentinel errors for pipeline operations
var (
	// ErrCatalogOffline indicates the catalog API is unreachable
	ErrCatalogOffline = errors.New("catalog API is unreachable")

	// ErrUnexpectedPayload indicates the catalog returned a top-level shape
	// that is neither an object nor an array
	ErrUnexpectedPayload = errors.New("unexpected catalog payload shape")
)
