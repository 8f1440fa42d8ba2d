package domain

import "errors"

// Domain-level errors
var (
	ErrCatalogUnavailable  = errors.New("catalog unavailable")
	ErrUnsupportedProvider = errors.New("unsupported llm provider")
)
