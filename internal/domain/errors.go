package domain

import "errors"

var (
	// ErrRetrieval signals a vector store query failure. Terminal for the
	// request; no partial results are salvaged. Reported distinctly from
	// "zero comparables found", which is a valid outcome.
	ErrRetrieval = errors.New("retrieval failed")
	// ErrEnrichment signals an enrichment provider failure.
	ErrEnrichment = errors.New("enrichment failed")
	// ErrEmbeddingProvider signals an embedding provider failure.
	ErrEmbeddingProvider = errors.New("embedding provider error")
)
