package fhir

import "errors"

var (
	// ErrBaseURLRequired is returned when a server base URL is not provided.
	ErrBaseURLRequired = errors.New("FHIR base URL required")

	// ErrRequestFailed is returned when the FHIR server responds with a
	// non-success status.
	ErrRequestFailed = errors.New("FHIR request failed")
)
