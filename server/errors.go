package server

import "errors"

var (
	// ErrPipelineRequired is returned when an answer pipeline is not provided.
	ErrPipelineRequired = errors.New("answer pipeline required")

	// ErrNoteRepositoryRequired is returned when a note repository is not provided.
	ErrNoteRepositoryRequired = errors.New("note repository required")
)
