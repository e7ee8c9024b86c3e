package storage

import (
	"context"

	"github.com/poiesic/clinassist/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	// The context passed to fn may contain transaction state.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// NoteRepository provides operations for managing patient-note summaries.
type NoteRepository interface {
	Repository

	// PutNotes inserts or updates notes keyed by their NoteID.
	// Existing notes are overwritten with the new text and embedding;
	// new notes are inserted. Sets InsertedAt/UpdatedAt timestamps.
	// Returns the number of notes inserted and updated.
	PutNotes(ctx context.Context, notes ...*core.Note) (inserted, updated int, err error)

	// DeleteNotes removes notes by their NoteIDs.
	// Also removes associated patient index entries.
	// Returns ErrNotFound if any note doesn't exist.
	DeleteNotes(ctx context.Context, noteIDs ...string) error

	// GetNote retrieves a single note by NoteID.
	// Returns ErrNotFound if the note doesn't exist.
	GetNote(ctx context.Context, noteID string) (*core.Note, error)

	// GetNotes retrieves multiple notes by their NoteIDs.
	// Returns only the notes that exist (no error for missing notes).
	GetNotes(ctx context.Context, noteIDs ...string) ([]*core.Note, error)

	// AllNotes retrieves every stored note.
	// Returns an empty slice when the store is empty; order is stable
	// across calls for an unchanged store.
	AllNotes(ctx context.Context) ([]*core.Note, error)

	// NotesByPatient retrieves all notes for a patient via the patient index.
	NotesByPatient(ctx context.Context, patientID string) ([]*core.Note, error)

	// ListPatients retrieves the distinct patient IDs present in the store,
	// sorted ascending.
	ListPatients(ctx context.Context) ([]string, error)
}
