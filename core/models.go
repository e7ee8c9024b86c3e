package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing so identical
// note identifiers always map to the same storage key.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// UnknownPatient is the patient identifier used when a note has no patient attached.
const UnknownPatient = "Unknown"

// Note represents a stored patient-note summary.
// It may be enriched with an embedding vector during ingestion.
type Note struct {
	NoteID     string
	PatientID  string // May be empty; render as UnknownPatient
	Text       string
	Vector     []float32 // Embedding vector for semantic search (populated by the ingestion pipeline)
	InsertedAt time.Time // When the note was inserted into the database
	UpdatedAt  time.Time // When the note was last updated
}

// Key returns the storage key for the note, derived from its NoteID.
func (n *Note) Key() ID {
	return IDFromContent(n.NoteID)
}

// Patient returns the note's patient identifier, or UnknownPatient when absent.
func (n *Note) Patient() string {
	if n.PatientID == "" {
		return UnknownPatient
	}
	return n.PatientID
}

// NoteSummary is a note produced by the FHIR ingestion path before it has
// been embedded and stored.
type NoteSummary struct {
	PatientID   string    `json:"patient_id"`
	NoteID      string    `json:"note_id"`
	Text        string    `json:"note_text"`
	LastUpdated time.Time `json:"last_updated"`
}

// ScoredNote is a note plus the fused relevance score that ranked it.
// Instances are created per query and discarded once an answer is produced.
type ScoredNote struct {
	Note  *Note
	Score float64
}

// Answer is the sanitized response to a clinical query together with the
// ranked notes used as evidence.
type Answer struct {
	Response string
	Sources  []ScoredNote
}
