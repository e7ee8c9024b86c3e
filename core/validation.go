// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import (
	"fmt"
	"time"
)

// ValidateNote validates a Note according to domain rules.
//
// Validation rules:
//   - NoteID must not be empty
//   - Text must not be empty
//
// NOT validated (populated by processors):
//   - Vector (can be empty until the embedding pipeline runs)
//   - PatientID (absent patients render as UnknownPatient)
func ValidateNote(note *Note) error {
	if note == nil {
		return fmt.Errorf("%w: note is nil", ErrInvalidNote)
	}

	if note.NoteID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidNote, ErrEmptyNoteID)
	}

	if note.Text == "" {
		return fmt.Errorf("%w: %w", ErrInvalidNote, ErrEmptyText)
	}

	return nil
}

// ValidateNoteSummary validates an ingested note summary before it is
// embedded and stored.
func ValidateNoteSummary(summary *NoteSummary) error {
	if summary == nil {
		return fmt.Errorf("%w: summary is nil", ErrInvalidNote)
	}

	if summary.NoteID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidNote, ErrEmptyNoteID)
	}

	if summary.Text == "" {
		return fmt.Errorf("%w: %w", ErrInvalidNote, ErrEmptyText)
	}

	if !summary.LastUpdated.IsZero() && !IsValidTimestamp(summary.LastUpdated) {
		return fmt.Errorf("%w: %w", ErrInvalidNote, ErrInvalidTimestamp)
	}

	return nil
}

// IsValidTimestamp checks if a timestamp is valid (not in the future).
func IsValidTimestamp(ts time.Time) bool {
	return !ts.After(time.Now())
}
