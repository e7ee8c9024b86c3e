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


package storage

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"

	"github.com/poiesic/clinassist/core"
)

// noteRecord is the stored wire form of a Note. Embeddings are kept as a
// JSON array, matching the format notes were originally persisted in.
type noteRecord struct {
	NoteID     string    `json:"note_id"`
	PatientID  string    `json:"patient_id,omitempty"`
	Text       string    `json:"text"`
	Vector     []float32 `json:"embedding,omitempty"`
	InsertedAt time.Time `json:"inserted_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, uint64(id))
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	if len(data) != 8 {
		return 0, fmt.Errorf("%w: id must be 8 bytes, got %d", ErrSerializationFailed, len(data))
	}
	return core.ID(binary.BigEndian.Uint64(data)), nil
}

// MarshalNote serializes a Note to bytes.
func MarshalNote(note *core.Note) ([]byte, error) {
	data, err := json.Marshal(noteRecord{
		NoteID:     note.NoteID,
		PatientID:  note.PatientID,
		Text:       note.Text,
		Vector:     note.Vector,
		InsertedAt: note.InsertedAt,
		UpdatedAt:  note.UpdatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return data, nil
}

// UnmarshalNote deserializes a Note from bytes.
func UnmarshalNote(data []byte) (*core.Note, error) {
	var record noteRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return &core.Note{
		NoteID:     record.NoteID,
		PatientID:  record.PatientID,
		Text:       record.Text,
		Vector:     record.Vector,
		InsertedAt: record.InsertedAt,
		UpdatedAt:  record.UpdatedAt,
	}, nil
}
