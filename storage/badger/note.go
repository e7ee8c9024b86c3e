package badger

import (
	"bytes"
	"context"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/clinassist/core"
	"github.com/poiesic/clinassist/storage"
)

// NoteRepository implements storage.NoteRepository for BadgerDB.
type NoteRepository struct {
	backend *Backend
}

var _ storage.NoteRepository = (*NoteRepository)(nil)

// NewNoteRepository creates a new NoteRepository.
func NewNoteRepository(backend *Backend) (*NoteRepository, error) {
	return &NoteRepository{
		backend: backend,
	}, nil
}

// Close is a no-op; the backend owns the database handle.
func (r *NoteRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *NoteRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// PutNotes inserts or updates notes keyed by their NoteID.
func (r *NoteRepository) PutNotes(ctx context.Context, notes ...*core.Note) (int, int, error) {
	var inserted, updated int

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, note := range notes {
			if err := core.ValidateNote(note); err != nil {
				return err
			}

			key := makeNoteKey(note.Key())
			old, err := r.readNote(tx, key)
			if err != nil {
				return err
			}

			now := time.Now().UTC()
			if old == nil {
				note.InsertedAt = now
				inserted++
			} else {
				note.InsertedAt = old.InsertedAt
				updated++
			}
			note.UpdatedAt = now

			value, err := storage.MarshalNote(note)
			if err != nil {
				return err
			}
			if err := tx.Set(key, value); err != nil {
				return err
			}

			// Refresh the patient index if the patient changed
			if old != nil && old.Patient() != note.Patient() {
				if err := tx.Delete(makePatientKey(old.Patient(), old.Key())); err != nil {
					return err
				}
			}
			if err := tx.Set(makePatientKey(note.Patient(), note.Key()), storage.MarshalID(note.Key())); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	if err != nil {
		return 0, 0, err
	}
	return inserted, updated, nil
}

// DeleteNotes removes notes by their NoteIDs.
func (r *NoteRepository) DeleteNotes(ctx context.Context, noteIDs ...string) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, noteID := range noteIDs {
			id := core.IDFromContent(noteID)
			key := makeNoteKey(id)

			// Read note to get metadata for index cleanup
			note, err := r.readNote(tx, key)
			if err != nil {
				return err
			}
			if note == nil {
				return storage.ErrNotFound
			}

			if err := tx.Delete(makePatientKey(note.Patient(), id)); err != nil {
				return err
			}
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetNote retrieves a single note by NoteID.
func (r *NoteRepository) GetNote(ctx context.Context, noteID string) (*core.Note, error) {
	var result *core.Note
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeNoteKey(core.IDFromContent(noteID))
		var err error
		result, err = r.readNote(tx, key)
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetNotes retrieves multiple notes by their NoteIDs.
func (r *NoteRepository) GetNotes(ctx context.Context, noteIDs ...string) ([]*core.Note, error) {
	var result []*core.Note
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, noteID := range noteIDs {
			key := makeNoteKey(core.IDFromContent(noteID))
			note, err := r.readNote(tx, key)
			if err != nil {
				return err
			}
			if note != nil {
				result = append(result, note)
			}
		}
		return nil
	}, false)
	return result, err
}

// AllNotes retrieves every stored note, in key order.
func (r *NoteRepository) AllNotes(ctx context.Context) ([]*core.Note, error) {
	results := []*core.Note{}
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(noteRecordPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var note *core.Note
			err := iter.Item().Value(func(val []byte) error {
				var err error
				note, err = storage.UnmarshalNote(val)
				return err
			})
			if err != nil {
				return err
			}
			if note != nil {
				results = append(results, note)
			}
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}
	return results, nil
}

// NotesByPatient retrieves all notes for a patient via the patient index.
// Notes stored without a patient are indexed under core.UnknownPatient; an
// empty patientID resolves to that group.
func (r *NoteRepository) NotesByPatient(ctx context.Context, patientID string) ([]*core.Note, error) {
	if patientID == "" {
		patientID = core.UnknownPatient
	}

	results := []*core.Note{}
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		prefix := makePartialPatientKey(patientID)
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Seek(prefix); iter.Valid(); iter.Next() {
			var noteID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				noteID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			note, err := r.readNote(tx, makeNoteKey(noteID))
			if err != nil {
				return err
			}
			if note != nil {
				results = append(results, note)
			}
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}
	return results, nil
}

// ListPatients retrieves the distinct patient IDs present in the store, sorted.
func (r *NoteRepository) ListPatients(ctx context.Context) ([]string, error) {
	patients := []string{}
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		prefix := []byte(notePatientPrefix + ":")
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		iter := tx.NewIterator(opts)
		defer iter.Close()

		var last string
		for iter.Seek(prefix); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			if !bytes.HasPrefix(key, prefix) {
				break
			}

			// Key format is prefix:patientID:noteID; the note ID is numeric
			// and never contains a separator, so cut at the last colon.
			rest := string(key[len(prefix):])
			sep := strings.LastIndexByte(rest, ':')
			if sep < 0 {
				continue
			}
			patient := rest[:sep]

			// Keys iterate in sorted order, so duplicates are adjacent
			if patient == last && len(patients) > 0 {
				continue
			}
			patients = append(patients, patient)
			last = patient
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}
	return patients, nil
}

// readNote reads and unmarshals the note at key, or nil if absent.
func (r *NoteRepository) readNote(tx *badger.Txn, key []byte) (*core.Note, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var note *core.Note
	err = item.Value(func(val []byte) error {
		var err error
		note, err = storage.UnmarshalNote(val)
		return err
	})
	if err != nil {
		return nil, err
	}
	return note, nil
}
