package badger

import (
	"fmt"

	"github.com/poiesic/clinassist/core"
)

// Key prefixes for different data types
const (
	noteRecordPrefix   = "notrec"
	notePatientPrefix  = "notpat"
)

// makeNoteKey generates a key for a note by its content-hash ID.
func makeNoteKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", noteRecordPrefix, id))
}

// makePatientKey generates a composite key for the patient index.
// Format: prefix:patientID:noteID
func makePatientKey(patientID string, id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%s:%d", notePatientPrefix, patientID, id))
}

// makePartialPatientKey generates a partial key for per-patient scans.
// Format: prefix:patientID:
func makePartialPatientKey(patientID string) []byte {
	return []byte(fmt.Sprintf("%s:%s:", notePatientPrefix, patientID))
}
