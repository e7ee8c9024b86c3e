package fhir

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/poiesic/clinassist/core"
)

// FailedPatient records a patient whose summary could not be produced.
type FailedPatient struct {
	ID  string
	Err error
}

// ProcessPatients walks every patient on the server and produces one
// combined note summary per patient covering conditions, medications, and
// procedures. Patients with no resources in any category are skipped. A
// failed resource fetch for one category degrades to an empty category;
// patients that fail entirely are reported in the second return value.
func (c *Client) ProcessPatients(ctx context.Context) ([]core.NoteSummary, []FailedPatient, error) {
	patients, err := c.Patients(ctx)
	if err != nil {
		return nil, nil, err
	}

	c.logger.Info("processing patients", "count", len(patients))

	summaries := make([]core.NoteSummary, 0, len(patients))
	var failed []FailedPatient

	for i, patient := range patients {
		if err := ctx.Err(); err != nil {
			return summaries, failed, err
		}

		if (i+1)%10 == 0 || i+1 == len(patients) {
			c.logger.Info("progress", "processed", i+1, "total", len(patients))
		}

		summary, err := c.summarizePatient(ctx, patient.ID)
		if err != nil {
			c.logger.Error("error processing patient", "patientID", patient.ID, "err", err)
			failed = append(failed, FailedPatient{ID: patient.ID, Err: err})
			continue
		}
		if summary == "" {
			continue
		}

		summaries = append(summaries, core.NoteSummary{
			PatientID:   patient.ID,
			NoteID:      fmt.Sprintf("patient-summary-%s", patient.ID),
			Text:        summary,
			LastUpdated: time.Now(),
		})
	}

	c.logger.Info("processed patients", "summaries", len(summaries), "failed", len(failed))

	return summaries, failed, nil
}

// summarizePatient fetches each resource category and joins the non-empty
// summaries with a blank line. A fetch error in one category logs and
// leaves that category empty; the patient fails only when every category
// fetch fails.
func (c *Client) summarizePatient(ctx context.Context, patientID string) (string, error) {
	var fetchErrs []error

	conditions, err := c.Conditions(ctx, patientID)
	if err != nil {
		c.logger.Error("error fetching conditions", "patientID", patientID, "err", err)
		fetchErrs = append(fetchErrs, err)
	}
	medications, err := c.Medications(ctx, patientID)
	if err != nil {
		c.logger.Error("error fetching medications", "patientID", patientID, "err", err)
		fetchErrs = append(fetchErrs, err)
	}
	procedures, err := c.Procedures(ctx, patientID)
	if err != nil {
		c.logger.Error("error fetching procedures", "patientID", patientID, "err", err)
		fetchErrs = append(fetchErrs, err)
	}

	if len(fetchErrs) == 3 {
		return "", fetchErrs[0]
	}

	parts := make([]string, 0, 3)
	for _, part := range []string{
		SummarizeConditions(patientID, conditions),
		SummarizeMedications(patientID, medications),
		SummarizeProcedures(patientID, procedures),
	} {
		if part != "" {
			parts = append(parts, part)
		}
	}

	return strings.Join(parts, "\n\n"), nil
}
