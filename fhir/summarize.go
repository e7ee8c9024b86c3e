package fhir

import (
	"fmt"
	"strconv"
	"strings"
)

// SummarizeConditions renders a patient's conditions as a bulleted summary.
// Returns "" when there are no conditions.
func SummarizeConditions(patientID string, conditions []Condition) string {
	lines := make([]string, 0, len(conditions))
	for _, cond := range conditions {
		code := cond.Code.Text
		if code == "" {
			code = "Unnamed condition"
		}
		status := cond.ClinicalStatus.Code("unknown")
		verification := cond.VerificationStatus.Code("unknown")

		onset := cond.OnsetDateTime
		if onset == "" {
			onset = "unknown onset"
		}

		timeline := "since " + onset
		if cond.AbatementDateTime != "" {
			timeline = fmt.Sprintf("from %s to %s", onset, cond.AbatementDateTime)
		}

		lines = append(lines, fmt.Sprintf("- %s (%s, %s) %s", code, status, verification, timeline))
	}

	if len(lines) == 0 {
		return ""
	}

	return fmt.Sprintf("Patient %s has the following conditions:\n%s", patientID, strings.Join(lines, "\n"))
}

// SummarizeMedications renders a patient's medications as a bulleted summary.
// Returns "" when there are no medications.
func SummarizeMedications(patientID string, medications []Medication) string {
	lines := make([]string, 0, len(medications))
	for _, med := range medications {
		name := med.MedicationCodeableConcept.Text
		if name == "" {
			name = "Unnamed medication"
		}
		status := med.Status
		if status == "" {
			status = "unknown"
		}

		dosage := ""
		if len(med.DosageInstruction) > 0 {
			instruction := med.DosageInstruction[0]
			if len(instruction.DoseAndRate) > 0 {
				q := instruction.DoseAndRate[0].DoseQuantity
				if q.Value != 0 && q.Unit != "" {
					dosage = fmt.Sprintf(", %s %s", strconv.FormatFloat(q.Value, 'f', -1, 64), q.Unit)
				}
			}
			if route := instruction.Route.Text; route != "" {
				dosage += " " + route
			}
		}

		start := med.EffectivePeriod.Start
		if start == "" {
			start = "unknown start"
		}
		timeline := "since " + start
		if med.EffectivePeriod.End != "" {
			timeline = fmt.Sprintf("from %s to %s", start, med.EffectivePeriod.End)
		}

		lines = append(lines, fmt.Sprintf("- %s (%s%s) %s", name, status, dosage, timeline))
	}

	if len(lines) == 0 {
		return ""
	}

	return fmt.Sprintf("Patient %s is taking the following medications:\n%s", patientID, strings.Join(lines, "\n"))
}

// SummarizeProcedures renders a patient's procedures as a bulleted summary.
// Returns "" when there are no procedures.
func SummarizeProcedures(patientID string, procedures []Procedure) string {
	lines := make([]string, 0, len(procedures))
	for _, proc := range procedures {
		name := proc.Code.Text
		if name == "" {
			name = "Unnamed procedure"
		}
		status := proc.Status
		if status == "" {
			status = "unknown"
		}

		var timeline string
		switch {
		case proc.PerformedDateTime != "":
			timeline = "on " + proc.PerformedDateTime
		case proc.PerformedPeriod.Start != "" || proc.PerformedPeriod.End != "":
			start := proc.PerformedPeriod.Start
			if start == "" {
				start = "unknown start"
			}
			if proc.PerformedPeriod.End != "" {
				timeline = fmt.Sprintf("from %s to %s", start, proc.PerformedPeriod.End)
			} else {
				timeline = "since " + start
			}
		default:
			timeline = "at unknown time"
		}

		site := ""
		if len(proc.BodySite) > 0 && proc.BodySite[0].Text != "" {
			site = " on " + proc.BodySite[0].Text
		}

		lines = append(lines, fmt.Sprintf("- %s (%s)%s %s", name, status, site, timeline))
	}

	if len(lines) == 0 {
		return ""
	}

	return fmt.Sprintf("Patient %s has undergone the following procedures:\n%s", patientID, strings.Join(lines, "\n"))
}
