package fhir

import "encoding/json"

// bundle is the search-result envelope returned by FHIR read endpoints.
type bundle struct {
	Entry []bundleEntry `json:"entry"`
}

type bundleEntry struct {
	Resource json.RawMessage `json:"resource"`
}

// CodeableConcept carries the human-readable text of a coded value.
type CodeableConcept struct {
	Text string `json:"text"`
}

// CodedStatus wraps a status expressed as a coding list, as FHIR does for
// clinical and verification statuses.
type CodedStatus struct {
	Coding []Coding `json:"coding"`
}

// Code returns the first coding's code, or fallback when absent.
func (s CodedStatus) Code(fallback string) string {
	if len(s.Coding) == 0 || s.Coding[0].Code == "" {
		return fallback
	}
	return s.Coding[0].Code
}

type Coding struct {
	Code string `json:"code"`
}

// Period is a FHIR time range; either end may be absent.
type Period struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Patient is the subset of a FHIR Patient resource the pipeline needs.
type Patient struct {
	ID string `json:"id"`
}

// Condition is a diagnosed or reported clinical condition.
type Condition struct {
	Code               CodeableConcept `json:"code"`
	ClinicalStatus     CodedStatus     `json:"clinicalStatus"`
	VerificationStatus CodedStatus     `json:"verificationStatus"`
	OnsetDateTime      string          `json:"onsetDateTime"`
	AbatementDateTime  string          `json:"abatementDateTime"`
}

// Medication is a statement that a patient is or was taking a medication.
type Medication struct {
	MedicationCodeableConcept CodeableConcept `json:"medicationCodeableConcept"`
	Status                    string          `json:"status"`
	EffectivePeriod           Period          `json:"effectivePeriod"`
	DosageInstruction         []Dosage        `json:"dosageInstruction"`
}

type Dosage struct {
	DoseAndRate []DoseAndRate   `json:"doseAndRate"`
	Route       CodeableConcept `json:"route"`
}

type DoseAndRate struct {
	DoseQuantity Quantity `json:"doseQuantity"`
}

type Quantity struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// Procedure is a clinical procedure performed on a patient.
type Procedure struct {
	Code              CodeableConcept   `json:"code"`
	Status            string            `json:"status"`
	PerformedDateTime string            `json:"performedDateTime"`
	PerformedPeriod   Period            `json:"performedPeriod"`
	BodySite          []CodeableConcept `json:"bodySite"`
}
