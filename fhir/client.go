package fhir

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client talks to a FHIR R4 server over its REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client) error

// WithHTTPClient sets a custom HTTP client.
// Default is an http.Client with a 30 second timeout.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) error {
		if httpClient == nil {
			httpClient = &http.Client{Timeout: 30 * time.Second}
		}
		c.httpClient = httpClient
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) error {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
		return nil
	}
}

// NewClient creates a client for the FHIR server at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, ErrBaseURLRequired
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Patients fetches every patient known to the server.
func (c *Client) Patients(ctx context.Context) ([]Patient, error) {
	resources, err := c.searchResources(ctx, c.baseURL+"/Patient")
	if err != nil {
		return nil, err
	}

	patients := make([]Patient, 0, len(resources))
	for _, raw := range resources {
		var p Patient
		if err := json.Unmarshal(raw, &p); err != nil {
			c.logger.Warn("skipping malformed patient resource", "err", err)
			continue
		}
		patients = append(patients, p)
	}

	return patients, nil
}

// Conditions fetches the conditions recorded for a patient.
func (c *Client) Conditions(ctx context.Context, patientID string) ([]Condition, error) {
	var conditions []Condition
	if err := c.patientResources(ctx, "Condition", patientID, func(raw json.RawMessage) error {
		var cond Condition
		if err := json.Unmarshal(raw, &cond); err != nil {
			return err
		}
		conditions = append(conditions, cond)
		return nil
	}); err != nil {
		return nil, err
	}
	return conditions, nil
}

// Medications fetches the medication statements recorded for a patient.
func (c *Client) Medications(ctx context.Context, patientID string) ([]Medication, error) {
	var medications []Medication
	if err := c.patientResources(ctx, "MedicationStatement", patientID, func(raw json.RawMessage) error {
		var med Medication
		if err := json.Unmarshal(raw, &med); err != nil {
			return err
		}
		medications = append(medications, med)
		return nil
	}); err != nil {
		return nil, err
	}
	return medications, nil
}

// Procedures fetches the procedures recorded for a patient.
func (c *Client) Procedures(ctx context.Context, patientID string) ([]Procedure, error) {
	var procedures []Procedure
	if err := c.patientResources(ctx, "Procedure", patientID, func(raw json.RawMessage) error {
		var proc Procedure
		if err := json.Unmarshal(raw, &proc); err != nil {
			return err
		}
		procedures = append(procedures, proc)
		return nil
	}); err != nil {
		return nil, err
	}
	return procedures, nil
}

// patientResources searches one resource type scoped to a patient and feeds
// each entry to collect.
func (c *Client) patientResources(ctx context.Context, resourceType, patientID string, collect func(json.RawMessage) error) error {
	endpoint := fmt.Sprintf("%s/%s?subject=%s", c.baseURL, resourceType, url.QueryEscape("Patient/"+patientID))
	resources, err := c.searchResources(ctx, endpoint)
	if err != nil {
		return err
	}

	for _, raw := range resources {
		if err := collect(raw); err != nil {
			c.logger.Warn("skipping malformed resource", "resourceType", resourceType, "patientID", patientID, "err", err)
		}
	}

	return nil
}

// searchResources performs a GET and unwraps the result bundle's entries.
func (c *Client) searchResources(ctx context.Context, endpoint string) ([]json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/fhir+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: %s returned %d", ErrRequestFailed, endpoint, resp.StatusCode)
	}

	var b bundle
	if err := json.NewDecoder(resp.Body).Decode(&b); err != nil {
		return nil, fmt.Errorf("%w: decoding bundle: %w", ErrRequestFailed, err)
	}

	resources := make([]json.RawMessage, 0, len(b.Entry))
	for _, entry := range b.Entry {
		resources = append(resources, entry.Resource)
	}

	return resources, nil
}
