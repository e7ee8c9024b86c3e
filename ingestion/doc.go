// Package ingestion embeds patient note summaries and stores them for search.
//
// The Pipeline type takes the summaries produced by the fhir package (or
// loaded from a summaries file), generates embeddings in batches on a
// worker pool, and writes the embedded notes to storage. Embedding calls
// are retried with exponential backoff; a batch that still fails after its
// retries is counted and logged but does not abort the run.
package ingestion
