// Package reembed provides functionality for reembedding stored patient-note
// summaries with a new or updated embedding model.
//
// Switching embedding models invalidates every vector in the store; this
// package rebuilds them in place with batch processing, progress tracking,
// retry logic with exponential backoff, and vector normalization so cosine
// similarity search keeps working.
package reembed
