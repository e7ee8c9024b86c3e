// Package server exposes the question-answering pipeline over HTTP.
//
// Routes:
//
//	POST /api/query     answer a clinical question with ranked sources
//	GET  /api/patients  list patient IDs present in the note store
//	GET  /api/health    liveness probe
package server
