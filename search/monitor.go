package search

import "github.com/poiesic/clinassist/core"

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps and scores during search.
type SearchMonitor interface {
	Start(query string)
	AfterQueryEmbedding(vector []float32)
	Scored(note *core.Note, vectorScore, keywordScore, fused float64)
	Finish(results []core.ScoredNote)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                                 {}
func (n *noopMonitor) AfterQueryEmbedding(_ []float32)                {}
func (n *noopMonitor) Scored(_ *core.Note, _, _, _ float64)           {}
func (n *noopMonitor) Finish(_ []core.ScoredNote)                     {}
