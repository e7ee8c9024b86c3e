// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package clinassist

import (
	"log/slog"

	"github.com/poiesic/clinassist/ai"
	"github.com/poiesic/clinassist/ai/openai"
	"github.com/poiesic/clinassist/answer"
	"github.com/poiesic/clinassist/ingestion"
	"github.com/poiesic/clinassist/search"
	"github.com/poiesic/clinassist/storage"
	"github.com/poiesic/clinassist/storage/badger"
)

// Assistant bundles the note store and AI services behind one handle.
// It is the entry point for embedding, searching, and answering.
type Assistant struct {
	backend  *badger.Backend
	noteRepo storage.NoteRepository
	provider ai.Provider
	logger   *slog.Logger
}

// AssistantOption configures an Assistant.
type AssistantOption func(*assistantOptions)

type assistantOptions struct {
	aiConfig *ai.Config
	inMemory bool
}

// WithAIConfig sets the AI service configuration.
// Default is ai.DefaultConfig(). The AI clients are shared process-wide, so
// only the first assistant opened in a process applies its configuration.
func WithAIConfig(config *ai.Config) AssistantOption {
	return func(o *assistantOptions) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

// WithInMemoryStore keeps the note store in memory instead of on disk.
func WithInMemoryStore() AssistantOption {
	return func(o *assistantOptions) {
		o.inMemory = true
	}
}

// NewAssistant opens the note store at filePath and connects the AI services.
func NewAssistant(filePath string, opts ...AssistantOption) (*Assistant, error) {
	// Apply options
	options := &assistantOptions{
		aiConfig: ai.DefaultConfig(), // Default if not provided
	}
	for _, opt := range opts {
		opt(options)
	}

	// Open backend
	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	// Create note repository
	noteRepo, err := badger.NewNoteRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	// Connect the process-wide AI provider. The embedding and generation
	// clients are built at most once; assistants opened later in the same
	// process reuse them.
	provider, err := openai.SharedProvider(options.aiConfig)
	if err != nil {
		noteRepo.Close()
		backend.Close()
		return nil, err
	}

	return &Assistant{
		backend:  backend,
		noteRepo: noteRepo,
		provider: provider,
		logger:   slog.Default(),
	}, nil
}

func (a *Assistant) Close() error {
	// Close AI provider first
	if err := a.provider.Close(); err != nil {
		a.logger.Error("error closing AI provider", "err", err)
	}

	// Close repository
	if err := a.noteRepo.Close(); err != nil {
		a.logger.Error("error closing note repository", "err", err)
		return err
	}

	// Close backend
	if err := a.backend.Close(); err != nil {
		a.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (a *Assistant) NoteRepository() storage.NoteRepository {
	return a.noteRepo
}

func (a *Assistant) Provider() ai.Provider {
	return a.provider
}

func (a *Assistant) NewIngestionPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	return ingestion.NewPipeline(a.noteRepo, a.provider.Embedder(), opts...)
}

func (a *Assistant) NewSearchEngine(opts ...search.Option) (*search.Engine, error) {
	return search.NewEngine(a.provider.Embedder(), opts...)
}

func (a *Assistant) NewAnswerPipeline(opts ...answer.Option) (*answer.Pipeline, error) {
	engine, err := a.NewSearchEngine()
	if err != nil {
		return nil, err
	}
	return answer.NewPipeline(a.noteRepo, engine, a.provider.Generator(), opts...)
}
