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


// Package ai provides abstractions for the AI services used by the clinical
// assistant.
//
// This package defines interfaces for text embedding and answer generation.
// It follows the dependency inversion principle, allowing the search and
// answer pipelines to depend on abstractions rather than concrete
// implementations.
//
// # Design Principles
//
// The package is designed around three key interfaces:
//
//   - Embedder: Generates vector embeddings from text
//   - Generator: Produces free-text completions for a prompt
//   - Provider: Aggregates AI services for convenient initialization
//
// # Implementation Packages
//
// The ai package includes two implementation sub-packages:
//
//   - ai/openai: Production implementation using OpenAI-compatible APIs
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// Public constructors (openai.NewProvider, openai.NewEmbedder, etc.) return
// interface types to enforce abstraction. Test utility constructors
// (mock.NewMockEmbedder, mock.NewMockGenerator) return concrete types to
// enable behavior injection and call-count assertions.
//
// # Shared Provider
//
// The embedding model handle and the generation client are expensive to set
// up and are shared process-wide. openai.SharedProvider guarantees at most
// one initialization under concurrent first use; the returned services are
// safe for concurrent read-only use across pipeline invocations.
//
// # Usage Example
//
//	config := ai.DefaultConfig()
//	provider, err := openai.SharedProvider(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	vector, err := provider.Embedder().EmbedText(ctx, "chest pain on exertion")
//	text, err := provider.Generator().GenerateText(ctx, prompt, ai.GenerationOptions{})
package ai
