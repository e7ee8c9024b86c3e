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


// Package search provides hybrid vector and keyword search over clinical notes.
//
// The Engine type ranks notes by a weighted fusion of two signals:
//   - Semantic similarity between the query embedding and each note embedding
//   - Lexical overlap between query terms and the note text
//
// Fused scores are combined as weight*vector + (1-weight)*keyword, sorted
// descending with a stable sort so equally-scored notes keep their input
// order, and truncated to the requested result count.
package search
