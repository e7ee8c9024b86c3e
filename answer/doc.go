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


// Package answer turns a clinical question into a grounded, sanitized response.
//
// The Pipeline type orchestrates the full flow for one question: fetch notes
// from the store, rank them with the hybrid search engine, render the top
// results into a generation prompt, call the generation model, and sanitize
// the raw output before returning it with its ranked sources.
//
// Stages degrade rather than fail: a store or embedding error yields an
// empty context set, and a generation error yields a descriptive error
// string that flows through sanitization like any other model output. Only
// an empty query is rejected outright.
package answer
