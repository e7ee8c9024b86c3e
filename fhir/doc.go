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


// Package fhir fetches patient resources from a FHIR R4 server and turns
// them into plain-text clinical note summaries.
//
// The Client wraps the server's REST API for the resource types the
// summarizers understand (Condition, MedicationStatement, Procedure).
// ProcessPatients walks every patient, summarizes each resource type, and
// joins the summaries into one note per patient ready for embedding.
package fhir
