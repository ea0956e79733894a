// Copyright 2025 Astrodine Labs
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


// Package retrieval implements hybrid question answering over the dish
// catalog.
//
// A question is answered in two strictly sequential attempts. The first
// attempt extracts exact-match constraints from the question, compiles them
// into a store predicate, and runs a filtered vector search; survivors are
// verified one by one against the original question. Exact filtering is
// precise but brittle against spelling and phrasing drift in extracted
// terms, so when the first attempt verifies nothing the second attempt
// reruns the same embedding without any predicate and verifies again.
// Verification recovers the precision that the unfiltered search gives up.
//
// The retriever never returns an error: extraction failures degrade to an
// unfiltered search on the raw question, and store, embedding, or
// verification failures degrade to an empty result for that question.
//
// Runner processes batches of questions concurrently and maps verified dish
// names to stable integer identifiers for the output file.
package retrieval
