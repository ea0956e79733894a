// Package ingestion converts menu documents into embedded dish records.
//
// A document flows through four stages: plain-text extraction (PDF or raw
// text), structured menu extraction via the AI provider, embedding of each
// dish's rendered text, and storage in the dish repository. Directories are
// processed concurrently on a worker pool; a single document's failure is
// logged and never aborts the batch.
package ingestion
