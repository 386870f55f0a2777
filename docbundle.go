// Package docbundle aggregates remote documentation into a single
// navigable markdown document. It fetches an index of documentation
// URLs, downloads the referenced markdown files concurrently with
// bounded retries, writes them to a local directory, and concatenates
// them behind a generated table of contents.
//
// This package contains domain types and interfaces following Ben
// Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., http/,
// fs/, slog/).
package docbundle
