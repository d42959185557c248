// Package diag defines the core diagnostic model shared by all pipeline phases.
//
// # Purpose
//
//   - Provide deterministic, serialisable data structures that capture findings
//     produced by the attribute checker and the driver.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to concrete storage or formatting layers.
//   - Model fix suggestions as structured edits that the CLI can display.
//
// # Scope
//
// Package diag does not perform any formatting, IO, CLI integration, or
// interactive behaviour. Rendering responsibilities live in internal/diagfmt;
// orchestration lives in internal/driver.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable string form.
//   - Message – human oriented text; keep it short and actionable.
//   - Primary span – the canonical source.Span pointing to the issue.
//   - Notes – optional secondary spans/messages for additional context.
//   - Fixes – optional Fix records describing how to address the problem.
//
// Notes should be used sparingly: each note must add new context (e.g. “repr
// hint here”) rather than repeating the diagnostic message.
//
// # Emitting diagnostics
//
// Phases should use a diag.Reporter to decouple emission from storage. The
// checker constructs a ReportBuilder via NewReportBuilder (or the helper
// functions ReportError/ReportWarning/ReportInfo) and chains WithNote /
// WithFix before calling Emit. Emission is append-only: a reported
// diagnostic is never mutated, reordered, or dropped by the producer.
//
// When no additional metadata is needed, phases may call Reporter.Report(...)
// directly. For convenience, diag.BagReporter aggregates diagnostics into a
// Bag, which supports sorting, deduplication, and merging. The Bag preserves
// insertion order; Sort is a presentation-layer step that callers apply
// explicitly before rendering.
//
// # Consumers
//
//   - internal/diagfmt: renders Diagnostics into pretty/json/sarif formats.
//   - internal/driver: coordinates bag collection per dump file and transports
//     diagnostic data to CLI commands.
//
// Keep the data model deterministic: any new fields should honour the
// package’s layering constraints and avoid side effects, so the CLI and
// future tooling can safely serialise diagnostics for caching and testing.
package diag
