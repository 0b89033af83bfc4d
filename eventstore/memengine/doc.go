// Package memengine provides an in-memory, append-only event log.
//
// The EventLog assigns strictly increasing sequence numbers starting at 1,
// evaluates eventstore.Filter criteria against its events, and hands out
// deep copies on every read, so a snapshot taken by a caller is never
// affected by later appends and can never alter the log.
//
// Durability is out of scope: the log lives exactly as long as the process.
//
// Observability is opt-in via functional options:
//
//	eventLog, err := memengine.NewEventLog(
//		memengine.WithLogger(slog.Default()),
//		memengine.WithMetrics(oteladapters.NewMetricsCollector(meter)),
//		memengine.WithTracing(oteladapters.NewTracingCollector(tracer)),
//	)
package memengine
