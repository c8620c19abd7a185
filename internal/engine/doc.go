// Package engine is the local pact engine: SQLite-backed implementations
// of the builder's collaborators.
//
// The pieces map onto the build protocol:
//
//   - NewDocumentFactory creates in-memory MessagePact documents that
//     record interactions during a consumer test.
//   - Commands creates one UpdateCommand per interaction. Executing it
//     upserts the pact row, writes the interaction, and re-exports the pact
//     file when a pact directory is configured.
//   - StoreMerger deletes persisted interactions the consumer no longer
//     declares. It runs once per Build, before any UpdateCommand.
//
// Engine wires all three to one store:
//
//	eng := engine.New(st, cfg, engine.WithLogger(logger))
//	b := eng.NewBuilder()
//
// Publish and prune counts are exported through Metrics when one is
// supplied with WithMetrics.
package engine
