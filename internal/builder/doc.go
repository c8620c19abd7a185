// Package builder implements the consumer side of message pacts: a builder
// that records expected message interactions and publishes them.
//
// # Lifecycle
//
// A MessagePactBuilder moves through a fixed sequence of states:
//
//	Unconfigured -> ConsumerSet -> ParticipantsSet -> Initialized -> Built
//
// ServiceConsumer and HasPactWith name the two participants (in either
// order). Initialize creates the pact document through the injected
// DocumentFactory. Interactions are then recorded with AddMessage or the
// fluent ExpectsToReceive chain. Build publishes them.
//
// Transitions are monotonic. Operations invoked out of sequence fail with an
// InvalidState error and leave the builder unchanged.
//
// # Build protocol
//
// Build reads every interaction from the document and then:
//
//  1. calls Merger.DeleteUnexpectedInteractions exactly once, so interactions
//     persisted by earlier runs but no longer declared are purged first;
//  2. creates one update command per interaction and executes them in order.
//
// There is no batching, no retry and no rollback: if the third of five
// commands fails, the first two stay published and Build returns a
// PublishFailure wrapping the command's error.
//
// # Usage
//
//	b := builder.New(cfg, engine.NewDocumentFactory(), cmds, merger)
//	if _, err := b.ServiceConsumer("order-ui"); err != nil { ... }
//	if _, err := b.HasPactWith("order-service"); err != nil { ... }
//	if err := b.Initialize(ctx); err != nil { ... }
//	err := b.ExpectsToReceive("an order created event").
//	    Given("an order exists").
//	    WithMetadata(map[string]any{"queue": "orders"}).
//	    WithContent(map[string]any{"id": 1})
//	...
//	err = b.Build(ctx)
package builder
