// Package verifier replays message pacts against a provider.
//
// For each message in a pact, in file order, the verifier:
//
//  1. runs the Setup handler of every provider state, in order
//  2. generates the actual message from the matching message scenario
//  3. compares canonical JSON of the actual contents with the expected
//     contents (exact match)
//  4. checks that every expected metadata key is present with an equal value
//  5. runs the Teardown handler of every provider state, in reverse order,
//     also when an earlier step failed
//
// A provider state without a registered handler is logged and skipped.
// Failures are collected per interaction in a Result; Verify itself only
// returns an error when the context is cancelled.
//
// Fixtures (LoadFixtures) describe static messages in YAML for providers
// whose messages do not need code to produce, such as the `pact verify`
// command.
package verifier
