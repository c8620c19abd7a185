// Package provider holds the provider-state handlers used during pact
// verification.
//
// A provider state is a named precondition ("an order with id 1 exists")
// that an interaction requires. Before replaying the interaction the
// verifier runs the Setup handler registered for that state; afterwards it
// runs the Teardown handler.
//
// The Registry is an explicit value rather than a package-level global:
// construct one at test-suite setup, pass it to the verifier, and Clear it
// between independent runs. All methods are safe for concurrent use.
//
// Invariant: no two registered handlers share both Description and Action.
package provider
