package ir

// Version constants for the pact format and this client.
const (
	// PactSpecVersion is the pact specification version written to pact files.
	PactSpecVersion = "3.0.0"

	// ClientVersion is the version of this client, recorded in pact metadata.
	ClientVersion = "0.1.0"
)
