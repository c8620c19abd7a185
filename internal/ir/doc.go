// Package ir provides the canonical representation of pact documents.
//
// This package contains the shared types (participants, message interactions,
// provider states and the pact document itself) plus the canonical JSON
// encoding used to compare and fingerprint message contents. All other
// internal packages import ir; ir imports nothing internal.
//
// Key design constraints:
//   - Message contents and metadata are opaque JSON values
//   - Descriptions identify interactions within one pact
//   - Canonical JSON sorts object keys by UTF-16 code units (RFC 8785)
package ir
