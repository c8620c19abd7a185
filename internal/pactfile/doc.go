// Package pactfile reads and writes pact contract files.
//
// Files use the Pact Specification v3 message layout:
//
//	{
//	  "consumer": {"name": "..."},
//	  "provider": {"name": "..."},
//	  "messages": [{"description": "...", "providerStates": [...], "contents": ..., "metadata": {...}}],
//	  "metadata": {"pactSpecification": {"version": "3.0.0"}}
//	}
//
// Messages are written sorted by description so a pact file's bytes depend
// only on its interactions. Every file read is validated against the
// embedded JSON Schema before it is decoded.
package pactfile
