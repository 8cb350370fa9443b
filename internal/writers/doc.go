// Package writers turns converted messages into serialized outputs.
//
// Design:
//   - Writers own all presentation knowledge (grouped text, JSON, JSONL).
//   - The session driver stays domain-only and never formats output.
//   - JSON/JSONL go through pkg/api (v1) for a stable wire format.
package writers
