// Package writers turns HSPs into serialized outputs.
//
// Design:
//   - Writers own all presentation knowledge (pretty blocks, TSV, JSON/JSONL).
//   - Engine stays domain-only; Pipeline stays orchestration-only.
//   - JSON/JSONL go through pkg/api (v1) for a stable wire format.
//   - Each format registers a StartFunc; callers go through StartHSPWriter.
package writers
