// Package pipeline streams subject FASTA volumes through per-worker
// scanners, maps chunk hits back to record coordinates, drops cross-chunk
// duplicates and calls a visit callback from a single goroutine.
//
// The only contract to implement is Scanner (Scan + Stats), built by a
// ScannerFactory once per worker.
package pipeline
