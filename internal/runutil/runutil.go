// internal/runutil/runutil.go
package runutil

import "fmt"

// ComputeOverlap chooses a safe chunk overlap. An ungapped HSP never spans
// more subject residues than the query has, so an overlap of the longest
// query length guarantees some chunk holds every HSP whole.
func ComputeOverlap(maxQueryLen int) int { return max(maxQueryLen, 0) }

// ValidateChunking decides whether chunking is allowed and returns
// (chunkSize, overlap, warnings).
//   - chunkSize <= 0 → no chunking
//   - chunkSize <= overlap → chunking disabled (windows would never advance)
func ValidateChunking(chunkSize, maxQueryLen int) (int, int, []string) {
	if chunkSize <= 0 {
		return 0, 0, nil
	}
	ov := ComputeOverlap(maxQueryLen)
	if chunkSize <= ov {
		return 0, 0, []string{fmt.Sprintf("--chunk-size (%d) must exceed the query length (%d); chunking disabled", chunkSize, ov)}
	}
	return chunkSize, ov, nil
}

// EffectiveThreads maps 0 (or less) to fallback.
func EffectiveThreads(threads, fallback int) int {
	if threads > 0 {
		return threads
	}
	return max(fallback, 1)
}
