//go:build !blastdebug

package wordfinder

// Release builds clamp out-of-range hits and count them in Result.Clamped.
const strictPreconditions = false
