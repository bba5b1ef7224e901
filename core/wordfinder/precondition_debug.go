//go:build blastdebug

package wordfinder

const strictPreconditions = true
