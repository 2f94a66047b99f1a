// Package engine assesses passwords against policies. It classifies
// characters, detects weak patterns and dictionary hits, estimates entropy,
// rates strength, evaluates each policy rule and builds fix suggestions.
//
// Assessment is pure: no I/O and no shared mutable state, so an Engine may
// be used from many goroutines. This package is internal; external
// consumers should use the stable facade in pkg/core.
package engine
