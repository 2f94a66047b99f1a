// Package patterns detects weak structural patterns in passwords: repeated
// runs, keyboard walks on the Latin and Cyrillic layouts, numeric sequences,
// embedded years and degenerate single-character or all-digit passwords.
package patterns
