// Package dictionary checks passwords against a small embedded list of
// commonly breached passwords, including simple variants where digits are
// prepended or appended to a listed word.
package dictionary
