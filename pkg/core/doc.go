// Package core provides a small, stable facade over the password assessment
// engine for external integrations. It re-exports a narrow API surface so
// other programs can depend on a stable import path without importing
// internal packages.
//
// Example:
//
//	a, err := core.Assess(pw, "PCI_DSS_COMPLIANCE")
//	if err != nil { /* handle */ }
//	_ = core.MarshalAssessment(os.Stdout, a)
package core
