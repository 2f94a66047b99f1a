// Package report renders assessments for people and tools: terminal tables
// and plain text, JSON, Markdown, printable HTML, PDF and SARIF. Every
// renderer works from a types.Assessment, which carries only a masked sample.
// Exact dictionary hits are masked the same way outside JSON.
package report
