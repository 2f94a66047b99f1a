// Package audit keeps an append-only JSONL history of assessments. Records
// hold scores and counts only; dictionary words and passwords are never
// written.
package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/Razmik-Kutinava/password-entropy-lab/internal/types"
)

// FileName is the default audit log file name inside the data directory.
const FileName = "audit.jsonl"

// Record is one audited assessment.
type Record struct {
	ID             string          `json:"id"`
	Timestamp      time.Time       `json:"timestamp"`
	Source         string          `json:"source"`
	Policy         string          `json:"policy"`
	Catalog        string          `json:"catalog,omitempty"`
	Sample         string          `json:"sample"`
	Length         int             `json:"length"`
	EntropyBits    float64         `json:"entropy_bits"`
	Strength       types.Strength  `json:"strength"`
	Verdict        types.Status    `json:"verdict"`
	StatusCounts   map[string]int  `json:"status_counts"`
	Patterns       []types.Pattern `json:"patterns,omitempty"`
	DictionaryHit  bool            `json:"dictionary_hit"`
	FailedRules    []string        `json:"failed_rules,omitempty"`
	SuggestionsCnt int             `json:"suggestions"`
}

type AuditLog struct {
	logPath string
}

// NewAuditLog returns a log writing to path.
func NewAuditLog(path string) *AuditLog {
	return &AuditLog{logPath: path}
}

// Path returns the log file location.
func (a *AuditLog) Path() string { return a.logPath }

// LoadHistory returns records newest first. Reading stops at the first
// malformed record.
func (a *AuditLog) LoadHistory() ([]Record, error) {
	f, err := os.Open(a.logPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	var records []Record
	decoder := json.NewDecoder(f)
	for decoder.More() {
		var record Record
		if err := decoder.Decode(&record); err != nil {
			break
		}
		records = append(records, record)
	}

	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return records, nil
}

// Append writes records to the end of the log, creating it and its
// directory when needed.
func (a *AuditLog) Append(records ...Record) error {
	if err := os.MkdirAll(filepath.Dir(a.logPath), 0o700); err != nil {
		return fmt.Errorf("failed to create audit dir: %w", err)
	}
	// owner-only: records describe credential quality
	f, err := os.OpenFile(a.logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetEscapeHTML(false)
	for _, record := range records {
		if record.ID == "" {
			record.ID = uuid.NewString()
		}
		if err := encoder.Encode(record); err != nil {
			return fmt.Errorf("failed to write audit record: %w", err)
		}
	}
	return nil
}

// DeleteRecord removes the record at index, counted newest first as
// returned by LoadHistory.
func (a *AuditLog) DeleteRecord(index int) error {
	records, err := a.LoadHistory()
	if err != nil {
		return err
	}
	if index < 0 || index >= len(records) {
		return fmt.Errorf("invalid index: %d", index)
	}
	records = append(records[:index], records[index+1:]...)

	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}

	f, err := os.OpenFile(a.logPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("failed to rewrite audit log: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetEscapeHTML(false)
	for _, record := range records {
		if err := encoder.Encode(record); err != nil {
			return fmt.Errorf("failed to write audit record: %w", err)
		}
	}
	return nil
}

// CreateRecord summarizes a for the log. catalog is the registry
// fingerprint and source names the command that produced a.
func CreateRecord(a types.Assessment, catalog, source string) Record {
	counts := map[string]int{}
	var failed []string
	for _, r := range a.Compliance {
		counts[string(r.Status)]++
		if r.Status == types.StatusFail {
			failed = append(failed, r.Rule)
		}
	}
	return Record{
		ID:             uuid.NewString(),
		Timestamp:      a.Timestamp,
		Source:         source,
		Policy:         a.PolicyName,
		Catalog:        catalog,
		Sample:         a.PasswordSample,
		Length:         a.Length,
		EntropyBits:    a.EntropyBits,
		Strength:       a.Strength,
		Verdict:        a.Verdict(),
		StatusCounts:   counts,
		Patterns:       append([]types.Pattern(nil), a.Patterns...),
		DictionaryHit:  len(a.DictionaryHits) > 0,
		FailedRules:    failed,
		SuggestionsCnt: len(a.FixSuggestions),
	}
}
