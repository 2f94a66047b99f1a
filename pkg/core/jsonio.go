package core

import (
	"encoding/json"
	"io"

	"github.com/Razmik-Kutinava/password-entropy-lab/internal/report"
)

// MarshalAssessment pretty-prints a as NFC-normalized JSON.
func MarshalAssessment(w io.Writer, a Assessment) error {
	return report.WriteJSON(w, a, report.JSONOptions{})
}

// UnmarshalAssessment decodes an assessment written by MarshalAssessment.
func UnmarshalAssessment(r io.Reader) (Assessment, error) {
	var a Assessment
	if err := json.NewDecoder(r).Decode(&a); err != nil {
		return Assessment{}, err
	}
	return a, nil
}
