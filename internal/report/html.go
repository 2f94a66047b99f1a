package report

import (
	"html/template"
	"io"
	"strings"

	"github.com/Razmik-Kutinava/password-entropy-lab/internal/types"
)

var htmlTmpl = template.Must(template.New("report").Funcs(template.FuncMap{
	"check":    check,
	"lower":    strings.ToLower,
	"strength": strengthText,
	"labels":   patternLabels,
	"stamp":    func(a types.Assessment) string { return a.Timestamp.Format("2006-01-02 15:04:05 MST") },
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Password Analysis Report</title>
<style>
body { font-family: 'DejaVu Serif', serif; margin: 20px; line-height: 1.4; }
h1 { color: #333; text-align: center; }
h2 { color: #666; border-bottom: 1px solid #ddd; }
.metric { margin: 5px 0; }
.pass { color: green; }
.warn { color: orange; }
.fail { color: red; }
.suggestion { margin: 5px 0; padding-left: 20px; }
@media print { body { margin: 0; } }
</style>
</head>
<body>
<h1>{{.Product}} Report</h1>
{{range .Assessments}}
<section>
<h2>{{.PolicyName}}</h2>
<p><strong>Date:</strong> {{stamp .}}</p>
<div class="metric"><strong>Sample:</strong> {{.PasswordSample}}</div>
<div class="metric"><strong>Length:</strong> {{.Length}} characters</div>
<div class="metric"><strong>Entropy:</strong> {{.EntropyBits}} bits</div>
<div class="metric"><strong>Strength:</strong> {{strength .Strength}}</div>
<h3>Character classes</h3>
<div class="metric">Lowercase: {{check .Classes.Lower}}</div>
<div class="metric">Uppercase: {{check .Classes.Upper}}</div>
<div class="metric">Digits: {{check .Classes.Digits}}</div>
<div class="metric">Special: {{check .Classes.Special}}</div>
<h3>Policy compliance</h3>
{{range .Compliance}}<div class="metric {{lower (print .Status)}}">{{.Status}}: {{.Rule}}{{if .Details}} ({{.Details}}){{end}}</div>
{{end}}
{{- if .Patterns}}
<h3>Problems found</h3>
{{range labels .Patterns}}<div class="suggestion">• {{.}}</div>
{{end}}{{end}}
{{- if .FixSuggestions}}
<h3>Recommendations</h3>
{{range .FixSuggestions}}<div class="suggestion">• {{.}}</div>
{{end}}{{end}}
</section>
{{end}}
<hr>
<p><small>Generated by {{.Product}}<br>{{.Footer}}</small></p>
</body>
</html>
`))

// WriteHTML writes a printable HTML report with one section per assessment.
func WriteHTML(w io.Writer, as ...types.Assessment) error {
	return htmlTmpl.Execute(w, struct {
		Product     string
		Footer      string
		Assessments []types.Assessment
	}{productName, footerLocal, as})
}
