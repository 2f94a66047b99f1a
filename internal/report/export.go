package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/Razmik-Kutinava/password-entropy-lab/internal/types"
)

// Format names an output format.
type Format string

const (
	FormatTable    Format = "table"
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatSARIF    Format = "sarif"
	FormatPDF      Format = "pdf"
)

// Formats lists every supported format.
var Formats = []Format{FormatTable, FormatText, FormatJSON, FormatMarkdown, FormatHTML, FormatSARIF, FormatPDF}

// ParseFormat accepts a format name, case-insensitively. "md" is markdown.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if f == "md" {
		return FormatMarkdown, nil
	}
	if f == "" {
		return FormatTable, nil
	}
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format %q (want one of table, text, json, markdown, html, sarif, pdf)", s)
}

// ExportOptions bundles the knobs the individual renderers take.
type ExportOptions struct {
	NoColor bool
	BOM     bool
	Version string
	// Names orders a multi-policy table; defaults to assessment order.
	Names []string
	// Props is attached to SARIF runs.
	Props map[string]any
}

// Export renders as in format. Rich formats render into a buffer first; if
// that fails, the plain-text report is written instead and FormatText is
// returned so the caller can tell.
func Export(w io.Writer, as []types.Assessment, format Format, opts ExportOptions) (Format, error) {
	var buf bytes.Buffer
	err := render(&buf, as, format, opts)
	if err == nil {
		_, err = w.Write(buf.Bytes())
		return format, err
	}
	if format == FormatText {
		return format, err
	}
	for i, a := range as {
		if i > 0 {
			if _, werr := io.WriteString(w, "\n"); werr != nil {
				return FormatText, werr
			}
		}
		if terr := PrintText(w, a); terr != nil {
			return FormatText, fmt.Errorf("%s export failed (%v); text fallback: %w", format, err, terr)
		}
	}
	return FormatText, nil
}

var renderHook func(format Format) error

func render(w io.Writer, as []types.Assessment, format Format, opts ExportOptions) error {
	if renderHook != nil {
		if err := renderHook(format); err != nil {
			return err
		}
	}
	switch format {
	case FormatTable:
		if len(as) == 1 {
			return PrintTable(w, as[0], PrintOptions{NoColor: opts.NoColor})
		}
		names := opts.Names
		byName := make(map[string]types.Assessment, len(as))
		for _, a := range as {
			byName[a.PolicyName] = a
			if len(opts.Names) == 0 {
				names = append(names, a.PolicyName)
			}
		}
		return PrintMatrix(w, byName, names, PrintOptions{NoColor: opts.NoColor})
	case FormatText:
		for i, a := range as {
			if i > 0 {
				fmt.Fprintln(w)
			}
			if err := PrintText(w, a); err != nil {
				return err
			}
		}
		return nil
	case FormatJSON:
		if len(as) == 1 {
			return WriteJSON(w, as[0], JSONOptions{BOM: opts.BOM})
		}
		return WriteJSON(w, as, JSONOptions{BOM: opts.BOM})
	case FormatMarkdown:
		return WriteMarkdown(w, as...)
	case FormatHTML:
		return WriteHTML(w, as...)
	case FormatSARIF:
		return WriteSARIF(w, as, opts.Version, opts.Props)
	case FormatPDF:
		return WritePDF(w, as...)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
