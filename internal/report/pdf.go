package report

import (
	_ "embed"
	"errors"
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/Razmik-Kutinava/password-entropy-lab/internal/types"
)

// The core PDF fonts are Latin-1 only; DejaVu covers bullets, check marks
// and Cyrillic.
var (
	//go:embed fonts/DejaVuSansCondensed.ttf
	fontRegular []byte
	//go:embed fonts/DejaVuSansCondensed-Bold.ttf
	fontBold []byte
)

const (
	pdfFamily = "DejaVu"
	pdfLineH  = 5.5
)

// WritePDF renders an A4 report, one section per assessment. Nothing is
// written to w when rendering fails.
func WritePDF(w io.Writer, as ...types.Assessment) error {
	if len(as) == 0 {
		return errors.New("pdf: nothing to render")
	}
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(productName+" Report", true)
	pdf.SetCreator(productName, true)
	pdf.SetCreationDate(as[0].Timestamp)
	pdf.SetModificationDate(as[0].Timestamp)
	pdf.SetCatalogSort(true)
	pdf.AddUTF8FontFromBytes(pdfFamily, "", fontRegular)
	pdf.AddUTF8FontFromBytes(pdfFamily, "B", fontBold)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)

	for _, a := range as {
		pdf.AddPage()
		pdfAssessment(pdf, a)
	}
	return pdf.Output(w)
}

func pdfAssessment(pdf *fpdf.Fpdf, a types.Assessment) {
	pdf.SetFont(pdfFamily, "B", 16)
	pdf.CellFormat(0, 10, productName, "", 1, "C", false, 0, "")
	pdf.SetFont(pdfFamily, "", 10)
	pdf.CellFormat(0, pdfLineH, "Analysis report", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdfKV(pdf, "Date", a.Timestamp.Format("2006-01-02 15:04:05 MST"))
	pdfKV(pdf, "Policy", a.PolicyName)
	pdfKV(pdf, "Sample", a.PasswordSample)

	pdfHeading(pdf, "Key metrics")
	pdfKV(pdf, "Length", fmt.Sprintf("%d characters", a.Length))
	pdfKV(pdf, "Entropy", fmt.Sprintf("%v bits", a.EntropyBits))
	pdfKV(pdf, "Strength", strengthText(a.Strength))

	pdfHeading(pdf, "Character classes")
	pdfKV(pdf, "Lowercase", check(a.Classes.Lower))
	pdfKV(pdf, "Uppercase", check(a.Classes.Upper))
	pdfKV(pdf, "Digits", check(a.Classes.Digits))
	pdfKV(pdf, "Special", check(a.Classes.Special))

	pdfHeading(pdf, fmt.Sprintf("Policy compliance (%s)", a.Verdict()))
	for _, r := range a.Compliance {
		red, green, blue := statusRGB(r.Status)
		pdf.SetTextColor(red, green, blue)
		pdf.SetFont(pdfFamily, "B", 10)
		pdf.CellFormat(14, pdfLineH, string(r.Status), "", 0, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.SetFont(pdfFamily, "", 10)
		line := r.Rule
		if r.Details != "" {
			line += " (" + r.Details + ")"
		}
		pdf.MultiCell(0, pdfLineH, line, "", "L", false)
	}

	if len(a.Patterns) > 0 || len(a.DictionaryHits) > 0 {
		pdfHeading(pdf, "Problems found")
		for _, l := range patternLabels(a.Patterns) {
			pdfBullet(pdf, l)
		}
		for _, h := range a.DictionaryHits {
			pdfBullet(pdf, fmt.Sprintf("Common password %s (%s)", h.Display(), h.Dict))
		}
	}

	if len(a.FixSuggestions) > 0 {
		pdfHeading(pdf, "Recommendations")
		for _, s := range a.FixSuggestions {
			pdfBullet(pdf, s)
		}
	}

	pdf.Ln(6)
	pdf.SetTextColor(110, 110, 110)
	pdf.SetFont(pdfFamily, "", 8)
	pdf.CellFormat(0, 4, "Generated by "+productName, "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 4, footerLocal, "", 1, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

func pdfHeading(pdf *fpdf.Fpdf, s string) {
	pdf.Ln(3)
	pdf.SetFont(pdfFamily, "B", 12)
	pdf.CellFormat(0, 7, s, "B", 1, "L", false, 0, "")
	pdf.Ln(1)
	pdf.SetFont(pdfFamily, "", 10)
}

func pdfKV(pdf *fpdf.Fpdf, k, v string) {
	pdf.SetFont(pdfFamily, "B", 10)
	pdf.CellFormat(30, pdfLineH, k+":", "", 0, "L", false, 0, "")
	pdf.SetFont(pdfFamily, "", 10)
	pdf.MultiCell(0, pdfLineH, v, "", "L", false)
}

func pdfBullet(pdf *fpdf.Fpdf, s string) {
	pdf.CellFormat(6, pdfLineH, "•", "", 0, "L", false, 0, "")
	pdf.MultiCell(0, pdfLineH, s, "", "L", false)
}

func statusRGB(s types.Status) (int, int, int) {
	switch s {
	case types.StatusPass:
		return 22, 130, 60
	case types.StatusWarn:
		return 190, 120, 0
	default:
		return 200, 30, 30
	}
}
