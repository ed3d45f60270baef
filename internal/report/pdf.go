// Package report renders chart results to downloadable PDF documents.
package report

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

// Layout constants in millimeters (A4 portrait).
const (
	marginMM     = 20
	titleSizePt  = 16
	bodySizePt   = 11
	lineHeightMM = 7
)

// PDFRenderer lays out chart result lines as an A4 document. Pagination is
// automatic: a new page starts whenever vertical space runs out.
type PDFRenderer struct{}

// NewPDFRenderer creates the renderer.
func NewPDFRenderer() *PDFRenderer { return &PDFRenderer{} }

// Render produces the PDF bytes for one chart: a title with the subject name
// followed by one line per entry. The core fonts are latin-1 only, so text
// passes through the built-in UTF-8 translator to keep Portuguese accents.
func (r *PDFRenderer) Render(name string, lines []string) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(marginMM, marginMM, marginMM)
	pdf.SetAutoPageBreak(true, marginMM)
	pdf.SetTitle("Mapa Astral", true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()

	title := "Mapa Astral"
	if name != "" {
		title = fmt.Sprintf("Mapa Astral de %s", name)
	}
	pdf.SetFont("Helvetica", "B", titleSizePt)
	pdf.CellFormat(0, 12, tr(title), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", bodySizePt)
	for _, line := range lines {
		pdf.MultiCell(0, lineHeightMM, tr(line), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
