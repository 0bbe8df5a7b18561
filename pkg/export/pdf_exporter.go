package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// Field is one labelled value in a report section.
type Field struct {
	Label string
	Value string
}

// Section groups related fields under a heading.
type Section struct {
	Title  string
	Fields []Field
}

// Report is a titled document made of two-column sections.
type Report struct {
	Title    string
	Subtitle string
	Sections []Section
}

// PDFExporter renders reports into A4 PDFs.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Render lays out every section as a label/value table.
func (e *PDFExporter) Render(report Report) ([]byte, error) {
	if len(report.Sections) == 0 {
		return nil, fmt.Errorf("pdf requires at least one section")
	}
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetTitle(report.Title, true)
	pdf.AddPage()

	// core fonts are cp1252; translate so accented labels render.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Arial", "B", 15)
	pdf.CellFormat(0, 10, tr(report.Title), "", 1, "C", false, 0, "")
	if report.Subtitle != "" {
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(0, 6, tr(report.Subtitle), "", 1, "C", false, 0, "")
	}
	pdf.Ln(4)

	const labelWidth, valueWidth = 70.0, 110.0
	for _, section := range report.Sections {
		pdf.SetFont("Arial", "B", 11)
		pdf.SetFillColor(230, 230, 230)
		pdf.CellFormat(labelWidth+valueWidth, 8, tr(section.Title), "1", 1, "L", true, 0, "")

		pdf.SetFont("Arial", "", 9)
		for _, field := range section.Fields {
			pdf.CellFormat(labelWidth, 7, tr(field.Label), "1", 0, "", false, 0, "")
			pdf.CellFormat(valueWidth, 7, tr(field.Value), "1", 1, "", false, 0, "")
		}
		pdf.Ln(3)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
