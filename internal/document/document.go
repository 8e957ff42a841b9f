// Package document assembles the printable PDFs: registration slip,
// prescription, and payment receipt. Each builder is a pure function of the
// in-memory data at the moment of the user action; no server copy is kept.
package document

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"
)

const (
	pageWidth = 210 // A4 portrait, mm

	// breakThreshold is the vertical cursor position past which a table or
	// block continues on a fresh page.
	breakThreshold = 250
)

// Letterhead is the hospital header printed on every document.
type Letterhead struct {
	Name    string
	Address string
	Phone   string
}

type Generator struct {
	OutDir     string
	Letterhead Letterhead

	// Clock stands in for time.Now so documents are reproducible in tests.
	Clock func() time.Time

	// Compress controls PDF stream compression. On by default; tests turn
	// it off to inspect embedded text.
	Compress bool
}

func NewGenerator(outDir string, lh Letterhead) *Generator {
	return &Generator{
		OutDir:     outDir,
		Letterhead: lh,
		Clock:      time.Now,
		Compress:   true,
	}
}

func (g *Generator) newPDF() *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(g.Compress)
	pdf.AddPage()
	return pdf
}

func (g *Generator) save(pdf *gofpdf.Fpdf, name string) (string, error) {
	path := filepath.Join(g.OutDir, name)
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	return path, nil
}

// centerText places s horizontally centered at height y.
func centerText(pdf *gofpdf.Fpdf, y float64, s string) {
	w := pdf.GetStringWidth(s)
	pdf.Text((pageWidth-w)/2, y, s)
}

// rightText places s with its right edge at x.
func rightText(pdf *gofpdf.Fpdf, x, y float64, s string) {
	pdf.Text(x-pdf.GetStringWidth(s), y, s)
}

func formatDate(t time.Time) string { return t.Format("02/01/2006") }

func formatTime(t time.Time) string { return t.Format("15:04:05") }

// formatDateString renders an API timestamp or date string as a display
// date; unparseable input passes through unchanged.
func formatDateString(s string) string {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return formatDate(t)
		}
	}
	return s
}
