package render

import (
	"math"
	"strings"
)

// LayoutState is the mutable position of the PDF layout. CursorY is the
// baseline of the next line in PDF user space and only ever decreases within
// a page.
type LayoutState struct {
	Page       int
	PageWidth  float64
	PageHeight float64
	CursorY    float64
	Margin     float64

	drawn bool
}

// MaxLineWidth is the horizontal space available to a line of text.
func (s *LayoutState) MaxLineWidth() float64 {
	return s.PageWidth - 2*s.Margin
}

// Top is the cursor position at the start of a page.
func (s *LayoutState) Top() float64 {
	return s.PageHeight - s.Margin
}

type pdfLayout struct {
	canvas Canvas
	state  *LayoutState
}

func newPDFLayout(canvas Canvas, margin float64) *pdfLayout {
	width, height := canvas.PageSize()
	state := &LayoutState{
		PageWidth:  width,
		PageHeight: height,
		Margin:     margin,
	}
	l := &pdfLayout{canvas: canvas, state: state}
	l.newPage()
	return l
}

func (l *pdfLayout) newPage() {
	l.canvas.AddPage()
	l.state.Page++
	l.state.CursorY = l.state.Top()
	l.state.drawn = false
}

// wrap packs the words of text greedily into lines no wider than the page
// allows. A single word wider than the line is emitted on its own.
func (l *pdfLayout) wrap(text string, font Font, size float64) []string {
	maxWidth := l.state.MaxLineWidth()
	var lines []string
	current := ""
	for _, word := range strings.Fields(text) {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if l.canvas.Measure(candidate, font, size) <= maxWidth {
			current = candidate
			continue
		}
		if current != "" {
			lines = append(lines, current)
		}
		current = word
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

// ensureSpace starts a new page when height more points would cross the
// bottom margin. A page with nothing on it is never abandoned.
func (l *pdfLayout) ensureSpace(height float64) {
	if l.state.CursorY-height >= l.state.Margin {
		return
	}
	if !l.state.drawn {
		return
	}
	l.newPage()
}

func (l *pdfLayout) drawLines(lines []string, style TextStyle, indent float64) {
	lineHeight := style.LineHeight()
	for _, line := range lines {
		l.ensureSpace(lineHeight)
		l.canvas.DrawText(line, l.state.Margin+indent, l.state.CursorY, style)
		l.state.drawn = true
		l.state.CursorY -= lineHeight
	}
}

func (l *pdfLayout) drawWrapped(text string, style TextStyle) {
	l.drawLines(l.wrap(text, style.Font, style.Size), style, 0)
}

func (l *pdfLayout) space(points float64) {
	l.state.CursorY -= points
}

func (l *pdfLayout) heading(text string) {
	l.drawWrapped(text, PDFStyles.Name)
	l.space(headingGap)
}

func (l *pdfLayout) subheading(text string) {
	l.drawWrapped(text, PDFStyles.Subheading)
	l.space(subheadingGap)
}

func (l *pdfLayout) paragraph(text string) {
	l.drawWrapped(text, PDFStyles.Paragraph)
	l.space(paragraphGap)
}

func (l *pdfLayout) bulletList(items []string) {
	style := PDFStyles.BulletText
	usable := l.state.Top() - l.state.Margin
	for _, item := range items {
		lines := l.wrap(item, style.Font, style.Size)
		if len(lines) == 0 {
			continue
		}
		// Keep an item on one page when it fits on one.
		l.ensureSpace(math.Min(float64(len(lines))*style.LineHeight(), usable))
		l.ensureSpace(style.LineHeight())
		l.canvas.DrawText(bulletGlyph, l.state.Margin, l.state.CursorY, PDFStyles.Bullet)
		l.drawLines(lines, style, bulletIndent)
		l.space(bulletItemGap)
	}
	l.space(bulletListGap)
}

// joinNonEmpty joins the non-blank parts with sep.
func joinNonEmpty(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
