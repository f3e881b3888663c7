package render

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/encoding/charmap"
)

// Canvas is the drawing surface of the PDF layout. Coordinates are PDF user
// space: x from the left edge, y from the bottom edge, in points.
type Canvas interface {
	PageSize() (width, height float64)
	AddPage()
	Measure(text string, font Font, size float64) float64
	DrawText(text string, x, y float64, style TextStyle)
	Err() error
	Finish() ([]byte, error)
}

// PageSize names a supported paper size.
type PageSize string

const (
	PageA4     PageSize = "A4"
	PageLetter PageSize = "Letter"
)

// ParsePageSize maps configuration input to a PageSize, defaulting to A4.
func ParsePageSize(raw string) PageSize {
	if strings.EqualFold(strings.TrimSpace(raw), string(PageLetter)) {
		return PageLetter
	}
	return PageA4
}

// DocumentInfo is written into the PDF info dictionary and the DOCX core
// properties.
type DocumentInfo struct {
	Title   string
	Author  string
	Subject string
	Created time.Time
}

const (
	coreFamily = "Helvetica"
	creator    = "resume-site"
)

type fpdfCanvas struct {
	pdf    *fpdf.Fpdf
	width  float64
	height float64
}

// NewFPDFCanvas returns a Canvas backed by the standard-14 Helvetica fonts.
// Text is measured with the Adobe AFM widths of Helvetica and Helvetica-Bold.
func NewFPDFCanvas(size PageSize, info DocumentInfo) (Canvas, error) {
	pdf := fpdf.New("P", "pt", string(size), "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCompression(true)
	pdf.SetCreator(creator, true)
	if info.Title != "" {
		pdf.SetTitle(info.Title, true)
	}
	if info.Author != "" {
		pdf.SetAuthor(info.Author, true)
	}
	if info.Subject != "" {
		pdf.SetSubject(info.Subject, true)
	}
	if !info.Created.IsZero() {
		pdf.SetCreationDate(info.Created)
	}

	for _, style := range []string{fpdfStyle(FontRegular), fpdfStyle(FontBold)} {
		pdf.SetFont(coreFamily, style, 11)
	}
	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFontMetrics, err)
	}

	width, height := pdf.GetPageSize()
	return &fpdfCanvas{
		pdf:    pdf,
		width:  width,
		height: height,
	}, nil
}

func fpdfStyle(f Font) string {
	if f == FontBold {
		return "B"
	}
	return ""
}

func (c *fpdfCanvas) PageSize() (float64, float64) {
	return c.width, c.height
}

func (c *fpdfCanvas) AddPage() {
	c.pdf.AddPage()
}

func (c *fpdfCanvas) Measure(text string, font Font, size float64) float64 {
	c.pdf.SetFont(coreFamily, fpdfStyle(font), size)
	return c.pdf.GetStringWidth(winAnsi(text))
}

func (c *fpdfCanvas) DrawText(text string, x, y float64, style TextStyle) {
	c.pdf.SetFont(coreFamily, fpdfStyle(style.Font), style.Size)
	r, g, b := style.Color.RGB255()
	c.pdf.SetTextColor(r, g, b)
	// fpdf measures y downwards from the top edge.
	c.pdf.Text(x, c.height-y, winAnsi(text))
}

func (c *fpdfCanvas) Err() error {
	return c.pdf.Error()
}

func (c *fpdfCanvas) Finish() ([]byte, error) {
	var buf bytes.Buffer
	if err := c.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerialize, err)
	}
	return buf.Bytes(), nil
}

// winAnsi converts UTF-8 to the single-byte encoding the core fonts use.
// Runes the encoding lacks become '?' so they still measure and draw as a
// visible glyph.
func winAnsi(text string) string {
	out := make([]byte, 0, len(text))
	for _, r := range text {
		b, ok := charmap.Windows1252.EncodeRune(r)
		if !ok {
			b = '?'
		}
		out = append(out, b)
	}
	return string(out)
}
