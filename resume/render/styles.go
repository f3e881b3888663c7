package render

// Font selects one of the two standard Helvetica faces used in the PDF.
type Font int

const (
	FontRegular Font = iota
	FontBold
)

func (f Font) String() string {
	if f == FontBold {
		return "Helvetica-Bold"
	}
	return "Helvetica"
}

// Color is an RGB colour with components in [0, 1].
type Color struct {
	R, G, B float64
}

// RGB255 returns the colour scaled to 0..255.
func (c Color) RGB255() (int, int, int) {
	return scale255(c.R), scale255(c.G), scale255(c.B)
}

// Hex returns the colour as RRGGBB.
func (c Color) Hex() string {
	const digits = "0123456789ABCDEF"
	r, g, b := c.RGB255()
	out := make([]byte, 0, 6)
	for _, v := range []int{r, g, b} {
		out = append(out, digits[v>>4], digits[v&0x0f])
	}
	return string(out)
}

func scale255(v float64) int {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	default:
		return int(v*255 + 0.5)
	}
}

var (
	ColorBlack      = Color{0, 0, 0}
	ColorHeading    = Color{0.09, 0.13, 0.27}
	ColorSubheading = Color{0.11, 0.3, 0.84}
	ColorBody       = Color{0.2, 0.26, 0.33}
	ColorAccent     = Color{0.15, 0.27, 0.78}
	ColorMuted      = Color{0.4, 0.45, 0.52}
)

// TextStyle is a face, size and colour for one kind of PDF text.
type TextStyle struct {
	Font  Font
	Size  float64
	Color Color
}

// LineHeight is the vertical advance of one line in this style.
func (s TextStyle) LineHeight() float64 {
	return s.Size + lineGap
}

// PDF layout constants, in points.
const (
	DefaultMargin = 56

	lineGap        = 4
	headingGap     = 8
	subheadingGap  = 4
	paragraphGap   = 6
	contactGap     = 6
	roleMetaGap    = 4
	bulletItemGap  = 2
	bulletListGap  = 4
	competencyGap  = 4
	bulletIndent   = 14
	bulletGlyph    = "•"
	metaSeparator  = " • "
	titleSeparator = " | "
	certSeparator  = " — "
)

// PDFStyles centralizes the fonts used by the PDF layout.
var PDFStyles = struct {
	Name, Designation, Contact TextStyle
	Subheading, Paragraph      TextStyle
	Bullet, BulletText         TextStyle
	RoleLine, Meta, Competency TextStyle
}{
	Name:        TextStyle{FontBold, 20, ColorHeading},
	Designation: TextStyle{FontBold, 11, ColorAccent},
	Contact:     TextStyle{FontRegular, 10, ColorMuted},
	Subheading:  TextStyle{FontBold, 13, ColorSubheading},
	Paragraph:   TextStyle{FontRegular, 11, ColorBody},
	Bullet:      TextStyle{FontBold, 11, ColorAccent},
	BulletText:  TextStyle{FontRegular, 11, ColorBody},
	RoleLine:    TextStyle{FontBold, 12, ColorBlack},
	Meta:        TextStyle{FontRegular, 10, ColorMuted},
	Competency:  TextStyle{FontRegular, 11, ColorBlack},
}

// RunStyle captures the inline run formatting of a DOCX paragraph style.
// Size is in half-points.
type RunStyle struct {
	Bold   bool
	Italic bool
	Size   int
	Color  string
}

const (
	HeadingColor = "1F2937"
	NameColor    = "17213F"
	AccentColor  = "1D4ED6"
	NameSize     = 52
	Heading2Size = 28
	Heading3Size = 24
	BodySize     = 22
)

// StyleMap holds the run formatting of the DOCX paragraph styles.
var StyleMap = map[string]RunStyle{
	styleIDTitle: {
		Bold:  true,
		Size:  NameSize,
		Color: NameColor,
	},
	styleIDHeading2: {
		Bold:  true,
		Size:  Heading2Size,
		Color: AccentColor,
	},
	styleIDHeading3: {
		Bold:  true,
		Size:  Heading3Size,
		Color: HeadingColor,
	},
	styleIDNormal: {
		Size: BodySize,
	},
}
