package contract

import (
	"fmt"
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	MimePDF  = "application/pdf"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimeHTML = "text/html; charset=utf-8"
)

// Format names one presentation of the résumé.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatHTML Format = "html"
)

// ParseFormat maps user input to a Format.
func ParseFormat(raw string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(raw))) {
	case FormatPDF:
		return FormatPDF, nil
	case FormatDOCX, "word":
		return FormatDOCX, nil
	case FormatHTML, "htm":
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("unsupported format %q", raw)
	}
}

// ContentType returns the fixed MIME type of the format.
func (f Format) ContentType() string {
	switch f {
	case FormatPDF:
		return MimePDF
	case FormatDOCX:
		return MimeDOCX
	default:
		return MimeHTML
	}
}

// Document is a named, downloadable rendering of the résumé.
type Document struct {
	Format      Format
	FileName    string
	ContentType string
	Body        []byte
}

// NewDocument builds a Document for personName with the fixed filename and
// content type of the format.
func NewDocument(format Format, personName string, body []byte) Document {
	return Document{
		Format:      format,
		FileName:    AttachmentName(personName, string(format)),
		ContentType: format.ContentType(),
		Body:        body,
	}
}

// ContentDisposition returns the attachment header value for the document.
// Names outside ASCII get an accent-folded filename plus the exact name as
// an RFC 5987 filename* parameter.
func (d Document) ContentDisposition() string {
	fallback := asciiFileName(d.FileName)
	if fallback == d.FileName {
		return `attachment; filename="` + fallback + `"`
	}
	return fmt.Sprintf(`attachment; filename="%s"; filename*=UTF-8''%s`, fallback, url.PathEscape(d.FileName))
}

// asciiFileName strips accents, drops what is left outside printable ASCII
// and collapses the dashes that leaves behind.
func asciiFileName(name string) string {
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(fold, name)
	if err != nil {
		folded = name
	}
	var b strings.Builder
	for _, r := range folded {
		if r < utf8.RuneSelf && unicode.IsPrint(r) && r != '"' && r != '\\' {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.FieldsFunc(b.String(), func(r rune) bool { return r == '-' }), "-")
}

// AttachmentName returns "<First-Last>-Resume.<ext>" for the person.
func AttachmentName(personName, ext string) string {
	base := slugName(personName)
	if base == "" {
		base = "Resume"
	} else {
		base += "-Resume"
	}
	return base + "." + strings.TrimPrefix(ext, ".")
}

func slugName(name string) string {
	fields := strings.FieldsFunc(name, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-'
	})
	return strings.Join(fields, "-")
}
