// Package verify renders the downloadable formats twice and checks the
// extracted text for stability and section order.
package verify

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"resume-site/internal/extract"
	"resume-site/resume/contract"
	"resume-site/resume/model"
	"resume-site/resume/sections"
)

// Exporter renders one format of the résumé.
type Exporter interface {
	Export(ctx context.Context, format contract.Format) (contract.Document, error)
}

// FormatReport is the outcome for one format.
type FormatReport struct {
	Format       contract.Format
	SizeBytes    int
	Pages        int
	Stable       bool
	MissingTitle string
	Problems     []string
}

// OK reports whether the format passed every check.
func (r FormatReport) OK() bool {
	return len(r.Problems) == 0
}

// Report collects the per-format outcomes.
type Report struct {
	Formats []FormatReport
}

func (r Report) OK() bool {
	for _, f := range r.Formats {
		if !f.OK() {
			return false
		}
	}
	return true
}

// Run exports every format twice and checks that the text is identical
// across runs and that section titles of data appear in presentation order.
func Run(ctx context.Context, exp Exporter, data model.ResumeData, formats ...contract.Format) (Report, error) {
	if len(formats) == 0 {
		formats = []contract.Format{contract.FormatPDF, contract.FormatDOCX}
	}
	titles := sections.Titles(data)

	var report Report
	for _, format := range formats {
		fr, err := checkFormat(ctx, exp, format, titles)
		if err != nil {
			return Report{}, err
		}
		report.Formats = append(report.Formats, fr)
	}
	return report, nil
}

func checkFormat(ctx context.Context, exp Exporter, format contract.Format, titles []string) (FormatReport, error) {
	fr := FormatReport{Format: format}

	var texts [2]string
	for i := range texts {
		doc, err := exp.Export(ctx, format)
		if err != nil {
			return fr, fmt.Errorf("verify %s: %w", format, err)
		}
		if len(doc.Body) == 0 {
			fr.Problems = append(fr.Problems, "empty document")
			return fr, nil
		}
		res, err := extract.FromBytes(ctx, doc.Body, doc.ContentType, doc.FileName)
		if err != nil {
			fr.Problems = append(fr.Problems, "unreadable: "+err.Error())
			return fr, nil
		}
		texts[i] = res.Text
		fr.SizeBytes = len(doc.Body)
		fr.Pages = res.Pages
	}

	fr.Stable = texts[0] == texts[1]
	if !fr.Stable {
		fr.Problems = append(fr.Problems, "extracted text differs between runs")
	}
	if missing := firstOutOfOrder(texts[0], titles); missing != "" {
		fr.MissingTitle = missing
		fr.Problems = append(fr.Problems, fmt.Sprintf("section %q missing or out of order", missing))
	}
	return fr, nil
}

// firstOutOfOrder returns the first title not found after its predecessor.
// Whitespace and case are ignored since PDF extraction does not keep them
// reliably.
func firstOutOfOrder(text string, titles []string) string {
	haystack := fold(text)
	pos := 0
	for _, title := range titles {
		idx := strings.Index(haystack[pos:], fold(title))
		if idx < 0 {
			return title
		}
		pos += idx + len(fold(title))
	}
	return ""
}

func fold(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, s)
}
