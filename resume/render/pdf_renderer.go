package render

import (
	"fmt"
	"strings"
	"time"

	"resume-site/resume/contract"
	"resume-site/resume/model"
	"resume-site/resume/sections"
)

// PDFOptions configures the PDF exporter. Zero values mean A4 and the default margin.
type PDFOptions struct {
	PageSize PageSize
	Margin   float64
}

func (o PDFOptions) withDefaults() PDFOptions {
	if o.PageSize == "" {
		o.PageSize = PageA4
	}
	if o.Margin <= 0 {
		o.Margin = DefaultMargin
	}
	return o
}

// PDFExporter lays out résumé data on fixed-size pages.
type PDFExporter struct {
	opts PDFOptions
	now  func() time.Time
}

func NewPDFExporter(opts PDFOptions) *PDFExporter {
	return &PDFExporter{opts: opts.withDefaults(), now: time.Now}
}

// Export renders data into a downloadable PDF document.
func (e *PDFExporter) Export(data model.ResumeData) (contract.Document, error) {
	canvas, err := NewFPDFCanvas(e.opts.PageSize, DocumentInfo{
		Title:   documentTitle(data.Personal),
		Author:  data.Personal.Name,
		Subject: data.Personal.Designation,
		Created: e.now(),
	})
	if err != nil {
		return contract.Document{}, err
	}
	if _, err := renderPDFTo(canvas, data, e.opts.Margin); err != nil {
		return contract.Document{}, err
	}
	body, err := canvas.Finish()
	if err != nil {
		return contract.Document{}, err
	}
	return contract.NewDocument(contract.FormatPDF, data.Personal.Name, body), nil
}

// RenderPDF renders data with opts and returns the raw PDF bytes.
func RenderPDF(data model.ResumeData, opts PDFOptions) ([]byte, error) {
	doc, err := NewPDFExporter(opts).Export(data)
	if err != nil {
		return nil, err
	}
	return doc.Body, nil
}

func renderPDFTo(canvas Canvas, data model.ResumeData, margin float64) (*LayoutState, error) {
	r := &pdfSectionRenderer{layout: newPDFLayout(canvas, margin)}
	if err := sections.Render(data, r); err != nil {
		return nil, err
	}
	if err := canvas.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerialize, err)
	}
	return r.layout.state, nil
}

func documentTitle(p model.Personal) string {
	return joinNonEmpty(titleSeparator, p.Name, p.Designation)
}

// pdfSectionRenderer draws sections top to bottom through one layout.
type pdfSectionRenderer struct {
	layout *pdfLayout
}

func (r *pdfSectionRenderer) Header(p model.Personal) error {
	l := r.layout
	l.heading(p.Name)
	l.drawWrapped(strings.ToUpper(p.Designation), PDFStyles.Designation)
	l.drawWrapped(joinNonEmpty(metaSeparator, p.Location, p.Phone, p.Email, p.LinkedIn), PDFStyles.Contact)
	l.space(contactGap)
	return nil
}

func (r *pdfSectionRenderer) Summary(title, text string) error {
	r.layout.subheading(title)
	r.layout.paragraph(text)
	return nil
}

func (r *pdfSectionRenderer) Responsibility(group model.CategoryList) error {
	r.layout.subheading(group.Category)
	r.layout.bulletList(group.Items)
	return nil
}

func (r *pdfSectionRenderer) Experience(title string, roles []model.Experience) error {
	l := r.layout
	l.subheading(title)
	for _, role := range roles {
		l.drawWrapped(joinNonEmpty(titleSeparator, role.Title, role.Company), PDFStyles.RoleLine)
		l.drawWrapped(joinNonEmpty(metaSeparator, role.Location, role.Period), PDFStyles.Meta)
		l.space(roleMetaGap)
		l.bulletList(role.Highlights)
	}
	return nil
}

func (r *pdfSectionRenderer) Competencies(title string, items []string) error {
	l := r.layout
	l.subheading(title)
	for _, item := range items {
		l.drawWrapped(item, PDFStyles.Competency)
	}
	l.space(competencyGap)
	return nil
}

func (r *pdfSectionRenderer) Proficiencies(title string, groups []model.CategoryList) error {
	r.layout.subheading(title)
	for _, group := range groups {
		r.layout.paragraph(group.Joined())
	}
	return nil
}

func (r *pdfSectionRenderer) Education(title string, items []model.Education) error {
	l := r.layout
	l.subheading(title)
	for _, item := range items {
		l.drawWrapped(item.Qualification, PDFStyles.RoleLine)
		l.drawWrapped(joinNonEmpty(metaSeparator, item.Institution, item.Period), PDFStyles.Meta)
		if item.HasDetails() {
			l.paragraph(item.Details)
		}
	}
	return nil
}

func (r *pdfSectionRenderer) Certifications(title string, items []model.Certification) error {
	r.layout.subheading(title)
	for _, item := range items {
		r.layout.paragraph(certificationLine(item))
	}
	return nil
}

func (r *pdfSectionRenderer) Achievements(title string, items []model.Achievement) error {
	r.layout.subheading(title)
	for _, item := range items {
		r.layout.paragraph(item.Title + ": " + item.Details)
	}
	return nil
}

func (r *pdfSectionRenderer) Interests(title string, items []string) error {
	r.layout.subheading(title)
	for _, item := range items {
		r.layout.paragraph(item)
	}
	return nil
}

// certificationLine formats "name — issuer, year", leaving out missing parts.
func certificationLine(c model.Certification) string {
	tail := joinNonEmpty(", ", c.Issuer, c.Year)
	if tail == "" {
		return c.Name
	}
	return c.Name + certSeparator + tail
}
