package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"resume-site/resume/contract"
	"resume-site/resume/model"
	"resume-site/resume/sections"
)

//go:embed templates/resume.html.tmpl
var templateFS embed.FS

var htmlTemplates = template.Must(template.New("resume").Funcs(template.FuncMap{
	"telHref":     telHref,
	"profileHref": profileHref,
	"joinTitle":   func(parts ...string) string { return joinNonEmpty(titleSeparator, parts...) },
	"joinMeta":    func(parts ...string) string { return joinNonEmpty(metaSeparator, parts...) },
	"join":        func(items []string) string { return strings.Join(items, ", ") },
	"certTail":    func(c model.Certification) string { return joinNonEmpty(metaSeparator, c.Issuer, c.Year) },
}).ParseFS(templateFS, "templates/resume.html.tmpl"))

// HTMLOptions sets the download links shown in the page header.
type HTMLOptions struct {
	PDFHref  string
	DOCXHref string
}

// HTMLExporter renders the résumé as a single web page.
type HTMLExporter struct {
	opts HTMLOptions
}

func NewHTMLExporter(opts HTMLOptions) *HTMLExporter {
	if opts.PDFHref == "" {
		opts.PDFHref = "/resume/pdf"
	}
	if opts.DOCXHref == "" {
		opts.DOCXHref = "/resume/docx"
	}
	return &HTMLExporter{opts: opts}
}

// Export renders data into an HTML page document.
func (e *HTMLExporter) Export(data model.ResumeData) (contract.Document, error) {
	r := &htmlSectionRenderer{opts: e.opts}
	if err := sections.Render(data, r); err != nil {
		return contract.Document{}, err
	}

	page := struct {
		Title       string
		Description string
		Sections    []template.HTML
	}{
		Title:       documentTitle(data.Personal),
		Description: pageDescription(data.Personal),
		Sections:    r.sections,
	}
	var buf bytes.Buffer
	if err := htmlTemplates.ExecuteTemplate(&buf, "page", page); err != nil {
		return contract.Document{}, fmt.Errorf("%w: %v", ErrSerialize, err)
	}
	return contract.NewDocument(contract.FormatHTML, data.Personal.Name, buf.Bytes()), nil
}

func pageDescription(p model.Personal) string {
	if p.Name == "" {
		return ""
	}
	desc := "Resume of " + p.Name
	if p.Designation != "" {
		desc += ", " + p.Designation
	}
	if p.Location != "" {
		desc += " based in " + p.Location
	}
	return desc + "."
}

// telHref keeps only the characters a dialer understands.
func telHref(phone string) template.URL {
	var sb strings.Builder
	for _, r := range phone {
		if (r >= '0' && r <= '9') || r == '+' {
			sb.WriteRune(r)
		}
	}
	return template.URL("tel:" + sb.String())
}

func profileHref(handle string) string {
	handle = strings.TrimPrefix(strings.TrimPrefix(handle, "https://"), "http://")
	return "https://" + handle
}

// htmlSectionRenderer renders each section into its own fragment.
type htmlSectionRenderer struct {
	opts     HTMLOptions
	sections []template.HTML
}

func (r *htmlSectionRenderer) execute(name string, data any) error {
	var buf bytes.Buffer
	if err := htmlTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return err
	}
	r.sections = append(r.sections, template.HTML(buf.String()))
	return nil
}

func (r *htmlSectionRenderer) Header(p model.Personal) error {
	return r.execute("header", struct {
		Personal model.Personal
		PDFHref  string
		DOCXHref string
	}{p, r.opts.PDFHref, r.opts.DOCXHref})
}

func (r *htmlSectionRenderer) Summary(title, text string) error {
	return r.execute("summary", struct{ Title, Text string }{title, text})
}

func (r *htmlSectionRenderer) list(title string, items []string) error {
	return r.execute("list", struct {
		Title string
		Items []string
	}{title, items})
}

func (r *htmlSectionRenderer) Responsibility(group model.CategoryList) error {
	return r.list(group.Category, group.Items)
}

func (r *htmlSectionRenderer) Experience(title string, roles []model.Experience) error {
	return r.execute("experience", struct {
		Title string
		Roles []model.Experience
	}{title, roles})
}

func (r *htmlSectionRenderer) Competencies(title string, items []string) error {
	return r.list(title, items)
}

func (r *htmlSectionRenderer) Proficiencies(title string, groups []model.CategoryList) error {
	return r.execute("proficiencies", struct {
		Title  string
		Groups []model.CategoryList
	}{title, groups})
}

func (r *htmlSectionRenderer) Education(title string, items []model.Education) error {
	return r.execute("education", struct {
		Title     string
		Education []model.Education
	}{title, items})
}

func (r *htmlSectionRenderer) Certifications(title string, items []model.Certification) error {
	return r.execute("certifications", struct {
		Title          string
		Certifications []model.Certification
	}{title, items})
}

func (r *htmlSectionRenderer) Achievements(title string, items []model.Achievement) error {
	return r.execute("achievements", struct {
		Title        string
		Achievements []model.Achievement
	}{title, items})
}

func (r *htmlSectionRenderer) Interests(title string, items []string) error {
	return r.list(title, items)
}
