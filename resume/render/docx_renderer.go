package render

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"resume-site/resume/contract"
	"resume-site/resume/model"
)

// DOCXExporter writes résumé data as a WordprocessingML package.
type DOCXExporter struct {
	now func() time.Time
}

func NewDOCXExporter() *DOCXExporter {
	return &DOCXExporter{now: time.Now}
}

// Export renders data into a downloadable DOCX document.
func (e *DOCXExporter) Export(data model.ResumeData) (contract.Document, error) {
	blocks, err := BuildBlocks(data)
	if err != nil {
		return contract.Document{}, err
	}
	body, err := writeDocxPackage(blocks, DocumentInfo{
		Title:   documentTitle(data.Personal),
		Author:  data.Personal.Name,
		Subject: data.Personal.Designation,
		Created: e.now(),
	})
	if err != nil {
		return contract.Document{}, fmt.Errorf("%w: %v", ErrSerialize, err)
	}
	return contract.NewDocument(contract.FormatDOCX, data.Personal.Name, body), nil
}

// RenderDOCX renders data and returns the raw DOCX bytes.
func RenderDOCX(data model.ResumeData) ([]byte, error) {
	doc, err := NewDOCXExporter().Export(data)
	if err != nil {
		return nil, err
	}
	return doc.Body, nil
}

type packagePart struct {
	name    string
	content []byte
}

func writeDocxPackage(blocks []Block, info DocumentInfo) ([]byte, error) {
	document, err := documentXML(blocks)
	if err != nil {
		return nil, err
	}
	if err := validateDocumentXML(string(document)); err != nil {
		return nil, err
	}

	parts := []struct {
		name  string
		build func() ([]byte, error)
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", packageRelsXML},
		{"docProps/core.xml", func() ([]byte, error) { return corePropsXML(info) }},
		{"docProps/app.xml", appPropsXML},
		{"word/document.xml", func() ([]byte, error) { return document, nil }},
		{"word/styles.xml", stylesXML},
		{"word/numbering.xml", numberingXML},
		{"word/_rels/document.xml.rels", documentRelsXML},
	}

	modified := info.Created
	if modified.IsZero() {
		modified = time.Now()
	}

	var output bytes.Buffer
	writer := zip.NewWriter(&output)
	defer writer.Close()

	for _, part := range parts {
		content, err := part.build()
		if err != nil {
			return nil, fmt.Errorf("build %s: %w", part.name, err)
		}
		if err := writeZipFile(writer, packagePart{name: part.name, content: content}, modified); err != nil {
			return nil, fmt.Errorf("write %s: %w", part.name, err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, err
	}
	return output.Bytes(), nil
}

func writeZipFile(writer *zip.Writer, part packagePart, modified time.Time) error {
	header := zip.FileHeader{
		Name:     normalizeZipName(part.name),
		Method:   zip.Deflate,
		Modified: modified.UTC(),
	}
	dst, err := writer.CreateHeader(&header)
	if err != nil {
		return err
	}
	if _, err := dst.Write(part.content); err != nil {
		return err
	}
	return nil
}

func normalizeZipName(name string) string {
	return strings.ReplaceAll(name, "\\", "/")
}

var wordPrefixes = map[string]string{
	wmlNamespace: "w",
	relNamespace: "r",
}

func documentXML(blocks []Block) ([]byte, error) {
	body := wNode("body")
	for _, block := range blocks {
		body.add(paragraphNode(block))
	}
	// A4 portrait with one-inch margins.
	body.add(wNode("sectPr").add(
		wNode("pgSz", "w", "11906", "h", "16838"),
		wNode("pgMar", "top", "1440", "right", "1440", "bottom", "1440", "left", "1440", "header", "708", "footer", "708", "gutter", "0"),
	))
	return encodeXMLPart(wNode("document").add(body), wordPrefixes)
}

func paragraphNode(block Block) *xmlNode {
	pPr := wNode("pPr")
	if block.Style != StyleBody {
		pPr.add(wNode("pStyle", "val", block.Style.styleID()))
	}
	if block.Style == StyleBullet {
		pPr.add(wNode("numPr").add(
			wNode("ilvl", "val", "0"),
			wNode("numId", "val", strconv.Itoa(bulletNumID)),
		))
	}
	if block.SpacingBefore > 0 || block.SpacingAfter > 0 {
		spacing := wNode("spacing")
		if block.SpacingBefore > 0 {
			spacing.Attr = append(spacing.Attr, wAttr("before", strconv.Itoa(block.SpacingBefore)))
		}
		if block.SpacingAfter > 0 {
			spacing.Attr = append(spacing.Attr, wAttr("after", strconv.Itoa(block.SpacingAfter)))
		}
		pPr.add(spacing)
	}
	if block.Align == AlignCenter {
		pPr.add(wNode("jc", "val", "center"))
	}

	p := wNode("p")
	if len(pPr.Children) > 0 {
		p.add(pPr)
	}
	for _, run := range block.Runs {
		p.add(runNode(run))
	}
	return p
}

func runNode(run Run) *xmlNode {
	r := wNode("r")
	if run.Bold || run.Italic {
		rPr := wNode("rPr")
		if run.Bold {
			rPr.add(wNode("b"))
		}
		if run.Italic {
			rPr.add(wNode("i"))
		}
		r.add(rPr)
	}
	if run.Break {
		r.add(wNode("br"))
	}
	if run.Text != "" {
		r.add(newNode("w:t", "xml:space", "preserve").text(run.Text))
	}
	return r
}

const bulletNumID = 1

func stylesXML() ([]byte, error) {
	styles := wNode("styles")
	styles.add(wNode("docDefaults").add(
		wNode("rPrDefault").add(wNode("rPr").add(
			wNode("rFonts", "ascii", "Calibri", "hAnsi", "Calibri", "cs", "Calibri"),
			wNode("sz", "val", strconv.Itoa(BodySize)),
			wNode("szCs", "val", strconv.Itoa(BodySize)),
		)),
		wNode("pPrDefault").add(wNode("pPr").add(
			wNode("spacing", "after", "0", "line", "259", "lineRule", "auto"),
		)),
	))

	styles.add(styleNode(styleIDNormal, "Normal", "", true))
	styles.add(styleNode(styleIDTitle, "Title", styleIDNormal, false))
	styles.add(styleNode(styleIDHeading2, "heading 2", styleIDNormal, false))
	styles.add(styleNode(styleIDHeading3, "heading 3", styleIDNormal, false))

	list := styleNode(styleIDList, "List Paragraph", styleIDNormal, false)
	list.add(wNode("pPr").add(wNode("ind", "left", "720")))
	styles.add(list)

	return encodeXMLPart(styles, wordPrefixes)
}

func styleNode(id, name, basedOn string, isDefault bool) *xmlNode {
	style := wNode("style", "type", "paragraph", "styleId", id)
	if isDefault {
		style.Attr = append(style.Attr, wAttr("default", "1"))
	}
	style.add(wNode("name", "val", name))
	if basedOn != "" {
		style.add(wNode("basedOn", "val", basedOn), wNode("next", "val", styleIDNormal))
	}
	if strings.HasPrefix(id, "Heading") {
		style.add(wNode("qFormat"))
		style.add(wNode("pPr").add(wNode("keepNext")))
	}
	if rs, ok := StyleMap[id]; ok {
		style.add(runStyleNode(rs))
	}
	return style
}

func runStyleNode(rs RunStyle) *xmlNode {
	rPr := wNode("rPr")
	if rs.Bold {
		rPr.add(wNode("b"))
	}
	if rs.Italic {
		rPr.add(wNode("i"))
	}
	if rs.Color != "" {
		rPr.add(wNode("color", "val", rs.Color))
	}
	if rs.Size > 0 {
		rPr.add(wNode("sz", "val", strconv.Itoa(rs.Size)))
		rPr.add(wNode("szCs", "val", strconv.Itoa(rs.Size)))
	}
	return rPr
}

func numberingXML() ([]byte, error) {
	numbering := wNode("numbering").add(
		wNode("abstractNum", "abstractNumId", "0").add(
			wNode("multiLevelType", "val", "singleLevel"),
			wNode("lvl", "ilvl", "0").add(
				wNode("start", "val", "1"),
				wNode("numFmt", "val", "bullet"),
				wNode("lvlText", "val", bulletGlyph),
				wNode("lvlJc", "val", "left"),
				wNode("pPr").add(wNode("ind", "left", "720", "hanging", "360")),
			),
		),
		wNode("num", "numId", strconv.Itoa(bulletNumID)).add(
			wNode("abstractNumId", "val", "0"),
		),
	)
	return encodeXMLPart(numbering, wordPrefixes)
}

const (
	relTypeOfficeDocument = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	relTypeCoreProps      = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"
	relTypeExtendedProps  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/extended-properties"
	relTypeStyles         = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles"
	relTypeNumbering      = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/numbering"
)

func contentTypesXML() ([]byte, error) {
	types := newNode("Types", "xmlns", "http://schemas.openxmlformats.org/package/2006/content-types").add(
		newNode("Default", "Extension", "rels", "ContentType", "application/vnd.openxmlformats-package.relationships+xml"),
		newNode("Default", "Extension", "xml", "ContentType", "application/xml"),
		newNode("Override", "PartName", "/word/document.xml", "ContentType", "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"),
		newNode("Override", "PartName", "/word/styles.xml", "ContentType", "application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"),
		newNode("Override", "PartName", "/word/numbering.xml", "ContentType", "application/vnd.openxmlformats-officedocument.wordprocessingml.numbering+xml"),
		newNode("Override", "PartName", "/docProps/core.xml", "ContentType", "application/vnd.openxmlformats-package.core-properties+xml"),
		newNode("Override", "PartName", "/docProps/app.xml", "ContentType", "application/vnd.openxmlformats-officedocument.extended-properties+xml"),
	)
	return encodeXMLPart(types, nil)
}

func relationships(targets ...[2]string) *xmlNode {
	root := newNode("Relationships", "xmlns", "http://schemas.openxmlformats.org/package/2006/relationships")
	for i, target := range targets {
		root.add(newNode("Relationship", "Id", "rId"+strconv.Itoa(i+1), "Type", target[0], "Target", target[1]))
	}
	return root
}

func packageRelsXML() ([]byte, error) {
	return encodeXMLPart(relationships(
		[2]string{relTypeOfficeDocument, "word/document.xml"},
		[2]string{relTypeCoreProps, "docProps/core.xml"},
		[2]string{relTypeExtendedProps, "docProps/app.xml"},
	), nil)
}

func documentRelsXML() ([]byte, error) {
	return encodeXMLPart(relationships(
		[2]string{relTypeStyles, "styles.xml"},
		[2]string{relTypeNumbering, "numbering.xml"},
	), nil)
}

func corePropsXML(info DocumentInfo) ([]byte, error) {
	created := info.Created
	if created.IsZero() {
		created = time.Now()
	}
	stamp := created.UTC().Format(time.RFC3339)
	core := newNode("cp:coreProperties",
		"xmlns:cp", "http://schemas.openxmlformats.org/package/2006/metadata/core-properties",
		"xmlns:dc", "http://purl.org/dc/elements/1.1/",
		"xmlns:dcterms", "http://purl.org/dc/terms/",
		"xmlns:xsi", "http://www.w3.org/2001/XMLSchema-instance",
	).add(
		newNode("dc:title").text(info.Title),
		newNode("dc:subject").text(info.Subject),
		newNode("dc:creator").text(info.Author),
		newNode("cp:lastModifiedBy").text(creator),
		newNode("dcterms:created", "xsi:type", "dcterms:W3CDTF").text(stamp),
		newNode("dcterms:modified", "xsi:type", "dcterms:W3CDTF").text(stamp),
	)
	return encodeXMLPart(core, nil)
}

func appPropsXML() ([]byte, error) {
	app := newNode("Properties", "xmlns", "http://schemas.openxmlformats.org/officeDocument/2006/extended-properties").add(
		newNode("Application").text(creator),
	)
	return encodeXMLPart(app, nil)
}
