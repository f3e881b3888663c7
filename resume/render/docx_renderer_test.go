package render

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-site/resume/contract"
	"resume-site/resume/sections"
)

func TestExportDOCXProducesValidPackage(t *testing.T) {
	exporter := NewDOCXExporter()
	exporter.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }

	doc, err := exporter.Export(sampleResume())
	require.NoError(t, err)

	assert.Equal(t, contract.MimeDOCX, doc.ContentType)
	assert.Equal(t, "Jane-Doe-Resume.docx", doc.FileName)

	reader, err := zip.NewReader(bytes.NewReader(doc.Body), int64(len(doc.Body)))
	require.NoError(t, err)
	names := map[string]bool{}
	for _, file := range reader.File {
		names[file.Name] = true
		requireWellFormed(t, file.Name, readPart(t, doc.Body, file.Name))
	}
	for _, want := range []string{
		"[Content_Types].xml",
		"_rels/.rels",
		"word/document.xml",
		"word/styles.xml",
		"word/numbering.xml",
		"word/_rels/document.xml.rels",
		"docProps/core.xml",
		"docProps/app.xml",
	} {
		assert.True(t, names[want], want)
	}

	core := readPart(t, doc.Body, "docProps/core.xml")
	assertContains(t, core, "<dc:title>Jane Doe | Systems Administrator</dc:title>")
	assertContains(t, core, "2024-01-02T03:04:05Z")
}

func TestDocumentXMLFollowsSectionOrder(t *testing.T) {
	data := sampleResume()
	body, err := RenderDOCX(data)
	require.NoError(t, err)

	paragraphs := documentParagraphs(t, body)
	var headings []string
	for _, p := range paragraphs {
		if p.style == styleIDHeading2 || p.style == styleIDHeading3 {
			headings = append(headings, p.text)
		}
	}
	assert.Equal(t, sections.Titles(data), headings)

	require.GreaterOrEqual(t, len(paragraphs), 3)
	assert.Equal(t, styleIDTitle, paragraphs[0].style)
	assert.Equal(t, "Jane Doe", paragraphs[0].text)
	assert.Equal(t, "SYSTEMS ADMINISTRATOR", paragraphs[1].text)
	assert.Equal(t, "Pune, India | +91 98765 43210 | jane@example.com | linkedin.com/in/janedoe", paragraphs[2].text)
}

func TestDocumentXMLRunFormatting(t *testing.T) {
	body, err := RenderDOCX(sampleResume())
	require.NoError(t, err)
	documentXML := readPart(t, body, "word/document.xml")

	assertContains(t, documentXML, `<w:numId w:val="1"></w:numId>`)
	assertContains(t, documentXML, `<w:t xml:space="preserve">System Administrator | Acme Corp</w:t>`)
	assertContains(t, documentXML, `<w:i></w:i></w:rPr><w:t xml:space="preserve">Pune • 2018 - Present</w:t>`)
	assertContains(t, documentXML, `<w:br></w:br><w:t xml:space="preserve"> — Cisco, 2019</w:t>`)
	assertContains(t, documentXML, `<w:b></w:b></w:rPr><w:t xml:space="preserve">Operating Systems: </w:t>`)
	assertContains(t, documentXML, `<w:spacing w:before="200" w:after="80"></w:spacing>`)
	require.NoError(t, validateDocumentXML(documentXML))
}

func TestDocumentXMLOmitsMissingDetails(t *testing.T) {
	blocks, err := BuildBlocks(janeDoe())
	require.NoError(t, err)

	var texts []string
	for _, b := range blocks {
		texts = append(texts, b.Text())
	}
	idx := indexOfString(texts, sections.TitleEducation)
	require.NotEqual(t, -1, idx)
	assert.Equal(t, []string{"B.Sc.", "State University • 2010-2014", sections.TitleCertifications}, texts[idx+1:idx+4])
}

func TestBuildBlocksIsDeterministic(t *testing.T) {
	first, err := BuildBlocks(sampleResume())
	require.NoError(t, err)
	second, err := BuildBlocks(sampleResume())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestStylesXMLCarriesHeadingFormatting(t *testing.T) {
	content, err := stylesXML()
	require.NoError(t, err)
	styles := string(content)

	for _, id := range []string{styleIDTitle, styleIDHeading2, styleIDHeading3} {
		assertContains(t, styles, `w:styleId="`+id+`"`)
		style := StyleMap[id]
		assertContains(t, styles, `<w:color w:val="`+style.Color+`"></w:color>`)
	}
	assertContains(t, styles, `w:styleId="ListParagraph"`)
}

func TestValidateDocumentXMLRejectsNestedParagraphs(t *testing.T) {
	xmlText := `<w:document xmlns:w="` + wmlNamespace + `"><w:body><w:p><w:p></w:p></w:p></w:body></w:document>`
	err := validateDocumentXML(xmlText)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nested")
}

func TestValidateDocumentXMLRejectsUndeclaredPrefix(t *testing.T) {
	xmlText := `<w:document xmlns:w="` + wmlNamespace + `"><w:body><x:p></x:p></w:body></w:document>`
	err := validateDocumentXML(xmlText)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing root namespace")
}

func readPart(t *testing.T, docxBytes []byte, name string) string {
	t.Helper()
	reader, err := zip.NewReader(bytes.NewReader(docxBytes), int64(len(docxBytes)))
	require.NoError(t, err)
	for _, file := range reader.File {
		if normalizeZipName(file.Name) != name {
			continue
		}
		rc, err := file.Open()
		require.NoError(t, err)
		defer rc.Close()
		content, err := io.ReadAll(rc)
		require.NoError(t, err)
		return string(content)
	}
	t.Fatalf("part %s not found", name)
	return ""
}

func indexOfString(values []string, want string) int {
	for i, v := range values {
		if v == want {
			return i
		}
	}
	return -1
}

func assertContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected to contain %q", needle)
	}
}

func TestEncodeXMLPartDeclaresPrefixesOnRoot(t *testing.T) {
	root := wNode("document").add(wNode("body").add(wNode("p").add(wNode("r").add(newNode("w:t", "xml:space", "preserve").text("a < b")))))
	out, err := encodeXMLPart(root, wordPrefixes)
	require.NoError(t, err)

	text := string(out)
	assert.True(t, strings.HasPrefix(text, xmlHeader+"\n"))
	assertContains(t, text, `<w:document xmlns:r="`+relNamespace+`" xmlns:w="`+wmlNamespace+`">`)
	assertContains(t, text, `<w:t xml:space="preserve">a &lt; b</w:t>`)
	assert.Equal(t, 1, strings.Count(text, "xmlns:w="))
	require.NoError(t, validateDocumentXML(text))
}
