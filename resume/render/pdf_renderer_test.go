package render

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"time"
	"unicode"

	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-site/resume/contract"
)

func TestExportPDFProducesReadableDocument(t *testing.T) {
	exporter := NewPDFExporter(PDFOptions{})
	exporter.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }

	doc, err := exporter.Export(sampleResume())
	require.NoError(t, err)

	assert.Equal(t, contract.MimePDF, doc.ContentType)
	assert.Equal(t, "Jane-Doe-Resume.pdf", doc.FileName)
	require.True(t, bytes.HasPrefix(doc.Body, []byte("%PDF-")))

	reader, err := pdf.NewReader(bytes.NewReader(doc.Body), int64(len(doc.Body)))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, reader.NumPage(), 1)

	text := squash(plainText(t, reader))
	for _, want := range []string{"Jane Doe", "Professional Summary", "Network Operations", "Professional Interests", "CCNA"} {
		assert.Contains(t, text, squash(want))
	}
}

func TestExportPDFPaginatesLongContent(t *testing.T) {
	data := sampleResume()
	data.KeyResponsibilities[0].Items = longItems(40)

	body, err := RenderPDF(data, PDFOptions{PageSize: PageLetter})
	require.NoError(t, err)

	reader, err := pdf.NewReader(bytes.NewReader(body), int64(len(body)))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, reader.NumPage(), 2)
}

func TestFPDFCanvasWrapsWithinMargins(t *testing.T) {
	canvas, err := NewFPDFCanvas(PageA4, DocumentInfo{})
	require.NoError(t, err)
	width, height := canvas.PageSize()
	assert.InDelta(t, 595.28, width, 0.01)
	assert.InDelta(t, 841.89, height, 0.01)

	layout := newPDFLayout(canvas, DefaultMargin)
	text := strings.Repeat("Coordinated hardware refresh cycles — imaged laptops • retired servers ", 10)
	lines := layout.wrap(text, FontRegular, 11)

	require.Greater(t, len(lines), 1)
	for _, line := range lines {
		assert.LessOrEqual(t, canvas.Measure(line, FontRegular, 11), layout.state.MaxLineWidth())
	}
	assert.Equal(t, strings.Fields(text), strings.Fields(strings.Join(lines, " ")))
}

func TestFPDFCanvasMeasuresBoldWider(t *testing.T) {
	canvas, err := NewFPDFCanvas(PageA4, DocumentInfo{})
	require.NoError(t, err)

	regular := canvas.Measure("Professional Summary", FontRegular, 13)
	bold := canvas.Measure("Professional Summary", FontBold, 13)

	assert.Greater(t, regular, 0.0)
	assert.Greater(t, bold, regular)
	assert.InDelta(t, 2*canvas.Measure("Summary", FontRegular, 11), canvas.Measure("Summary", FontRegular, 22), 0.001)
}

func TestPDFTextIsIdempotent(t *testing.T) {
	first, err := RenderPDF(sampleResume(), PDFOptions{})
	require.NoError(t, err)
	second, err := RenderPDF(sampleResume(), PDFOptions{})
	require.NoError(t, err)

	firstReader, err := pdf.NewReader(bytes.NewReader(first), int64(len(first)))
	require.NoError(t, err)
	secondReader, err := pdf.NewReader(bytes.NewReader(second), int64(len(second)))
	require.NoError(t, err)

	assert.Equal(t, plainText(t, firstReader), plainText(t, secondReader))
}

type failingCanvas struct {
	*recordingCanvas
}

func (failingCanvas) Err() error { return errors.New("disk full") }

func TestRenderSurfacesCanvasError(t *testing.T) {
	_, err := renderPDFTo(failingCanvas{newRecordingCanvas()}, janeDoe(), DefaultMargin)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSerialize)
}

func TestParsePageSize(t *testing.T) {
	assert.Equal(t, PageLetter, ParsePageSize(" letter "))
	assert.Equal(t, PageA4, ParsePageSize("A4"))
	assert.Equal(t, PageA4, ParsePageSize(""))
}

func plainText(t *testing.T, reader *pdf.Reader) string {
	t.Helper()
	plain, err := reader.GetPlainText()
	require.NoError(t, err)
	var buf bytes.Buffer
	_, err = io.Copy(&buf, plain)
	require.NoError(t, err)
	return buf.String()
}

// squash drops whitespace so extraction spacing does not matter.
func squash(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func TestWinAnsiReplacesUnsupportedRunesWithQuestionMark(t *testing.T) {
	assert.Equal(t, "Jos\xe9 M\xfcller ??", winAnsi("José Müller 日本"))
	assert.Equal(t, "\x95 \x97", winAnsi("• —"))
	assert.NotContains(t, winAnsi("日本�"), "\x1a")

	canvas, err := NewFPDFCanvas(PageA4, DocumentInfo{})
	require.NoError(t, err)
	assert.InDelta(t, canvas.Measure("??", FontRegular, 11), canvas.Measure("日本", FontRegular, 11), 0.001)
}

func TestExportPDFKeepsUnsupportedNameReadable(t *testing.T) {
	data := sampleResume()
	data.Personal.Name = "José Müller 日本"

	body, err := RenderPDF(data, PDFOptions{})
	require.NoError(t, err)
	reader, err := pdf.NewReader(bytes.NewReader(body), int64(len(body)))
	require.NoError(t, err)

	text := plainText(t, reader)
	assert.NotContains(t, text, "\x1a")
	assert.Contains(t, squash(text), squash("Müller ??"))
}
