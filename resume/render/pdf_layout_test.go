package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-site/resume/model"
	"resume-site/resume/sections"
)

func TestWrapKeepsLinesWithinWidthAndWordsInOrder(t *testing.T) {
	canvas := newRecordingCanvas()
	layout := newPDFLayout(canvas, DefaultMargin)
	text := strings.Repeat("configured  firewall\trules for every branch office ", 12)

	lines := layout.wrap(text, FontRegular, 11)

	require.Greater(t, len(lines), 1)
	for _, line := range lines {
		assert.LessOrEqual(t, canvas.Measure(line, FontRegular, 11), layout.state.MaxLineWidth(), line)
	}
	assert.Equal(t, strings.Fields(text), strings.Fields(strings.Join(lines, " ")))
}

func TestWrapEmitsOverlongWordAlone(t *testing.T) {
	canvas := newRecordingCanvas()
	layout := newPDFLayout(canvas, DefaultMargin)
	long := strings.Repeat("x", 120)

	lines := layout.wrap("before "+long+" after", FontRegular, 11)

	assert.Equal(t, []string{"before", long, "after"}, lines)
}

func TestWrapEmptyText(t *testing.T) {
	layout := newPDFLayout(newRecordingCanvas(), DefaultMargin)
	assert.Empty(t, layout.wrap("   ", FontBold, 20))
}

func TestEnsureSpaceStartsNewPage(t *testing.T) {
	canvas := newRecordingCanvas()
	layout := newPDFLayout(canvas, DefaultMargin)
	layout.drawWrapped("first line", PDFStyles.Paragraph)
	layout.state.CursorY = DefaultMargin + 10

	layout.ensureSpace(15)

	assert.Equal(t, 2, layout.state.Page)
	assert.Equal(t, 2, canvas.pages)
	assert.InDelta(t, canvas.height-DefaultMargin, layout.state.CursorY, 0.001)
}

func TestEnsureSpaceLeavesRoomAlone(t *testing.T) {
	canvas := newRecordingCanvas()
	layout := newPDFLayout(canvas, DefaultMargin)
	layout.drawWrapped("first line", PDFStyles.Paragraph)
	before := layout.state.CursorY

	layout.ensureSpace(15)

	assert.Equal(t, 1, layout.state.Page)
	assert.Equal(t, before, layout.state.CursorY)
}

func TestEnsureSpaceNeverAbandonsEmptyPage(t *testing.T) {
	canvas := newRecordingCanvas()
	layout := newPDFLayout(canvas, DefaultMargin)
	layout.state.CursorY = DefaultMargin

	layout.ensureSpace(100)

	assert.Equal(t, 1, canvas.pages)
}

func TestDrawLinesAdvancesByLineHeight(t *testing.T) {
	canvas := newRecordingCanvas()
	layout := newPDFLayout(canvas, DefaultMargin)
	top := layout.state.CursorY

	layout.drawLines([]string{"one", "two"}, PDFStyles.Paragraph, bulletIndent)

	require.Len(t, canvas.draws, 2)
	assert.Equal(t, top, canvas.draws[0].Y)
	assert.InDelta(t, top-15, canvas.draws[1].Y, 0.001)
	assert.Equal(t, float64(DefaultMargin+bulletIndent), canvas.draws[0].X)
	assert.InDelta(t, top-30, layout.state.CursorY, 0.001)
}

func TestRenderNeverDrawsBelowBottomMargin(t *testing.T) {
	data := sampleResume()
	data.KeyResponsibilities = append(data.KeyResponsibilities, model.CategoryList{
		Category: "Service Desk",
		Items:    longItems(40),
	})
	canvas := newRecordingCanvas()

	state, err := renderPDFTo(canvas, data, DefaultMargin)
	require.NoError(t, err)

	require.Greater(t, state.Page, 1)
	top := canvas.height - DefaultMargin
	for _, d := range canvas.draws {
		assert.GreaterOrEqual(t, d.Y, float64(DefaultMargin), d.Text)
		assert.LessOrEqual(t, d.Y, top, d.Text)
		assert.LessOrEqual(t, canvas.Measure(d.Text, d.Style.Font, d.Style.Size), state.MaxLineWidth(), d.Text)
	}
}

func TestLongResponsibilityGroupBreaksPageWithoutLosingItems(t *testing.T) {
	items := longItems(40)
	data := model.ResumeData{
		Personal:            model.Personal{Name: "Jane Doe"},
		KeyResponsibilities: []model.CategoryList{{Category: "Service Desk", Items: items}},
	}
	canvas := newRecordingCanvas()

	state, err := renderPDFTo(canvas, data, DefaultMargin)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, state.Page, 2)

	var bulletText []string
	bullets := 0
	pages := map[int]bool{}
	for _, d := range canvas.draws {
		switch d.X {
		case DefaultMargin + bulletIndent:
			bulletText = append(bulletText, d.Text)
			pages[d.Page] = true
		case DefaultMargin:
			if d.Text == bulletGlyph {
				bullets++
			}
		}
	}
	assert.Equal(t, len(items), bullets)
	assert.Equal(t, strings.Fields(strings.Join(items, " ")), strings.Fields(strings.Join(bulletText, " ")))
	assert.GreaterOrEqual(t, len(pages), 2)
}

func TestBulletItemIsKeptOnOnePage(t *testing.T) {
	data := model.ResumeData{
		Personal:            model.Personal{Name: "Jane Doe"},
		KeyResponsibilities: []model.CategoryList{{Category: "Service Desk", Items: longItems(40)}},
	}
	canvas := newRecordingCanvas()
	_, err := renderPDFTo(canvas, data, DefaultMargin)
	require.NoError(t, err)

	page := 0
	for _, d := range canvas.draws {
		if d.Text == bulletGlyph {
			page = d.Page
			continue
		}
		if d.X == DefaultMargin+bulletIndent {
			assert.Equal(t, page, d.Page, d.Text)
		}
	}
}

func TestJaneDoeScenario(t *testing.T) {
	canvas := newRecordingCanvas()
	_, err := renderPDFTo(canvas, janeDoe(), DefaultMargin)
	require.NoError(t, err)

	require.NotEmpty(t, canvas.draws)
	first := canvas.draws[0]
	assert.Equal(t, "Jane Doe", first.Text)
	assert.Equal(t, FontBold, first.Style.Font)
	assert.Equal(t, 20.0, first.Style.Size)

	summary := canvas.indexOf(sections.TitleSummary)
	require.NotEqual(t, -1, summary)
	assert.Equal(t, "Experienced administrator.", canvas.draws[summary+1].Text)

	education := canvas.indexOf(sections.TitleEducation)
	require.NotEqual(t, -1, education)
	qualification := canvas.draws[education+1]
	assert.Equal(t, "B.Sc.", qualification.Text)
	assert.Equal(t, FontBold, qualification.Style.Font)
	meta := canvas.draws[education+2]
	assert.Equal(t, "State University • 2010-2014", meta.Text)
	assert.Equal(t, ColorMuted, meta.Style.Color)
	assert.Equal(t, sections.TitleCertifications, canvas.draws[education+3].Text)
}

func TestSubheadingsFollowSectionOrder(t *testing.T) {
	data := sampleResume()
	canvas := newRecordingCanvas()
	_, err := renderPDFTo(canvas, data, DefaultMargin)
	require.NoError(t, err)

	var headings []string
	for _, d := range canvas.draws {
		if d.Style == PDFStyles.Subheading {
			headings = append(headings, d.Text)
		}
	}
	assert.Equal(t, sections.Titles(data), headings)
}

func TestHeaderLines(t *testing.T) {
	canvas := newRecordingCanvas()
	_, err := renderPDFTo(canvas, sampleResume(), DefaultMargin)
	require.NoError(t, err)

	texts := canvas.texts()
	require.GreaterOrEqual(t, len(texts), 3)
	assert.Equal(t, "SYSTEMS ADMINISTRATOR", texts[1])
	assert.Equal(t, "Pune, India • +91 98765 43210 • jane@example.com • linkedin.com/in/janedoe", texts[2])
}

func TestJoinNonEmpty(t *testing.T) {
	assert.Equal(t, "a • c", joinNonEmpty(metaSeparator, "a", " ", "c"))
	assert.Equal(t, "", joinNonEmpty(metaSeparator))
}

func TestCertificationLine(t *testing.T) {
	assert.Equal(t, "CCNA — Cisco, 2019", certificationLine(model.Certification{Name: "CCNA", Issuer: "Cisco", Year: "2019"}))
	assert.Equal(t, "CCNA", certificationLine(model.Certification{Name: "CCNA"}))
}
