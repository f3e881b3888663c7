package service

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-site/internal/shared/metrics"
	"resume-site/resume/contract"
	"resume-site/resume/model"
	"resume-site/resume/render"
)

type staticProvider struct {
	data  model.ResumeData
	err   error
	calls int
}

func (p *staticProvider) Load(ctx context.Context) (model.ResumeData, error) {
	p.calls++
	return p.data, p.err
}

type failingExporter struct{}

func (failingExporter) Export(model.ResumeData) (contract.Document, error) {
	return contract.Document{}, render.ErrSerialize
}

func sampleData() model.ResumeData {
	return model.ResumeData{
		Personal: model.Personal{
			Name:        "Jane Doe",
			Designation: "Systems Administrator",
			Location:    "Pune, India",
			Phone:       "+91 90000 00000",
			Email:       "jane@example.com",
			LinkedIn:    "linkedin.com/in/janedoe",
		},
		Summary: "Experienced administrator.",
		Education: []model.Education{
			{Qualification: "B.Sc.", Institution: "State University", Period: "2010-2014"},
		},
	}
}

func TestExportPDF(t *testing.T) {
	provider := &staticProvider{data: sampleData()}
	svc := New(provider, render.PDFOptions{}, render.HTMLOptions{})

	doc, err := svc.ExportPDF(context.Background())
	require.NoError(t, err)
	assert.Equal(t, contract.MimePDF, doc.ContentType)
	assert.True(t, bytes.HasPrefix(doc.Body, []byte("%PDF-")))
	assert.Equal(t, 1, provider.calls)
}

func TestExportDOCX(t *testing.T) {
	svc := New(&staticProvider{data: sampleData()}, render.PDFOptions{}, render.HTMLOptions{})

	doc, err := svc.ExportDOCX(context.Background())
	require.NoError(t, err)
	assert.Equal(t, contract.MimeDOCX, doc.ContentType)
	assert.True(t, strings.HasSuffix(doc.FileName, ".docx"))

	zr, err := zip.NewReader(bytes.NewReader(doc.Body), int64(len(doc.Body)))
	require.NoError(t, err)
	names := []string{}
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.Contains(t, names, "word/document.xml")
}

func TestRenderHTML(t *testing.T) {
	svc := New(&staticProvider{data: sampleData()}, render.PDFOptions{}, render.HTMLOptions{})

	doc, err := svc.RenderHTML(context.Background())
	require.NoError(t, err)
	assert.Contains(t, string(doc.Body), "Jane Doe")
	assert.Equal(t, contract.MimeHTML, doc.ContentType)
}

func TestExportProviderFailure(t *testing.T) {
	svc := New(&staticProvider{err: errors.New("db down")}, render.PDFOptions{}, render.HTMLOptions{})

	doc, err := svc.ExportPDF(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db down")
	assert.Empty(t, doc.Body)
	assert.Contains(t, metrics.Render(), `resume_export_failed_total{format="pdf"}`)
}

func TestExportSurfacesExporterError(t *testing.T) {
	svc := &Service{Provider: &staticProvider{data: sampleData()}, DOCX: failingExporter{}}

	_, err := svc.ExportDOCX(context.Background())
	require.ErrorIs(t, err, render.ErrSerialize)
}

func TestExportMissingExporter(t *testing.T) {
	svc := &Service{Provider: &staticProvider{data: sampleData()}}

	_, err := svc.Export(context.Background(), contract.FormatHTML)
	require.ErrorIs(t, err, ErrNoExporter)
}

func TestExportCanceledContext(t *testing.T) {
	provider := &staticProvider{data: sampleData()}
	svc := New(provider, render.PDFOptions{}, render.HTMLOptions{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.ExportPDF(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
