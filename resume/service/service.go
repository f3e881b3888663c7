package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"resume-site/internal/shared/metrics"
	"resume-site/internal/shared/telemetry"
	"resume-site/resume/contract"
	"resume-site/resume/model"
	"resume-site/resume/render"
)

// Provider supplies the résumé data for one request.
type Provider interface {
	Load(ctx context.Context) (model.ResumeData, error)
}

// Exporter renders résumé data into one document format.
type Exporter interface {
	Export(data model.ResumeData) (contract.Document, error)
}

// ErrNoExporter is returned when a format has no exporter configured.
var ErrNoExporter = errors.New("no exporter configured")

// Service loads the résumé and runs one exporter per call.
type Service struct {
	Provider Provider
	PDF      Exporter
	DOCX     Exporter
	HTML     Exporter
}

// ExportPDF renders the résumé as a PDF.
func (s *Service) ExportPDF(ctx context.Context) (contract.Document, error) {
	return s.Export(ctx, contract.FormatPDF)
}

// ExportDOCX renders the résumé as a Word document.
func (s *Service) ExportDOCX(ctx context.Context) (contract.Document, error) {
	return s.Export(ctx, contract.FormatDOCX)
}

// RenderHTML renders the résumé page.
func (s *Service) RenderHTML(ctx context.Context) (contract.Document, error) {
	return s.Export(ctx, contract.FormatHTML)
}

// Export loads the data once and renders it in format. No partial document
// is returned on failure.
func (s *Service) Export(ctx context.Context, format contract.Format) (contract.Document, error) {
	start := time.Now()
	metrics.IncExport(string(format))

	doc, err := s.export(ctx, format)
	metrics.ObserveExportDurationMs(metrics.SinceMillis(start))
	if err != nil {
		metrics.IncExportFailed(string(format))
		telemetry.Error("export.failed", map[string]any{
			"format": string(format),
			"error":  err,
		})
		return contract.Document{}, err
	}
	return doc, nil
}

func (s *Service) export(ctx context.Context, format contract.Format) (contract.Document, error) {
	exporter := s.exporterFor(format)
	if exporter == nil {
		return contract.Document{}, fmt.Errorf("export %s: %w", format, ErrNoExporter)
	}
	if s.Provider == nil {
		return contract.Document{}, fmt.Errorf("export %s: no data provider", format)
	}

	data, err := s.Provider.Load(ctx)
	if err != nil {
		return contract.Document{}, fmt.Errorf("export %s: load data: %w", format, err)
	}
	if err := ctx.Err(); err != nil {
		return contract.Document{}, err
	}

	doc, err := exporter.Export(data)
	if err != nil {
		return contract.Document{}, fmt.Errorf("export %s: %w", format, err)
	}
	return doc, nil
}

func (s *Service) exporterFor(format contract.Format) Exporter {
	var exporter Exporter
	switch format {
	case contract.FormatPDF:
		exporter = s.PDF
	case contract.FormatDOCX:
		exporter = s.DOCX
	case contract.FormatHTML:
		exporter = s.HTML
	}
	return exporter
}

// New wires the standard PDF, DOCX and HTML exporters to provider.
func New(provider Provider, pdfOpts render.PDFOptions, htmlOpts render.HTMLOptions) *Service {
	return &Service{
		Provider: provider,
		PDF:      render.NewPDFExporter(pdfOpts),
		DOCX:     render.NewDOCXExporter(),
		HTML:     render.NewHTMLExporter(htmlOpts),
	}
}
