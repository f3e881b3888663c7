package exports

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"resume-site/internal/shared/server/middleware"
	"resume-site/internal/shared/server/respond"
	"resume-site/internal/shared/telemetry"
	"resume-site/resume/contract"
)

// Exporter renders one format of the résumé.
type Exporter interface {
	Export(ctx context.Context, format contract.Format) (contract.Document, error)
}

// Handler serves the résumé page and its downloads.
type Handler struct {
	Svc Exporter
}

func NewHandler(svc Exporter) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the download routes under both the short and the
// /api prefixed paths.
func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/resume/pdf", h.download(contract.FormatPDF))
	r.GET("/resume/docx", h.download(contract.FormatDOCX))
	r.GET("/api/resume/pdf", h.download(contract.FormatPDF))
	r.GET("/api/resume/docx", h.download(contract.FormatDOCX))
}

// RegisterPage attaches the HTML résumé page at /.
func (h *Handler) RegisterPage(r gin.IRoutes) {
	r.GET("/", h.page)
}

func (h *Handler) download(format contract.Format) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ExportFormatKey, string(format))
		doc, ok := h.render(c, format)
		if !ok {
			return
		}
		c.Header("Content-Disposition", doc.ContentDisposition())
		c.Header("Content-Length", strconv.Itoa(len(doc.Body)))
		c.Header("Cache-Control", "no-store")
		c.Data(http.StatusOK, doc.ContentType, doc.Body)
	}
}

func (h *Handler) page(c *gin.Context) {
	c.Set(middleware.ExportFormatKey, string(contract.FormatHTML))
	doc, ok := h.render(c, contract.FormatHTML)
	if !ok {
		return
	}
	c.Data(http.StatusOK, doc.ContentType, doc.Body)
}

func (h *Handler) render(c *gin.Context, format contract.Format) (contract.Document, bool) {
	doc, err := h.Svc.Export(c.Request.Context(), format)
	if err != nil {
		telemetry.Error("export.request_failed", map[string]any{
			"request_id": middleware.RequestIDFromContext(c),
			"format":     string(format),
			"error":      err,
		})
		respond.Error(c, http.StatusInternalServerError, "export_failed", "Failed to generate "+formatLabel(format), nil)
		return contract.Document{}, false
	}
	return doc, true
}

func formatLabel(format contract.Format) string {
	switch format {
	case contract.FormatPDF:
		return "PDF"
	case contract.FormatDOCX:
		return "Word document"
	default:
		return "page"
	}
}
