package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/ledongthuc/pdf"

	"resume-site/internal/shared/storage/object"
	"resume-site/resume/contract"
)

// ErrUnsupported is returned for payloads that are neither PDF nor DOCX.
var ErrUnsupported = errors.New("unsupported mime type")

// Result is the plain text of a document. Pages is zero for DOCX, which has
// no fixed pagination.
type Result struct {
	Text  string
	Pages int
}

// FromStore reads storageKey and extracts its text. The format comes from
// the key extension, falling back to sniffing the payload.
func FromStore(ctx context.Context, store object.ObjectStore, storageKey string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	body, err := store.Open(ctx, storageKey)
	if err != nil {
		return Result{}, fmt.Errorf("extract text key=%s: %w", storageKey, err)
	}
	defer body.Close()

	raw, err := io.ReadAll(body)
	if err != nil {
		return Result{}, fmt.Errorf("extract text key=%s: read: %w", storageKey, err)
	}

	res, err := FromBytes(ctx, raw, mimeForName(storageKey), path.Base(storageKey))
	if err != nil {
		return Result{}, fmt.Errorf("extract text key=%s: %w", storageKey, err)
	}
	return res, nil
}

// FromBytes extracts text from an in-memory payload.
func FromBytes(ctx context.Context, data []byte, mimeType string, fileName string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	normalized := normalizeMimeType(mimeType, fileName, data)
	switch normalized {
	case contract.MimePDF:
		return extractPDF(data)
	case contract.MimeDOCX:
		text, err := extractDOCX(data)
		return Result{Text: text}, err
	default:
		return Result{}, fmt.Errorf("%w: %s", ErrUnsupported, normalized)
	}
}

func mimeForName(name string) string {
	switch strings.ToLower(path.Ext(name)) {
	case ".pdf":
		return contract.MimePDF
	case ".docx":
		return contract.MimeDOCX
	default:
		return ""
	}
}

func extractPDF(data []byte) (Result, error) {
	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return Result{}, err
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return Result{}, err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return Result{}, err
	}
	return Result{Text: buf.String(), Pages: pdfReader.NumPage()}, nil
}

func extractDOCX(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty docx data")
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var docFile *zip.File
	for _, f := range zr.File {
		if strings.ReplaceAll(f.Name, "\\", "/") == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return "", errors.New("document.xml file not found")
	}

	rc, err := docFile.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return "", err
	}
	return stripDocxXML(string(raw)), nil
}

// stripDocxXML keeps character data and ends a line at every paragraph or
// break.
func stripDocxXML(raw string) string {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	var buf strings.Builder
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return raw
		}
		switch t := tok.(type) {
		case xml.CharData:
			buf.WriteString(string(t))
		case xml.EndElement:
			if (t.Name.Local == "p" || t.Name.Local == "br") && buf.Len() > 0 {
				buf.WriteString("\n")
			}
		}
	}
	return strings.TrimSpace(buf.String())
}

func normalizeMimeType(mimeType string, fileName string, data []byte) string {
	clean := strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))
	if clean == "" && bytes.HasPrefix(data, []byte("%PDF-")) {
		return contract.MimePDF
	}
	if clean != "" && clean != "application/zip" {
		return clean
	}
	if isDOCXZip(data) {
		return contract.MimeDOCX
	}
	if clean == "" {
		clean = mimeForName(fileName)
	}
	if clean == "" {
		return "application/octet-stream"
	}
	return clean
}

func isDOCXZip(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return false
	}
	for _, f := range zr.File {
		if strings.ReplaceAll(f.Name, "\\", "/") == "word/document.xml" {
			return true
		}
	}
	return false
}
