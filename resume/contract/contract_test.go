package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttachmentName(t *testing.T) {
	cases := map[string]string{
		"Deepak Chaudhari":      "Deepak-Chaudhari-Resume.pdf",
		"  Jane   Doe ":         "Jane-Doe-Resume.pdf",
		"Mr. Deepak Chaudhari":  "Mr-Deepak-Chaudhari-Resume.pdf",
		"Anne-Marie O'Neil":     "Anne-Marie-O-Neil-Resume.pdf",
		"":                      "Resume.pdf",
	}
	for in, want := range cases {
		assert.Equal(t, want, AttachmentName(in, "pdf"), in)
	}
}

func TestNewDocumentSetsContract(t *testing.T) {
	doc := NewDocument(FormatDOCX, "Jane Doe", []byte("x"))
	assert.Equal(t, "Jane-Doe-Resume.docx", doc.FileName)
	assert.Equal(t, MimeDOCX, doc.ContentType)
	assert.Equal(t, `attachment; filename="Jane-Doe-Resume.docx"`, doc.ContentDisposition())
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" PDF ")
	require.NoError(t, err)
	assert.Equal(t, FormatPDF, f)

	f, err = ParseFormat("word")
	require.NoError(t, err)
	assert.Equal(t, FormatDOCX, f)

	_, err = ParseFormat("rtf")
	assert.Error(t, err)
}

func TestContentDispositionFoldsNonASCIINames(t *testing.T) {
	doc := NewDocument(FormatPDF, "José Müller 日本", []byte("x"))
	assert.Equal(t, "José-Müller-日本-Resume.pdf", doc.FileName)
	assert.Equal(t,
		`attachment; filename="Jose-Muller-Resume.pdf"; filename*=UTF-8''Jos%C3%A9-M%C3%BCller-%E6%97%A5%E6%9C%AC-Resume.pdf`,
		doc.ContentDisposition())

	doc = NewDocument(FormatDOCX, "山田 太郎", []byte("x"))
	assert.Contains(t, doc.ContentDisposition(), `filename="Resume.docx"; filename*=UTF-8''`)
}
