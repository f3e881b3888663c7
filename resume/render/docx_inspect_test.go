package render

import (
	"encoding/xml"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type docxParagraph struct {
	style string
	text  string
}

// requireWellFormed fails unless every token of part decodes.
func requireWellFormed(t *testing.T, name, part string) {
	t.Helper()
	dec := xml.NewDecoder(strings.NewReader(part))
	for {
		_, err := dec.Token()
		if err == io.EOF {
			return
		}
		require.NoError(t, err, name)
	}
}

// documentParagraphs lists the body paragraphs of a DOCX with their style
// and the concatenated text of their w:t elements.
func documentParagraphs(t *testing.T, docxBytes []byte) []docxParagraph {
	t.Helper()
	dec := xml.NewDecoder(strings.NewReader(readPart(t, docxBytes, "word/document.xml")))

	var (
		out    []docxParagraph
		cur    *docxParagraph
		inText bool
		text   strings.Builder
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)

		switch tk := tok.(type) {
		case xml.StartElement:
			if tk.Name.Space != wmlNamespace {
				continue
			}
			switch tk.Name.Local {
			case "p":
				cur = &docxParagraph{}
				text.Reset()
			case "pStyle":
				if cur != nil {
					for _, attr := range tk.Attr {
						if attr.Name.Local == "val" {
							cur.style = attr.Value
						}
					}
				}
			case "t":
				inText = true
			}
		case xml.CharData:
			if inText {
				text.Write(tk)
			}
		case xml.EndElement:
			if tk.Name.Space != wmlNamespace {
				continue
			}
			switch tk.Name.Local {
			case "t":
				inText = false
			case "p":
				if cur != nil {
					cur.text = text.String()
					out = append(out, *cur)
					cur = nil
				}
			}
		}
	}
	return out
}
