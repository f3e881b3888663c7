package render

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strings"
)

const (
	wmlNamespace    = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	relNamespace    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	xmlNamespaceURI = "http://www.w3.org/XML/1998/namespace"
	xmlHeader       = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`
)

type xmlNode struct {
	Name     xml.Name
	Attr     []xml.Attr
	Children []*xmlNode
	Text     string
	IsText   bool
}

// newNode builds an element with literal (already prefixed) names. attrs are
// name/value pairs.
func newNode(name string, attrs ...string) *xmlNode {
	node := &xmlNode{Name: xml.Name{Local: name}}
	for i := 0; i+1 < len(attrs); i += 2 {
		node.Attr = append(node.Attr, xml.Attr{Name: xml.Name{Local: attrs[i]}, Value: attrs[i+1]})
	}
	return node
}

// wNode builds a WordprocessingML element. attrs are local-name/value pairs
// in the same namespace.
func wNode(local string, attrs ...string) *xmlNode {
	node := &xmlNode{Name: xml.Name{Space: wmlNamespace, Local: local}}
	for i := 0; i+1 < len(attrs); i += 2 {
		node.Attr = append(node.Attr, wAttr(attrs[i], attrs[i+1]))
	}
	return node
}

func wAttr(local, value string) xml.Attr {
	return xml.Attr{Name: xml.Name{Space: wmlNamespace, Local: local}, Value: value}
}

func (n *xmlNode) add(children ...*xmlNode) *xmlNode {
	n.Children = append(n.Children, children...)
	return n
}

func (n *xmlNode) text(value string) *xmlNode {
	n.Children = append(n.Children, &xmlNode{IsText: true, Text: value})
	return n
}

// encodeXMLPart serializes root as a standalone package part. Names in a
// namespace listed in prefixes are written with that prefix and the prefixes
// are declared on the root element.
func encodeXMLPart(root *xmlNode, prefixes map[string]string) ([]byte, error) {
	decls := make([]xml.Attr, 0, len(prefixes))
	for uri, prefix := range prefixes {
		decls = append(decls, xml.Attr{Name: xml.Name{Local: "xmlns:" + prefix}, Value: uri})
	}
	sort.Slice(decls, func(i, j int) bool { return decls[i].Name.Local < decls[j].Name.Local })

	var buf bytes.Buffer
	buf.WriteString(xmlHeader)
	buf.WriteByte('\n')
	enc := &partEncoder{Encoder: xml.NewEncoder(&buf), prefixes: prefixes}
	if err := enc.node(root, decls); err != nil {
		return nil, err
	}
	if err := enc.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type partEncoder struct {
	*xml.Encoder
	prefixes map[string]string
}

// prefixed rewrites a namespaced name to its literal prefix:local form so
// encoding/xml does not invent its own xmlns attributes.
func (e *partEncoder) prefixed(name xml.Name) xml.Name {
	if prefix, ok := e.prefixes[name.Space]; ok && prefix != "" {
		return xml.Name{Local: prefix + ":" + name.Local}
	}
	return name
}

func (e *partEncoder) node(n *xmlNode, extra []xml.Attr) error {
	if n.IsText {
		return e.EncodeToken(xml.CharData(n.Text))
	}
	attrs := make([]xml.Attr, 0, len(extra)+len(n.Attr))
	attrs = append(attrs, extra...)
	for _, attr := range n.Attr {
		attrs = append(attrs, xml.Attr{Name: e.prefixed(attr.Name), Value: attr.Value})
	}
	start := xml.StartElement{Name: e.prefixed(n.Name), Attr: attrs}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	for _, child := range n.Children {
		if err := e.node(child, nil); err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}

// validateDocumentXML checks that document.xml parses, only uses declared
// namespaces, never nests paragraphs and keeps run properties ahead of text.
func validateDocumentXML(xmlText string) error {
	decoder := xml.NewDecoder(strings.NewReader(xmlText))
	var stack []xml.Name
	type runState struct {
		seenText bool
	}
	var runs []runState

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("document.xml parse failed: %w\n%s", err, firstLines(xmlText, 5))
		}
		switch t := token.(type) {
		case xml.StartElement:
			if err := checkDeclaredNamespace(t.Name, "element"); err != nil {
				return err
			}
			for _, attr := range t.Attr {
				if attr.Name.Space == "xmlns" || attr.Name.Space == xmlNamespaceURI {
					continue
				}
				if err := checkDeclaredNamespace(attr.Name, "attribute"); err != nil {
					return err
				}
			}
			stack = append(stack, t.Name)
			if isWmlElement(t.Name, "p") {
				for i := len(stack) - 2; i >= 0; i-- {
					if isWmlElement(stack[i], "p") {
						return fmt.Errorf("document.xml has nested <w:p>\n%s", firstLines(xmlText, 5))
					}
				}
			}
			if isWmlElement(t.Name, "r") {
				runs = append(runs, runState{})
			}
			if isWmlElement(t.Name, "t") && len(runs) > 0 {
				runs[len(runs)-1].seenText = true
			}
			if isWmlElement(t.Name, "rPr") && len(runs) > 0 && runs[len(runs)-1].seenText {
				return fmt.Errorf("document.xml has <w:rPr> after <w:t> in a run\n%s", firstLines(xmlText, 5))
			}
		case xml.EndElement:
			if isWmlElement(t.Name, "r") && len(runs) > 0 {
				runs = runs[:len(runs)-1]
			}
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}
	return nil
}

func isWmlElement(name xml.Name, local string) bool {
	return name.Local == local && name.Space == wmlNamespace
}

// checkDeclaredNamespace rejects names whose prefix was never bound; the
// decoder leaves the bare prefix in Space for those.
func checkDeclaredNamespace(name xml.Name, kind string) error {
	if name.Space == "" {
		return nil
	}
	if _, ok := knownNamespacePrefixes[name.Space]; ok {
		return nil
	}
	return fmt.Errorf("document.xml missing root namespace for %s %s:%s", kind, name.Space, name.Local)
}

var knownNamespacePrefixes = map[string]string{
	wmlNamespace: "w",
	relNamespace: "r",
}

func firstLines(text string, count int) string {
	if count <= 0 {
		return ""
	}
	lines := strings.Split(text, "\n")
	if len(lines) > count {
		lines = lines[:count]
	}
	return strings.Join(lines, "\n")
}
