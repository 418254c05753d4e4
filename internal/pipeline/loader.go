package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// Document is one acquired input: plain text plus a source label
type Document struct {
	Text  string
	Label string
}

// htmlHint detects pasted/exported HTML so the loader can strip markup
var htmlHint = regexp.MustCompile(`(?is)<\s*(?:html|body|div|p|br|table)[\s>]`)

// LoadDocument reads a text or HTML file and returns normalized plain text
// with the filename as the source label. Binary formats (PDF/DOCX) are an
// external collaborator's responsibility; only their extracted text arrives
// here.
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}

	return &Document{
		Text:  NormalizeText(string(data)),
		Label: filepath.Base(path),
	}, nil
}

// NormalizeText prepares raw input for extraction. HTML markup (common with
// text pasted from document viewers) is reduced to its visible text; plain
// text passes through with line endings normalized.
func NormalizeText(raw string) string {
	text := strings.ReplaceAll(raw, "\r\n", "\n")
	if !htmlHint.MatchString(text) {
		return text
	}

	doc, err := html.Parse(strings.NewReader(text))
	if err != nil {
		return text
	}
	return visibleText(doc)
}

// visibleText extracts text nodes from HTML, skipping scripts/styles.
// Block elements become line breaks so label-anchored patterns still see
// one field per line.
func visibleText(n *html.Node) string {
	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			case "p", "div", "br", "tr", "li":
				buf.WriteString("\n")
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(n)
	return strings.TrimSpace(buf.String())
}
