package extract

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// Extractor turns raw document bytes into plain text. Implementations
// return empty text, not an error, when no usable text can be obtained
// (e.g. scanned images); an error means the input could not be processed
// at all.
type Extractor interface {
	Extract(data []byte, maxPages int) (string, error)
}

// Dispatcher routes document bytes to the right extractor by content
// sniffing. PDF extraction is pluggable; without a PDF extractor, PDF
// bytes yield empty text and the document is reported as having no
// usable text.
type Dispatcher struct {
	html Extractor
	pdf  Extractor
}

// NewDispatcher creates a dispatcher. pdf may be nil.
func NewDispatcher(pdf Extractor) *Dispatcher {
	return &Dispatcher{
		html: HTMLExtractor{},
		pdf:  pdf,
	}
}

// Extract returns the plain text of a document, or empty text if the
// format is not extractable
func (d *Dispatcher) Extract(data []byte, maxPages int) (string, error) {
	switch {
	case bytes.HasPrefix(data, []byte("%PDF")):
		if d.pdf == nil {
			return "", nil
		}
		return d.pdf.Extract(data, maxPages)
	case looksLikeHTML(data):
		return d.html.Extract(data, maxPages)
	case utf8.Valid(data):
		return string(data), nil
	default:
		return "", nil
	}
}

func looksLikeHTML(data []byte) bool {
	head := data
	if len(head) > 1024 {
		head = head[:1024]
	}
	lower := bytes.ToLower(head)
	return bytes.Contains(lower, []byte("<!doctype html")) ||
		bytes.Contains(lower, []byte("<html")) ||
		bytes.Contains(lower, []byte("<body"))
}

// HTMLExtractor extracts visible text from HTML, skipping script and
// style content. The page limit does not apply to HTML documents.
type HTMLExtractor struct{}

// Extract parses the HTML and collects visible text nodes
func (HTMLExtractor) Extract(data []byte, _ int) (string, error) {
	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	return visibleText(doc), nil
}

// visibleText walks the DOM collecting text nodes, skipping non-content
// elements
func visibleText(n *html.Node) string {
	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
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
	return buf.String()
}
