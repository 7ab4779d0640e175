package extract

import (
	"strings"
	"testing"
)

func TestDispatcher_Extract_HTML(t *testing.T) {
	d := NewDispatcher(nil)

	page := `<!DOCTYPE html>
<html><head><title>Contract</title><style>body { color: red; }</style></head>
<body>
<script>var tracking = "ignore me";</script>
<h1>Service Agreement</h1>
<p>Total contract amount: $150,000</p>
</body></html>`

	text, err := d.Extract([]byte(page), 15)
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}

	if !strings.Contains(text, "Service Agreement") {
		t.Errorf("missing heading text: %q", text)
	}
	if !strings.Contains(text, "Total contract amount: $150,000") {
		t.Errorf("missing body text: %q", text)
	}
	if strings.Contains(text, "ignore me") {
		t.Errorf("script content leaked: %q", text)
	}
	if strings.Contains(text, "color: red") {
		t.Errorf("style content leaked: %q", text)
	}
}

func TestDispatcher_Extract_PDFWithoutExtractor(t *testing.T) {
	d := NewDispatcher(nil)

	text, err := d.Extract([]byte("%PDF-1.7 binary payload"), 15)
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if text != "" {
		t.Errorf("expected empty text without a PDF extractor, got %q", text)
	}
}

type staticExtractor string

func (s staticExtractor) Extract(data []byte, maxPages int) (string, error) {
	return string(s), nil
}

func TestDispatcher_Extract_PDFDelegates(t *testing.T) {
	d := NewDispatcher(staticExtractor("extracted pdf text"))

	text, err := d.Extract([]byte("%PDF-1.7 payload"), 15)
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if text != "extracted pdf text" {
		t.Errorf("text = %q, want delegated extractor output", text)
	}
}

func TestDispatcher_Extract_PlainText(t *testing.T) {
	d := NewDispatcher(nil)

	text, err := d.Extract([]byte("plain text agreement terms"), 15)
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if text != "plain text agreement terms" {
		t.Errorf("text = %q, want passthrough", text)
	}
}

func TestDispatcher_Extract_Binary(t *testing.T) {
	d := NewDispatcher(nil)

	text, err := d.Extract([]byte{0xff, 0xfe, 0x00, 0x80, 0x81}, 15)
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if text != "" {
		t.Errorf("expected empty text for binary data, got %q", text)
	}
}
