package parser

import (
	"strings"
	"testing"
)

func TestMarkdownParser_FlattensHeadingsAndBody(t *testing.T) {
	input := `# Medical Report

Patient is deaf.

## Notes

Follow up in two weeks.
`
	p := &MarkdownParser{}
	text, err := p.Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(text, "\n")
	want := []string{
		"Medical Report",
		"Patient is deaf.",
		"Notes",
		"Follow up in two weeks.",
	}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d: %q", len(want), len(lines), text)
	}
	for i, w := range want {
		if lines[i] != w {
			t.Errorf("line %d: expected %q, got %q", i, w, lines[i])
		}
	}
}

func TestMarkdownParser_CodeBlocksIncluded(t *testing.T) {
	input := "Some intro.\n\n```\ncode line\n```\n"
	p := &MarkdownParser{}
	text, err := p.Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(text, "Some intro.") {
		t.Errorf("expected intro text, got %q", text)
	}
	if !strings.Contains(text, "code line") {
		t.Errorf("expected code block content, got %q", text)
	}
}

func TestMarkdownParser_Empty(t *testing.T) {
	p := &MarkdownParser{}
	text, err := p.Parse(strings.NewReader(""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "" {
		t.Errorf("expected empty text, got %q", text)
	}
}

func TestHTMLParser_ExtractsContent(t *testing.T) {
	input := `<html><head><title>Report</title><style>p{color:red}</style></head>
<body>
<h1>Assessment</h1>
<p>Patient is blind.</p>
<script>console.log("skip me")</script>
<p>Second paragraph.</p>
</body></html>`
	p := &HTMLParser{}
	text, err := p.Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(text, "\n")
	want := []string{"Assessment", "Patient is blind.", "Second paragraph."}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d: %q", len(want), len(lines), text)
	}
	for i, w := range want {
		if lines[i] != w {
			t.Errorf("line %d: expected %q, got %q", i, w, lines[i])
		}
	}
}

func TestHTMLParser_NoBody(t *testing.T) {
	p := &HTMLParser{}
	text, err := p.Parse(strings.NewReader("<p>fragment text</p>"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(text, "fragment text") {
		t.Errorf("expected fragment text, got %q", text)
	}
}
