package workflow

import (
	"strings"
	"testing"
)

func TestNormalizeMarkdownIdempotent(t *testing.T) {
	messy := "##Magnetism basics\r\nA magnetic field surrounds moving charges.   \n\n\n\n###Field lines\nField lines never cross."

	once := NormalizeMarkdown(messy)
	twice := NormalizeMarkdown(once)

	if once != twice {
		t.Errorf("normalize is not idempotent:\nonce:  %q\ntwice: %q", once, twice)
	}
}

func TestNormalizeMarkdownCleanInputUnchanged(t *testing.T) {
	clean := "# Magnetism\n\nA magnetic field surrounds moving charges.\n\n## Field lines\n\nField lines never cross.\n"

	if got := NormalizeMarkdown(clean); got != clean {
		t.Errorf("clean input changed:\ngot:  %q\nwant: %q", got, clean)
	}
}

func TestNormalizeMarkdownPreservesText(t *testing.T) {
	input := "##Intro   \nThe force on a charge is F = qvB.\n\n\n\nInduction follows Faraday's law."

	got := NormalizeMarkdown(input)

	for _, sentence := range []string{
		"The force on a charge is F = qvB.",
		"Induction follows Faraday's law.",
	} {
		if !strings.Contains(got, sentence) {
			t.Errorf("normalized output lost %q:\n%s", sentence, got)
		}
	}
}

func TestNormalizeMarkdownFixesStructure(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "adds space after heading markers",
			input: "#Title\n\nBody text.",
			want:  "# Title\n\nBody text.\n",
		},
		{
			name:  "collapses blank runs",
			input: "# Title\n\n\n\nBody text.",
			want:  "# Title\n\nBody text.\n",
		},
		{
			name:  "promotes first heading when no h1 exists",
			input: "## Title\n\nBody text.\n\n### Sub\n\nMore.",
			want:  "# Title\n\nBody text.\n\n### Sub\n\nMore.\n",
		},
		{
			name:  "keeps existing h1",
			input: "## Preamble\n\n# Real title\n\nBody.",
			want:  "## Preamble\n\n# Real title\n\nBody.\n",
		},
		{
			name:  "no headings left alone",
			input: "Just a paragraph.",
			want:  "Just a paragraph.\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeMarkdown(tt.input); got != tt.want {
				t.Errorf("NormalizeMarkdown(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestHeadingOutline(t *testing.T) {
	md := "# Magnetism\n\nIntro.\n\n## Fields\n\n## Forces\n\n### Lorentz force\n"

	outline := headingOutline([]byte(md))

	if len(outline) != 4 {
		t.Fatalf("outline length = %d, want 4", len(outline))
	}
	if outline[0].Level != 1 || outline[0].Text != "Magnetism" {
		t.Errorf("first heading = %+v, want level 1 Magnetism", outline[0])
	}
	if outline[3].Level != 3 || outline[3].Text != "Lorentz force" {
		t.Errorf("last heading = %+v, want level 3 Lorentz force", outline[3])
	}
}
