// Copyright 2026 The PCTE Help Desk Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

// stripped renders markdown and returns ANSI-stripped visible text.
func stripped(input string, width int) string {
	return ansi.Strip(RenderMarkdown(input, DefaultTheme, width))
}

func TestRenderMarkdownEmpty(t *testing.T) {
	if result := RenderMarkdown("   \n", DefaultTheme, 80); result != "" {
		t.Errorf("expected empty output for blank input, got %q", result)
	}
}

func TestRenderMarkdownParagraphReflow(t *testing.T) {
	// Source hard-wrapped at a narrow width; soft breaks should become
	// spaces so the paragraph reflows to the render width.
	input := "This paragraph was written\nnarrow with soft breaks\nembedded in it."
	result := stripped(input, 120)

	if strings.Contains(result, "\n") {
		t.Errorf("expected single line at width 120, got:\n%s", result)
	}
	if !strings.Contains(result, "written narrow with") {
		t.Errorf("soft break not converted to space:\n%s", result)
	}
}

func TestRenderMarkdownWrapsToWidth(t *testing.T) {
	input := "This is a longer paragraph that must wrap at the requested width."
	for _, line := range strings.Split(stripped(input, 30), "\n") {
		if len(line) > 30 {
			t.Errorf("line exceeds width 30: %q", line)
		}
	}
}

func TestRenderMarkdownBoldIsStyled(t *testing.T) {
	input := "Your ticket **INC-00042** has been created."
	plain := stripped(input, 80)
	if !strings.Contains(plain, "INC-00042") {
		t.Fatalf("missing bold text: %q", plain)
	}
	if styled := RenderMarkdown(input, DefaultTheme, 80); styled == plain {
		t.Error("expected ANSI styling on bold run")
	}
}

func TestRenderMarkdownHeadings(t *testing.T) {
	result := stripped("## Ticket Details\n\nBody text.", 80)
	if !strings.Contains(result, "Ticket Details") {
		t.Errorf("missing heading text:\n%s", result)
	}
	if !strings.Contains(result, "Body text.") {
		t.Errorf("missing paragraph after heading:\n%s", result)
	}
}

func TestRenderMarkdownBulletList(t *testing.T) {
	input := "**Ticket Details:**\n- **ID:** INC-00042\n- **Priority:** High\n- **Status:** Open"
	result := stripped(input, 80)

	for _, want := range []string{"• ID: INC-00042", "• Priority: High", "• Status: Open"} {
		if !strings.Contains(result, want) {
			t.Errorf("missing list item %q in:\n%s", want, result)
		}
	}
}

func TestRenderMarkdownOrderedList(t *testing.T) {
	result := stripped("1. Restart the client\n2. Clear the cache\n3. Retry login", 80)
	for _, want := range []string{"1. Restart", "2. Clear", "3. Retry"} {
		if !strings.Contains(result, want) {
			t.Errorf("missing item %q in:\n%s", want, result)
		}
	}
}

func TestRenderMarkdownListItemWrapIndents(t *testing.T) {
	input := "- This bullet item is long enough that it must wrap onto a continuation line"
	lines := strings.Split(stripped(input, 40), "\n")
	if len(lines) < 2 {
		t.Fatalf("expected wrapped list item, got:\n%s", strings.Join(lines, "\n"))
	}
	if !strings.HasPrefix(lines[1], "  ") {
		t.Errorf("continuation line not indented under marker: %q", lines[1])
	}
}

func TestRenderMarkdownCodeSpan(t *testing.T) {
	result := stripped("Run `kinit` before connecting.", 80)
	if !strings.Contains(result, "kinit") {
		t.Errorf("missing code span text:\n%s", result)
	}
}

func TestRenderMarkdownFencedCode(t *testing.T) {
	input := "Check the route:\n\n```bash\nip route show default\n```\n\nDone."
	result := stripped(input, 80)
	if !strings.Contains(result, "ip route show default") {
		t.Errorf("missing code block content:\n%s", result)
	}
	if !strings.Contains(result, "Done.") {
		t.Errorf("missing trailing paragraph:\n%s", result)
	}
}

func TestRenderMarkdownFencedCodeUnknownLanguage(t *testing.T) {
	result := stripped("```\nplain block\n```", 80)
	if !strings.Contains(result, "plain block") {
		t.Errorf("missing unhighlighted code content:\n%s", result)
	}
}

func TestRenderMarkdownBlockquote(t *testing.T) {
	result := stripped("> Quoted agent note", 80)
	if !strings.Contains(result, "│ Quoted agent note") {
		t.Errorf("missing quote bar prefix:\n%s", result)
	}
}

func TestRenderMarkdownHardLineBreak(t *testing.T) {
	result := stripped("Line one  \nLine two", 80)
	if !strings.Contains(result, "Line one\nLine two") {
		t.Errorf("hard break not preserved:\n%s", result)
	}
}
