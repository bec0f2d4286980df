// Copyright 2026 The PCTE Help Desk Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// Assistant answers and ticket confirmations arrive as markdown
// (bold runs, bullet lists, the occasional code block). They are
// rendered to styled terminal text instead of shown raw.

var (
	markdownParser     goldmark.Markdown
	markdownParserOnce sync.Once
)

func parser() goldmark.Markdown {
	markdownParserOnce.Do(func() {
		markdownParser = goldmark.New(goldmark.WithExtensions(extension.GFM))
	})
	return markdownParser
}

// RenderMarkdown renders markdown as styled terminal text wrapped to
// width. Soft line breaks within paragraphs become spaces so
// hard-wrapped source reflows at any width; block structure (lists,
// code, quotes) is preserved.
func RenderMarkdown(input string, theme Theme, width int) string {
	if strings.TrimSpace(input) == "" {
		return ""
	}
	source := []byte(input)
	document := parser().Parser().Parse(text.NewReader(source))

	// Force the ANSI256 profile: output always targets the bubbletea
	// screen, and auto-detection would strip colors when stdout is not
	// a TTY (tests, piped logs).
	lipRenderer := lipgloss.NewRenderer(os.Stderr, termenv.WithProfile(termenv.ANSI256))
	lipRenderer.SetColorProfile(termenv.ANSI256)

	w := &markdownWriter{
		source:      source,
		theme:       theme,
		width:       width,
		lipRenderer: lipRenderer,
	}
	ast.Walk(document, w.walk)
	return strings.TrimRight(w.output.String(), "\n")
}

// markdownWriter walks the goldmark AST accumulating inline content
// per block, then word-wraps each block as a unit on close. A direct
// walk fits terminal rendering better than goldmark's streaming
// renderer interface, which has no natural accumulate-then-wrap point.
type markdownWriter struct {
	source      []byte
	theme       Theme
	width       int
	lipRenderer *lipgloss.Renderer

	output strings.Builder
	inline strings.Builder

	prefix      string
	prefixWidth int

	boldDepth   int
	italicDepth int

	listDepth   int
	listCounter []int // per-depth ordered-list counters; 0 for bullet lists
}

func (w *markdownWriter) style() lipgloss.Style {
	return w.lipRenderer.NewStyle()
}

func (w *markdownWriter) contentWidth() int {
	width := w.width - w.prefixWidth
	if width < 10 {
		width = 10
	}
	return width
}

func (w *markdownWriter) walk(node ast.Node, entering bool) (ast.WalkStatus, error) {
	switch typed := node.(type) {
	case *ast.Heading:
		if entering {
			w.inline.Reset()
		} else {
			content := w.inline.String()
			w.inline.Reset()
			style := w.style().Bold(true).Foreground(w.theme.Accent)
			if typed.Level > 2 {
				style = w.style().Bold(true).Foreground(w.theme.HeaderForeground)
			}
			w.blankLine()
			w.writeBlock(ansi.Wrap(style.Render(content), w.contentWidth(), " ,.;-+|"))
			w.blankLine()
		}

	case *ast.Paragraph, *ast.TextBlock:
		if entering {
			w.inline.Reset()
		} else {
			w.flushParagraph()
		}

	case *ast.Text:
		if entering {
			w.inline.WriteString(w.styled(string(typed.Segment.Value(w.source))))
			if typed.SoftLineBreak() {
				w.inline.WriteString(" ")
			}
			if typed.HardLineBreak() {
				w.inline.WriteString("\n")
			}
		}

	case *ast.Emphasis:
		if entering {
			if typed.Level >= 2 {
				w.boldDepth++
			} else {
				w.italicDepth++
			}
		} else {
			if typed.Level >= 2 {
				w.boldDepth--
			} else {
				w.italicDepth--
			}
		}

	case *ast.CodeSpan:
		if entering {
			code := string(typed.Text(w.source))
			w.inline.WriteString(w.style().Foreground(w.theme.SeverityMedium).Render(code))
			return ast.WalkSkipChildren, nil
		}

	case *ast.FencedCodeBlock:
		if entering {
			w.flushParagraph()
			language := string(typed.Language(w.source))
			w.writeBlock(w.highlight(w.blockText(typed), language))
			w.blankLine()
			return ast.WalkSkipChildren, nil
		}

	case *ast.CodeBlock:
		if entering {
			w.flushParagraph()
			w.writeBlock(w.highlight(w.blockText(typed), ""))
			w.blankLine()
			return ast.WalkSkipChildren, nil
		}

	case *ast.Blockquote:
		if entering {
			w.pushPrefix(w.style().Foreground(w.theme.BorderColor).Render("│ "), 2)
		} else {
			w.popPrefix("│ ", 2)
			w.blankLine()
		}

	case *ast.List:
		if entering {
			w.listDepth++
			counter := 0
			if typed.IsOrdered() {
				counter = typed.Start
				if counter == 0 {
					counter = 1
				}
			}
			w.listCounter = append(w.listCounter, counter)
		} else {
			w.listDepth--
			w.listCounter = w.listCounter[:len(w.listCounter)-1]
			if w.listDepth == 0 {
				w.blankLine()
			}
		}

	case *ast.ListItem:
		if entering {
			marker := "• "
			depth := len(w.listCounter) - 1
			if w.listCounter[depth] > 0 {
				marker = fmt.Sprintf("%d. ", w.listCounter[depth])
				w.listCounter[depth]++
			}
			indent := strings.Repeat("  ", w.listDepth-1)
			w.pushPrefix(indent+w.style().Foreground(w.theme.Accent).Render(marker), len(indent)+ansi.StringWidth(marker))
		} else {
			top := len(w.listCounter) - 1
			marker := "• "
			if w.listCounter[top] > 0 {
				marker = fmt.Sprintf("%d. ", w.listCounter[top]-1)
			}
			indent := strings.Repeat("  ", w.listDepth-1)
			w.popPrefix(indent+marker, len(indent)+ansi.StringWidth(marker))
		}

	case *ast.ThematicBreak:
		if entering {
			w.blankLine()
			w.writeBlock(w.style().Foreground(w.theme.BorderColor).Render(strings.Repeat("─", w.contentWidth())))
			w.blankLine()
		}
	}

	return ast.WalkContinue, nil
}

func (w *markdownWriter) styled(content string) string {
	style := w.style()
	if w.boldDepth > 0 {
		style = style.Bold(true)
	}
	if w.italicDepth > 0 {
		style = style.Italic(true)
	}
	if w.boldDepth == 0 && w.italicDepth == 0 {
		return content
	}
	return style.Render(content)
}

func (w *markdownWriter) flushParagraph() {
	content := w.inline.String()
	w.inline.Reset()
	if content == "" {
		return
	}
	w.writeBlock(ansi.Wrap(content, w.contentWidth(), " ,.;-+|"))
	if w.listDepth == 0 {
		w.blankLine()
	}
}

// writeBlock emits wrapped block content, applying the current prefix
// to every line. The prefix's style carries the list marker or quote
// bar only on the first line; continuation lines get matching blank
// indentation.
func (w *markdownWriter) writeBlock(block string) {
	lines := strings.Split(block, "\n")
	for i, line := range lines {
		if i == 0 {
			w.output.WriteString(w.prefix)
		} else {
			w.output.WriteString(strings.Repeat(" ", w.prefixWidth))
		}
		w.output.WriteString(line)
		w.output.WriteString("\n")
	}
}

func (w *markdownWriter) blankLine() {
	rendered := w.output.String()
	if rendered == "" || strings.HasSuffix(rendered, "\n\n") {
		return
	}
	w.output.WriteString("\n")
}

func (w *markdownWriter) pushPrefix(styled string, width int) {
	w.prefix += styled
	w.prefixWidth += width
}

func (w *markdownWriter) popPrefix(plain string, width int) {
	// Prefixes are pushed/popped in strict nesting order; trimming by
	// width is enough because the styled text is opaque.
	w.prefixWidth -= width
	total := 0
	for i := len(w.prefix); i > 0; i-- {
		if ansi.StringWidth(w.prefix[:i]) <= w.prefixWidth {
			total = i
			break
		}
	}
	w.prefix = w.prefix[:total]
}

func (w *markdownWriter) blockText(node ast.Node) string {
	var buffer strings.Builder
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		buffer.Write(segment.Value(w.source))
	}
	return strings.TrimRight(buffer.String(), "\n")
}

// highlight runs chroma over a code block, falling back to faint text
// when the language is unknown or highlighting fails.
func (w *markdownWriter) highlight(code, language string) string {
	if language == "" {
		return w.style().Foreground(w.theme.FaintText).Render(code)
	}
	var buffer strings.Builder
	if err := quick.Highlight(&buffer, code, language, "terminal256", "monokai"); err != nil {
		return w.style().Foreground(w.theme.FaintText).Render(code)
	}
	return strings.TrimRight(buffer.String(), "\n")
}
