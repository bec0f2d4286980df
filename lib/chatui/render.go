// Copyright 2026 The PCTE Help Desk Authors
// SPDX-License-Identifier: Apache-2.0

package chatui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/pcte/helpdesk/lib/chat"
	"github.com/pcte/helpdesk/lib/tui"
)

// View implements tea.Model.
func (model Model) View() string {
	if !model.ready {
		return ""
	}
	if model.snapshot.Collapsed {
		return model.viewCollapsed()
	}

	var sections []string
	sections = append(sections, model.viewHeader())
	sections = append(sections, model.viewport.View())
	if banner := model.viewBanner(); banner != "" {
		sections = append(sections, banner)
	}
	if model.snapshot.Typing {
		sections = append(sections, model.viewTypingIndicator())
	}
	sections = append(sections, model.viewInput())
	sections = append(sections, model.viewHelp())
	return strings.Join(sections, "\n")
}

func (model Model) viewCollapsed() string {
	hint := lipgloss.NewStyle().Foreground(model.theme.HelpText).
		Render("AI Assistant collapsed — press any key to open")
	return hint
}

func (model Model) viewHeader() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(model.theme.Accent).
		Render("AI Assistant")
	status := lipgloss.NewStyle().Foreground(model.theme.FaintText).Render("online")
	if model.snapshot.Context.AgentActive {
		status = lipgloss.NewStyle().Foreground(model.theme.AgentForeground).Render("live agent")
	}
	return title + " " + status
}

// viewBanner renders the escalation status line. Handoff phases show
// warning colors; a connected agent shows success.
func (model Model) viewBanner() string {
	escalation := model.snapshot.Escalation
	if escalation == nil {
		return ""
	}
	color := model.theme.BannerWarning
	switch escalation.Phase {
	case chat.PhaseConnected, chat.PhaseActive:
		color = model.theme.BannerSuccess
	case chat.PhasePending:
		color = model.theme.BannerInfo
	}
	return lipgloss.NewStyle().Bold(true).Foreground(color).
		Render("⚡ " + escalation.Banner)
}

func (model Model) viewTypingIndicator() string {
	return lipgloss.NewStyle().Italic(true).Foreground(model.theme.FaintText).
		Render("● " + typingFrames[model.typingFrame])
}

func (model Model) viewInput() string {
	return model.input.View()
}

func (model Model) viewHelp() string {
	return lipgloss.NewStyle().Foreground(model.theme.HelpText).
		Render("Enter send · Esc collapse · C-x end chat · PgUp/PgDn scroll")
}

// renderTranscript renders all messages for the viewport.
func renderTranscript(messages []chat.Message, theme tui.Theme, width int) string {
	var blocks []string
	for _, message := range messages {
		blocks = append(blocks, renderMessage(message, theme, width))
	}
	return strings.Join(blocks, "\n\n")
}

// renderMessage renders one transcript entry: an author line, the
// body, and for assistant answers a faint metadata line.
func renderMessage(message chat.Message, theme tui.Theme, width int) string {
	bodyWidth := width - 2
	if bodyWidth < 10 {
		bodyWidth = 10
	}

	var author, body string
	switch message.Author {
	case chat.AuthorUser:
		author = lipgloss.NewStyle().Bold(true).Foreground(theme.HeaderForeground).Render("You")
		body = lipgloss.NewStyle().Foreground(theme.NormalText).
			Render(ansi.Wrap(message.Body, bodyWidth, " ,.;-+|"))

	case chat.AuthorAgent:
		label := message.AgentName
		if message.AgentTier != "" {
			label = fmt.Sprintf("%s (%s)", message.AgentName, message.AgentTier)
		}
		author = lipgloss.NewStyle().Bold(true).Foreground(theme.AgentForeground).Render(label)
		body = ansi.Wrap(message.Body, bodyWidth, " ,.;-+|")

	default:
		author = lipgloss.NewStyle().Bold(true).Foreground(theme.Accent).Render("AI Assistant")
		if message.Analyzing || message.Processing {
			body = lipgloss.NewStyle().Italic(true).Foreground(theme.FaintText).
				Render(ansi.Wrap(ansi.Strip(message.Body), bodyWidth, " ,.;-+|"))
		} else {
			body = tui.RenderMarkdown(message.Body, theme, bodyWidth)
		}
	}

	lines := []string{author, indent(body)}
	if meta := renderMetadata(message, theme); meta != "" {
		lines = append(lines, indent(meta))
	}
	return strings.Join(lines, "\n")
}

// renderMetadata builds the faint detail line under an assistant
// answer: confidence, sentiment, knowledge-base source, linked ticket,
// and a guardrail notice when the response was blocked.
func renderMetadata(message chat.Message, theme tui.Theme) string {
	if message.Author != chat.AuthorAssistant || message.Analyzing || message.Processing {
		return ""
	}

	var parts []string
	if message.Confidence > 0 {
		parts = append(parts, fmt.Sprintf("confidence %d%%", int(message.Confidence*100)))
	}
	if message.Sentiment != nil && message.Sentiment.Label != "" && message.Sentiment.Label != "neutral" {
		parts = append(parts, "sentiment "+message.Sentiment.Label)
	}
	if message.Source != "" {
		parts = append(parts, "source: "+message.Source)
	}
	if message.TicketID != "" {
		parts = append(parts, "ticket "+message.TicketID)
	}

	line := ""
	if len(parts) > 0 {
		line = lipgloss.NewStyle().Foreground(theme.FaintText).Render(strings.Join(parts, " · "))
	}
	if message.Guardrail != nil && message.Guardrail.Blocked {
		notice := lipgloss.NewStyle().Foreground(theme.BannerWarning).
			Render("⚠ response limited: " + message.Guardrail.Reason)
		if line != "" {
			return line + "\n" + notice
		}
		return notice
	}
	return line
}

func indent(block string) string {
	lines := strings.Split(block, "\n")
	for i, line := range lines {
		lines[i] = "  " + line
	}
	return strings.Join(lines, "\n")
}
