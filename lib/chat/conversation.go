// Copyright 2026 The PCTE Help Desk Authors
// SPDX-License-Identifier: Apache-2.0

package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/pcte/helpdesk/lib/clock"
	"github.com/pcte/helpdesk/lib/localstore"
)

// WelcomeBody greets an empty transcript when the panel opens.
const WelcomeBody = "Hello! I'm your AI assistant for PCTE Help Desk. How can I help you today?"

// Scripted flow timings. The analyze delay also paces the deferred
// initial message.
const (
	analyzeDelay      = 800 * time.Millisecond
	processingDelay   = 3 * time.Second
	ackTypingDelay    = time.Second
	bannerStepDelay   = 1500 * time.Millisecond
	pendingAgentDelay = 3 * time.Second
	connectedDelay    = 2 * time.Second
	typingPerChar     = 20 * time.Millisecond
	typingHoldMax     = 2 * time.Second
)

// urgencyKeywords trigger the scripted live-agent handoff once a
// ticket exists.
var urgencyKeywords = []string{"urgent", "now", "asap", "immediately", "need help now", "emergency"}

// HasUrgency reports whether the message contains an urgency keyword.
func HasUrgency(message string) bool {
	lower := strings.ToLower(message)
	for _, keyword := range urgencyKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

// Params configures a Conversation.
type Params struct {
	// Clock paces every scripted delay. Defaults to the real clock.
	Clock clock.Clock

	// Store persists the transcript and context across restarts.
	Store *localstore.Store

	// Backend produces classified responses for normal turns.
	Backend Turner

	Logger *slog.Logger

	// OnTicketCreated fires once per ticket synthesized by the
	// scripted flows. Must not call back into the Conversation.
	OnTicketCreated func(CreatedTicket)

	// OnChange fires after every state change; the panel re-reads
	// Snapshot in response. Must not call back into the Conversation.
	OnChange func()
}

// Conversation owns the chat transcript, the per-turn context, and the
// scripted flows around them. It is UI-independent: the panel calls
// Send/Close/Snapshot and reacts to OnChange notifications.
//
// Every delayed effect carries the epoch current when it was
// scheduled; Close bumps the epoch, so effects from a closed
// conversation check, see the mismatch, and do nothing.
type Conversation struct {
	clockwork       clock.Clock
	store           *localstore.Store
	backend         Turner
	logger          *slog.Logger
	onTicketCreated func(CreatedTicket)
	onChange        func()
	ctx             context.Context

	mu         sync.Mutex
	epoch      int
	messages   []Message
	context    Context
	escalation *EscalationStatus
	typing     bool
	collapsed  bool
	nextID     int

	initialSent bool
	lastInitial string

	// deferred holds callbacks queued during a locked section and run
	// after the lock is released, on the same goroutine.
	deferred []func()
}

// New creates a Conversation. Call Open to hydrate it from the store.
func New(params Params) *Conversation {
	if params.Clock == nil {
		params.Clock = clock.Real()
	}
	if params.Logger == nil {
		params.Logger = slog.Default()
	}
	return &Conversation{
		clockwork:       params.Clock,
		store:           params.Store,
		backend:         params.Backend,
		logger:          params.Logger,
		onTicketCreated: params.OnTicketCreated,
		onChange:        params.OnChange,
		ctx:             context.Background(),
	}
}

// Snapshot is a point-in-time copy of the conversation state for
// rendering.
type Snapshot struct {
	Messages   []Message
	Context    Context
	Escalation *EscalationStatus
	Typing     bool
	Collapsed  bool
}

// Snapshot returns a copy of the current state.
func (c *Conversation) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snapshot := Snapshot{
		Messages:  make([]Message, len(c.messages)),
		Context:   c.context,
		Typing:    c.typing,
		Collapsed: c.collapsed,
	}
	copy(snapshot.Messages, c.messages)
	if c.escalation != nil {
		status := *c.escalation
		snapshot.Escalation = &status
	}
	return snapshot
}

// Open hydrates the transcript and context from the store and appends
// the welcome message when the transcript is empty.
func (c *Conversation) Open() {
	c.mu.Lock()
	c.store.Load(localstore.MessagesFile, &c.messages)
	c.store.Load(localstore.ContextFile, &c.context)
	if len(c.messages) == 0 && !c.collapsed {
		c.appendLocked(Message{
			ID:         c.newIDLocked(),
			Author:     AuthorAssistant,
			Body:       WelcomeBody,
			CreatedAt:  c.clockwork.Now(),
			Confidence: 0.95,
			Sentiment:  &Sentiment{Label: "neutral", Score: 0},
		})
	}
	c.mu.Unlock()
	c.notify()
}

// Close clears the transcript, the context, and the persisted state,
// and cancels every pending scripted effect. The next Open starts
// fresh.
func (c *Conversation) Close() {
	c.mu.Lock()
	c.epoch++
	c.messages = nil
	c.context = Context{}
	c.escalation = nil
	c.typing = false
	c.collapsed = true
	c.initialSent = false
	c.lastInitial = ""
	c.mu.Unlock()

	c.store.Remove(localstore.MessagesFile)
	c.store.Remove(localstore.ContextFile)
	c.notify()
}

// SetCollapsed hides or reveals the panel without clearing anything.
// Collapsing stops the typing indicator and drops the escalation
// banner; expanding an empty transcript seeds the welcome message.
func (c *Conversation) SetCollapsed(collapsed bool) {
	c.mu.Lock()
	if collapsed && !c.collapsed {
		c.typing = false
		c.escalation = nil
	}
	c.collapsed = collapsed
	if !collapsed && len(c.messages) == 0 {
		c.appendLocked(Message{
			ID:         c.newIDLocked(),
			Author:     AuthorAssistant,
			Body:       WelcomeBody,
			CreatedAt:  c.clockwork.Now(),
			Confidence: 0.95,
			Sentiment:  &Sentiment{Label: "neutral", Score: 0},
		})
	}
	c.mu.Unlock()
	c.notify()
}

// QueueInitial arranges for text to be sent as the user's message
// shortly after the panel opens. Each distinct value is sent at most
// once; queueing the same text again is a no-op, and an empty text
// resets the latch.
func (c *Conversation) QueueInitial(text string) {
	c.mu.Lock()
	if text == "" {
		c.initialSent = false
		c.lastInitial = ""
		c.mu.Unlock()
		return
	}
	if text == c.lastInitial {
		c.mu.Unlock()
		return
	}
	c.lastInitial = text
	c.initialSent = false
	c.collapsed = false
	epoch := c.epoch
	c.mu.Unlock()

	c.clockwork.AfterFunc(analyzeDelay, func() {
		c.mu.Lock()
		if c.epoch != epoch || c.initialSent || c.collapsed || len(c.messages) == 0 {
			c.mu.Unlock()
			return
		}
		c.initialSent = true
		c.mu.Unlock()
		c.Send(text)
	})
}

// Send runs one conversation turn for the user's message. It returns
// immediately; the scripted phases play out on the clock and arrive
// through OnChange.
func (c *Conversation) Send(text string) {
	c.mu.Lock()
	epoch := c.epoch
	c.appendLocked(Message{
		ID:        c.newIDLocked(),
		Author:    AuthorUser,
		Body:      text,
		CreatedAt: c.clockwork.Now(),
	})
	turnContext := c.context
	c.typing = true
	c.mu.Unlock()
	c.notify()

	switch {
	case turnContext.WaitingForTicketDetails:
		c.runTicketCreation(epoch, text)
	case turnContext.TicketCreated && HasUrgency(text):
		c.runUrgentHandoff(epoch)
	default:
		c.runBackendTurn(epoch, text)
	}
}

// runTicketCreation is the scripted flow for the message following a
// ticket-details request: no backend call, a staged "processing"
// sequence, then a synthesized INC ticket.
func (c *Conversation) runTicketCreation(epoch int, details string) {
	c.locked(epoch, func() {
		c.appendLocked(Message{
			ID:        c.newIDLocked(),
			Author:    AuthorAssistant,
			Body:      "Analyzing request...",
			CreatedAt: c.clockwork.Now(),
			Analyzing: true,
		})
	})

	c.after(epoch, analyzeDelay, func() {
		c.dropAnalyzingLocked()
		processingID := c.newIDLocked()
		c.appendLocked(Message{
			ID:     processingID,
			Author: AuthorAssistant,
			Body: "**AI Agent Processing Ticket Creation...**\n\n" +
				"Analyzing details...\nClassifying priority...\nGenerating ticket...",
			CreatedAt:  c.clockwork.Now(),
			Processing: true,
		})

		c.after(epoch, processingDelay, func() {
			c.editLocked(processingID, func(m *Message) { m.Processing = false })

			ticketID := c.newTicketIDLocked()
			body := ticketConfirmation(ticketID, details)
			confirmID := c.newIDLocked()
			c.appendLocked(Message{
				ID:         confirmID,
				Author:     AuthorAssistant,
				Body:       body,
				CreatedAt:  c.clockwork.Now(),
				Confidence: 0.95,
				Sentiment:  &Sentiment{Label: "neutral", Score: 0},
				TicketID:   ticketID,
				Typing:     true,
			})

			c.context.WaitingForTicketDetails = false
			c.context.TicketCreated = true
			c.context.LastTicketID = ticketID
			c.persistContextLocked()

			created := CreatedTicket{
				ID:          ticketID,
				Priority:    "Medium",
				Status:      "Open",
				Subject:     truncate(details, 50),
				Description: details,
			}
			c.deferCallback(created)

			c.after(epoch, typingHold(body), func() {
				c.editLocked(confirmID, func(m *Message) { m.Typing = false })
				c.typing = false
			})
		})
	})
}

// runUrgentHandoff is the scripted live-agent flow triggered by an
// urgency keyword after a ticket exists: banner phases, then a
// synthetic Tier 2 agent message referencing the last ticket.
func (c *Conversation) runUrgentHandoff(epoch int) {
	c.locked(epoch, func() {
		c.appendLocked(Message{
			ID:        c.newIDLocked(),
			Author:    AuthorAssistant,
			Body:      "Analyzing escalation request...",
			CreatedAt: c.clockwork.Now(),
			Analyzing: true,
		})
	})

	c.after(epoch, analyzeDelay, func() {
		c.dropAnalyzingLocked()
		ackID := c.newIDLocked()
		c.appendLocked(Message{
			ID:        ackID,
			Author:    AuthorAssistant,
			Body:      "I understand this is urgent. Let me connect you with a live human agent immediately.",
			CreatedAt: c.clockwork.Now(),
			Typing:    true,
		})

		c.after(epoch, ackTypingDelay, func() {
			c.editLocked(ackID, func(m *Message) { m.Typing = false })
			c.escalation = &EscalationStatus{Phase: PhaseSearching, Banner: "Finding available agent..."}

			c.after(epoch, bannerStepDelay, func() {
				c.escalation = &EscalationStatus{Phase: PhaseConnecting, Banner: "Connecting to live agent..."}

				c.after(epoch, bannerStepDelay, func() {
					c.escalation = &EscalationStatus{Phase: PhasePending, Banner: "Agent will message you when online"}

					c.after(epoch, pendingAgentDelay, func() {
						ticketID := c.context.LastTicketID
						if ticketID == "" {
							ticketID = "INC-XXXX"
						}
						c.typing = false
						c.appendLocked(Message{
							ID:     c.newIDLocked(),
							Author: AuthorAgent,
							Body: fmt.Sprintf("Hi! I'm Sarah from Tier 2 Support. I can see you have ticket %s "+
								"and need urgent assistance. I'm here to help you right away. "+
								"Can you tell me more about what's happening?", ticketID),
							CreatedAt: c.clockwork.Now(),
							AgentName: "Sarah",
							AgentTier: "Tier 2",
						})
						c.escalation = &EscalationStatus{Phase: PhaseActive, Banner: "Live agent active - Sarah (Tier 2)"}
						c.context.AgentActive = true
						c.persistContextLocked()
					})
				})
			})
		})
	})
}

// runBackendTurn shows the analyzing placeholder, asks the backend,
// and applies the classified result.
func (c *Conversation) runBackendTurn(epoch int, text string) {
	c.locked(epoch, func() {
		c.appendLocked(Message{
			ID:        c.newIDLocked(),
			Author:    AuthorAssistant,
			Body:      "Analyzing request...",
			CreatedAt: c.clockwork.Now(),
			Analyzing: true,
		})
	})

	c.after(epoch, analyzeDelay, func() {
		c.dropAnalyzingLocked()
		// The backend call runs after the lock is released, on the
		// timer goroutine, so rendering never blocks on the network.
		c.deferred = append(c.deferred, func() {
			result := c.backend.Turn(c.ctx, text)
			c.applyTurn(epoch, result)
		})
	})
}

// applyTurn applies a classified backend response: either the staged
// escalation flow or a context merge plus the assistant message.
func (c *Conversation) applyTurn(epoch int, result TurnResult) {
	if result.Kind == TurnEscalation {
		c.locked(epoch, func() {
			c.typing = false
			c.escalation = &EscalationStatus{Phase: PhaseEscalating, Banner: "Connecting to live agent..."}

			c.after(epoch, bannerStepDelay, func() {
				c.escalation = &EscalationStatus{Phase: PhaseConnected, Banner: "Agent connected: Sarah from Tier 1 Support"}
				ticketID := c.newTicketIDLocked()

				c.after(epoch, connectedDelay, func() {
					c.deferCallback(CreatedTicket{
						ID:        ticketID,
						Priority:  "High",
						Status:    "Open",
						Escalated: true,
					})
					c.appendLocked(Message{
						ID:     c.newIDLocked(),
						Author: AuthorAgent,
						Body: fmt.Sprintf("Hi! I'm Sarah from Tier 2 Support. I've created ticket %s "+
							"and I'm here to help you right away. Can you tell me more about what's happening?", ticketID),
						CreatedAt: c.clockwork.Now(),
						AgentName: "Sarah",
						AgentTier: "Tier 2",
					})
					c.escalation = &EscalationStatus{Phase: PhaseActive, Banner: fmt.Sprintf("Live agent active - Ticket %s created", ticketID)}
					c.context.AgentActive = true
					c.context.LastTicketID = ticketID
					c.persistContextLocked()
				})
			})
		})
		return
	}

	c.locked(epoch, func() {
		if result.Kind == TurnTicketDetailsRequest {
			c.context.WaitingForTicketDetails = true
			c.context.UnresolvedAttempts = 0
		}
		if patch := result.Context; patch != nil {
			if patch.ActiveScriptID != nil {
				c.context.ActiveScriptID = *patch.ActiveScriptID
			}
			if patch.CurrentStepIndex != nil {
				c.context.CurrentStepIndex = *patch.CurrentStepIndex
			}
			if patch.UnresolvedAttempts != nil {
				c.context.UnresolvedAttempts = *patch.UnresolvedAttempts
			}
			if patch.LastTicketID != "" {
				c.context.LastTicketID = patch.LastTicketID
			}
		} else if result.Kind == TurnAnswer && len(result.Options) == 0 {
			// A plain answer with no follow-up options ends any active
			// script.
			c.context.ActiveScriptID = ""
			c.context.CurrentStepIndex = 0
		}
		c.persistContextLocked()

		c.typing = false
		sentiment := result.Sentiment
		messageID := c.newIDLocked()
		c.appendLocked(Message{
			ID:         messageID,
			Author:     AuthorAssistant,
			Body:       result.Body,
			CreatedAt:  c.clockwork.Now(),
			Confidence: result.Confidence,
			Sentiment:  &sentiment,
			Tier:       result.Tier,
			Severity:   result.Severity,
			Guardrail:  result.Guardrail,
			TicketID:   result.TicketID,
			Source:     result.Source,
			Typing:     true,
		})
		c.after(epoch, typingHold(result.Body), func() {
			c.editLocked(messageID, func(m *Message) { m.Typing = false })
		})
	})
}

// ── Locked-section plumbing ──

// locked runs fn under the conversation lock if the epoch still
// matches, then notifies and flushes deferred callbacks.
func (c *Conversation) locked(epoch int, fn func()) {
	c.mu.Lock()
	if c.epoch != epoch {
		c.mu.Unlock()
		return
	}
	fn()
	callbacks := c.deferred
	c.deferred = nil
	c.mu.Unlock()

	c.notify()
	for _, callback := range callbacks {
		callback()
	}
}

// after schedules fn as a locked section once the delay elapses.
func (c *Conversation) after(epoch int, delay time.Duration, fn func()) {
	c.clockwork.AfterFunc(delay, func() {
		c.locked(epoch, fn)
	})
}

func (c *Conversation) deferCallback(created CreatedTicket) {
	if c.onTicketCreated == nil {
		return
	}
	callback := c.onTicketCreated
	c.deferred = append(c.deferred, func() { callback(created) })
}

func (c *Conversation) notify() {
	if c.onChange != nil {
		c.onChange()
	}
}

// ── State mutation helpers, all called with the lock held ──

func (c *Conversation) appendLocked(message Message) {
	c.messages = append(c.messages, message)
	c.persistMessagesLocked()
}

func (c *Conversation) dropAnalyzingLocked() {
	kept := c.messages[:0]
	for _, message := range c.messages {
		if !message.Analyzing {
			kept = append(kept, message)
		}
	}
	c.messages = kept
	c.persistMessagesLocked()
}

func (c *Conversation) editLocked(id string, edit func(*Message)) {
	for i := range c.messages {
		if c.messages[i].ID == id {
			edit(&c.messages[i])
			break
		}
	}
	c.persistMessagesLocked()
}

func (c *Conversation) persistMessagesLocked() {
	c.store.Save(localstore.MessagesFile, c.messages)
}

func (c *Conversation) persistContextLocked() {
	c.store.Save(localstore.ContextFile, c.context)
}

func (c *Conversation) newIDLocked() string {
	c.nextID++
	return fmt.Sprintf("m%d-%d", c.clockwork.Now().UnixMilli(), c.nextID)
}

// newTicketIDLocked synthesizes an incident ID from the clock, INC-
// plus five digits.
func (c *Conversation) newTicketIDLocked() string {
	return fmt.Sprintf("INC-%05d", c.clockwork.Now().UnixMilli()%100000)
}

// ── Text helpers ──

// typingHold is how long a message keeps its typewriter flag: 20ms per
// byte, capped at two seconds.
func typingHold(body string) time.Duration {
	hold := time.Duration(len(body)) * typingPerChar
	if hold > typingHoldMax {
		hold = typingHoldMax
	}
	return hold
}

func ticketConfirmation(ticketID, details string) string {
	return fmt.Sprintf("**Support ticket %s has been created successfully!**\n\n"+
		"**Ticket Details:**\n"+
		"- **ID:** %s\n"+
		"- **Priority:** Medium\n"+
		"- **Status:** Open\n"+
		"- **Description:** %s\n\n"+
		"Our support team will review your ticket and get back to you within 2 hours.",
		ticketID, ticketID, truncate(details, 100))
}

func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}
