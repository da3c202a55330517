// Package chat holds the foreground state machine: per-provider message
// histories, the pending-response flag and scroll position. It owns no
// terminal state and does no networking; replies come from a pluggable
// Responder.
package chat

import (
	"fmt"
	"time"
)

// Role distinguishes who wrote a message.
type Role int

const (
	RoleUser Role = iota
	RoleAssistant
)

// Message is one entry in a conversation. System messages are status
// notices shown inline but excluded from the history handed to a
// Responder.
type Message struct {
	Role    Role
	Content string
	System  bool
}

// Responder produces an assistant reply for a conversation. It runs off
// the UI goroutine; the result comes back through the render loop's
// message pump. Network-backed provider clients plug in here.
type Responder func(p Provider, history []Message) (string, error)

// Chat tracks the conversations for every provider plus the active one.
type Chat struct {
	provider  Provider
	histories map[Provider][]Message
	scroll    int
	streaming bool
}

func New(p Provider) *Chat {
	return &Chat{
		provider:  p,
		histories: make(map[Provider][]Message),
	}
}

func (c *Chat) Provider() Provider { return c.provider }

// Streaming reports whether a reply is pending for the active provider.
func (c *Chat) Streaming() bool { return c.streaming }

// Scroll returns the index of the first visible message.
func (c *Chat) Scroll() int { return c.scroll }

// Messages returns the active provider's conversation.
func (c *Chat) Messages() []Message {
	return c.histories[c.provider]
}

func (c *Chat) append(m Message) {
	c.histories[c.provider] = append(c.histories[c.provider], m)
}

func (c *Chat) appendSystem(content string) {
	c.append(Message{Role: RoleAssistant, Content: content, System: true})
}

// Submit records the user's line and marks a reply as pending. It returns
// the history to hand to a Responder, with system notices filtered out.
func (c *Chat) Submit(content string) []Message {
	c.append(Message{Role: RoleUser, Content: content})
	c.streaming = true
	c.scrollToEnd()

	msgs := c.Messages()
	history := make([]Message, 0, len(msgs))
	for _, m := range msgs {
		if !m.System {
			history = append(history, m)
		}
	}
	return history
}

// Reply records the assistant's answer, or an inline error notice, and
// clears the pending flag.
func (c *Chat) Reply(content string, err error) {
	c.streaming = false
	if err != nil {
		c.appendSystem(fmt.Sprintf("Error: %v", err))
		return
	}
	c.append(Message{Role: RoleAssistant, Content: content})
	c.scrollToEnd()
}

// SwitchProvider cycles to the next provider, keeping every conversation
// intact. An in-flight reply for the old provider is abandoned.
func (c *Chat) SwitchProvider() Provider {
	c.streaming = false
	c.provider = c.provider.Next()
	c.scroll = 0
	c.appendSystem("Switched to " + c.provider.Name())
	return c.provider
}

// Clear wipes the active provider's conversation.
func (c *Chat) Clear() {
	delete(c.histories, c.provider)
	c.scroll = 0
	c.streaming = false
}

// ScrollUp moves the view up to n messages.
func (c *Chat) ScrollUp(n int) {
	c.scroll -= n
	if c.scroll < 0 {
		c.scroll = 0
	}
}

// ScrollDown moves the view down to n messages.
func (c *Chat) ScrollDown(n int) {
	c.scroll += n
	c.clampScroll()
}

func (c *Chat) scrollToEnd() {
	c.scroll = len(c.Messages()) - 1
	if c.scroll < 0 {
		c.scroll = 0
	}
}

func (c *Chat) clampScroll() {
	last := len(c.Messages()) - 1
	if last < 0 {
		last = 0
	}
	if c.scroll > last {
		c.scroll = last
	}
}

// CannedResponder returns a local, network-free Responder that
// acknowledges the prompt after a short delay. It stands in for the real
// provider clients so the app runs without credentials.
func CannedResponder(delay time.Duration) Responder {
	return func(p Provider, history []Message) (string, error) {
		time.Sleep(delay)
		last := ""
		if len(history) > 0 {
			last = history[len(history)-1].Content
		}
		return fmt.Sprintf("%s received: %q. Wire a real provider client into chat.Responder to get actual answers.",
			p.Name(), last), nil
	}
}
