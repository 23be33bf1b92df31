// internal/generator/conversation.go
package generator

import (
	"context"
	"strings"
	"sync"
	"time"

	appErrors "github.com/unclebandit/creatorhub-backend/internal/errors"
	"github.com/unclebandit/creatorhub-backend/internal/ids"
	"github.com/unclebandit/creatorhub-backend/internal/model"
)

// Conversation is the assistant chat of one screen.
type Conversation struct {
	Backend     Backend
	Delay       time.Duration
	Runner      *Runner
	OnGenerated UsageFunc

	mu       sync.Mutex
	messages []model.ChatMessage
}

func NewConversation(backend Backend, greeting string, delay, timeout time.Duration) *Conversation {
	c := &Conversation{Backend: backend, Delay: delay, Runner: NewRunner(timeout)}
	if greeting != "" {
		c.append(greeting, true)
	}
	return c
}

// Send posts the user's message and waits for the bot's reply. The user's
// message stays in the history even when the reply fails.
func (c *Conversation) Send(ctx context.Context, text string) (model.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.ChatMessage{}, appErrors.NewValidation("message", "Please enter a message")
	}
	if err := c.Runner.acquire(); err != nil {
		return model.ChatMessage{}, err
	}
	c.append(text, false)

	reply, err := run(ctx, c.Runner, c.Delay, func(ctx context.Context) (string, error) {
		return c.Backend.Reply(ctx, text)
	})
	if err != nil {
		return model.ChatMessage{}, err
	}
	msg := c.append(reply, true)
	if c.OnGenerated != nil {
		c.OnGenerated(ctx, UsageAssistant, ApproxTokens(reply))
	}
	return msg, nil
}

func (c *Conversation) Messages() []model.ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.ChatMessage, len(c.messages))
	copy(out, c.messages)
	return out
}

func (c *Conversation) append(content string, bot bool) model.ChatMessage {
	msg := model.ChatMessage{ID: ids.New(), Content: content, IsBot: bot, Timestamp: time.Now().UTC()}
	c.mu.Lock()
	c.messages = append(c.messages, msg)
	c.mu.Unlock()
	return msg
}
