// Package sessions implements the stateful coordinators behind each portal
// view: the conversation log, market polling, analytics, profile editing and
// the tab router. All session state is confined to a dispatch.Loop; every
// exported method must be invoked on the loop goroutine (via Post or Do).
package sessions

import (
	"context"
	"strings"

	"github.com/bobmcallan/cryptoai-portal/internal/common"
	"github.com/bobmcallan/cryptoai-portal/internal/interfaces"
	"github.com/bobmcallan/cryptoai-portal/internal/models"
	"github.com/bobmcallan/cryptoai-portal/internal/sessions/dispatch"
)

// ConversationSession owns the ordered message log and the single in-flight
// chat request. At most one chat request is outstanding at any time; while
// one is in flight further submits are ignored, not queued.
type ConversationSession struct {
	loop   *dispatch.Loop
	client interfaces.BackendClient
	logger *common.Logger

	messages []models.Message
	input    string
	busy     bool
}

// NewConversationSession creates a conversation seeded with the greeting turn.
func NewConversationSession(loop *dispatch.Loop, client interfaces.BackendClient, logger *common.Logger) *ConversationSession {
	return &ConversationSession{
		loop:     loop,
		client:   client,
		logger:   logger,
		messages: []models.Message{models.NewAssistantMessage(models.GreetingMessage, "")},
	}
}

// SetInput replaces the draft input buffer.
func (s *ConversationSession) SetInput(text string) {
	s.input = text
}

// Input returns the current draft input buffer.
func (s *ConversationSession) Input() string {
	return s.input
}

// IsBusy reports whether a chat request is in flight.
func (s *ConversationSession) IsBusy() bool {
	return s.busy
}

// Messages returns a copy of the message log in display order.
func (s *ConversationSession) Messages() []models.Message {
	out := make([]models.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Submit sends the draft input as one conversational turn. Empty or
// whitespace-only input is rejected, as is a submit while a request is in
// flight; neither appends a message nor issues a request. On acceptance the
// user turn is appended and the input buffer is cleared immediately,
// regardless of how the request later resolves.
func (s *ConversationSession) Submit() {
	text := strings.TrimSpace(s.input)
	if text == "" || s.busy {
		return
	}

	s.messages = append(s.messages, models.NewUserMessage(text))
	s.input = ""
	s.busy = true

	dispatch.Go(s.loop, func() (*models.ChatReply, error) {
		return s.client.Chat(context.Background(), text)
	}, s.onReply)
}

// onReply processes the chat response on the loop. A transport failure is
// converted into a user-visible fallback turn; it is never retried and never
// surfaced as a raw error.
func (s *ConversationSession) onReply(reply *models.ChatReply, err error) {
	s.busy = false
	if err != nil {
		s.logger.Warn().Err(err).Msg("Chat request failed")
		s.messages = append(s.messages, models.NewAssistantMessage(models.ConnectionFallbackMessage, ""))
		return
	}
	s.messages = append(s.messages, models.NewAssistantMessage(reply.Response, reply.Thought))
}
