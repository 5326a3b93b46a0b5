// Package tutor holds the conversational tutoring engine. A session is
// one conversation: a single system turn fixed by the accessibility mode,
// followed by alternating user and assistant turns. Sessions are never
// shared across callers.
package tutor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pavelanni/tutorhub/internal/model"
	"github.com/pavelanni/tutorhub/internal/tutor/prompts"
)

var (
	// ErrUpstream wraps any failure of the language-model collaborator.
	ErrUpstream = errors.New("language model request failed")
	// ErrEmptyQuestion is returned for a blank question.
	ErrEmptyQuestion = errors.New("question is empty")
)

// ChatClient is the language-model collaborator contract: it consumes the
// full ordered turn sequence and returns a single reply.
type ChatClient interface {
	Chat(ctx context.Context, turns []model.Turn) (string, error)
}

// Session is one tutoring conversation. The accessibility mode is fixed
// at creation and determines the system turn, which is always first and
// never changes.
type Session struct {
	ID         string
	Accessible bool
	Status     model.SessionStatus
	Turns      []model.Turn
}

// Engine runs tutoring conversations against a ChatClient.
type Engine struct {
	client ChatClient
}

// NewEngine creates an engine backed by the given collaborator.
func NewEngine(client ChatClient) *Engine {
	return &Engine{client: client}
}

// NewSession creates an idle session seeded with the system prompt for
// the given accessibility mode.
func (e *Engine) NewSession(id string, accessible bool) *Session {
	return &Session{
		ID:         id,
		Accessible: accessible,
		Status:     model.StatusIdle,
		Turns: []model.Turn{{
			SessionID: id,
			Role:      model.RoleSystem,
			Content:   prompts.Select(accessible),
			CreatedAt: time.Now(),
		}},
	}
}

// Resume rebuilds a session from persisted turns. If the stored turns do
// not start with a system turn the session is reseeded, so a session is
// never sent upstream without its formatting instructions.
func (e *Engine) Resume(id string, accessible bool, turns []model.Turn) *Session {
	s := e.NewSession(id, accessible)
	for _, t := range turns {
		if t.Role == model.RoleSystem {
			continue
		}
		s.Turns = append(s.Turns, t)
	}
	return s
}

// Ask appends the question as a user turn, sends the full conversation to
// the collaborator, and appends the reply as an assistant turn. On any
// collaborator failure the user turn is rolled back so the session stays
// consistent for the next attempt.
func (e *Engine) Ask(ctx context.Context, s *Session, question string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", ErrEmptyQuestion
	}

	s.Turns = append(s.Turns, model.Turn{
		SessionID: s.ID,
		Role:      model.RoleUser,
		Content:   question,
		CreatedAt: time.Now(),
	})
	s.Status = model.StatusAwaitingReply

	reply, err := e.client.Chat(ctx, s.Turns)
	if err != nil || strings.TrimSpace(reply) == "" {
		s.Turns = s.Turns[:len(s.Turns)-1]
		s.Status = model.StatusIdle
		if err == nil {
			err = errors.New("empty reply")
		}
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	s.Turns = append(s.Turns, model.Turn{
		SessionID: s.ID,
		Role:      model.RoleAssistant,
		Content:   reply,
		CreatedAt: time.Now(),
	})
	s.Status = model.StatusIdle
	return reply, nil
}
