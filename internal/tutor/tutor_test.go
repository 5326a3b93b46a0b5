package tutor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/pavelanni/tutorhub/internal/model"
	"github.com/pavelanni/tutorhub/internal/tutor/prompts"
)

type fakeClient struct {
	reply string
	err   error
	seen  [][]model.Turn
}

func (f *fakeClient) Chat(_ context.Context, turns []model.Turn) (string, error) {
	copied := make([]model.Turn, len(turns))
	copy(copied, turns)
	f.seen = append(f.seen, copied)
	return f.reply, f.err
}

func TestNewSessionSeedsSystemTurn(t *testing.T) {
	e := NewEngine(&fakeClient{})

	for _, accessible := range []bool{true, false} {
		s := e.NewSession("s1", accessible)
		if s.Status != model.StatusIdle {
			t.Errorf("new session status = %q, want idle", s.Status)
		}
		if len(s.Turns) != 1 || s.Turns[0].Role != model.RoleSystem {
			t.Fatalf("expected exactly one system turn, got %+v", s.Turns)
		}
		if s.Turns[0].Content != prompts.Select(accessible) {
			t.Errorf("system turn does not match template for accessible=%v", accessible)
		}
	}
}

func TestAskAppendsBothTurns(t *testing.T) {
	client := &fakeClient{reply: "The answer is five."}
	e := NewEngine(client)
	s := e.NewSession("s1", true)

	reply, err := e.Ask(context.Background(), s, "What is two plus three?")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if reply != "The answer is five." {
		t.Errorf("reply = %q", reply)
	}
	if len(s.Turns) != 3 {
		t.Fatalf("expected 3 turns (system, user, assistant), got %d", len(s.Turns))
	}
	if s.Turns[1].Role != model.RoleUser || s.Turns[2].Role != model.RoleAssistant {
		t.Errorf("turn roles = %q, %q", s.Turns[1].Role, s.Turns[2].Role)
	}
	if s.Status != model.StatusIdle {
		t.Errorf("status after ask = %q, want idle", s.Status)
	}

	// The collaborator must have seen the full ordered sequence
	// including the new user turn.
	sent := client.seen[0]
	if len(sent) != 2 || sent[0].Role != model.RoleSystem || sent[1].Content != "What is two plus three?" {
		t.Errorf("collaborator saw %+v", sent)
	}
}

func TestAskRollsBackOnFailure(t *testing.T) {
	client := &fakeClient{err: errors.New("connection refused")}
	e := NewEngine(client)
	s := e.NewSession("s1", false)
	before := len(s.Turns)

	_, err := e.Ask(context.Background(), s, "What is 2+3?")
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
	if len(s.Turns) != before {
		t.Errorf("turn count changed on failure: %d -> %d", before, len(s.Turns))
	}
	if s.Status != model.StatusIdle {
		t.Errorf("status after failure = %q, want idle", s.Status)
	}

	// The session stays usable for the next attempt.
	client.err = nil
	client.reply = "ok"
	if _, err := e.Ask(context.Background(), s, "retry"); err != nil {
		t.Fatalf("retry after failure: %v", err)
	}
	if len(s.Turns) != before+2 {
		t.Errorf("expected %d turns after retry, got %d", before+2, len(s.Turns))
	}
}

func TestAskRollsBackOnEmptyReply(t *testing.T) {
	client := &fakeClient{reply: "   "}
	e := NewEngine(client)
	s := e.NewSession("s1", false)

	if _, err := e.Ask(context.Background(), s, "hello"); !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream for empty reply, got %v", err)
	}
	if len(s.Turns) != 1 {
		t.Errorf("expected only the system turn, got %d turns", len(s.Turns))
	}
}

func TestAskRejectsEmptyQuestion(t *testing.T) {
	e := NewEngine(&fakeClient{reply: "x"})
	s := e.NewSession("s1", false)
	if _, err := e.Ask(context.Background(), s, "   "); !errors.Is(err, ErrEmptyQuestion) {
		t.Errorf("expected ErrEmptyQuestion, got %v", err)
	}
}

func TestSystemTurnNeverChanges(t *testing.T) {
	client := &fakeClient{reply: "r"}
	e := NewEngine(client)
	s := e.NewSession("s1", true)
	want := s.Turns[0].Content

	for _, q := range []string{"q1", "q2", "q3"} {
		if _, err := e.Ask(context.Background(), s, q); err != nil {
			t.Fatalf("Ask(%q): %v", q, err)
		}
	}

	systemCount := 0
	for _, turn := range s.Turns {
		if turn.Role == model.RoleSystem {
			systemCount++
		}
	}
	if systemCount != 1 {
		t.Errorf("expected exactly one system turn, got %d", systemCount)
	}
	if s.Turns[0].Content != want {
		t.Error("system turn content changed mid-session")
	}
}

func TestResume(t *testing.T) {
	e := NewEngine(&fakeClient{reply: "r"})

	prior := []model.Turn{
		{Role: model.RoleSystem, Content: "stale system prompt"},
		{Role: model.RoleUser, Content: "earlier question"},
		{Role: model.RoleAssistant, Content: "earlier answer"},
	}
	s := e.Resume("s1", true, prior)

	if len(s.Turns) != 3 {
		t.Fatalf("expected 3 turns, got %d", len(s.Turns))
	}
	if s.Turns[0].Content != prompts.Select(true) {
		t.Error("resume must reseed the system turn from the template, not stored text")
	}
	if s.Turns[1].Content != "earlier question" || s.Turns[2].Content != "earlier answer" {
		t.Errorf("prior turns not preserved: %+v", s.Turns)
	}
	if !strings.HasPrefix(string(s.Turns[0].Role), "system") {
		t.Errorf("first turn role = %q", s.Turns[0].Role)
	}
}
