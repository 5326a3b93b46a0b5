package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pavelanni/tutorhub/internal/model"
)

// fakeCompletionServer speaks just enough of the chat completion API to
// capture the request and return a canned reply.
func fakeCompletionServer(t *testing.T, reply string, gotMsgs *[]map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Messages []map[string]string `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		*gotMsgs = req.Messages

		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": reply}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestChatMapsRolesAndReturnsReply(t *testing.T) {
	var got []map[string]string
	srv := fakeCompletionServer(t, "Two, plus three, equals five.", &got)

	c := New(srv.URL, "test-key", "test-model")
	turns := []model.Turn{
		{Role: model.RoleSystem, Content: "be helpful"},
		{Role: model.RoleUser, Content: "what is two plus three?"},
		{Role: model.RoleAssistant, Content: "five"},
		{Role: model.RoleUser, Content: "and four plus four?"},
	}

	reply, err := c.Chat(context.Background(), turns)
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if reply != "Two, plus three, equals five." {
		t.Errorf("reply = %q", reply)
	}

	wantRoles := []string{"system", "user", "assistant", "user"}
	if len(got) != len(wantRoles) {
		t.Fatalf("sent %d messages, want %d", len(got), len(wantRoles))
	}
	for i, m := range got {
		if m["role"] != wantRoles[i] {
			t.Errorf("message %d role = %q, want %q", i, m["role"], wantRoles[i])
		}
	}
}

func TestChatErrorOnUnreachableEndpoint(t *testing.T) {
	c := New("http://127.0.0.1:1", "key", "m")
	if _, err := c.Chat(context.Background(), []model.Turn{{Role: model.RoleUser, Content: "hi"}}); err == nil {
		t.Fatal("expected error from unreachable endpoint")
	}
}

func TestChatErrorOnNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices": []}`))
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL, "key", "m")
	if _, err := c.Chat(context.Background(), []model.Turn{{Role: model.RoleUser, Content: "hi"}}); err == nil {
		t.Fatal("expected error when no choices returned")
	}
}
