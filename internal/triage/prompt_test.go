package triage

import (
	"reflect"
	"testing"

	"github.com/arogya-ai/triage-server/internal/llm"
)

func TestBuildMessagesShape(t *testing.T) {
	history := []HistoryEntry{
		{Sender: "user", Message: "I have a fever"},
		{Sender: "assistant", Message: "How long?"},
	}

	messages := BuildMessages(history, "Two days")

	if len(messages) != 4 {
		t.Fatalf("expected 4 messages, got %d", len(messages))
	}
	if messages[0].Role != llm.RoleSystem {
		t.Errorf("first message role = %q, want system", messages[0].Role)
	}
	if messages[0].Content == "" {
		t.Error("system instruction is empty")
	}
	last := messages[len(messages)-1]
	if last.Role != llm.RoleUser || last.Content != "Two days" {
		t.Errorf("last message = %+v, want new user turn", last)
	}
}

func TestBuildMessagesIsPure(t *testing.T) {
	history := []HistoryEntry{
		{Sender: "user", Message: "I have a fever"},
		{Sender: "ai", Message: "How long?"},
	}

	first := BuildMessages(history, "Two days")
	second := BuildMessages(history, "Two days")

	if !reflect.DeepEqual(first, second) {
		t.Error("identical inputs produced different contexts")
	}
}

func TestBuildMessagesNormalizesLegacySender(t *testing.T) {
	history := []HistoryEntry{
		{Sender: "ai", Message: "How long have you had it?"},
		{Sender: "user", Message: "Two days"},
		{Sender: "bot", Message: "unknown label"},
	}

	messages := BuildMessages(history, "next")

	if messages[1].Role != llm.RoleAssistant {
		t.Errorf("legacy 'ai' sender mapped to %q, want assistant", messages[1].Role)
	}
	if messages[2].Role != llm.RoleUser {
		t.Errorf("user sender mapped to %q, want user", messages[2].Role)
	}
	// Any other label passes through unchanged.
	if messages[3].Role != llm.Role("bot") {
		t.Errorf("unknown sender mapped to %q, want pass-through", messages[3].Role)
	}
}

func TestBuildMessagesEmptyHistory(t *testing.T) {
	messages := BuildMessages(nil, "I have a fever")

	if len(messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(messages))
	}
	if messages[0].Role != llm.RoleSystem || messages[1].Role != llm.RoleUser {
		t.Errorf("unexpected roles %q, %q", messages[0].Role, messages[1].Role)
	}
}
