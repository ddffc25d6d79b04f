package brain

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

type memStub struct {
	prompts map[string][]string
	fail    bool
}

func (m *memStub) Remember(_ context.Context, owner, prompt string) error {
	if m.fail {
		return errors.New("redis down")
	}
	m.prompts[owner] = append([]string{prompt}, m.prompts[owner]...)
	return nil
}

func (m *memStub) Recent(_ context.Context, owner string) ([]string, error) {
	if m.fail {
		return nil, errors.New("redis down")
	}
	return m.prompts[owner], nil
}

func TestRespondExtendsMemory(t *testing.T) {
	mem := &memStub{prompts: map[string][]string{}}
	b := New(mem, zerolog.Nop())

	answer, err := b.Respond(context.Background(), "alice@example.com", "hello there")
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}
	if !strings.Contains(answer.Text, "11 characters") {
		t.Errorf("answer = %q", answer.Text)
	}
	if len(mem.prompts["alice@example.com"]) != 1 {
		t.Errorf("prompt not recorded")
	}
	if !strings.Contains(answer.Reason, "1 prompts") {
		t.Errorf("reason = %q", answer.Reason)
	}
}

func TestRespondSurvivesMemoryOutage(t *testing.T) {
	b := New(&memStub{fail: true}, zerolog.Nop())
	if _, err := b.Respond(context.Background(), "alice@example.com", "hello"); err != nil {
		t.Fatalf("Respond with failing memory: %v", err)
	}
}

func TestRespondWithoutMemory(t *testing.T) {
	b := New(nil, zerolog.Nop())
	answer, err := b.Respond(context.Background(), "alice@example.com", "hello")
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}
	if !strings.Contains(answer.Reason, "0 prompts") {
		t.Errorf("reason = %q", answer.Reason)
	}
}
