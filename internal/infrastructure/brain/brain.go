// Package brain is the placeholder downstream prompt processor. It
// keeps conversational context in the memory store and returns an
// opaque acknowledgement; swapping in a real model backend only needs
// another admission.Responder.
package brain

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/adarsh20n06-web/vetra-server/internal/domain/admission"
)

// Memory is the rolling prompt window the brain reads and extends.
type Memory interface {
	Remember(ctx context.Context, owner, prompt string) error
	Recent(ctx context.Context, owner string) ([]string, error)
}

// Brain implements admission.Responder.
type Brain struct {
	memory Memory
	logger zerolog.Logger
}

var _ admission.Responder = (*Brain)(nil)

// New constructs a Brain. Memory may be nil, in which case responses
// carry no conversational context.
func New(memory Memory, logger zerolog.Logger) *Brain {
	return &Brain{
		memory: memory,
		logger: logger.With().Str("component", "brain").Logger(),
	}
}

// Respond records the prompt in the owner's window and produces the
// answer. Memory failures degrade the answer instead of failing the
// request; admission already audited it.
func (b *Brain) Respond(ctx context.Context, owner, prompt string) (admission.Answer, error) {
	contextSize := 0
	if b.memory != nil {
		if err := b.memory.Remember(ctx, owner, prompt); err != nil {
			b.logger.Warn().Err(err).Msg("failed to record prompt in memory")
		}
		recent, err := b.memory.Recent(ctx, owner)
		if err != nil {
			b.logger.Warn().Err(err).Msg("failed to load recent prompts")
		} else {
			contextSize = len(recent)
		}
	}

	return admission.Answer{
		Text:   fmt.Sprintf("Vetra processed your prompt of %d characters.", len(prompt)),
		Reason: fmt.Sprintf("context window holds %d prompts", contextSize),
	}, nil
}
