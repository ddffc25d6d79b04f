// Package admission runs the per-request pipeline: firewall check,
// credential verification with quota consumption, audit write, forward
// to the downstream processor. The first failure is terminal and leaves
// no partial side effects behind it.
package admission

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/adarsh20n06-web/vetra-server/internal/domain/firewall"
)

// State names the stages a request moves through.
type State string

const (
	StateReceived           State = "received"
	StateFirewallChecked    State = "firewall_checked"
	StateCredentialVerified State = "credential_verified"
	StateAudited            State = "audited"
	StateForwarded          State = "forwarded"
	StateRejected           State = "rejected"
)

// ErrMissingCredential indicates the request carried no bearer credential.
var ErrMissingCredential = errors.New("missing credential")

// FirewallError carries the firewall decision for a rejected prompt.
type FirewallError struct {
	Decision firewall.Decision
}

func (e *FirewallError) Error() string {
	return fmt.Sprintf("prompt rejected by firewall: %s", e.Decision.Reason)
}

// Request is the inbound boundary consumed from the routing layer.
type Request struct {
	RemoteAddr string
	Credential string
	Prompt     string
	Endpoint   string
	// TrustedOwner is set by deployments where the outer session layer
	// already established the caller's identity.
	TrustedOwner string
}

// Identity is a resolved caller. KeyID is nil when identity came from
// outside the credential store.
type Identity struct {
	OwnerEmail string
	KeyID      *string
}

// IdentityResolver resolves caller identity from a request. Resolving
// may consume quota, so it runs only after the firewall admits the
// prompt.
type IdentityResolver interface {
	Resolve(ctx context.Context, req Request) (Identity, error)
}

// Auditor records an admitted request. A failure here fails the request.
type Auditor interface {
	Record(ctx context.Context, keyID *string, ownerEmail, endpoint string, metadata map[string]any) error
}

// Answer is the downstream processor's opaque output.
type Answer struct {
	Text   string
	Reason string
}

// Responder is the downstream prompt processor. Its behavior is not part
// of this core.
type Responder interface {
	Respond(ctx context.Context, owner, prompt string) (Answer, error)
}

// Result is returned for an admitted, audited, forwarded request.
type Result struct {
	OwnerEmail string
	KeyID      *string
	Answer     Answer
}

// Controller orchestrates one admission pipeline per request.
type Controller struct {
	firewall  *firewall.Firewall
	resolver  IdentityResolver
	auditor   Auditor
	responder Responder
	logger    zerolog.Logger
}

// NewController constructs a Controller.
func NewController(fw *firewall.Firewall, resolver IdentityResolver, auditor Auditor, responder Responder, logger zerolog.Logger) *Controller {
	return &Controller{
		firewall:  fw,
		resolver:  resolver,
		auditor:   auditor,
		responder: responder,
		logger:    logger.With().Str("component", "admission-controller").Logger(),
	}
}

// Admit runs the pipeline. Firewall rejections cost no quota and leave
// no audit trace; credential failures leave no audit trace; an audit
// write failure aborts the request even though quota was consumed.
func (c *Controller) Admit(ctx context.Context, req Request) (*Result, error) {
	state := StateReceived

	decision := c.firewall.Check(req.Prompt)
	if !decision.Admitted {
		c.reject(state, req, string(decision.Reason))
		return nil, &FirewallError{Decision: decision}
	}
	state = StateFirewallChecked

	identity, err := c.resolver.Resolve(ctx, req)
	if err != nil {
		c.reject(state, req, err.Error())
		return nil, err
	}
	state = StateCredentialVerified

	metadata := map[string]any{
		"prompt_len":  len(req.Prompt),
		"client_addr": req.RemoteAddr,
	}
	if err := c.auditor.Record(ctx, identity.KeyID, identity.OwnerEmail, req.Endpoint, metadata); err != nil {
		c.reject(state, req, "audit write failed")
		return nil, err
	}
	state = StateAudited

	answer, err := c.responder.Respond(ctx, identity.OwnerEmail, req.Prompt)
	if err != nil {
		c.reject(state, req, "downstream processor failed")
		return nil, err
	}

	c.logger.Debug().
		Str("state", string(StateForwarded)).
		Str("endpoint", req.Endpoint).
		Msg("request admitted")

	return &Result{
		OwnerEmail: identity.OwnerEmail,
		KeyID:      identity.KeyID,
		Answer:     answer,
	}, nil
}

func (c *Controller) reject(last State, req Request, why string) {
	c.logger.Info().
		Str("state", string(StateRejected)).
		Str("last_state", string(last)).
		Str("endpoint", req.Endpoint).
		Str("reason", why).
		Msg("request rejected")
}
