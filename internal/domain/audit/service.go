package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/adarsh20n06-web/vetra-server/internal/infrastructure/vault"
	"github.com/adarsh20n06-web/vetra-server/internal/utils/platformerrors"
)

// Recorder encrypts and appends audit entries. A write failure is fatal
// for the triggering request: an action that cannot be audited is not
// reported as served.
type Recorder struct {
	repo   Repository
	vault  *vault.Vault
	logger zerolog.Logger
}

// NewRecorder constructs a Recorder.
func NewRecorder(repo Repository, v *vault.Vault, logger zerolog.Logger) *Recorder {
	return &Recorder{
		repo:   repo,
		vault:  v,
		logger: logger.With().Str("component", "audit-recorder").Logger(),
	}
}

// Record seals the metadata and appends one entry with the current
// timestamp. keyID may be nil for pre-authentication events.
func (r *Recorder) Record(ctx context.Context, keyID *string, ownerEmail, endpoint string, metadata map[string]any) error {
	if metadata == nil {
		metadata = map[string]any{}
	}

	ciphertext, err := r.vault.EncryptJSON(metadata)
	if err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal, "seal audit metadata", err, "")
	}

	entry := &Entry{
		ID:         uuid.NewString(),
		KeyID:      keyID,
		OwnerEmail: ownerEmail,
		Endpoint:   endpoint,
		Ciphertext: ciphertext,
		RecordedAt: time.Now(),
	}

	if err := r.repo.Append(ctx, entry); err != nil {
		r.logger.Error().Err(err).Str("endpoint", endpoint).Msg("audit append failed")
		return platformerrors.AsDatabaseError(ctx, err, "append audit entry")
	}

	return nil
}

// Open decrypts an entry's metadata for internal audit tooling. The
// request path never calls this; the core does not read its own writes.
func (r *Recorder) Open(entry *Entry) (map[string]any, error) {
	var metadata map[string]any
	if err := r.vault.Decrypt(entry.Ciphertext, &metadata); err != nil {
		return nil, err
	}
	return metadata, nil
}
