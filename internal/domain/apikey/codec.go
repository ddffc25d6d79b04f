package apikey

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const (
	secretBytes   = 32
	lookupTagHex  = 12
	defaultPrefix = "vetra"
)

// Codec generates bearer secrets and derives the values stored for them:
// a salted bcrypt hash and a short non-secret lookup tag.
type Codec struct {
	prefix string
	cost   int
}

// NewCodec constructs a Codec. An empty prefix falls back to the default;
// a cost outside bcrypt's range falls back to bcrypt.DefaultCost.
func NewCodec(prefix string, cost int) *Codec {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = defaultPrefix
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Codec{prefix: prefix, cost: cost}
}

// Prefix returns the deployment-wide key prefix, without separator.
func (c *Codec) Prefix() string {
	return c.prefix
}

// Generate returns a new plaintext bearer secret: the deployment prefix
// followed by 256 bits of URL-safe randomness.
func (c *Codec) Generate() (string, error) {
	buf := make([]byte, secretBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate key: %w", err)
	}
	return fmt.Sprintf("%s_%s", c.prefix, base64.RawURLEncoding.EncodeToString(buf)), nil
}

// HasPrefix reports whether plaintext is structurally a key of this
// deployment. Used as a cheap pre-filter before any lookup.
func (c *Codec) HasPrefix(plaintext string) bool {
	return strings.HasPrefix(plaintext, c.prefix+"_")
}

// Hash applies the salted one-way function. The output embeds salt and
// cost for later verification.
func (c *Codec) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), c.cost)
	if err != nil {
		return "", fmt.Errorf("hash key: %w", err)
	}
	return string(hashed), nil
}

// Verify compares plaintext against a stored hash. Malformed hashes
// verify as false rather than erroring.
func (c *Codec) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

// LookupTag derives a short non-secret index value from the plaintext.
// The tag narrows candidates before the expensive bcrypt probe; it is
// truncated far below credential strength so a stored tag cannot stand
// in for verification.
func (c *Codec) LookupTag(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])[:lookupTagHex]
}
