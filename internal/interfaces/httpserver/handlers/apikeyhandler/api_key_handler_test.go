package apikeyhandler

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/adarsh20n06-web/vetra-server/internal/domain/apikey"
)

func TestKeyStatus(t *testing.T) {
	now := time.Now()
	revoked := now.Add(-time.Hour)

	cases := []struct {
		name string
		key  apikey.APIKey
		want string
	}{
		{"active", apikey.APIKey{ExpiresAt: now.Add(time.Hour), MaxUses: 10}, "active"},
		{"revoked", apikey.APIKey{ExpiresAt: now.Add(time.Hour), MaxUses: 10, RevokedAt: &revoked}, "revoked"},
		{"expired", apikey.APIKey{ExpiresAt: now.Add(-time.Minute), MaxUses: 10}, "expired"},
		{"exhausted", apikey.APIKey{ExpiresAt: now.Add(time.Hour), MaxUses: 10, Uses: 10}, "exhausted"},
		{"revoked wins over expired", apikey.APIKey{ExpiresAt: now.Add(-time.Minute), MaxUses: 10, RevokedAt: &revoked}, "revoked"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := keyStatus(&tc.key); got != tc.want {
				t.Errorf("keyStatus = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestOwnerEmailPrefersGatewayHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("POST", "/v1/auth/keys", nil)

	if got := ownerEmail(c, "body@example.com"); got != "body@example.com" {
		t.Errorf("ownerEmail = %q, want fallback", got)
	}

	c.Request.Header.Set("X-User-Email", "gateway@example.com")
	if got := ownerEmail(c, "body@example.com"); got != "gateway@example.com" {
		t.Errorf("ownerEmail = %q, want header value", got)
	}
}

func TestToResponseOmitsSecretByDefault(t *testing.T) {
	key := apikey.APIKey{ID: "k1", Suffix: "ab12", ExpiresAt: time.Now().Add(time.Hour), MaxUses: 5}

	if resp := toResponse(&key, ""); resp.Key != "" {
		t.Errorf("unexpected key material in list response: %q", resp.Key)
	}
	if resp := toResponse(&key, "vetra_secret"); resp.Key != "vetra_secret" {
		t.Errorf("create response should carry the plaintext once")
	}
}
