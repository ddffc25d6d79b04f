// Package auth issues and validates the short-lived admin tokens used
// by the operator surface.
package auth

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/adarsh20n06-web/vetra-server/internal/config"
)

// ErrBadMasterKey indicates the presented master key does not match.
var ErrBadMasterKey = errors.New("master key mismatch")

// AdminTokenIssuer mints and validates HS256 admin tokens.
type AdminTokenIssuer struct {
	masterKey []byte
	secret    []byte
	ttl       time.Duration
	log       zerolog.Logger
}

// NewAdminTokenIssuer constructs an issuer from config.
func NewAdminTokenIssuer(cfg *config.Config, log zerolog.Logger) *AdminTokenIssuer {
	return &AdminTokenIssuer{
		masterKey: []byte(cfg.AdminMasterKey),
		secret:    []byte(cfg.AdminJWTSecret),
		ttl:       cfg.AdminTokenTTL,
		log:       log.With().Str("component", "admin-auth").Logger(),
	}
}

// Issue exchanges the master key for a signed bearer token.
func (i *AdminTokenIssuer) Issue(masterKey string) (string, time.Time, error) {
	if subtle.ConstantTimeCompare([]byte(masterKey), i.masterKey) != 1 {
		return "", time.Time{}, ErrBadMasterKey
	}

	expiresAt := time.Now().Add(i.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "admin",
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	})

	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Middleware enforces a valid admin token on the routes it wraps.
func (i *AdminTokenIssuer) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c.GetHeader("Authorization"))
		if tokenString == "" {
			abortUnauthorized(c, "missing bearer token")
			return
		}

		token, err := jwt.Parse(tokenString, func(*jwt.Token) (interface{}, error) {
			return i.secret, nil
		},
			jwt.WithValidMethods([]string{"HS256"}),
			jwt.WithSubject("admin"),
		)
		if err != nil || !token.Valid {
			abortUnauthorized(c, "invalid token")
			return
		}

		c.Next()
	}
}

func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": message,
	})
}
