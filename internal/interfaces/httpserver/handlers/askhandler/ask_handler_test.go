package askhandler

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestCredentialPrefersAPIKeyHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
	ctx.Request = httptest.NewRequest("POST", "/v1/ask", nil)
	ctx.Request.Header.Set("X-API-Key", "vetra_from_header")
	ctx.Request.Header.Set("Authorization", "Bearer vetra_from_bearer")

	if got := credential(ctx); got != "vetra_from_header" {
		t.Errorf("credential = %q, want X-API-Key value", got)
	}
}

func TestCredentialFallsBackToBearer(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
	ctx.Request = httptest.NewRequest("POST", "/v1/ask", nil)
	ctx.Request.Header.Set("Authorization", "bearer vetra_from_bearer")

	if got := credential(ctx); got != "vetra_from_bearer" {
		t.Errorf("credential = %q, want bearer value", got)
	}
}

func TestCredentialEmptyWhenUnauthenticated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
	ctx.Request = httptest.NewRequest("POST", "/v1/ask", nil)

	if got := credential(ctx); got != "" {
		t.Errorf("credential = %q, want empty", got)
	}

	ctx.Request.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	if got := credential(ctx); got != "" {
		t.Errorf("credential = %q, want empty for non-bearer scheme", got)
	}
}
