package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/adarsh20n06-web/vetra-server/internal/utils/platformerrors"
)

func TestRequestIDPropagatesToRequestContext(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var fromGin, fromErr string
	router := gin.New()
	router.Use(RequestID())
	router.GET("/", func(c *gin.Context) {
		fromGin = RequestIDFromContext(c)
		pe := platformerrors.NewError(c.Request.Context(), platformerrors.LayerHandler,
			platformerrors.ErrorTypeInternal, "boom", nil, "")
		fromErr = pe.RequestID
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Request-Id", "req-abc")
	router.ServeHTTP(httptest.NewRecorder(), req)

	if fromGin != "req-abc" {
		t.Errorf("gin context request id = %q, want %q", fromGin, "req-abc")
	}
	if fromErr != "req-abc" {
		t.Errorf("error request id = %q, want %q", fromErr, "req-abc")
	}
}

func TestRequestIDGeneratedWhenMissing(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var seen string
	router := gin.New()
	router.Use(RequestID())
	router.GET("/", func(c *gin.Context) {
		seen = RequestIDFromContext(c)
		c.Status(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	if seen == "" {
		t.Fatal("no request id generated")
	}
	if got := rec.Header().Get("X-Request-Id"); got != seen {
		t.Errorf("response header = %q, want %q", got, seen)
	}
}
