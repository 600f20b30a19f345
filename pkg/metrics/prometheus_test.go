package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestPrometheusMiddleware_CollectsAndServes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	p := NewPrometheus(NewPrometheusOptions{
		Subsystem: "memberhub_test",
		ReqCntURLLabelMappingFn: func(c *gin.Context) string {
			if fp := c.FullPath(); fp != "" {
				return fp
			}
			return c.Request.URL.Path
		},
	})

	r := gin.New()
	p.Use(r)
	r.GET("/levels/:id", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/levels/7", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	require.Contains(t, body, "memberhub_test_req_total")
	require.Contains(t, body, "memberhub_test_req_dur_ms")
	// The url label carries the route template, not the concrete path.
	require.Contains(t, body, `url="/levels/:id"`)
	require.NotContains(t, body, `url="/levels/7"`)
}

func TestComputeApproximateRequestSize(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/levels", strings.NewReader("0123456789"))
	req.Header.Set("X-Request-ID", "abc")

	// path(7) + method(4) + proto(8) + header name(12) + header value(3) +
	// host(11) + content length(10)
	require.Equal(t, 55, computeApproximateRequestSize(req))
}

func TestMillisecondsSince(t *testing.T) {
	start := time.Now().Add(-250 * time.Millisecond)
	got := millisecondsSince(start)
	require.GreaterOrEqual(t, got, 250.0)
	require.Less(t, got, 10000.0)
}
