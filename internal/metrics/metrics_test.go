package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMetrics_IndependentRegistries(t *testing.T) {
	req := require.New(t)
	a, b := New(), New()

	a.MessagesSent.Inc()
	a.MessageReads.WithLabelValues("thread").Inc()

	req.Equal(1.0, testutil.ToFloat64(a.MessagesSent))
	req.Equal(0.0, testutil.ToFloat64(b.MessagesSent))
	req.Equal(1.0, testutil.ToFloat64(a.MessageReads.WithLabelValues("thread")))
}

func TestMetrics_Handler(t *testing.T) {
	req := require.New(t)
	m := New()
	m.HTTPRequests.WithLabelValues("GET", "/messages", "200").Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	req.NoError(err)
	req.Equal(200, rec.Code)
	req.Contains(string(body), `social_http_requests_total{method="GET",route="/messages",status="200"} 1`)
}
