package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveBackendRequest(t *testing.T) {
	m := New()
	m.ObserveBackendRequest("login", "ok", 20*time.Millisecond)
	m.ObserveBackendRequest("login", "ok", 30*time.Millisecond)
	m.ObserveBackendRequest("login", "unauthorized", time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.backendRequests.WithLabelValues("login", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.backendRequests.WithLabelValues("login", "unauthorized")))
}

func TestUploadFinished(t *testing.T) {
	m := New()
	m.UploadFinished("done")
	m.UploadFinished("failed")
	m.UploadFinished("done")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.uploads.WithLabelValues("done")))
}

func TestHandler_ExponeMetricas(t *testing.T) {
	m := New()
	m.UploadFinished("done")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `onboarding_document_uploads_total{outcome="done"} 1`)
}
