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

func TestRecordAPIRequest(t *testing.T) {
	counter := APIRequestsTotal.WithLabelValues("GET", "/planets/{id}", "404")
	before := testutil.ToFloat64(counter)

	RecordAPIRequest("GET", "/planets/{id}", "404", 3*time.Millisecond)
	RecordAPIRequest("GET", "/planets/{id}", "404", 5*time.Millisecond)

	assert.Equal(t, before+2, testutil.ToFloat64(counter))
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)

	TrackActiveRequest(true)
	TrackActiveRequest(true)
	assert.Equal(t, before+2, testutil.ToFloat64(APIActiveRequests))

	TrackActiveRequest(false)
	TrackActiveRequest(false)
	assert.Equal(t, before, testutil.ToFloat64(APIActiveRequests))
}

func TestRecordLogin(t *testing.T) {
	before := testutil.ToFloat64(LoginAttempts.WithLabelValues("rejected"))
	RecordLogin("rejected")
	assert.Equal(t, before+1, testutil.ToFloat64(LoginAttempts.WithLabelValues("rejected")))
}

func TestHandler_ExposesCollectors(t *testing.T) {
	RecordAPIRequest("POST", "/login", "200", time.Millisecond)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	require.Equal(t, 200, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `http_requests_total{method="POST",route="/login",status="200"}`)
	assert.Contains(t, string(body), "http_request_duration_seconds_bucket")
}
