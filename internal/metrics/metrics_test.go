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

func TestRequestStatusClasses(t *testing.T) {
	m := New()
	m.Request("GET", "/item/{id}", 200, 10*time.Millisecond)
	m.Request("GET", "/item/{id}", 404, time.Millisecond)
	m.Request("POST", "/create", 303, time.Millisecond)
	m.Request("GET", "/item/{id}", 500, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/item/{id}", "2xx")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/item/{id}", "4xx")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("POST", "/create", "3xx")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/item/{id}", "5xx")))
}

func TestDomainCounters(t *testing.T) {
	m := New()
	m.ListingCreated(true)
	m.ListingCreated(false)
	m.ListingCreated(false)
	m.PhotoUploaded(false)
	m.PhotoRejected("too_large")
	m.MessageCreated()
	m.EventPublished(true)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.listings.WithLabelValues("true")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.listings.WithLabelValues("false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.uploads.WithLabelValues("error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rejected.WithLabelValues("too_large")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.messages))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.events.WithLabelValues("ok")))
}

func TestHandlerExposesCounters(t *testing.T) {
	m := New()
	m.MessageCreated()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "trznica_contact_messages_total 1")
}
