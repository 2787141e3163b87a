package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertBizMetricLine checks that the Prometheus output contains a business
// metric line carrying every given label and the value. The exporter sorts
// labels alphabetically and interleaves its own otel_scope_* labels, so each
// label is matched independently within the same label set.
func assertBizMetricLine(t *testing.T, output, name, value string, labels ...string) {
	t.Helper()
	pattern := name + `\{`
	for _, label := range labels {
		pattern += `[^}]*` + regexp.QuoteMeta(label)
	}
	pattern += `[^}]*\} ` + value
	assert.Regexp(t, pattern, output)
}

func scrapeMetrics(t *testing.T, provider *Provider) string {
	t.Helper()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	provider.Handler().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}

func TestNewBusinessMetrics(t *testing.T) {
	provider, err := NewProvider("test_app")
	require.NoError(t, err)

	businessMetrics, err := NewBusinessMetrics(provider.MeterProvider(), "test_app")

	require.NoError(t, err)
	assert.NotNil(t, businessMetrics)
}

func TestBusinessMetrics_RecordOperation(t *testing.T) {
	provider, err := NewProvider("test_app")
	require.NoError(t, err)

	bm, err := NewBusinessMetrics(provider.MeterProvider(), "test_app")
	require.NoError(t, err)

	bm.RecordOperation(context.Background(), "vault", "item_create", "success")
	bm.RecordOperation(context.Background(), "vault", "field_decrypt_fallback", "fallback")
	bm.RecordOperation(context.Background(), "sharing", "permission_grant", "error")

	output := scrapeMetrics(t, provider)
	assertBizMetricLine(t, output,
		"test_app_operations_total", "1",
		`domain="vault"`, `operation="item_create"`, `status="success"`,
	)
	assertBizMetricLine(t, output,
		"test_app_operations_total", "1",
		`domain="vault"`, `operation="field_decrypt_fallback"`, `status="fallback"`,
	)
}

func TestBusinessMetrics_RecordDuration(t *testing.T) {
	provider, err := NewProvider("test_app")
	require.NoError(t, err)

	bm, err := NewBusinessMetrics(provider.MeterProvider(), "test_app")
	require.NoError(t, err)

	bm.RecordDuration(context.Background(), "vault", "item_get", 25*time.Millisecond, "success")

	output := scrapeMetrics(t, provider)
	assert.Contains(t, output, "test_app_operation_duration_seconds")
}

func TestNewNoOpBusinessMetrics(t *testing.T) {
	bm := NewNoOpBusinessMetrics()
	require.NotNil(t, bm)

	// Should not panic
	bm.RecordOperation(context.Background(), "vault", "item_create", "success")
	bm.RecordDuration(context.Background(), "vault", "item_create", time.Second, "success")
}
