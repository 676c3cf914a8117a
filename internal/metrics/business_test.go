package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertMetricLine matches a Prometheus sample by name, a partial label
// pattern and value. The exporter may add scope labels.
func assertMetricLine(t *testing.T, output, name, labels, value string) {
	t.Helper()
	assert.Regexp(t, name+`\{[^}]*`+labels+`[^}]*\} `+value, output)
}

func scrape(t *testing.T, provider *Provider) string {
	t.Helper()
	w := httptest.NewRecorder()
	provider.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, StatusSuccess, StatusOf(nil))
	assert.Equal(t, StatusError, StatusOf(errors.New("boom")))
}

func TestBusinessMetrics(t *testing.T) {
	provider, err := NewProvider()
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, provider.Shutdown(context.Background())) })

	bm, err := NewBusinessMetrics(provider.MeterProvider(), "gymbuddy_test")
	require.NoError(t, err)

	ctx := context.Background()
	bm.RecordOperation(ctx, "auth", "login", StatusSuccess)
	bm.RecordOperation(ctx, "auth", "login", StatusSuccess)
	bm.RecordOperation(ctx, "auth", "login", StatusError)
	bm.RecordOperation(ctx, "users", "register", StatusSuccess)
	bm.RecordDuration(ctx, "auth", "login", 40*time.Millisecond, StatusSuccess)
	bm.RecordDuration(ctx, "auth", "login", 60*time.Millisecond, StatusSuccess)

	output := scrape(t, provider)

	assertMetricLine(t, output, `gymbuddy_test_operations_total`,
		`domain="auth".*operation="login".*status="success"`, `2`)
	assertMetricLine(t, output, `gymbuddy_test_operations_total`,
		`domain="auth".*operation="login".*status="error"`, `1`)
	assertMetricLine(t, output, `gymbuddy_test_operations_total`,
		`domain="users".*operation="register".*status="success"`, `1`)
	assertMetricLine(t, output, `gymbuddy_test_operation_duration_seconds_count`,
		`domain="auth".*operation="login".*status="success"`, `2`)
}

func TestNoOpBusinessMetrics(t *testing.T) {
	bm := NewNoOpBusinessMetrics()
	assert.NotPanics(t, func() {
		bm.RecordOperation(context.Background(), "auth", "login", StatusError)
		bm.RecordDuration(context.Background(), "auth", "login", time.Second, StatusError)
	})
}
