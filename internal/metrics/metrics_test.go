package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveGenerated(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveGenerated(12, true, false)
	m.ObserveGenerated(12, true, false)
	m.ObserveGenerated(8, false, false)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.generated.WithLabelValues("true", "false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.generated.WithLabelValues("false", "false")))

	expected := `
# HELP passgen_password_length Length of generated passwords.
# TYPE passgen_password_length histogram
passgen_password_length_bucket{le="6"} 0
passgen_password_length_bucket{le="8"} 1
passgen_password_length_bucket{le="12"} 3
passgen_password_length_bucket{le="16"} 3
passgen_password_length_bucket{le="24"} 3
passgen_password_length_bucket{le="32"} 3
passgen_password_length_bucket{le="64"} 3
passgen_password_length_bucket{le="100"} 3
passgen_password_length_bucket{le="256"} 3
passgen_password_length_bucket{le="1024"} 3
passgen_password_length_bucket{le="+Inf"} 3
passgen_password_length_sum 32
passgen_password_length_count 3
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "passgen_password_length"))
}

func TestObserveFailureAndSessions(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveFailure("invalid_configuration")
	m.SessionOpened()
	m.SessionOpened()
	m.SessionOpened()
	m.SessionClosed()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.failures.WithLabelValues("invalid_configuration")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.sessions))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveGenerated(8, false, false)
		m.ObserveFailure("x")
		m.SessionOpened()
		m.SessionClosed()
	})
}
