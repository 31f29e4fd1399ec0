package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	m := New()

	m.CommandHandled("bait", OutcomeOK)
	m.CommandHandled("bait", OutcomeOK)
	m.CommandHandled("debait", OutcomeCooldown)
	m.CooldownRejected("debait")
	m.PersistenceFailed()
	m.SetTrackedUsers(7)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.commands.WithLabelValues("bait", OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.commands.WithLabelValues("debait", OutcomeCooldown)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cooldownRejections.WithLabelValues("debait")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.persistenceFailures))
	assert.Equal(t, 7.0, testutil.ToFloat64(m.trackedUsers))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.CommandHandled("bait", OutcomeOK)
		m.CooldownRejected("bait")
		m.PersistenceFailed()
		m.SetTrackedUsers(1)
	})
}

func TestServerExposesMetrics(t *testing.T) {
	m := New()
	m.CommandHandled("score", OutcomeOK)

	srv := httptest.NewServer(m.NewServer(":0").Handler)
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `baitbot_commands_total{command="score",outcome="ok"} 1`)
}
