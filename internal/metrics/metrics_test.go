package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pdrpinto/bestfirst"
	"github.com/pdrpinto/bestfirst/internal/metrics"
	"github.com/pdrpinto/bestfirst/puzzles/anima"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHooks_CountSearch(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	initial, data, err := anima.Parse(" . \nbr.\n b \n\nR 1 1\nB 2 1\nB 1 2")
	require.NoError(t, err)
	result := anima.Solve(initial, data, bestfirst.WithHooks(m.Hooks("anima")))
	require.True(t, result.Found)

	families, err := reg.Gather()
	require.NoError(t, err)
	values := map[string]float64{}
	for _, family := range families {
		for _, metric := range family.GetMetric() {
			switch {
			case metric.GetCounter() != nil:
				values[family.GetName()] += metric.GetCounter().GetValue()
			case metric.GetHistogram() != nil:
				values[family.GetName()] += float64(metric.GetHistogram().GetSampleCount())
			}
		}
	}

	assert.Equal(t, float64(result.Stats.Expanded), values["bestfirst_states_expanded_total"])
	assert.Equal(t, float64(result.Stats.Duplicates), values["bestfirst_states_discarded_total"])
	assert.Equal(t, float64(1), values["bestfirst_solves_total"])
	assert.Equal(t, float64(1), values["bestfirst_solve_duration_seconds"])
	assert.Equal(t, float64(1), values["bestfirst_max_frontier"])
}

func TestHooks_Outcome(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	hooks := m.Hooks("sticky")
	hooks.OnFinish(false, bestfirst.Stats{})
	hooks.OnFinish(true, bestfirst.Stats{})
	hooks.OnFinish(true, bestfirst.Stats{})

	count, err := testutil.GatherAndCount(reg, "bestfirst_solves_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	m.Hooks("anima").OnExpand(bestfirst.ExpandEvent{})

	rec := httptest.NewRecorder()
	metrics.Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `bestfirst_states_expanded_total{domain="anima"} 1`)
}
