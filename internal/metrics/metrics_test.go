package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	m := New(nil)
	m.Rendered(KindChord)
	m.Rendered(KindChord)
	m.Rendered(KindScale)
	m.Failed(KindScale)
	m.LibraryEvent()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.rendered.WithLabelValues(KindChord)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rendered.WithLabelValues(KindScale)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.failed.WithLabelValues(KindScale)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.syncs))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.Rendered(KindChord)
		m.Failed(KindPage)
		m.LibraryEvent()
	})
}

func TestHandlerExposesSessionsGauge(t *testing.T) {
	m := New(func() int { return 3 })
	m.Rendered(KindPage)

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	s := string(body)
	assert.True(t, strings.Contains(s, "fretwork_sessions_active 3"), s)
	assert.Contains(t, s, `fretwork_diagrams_rendered_total{kind="page"} 1`)
}
