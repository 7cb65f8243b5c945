package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	m := New()

	assert.NotNil(t, m.Registry)
	assert.NotNil(t, m.HTTPRequestsTotal)
	assert.NotNil(t, m.HTTPRequestDuration)
	assert.NotNil(t, m.ResolutionsTotal)
	assert.NotNil(t, m.ResolutionConfidence)
	assert.NotNil(t, m.JourneysTotal)
	assert.NotNil(t, m.JourneySearchTime)
	assert.NotNil(t, m.FeedStopsLoaded)
	assert.NotNil(t, m.FeedStopTimesLoaded)
	assert.NotNil(t, m.FeedReloadsTotal)
}

func TestNewWithLogger(t *testing.T) {
	m := NewWithLogger(nil)
	assert.NotNil(t, m)
	assert.Nil(t, m.logger)
}

func TestObserveResolution(t *testing.T) {
	m := New()

	m.ObserveResolution("resolved", 0.92)
	m.ObserveResolution("resolved", 0.82)
	m.ObserveResolution("invalid", 0.15)

	resolved := testutil.ToFloat64(m.ResolutionsTotal.WithLabelValues("resolved"))
	invalid := testutil.ToFloat64(m.ResolutionsTotal.WithLabelValues("invalid"))

	assert.Equal(t, float64(2), resolved)
	assert.Equal(t, float64(1), invalid)
}

func TestObserveJourney(t *testing.T) {
	m := New()

	m.ObserveJourney("DIRECT")
	m.ObserveJourney("DIRECT")
	m.ObserveJourney("NO_SCHEDULE_FOUND")

	direct := testutil.ToFloat64(m.JourneysTotal.WithLabelValues("DIRECT"))
	noSchedule := testutil.ToFloat64(m.JourneysTotal.WithLabelValues("NO_SCHEDULE_FOUND"))

	assert.Equal(t, float64(2), direct)
	assert.Equal(t, float64(1), noSchedule)
}

func TestSetFeedStats(t *testing.T) {
	m := New()

	m.SetFeedStats(120, 4800)
	m.SetFeedStats(130, 5200)

	assert.Equal(t, float64(130), testutil.ToFloat64(m.FeedStopsLoaded))
	assert.Equal(t, float64(5200), testutil.ToFloat64(m.FeedStopTimesLoaded))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.FeedReloadsTotal))
}

func TestHTTPMetrics_RecordRequest(t *testing.T) {
	m := New()

	m.HTTPRequestsTotal.WithLabelValues("GET", "/api/v1/stations", "200").Inc()
	m.HTTPRequestDuration.WithLabelValues("GET", "/api/v1/stations").Observe(0.5)

	got := testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/api/v1/stations", "200"))
	assert.Equal(t, float64(1), got)
}
