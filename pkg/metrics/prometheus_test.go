package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorder(t *testing.T) {
	r := New(prometheus.NewRegistry())

	r.RecordFetch("history", 0.1, nil)
	r.RecordFetch("history", 0.2, errors.New("boom"))
	r.RecordCacheHit("history")
	r.RecordBroadcast("mood", 3)

	assert.Equal(t, 1.0, testutil.ToFloat64(r.fetchTotal.WithLabelValues("history", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.fetchTotal.WithLabelValues("history", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.cacheHits.WithLabelValues("history")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.broadcasts.WithLabelValues("mood")))
	assert.Equal(t, 3.0, testutil.ToFloat64(r.liveClients))
}
