package logger

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	mu      sync.Mutex
	topics  []string
	batches [][]AggregatedLogEntry
}

func (p *recordingPublisher) Publish(_ context.Context, topic string, _ []byte, value interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topics = append(p.topics, topic)
	p.batches = append(p.batches, value.([]AggregatedLogEntry))
	return nil
}

func (p *recordingPublisher) snapshot() [][]AggregatedLogEntry {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([][]AggregatedLogEntry(nil), p.batches...)
}

func TestCollector_DeduplicatesAndFlushesOnClose(t *testing.T) {
	pub := &recordingPublisher{}
	c := NewLogCollector(&CollectionConfig{TimeInterval: time.Hour, CountThreshold: 10, Topic: "logs", Publisher: pub})

	for i := 0; i < 5; i++ {
		c.AddLog("error", "backend down", map[string]interface{}{"endpoint": "/market-mood"}, "x.go:1")
	}
	c.AddLog("error", "backend down", map[string]interface{}{"endpoint": "/anomalies"}, "x.go:1")
	assert.Equal(t, 2, c.Pending())

	c.Close()

	batches := pub.snapshot()
	require.Len(t, batches, 1)
	assert.Equal(t, []string{"logs"}, pub.topics)
	counts := map[string]int{}
	for _, e := range batches[0] {
		counts[e.Fields["endpoint"].(string)] = e.Count
	}
	assert.Equal(t, map[string]int{"/market-mood": 5, "/anomalies": 1}, counts)
}

func TestCollector_FlushesAtThreshold(t *testing.T) {
	pub := &recordingPublisher{}
	c := NewLogCollector(&CollectionConfig{TimeInterval: time.Hour, CountThreshold: 2, Topic: "logs", Publisher: pub})
	defer c.Close()

	c.AddLog("warn", "a", nil, "")
	c.AddLog("warn", "b", nil, "")

	assert.Eventually(t, func() bool { return len(pub.snapshot()) == 1 }, time.Second, 10*time.Millisecond)
	assert.Zero(t, c.Pending())
}

func TestLogger_ErrorGoesToCollector(t *testing.T) {
	pub := &recordingPublisher{}
	l := NewNop()
	l.AddCollector(&CollectionConfig{TimeInterval: time.Hour, CountThreshold: 100, Topic: "logs", Publisher: pub})

	l.Info("ignored")
	l.Error("fetch failed", String("endpoint", "/stocks"), Error(errors.New("boom")))
	l.With(String("component", "live")).Warn("slow")
	l.RemoveCollector()

	batches := pub.snapshot()
	require.Len(t, batches, 1)
	assert.Len(t, batches[0], 2)
}
