package activity

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"
)

type captureSink struct {
	mu      sync.Mutex
	batches [][]Event
	err     error
}

func (c *captureSink) WriteBatch(_ context.Context, events []Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.batches = append(c.batches, append([]Event(nil), events...))
	return c.err
}

func (c *captureSink) all() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []Event
	for _, b := range c.batches {
		out = append(out, b...)
	}
	return out
}

func TestJournalStopDrainsBuffer(t *testing.T) {
	g := NewWithT(t)
	sink := &captureSink{}
	j := NewJournal(Options{FlushInterval: time.Hour}, zap.NewNop(), sink)
	j.Start()

	for i := 0; i < 5; i++ {
		j.Record(Success("Product created", "SKU"))
	}
	j.Stop()

	events := sink.all()
	g.Expect(events).To(HaveLen(5))
	for _, e := range events {
		g.Expect(e.ID).NotTo(BeEmpty())
		g.Expect(e.At.IsZero()).To(BeFalse())
		g.Expect(e.Kind).To(Equal(KindSuccess))
	}
}

func TestJournalFlushesOnBatchSize(t *testing.T) {
	g := NewWithT(t)
	sink := &captureSink{}
	j := NewJournal(Options{BatchSize: 2, FlushInterval: time.Hour}, zap.NewNop(), sink)
	j.Start()
	defer j.Stop()

	j.Record(Info("Signed in", ""))
	j.Record(Info("Signed out", ""))

	g.Eventually(func() int { return len(sink.all()) }).Should(Equal(2))
}

func TestJournalFlushesOnInterval(t *testing.T) {
	g := NewWithT(t)
	sink := &captureSink{}
	j := NewJournal(Options{FlushInterval: 10 * time.Millisecond}, zap.NewNop(), sink)
	j.Start()
	defer j.Stop()

	j.Record(Failure("Failed to load stock", errors.New("boom")))

	g.Eventually(sink.all).Should(HaveLen(1))
	g.Expect(sink.all()[0].Subject).To(Equal("boom"))
}

func TestJournalDropsAfterStop(t *testing.T) {
	g := NewWithT(t)
	sink := &captureSink{}
	j := NewJournal(Options{}, zap.NewNop(), sink)
	j.Start()
	j.Stop()

	j.Record(Success("Store created", "S1"))
	j.Stop()

	g.Expect(sink.all()).To(BeEmpty())
}

func TestJournalFansOutAndSurvivesSinkFailure(t *testing.T) {
	g := NewWithT(t)
	failing := &captureSink{err: errors.New("db down")}
	feed := NewFeed(10)
	j := NewJournal(Options{FlushInterval: time.Hour}, zap.NewNop(), failing, feed)
	j.Start()

	j.Record(Success("Stock updated", "#1"))
	j.Stop()

	g.Expect(failing.all()).To(HaveLen(1))
	g.Expect(feed.Recent(0)).To(HaveLen(1))
}

func TestJournalKeepsExplicitIDAndTime(t *testing.T) {
	g := NewWithT(t)
	sink := &captureSink{}
	j := NewJournal(Options{}, zap.NewNop(), sink)
	j.Start()

	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	j.Record(Event{ID: "fixed", Kind: KindInfo, Title: "Signed in", At: at})
	j.Stop()

	g.Expect(sink.all()).To(ConsistOf(Event{ID: "fixed", Kind: KindInfo, Title: "Signed in", At: at}))
}

func TestJournalMetrics(t *testing.T) {
	g := NewWithT(t)
	m := NewMetrics(prometheus.NewRegistry())
	failing := &captureSink{err: errors.New("db down")}
	j := NewJournal(Options{FlushInterval: time.Hour, Metrics: m}, zap.NewNop(), failing)
	j.Start()

	for i := 0; i < 3; i++ {
		j.Record(Info("Signed in", ""))
	}
	j.Stop()
	j.Record(Info("Signed out", ""))

	g.Expect(testutil.ToFloat64(m.Flushed)).To(Equal(3.0))
	g.Expect(testutil.ToFloat64(m.SinkErrors)).To(Equal(1.0))
	g.Expect(testutil.ToFloat64(m.Dropped.WithLabelValues("stopped"))).To(Equal(1.0))
	g.Expect(testutil.ToFloat64(m.BufferFill)).To(BeZero())
}

func TestJournalOverflowIsCounted(t *testing.T) {
	g := NewWithT(t)
	m := NewMetrics(nil)
	// воркер не запущен: второе событие не влезает в буфер
	j := NewJournal(Options{BufferSize: 1, Metrics: m}, zap.NewNop())

	j.Record(Info("Signed in", ""))
	j.Record(Info("Signed out", ""))

	g.Expect(testutil.ToFloat64(m.Dropped.WithLabelValues("overflow"))).To(Equal(1.0))
	g.Expect(testutil.ToFloat64(m.BufferFill)).To(Equal(1.0))
}
