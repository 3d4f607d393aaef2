package queue

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/smartcare/clinic-api/internal/core/domain"
)

type recordingSink struct {
	mu     sync.Mutex
	events []domain.AuditEvent
	err    error
}

func (s *recordingSink) Write(_ context.Context, ev domain.AuditEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.events = append(s.events, ev)
	return nil
}

func (s *recordingSink) snapshot() []domain.AuditEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.AuditEvent(nil), s.events...)
}

func TestDispatcher_DeliversToAllSinksInActorOrder(t *testing.T) {
	primary := &recordingSink{}
	mirror := &recordingSink{}
	d := NewDispatcher(3, zerolog.Nop(), primary, mirror)
	d.Start(context.Background())

	for i := 0; i < 50; i++ {
		actor := fmt.Sprintf("actor-%d", i%5)
		d.Record(domain.AuditEvent{Actor: actor, Action: domain.AuditLoginSucceeded, EntityID: fmt.Sprint(i), At: time.Now()})
	}
	d.Close()

	for _, sink := range []*recordingSink{primary, mirror} {
		got := sink.snapshot()
		if len(got) != 50 {
			t.Fatalf("expected 50 events, got %d", len(got))
		}
		last := map[string]int{}
		for _, ev := range got {
			var n int
			_, _ = fmt.Sscan(ev.EntityID, &n)
			if prev, ok := last[ev.Actor]; ok && n < prev {
				t.Fatalf("events for %s out of order: %d after %d", ev.Actor, n, prev)
			}
			last[ev.Actor] = n
		}
	}
	if d.Dropped() != 0 {
		t.Fatalf("expected no drops, got %d", d.Dropped())
	}
}

func TestDispatcher_DropsWhenFull(t *testing.T) {
	sink := &recordingSink{}
	d := NewDispatcher(1, zerolog.Nop(), sink)

	// workers not started: the single channel fills up
	for i := 0; i < channelBuffer+3; i++ {
		d.Record(domain.AuditEvent{Actor: "admin", Action: domain.AuditRecordDeleted})
	}
	if d.Dropped() != 3 {
		t.Fatalf("expected 3 dropped events, got %d", d.Dropped())
	}

	d.Start(context.Background())
	d.Close()
	if got := len(sink.snapshot()); got != channelBuffer {
		t.Fatalf("expected %d delivered events, got %d", channelBuffer, got)
	}
}

func TestDispatcher_RecordAfterCloseIsDropped(t *testing.T) {
	d := NewDispatcher(2, zerolog.Nop())
	d.Start(context.Background())
	d.Close()
	d.Close()

	d.Record(domain.AuditEvent{Actor: "late"})
	if d.Dropped() != 1 {
		t.Fatalf("expected the late event to be dropped, got %d", d.Dropped())
	}
}

func TestDispatcher_SinkErrorDoesNotStopOtherSinks(t *testing.T) {
	broken := &recordingSink{err: errors.New("mongo down")}
	healthy := &recordingSink{}
	d := NewDispatcher(1, zerolog.Nop(), broken, healthy)
	d.Start(context.Background())

	d.Record(domain.AuditEvent{Actor: "drrao", Action: domain.AuditPrescriptionWritten})
	d.Close()

	if got := len(healthy.snapshot()); got != 1 {
		t.Fatalf("expected healthy sink to receive the event, got %d", got)
	}
}
