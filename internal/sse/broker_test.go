package sse

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestSubscribeAndPublish(t *testing.T) {
	b := NewBroker(time.Second)
	defer b.Close()

	ch := b.Subscribe()
	if n := b.ClientCount(); n != 1 {
		t.Fatalf("client count = %d, want 1", n)
	}

	b.Publish(Event{Type: "test.ping", Data: map[string]string{"k": "v"}})

	select {
	case msg := <-ch:
		got := string(msg)
		if !strings.Contains(got, "event: test.ping") || !strings.Contains(got, `"k":"v"`) {
			t.Errorf("message = %q", got)
		}
	case <-time.After(time.Second):
		t.Fatal("no event received")
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	b := NewBroker(time.Second)
	defer b.Close()

	ch := b.Subscribe()
	b.Unsubscribe(ch)

	select {
	case _, ok := <-ch:
		if ok {
			t.Error("expected closed channel")
		}
	case <-time.After(time.Second):
		t.Fatal("channel not closed after unsubscribe")
	}
	if n := b.ClientCount(); n != 0 {
		t.Errorf("client count = %d, want 0", n)
	}
}

func TestNoteEventAndGraphThrottle(t *testing.T) {
	b := NewBroker(time.Hour)
	defer b.Close()

	ch := b.Subscribe()

	b.PublishNoteEvent("updated", "a.md")
	first := recvEvents(t, ch, 2)
	if !strings.Contains(first[0], "event: note.updated") || !strings.Contains(first[0], "a.md") {
		t.Errorf("first = %q", first[0])
	}
	if !strings.Contains(first[1], "event: graph.updated") {
		t.Errorf("second = %q", first[1])
	}

	// Within the throttle window only the note event is broadcast.
	b.PublishNoteEvent("deleted", "b.md")
	second := recvEvents(t, ch, 1)
	if !strings.Contains(second[0], "event: note.deleted") {
		t.Errorf("got %q", second[0])
	}
	select {
	case msg := <-ch:
		t.Errorf("unexpected extra event %q", msg)
	case <-time.After(100 * time.Millisecond):
	}
}

func recvEvents(t *testing.T, ch chan []byte, n int) []string {
	t.Helper()
	out := make([]string, 0, n)
	for len(out) < n {
		select {
		case msg := <-ch:
			out = append(out, string(msg))
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for event %d of %d", len(out)+1, n)
		}
	}
	return out
}

func TestCloseClosesSubscribersAndStopsOperations(t *testing.T) {
	b := NewBroker(time.Second)
	ch := b.Subscribe()

	b.Close()

	select {
	case _, ok := <-ch:
		if ok {
			t.Error("expected closed channel after Close")
		}
	case <-time.After(time.Second):
		t.Fatal("subscriber channel not closed")
	}

	// Post-close operations are no-ops, not panics.
	b.Publish(Event{Type: "late"})
	b.PublishNoteEvent("created", "x.md")
	b.Close()
	if n := b.ClientCount(); n != 0 {
		t.Errorf("client count after close = %d", n)
	}
	late := b.Subscribe()
	select {
	case _, ok := <-late:
		if ok {
			t.Error("late subscribe should return a closed channel")
		}
	case <-time.After(time.Second):
		t.Fatal("late subscribe channel not closed")
	}
}

func TestServeHTTP_SendsPreambleAndEvents(t *testing.T) {
	b := NewBroker(time.Second)
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest("GET", "/events", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		defer close(done)
		b.ServeHTTP(rec, req)
	}()

	// Wait for the handler to register before publishing.
	deadline := time.Now().Add(time.Second)
	for b.ClientCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	b.Publish(Event{Type: "test.hello", Data: map[string]string{}})
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("handler did not return after context cancel")
	}

	body := rec.Body.String()
	if !strings.HasPrefix(body, ": connected\n\n") {
		t.Errorf("body = %q, want connected preamble", body)
	}
	if !strings.Contains(body, "event: test.hello") {
		t.Errorf("body = %q, want published event", body)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("content type = %q", ct)
	}
}

func TestServeHTTP_RejectedAfterClose(t *testing.T) {
	b := NewBroker(time.Second)
	b.Close()

	req := httptest.NewRequest("GET", "/events", nil)
	rec := httptest.NewRecorder()
	b.ServeHTTP(rec, req)
	if rec.Code != 503 {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}
