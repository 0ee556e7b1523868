package sse

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func drain(ch chan []byte) []string {
	var out []string
	for {
		select {
		case msg := <-ch:
			out = append(out, string(msg))
		default:
			return out
		}
	}
}

func TestSubscribeUnsubscribe(t *testing.T) {
	b := NewBroker(100 * time.Millisecond)
	defer b.Close()
	if b.ClientCount() != 0 {
		t.Fatalf("expected 0 clients")
	}
	ch := b.Subscribe("")
	if b.ClientCount() != 1 {
		t.Fatalf("expected 1 client")
	}
	b.Unsubscribe(ch)
	if b.ClientCount() != 0 {
		t.Fatalf("expected 0 clients after unsub")
	}
}

func TestPublishDelivery(t *testing.T) {
	b := NewBroker(100 * time.Millisecond)
	defer b.Close()
	ch := b.Subscribe("")
	defer b.Unsubscribe(ch)

	b.Publish(Event{Type: "library.created", Data: map[string]string{"path": "jazz.yaml"}})

	select {
	case msg := <-ch:
		s := string(msg)
		if !strings.Contains(s, "event: library.created") {
			t.Errorf("missing event type in %q", s)
		}
		if !strings.Contains(s, `"path":"jazz.yaml"`) {
			t.Errorf("missing data in %q", s)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for message")
	}
}

func TestPublishStateScopedToSession(t *testing.T) {
	b := NewBroker(100 * time.Millisecond)
	defer b.Close()
	mine := b.Subscribe("s1")
	other := b.Subscribe("s2")
	all := b.Subscribe("")
	defer b.Unsubscribe(mine)
	defer b.Unsubscribe(other)
	defer b.Unsubscribe(all)

	b.PublishState("s1", map[string]string{"selected_key": "G"})
	time.Sleep(50 * time.Millisecond)

	if got := drain(mine); len(got) != 1 || !strings.Contains(got[0], "event: state.updated") {
		t.Errorf("session client got %q", got)
	}
	if got := drain(other); len(got) != 0 {
		t.Errorf("other session got %q", got)
	}
	if got := drain(all); len(got) != 1 {
		t.Errorf("unfiltered client got %d events, want 1", len(got))
	}
}

func TestPublishLibraryEvent_CatalogThrottle(t *testing.T) {
	b := NewBroker(500 * time.Millisecond)
	defer b.Close()
	ch := b.Subscribe("")
	defer b.Unsubscribe(ch)

	// First event triggers catalog.updated, the second is throttled.
	b.PublishLibraryEvent("created", "a.yaml")
	b.PublishLibraryEvent("updated", "b.yaml")

	time.Sleep(50 * time.Millisecond)
	catalogCount, libraryCount := 0, 0
	for _, s := range drain(ch) {
		if strings.Contains(s, "catalog.updated") {
			catalogCount++
		} else {
			libraryCount++
		}
	}

	if libraryCount != 2 {
		t.Errorf("library events = %d, want 2", libraryCount)
	}
	if catalogCount != 1 {
		t.Errorf("catalog events = %d, want 1 (throttled)", catalogCount)
	}
}

func TestSSEHandler(t *testing.T) {
	b := NewBroker(100 * time.Millisecond)
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req := httptest.NewRequest(http.MethodGet, "/api/events?session=abc", nil)
	req = req.WithContext(ctx)
	w := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		b.ServeHTTP(w, req)
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	if b.ClientCount() != 1 {
		t.Fatalf("expected 1 client from handler")
	}

	b.PublishState("abc", map[string]bool{"labels_visible": false})
	b.PublishState("zzz", map[string]bool{"labels_visible": true})
	time.Sleep(50 * time.Millisecond)

	cancel()
	<-done

	body := w.Body.String()
	if !strings.Contains(body, "event: state.updated") {
		t.Errorf("handler output missing event: %q", body)
	}
	if strings.Count(body, "event:") != 1 {
		t.Errorf("handler should only see its own session: %q", body)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("content type = %q", ct)
	}

	time.Sleep(50 * time.Millisecond)
	if b.ClientCount() != 0 {
		t.Errorf("client not cleaned up after disconnect")
	}
}

func TestPublishDropsOnFullBuffer(t *testing.T) {
	b := NewBroker(time.Second)
	defer b.Close()
	ch := b.Subscribe("")
	defer b.Unsubscribe(ch)

	// Fill the buffer (capacity 64); further events must not block.
	for i := 0; i < 70; i++ {
		b.Publish(Event{Type: "test", Data: map[string]string{"i": "x"}})
	}
}

func TestCloseClosesSubscribersAndStopsOperations(t *testing.T) {
	b := NewBroker(100 * time.Millisecond)
	ch := b.Subscribe("")
	if b.ClientCount() != 1 {
		t.Fatalf("expected 1 client")
	}

	b.Close()

	select {
	case _, ok := <-ch:
		if ok {
			t.Fatal("expected subscriber channel to be closed")
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for channel close")
	}

	if b.ClientCount() != 0 {
		t.Fatalf("expected 0 clients after close")
	}

	// Safe no-ops after close.
	b.Publish(Event{Type: "state.updated", Data: map[string]string{}})
	b.PublishLibraryEvent("updated", "x.yaml")
	if ch := b.Subscribe(""); ch != nil {
		if _, ok := <-ch; ok {
			t.Fatal("subscribe after close should return a closed channel")
		}
	}
}

func TestPublishLibraryEvent_Skipped(t *testing.T) {
	b := NewBroker(time.Hour)
	defer b.Close()
	ch := b.Subscribe("")
	defer b.Unsubscribe(ch)

	b.PublishLibraryEvent("skipped", "bad.yaml")
	time.Sleep(50 * time.Millisecond)

	got := drain(ch)
	if len(got) != 1 {
		t.Fatalf("events = %q, want only library.skipped", got)
	}
	if !strings.Contains(got[0], "event: library.skipped") || !strings.Contains(got[0], `"path":"bad.yaml"`) {
		t.Errorf("unexpected event %q", got[0])
	}
}

func TestSSEHandler_ReturnsOnClose(t *testing.T) {
	b := NewBroker(100 * time.Millisecond)

	req := httptest.NewRequest(http.MethodGet, "/api/events", nil)
	w := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		b.ServeHTTP(w, req)
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	if b.ClientCount() != 1 {
		t.Fatalf("expected 1 client from handler")
	}

	b.Close()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("handler still streaming after broker close")
	}
}
