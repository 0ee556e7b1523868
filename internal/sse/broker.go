// Package sse implements a Server-Sent Events broker for live catalogue and
// session updates.
package sse

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"
)

// Event represents an SSE event to broadcast. An event with a Session is
// delivered only to clients subscribed to that session (and to clients
// without a session filter).
type Event struct {
	Type    string `json:"type"`
	Session string `json:"-"`
	Data    any    `json:"data"`
}

type libraryEventReq struct {
	kind string
	path string
}

type subscription struct {
	ch      chan []byte
	session string
}

// Broker manages SSE client connections and broadcasts events.
//
// A single internal event loop owns mutable state (clients and the
// catalogue throttle timestamp). Public methods talk to the loop through
// channels, so no mutexes are required.
type Broker struct {
	catalogMin time.Duration

	subscribeCh   chan subscription
	unsubscribeCh chan chan []byte
	publishCh     chan Event
	libraryCh     chan libraryEventReq
	countReqCh    chan chan int

	stopCh  chan struct{}
	stopped chan struct{}
	closed  atomic.Bool
}

// NewBroker creates a new SSE broker. catalogThrottle bounds how often the
// catalog.updated summary event is sent.
func NewBroker(catalogThrottle time.Duration) *Broker {
	if catalogThrottle <= 0 {
		catalogThrottle = 2 * time.Second
	}

	b := &Broker{
		catalogMin:    catalogThrottle,
		subscribeCh:   make(chan subscription),
		unsubscribeCh: make(chan chan []byte),
		publishCh:     make(chan Event, 256),
		libraryCh:     make(chan libraryEventReq, 256),
		countReqCh:    make(chan chan int),
		stopCh:        make(chan struct{}),
		stopped:       make(chan struct{}),
	}

	go b.run()
	return b
}

func (b *Broker) run() {
	defer close(b.stopped)

	clients := make(map[chan []byte]string)
	var lastCatalog time.Time

	broadcast := func(event Event) {
		payload, err := json.Marshal(event.Data)
		if err != nil {
			return
		}
		raw := []byte(fmt.Sprintf("event: %s\ndata: %s\n\n", event.Type, payload))

		for ch, session := range clients {
			if event.Session != "" && session != "" && session != event.Session {
				continue
			}
			select {
			case ch <- raw:
			default:
				// Client buffer full; skip to avoid blocking the loop.
			}
		}
	}

	for {
		select {
		case <-b.stopCh:
			for ch := range clients {
				close(ch)
			}
			return

		case sub := <-b.subscribeCh:
			clients[sub.ch] = sub.session

		case ch := <-b.unsubscribeCh:
			if _, ok := clients[ch]; ok {
				delete(clients, ch)
				close(ch)
			}

		case event := <-b.publishCh:
			broadcast(event)

		case req := <-b.libraryCh:
			data := map[string]string{"path": req.path}
			switch req.kind {
			case "created", "updated", "deleted":
				broadcast(Event{Type: "library." + req.kind, Data: data})
			case "skipped":
				// The created/updated event for the file already refreshed the catalogue.
				broadcast(Event{Type: "library.skipped", Data: data})
				continue
			}

			now := time.Now()
			if now.Sub(lastCatalog) >= b.catalogMin {
				lastCatalog = now
				broadcast(Event{Type: "catalog.updated", Data: map[string]string{}})
			}

		case resp := <-b.countReqCh:
			resp <- len(clients)
		}
	}
}

// Close gracefully stops the broker loop and closes all client channels.
func (b *Broker) Close() {
	if b.closed.CompareAndSwap(false, true) {
		close(b.stopCh)
	}
	<-b.stopped
}

// Subscribe adds a new client and returns its channel. A non-empty session
// restricts session-scoped events to that session.
func (b *Broker) Subscribe(session string) chan []byte {
	ch := make(chan []byte, 64)
	if b.closed.Load() {
		close(ch)
		return ch
	}

	select {
	case b.subscribeCh <- subscription{ch: ch, session: session}:
	case <-b.stopped:
		close(ch)
	}

	return ch
}

// Unsubscribe removes a client and closes its channel.
func (b *Broker) Unsubscribe(ch chan []byte) {
	if b.closed.Load() {
		return
	}
	select {
	case b.unsubscribeCh <- ch:
	case <-b.stopped:
	}
}

// ClientCount returns the number of connected clients.
func (b *Broker) ClientCount() int {
	if b.closed.Load() {
		return 0
	}

	resp := make(chan int, 1)
	select {
	case b.countReqCh <- resp:
	case <-b.stopped:
		return 0
	}

	select {
	case n := <-resp:
		return n
	case <-b.stopped:
		return 0
	}
}

// Publish sends an event to all matching clients.
func (b *Broker) Publish(event Event) {
	if b.closed.Load() {
		return
	}
	select {
	case b.publishCh <- event:
	case <-b.stopped:
	}
}

// PublishState announces a session state change.
func (b *Broker) PublishState(session string, state any) {
	b.Publish(Event{Type: "state.updated", Session: session, Data: state})
}

// PublishLibraryEvent publishes a chord library change and a throttled
// catalog.updated event. A "skipped" kind reports a file with invalid
// entries and does not touch the throttle. Its signature matches
// catalog.EventCallback.
func (b *Broker) PublishLibraryEvent(kind, path string) {
	if b.closed.Load() {
		return
	}
	select {
	case b.libraryCh <- libraryEventReq{kind: kind, path: path}:
	case <-b.stopped:
	}
}

// ServeHTTP is the SSE endpoint handler (GET /api/events). The optional
// session query parameter scopes session events.
func (b *Broker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	ch := b.Subscribe(r.URL.Query().Get("session"))
	defer b.Unsubscribe(ch)

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			_, _ = w.Write(msg)
			flusher.Flush()
		}
	}
}
