package orderboard

import (
	"bufio"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestBroadcastHookFansOut(t *testing.T) {
	hook := NewBroadcastHook()
	first, cancelFirst := hook.Subscribe()
	second, cancelSecond := hook.Subscribe()
	defer cancelFirst()
	defer cancelSecond()

	event := ChangeEvent{UserID: "user-1", Scope: ScopeOrder, Reason: "create", OrderID: "o1"}
	if err := hook.Changed(context.Background(), event); err != nil {
		t.Fatalf("Changed: %v", err)
	}

	for _, ch := range []<-chan ChangeEvent{first, second} {
		select {
		case got := <-ch:
			if got != event {
				t.Fatalf("unexpected event %+v", got)
			}
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for event")
		}
	}
}

func TestBroadcastHookCancelClosesChannel(t *testing.T) {
	hook := NewBroadcastHook()
	events, cancel := hook.Subscribe()
	cancel()
	if _, ok := <-events; ok {
		t.Fatalf("expected channel closed after cancel")
	}
	// Cancel twice is safe.
	cancel()
	if err := hook.Changed(context.Background(), ChangeEvent{Scope: ScopeWidget}); err != nil {
		t.Fatalf("Changed after cancel: %v", err)
	}
}

func TestBroadcastHookDropsWhenSubscriberIsSlow(t *testing.T) {
	hook := NewBroadcastHook()
	_, cancel := hook.Subscribe()
	defer cancel()

	// Buffer is 8 deep; extra events must not block the publisher.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 32; i++ {
			hook.Changed(context.Background(), ChangeEvent{Scope: ScopeOrder})
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("publisher blocked on a slow subscriber")
	}
}

func TestServeSSEStreamsEvents(t *testing.T) {
	hook := NewBroadcastHook()
	server := httptest.NewServer(http.HandlerFunc(hook.ServeSSE))
	defer server.Close()

	req, _ := http.NewRequest(http.MethodGet, server.URL, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	resp, err := http.DefaultClient.Do(req.WithContext(ctx))
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()

	if got := resp.Header.Get("Content-Type"); got != "text/event-stream" {
		t.Fatalf("unexpected content type %q", got)
	}

	go func() {
		// Retry until the handler registered its subscription.
		for i := 0; i < 50; i++ {
			hook.Changed(context.Background(), ChangeEvent{UserID: "user-1", Scope: ScopeDashboard, Reason: "create"})
			time.Sleep(10 * time.Millisecond)
		}
	}()

	reader := bufio.NewReader(resp.Body)
	line, err := reader.ReadString('\n')
	if err != nil {
		t.Fatalf("read stream: %v", err)
	}
	if !strings.HasPrefix(line, "data: ") || !strings.Contains(line, `"scope":"dashboard"`) {
		t.Fatalf("unexpected stream line %q", line)
	}
}

type brokenStreamWriter struct {
	header http.Header
}

func (w *brokenStreamWriter) Header() http.Header {
	if w.header == nil {
		w.header = http.Header{}
	}
	return w.header
}

func (w *brokenStreamWriter) WriteHeader(int) {}

func (w *brokenStreamWriter) Write([]byte) (int, error) {
	return 0, errors.New("connection reset")
}

func TestServeSSEStopsWhenWriteFails(t *testing.T) {
	hook := NewBroadcastHook()
	req := httptest.NewRequest(http.MethodGet, "/board/events", nil)

	done := make(chan struct{})
	go func() {
		hook.ServeSSE(&brokenStreamWriter{}, req)
		close(done)
	}()

	go func() {
		for i := 0; i < 50; i++ {
			hook.Changed(context.Background(), ChangeEvent{UserID: "user-1", Scope: ScopeDashboard, Reason: "create"})
			time.Sleep(10 * time.Millisecond)
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("expected handler to return once the client write fails")
	}
}
