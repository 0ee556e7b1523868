package internal

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func testConfig(t *testing.T) *Config {
	t.Helper()
	dir := t.TempDir()
	cfg := NewDefaultConfig()
	cfg.Library.Path = filepath.Join(dir, "library")
	cfg.Library.Watch = false
	cfg.Output.Path = filepath.Join(dir, "out")
	cfg.SQLite.Path = filepath.Join(dir, "fretwork.db")
	return cfg
}

func TestOpen_RequiresConfig(t *testing.T) {
	if _, err := Open(WithLogOutput(io.Discard)); err == nil {
		t.Fatal("expected error without config")
	}
}

func TestOpen_IndexesLibrary(t *testing.T) {
	cfg := testConfig(t)
	if err := os.MkdirAll(cfg.Library.Path, 0o755); err != nil {
		t.Fatal(err)
	}
	lib := "chords:\n  - {name: E Shape F, shape: 133211, type: major}\n"
	if err := os.WriteFile(filepath.Join(cfg.Library.Path, "mine.yaml"), []byte(lib), 0o644); err != nil {
		t.Fatal(err)
	}

	app, err := Open(WithConfig(cfg), WithLogOutput(io.Discard))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer app.Close()

	ctx := context.Background()
	detail, err := app.Service.LookupChord(ctx, "E Shape F")
	if err != nil {
		t.Fatalf("library chord not indexed: %v", err)
	}
	if detail.Diagram.Barre == nil || detail.BarreFret != 1 {
		t.Error("expected barre for 133211")
	}

	d, err := app.Service.RenderChord(ctx, "x32010", "C", "svg")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(d.Content), "<svg") {
		t.Errorf("content = %.40s", d.Content)
	}

	if err := app.DB.Ping(ctx); err != nil {
		t.Errorf("ping: %v", err)
	}
}

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}

func TestRun_ShutdownClosesEventStreams(t *testing.T) {
	cfg := testConfig(t)
	cfg.App.HTTP.Port = freePort(t)
	base := fmt.Sprintf("http://127.0.0.1:%d", cfg.App.HTTP.Port)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- Run(ctx, WithConfig(cfg), WithLogOutput(io.Discard)) }()

	deadline := time.Now().Add(5 * time.Second)
	for {
		resp, err := http.Get(base + "/health/live")
		if err == nil {
			resp.Body.Close()
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("server not up: %v", err)
		}
		time.Sleep(50 * time.Millisecond)
	}

	stream, err := http.Get(base + "/api/events")
	if err != nil {
		t.Fatal(err)
	}
	defer stream.Body.Close()
	if stream.StatusCode != http.StatusOK {
		t.Fatalf("events status = %d", stream.StatusCode)
	}

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("run: %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("shutdown blocked by open event stream")
	}
}
