package loader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	pkgopenapi "github.com/goliatone/go-displaymeta/pkg/openapi"
)

const payload = `{"openapi":"3.0.0","info":{"title":"t","version":"1"},"paths":{}}`

func TestLoader_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	if err := os.WriteFile(path, []byte(payload), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	doc, err := New(pkgopenapi.LoaderOptions{}).Load(context.Background(), pkgopenapi.SourceFromFile(path))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(doc.Raw()) != payload {
		t.Fatalf("unexpected payload %q", doc.Raw())
	}
	if doc.Location() != path {
		t.Fatalf("unexpected location %q", doc.Location())
	}
}

func TestLoader_FS(t *testing.T) {
	files := fstest.MapFS{"specs/doc.json": {Data: []byte(payload)}}
	l := New(pkgopenapi.NewLoaderOptions(pkgopenapi.WithFileSystem(files)))

	if _, err := l.Load(context.Background(), pkgopenapi.SourceFromFS("specs/doc.json")); err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := l.Load(context.Background(), pkgopenapi.SourceFromFS("missing.json")); err == nil {
		t.Fatalf("expected error for missing entry")
	}
}

func TestLoader_FSNotConfigured(t *testing.T) {
	_, err := New(pkgopenapi.LoaderOptions{}).Load(context.Background(), pkgopenapi.SourceFromFS("doc.json"))
	if err == nil || !strings.Contains(err.Error(), "filesystem is not configured") {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestLoader_HTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/openapi.json" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(payload))
	}))
	defer server.Close()

	disabled := New(pkgopenapi.LoaderOptions{})
	if _, err := disabled.Load(context.Background(), pkgopenapi.SourceFromURL(server.URL+"/openapi.json")); err == nil {
		t.Fatalf("expected http to be disabled by default")
	}

	l := New(pkgopenapi.NewLoaderOptions(pkgopenapi.WithHTTPClient(server.Client())))
	doc, err := l.Load(context.Background(), pkgopenapi.SourceFromURL(server.URL+"/openapi.json"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(doc.Raw()) != payload {
		t.Fatalf("unexpected payload %q", doc.Raw())
	}

	if _, err := l.Load(context.Background(), pkgopenapi.SourceFromURL(server.URL+"/missing")); err == nil {
		t.Fatalf("expected status error")
	}
}

func TestLoader_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New(pkgopenapi.LoaderOptions{}).Load(ctx, pkgopenapi.SourceFromFile("doc.json")); err == nil {
		t.Fatalf("expected context error")
	}
}
