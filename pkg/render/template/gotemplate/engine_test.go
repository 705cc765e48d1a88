package gotemplate_test

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-displaymeta/pkg/render/template/gotemplate"
	"github.com/goliatone/go-displaymeta/pkg/testsupport"
)

var templates = fstest.MapFS{
	"hello.tmpl":      {Data: []byte("Hello {{ name }}!")},
	"use-global.tmpl": {Data: []byte("env={{ settings.env }}")},
	"escape.tmpl":     {Data: []byte("{{ value }}|{{ value|safe }}")},
}

func newEngine(t *testing.T, opts ...gotemplate.Option) *gotemplate.Engine {
	t.Helper()
	engine, err := gotemplate.New(append([]gotemplate.Option{gotemplate.WithFS(templates)}, opts...)...)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func TestEngine_RenderTemplate(t *testing.T) {
	engine := newEngine(t)

	result, written := testsupport.CaptureOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("hello", map[string]any{"name": "Ada"}, w)
	})
	if result != "Hello Ada!" || written != result {
		t.Fatalf("unexpected output %q / %q", result, written)
	}
}

func TestEngine_AutoEscapes(t *testing.T) {
	engine := newEngine(t)
	out, err := engine.RenderTemplate("escape.tmpl", map[string]any{"value": "<b>x</b>"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "&lt;b&gt;x&lt;/b&gt;|<b>x</b>" {
		t.Fatalf("unexpected escaping %q", out)
	}
}

func TestEngine_GlobalContext(t *testing.T) {
	engine := newEngine(t, gotemplate.WithGlobalData(map[string]any{
		"settings": map[string]any{"env": "staging"},
	}))
	out, err := engine.RenderTemplate("use-global", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "env=staging" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestEngine_RenderStringWithStruct(t *testing.T) {
	engine := newEngine(t)
	out, err := engine.RenderString("{{ Name }}", struct{ Name string }{Name: "Grace"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "Grace" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestEngine_RegisterFilter(t *testing.T) {
	engine := newEngine(t)
	err := engine.RegisterFilter("displaymeta_shout", func(input any, _ any) (any, error) {
		s, _ := input.(string)
		if s == "" {
			return nil, errors.New("empty")
		}
		return strings.ToUpper(s) + "!", nil
	})
	if err != nil {
		t.Fatalf("register filter: %v", err)
	}
	if err := engine.RegisterFilter("displaymeta_shout", func(any, any) (any, error) { return nil, nil }); err == nil {
		t.Fatalf("expected duplicate filter error")
	}

	out, err := engine.RenderString(`{{ name|displaymeta_shout }}`, map[string]any{"name": "ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "ADA!" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestEngine_BaseDirOverridesFS(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "hello.tmpl"), []byte("Hi {{ name }}"), 0o600); err != nil {
		t.Fatalf("write template: %v", err)
	}
	engine := newEngine(t, gotemplate.WithBaseDir(dir))
	out, err := engine.RenderTemplate("hello", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "Hi Ada" {
		t.Fatalf("expected disk template to win, got %q", out)
	}
}

func TestEngine_RequiresSource(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatalf("expected configuration error")
	}
}

func TestEngine_MissingTemplate(t *testing.T) {
	if _, err := newEngine(t).RenderTemplate("missing", nil); err == nil {
		t.Fatalf("expected load error")
	}
}
