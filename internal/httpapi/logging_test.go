package httpapi

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]LogLevel{"": LevelOff, "off": LevelOff, "ERROR": LevelError, "info": LevelInfo, "debug": LevelDebug, "bogus": LevelInfo}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q)=%v want %v", in, got, want)
		}
	}
}

func TestRequestLogLevel_Overrides(t *testing.T) {
	SetDefaultLogLevel("info")
	r := httptest.NewRequest(http.MethodGet, "/x?log=1", nil)
	if requestLogLevel(r) != LevelDebug {
		t.Fatalf("?log=1 should mean debug")
	}
	r = httptest.NewRequest(http.MethodGet, "/x", nil)
	r.Header.Set("X-Log-Level", "off")
	if requestLogLevel(r) != LevelOff {
		t.Fatalf("header override ignored")
	}
	r = httptest.NewRequest(http.MethodGet, "/x", nil)
	if requestLogLevel(r) != LevelInfo {
		t.Fatalf("default level expected")
	}
}

func TestRequestLogger_WritesGenerationLines(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(zerolog.New(&buf).Level(zerolog.InfoLevel))
	t.Cleanup(func() { zlog = nil })

	w := postJSON(t, NewMux(newSvc()), `{"prompt":"x","model":"sd15"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	out := buf.String()
	if !strings.Contains(out, `"message":"generation start"`) || !strings.Contains(out, `"message":"generation end"`) {
		t.Fatalf("missing generation lines: %s", out)
	}
	if !strings.Contains(out, `"request_id"`) || !strings.Contains(out, `"model":"sd15"`) {
		t.Fatalf("missing fields: %s", out)
	}
}

func TestRequestLogger_OffIsNop(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(zerolog.New(&buf))
	t.Cleanup(func() { zlog = nil })
	l := requestLogger(httptest.NewRequest(http.MethodGet, "/x", nil), LevelOff)
	l.Error().Msg("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %s", buf.String())
	}
}

func TestJoinContexts(t *testing.T) {
	type key struct{}
	a, cancelA := context.WithCancel(context.Background())
	b := context.WithValue(context.Background(), key{}, "v")
	ctx, cancel := joinContexts(a, b)
	defer cancel()
	if ctx.Value(key{}) != "v" {
		t.Fatalf("values must come from the request context")
	}
	cancelA()
	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatalf("joined context not canceled by base context")
	}
}

func TestSetBaseContext_NilResets(t *testing.T) {
	SetBaseContext(nil)
	if serverBaseCtx == nil || serverBaseCtx.Err() != nil {
		t.Fatalf("expected background context")
	}
}
