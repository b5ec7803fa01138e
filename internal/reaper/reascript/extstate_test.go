package reascript

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	apperrors "github.com/dawctl/reaper-mcp/internal/platform/errors"
)

// webFake emulates the REAPER web interface's EXTSTATE commands plus a
// bridge script: whenever the request key is written, bridge (if set) is
// asked for the reply to store under the response key.
type webFake struct {
	mu     sync.Mutex
	state  map[string]string
	bridge func(call callEnvelope) string
}

func (f *webFake) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(strings.TrimPrefix(r.URL.EscapedPath(), "/_/"), "/")
		for i, p := range parts {
			unescaped, err := url.PathUnescape(p)
			if err != nil {
				t.Errorf("unescape %q: %v", p, err)
			}
			parts[i] = unescaped
		}

		f.mu.Lock()
		defer f.mu.Unlock()
		switch {
		case len(parts) == 5 && parts[0] == "SET" && parts[1] == "EXTSTATE":
			key, value := parts[3], parts[4]
			f.state[key] = value
			if key == requestKey && value != "" && f.bridge != nil {
				var call callEnvelope
				if err := json.Unmarshal([]byte(value), &call); err != nil {
					t.Errorf("decode call envelope: %v", err)
					return
				}
				f.state[responseKey] = f.bridge(call)
			}
		case len(parts) == 4 && parts[0] == "GET" && parts[1] == "EXTSTATE":
			section, key := parts[2], parts[3]
			fmt.Fprintf(w, "EXTSTATE\t%s\t%s\t%s\n", section, key, f.state[key])
		default:
			t.Errorf("unexpected request path %q", r.URL.Path)
		}
	}
}

func newWebFake(t *testing.T, bridge func(call callEnvelope) string) (*WebCaller, *webFake) {
	t.Helper()
	fake := &webFake{state: map[string]string{}, bridge: bridge}
	srv := httptest.NewServer(fake.handler(t))
	t.Cleanup(srv.Close)

	caller := NewWebCaller(strings.TrimPrefix(srv.URL, "http://"), "")
	caller.poll = time.Millisecond
	return caller, fake
}

func okReply(t *testing.T, id string, ret ...any) string {
	t.Helper()
	raw, err := json.Marshal(map[string]any{"id": id, "ok": true, "ret": ret})
	if err != nil {
		t.Fatal(err)
	}
	return string(raw)
}

func TestWebCallerInvoke(t *testing.T) {
	var gotCall callEnvelope
	caller, _ := newWebFake(t, func(call callEnvelope) string {
		gotCall = call
		return okReply(t, call.ID, 42.5)
	})

	vals, err := caller.Invoke(context.Background(), "GetCursorPosition", 1, "x")
	if err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
	var pos float64
	if err := vals.Scan(&pos); err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if pos != 42.5 {
		t.Errorf("value = %v, want 42.5", pos)
	}

	if gotCall.Fn != "GetCursorPosition" {
		t.Errorf("fn = %q, want GetCursorPosition", gotCall.Fn)
	}
	if len(gotCall.Args) != 2 {
		t.Errorf("args = %v, want 2 values", gotCall.Args)
	}
	if gotCall.ID == "" {
		t.Error("call id is empty")
	}
}

func TestWebCallerUpstreamError(t *testing.T) {
	caller, _ := newWebFake(t, func(call callEnvelope) string {
		raw, _ := json.Marshal(map[string]any{"id": call.ID, "ok": false, "error": "track 9 not found"})
		return string(raw)
	})

	_, err := caller.Invoke(context.Background(), "DeleteTrack", 9)
	if !apperrors.IsCode(err, apperrors.CodeUpstreamFailure) {
		t.Fatalf("Invoke() error = %v, want UPSTREAM_FAILURE", err)
	}
	if !strings.Contains(err.Error(), "track 9 not found") {
		t.Errorf("error = %q, want bridge message preserved", err)
	}
}

func TestWebCallerTimeout(t *testing.T) {
	// Bridge never answers.
	caller, _ := newWebFake(t, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	_, err := caller.Invoke(ctx, "GetPlayState")
	if !apperrors.IsCode(err, apperrors.CodeTimeout) {
		t.Fatalf("Invoke() error = %v, want TIMEOUT", err)
	}
}

func TestWebCallerUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := strings.TrimPrefix(srv.URL, "http://")
	srv.Close()

	caller := NewWebCaller(addr, "")
	_, err := caller.Invoke(context.Background(), "GetAppVersion")
	if !apperrors.IsCode(err, apperrors.CodeNotConnected) {
		t.Fatalf("Invoke() error = %v, want NOT_CONNECTED", err)
	}
}

func TestWebCallerSkipsStaleReply(t *testing.T) {
	caller, fake := newWebFake(t, func(call callEnvelope) string {
		return okReply(t, call.ID, "fresh")
	})
	// A reply from an earlier call is still sitting in the mailbox.
	fake.state[responseKey] = okReply(t, "stale-id", "stale")

	vals, err := caller.Invoke(context.Background(), "GetAppVersion")
	if err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
	var got string
	if err := vals.Scan(&got); err != nil {
		t.Fatal(err)
	}
	if got != "fresh" {
		t.Errorf("value = %q, want fresh", got)
	}
}

func TestWebCallerUsesConfiguredSection(t *testing.T) {
	fake := &webFake{state: map[string]string{}}
	var section string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/_/"), "/")
		if len(parts) > 2 {
			section = parts[2]
		}
		fake.handler(t)(w, r)
	}))
	defer srv.Close()

	fake.bridge = func(call callEnvelope) string { return okReply(t, call.ID) }
	caller := NewWebCaller(strings.TrimPrefix(srv.URL, "http://"), "studio_a")
	caller.poll = time.Millisecond

	if _, err := caller.Invoke(context.Background(), "UpdateTimeline"); err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
	if section != "studio_a" {
		t.Errorf("section = %q, want studio_a", section)
	}
}
