package reascript

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/dawctl/reaper-mcp/internal/id"
	apperrors "github.com/dawctl/reaper-mcp/internal/platform/errors"
	"github.com/dawctl/reaper-mcp/internal/platform/timeouts"
)

// DefaultSection is the ExtState section the bridge watches.
const DefaultSection = "reaper_mcp"

const (
	requestKey  = "request"
	responseKey = "response"
)

var tracer = otel.Tracer("github.com/dawctl/reaper-mcp/internal/reaper/reascript")

// WebCaller invokes bridge functions through REAPER's built-in web
// interface, using a section-scoped ExtState mailbox: the request envelope
// is written with /_/SET/EXTSTATE and the reply is polled from
// /_/GET/EXTSTATE until the correlation id matches.
//
// A mutex keeps at most one call in flight, so two tool invocations can
// never interleave their REAPER round-trips (REAPER's own transactional
// guarantees are unknown; the mailbox has a single slot either way).
type WebCaller struct {
	baseURL string
	section string
	httpc   *http.Client
	poll    time.Duration

	mu sync.Mutex
}

// NewWebCaller returns a caller for the web interface at addr
// (host:port, e.g. "localhost:8080") using the given ExtState section.
func NewWebCaller(addr, section string) *WebCaller {
	if section == "" {
		section = DefaultSection
	}
	return &WebCaller{
		baseURL: "http://" + addr,
		section: section,
		httpc:   &http.Client{},
		poll:    timeouts.BridgePoll,
	}
}

type callEnvelope struct {
	ID   string `json:"id"`
	Fn   string `json:"fn"`
	Args []any  `json:"args"`
}

type replyEnvelope struct {
	ID    string `json:"id"`
	OK    bool   `json:"ok"`
	Ret   Values `json:"ret"`
	Error string `json:"error"`
}

// Invoke writes one call envelope and polls for its reply until the context
// expires.
func (c *WebCaller) Invoke(ctx context.Context, fn string, args ...any) (Values, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ctx, span := tracer.Start(ctx, "reascript."+fn)
	defer span.End()
	span.SetAttributes(attribute.Int("reascript.args", len(args)))

	callID, err := id.NewID()
	if err != nil {
		return nil, fmt.Errorf("generate call id: %w", err)
	}
	if args == nil {
		args = []any{}
	}
	payload, err := json.Marshal(callEnvelope{ID: callID, Fn: fn, Args: args})
	if err != nil {
		return nil, fmt.Errorf("encode call %s: %w", fn, err)
	}

	if err := c.setExtState(ctx, requestKey, string(payload)); err != nil {
		span.RecordError(err)
		return nil, apperrors.Wrap(apperrors.CodeNotConnected, "REAPER web interface unreachable", err)
	}

	ticker := time.NewTicker(c.poll)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			span.RecordError(ctx.Err())
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return nil, apperrors.Wrap(apperrors.CodeTimeout, fmt.Sprintf("bridge call %s timed out", fn), ctx.Err())
			}
			return nil, ctx.Err()
		case <-ticker.C:
		}

		raw, err := c.getExtState(ctx, responseKey)
		if err != nil {
			span.RecordError(err)
			if errors.Is(err, context.DeadlineExceeded) {
				return nil, apperrors.Wrap(apperrors.CodeTimeout, fmt.Sprintf("bridge call %s timed out", fn), err)
			}
			return nil, apperrors.Wrap(apperrors.CodeNotConnected, "REAPER web interface unreachable", err)
		}
		if raw == "" {
			continue
		}
		var reply replyEnvelope
		if err := json.Unmarshal([]byte(raw), &reply); err != nil {
			// Stale or truncated mailbox content from an earlier call.
			continue
		}
		if reply.ID != callID {
			continue
		}
		if !reply.OK {
			err := apperrors.New(apperrors.CodeUpstreamFailure, "%s: %s", fn, reply.Error)
			span.RecordError(err)
			return nil, err
		}
		return reply.Ret, nil
	}
}

func (c *WebCaller) setExtState(ctx context.Context, key, value string) error {
	path := fmt.Sprintf("/_/SET/EXTSTATE/%s/%s/%s",
		url.PathEscape(c.section), url.PathEscape(key), url.PathEscape(value))
	_, err := c.get(ctx, path)
	return err
}

func (c *WebCaller) getExtState(ctx context.Context, key string) (string, error) {
	path := fmt.Sprintf("/_/GET/EXTSTATE/%s/%s", url.PathEscape(c.section), url.PathEscape(key))
	body, err := c.get(ctx, path)
	if err != nil {
		return "", err
	}
	// Response lines are tab-separated: EXTSTATE <section> <key> <value>.
	for line := range strings.Lines(body) {
		fields := strings.SplitN(strings.TrimSuffix(line, "\n"), "\t", 4)
		if len(fields) == 4 && fields[0] == "EXTSTATE" && fields[2] == key {
			return fields[3], nil
		}
	}
	return "", nil
}

func (c *WebCaller) get(ctx context.Context, path string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return "", err
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("web interface returned %s", resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}
