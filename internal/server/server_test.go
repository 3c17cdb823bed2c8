package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/sigil/pkg/core/seal"
	"github.com/matzehuels/sigil/pkg/errors"
	"github.com/matzehuels/sigil/pkg/httputil"
	"github.com/matzehuels/sigil/pkg/observability"
	"github.com/matzehuels/sigil/pkg/pipeline"
)

func newTestServer(t *testing.T, opts ...Option) *Server {
	t.Helper()
	logger := log.New(io.Discard)
	return New(pipeline.NewRunner(nil, nil, logger), logger, opts...)
}

func get(t *testing.T, h http.Handler, target string, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) errors.Code {
	t.Helper()
	var body httputil.ErrorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body %q: %v", rec.Body.String(), err)
	}
	return body.Error.Code
}

func TestHealth(t *testing.T) {
	rec := get(t, newTestServer(t), "/healthz")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %q", body["status"])
	}
}

func TestSealFormats(t *testing.T) {
	s := newTestServer(t)
	tests := []struct {
		target      string
		contentType string
		prefix      string
	}{
		{"/v1/seals/~zod.svg", "image/svg+xml", "<svg"},
		{"/v1/seals/~zod", "image/svg+xml", "<svg"},
		{"/v1/seals/~marzod.json", "application/json", "{"},
		{"/v1/seals/~marzod.dot", "text/vnd.graphviz", "digraph"},
		{"/v1/seals/~ridlur-figbud.png?scale=0.5", "image/png", "\x89PNG"},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec := get(t, s, tt.target)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
			}
			if ct := rec.Header().Get("Content-Type"); ct != tt.contentType {
				t.Errorf("Content-Type = %q, want %q", ct, tt.contentType)
			}
			if !strings.HasPrefix(rec.Body.String(), tt.prefix) {
				t.Errorf("body starts with %q, want %q", rec.Body.String()[:min(16, rec.Body.Len())], tt.prefix)
			}
			if rec.Header().Get("ETag") == "" {
				t.Error("missing ETag")
			}
		})
	}
}

func TestSealQueryOptions(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/v1/seals/~zod.svg?size=512&colorway=%23000,%23fff&title=true")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	for _, want := range []string{`width="512"`, `fill="#fff"`, `fill="#000"`, "<title>~zod</title>"} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %s", want)
		}
	}

	// Canonical colorway by index.
	rec = get(t, s, "/v1/seals/~zod.json?colorway=1")
	if !strings.Contains(rec.Body.String(), "#4330FC") {
		t.Errorf("colorway index not applied: %s", rec.Body.String())
	}
}

func TestSealDictionary(t *testing.T) {
	dict := &seal.Dictionary{
		Mapping: map[string]seal.Node{
			"zod": {Tag: seal.TagPath, Attr: seal.Attrs{seal.AttrD: "c0"}, Meta: seal.Meta{Style: &seal.Style{Fill: seal.RoleForeground}}},
		},
		Refs: map[string]string{"c0": "M0 0H128V128H0Z"},
	}
	rec := get(t, newTestServer(t, WithDictionary(dict)), "/v1/seals/~zod.svg")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "M0 0H128V128H0Z") {
		t.Errorf("dictionary symbol not used: %s", rec.Body.String())
	}
}

func TestSealErrors(t *testing.T) {
	s := newTestServer(t)
	tests := []struct {
		target string
		status int
		code   errors.Code
	}{
		{"/v1/seals/~ridlurfig.svg", http.StatusBadRequest, errors.ErrCodeInvalidIdentifierShape},
		{"/v1/seals/~zod.gif", http.StatusBadRequest, errors.ErrCodeInvalidFormat},
		{"/v1/seals/~zod.svg?size=abc", http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"/v1/seals/~zod.svg?size=-1", http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"/v1/seals/~zod.svg?size=NaN", http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"/v1/seals/~zod.png?scale=100", http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"/v1/seals/~zod.svg?colorway=99", http.StatusBadRequest, errors.ErrCodeInvalidColorway},
		{"/v1/seals/~zod.svg?colorway=red", http.StatusBadRequest, errors.ErrCodeInvalidColorway},
		{"/v1/seals/~zod.svg?title=maybe", http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"/v1/seals/~z0d.svg", http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"/nope", http.StatusNotFound, errors.ErrCodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec := get(t, s, tt.target)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.status, rec.Body.String())
			}
			if code := errorCode(t, rec); code != tt.code {
				t.Errorf("code = %s, want %s", code, tt.code)
			}
		})
	}
}

func TestSealNotModified(t *testing.T) {
	s := newTestServer(t)
	first := get(t, s, "/v1/seals/~marzod.svg")
	etag := first.Header().Get("ETag")
	if etag == "" {
		t.Fatal("missing ETag")
	}
	if cc := first.Header().Get("Cache-Control"); !strings.Contains(cc, "max-age=86400") {
		t.Errorf("Cache-Control = %q", cc)
	}

	second := get(t, s, "/v1/seals/~marzod.svg", "If-None-Match", etag)
	if second.Code != http.StatusNotModified {
		t.Fatalf("status = %d, want 304", second.Code)
	}
	if second.Body.Len() != 0 {
		t.Error("304 response should have no body")
	}
}

func TestSealDeterministic(t *testing.T) {
	s := newTestServer(t)
	a := get(t, s, "/v1/seals/~ridlur-figbud.svg")
	b := get(t, s, "/v1/seals/~RIDLUR-FIGBUD.svg")
	if !bytes.Equal(a.Body.Bytes(), b.Body.Bytes()) {
		t.Error("identifier case should not change the seal")
	}
}

func TestColorways(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/v1/colorways")
	var all []ColorwayResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &all); err != nil {
		t.Fatal(err)
	}
	if len(all) != len(seal.Colorways()) {
		t.Fatalf("got %d colorways, want %d", len(all), len(seal.Colorways()))
	}
	if all[1].Index != 1 || all[1].Colors[1] != "#4330FC" {
		t.Errorf("colorway 1 = %+v", all[1])
	}

	rec = get(t, s, "/v1/colorways/~ridlur-figbud")
	var one ColorwayResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &one); err != nil {
		t.Fatal(err)
	}
	if one.Index != 4 || one.Identifier != "~ridlur-figbud" {
		t.Errorf("colorway for ~ridlur-figbud = %+v, want index 4", one)
	}

	rec = get(t, s, "/v1/colorways/~ridlurfig")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad identifier status = %d", rec.Code)
	}
}

func TestLayout(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/v1/layouts/4")
	var l seal.Layout
	if err := json.Unmarshal(rec.Body.Bytes(), &l); err != nil {
		t.Fatal(err)
	}
	if l.Columns != 2 || l.Rows != 2 || len(l.Grid) != 4 {
		t.Errorf("layout = %dx%d with %d cells", l.Columns, l.Rows, len(l.Grid))
	}

	for _, target := range []string{"/v1/layouts/3", "/v1/layouts/x", "/v1/layouts/4?size=0.5e9"} {
		if rec := get(t, s, target); rec.Code != http.StatusBadRequest {
			t.Errorf("%s status = %d, want 400", target, rec.Code)
		}
	}
}

func TestLayoutCount(t *testing.T) {
	s := newTestServer(t)

	limit := fmt.Sprintf("/v1/layouts/%d", pipeline.MaxSymbols)
	if rec := get(t, s, limit); rec.Code != http.StatusOK {
		t.Errorf("%s status = %d, want 200", limit, rec.Code)
	}

	for _, target := range []string{
		fmt.Sprintf("/v1/layouts/%d", pipeline.MaxSymbols+2),
		"/v1/layouts/2000000",
		"/v1/layouts/2147483646",
		"/v1/layouts/0",
		"/v1/layouts/-2",
	} {
		rec := get(t, s, target)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s status = %d, want 400", target, rec.Code)
		}
		if code := errorCode(t, rec); code != errors.ErrCodeInvalidInput {
			t.Errorf("%s code = %s, want INVALID_INPUT", target, code)
		}
		if rec.Body.Len() > 1024 {
			t.Errorf("%s body is %d bytes", target, rec.Body.Len())
		}
	}
}

func TestRequestID(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/healthz", RequestIDHeader, "abc-123")
	if got := rec.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("request ID = %q, want abc-123", got)
	}

	rec = get(t, s, "/healthz")
	if got := rec.Header().Get(RequestIDHeader); len(got) != 36 {
		t.Errorf("generated request ID = %q, want a UUID", got)
	}

	rec = get(t, s, "/healthz", RequestIDHeader, strings.Repeat("x", 200))
	if got := rec.Header().Get(RequestIDHeader); len(got) != 36 {
		t.Errorf("oversized request ID should be replaced, got %d chars", len(got))
	}
}

type recordingHooks struct {
	observability.NoopHTTPHooks
	mu     sync.Mutex
	routes []string
	codes  []int
}

func (h *recordingHooks) OnResponse(_ context.Context, _, route string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.routes = append(h.routes, route)
	h.codes = append(h.codes, status)
}

func TestHTTPHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetHTTPHooks(hooks)
	t.Cleanup(observability.Reset)

	s := newTestServer(t)
	get(t, s, "/v1/seals/~zod.svg")
	get(t, s, "/v1/seals/~zod.gif")

	if len(hooks.routes) != 2 {
		t.Fatalf("got %d responses, want 2", len(hooks.routes))
	}
	for _, r := range hooks.routes {
		if r != "/v1/seals/{seal}" {
			t.Errorf("route = %q, want the route pattern", r)
		}
	}
	if hooks.codes[0] != http.StatusOK || hooks.codes[1] != http.StatusBadRequest {
		t.Errorf("codes = %v", hooks.codes)
	}
}

func TestSplitSealName(t *testing.T) {
	tests := []struct {
		in, id, format string
	}{
		{"~zod.svg", "~zod", "svg"},
		{"~zod.PNG", "~zod", "png"},
		{"~zod", "~zod", "svg"},
		{"~ridlur-figbud.json", "~ridlur-figbud", "json"},
	}
	for _, tt := range tests {
		id, format := splitSealName(tt.in)
		if id != tt.id || format != tt.format {
			t.Errorf("splitSealName(%q) = %q, %q; want %q, %q", tt.in, id, format, tt.id, tt.format)
		}
	}
}
