package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/sigil/pkg/cache"
	"github.com/matzehuels/sigil/pkg/core/seal"
	"github.com/matzehuels/sigil/pkg/errors"
)

// memCache is an in-memory cache that counts operations.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	gets int
	sets int
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	c.data[key] = data
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memCache) Close() error { return nil }

var _ cache.Cache = (*memCache)(nil)

func TestRunnerExecute(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), Options{
		Identifier: "zod",
		Formats:    []string{FormatSVG, FormatJSON, FormatDOT},
	})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	if res.Identifier.String() != "~zod" {
		t.Errorf("Identifier = %s", res.Identifier)
	}
	if res.Stats.Syllables != 1 || res.Stats.NodeCount != 4 {
		t.Errorf("Stats = %+v", res.Stats)
	}
	if len(res.DocumentHash) != 64 {
		t.Errorf("DocumentHash = %q", res.DocumentHash)
	}
	svg := string(res.Artifacts[FormatSVG])
	if !strings.HasPrefix(svg, "<svg") || !strings.Contains(svg, "matrix(0.875, 0, 0, 0.875, 72, 72)") {
		t.Errorf("svg artifact = %.100s", svg)
	}
	if !strings.Contains(string(res.Artifacts[FormatJSON]), `"tag": "svg"`) {
		t.Error("json artifact missing root tag")
	}
	if !strings.Contains(string(res.Artifacts[FormatDOT]), "digraph G") {
		t.Error("dot artifact missing digraph")
	}
}

func TestRunnerCaching(t *testing.T) {
	c := newMemCache()
	r := NewRunner(c, nil, nil)
	ctx := context.Background()
	opts := Options{Identifier: "~marzod", Formats: []string{FormatSVG}}

	first, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheInfo.PourHit || first.CacheInfo.RenderHit {
		t.Errorf("first run CacheInfo = %+v, want misses", first.CacheInfo)
	}

	second, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.PourHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run CacheInfo = %+v, want hits", second.CacheInfo)
	}
	if !bytes.Equal(first.Artifacts[FormatSVG], second.Artifacts[FormatSVG]) {
		t.Error("cached artifact differs from rendered one")
	}
	if first.DocumentHash != second.DocumentHash {
		t.Error("cached document hashes differently")
	}

	// The text form is canonicalized before keying
	third, err := r.Execute(ctx, Options{Identifier: "marzod", Formats: []string{FormatSVG}})
	if err != nil {
		t.Fatal(err)
	}
	if !third.CacheInfo.PourHit {
		t.Error("equivalent identifier text should share the cache entry")
	}

	// Refresh bypasses reads
	opts.Refresh = true
	fourth, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if fourth.CacheInfo.PourHit || fourth.CacheInfo.RenderHit {
		t.Errorf("refresh run CacheInfo = %+v, want misses", fourth.CacheInfo)
	}
}

func TestRunnerPartialArtifactHit(t *testing.T) {
	c := newMemCache()
	r := NewRunner(c, nil, nil)
	ctx := context.Background()

	if _, err := r.Execute(ctx, Options{Identifier: "~zod", Formats: []string{FormatSVG}}); err != nil {
		t.Fatal(err)
	}
	res, err := r.Execute(ctx, Options{Identifier: "~zod", Formats: []string{FormatSVG, FormatJSON}})
	if err != nil {
		t.Fatal(err)
	}
	if res.CacheInfo.RenderHit {
		t.Error("RenderHit should be false when one format had to be rendered")
	}
	if len(res.Artifacts) != 2 {
		t.Errorf("got %d artifacts, want 2", len(res.Artifacts))
	}
}

func TestRunnerDictionaryInKey(t *testing.T) {
	c := newMemCache()
	r := NewRunner(c, nil, nil)
	ctx := context.Background()

	dict := &seal.Dictionary{
		Mapping: map[string]seal.Node{"zod": {Tag: seal.TagPath, Meta: seal.Meta{Style: &seal.Style{Fill: seal.RoleForeground}}, Attr: seal.Attrs{"d": "k"}}},
		Refs:    map[string]string{"k": "M0 0H128V128Z"},
	}

	plain, err := r.Execute(ctx, Options{Identifier: "~zod"})
	if err != nil {
		t.Fatal(err)
	}
	withDict, err := r.Execute(ctx, Options{Identifier: "~zod", Dictionary: dict})
	if err != nil {
		t.Fatal(err)
	}
	if withDict.CacheInfo.PourHit {
		t.Error("a dictionary should change the document key")
	}
	if plain.DocumentHash == withDict.DocumentHash {
		t.Error("different symbols should hash differently")
	}
	if !strings.Contains(string(withDict.Artifacts[FormatSVG]), `d="M0 0H128V128Z"`) {
		t.Error("dictionary symbol was not rendered")
	}
	if r.DictionaryHash(dict) != r.DictionaryHash(dict) || r.DictionaryHash(nil) != "" {
		t.Error("DictionaryHash should be stable and empty for nil")
	}
}

func TestDictionaryHashMemoBounded(t *testing.T) {
	r := NewRunner(nil, nil, nil)

	first := &seal.Dictionary{Refs: map[string]string{"k": "M0 0Z"}}
	want := r.DictionaryHash(first)
	for i := range 3 * maxDigests {
		r.DictionaryHash(&seal.Dictionary{Refs: map[string]string{"k": fmt.Sprintf("M%d 0Z", i)}})
		if n := r.digests.len(); n > maxDigests {
			t.Fatalf("memo holds %d entries, want at most %d", n, maxDigests)
		}
	}
	if _, ok := r.digests.get(first); ok {
		t.Error("oldest dictionary should have been evicted")
	}
	if got := r.DictionaryHash(first); got != want {
		t.Errorf("hash after eviction = %s, want %s", got, want)
	}

	// Equal content hashes equally regardless of pointer.
	twin := &seal.Dictionary{Refs: map[string]string{"k": "M0 0Z"}}
	if r.DictionaryHash(twin) != want {
		t.Error("equal dictionaries should share a hash")
	}
}

func TestRunnerErrors(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	ctx := context.Background()

	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"odd syllables", Options{Identifier: "~ridlurfig"}, errors.ErrCodeInvalidIdentifierShape},
		{"bad format", Options{Identifier: "~zod", Formats: []string{"bmp"}}, errors.ErrCodeInvalidFormat},
		{"empty", Options{}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Execute(ctx, tt.opts)
			if !errors.Is(err, tt.code) {
				t.Errorf("Execute() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestRunnerPNG(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), Options{
		Identifier: "~zod",
		Size:       64,
		Scale:      2,
		Formats:    []string{FormatPNG},
	})
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(res.Artifacts[FormatPNG]))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 128 {
		t.Errorf("png width = %d, want 128", b.Dx())
	}
}
