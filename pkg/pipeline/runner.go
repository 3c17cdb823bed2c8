package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/sigil/pkg/cache"
	"github.com/matzehuels/sigil/pkg/core/patp"
	"github.com/matzehuels/sigil/pkg/core/seal"
	"github.com/matzehuels/sigil/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache, the logger and a small memo
// of dictionary digests. Multiple goroutines can safely use the same Runner
// with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	digests digestMemo
}

// maxDigests bounds the dictionary digest memo. Processes typically use one
// dictionary, occasionally a handful across reloads.
const maxDigests = 8

// digestMemo maps dictionary pointers to content hashes. Dictionaries are
// read-only, so a pointer identifies its content while it is referenced.
// The oldest entry is evicted once maxDigests is reached, releasing the
// dictionary it kept alive.
type digestMemo struct {
	mu    sync.Mutex
	order []*seal.Dictionary
	hash  map[*seal.Dictionary]string
}

func (m *digestMemo) get(d *seal.Dictionary) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.hash[d]
	return h, ok
}

func (m *digestMemo) put(d *seal.Dictionary, h string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.hash == nil {
		m.hash = make(map[*seal.Dictionary]string, maxDigests)
	}
	if _, ok := m.hash[d]; ok {
		return
	}
	if len(m.order) == maxDigests {
		delete(m.hash, m.order[0])
		m.order = append(m.order[:0], m.order[1:]...)
	}
	m.order = append(m.order, d)
	m.hash[d] = h
}

func (m *digestMemo) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.hash)
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete pour → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	id, err := patp.Parse(opts.Identifier)
	if err != nil {
		return nil, err
	}
	opts.Identifier = id.String()

	result := &Result{
		Identifier: id,
		Artifacts:  make(map[string][]byte),
	}

	// Stage 1: Pour
	pourStart := time.Now()
	doc, pourHit, err := r.PourWithCacheInfo(ctx, id, opts)
	if err != nil {
		return nil, err
	}
	result.Document = doc
	result.Stats.PourTime = time.Since(pourStart)
	result.Stats.Syllables = id.Len()
	result.Stats.NodeCount = doc.Count()
	result.CacheInfo.PourHit = pourHit

	docHash, err := DocumentHash(doc)
	if err != nil {
		return nil, err
	}
	result.DocumentHash = docHash

	r.Logger.Info("poured seal",
		"identifier", opts.Identifier,
		"syllables", id.Len(),
		"nodes", result.Stats.NodeCount,
		"cached", pourHit,
		"duration", result.Stats.PourTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, doc, docHash, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// PourWithCacheInfo pours the document for id with caching and returns
// cache hit info.
func (r *Runner) PourWithCacheInfo(ctx context.Context, id patp.Identifier, opts Options) (seal.Node, bool, error) {
	opts.Identifier = id.String()
	if err := opts.ValidateForPour(); err != nil {
		return seal.Node{}, false, err
	}
	r.applyLogger(&opts)

	cacheKey := r.Keyer.DocumentKey(id.String(), opts.DocumentKeyOpts(r.DictionaryHash(opts.Dictionary)))

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var doc seal.Node
			if err := json.Unmarshal(data, &doc); err == nil {
				observability.Cache().OnCacheHit(ctx, "document")
				return doc, true, nil // Cache hit
			}
			// If deserialization fails, fall through to recompute
		} else if err != nil {
			r.Logger.Warn("cache read failed", "key", cacheKey, "err", err)
		}
	}
	observability.Cache().OnCacheMiss(ctx, "document")

	hooks := observability.Pipeline()
	hooks.OnPourStart(ctx, id.String(), id.Len())
	start := time.Now()
	doc, err := seal.Pour(seal.Options{
		Identifier: id,
		Dictionary: opts.Dictionary,
		Size:       opts.Size,
		Colorway:   opts.Colorway,
	})
	hooks.OnPourComplete(ctx, id.String(), time.Since(start), err)
	if err != nil {
		return seal.Node{}, false, err
	}

	if data, err := json.Marshal(doc); err == nil {
		r.set(ctx, "document", cacheKey, data, cache.TTLDocument)
	}
	return doc, false, nil // Cache miss
}

// Pour is a convenience wrapper that calls PourWithCacheInfo and discards the cache hit info.
func (r *Runner) Pour(ctx context.Context, id patp.Identifier, opts Options) (seal.Node, error) {
	doc, _, err := r.PourWithCacheInfo(ctx, id, opts)
	return doc, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
// docHash must be the [DocumentHash] of doc.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, doc seal.Node, docHash string, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	// Try to get all formats from cache
	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(docHash, opts.ArtifactKeyOpts(format))
		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, "artifact")
				artifacts[format] = data
				continue
			}
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
		missing = append(missing, format)
	}
	if len(missing) == 0 {
		return artifacts, true, nil // All artifacts from cache
	}

	// Render the missing formats
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, missing)
	start := time.Now()
	renderOpts := opts
	renderOpts.Formats = missing
	rendered, err := Render(doc, renderOpts)
	hooks.OnRenderComplete(ctx, missing, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(docHash, opts.ArtifactKeyOpts(format))
		r.set(ctx, "artifact", cacheKey, data, cache.TTLArtifact)
		artifacts[format] = data
	}

	return artifacts, false, nil // Cache miss
}

// RenderArtifacts is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) RenderArtifacts(ctx context.Context, doc seal.Node, opts Options) (map[string][]byte, error) {
	docHash, err := DocumentHash(doc)
	if err != nil {
		return nil, err
	}
	artifacts, _, err := r.RenderWithCacheInfo(ctx, doc, docHash, opts)
	return artifacts, err
}

// DictionaryHash returns the content hash of d, or "" for nil.
func (r *Runner) DictionaryHash(d *seal.Dictionary) string {
	if d == nil {
		return ""
	}
	if h, ok := r.digests.get(d); ok {
		return h
	}
	data, err := json.Marshal(d)
	if err != nil {
		return ""
	}
	h := cache.Hash(data)
	r.digests.put(d, h)
	return h
}

// DocumentHash returns the content hash of a document tree.
func DocumentHash(doc seal.Node) (string, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("serialize document for cache key: %w", err)
	}
	return cache.Hash(data), nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) set(ctx context.Context, keyType, key string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "type", keyType, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
