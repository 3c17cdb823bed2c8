// Package cache stores rendered seal documents and artifacts.
//
// Rendering is deterministic, so every output is a pure function of its
// inputs: identifier, dictionary content, canvas size, colorway and format.
// [Keyer] turns those inputs into stable keys and [Cache] implementations
// hold the bytes. Four backends are available:
//
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [RedisCache]: a shared Redis instance (server deployments)
//   - [MongoCache]: a MongoDB collection with a TTL index
//   - [NullCache]: caching disabled
//
// Use [Open] to construct a backend from a [Config].
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"
)

// Cache is a byte store with per-entry expiration. Implementations must be
// safe for concurrent use.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero stores without expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Default TTLs. Outputs never go stale for a fixed input, so these bound
// storage growth rather than freshness.
const (
	TTLDocument = 30 * 24 * time.Hour
	TTLArtifact = 30 * 24 * time.Hour
)

// Keyer builds cache keys.
type Keyer interface {
	// DocumentKey identifies a poured document tree.
	DocumentKey(identifier string, opts DocumentKeyOpts) string

	// ArtifactKey identifies a rendered artifact of a document.
	ArtifactKey(documentHash string, opts ArtifactKeyOpts) string
}

// DocumentKeyOpts are the pour inputs besides the identifier.
type DocumentKeyOpts struct {
	DictionaryHash string   `json:"dictionary_hash,omitempty"`
	Size           float64  `json:"size"`
	Colorway       []string `json:"colorway,omitempty"`
}

// ArtifactKeyOpts are the render inputs besides the document.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Scale  float64 `json:"scale,omitempty"`
	Title  string  `json:"title,omitempty"`
}

// DefaultKeyer produces "document:<sha256>" and "artifact:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// DocumentKey hashes the identifier together with opts.
func (DefaultKeyer) DocumentKey(identifier string, opts DocumentKeyOpts) string {
	return "document:" + hashJSON(identifier, opts)
}

// ArtifactKey hashes the document hash together with opts.
func (DefaultKeyer) ArtifactKey(documentHash string, opts ArtifactKeyOpts) string {
	return "artifact:" + hashJSON(documentHash, opts)
}

// hashJSON hashes the JSON encoding of parts. Key option structs only hold
// strings and numbers, so encoding cannot fail.
func hashJSON(parts ...any) string {
	data, _ := json.Marshal(parts)
	return Hash(data)
}

// Hash returns the hex SHA-256 of data. Document and dictionary digests use
// it too, so equal content always maps to the same key.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// NullCache stores nothing; every Get misses. It backs --no-cache and the
// "none" backend, so the pipeline runs the same code path with or without
// caching.
type NullCache struct{}

// NewNullCache returns a cache that never stores anything.
func NewNullCache() Cache { return &NullCache{} }

func (*NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (*NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (*NullCache) Delete(context.Context, string) error                     { return nil }
func (*NullCache) Close() error                                             { return nil }

var _ Cache = (*NullCache)(nil)
