// Package pipeline provides the seal rendering pipeline shared by the CLI
// and the HTTP API.
//
// This package implements the complete pour → render pipeline with caching.
// By centralizing this logic, the CLI and the server produce identical bytes
// for identical requests.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Pour: Decompose the identifier, resolve symbols, lay out, place and
//     colorize them into a document tree
//  2. Render: Serialize the document in each requested format (SVG, PNG,
//     PDF, JSON, DOT)
//
// Each stage is cached independently. Documents are keyed by their inputs;
// artifacts by the document's content hash, so two requests that pour the
// same tree share rendered bytes.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Identifier: "~ridlur-figbud",
//	    Dictionary: dict,
//	    Formats:    []string{"svg", "png"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/sigil/pkg/cache"
	"github.com/matzehuels/sigil/pkg/core/patp"
	"github.com/matzehuels/sigil/pkg/core/seal"
	"github.com/matzehuels/sigil/pkg/errors"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultSize is the default canvas edge length.
	DefaultSize = seal.DefaultSize

	// MaxSize bounds the canvas so a single request cannot rasterize an
	// arbitrarily large PNG.
	MaxSize = 4096.0

	// DefaultScale is the default PNG scale factor.
	DefaultScale = 1.0

	// MaxScale bounds the PNG scale factor.
	MaxScale = 8.0

	// MaxSymbols bounds standalone layout requests. Identifiers that pass
	// [errors.ValidateIdentifierText] stay well below it.
	MaxSymbols = 256
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
	FormatDOT:  true,
}

// ContentTypes maps formats to MIME types.
var ContentTypes = map[string]string{
	FormatSVG:  "image/svg+xml",
	FormatPNG:  "image/png",
	FormatPDF:  "application/pdf",
	FormatJSON: "application/json",
	FormatDOT:  "text/vnd.graphviz",
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Pour options
	Identifier string   `json:"identifier"`
	Size       float64  `json:"size,omitempty"`
	Colorway   []string `json:"colorway,omitempty"` // Overrides the derived colorway
	Refresh    bool     `json:"refresh,omitempty"`  // Bypass cache reads

	// Render options
	Formats []string `json:"formats,omitempty"`
	Scale   float64  `json:"scale,omitempty"` // PNG only
	Title   bool     `json:"title,omitempty"` // Embed the identifier as an SVG <title>

	// Runtime options (not serialized)
	Dictionary *seal.Dictionary `json:"-"`
	Logger     *log.Logger      `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Identifier is the decomposed identifier.
	Identifier patp.Identifier

	// Document is the poured document tree.
	Document seal.Node

	// DocumentHash is the content hash of the document.
	DocumentHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Syllables  int
	NodeCount  int
	PourTime   time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	PourHit   bool // Whether the document came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, pdf, json, dot)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateSize checks a canvas size. Zero selects the default.
func ValidateSize(size float64) error {
	if math.IsNaN(size) || size < 0 || size > MaxSize {
		return errors.New(errors.ErrCodeInvalidInput, "size must be between 1 and %v, got %v", MaxSize, size)
	}
	return nil
}

// ValidateSymbolCount checks a layout symbol count against [MaxSymbols].
// Shape rules (one or an even count) are left to the layout itself.
func ValidateSymbolCount(n int) error {
	if n < 1 || n > MaxSymbols {
		return errors.New(errors.ErrCodeInvalidInput, "symbol count must be between 1 and %d, got %d", MaxSymbols, n)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForPour(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForPour checks the identifier, size and colorway and applies pour
// defaults.
func (o *Options) ValidateForPour() error {
	o.Identifier = strings.ToLower(strings.TrimSpace(o.Identifier))
	if err := errors.ValidateIdentifierText(o.Identifier); err != nil {
		return err
	}
	if err := ValidateSize(o.Size); err != nil {
		return err
	}
	if o.Size == 0 {
		o.Size = DefaultSize
	}
	if len(o.Colorway) > 0 {
		if err := errors.ValidateColorway(o.Colorway); err != nil {
			return err
		}
	}
	o.setLogger()
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	o.setLogger()
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if math.IsNaN(o.Scale) || o.Scale < 0 || o.Scale > MaxScale {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be between 0 and %v, got %v", MaxScale, o.Scale)
	}
	return ValidateFormats(o.Formats)
}

func (o *Options) setLogger() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// DocumentKeyOpts returns cache key options for the pour stage.
func (o *Options) DocumentKeyOpts(dictionaryHash string) cache.DocumentKeyOpts {
	return cache.DocumentKeyOpts{
		DictionaryHash: dictionaryHash,
		Size:           o.Size,
		Colorway:       slices.Clone(o.Colorway),
	}
}

// ArtifactKeyOpts returns cache key options for one rendered format.
// Options that do not affect a format are left out of its key.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format}
	if format == FormatPNG {
		k.Scale = o.Scale
	}
	if o.Title && (format == FormatSVG || format == FormatPNG || format == FormatPDF) {
		k.Title = o.Identifier
	}
	return k
}
