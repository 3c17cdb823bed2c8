package server

import (
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/sigil/pkg/buildinfo"
	"github.com/matzehuels/sigil/pkg/core/patp"
	"github.com/matzehuels/sigil/pkg/core/seal"
	"github.com/matzehuels/sigil/pkg/errors"
	"github.com/matzehuels/sigil/pkg/httputil"
	"github.com/matzehuels/sigil/pkg/pipeline"
)

// ColorwayResponse is one entry of the colorway listing.
type ColorwayResponse struct {
	Index      int      `json:"index"`
	Colors     []string `json:"colors"`
	Identifier string   `json:"identifier,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleSeal(w http.ResponseWriter, r *http.Request) {
	identifier, format := splitSealName(chi.URLParam(r, "seal"))
	q := r.URL.Query()

	opts := pipeline.Options{
		Identifier: identifier,
		Formats:    []string{format},
		Dictionary: s.dict,
		Logger:     s.logger,
	}
	var err error
	if opts.Size, err = floatParam(q.Get("size")); err != nil {
		s.fail(w, r, err)
		return
	}
	if opts.Scale, err = floatParam(q.Get("scale")); err != nil {
		s.fail(w, r, err)
		return
	}
	if opts.Title, err = boolParam(q.Get("title")); err != nil {
		s.fail(w, r, err)
		return
	}
	cw, err := pipeline.ParseColorway(q.Get("colorway"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	opts.Colorway = cw

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	data := result.Artifacts[format]

	httputil.CacheControl(w, s.maxAge)
	if httputil.NotModified(w, r, httputil.ETag(data)) {
		return
	}
	cacheStatus := "miss"
	if result.CacheInfo.PourHit && result.CacheInfo.RenderHit {
		cacheStatus = "hit"
	}
	w.Header().Set("X-Seal-Cache", cacheStatus)
	w.Header().Set("Content-Type", pipeline.ContentTypes[format])
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	_, _ = w.Write(data)
}

func (s *Server) handleColorways(w http.ResponseWriter, r *http.Request) {
	colorways := seal.Colorways()
	out := make([]ColorwayResponse, len(colorways))
	for i, cw := range colorways {
		out[i] = ColorwayResponse{Index: i, Colors: cw}
	}
	_ = httputil.WriteJSON(w, http.StatusOK, out)
}

func (s *Server) handleColorwayFor(w http.ResponseWriter, r *http.Request) {
	id, err := patp.Parse(chi.URLParam(r, "identifier"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	_ = httputil.WriteJSON(w, http.StatusOK, ColorwayResponse{
		Index:      seal.ColorwayIndex(id),
		Colors:     seal.SelectColorway(id),
		Identifier: id.String(),
	})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	count, err := strconv.Atoi(chi.URLParam(r, "count"))
	if err != nil {
		s.fail(w, r, errors.New(errors.ErrCodeInvalidInput, "count must be an integer"))
		return
	}
	if err := pipeline.ValidateSymbolCount(count); err != nil {
		s.fail(w, r, err)
		return
	}
	size, err := floatParam(r.URL.Query().Get("size"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if size == 0 {
		size = seal.DefaultSize
	}
	if err := pipeline.ValidateSize(size); err != nil {
		s.fail(w, r, err)
		return
	}
	l, err := seal.NewLayout(count, seal.Unit, size, seal.BorderRatio)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	_ = httputil.WriteJSON(w, http.StatusOK, l)
}

// fail writes err and logs server-side failures with their cause.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	if status := httputil.WriteError(w, err); status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err, "request_id", RequestID(r.Context()))
	}
}

// splitSealName splits "~ridlur-figbud.png" into identifier and format.
// A name without an extension is an SVG request.
func splitSealName(name string) (identifier, format string) {
	ext := path.Ext(name)
	if ext == "" {
		return name, pipeline.FormatSVG
	}
	return strings.TrimSuffix(name, ext), strings.ToLower(ext[1:])
}

func floatParam(v string) (float64, error) {
	if v == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "not a number: %q", v)
	}
	return f, nil
}

func boolParam(v string) (bool, error) {
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, errors.New(errors.ErrCodeInvalidInput, "not a boolean: %q", v)
	}
	return b, nil
}
