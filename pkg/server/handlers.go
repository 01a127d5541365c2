package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/wordcloud/pkg/core/cloud"
	errs "github.com/matzehuels/wordcloud/pkg/errors"
	pkgio "github.com/matzehuels/wordcloud/pkg/io"
	"github.com/matzehuels/wordcloud/pkg/layout"
	"github.com/matzehuels/wordcloud/pkg/pipeline"
	"github.com/matzehuels/wordcloud/pkg/store"
)

// createRequest is the POST /v1/layouts body. Exactly one of Words and Text
// is required; Text is counted into words by frequency.
type createRequest struct {
	Words   json.RawMessage  `json:"words,omitempty"`
	Text    string           `json:"text,omitempty"`
	Options pipeline.Options `json:"options"`
}

type createResponse struct {
	ID     string        `json:"id"`
	Layout layout.Layout `json:"layout"`
	Cached bool          `json:"cached"`
}

type errorResponse struct {
	Code    errs.Code `json:"code"`
	Message string    `json:"message"`
}

var contentTypes = map[string]string{
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
}

func (s *Server) createLayout(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBody)

	// Request options decode on top of the server defaults.
	req := createRequest{Options: s.defaults}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			s.writeError(w, errs.New(errs.ErrCodeTooManyWords, "request body exceeds %d bytes", mbe.Limit))
			return
		}
		s.writeError(w, errs.Wrap(errs.ErrCodeInvalidInput, err, "decode request"))
		return
	}
	req.Options.AllowFontPaths = false
	req.Options.Logger = s.logger

	words, err := requestWords(req)
	if err != nil {
		s.writeError(w, err)
		return
	}

	l, hit, err := s.runner.LayoutWithCacheInfo(r.Context(), words, req.Options)
	if err != nil {
		s.writeError(w, err)
		return
	}
	id, err := s.store.Save(r.Context(), &l)
	if err != nil {
		s.writeError(w, errs.Wrap(errs.ErrCodeInternal, err, "save layout"))
		return
	}

	w.Header().Set("Location", "/v1/layouts/"+id)
	writeJSON(w, http.StatusCreated, createResponse{ID: id, Layout: l, Cached: hit})
}

func requestWords(req createRequest) ([]cloud.Word, error) {
	hasWords := len(bytes.TrimSpace(req.Words)) > 0 && string(bytes.TrimSpace(req.Words)) != "null"
	switch {
	case hasWords && req.Text != "":
		return nil, errs.New(errs.ErrCodeInvalidInput, "send either words or text, not both")
	case hasWords:
		words, err := pkgio.ReadJSON(bytes.NewReader(req.Words))
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidWord, err, "decode words")
		}
		return words, nil
	case req.Text != "":
		words, err := pkgio.ReadText(strings.NewReader(req.Text), pkgio.TextOptions{MaxWords: errs.MaxWords})
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "count text")
		}
		return words, nil
	default:
		return nil, errs.New(errs.ErrCodeInvalidInput, "words or text is required")
	}
}

func (s *Server) listLayouts(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.writeError(w, errs.New(errs.ErrCodeInvalidInput, "invalid limit %q", v))
			return
		}
		limit = n
	}
	list, err := s.store.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, errs.Wrap(errs.ErrCodeInternal, err, "list layouts"))
		return
	}
	if list == nil {
		list = []store.Summary{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"layouts": list})
}

func (s *Server) getLayout(w http.ResponseWriter, r *http.Request) {
	l, err := s.lookup(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (s *Server) deleteLayout(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !store.ValidID(id) {
		s.writeError(w, errs.New(errs.ErrCodeNotFound, "layout %q not found", id))
		return
	}
	if err := s.store.Delete(r.Context(), id); err != nil {
		s.writeError(w, storeError(id, err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) renderLayout(w http.ResponseWriter, r *http.Request) {
	l, err := s.lookup(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	q := r.URL.Query()
	opts := s.defaults
	opts.Logger = s.logger
	opts.Formats = []string{pipeline.FormatPNG}
	if f := q.Get("format"); f != "" {
		opts.Formats = []string{strings.ToLower(f)}
	}
	if v := q.Get("background"); v != "" {
		opts.Background = v
	}
	if v := q.Get("foreground"); v != "" {
		opts.Foreground = v
	}
	if v := q.Get("scale"); v != "" {
		scale, err := strconv.ParseFloat(v, 64)
		if err != nil {
			s.writeError(w, errs.New(errs.ErrCodeInvalidInput, "invalid scale %q", v))
			return
		}
		opts.Scale = scale
	}
	if v := q.Get("embed_font"); v != "" {
		opts.EmbedFont, _ = strconv.ParseBool(v)
	}

	artifacts, err := s.runner.Render(r.Context(), l, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	format := opts.Formats[0]
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifacts[format])
}

func (s *Server) lookup(r *http.Request) (layout.Layout, error) {
	id := chi.URLParam(r, "id")
	if !store.ValidID(id) {
		return layout.Layout{}, errs.New(errs.ErrCodeNotFound, "layout %q not found", id)
	}
	l, err := s.store.Get(r.Context(), id)
	if err != nil {
		return layout.Layout{}, storeError(id, err)
	}
	return l, nil
}

func storeError(id string, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return errs.Wrap(errs.ErrCodeNotFound, err, "layout %q not found", id)
	}
	return errs.Wrap(errs.ErrCodeInternal, err, "load layout")
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := errs.HTTPStatus(err)
	resp := errorResponse{Code: errs.GetCode(err), Message: errs.Detail(err)}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
		if resp.Code == "" || resp.Code == errs.ErrCodeInternal {
			resp = errorResponse{Code: errs.ErrCodeInternal, Message: "internal error"}
		}
	}
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
