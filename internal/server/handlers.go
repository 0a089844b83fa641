package server

import (
	"net/http"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/agentstation/skillmap/internal/server/response"
	"github.com/agentstation/skillmap/pkg/errors"
	"github.com/agentstation/skillmap/pkg/institutions"
	"github.com/agentstation/skillmap/pkg/logging"
	"github.com/agentstation/skillmap/pkg/reconciler"
)

// ListResponse is the payload of GET /institutions.
type ListResponse struct {
	Institutions []institutions.Institution `json:"institutions"`
	Count        int                        `json:"count"`
}

// StatsResponse is the payload of GET /stats.
type StatsResponse struct {
	RunID      string                        `json:"run_id"`
	Stats      reconciler.Statistics         `json:"stats"`
	Failures   []reconciler.InferenceFailure `json:"failures"`
	Warnings   []string                      `json:"warnings"`
	Categories []institutions.Category       `json:"categories"`
	Inferrer   string                        `json:"inferrer"`
	BuiltAt    string                        `json:"built_at"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, map[string]any{
		"status": "ok",
		"uptime": time.Since(s.startTime).Round(time.Second).String(),
	})
}

// handleListInstitutions filters by category, district and a free text query.
// Filters combine with AND.
func (s *Server) handleListInstitutions(w http.ResponseWriter, r *http.Request) {
	catalog, ok := s.catalog(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	list := catalog.List()

	if c := q.Get("category"); c != "" {
		category := institutions.Category(c)
		if !slices.Contains(catalog.Categories(), category) && !category.Valid() {
			response.ErrorFromType(w, errors.NewValidationError("category", c, "unknown category"))
			return
		}
		list = keep(list, catalog.ByCategory(category))
	}
	if d := q.Get("district"); d != "" {
		list = keep(list, catalog.ByDistrict(d))
	}
	if text := q.Get("q"); text != "" {
		list = keep(list, catalog.Search(text))
	}

	response.OK(w, ListResponse{Institutions: list, Count: len(list)})
}

func (s *Server) handleGetInstitution(w http.ResponseWriter, r *http.Request) {
	catalog, ok := s.catalog(w, r)
	if !ok {
		return
	}

	inst, err := catalog.Get(chi.URLParam(r, "id"))
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.OK(w, inst)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	result, ok := s.result(w, r)
	if !ok {
		return
	}
	catalog, ok := s.catalog(w, r)
	if !ok {
		return
	}

	response.OK(w, StatsResponse{
		RunID:      result.RunID,
		Stats:      result.Stats,
		Failures:   result.Failures,
		Warnings:   result.Warnings,
		Categories: catalog.Categories(),
		Inferrer:   result.Metadata.Inferrer,
		BuiltAt:    result.Metadata.EndTime.Format(time.RFC3339),
	})
}

func (s *Server) result(w http.ResponseWriter, r *http.Request) (*reconciler.Result, bool) {
	result, err := s.source.Result(r.Context())
	if err != nil {
		logging.FromContext(r.Context()).Error().Err(err).Msg("Catalog unavailable")
		response.ServiceUnavailable(w, "catalog is not available")
		return nil, false
	}
	return result, true
}

func (s *Server) catalog(w http.ResponseWriter, r *http.Request) (*institutions.Collection, bool) {
	catalog, err := s.source.Catalog(r.Context())
	if err != nil {
		logging.FromContext(r.Context()).Error().Err(err).Msg("Catalog unavailable")
		response.ServiceUnavailable(w, "catalog is not available")
		return nil, false
	}
	return catalog, true
}

// keep returns the members of list that also appear in subset, in list order.
func keep(list, subset []institutions.Institution) []institutions.Institution {
	ids := make(map[string]bool, len(subset))
	for _, inst := range subset {
		ids[inst.ID] = true
	}
	out := make([]institutions.Institution, 0, len(subset))
	for _, inst := range list {
		if ids[inst.ID] {
			out = append(out, inst)
		}
	}
	return out
}
