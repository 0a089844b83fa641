package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/skillmap/pkg/inference"
	"github.com/agentstation/skillmap/pkg/institutions"
	"github.com/agentstation/skillmap/pkg/logging"
	"github.com/agentstation/skillmap/pkg/metrics"
	"github.com/agentstation/skillmap/pkg/reconciler"
)

// staticSource serves a prebuilt result and its catalog, counting catalog lookups.
type staticSource struct {
	result  *reconciler.Result
	catalog *institutions.Collection
	lookups *int
	err     error
}

func newStaticSource(result *reconciler.Result) staticSource {
	return staticSource{result: result, catalog: result.Collection(), lookups: new(int)}
}

func (s staticSource) Catalog(context.Context) (*institutions.Collection, error) {
	if s.lookups != nil {
		*s.lookups++
	}
	return s.catalog, s.err
}

func (s staticSource) Result(context.Context) (*reconciler.Result, error) {
	return s.result, s.err
}

type envelope[T any] struct {
	Data  T `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func buildResult(t *testing.T, reg prometheus.Registerer) *reconciler.Result {
	t.Helper()
	failing := inference.Func(func(inst institutions.Institution) (inference.Skills, error) {
		if inst.ID == "co-1" {
			return inference.Skills{}, errors.New("no signal")
		}
		return inference.Skills{}, nil
	})
	r, err := reconciler.New(reconciler.WithInferrer(failing), reconciler.WithMetrics(metrics.New(reg)))
	require.NoError(t, err)

	return r.Institutions(context.Background(), &institutions.Datasets{
		Users: []institutions.Institution{
			{ID: "iti-1", Name: "ITI Chalakudy", Category: institutions.CategoryITI, Location: &institutions.Location{District: "Thrissur", Area: "Chalakudy"}},
			{ID: "col-1", Name: "St. Thomas College", Category: institutions.CategoryCollege, Location: &institutions.Location{District: "Thrissur"}},
			{ID: "col-2", Name: "Maharaja's College", Category: institutions.CategoryCollege, Location: &institutions.Location{District: "Ernakulam"}},
		},
		Companies: []institutions.Institution{{ID: "co-1", Name: "Acme", Category: institutions.CategoryCompany}},
	})
}

func newTestServer(t *testing.T, src Source) (http.Handler, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	if src == nil {
		src = newStaticSource(buildResult(t, reg))
	}
	s := New(src, DefaultConfig(), reg, logging.NewNopLogger())
	return s.Handler(), reg
}

func get[T any](t *testing.T, h http.Handler, target string) (int, envelope[T]) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	var env envelope[T]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec.Code, env
}

func TestHealth(t *testing.T) {
	h, _ := newTestServer(t, nil)
	code, env := get[map[string]string](t, h, "/health")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", env.Data["status"])
}

func TestListInstitutions(t *testing.T) {
	h, _ := newTestServer(t, nil)

	tests := []struct {
		query string
		want  []string
	}{
		{query: "", want: []string{"iti-1", "col-1", "col-2", "co-1"}},
		{query: "?category=college", want: []string{"col-1", "col-2"}},
		{query: "?district=thrissur", want: []string{"iti-1", "col-1"}},
		{query: "?category=college&district=Thrissur", want: []string{"col-1"}},
		{query: "?q=chalakudy", want: []string{"iti-1"}},
		{query: "?category=university", want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			code, env := get[ListResponse](t, h, "/api/v1/institutions"+tt.query)
			require.Equal(t, http.StatusOK, code)
			got := []string{}
			for _, inst := range env.Data.Institutions {
				got = append(got, inst.ID)
			}
			assert.Equal(t, tt.want, got)
			assert.Equal(t, len(tt.want), env.Data.Count)
		})
	}
}

func TestListInstitutions_UnknownCategory(t *testing.T) {
	h, _ := newTestServer(t, nil)
	code, env := get[any](t, h, "/api/v1/institutions?category=spaceport")
	assert.Equal(t, http.StatusBadRequest, code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "BAD_REQUEST", env.Error.Code)
}

func TestGetInstitution(t *testing.T) {
	h, _ := newTestServer(t, nil)

	code, env := get[institutions.Institution](t, h, "/api/v1/institutions/col-2")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Maharaja's College", env.Data.Name)

	code, missing := get[any](t, h, "/api/v1/institutions/nope")
	assert.Equal(t, http.StatusNotFound, code)
	require.NotNil(t, missing.Error)
	assert.Equal(t, "NOT_FOUND", missing.Error.Code)
}

func TestStats(t *testing.T) {
	h, _ := newTestServer(t, nil)
	code, env := get[StatsResponse](t, h, "/api/v1/stats")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 4, env.Data.Stats.Total)
	assert.Equal(t, 1, env.Data.Stats.InferenceFailures)
	require.Len(t, env.Data.Failures, 1)
	assert.Equal(t, "co-1", env.Data.Failures[0].ID)
	assert.Equal(t, []institutions.Category{"college", "company", "iti"}, env.Data.Categories)
	assert.Equal(t, "func", env.Data.Inferrer)
}

func TestSourceUnavailable(t *testing.T) {
	h, _ := newTestServer(t, staticSource{err: errors.New("load failed")})
	code, env := get[any](t, h, "/api/v1/institutions")
	assert.Equal(t, http.StatusServiceUnavailable, code)
	require.NotNil(t, env.Error)
}

func TestHandlersServeSourceCatalog(t *testing.T) {
	reg := prometheus.NewRegistry()
	src := newStaticSource(buildResult(t, reg))
	// The cached catalog is authoritative even if it differs from the result
	src.catalog = institutions.NewCollection([]institutions.Institution{{ID: "cached", Name: "Cached Only"}})
	h := New(src, DefaultConfig(), reg, logging.NewNopLogger()).Handler()

	status, list := get[ListResponse](t, h, "/api/v1/institutions")
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, 1, list.Data.Count)
	assert.Equal(t, "cached", list.Data.Institutions[0].ID)

	status, _ = get[institutions.Institution](t, h, "/api/v1/institutions/cached")
	assert.Equal(t, http.StatusOK, status)

	status, stats := get[StatsResponse](t, h, "/api/v1/stats")
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, stats.Data.Categories)

	assert.Equal(t, 3, *src.lookups)
}

func TestMetricsEndpoint(t *testing.T) {
	h, _ := newTestServer(t, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "skillmap_catalog_builds_total 1")
	assert.Contains(t, rec.Body.String(), `skillmap_catalog_records_total{source="company"} 1`)
}

func TestUnknownRoute(t *testing.T) {
	h, _ := newTestServer(t, nil)
	code, env := get[any](t, h, "/api/v2/everything")
	assert.Equal(t, http.StatusNotFound, code)
	require.NotNil(t, env.Error)
}
