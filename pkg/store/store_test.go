package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/skillmap/internal/utils/ptr"
	"github.com/agentstation/skillmap/pkg/errors"
	"github.com/agentstation/skillmap/pkg/institutions"
	"github.com/agentstation/skillmap/pkg/reconciler"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog", "skillmap.db")
	s, err := Open(context.Background(), "sqlite://"+path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func testResult(runID string, insts ...institutions.Institution) *reconciler.Result {
	r := reconciler.NewResult()
	r.RunID = runID
	r.Institutions = insts
	return r
}

func TestSaveAndList(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	catalog := []institutions.Institution{
		{
			ID:       "iti-02",
			Name:     "Government ITI Chalakudy",
			Category: institutions.CategoryITI,
			Location: &institutions.Location{District: "Thrissur"},
			Academic: &institutions.Academic{Programs: []institutions.Program{{Name: "Fitter", Seats: ptr.Int(21)}, {Name: "COPA"}}},
			Domains:  institutions.Domains{"manufacturing": 1},
			Tools:    []institutions.Tool{{Name: "Lathe", Category: "machine"}},
		},
		{ID: "co-01", Name: "Acme", Category: institutions.CategoryCompany},
	}
	require.NoError(t, s.Save(ctx, testResult("run-1", catalog...)))

	got, err := s.List(ctx)
	require.NoError(t, err)
	want := []institutions.Institution{catalog[1], catalog[0]}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("stored catalog mismatch (-want +got):\n%s", diff)
	}

	inst, err := s.Get(ctx, "iti-02")
	require.NoError(t, err)
	assert.Equal(t, "Thrissur", inst.District())

	var district string
	require.NoError(t, s.DB().QueryRowContext(ctx, `SELECT district FROM institutions WHERE id = ?`, "iti-02").Scan(&district))
	assert.Equal(t, "Thrissur", district)
}

func TestSavePrunesStaleRows(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, testResult("run-1",
		institutions.Institution{ID: "a", Name: "A"},
		institutions.Institution{ID: "b", Name: "B"},
	)))
	require.NoError(t, s.Save(ctx, testResult("run-2",
		institutions.Institution{ID: "b", Name: "B renamed"},
		institutions.Institution{ID: "c", Name: "C"},
	)))

	got, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "B renamed", got[0].Name)
	assert.Equal(t, "c", got[1].ID)

	_, err = s.Get(ctx, "a")
	assert.True(t, errors.IsNotFound(err))
}

func TestParseURL(t *testing.T) {
	tests := []struct {
		url    string
		driver string
		dsn    string
		err    bool
	}{
		{url: "sqlite:///tmp/x.db", driver: DriverSQLite, dsn: "/tmp/x.db"},
		{url: "file:x.db?cache=shared", driver: DriverSQLite, dsn: "file:x.db?cache=shared"},
		{url: "data/x.db", driver: DriverSQLite, dsn: "data/x.db"},
		{url: "postgres://localhost/skillmap", driver: DriverPostgres, dsn: "postgres://localhost/skillmap"},
		{url: "postgresql://localhost/skillmap", driver: DriverPostgres, dsn: "postgresql://localhost/skillmap"},
		{url: "mysql://localhost/skillmap", err: true},
		{url: "", err: true},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			driver, dsn, err := parseURL(tt.url)
			if tt.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.driver, driver)
			assert.Equal(t, tt.dsn, dsn)
		})
	}
}

func TestRebind(t *testing.T) {
	q := `UPDATE t SET a = ? WHERE b = ?`
	assert.Equal(t, q, dialectFor(DriverSQLite).rebind(q))
	assert.Equal(t, `UPDATE t SET a = $1 WHERE b = $2`, dialectFor(DriverPostgres).rebind(q))
}
