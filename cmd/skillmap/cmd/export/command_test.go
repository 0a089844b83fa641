package export

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/skillmap"
	"github.com/agentstation/skillmap/internal/appcontext"
	"github.com/agentstation/skillmap/pkg/errors"
	"github.com/agentstation/skillmap/pkg/institutions"
	"github.com/agentstation/skillmap/pkg/logging"
	"github.com/agentstation/skillmap/pkg/store"
)

func testClient(t *testing.T) skillmap.Client {
	t.Helper()
	client, err := skillmap.New(
		skillmap.WithLogger(logging.NewNopLogger()),
		skillmap.WithDatasets(&institutions.Datasets{
			Users: []institutions.Institution{{ID: "a", Name: "Alpha"}, {ID: "b", Name: "Beta"}},
		}),
	)
	require.NoError(t, err)
	return client
}

func TestCommand_SQLite(t *testing.T) {
	dbURL := "sqlite://" + filepath.Join(t.TempDir(), "catalog.db")
	app := &appcontext.Mock{Client: testClient(t), DatabaseStr: dbURL}

	cmd := NewCommand(app)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.ExecuteContext(context.Background()))
	assert.Contains(t, out.String(), "Exported 2 institutions")

	st, err := store.Open(context.Background(), dbURL)
	require.NoError(t, err)
	defer st.Close()

	saved, err := st.List(context.Background())
	require.NoError(t, err)
	require.Len(t, saved, 2)
	assert.Equal(t, "Alpha", saved[0].Name)
}

func TestCommand_FlagOverridesConfig(t *testing.T) {
	dbURL := "sqlite://" + filepath.Join(t.TempDir(), "flag.db")
	app := &appcontext.Mock{Client: testClient(t), DatabaseStr: "postgres://unused"}

	cmd := NewCommand(app)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--database-url", dbURL})
	require.NoError(t, cmd.ExecuteContext(context.Background()))
}

func TestCommand_NoDatabase(t *testing.T) {
	cmd := NewCommand(&appcontext.Mock{Client: testClient(t)})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	err := cmd.ExecuteContext(context.Background())
	assert.True(t, errors.IsValidationError(err))
}

func TestCommand_DryRun(t *testing.T) {
	dbURL := "sqlite://" + filepath.Join(t.TempDir(), "dry.db")
	app := &appcontext.Mock{Client: testClient(t), DatabaseStr: dbURL}

	cmd := NewCommand(app)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--dry-run"})
	require.NoError(t, cmd.ExecuteContext(context.Background()))
	assert.Contains(t, out.String(), "Dry run: 2 added, 0 updated, 0 removed")
	assert.Contains(t, out.String(), "+ a (Alpha)")

	st, err := store.Open(context.Background(), dbURL)
	require.NoError(t, err)
	defer st.Close()

	saved, err := st.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, saved)
}

func TestCommand_ReportsNoChanges(t *testing.T) {
	dbURL := "sqlite://" + filepath.Join(t.TempDir(), "again.db")
	app := &appcontext.Mock{Client: testClient(t), DatabaseStr: dbURL}

	for range 2 {
		cmd := NewCommand(app)
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetArgs([]string{})
		require.NoError(t, cmd.ExecuteContext(context.Background()))
	}

	cmd := NewCommand(app)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.ExecuteContext(context.Background()))
	assert.Contains(t, out.String(), "no changes")
}
