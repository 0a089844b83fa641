package inspect

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/skillmap"
	"github.com/agentstation/skillmap/internal/appcontext"
	"github.com/agentstation/skillmap/pkg/errors"
	"github.com/agentstation/skillmap/pkg/institutions"
	"github.com/agentstation/skillmap/pkg/logging"
)

func testApp(t *testing.T, format string) *appcontext.Mock {
	t.Helper()
	seats := 60
	client, err := skillmap.New(
		skillmap.WithLogger(logging.NewNopLogger()),
		skillmap.WithDatasets(&institutions.Datasets{
			Users: []institutions.Institution{{
				ID: "gec", Name: "Engineering College", Category: institutions.CategoryCollege,
				Academic: &institutions.Academic{Programs: []institutions.Program{{Name: "Civil Engineering", Seats: &seats}}},
			}},
		}),
	)
	require.NoError(t, err)
	return &appcontext.Mock{Client: client, Format: format}
}

func TestCommand(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{"table", "Civil Engineering (60 seats)"},
		{"json", `"name": "Engineering College"`},
		{"yaml", "id: gec"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			cmd := NewCommand(testApp(t, tt.format))
			var out bytes.Buffer
			cmd.SetOut(&out)
			cmd.SetArgs([]string{"gec"})
			require.NoError(t, cmd.ExecuteContext(context.Background()))
			assert.Contains(t, out.String(), tt.want)
		})
	}
}

func TestCommand_NotFound(t *testing.T) {
	cmd := NewCommand(testApp(t, "json"))
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"missing"})

	err := cmd.ExecuteContext(context.Background())
	assert.True(t, errors.IsNotFound(err))
}

func TestCommand_RequiresID(t *testing.T) {
	cmd := NewCommand(testApp(t, "json"))
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})
	assert.Error(t, cmd.ExecuteContext(context.Background()))
}
