package validate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/skillmap"
	"github.com/agentstation/skillmap/internal/appcontext"
	skerrors "github.com/agentstation/skillmap/pkg/errors"
	"github.com/agentstation/skillmap/pkg/inference"
	"github.com/agentstation/skillmap/pkg/institutions"
	"github.com/agentstation/skillmap/pkg/logging"
	"github.com/agentstation/skillmap/pkg/reconciler"
)

func testApp(t *testing.T, format string, inf inference.Inferrer) *appcontext.Mock {
	t.Helper()
	client, err := skillmap.New(
		skillmap.WithLogger(logging.NewNopLogger()),
		skillmap.WithInferrer(inf),
		skillmap.WithDatasets(&institutions.Datasets{
			Users:     []institutions.Institution{{ID: "a"}, {ID: "b"}},
			Companies: []institutions.Institution{{ID: "a", Category: institutions.CategoryCompany}},
		}),
	)
	require.NoError(t, err)
	return &appcontext.Mock{Client: client, Format: format}
}

var (
	succeed = inference.Func(func(institutions.Institution) (inference.Skills, error) {
		return inference.Skills{}, nil
	})
	failB = inference.Func(func(inst institutions.Institution) (inference.Skills, error) {
		if inst.ID == "b" {
			return inference.Skills{}, errors.New("model unavailable")
		}
		return inference.Skills{}, nil
	})
)

func TestCommand_Valid(t *testing.T) {
	cmd := NewCommand(testApp(t, "table", succeed))
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.ExecuteContext(context.Background()))
	assert.Contains(t, out.String(), "catalog is valid")
	// colliding company id is reported as a warning
	assert.Contains(t, out.String(), "Warnings (1)")
}

func TestCommand_JSONReport(t *testing.T) {
	cmd := NewCommand(testApp(t, "json", failB))
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	var report Report
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))
	assert.Empty(t, report.Violations)
	require.Len(t, report.Failures, 1)
	assert.Equal(t, "b", report.Failures[0].ID)
	assert.Equal(t, 2, report.Stats.Total)
}

func TestCommand_Strict(t *testing.T) {
	cmd := NewCommand(testApp(t, "json", failB))
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--strict"})

	err := cmd.ExecuteContext(context.Background())
	assert.True(t, skerrors.IsValidationError(err))
}

func TestNewReport_Violations(t *testing.T) {
	result := reconciler.NewResult()
	result.Institutions = []institutions.Institution{{ID: "x"}, {ID: "x"}}

	report := NewReport(result)
	assert.Len(t, report.Violations, 1)
}
