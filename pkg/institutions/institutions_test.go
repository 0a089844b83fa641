package institutions_test

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/skillmap/internal/utils/ptr"
	"github.com/agentstation/skillmap/pkg/errors"
	"github.com/agentstation/skillmap/pkg/institutions"
)

func sampleInstitutions() []institutions.Institution {
	return []institutions.Institution{
		{
			ID:       "gptc-01",
			Name:     "Government Polytechnic College",
			Category: institutions.CategoryPolytechnic,
			Location: &institutions.Location{District: "Thrissur", Area: "Kunnamkulam"},
		},
		{
			ID:       "iti-02",
			Name:     "Industrial Training Institute",
			Category: institutions.CategoryITI,
			Location: &institutions.Location{District: "Palakkad", Area: "Malampuzha"},
		},
		{
			ID:       "acme",
			Name:     "Acme Fabrication Works",
			Category: institutions.CategoryCompany,
		},
	}
}

func TestCloneIsDeep(t *testing.T) {
	orig := institutions.Institution{
		ID:       "x",
		Location: &institutions.Location{Area: "Town"},
		Academic: &institutions.Academic{Programs: []institutions.Program{{Name: "CS", Seats: ptr.Int(40)}}},
		Domains:  institutions.Domains{"it": 1},
		Tools:    []institutions.Tool{{Name: "Python"}},
	}

	clone := orig.Clone()
	clone.Location.Area = "Village"
	*clone.Academic.Programs[0].Seats = 10
	clone.Domains["it"] = 5
	clone.Tools[0].Name = "Go"

	assert.Equal(t, "Town", orig.Location.Area)
	assert.Equal(t, 40, *orig.Academic.Programs[0].Seats)
	assert.Equal(t, 1.0, orig.Domains["it"])
	assert.Equal(t, "Python", orig.Tools[0].Name)
}

func TestCloneKeepsNilPrograms(t *testing.T) {
	orig := institutions.Institution{ID: "x", Academic: &institutions.Academic{Affiliation: "KTU"}}
	assert.Nil(t, orig.Clone().Academic.Programs)
}

func TestCollection(t *testing.T) {
	c := institutions.NewCollection(sampleInstitutions())

	t.Run("get", func(t *testing.T) {
		inst, err := c.Get("iti-02")
		require.NoError(t, err)
		assert.Equal(t, "Industrial Training Institute", inst.Name)

		_, err = c.Get("missing")
		assert.True(t, errors.IsNotFound(err))
	})

	t.Run("by category", func(t *testing.T) {
		got := c.ByCategory(institutions.CategoryCompany)
		require.Len(t, got, 1)
		assert.Equal(t, "acme", got[0].ID)
	})

	t.Run("by district ignores case", func(t *testing.T) {
		got := c.ByDistrict("THRISSUR")
		require.Len(t, got, 1)
		assert.Equal(t, "gptc-01", got[0].ID)
	})

	t.Run("search name and area", func(t *testing.T) {
		assert.Len(t, c.Search("polytechnic"), 1)
		assert.Len(t, c.Search("malampuzha"), 1)
		assert.Len(t, c.Search(""), 3)
		assert.Empty(t, c.Search("nowhere"))
	})

	t.Run("categories sorted", func(t *testing.T) {
		assert.Equal(t, []institutions.Category{
			institutions.CategoryCompany,
			institutions.CategoryITI,
			institutions.CategoryPolytechnic,
		}, c.Categories())
	})

	t.Run("results are copies", func(t *testing.T) {
		list := c.List()
		list[0].Location.Area = "changed"
		inst, err := c.Get("gptc-01")
		require.NoError(t, err)
		assert.Equal(t, "Kunnamkulam", inst.Area())
	})
}

func TestLoad(t *testing.T) {
	fsys := fstest.MapFS{
		institutions.UsersFile: {Data: []byte(`
- id: a1
  name: Alpha Coll
  academic:
    programs:
      - name: CS
`)},
		institutions.LegacyFile: {Data: []byte(`
- id: legacy-a1
  name: Alpha College
  location:
    area: Town
  academic:
    programs:
      - name: Computer Science
        seats: 40
`)},
		institutions.AliasesFile: {Data: []byte(`a1: legacy-a1
`)},
	}

	ds, err := institutions.Load(fsys)
	require.NoError(t, err)

	require.Len(t, ds.Users, 1)
	require.Len(t, ds.Legacy, 1)
	assert.Empty(t, ds.Companies)
	assert.Equal(t, map[string]string{"a1": "legacy-a1"}, ds.Aliases)
	assert.Nil(t, ds.Users[0].Academic.Programs[0].Seats)
	require.NotNil(t, ds.Legacy[0].Academic.Programs[0].Seats)
	assert.Equal(t, 40, *ds.Legacy[0].Academic.Programs[0].Seats)
	assert.Equal(t, 2, ds.Size())
}

func TestLoadMalformed(t *testing.T) {
	fsys := fstest.MapFS{
		institutions.UsersFile: {Data: []byte("- id: [unterminated")},
	}

	_, err := institutions.Load(fsys)
	require.Error(t, err)
	assert.Contains(t, err.Error(), institutions.UsersFile)
}

func TestCategoryValid(t *testing.T) {
	assert.True(t, institutions.CategoryTrainingCenter.Valid())
	assert.False(t, institutions.Category("spaceport").Valid())
	assert.False(t, institutions.Category("").Valid())
}
