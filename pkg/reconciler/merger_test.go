package reconciler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/skillmap/internal/utils/ptr"
	"github.com/agentstation/skillmap/pkg/institutions"
)

func TestMergePrograms(t *testing.T) {
	legacy := []institutions.Program{
		{Name: "Computer Science", Seats: ptr.Int(40)},
		{Name: "Electronics", Seats: ptr.Int(30)},
		{Name: "Mechanical", Seats: ptr.Int(20)},
	}

	t.Run("nil user list falls back to legacy", func(t *testing.T) {
		got := mergePrograms(nil, legacy)
		assert.Equal(t, legacy, got)
		*got[0].Seats = 1
		assert.Equal(t, 40, *legacy[0].Seats)
	})

	t.Run("empty user list is kept", func(t *testing.T) {
		got := mergePrograms([]institutions.Program{}, legacy)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("unmatched legacy programs are dropped", func(t *testing.T) {
		got := mergePrograms([]institutions.Program{{Name: "ELECTRONICS"}}, legacy)
		require.Len(t, got, 1)
		assert.Equal(t, "ELECTRONICS", got[0].Name)
		assert.Equal(t, 30, *got[0].Seats)
	})

	t.Run("user name contained in legacy name", func(t *testing.T) {
		got := mergePrograms([]institutions.Program{{Name: "science"}}, legacy)
		assert.Equal(t, 40, *got[0].Seats)
	})

	t.Run("one legacy program serves many user programs", func(t *testing.T) {
		got := mergePrograms([]institutions.Program{
			{Name: "Computer Science (Day)"},
			{Name: "Computer Science (Evening)"},
		}, legacy)
		require.Len(t, got, 2)
		assert.Equal(t, 40, *got[0].Seats)
		assert.Equal(t, 40, *got[1].Seats)
	})

	t.Run("first match wins", func(t *testing.T) {
		got := mergePrograms([]institutions.Program{{Name: "c"}}, legacy)
		assert.Equal(t, 40, *got[0].Seats)
	})

	t.Run("matched legacy program without seats", func(t *testing.T) {
		got := mergePrograms([]institutions.Program{{Name: "Welding"}}, []institutions.Program{{Name: "welding"}})
		assert.Nil(t, got[0].Seats)
	})
}

func TestMergeInstitution_DoesNotShareState(t *testing.T) {
	user := institutions.Institution{ID: "u", Location: &institutions.Location{Area: "A"}}
	legacy := institutions.Institution{
		ID:       "l",
		Location: &institutions.Location{District: "D"},
		Academic: &institutions.Academic{Programs: []institutions.Program{{Name: "P", Seats: ptr.Int(5)}}},
	}

	merged := mergeInstitution(user, legacy)
	merged.Location.District = "changed"
	*merged.Academic.Programs[0].Seats = 99

	assert.Equal(t, "D", legacy.Location.District)
	assert.Equal(t, 5, *legacy.Academic.Programs[0].Seats)
	assert.Nil(t, user.Academic)
}

func TestMergeLocation(t *testing.T) {
	assert.Nil(t, mergeLocation(nil, nil))

	l := &institutions.Location{District: "Thrissur"}
	assert.Same(t, l, mergeLocation(nil, l))

	got := mergeLocation(&institutions.Location{Area: "Kodakara", Pincode: "680684"}, &institutions.Location{District: "Thrissur", Area: "Old"})
	assert.Equal(t, &institutions.Location{District: "Thrissur", Area: "Kodakara", Pincode: "680684"}, got)
}

func TestValidate(t *testing.T) {
	errs := Validate([]institutions.Institution{
		{ID: "a", Tools: []institutions.Tool{{Name: "X"}, {Name: "X"}}},
		{ID: "a", Specializations: []string{"s", "s"}},
		{Name: "anonymous"},
	})
	assert.Len(t, errs, 4)
}
