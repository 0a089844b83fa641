package reconciler

import "github.com/agentstation/skillmap/pkg/institutions"

// userIndex is an insertion-ordered map of user records keyed by id.
// Putting an id that already exists replaces the stored record but keeps the
// position of the first occurrence: last write wins.
type userIndex struct {
	order    []string
	byID     map[string]institutions.Institution
	replaced int
}

func newUserIndex(users []institutions.Institution) *userIndex {
	idx := &userIndex{byID: make(map[string]institutions.Institution, len(users))}
	for _, u := range users {
		idx.put(u)
	}
	return idx
}

func (idx *userIndex) put(inst institutions.Institution) {
	if _, exists := idx.byID[inst.ID]; exists {
		idx.replaced++
	} else {
		idx.order = append(idx.order, inst.ID)
	}
	idx.byID[inst.ID] = inst
}

func (idx *userIndex) len() int {
	return len(idx.order)
}

// list returns the deduplicated records in first-occurrence order.
func (idx *userIndex) list() []institutions.Institution {
	out := make([]institutions.Institution, 0, len(idx.order))
	for _, id := range idx.order {
		out = append(out, idx.byID[id])
	}
	return out
}

// legacyIndex looks legacy records up by id. The first record with an id wins.
type legacyIndex map[string]institutions.Institution

func newLegacyIndex(legacy []institutions.Institution) legacyIndex {
	idx := make(legacyIndex, len(legacy))
	for _, l := range legacy {
		if _, exists := idx[l.ID]; !exists {
			idx[l.ID] = l
		}
	}
	return idx
}

func (idx legacyIndex) get(id string) (institutions.Institution, bool) {
	l, ok := idx[id]
	return l, ok
}

// resolveLegacyID returns the legacy id for a user id: its alias if one is
// mapped, otherwise the user id itself.
func resolveLegacyID(userID string, aliases map[string]string) string {
	if legacyID, ok := aliases[userID]; ok {
		return legacyID
	}
	return userID
}

// excludedLegacyIDs returns the legacy ids that must not be appended on their
// own: every id already in the merged output, every alias target whether or
// not a merge happened, and every user id as a direct-match safety net.
func excludedLegacyIDs(users *userIndex, aliases map[string]string) map[string]bool {
	excluded := make(map[string]bool, users.len()+len(aliases))
	for _, id := range users.order {
		excluded[id] = true
	}
	for _, legacyID := range aliases {
		excluded[legacyID] = true
	}
	return excluded
}
