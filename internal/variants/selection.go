package variants

// Selection tracks which terms are chosen per term group. Group insertion
// order is preserved so that iterating the same selection always yields
// combinations in the same order (callers assert on exact output ordering).
//
// No validation of id existence happens here: unknown group or term ids are
// accepted and simply produce no combinations downstream.
type Selection struct {
	order []int64
	terms map[int64][]int64
}

// GroupTerms is one term group with its selected terms, in selection order.
type GroupTerms struct {
	GroupID int64
	TermIDs []int64
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{terms: make(map[int64][]int64)}
}

// Toggle adds termID to the group's set if absent, removes it if present.
// Returns true when the term is selected after the call. Duplicate adds are
// impossible by construction.
func (s *Selection) Toggle(groupID, termID int64) bool {
	ids, ok := s.terms[groupID]
	if !ok {
		s.order = append(s.order, groupID)
		s.terms[groupID] = []int64{termID}
		return true
	}
	for i, id := range ids {
		if id == termID {
			s.terms[groupID] = append(ids[:i:i], ids[i+1:]...)
			return false
		}
	}
	s.terms[groupID] = append(ids, termID)
	return true
}

// Clear removes the group entirely from the selection, not just its terms.
// After Clear, "no selection" and "selected nothing" are indistinguishable;
// an absent group contributes no combinations either way.
func (s *Selection) Clear(groupID int64) {
	if _, ok := s.terms[groupID]; !ok {
		return
	}
	delete(s.terms, groupID)
	for i, id := range s.order {
		if id == groupID {
			s.order = append(s.order[:i:i], s.order[i+1:]...)
			break
		}
	}
}

// Has reports whether termID is currently selected under groupID.
func (s *Selection) Has(groupID, termID int64) bool {
	for _, id := range s.terms[groupID] {
		if id == termID {
			return true
		}
	}
	return false
}

// Groups returns the groups that have at least one selected term, in group
// insertion order with terms in selection order. This is the generator input.
func (s *Selection) Groups() []GroupTerms {
	out := make([]GroupTerms, 0, len(s.order))
	for _, gid := range s.order {
		ids := s.terms[gid]
		if len(ids) == 0 {
			continue
		}
		terms := make([]int64, len(ids))
		copy(terms, ids)
		out = append(out, GroupTerms{GroupID: gid, TermIDs: terms})
	}
	return out
}

// ActiveGroupIDs returns the ids of groups with at least one selected term,
// in insertion order. The synchronizer compares consecutive snapshots of this
// to decide when regeneration is due.
func (s *Selection) ActiveGroupIDs() []int64 {
	out := make([]int64, 0, len(s.order))
	for _, gid := range s.order {
		if len(s.terms[gid]) > 0 {
			out = append(out, gid)
		}
	}
	return out
}

// TermCount returns the total number of selected terms across all groups.
func (s *Selection) TermCount() int {
	n := 0
	for _, ids := range s.terms {
		n += len(ids)
	}
	return n
}
