package match

// IsHidden reports whether the candidate of r must be kept out of
// memberID's discovery feed.
//
//   - bothLiked / bothRejected: hidden, the decision is shared and final
//   - member has not acted: shown
//   - member liked: hidden
//   - member rejected: hidden unless CanResurrect, in which case the
//     candidate resurfaces with a second-chance signal
func IsHidden(r *Record, memberID string) bool {
	switch r.Status() {
	case StatusBothLiked, StatusBothRejected:
		return true
	}

	ref := ResolveSlot(r, memberID)
	if !ref.Occupied {
		return false
	}

	switch r.Slots[ref.Index].Action {
	case ActionNone:
		return false
	case ActionLiked:
		return true
	default:
		return !CanResurrect(r, memberID)
	}
}

// HiddenCandidateIDs returns the candidate ids of records hidden for
// memberID, in the order the records were given.
func HiddenCandidateIDs(records []Record, memberID string) []string {
	ids := make([]string, 0, len(records))
	for i := range records {
		if IsHidden(&records[i], memberID) {
			ids = append(ids, records[i].CandidateID)
		}
	}
	return ids
}
