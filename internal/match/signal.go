package match

// Signal is what a member sees about their partner's opinion of a candidate.
type Signal struct {
	RecordExists    bool
	Status          Status
	PartnerMemberID string
	PartnerAction   Action
	Liked           bool
	Rejected        bool
	CanResurrect    bool
}

// PartnerSignal builds the badge view of r for memberID. r may be nil when
// nobody in the couple has acted on the candidate yet.
func PartnerSignal(r *Record, memberID string) Signal {
	if r == nil {
		return Signal{Status: StatusPending}
	}

	sig := Signal{RecordExists: true, Status: r.Status()}
	ref := ResolveSlot(r, memberID)
	if partner, ok := partnerOf(r, ref); ok {
		sig.PartnerMemberID = partner.MemberID
		sig.PartnerAction = partner.Action
	}
	if ref.Occupied {
		self := r.Slots[ref.Index]
		sig.Liked = self.Action == ActionLiked
		sig.Rejected = self.Action == ActionRejected
	}
	sig.CanResurrect = CanResurrect(r, memberID)
	return sig
}
