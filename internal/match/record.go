package match

import "time"

// Key identifies a Record: one per (couple, candidate) pair.
type Key struct {
	CoupleID    string
	CandidateID string
}

// Slot is one member's side of a Record.
//
// Seq is the record version the action landed with. Writes are serialised
// per record, so two acted slots never share a Seq and it orders them even
// when ActedAt values collide.
type Slot struct {
	MemberID string
	Action   Action
	ActedAt  time.Time
	Seq      int64
}

// Occupied reports whether a member has been assigned to the slot.
func (s Slot) Occupied() bool { return s.MemberID != "" }

// Decided reports whether the occupant has liked or rejected.
func (s Slot) Decided() bool { return s.Action != ActionNone }

// Record is the shared decision of a couple on a candidate.
type Record struct {
	Key
	Slots     [2]Slot
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Status derives the combined status from the slot actions.
func (r *Record) Status() Status {
	return DeriveStatus(r.Slots[0].Action, r.Slots[1].Action)
}

// IsMutual is true once both members liked the candidate.
func (r *Record) IsMutual() bool {
	return r.Status() == StatusBothLiked
}

// SlotRef is the result of ResolveSlot.
//
// Occupied=true means the member already sits in Slots[Index]. Otherwise
// Index is the first free slot the member would take, or -1 when both slots
// belong to other members.
type SlotRef struct {
	Index    int
	Occupied bool
}

// ResolveSlot finds which slot memberID occupies, or would occupy, in r.
// A nil record resolves to slot 0.
func ResolveSlot(r *Record, memberID string) SlotRef {
	if r == nil {
		return SlotRef{Index: 0}
	}
	for i, s := range r.Slots {
		if s.Occupied() && s.MemberID == memberID {
			return SlotRef{Index: i, Occupied: true}
		}
	}
	for i, s := range r.Slots {
		if !s.Occupied() {
			return SlotRef{Index: i}
		}
	}
	return SlotRef{Index: -1}
}

// partnerOf returns the slot opposite ref. ok is false when ref points nowhere.
func partnerOf(r *Record, ref SlotRef) (Slot, bool) {
	if r == nil || ref.Index < 0 {
		return Slot{}, false
	}
	return r.Slots[1-ref.Index], true
}

// actedBefore reports whether a's action strictly precedes b's. Sequence
// numbers win when both slots carry one; otherwise wall-clock timestamps are
// compared. Missing or equal ordering data is never "before".
func actedBefore(a, b Slot) bool {
	if a.Seq > 0 && b.Seq > 0 {
		return a.Seq < b.Seq
	}
	if a.ActedAt.IsZero() || b.ActedAt.IsZero() {
		return false
	}
	return a.ActedAt.Before(b.ActedAt)
}

// CanResurrect reports whether memberID may turn an earlier rejection into a
// like: they rejected, their partner liked, and the rejection came first.
//
// Apply, IsHidden and PartnerSignal all go through this function so the feed,
// the "second chance" banner and the write path agree.
func CanResurrect(r *Record, memberID string) bool {
	ref := ResolveSlot(r, memberID)
	if !ref.Occupied {
		return false
	}
	self := r.Slots[ref.Index]
	partner, _ := partnerOf(r, ref)
	return self.Action == ActionRejected &&
		partner.Action == ActionLiked &&
		actedBefore(self, partner)
}
