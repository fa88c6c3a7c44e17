package match

import (
	"errors"
	"time"
)

var (
	// ErrInvalidAction is returned for anything other than liked/rejected.
	ErrInvalidAction = errors.New("action must be liked or rejected")

	// ErrMissingMember is returned when the acting member id is empty.
	ErrMissingMember = errors.New("member id is required")

	// ErrLikeIsFinal is returned when a member tries to reject a candidate
	// they already liked.
	ErrLikeIsFinal = errors.New("a like cannot be withdrawn")

	// ErrResurrectionNotAllowed is returned when a member tries to like a
	// candidate they rejected without a later like from their partner.
	ErrResurrectionNotAllowed = errors.New("cannot change your mind unless your partner liked this profile")

	// ErrNotParticipant is returned when both slots of a record already
	// belong to other members.
	ErrNotParticipant = errors.New("both decision slots are taken by other members")
)

// Outcome is what Apply produced.
//
// Changed is false for idempotent repeats; the caller must not write in that
// case. Created is true when Record did not exist before and has to be
// inserted rather than updated.
type Outcome struct {
	Record  Record
	Changed bool
	Created bool
}

// Apply records memberID's action on the candidate identified by key.
//
// rec is the current record or nil when none exists yet. rec is never
// mutated; the updated copy is returned in Outcome.Record. The caller is
// responsible for persisting it with a version check on rec.Version.
//
// Rules:
//   - first action on a candidate creates the record, member in slot 0
//   - a member without a slot takes the first free one
//   - liked -> rejected fails with ErrLikeIsFinal; liked -> liked is a no-op
//   - rejected -> rejected is a no-op
//   - rejected -> liked only when CanResurrect holds, else ErrResurrectionNotAllowed
func Apply(rec *Record, key Key, memberID string, action Action, now time.Time) (Outcome, error) {
	if memberID == "" {
		return Outcome{}, ErrMissingMember
	}
	if !action.Valid() {
		return Outcome{}, ErrInvalidAction
	}

	if rec == nil {
		next := Record{Key: key, CreatedAt: now, UpdatedAt: now}
		next.Slots[0] = Slot{MemberID: memberID, Action: action, ActedAt: now, Seq: 1}
		return Outcome{Record: next, Changed: true, Created: true}, nil
	}

	next := *rec
	ref := ResolveSlot(rec, memberID)
	if ref.Index < 0 {
		return Outcome{Record: next}, ErrNotParticipant
	}
	current := rec.Slots[ref.Index]

	switch current.Action {
	case ActionLiked:
		if action == ActionRejected {
			return Outcome{Record: next}, ErrLikeIsFinal
		}
		return Outcome{Record: next}, nil

	case ActionRejected:
		if action == ActionRejected {
			return Outcome{Record: next}, nil
		}
		if !CanResurrect(rec, memberID) {
			return Outcome{Record: next}, ErrResurrectionNotAllowed
		}
	}

	next.Slots[ref.Index] = Slot{
		MemberID: memberID,
		Action:   action,
		ActedAt:  now,
		Seq:      rec.Version + 1,
	}
	next.UpdatedAt = now
	return Outcome{Record: next, Changed: true}, nil
}
