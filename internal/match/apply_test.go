package match_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oggyb/duo-match/internal/match"
)

var (
	key = match.Key{CoupleID: "c1", CandidateID: "p1"}
	t0  = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
)

// step applies an action and, like the repository does on a successful
// write, bumps the version. It fails the test on error.
func step(t *testing.T, r *match.Record, member string, action match.Action, at time.Time) *match.Record {
	t.Helper()
	out, err := match.Apply(r, key, member, action, at)
	require.NoError(t, err)
	next := out.Record
	if out.Changed {
		next.Version++
	}
	return &next
}

func TestApply_CreatesRecordOnFirstAction(t *testing.T) {
	out, err := match.Apply(nil, key, "m1", match.ActionLiked, t0)
	require.NoError(t, err)

	assert.True(t, out.Created)
	assert.True(t, out.Changed)
	assert.Equal(t, key, out.Record.Key)
	assert.Equal(t, match.Slot{MemberID: "m1", Action: match.ActionLiked, ActedAt: t0, Seq: 1}, out.Record.Slots[0])
	assert.False(t, out.Record.Slots[1].Occupied())
	assert.Equal(t, match.StatusPending, out.Record.Status())
	assert.False(t, out.Record.IsMutual())
}

func TestApply_SecondMemberTakesFreeSlot(t *testing.T) {
	r := step(t, nil, "m1", match.ActionLiked, t0)

	out, err := match.Apply(r, key, "m2", match.ActionRejected, t0.Add(time.Minute))
	require.NoError(t, err)

	assert.False(t, out.Created)
	assert.True(t, out.Changed)
	assert.Equal(t, "m2", out.Record.Slots[1].MemberID)
	assert.Equal(t, match.ActionRejected, out.Record.Slots[1].Action)
	assert.Equal(t, int64(2), out.Record.Slots[1].Seq)
	assert.Equal(t, match.StatusMixed, out.Record.Status())

	// the input record is left alone
	assert.False(t, r.Slots[1].Occupied())
}

func TestApply_BothLikedIsMutual(t *testing.T) {
	r := step(t, nil, "m1", match.ActionLiked, t0)
	r = step(t, r, "m2", match.ActionLiked, t0.Add(time.Minute))

	assert.Equal(t, match.StatusBothLiked, r.Status())
	assert.True(t, r.IsMutual())
}

// TestApply_RepeatedLikeIsNoop covers idempotence: the record, including its
// timestamps, is returned untouched and nothing needs to be written.
func TestApply_RepeatedLikeIsNoop(t *testing.T) {
	r := step(t, nil, "m1", match.ActionLiked, t0)

	out, err := match.Apply(r, key, "m1", match.ActionLiked, t0.Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, out.Changed)
	assert.Equal(t, *r, out.Record)
}

func TestApply_RepeatedRejectIsNoop(t *testing.T) {
	r := step(t, nil, "m1", match.ActionRejected, t0)

	out, err := match.Apply(r, key, "m1", match.ActionRejected, t0.Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, out.Changed)
	assert.Equal(t, *r, out.Record)
}

func TestApply_LikeIsFinal(t *testing.T) {
	r := step(t, nil, "m1", match.ActionLiked, t0)
	r = step(t, r, "m2", match.ActionRejected, t0.Add(time.Minute))

	out, err := match.Apply(r, key, "m1", match.ActionRejected, t0.Add(time.Hour))
	assert.ErrorIs(t, err, match.ErrLikeIsFinal)
	assert.False(t, out.Changed)
	assert.Equal(t, match.ActionLiked, r.Slots[0].Action)
}

// TestApply_Resurrection: m1 rejects first, m2 likes afterwards, m1 may now
// change their mind.
func TestApply_Resurrection(t *testing.T) {
	r := step(t, nil, "m1", match.ActionRejected, t0)
	r = step(t, r, "m2", match.ActionLiked, t0.Add(time.Minute))

	at := t0.Add(time.Hour)
	out, err := match.Apply(r, key, "m1", match.ActionLiked, at)
	require.NoError(t, err)

	assert.True(t, out.Changed)
	assert.Equal(t, match.ActionLiked, out.Record.Slots[0].Action)
	assert.Equal(t, at, out.Record.Slots[0].ActedAt)
	assert.Equal(t, r.Version+1, out.Record.Slots[0].Seq)
	assert.Equal(t, match.StatusBothLiked, out.Record.Status())
	assert.True(t, out.Record.IsMutual())
}

// TestApply_NoLateResurrection: the partner liked before m1 rejected, so m1
// already saw that opinion and the rejection stands.
func TestApply_NoLateResurrection(t *testing.T) {
	r := step(t, nil, "m2", match.ActionLiked, t0)
	r = step(t, r, "m1", match.ActionRejected, t0.Add(time.Minute))

	out, err := match.Apply(r, key, "m1", match.ActionLiked, t0.Add(time.Hour))
	assert.ErrorIs(t, err, match.ErrResurrectionNotAllowed)
	assert.False(t, out.Changed)
}

func TestApply_ResurrectionNeedsPartnerLike(t *testing.T) {
	r := step(t, nil, "m1", match.ActionRejected, t0)

	_, err := match.Apply(r, key, "m1", match.ActionLiked, t0.Add(time.Hour))
	assert.ErrorIs(t, err, match.ErrResurrectionNotAllowed)

	r = step(t, r, "m2", match.ActionRejected, t0.Add(time.Minute))
	_, err = match.Apply(r, key, "m1", match.ActionLiked, t0.Add(time.Hour))
	assert.ErrorIs(t, err, match.ErrResurrectionNotAllowed)
}

func TestApply_OccupiedSlotWithoutAction(t *testing.T) {
	r := &match.Record{
		Key:     key,
		Slots:   [2]match.Slot{{MemberID: "m1", Action: match.ActionLiked, ActedAt: t0, Seq: 1}, {MemberID: "m2"}},
		Version: 1,
	}

	out, err := match.Apply(r, key, "m2", match.ActionLiked, t0.Add(time.Minute))
	require.NoError(t, err)
	assert.True(t, out.Changed)
	assert.Equal(t, match.StatusBothLiked, out.Record.Status())
}

func TestApply_ThirdMemberRejected(t *testing.T) {
	r := step(t, nil, "m1", match.ActionLiked, t0)
	r = step(t, r, "m2", match.ActionLiked, t0.Add(time.Minute))

	_, err := match.Apply(r, key, "m3", match.ActionLiked, t0.Add(time.Hour))
	assert.ErrorIs(t, err, match.ErrNotParticipant)
}

func TestApply_ValidatesInput(t *testing.T) {
	_, err := match.Apply(nil, key, "", match.ActionLiked, t0)
	assert.ErrorIs(t, err, match.ErrMissingMember)

	_, err = match.Apply(nil, key, "m1", match.ActionNone, t0)
	assert.ErrorIs(t, err, match.ErrInvalidAction)

	_, err = match.Apply(nil, key, "m1", match.Action("superlike"), t0)
	assert.ErrorIs(t, err, match.ErrInvalidAction)
}
