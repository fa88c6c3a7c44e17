package repository

import (
	"context"
	"fmt"
	"slices"

	"gorm.io/gorm"

	"github.com/oggyb/duo-match/internal/db"
)

// Membership is the couple a member belongs to and who is in it.
type Membership struct {
	CoupleID  string
	MemberIDs []string
}

// Has reports whether memberID belongs to the couple.
func (m *Membership) Has(memberID string) bool {
	return slices.Contains(m.MemberIDs, memberID)
}

// Partner returns the other member of memberID's couple. ok is false for a
// couple that has only one member so far.
func (m *Membership) Partner(memberID string) (string, bool) {
	if !m.Has(memberID) {
		return "", false
	}
	for _, id := range m.MemberIDs {
		if id != memberID {
			return id, true
		}
	}
	return "", false
}

// MembershipRepository answers "which couple is this member in". Linking
// members is done elsewhere; this repository only reads.
type MembershipRepository struct {
	db *gorm.DB
}

func NewMembershipRepository(database *gorm.DB) *MembershipRepository {
	return &MembershipRepository{db: database}
}

// CoupleOf resolves the couple of memberID.
//
// Behavior:
//   - Unknown member or member without a couple → ErrNotFound.
//   - MemberIDs holds at most two ids, oldest member first.
func (r *MembershipRepository) CoupleOf(ctx context.Context, memberID string) (*Membership, error) {
	var members []db.Member
	err := r.db.WithContext(ctx).
		Where("id = ?", memberID).
		Limit(1).
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	if len(members) == 0 || members[0].CoupleID == nil {
		return nil, fmt.Errorf("member %q has no couple: %w", memberID, ErrNotFound)
	}

	coupleID := *members[0].CoupleID
	var ids []string
	err = r.db.WithContext(ctx).
		Model(&db.Member{}).
		Where("couple_id = ?", coupleID).
		Order("created_at, id").
		Limit(2).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}

	return &Membership{CoupleID: coupleID, MemberIDs: ids}, nil
}
