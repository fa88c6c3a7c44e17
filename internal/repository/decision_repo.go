package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/oggyb/duo-match/internal/db"
	"github.com/oggyb/duo-match/internal/match"
	"github.com/oggyb/duo-match/internal/utils/pagination"
)

var (
	// ErrConflict means the record changed (or appeared) between read and
	// write. The caller should re-read and re-apply.
	ErrConflict = errors.New("decision record modified concurrently")

	// ErrNotFound is returned by lookups that resolve nothing.
	ErrNotFound = errors.New("record not found")
)

// DecisionRepository provides data access methods for the DecisionRecord model.
// Writes are optimistic: inserts fail on an existing key, updates fail on a
// stale version, both with ErrConflict.
type DecisionRepository struct {
	db *gorm.DB
}

// NewDecisionRepository creates a new repository bound to the given DB connection.
func NewDecisionRepository(database *gorm.DB) *DecisionRepository {
	return &DecisionRepository{db: database}
}

// Get fetches the record for key. It returns (nil, nil) when the couple has
// not acted on the candidate yet.
func (r *DecisionRepository) Get(ctx context.Context, key match.Key) (*match.Record, error) {
	var rows []db.DecisionRecord
	err := r.db.WithContext(ctx).
		Where("couple_id = ? AND candidate_id = ?", key.CoupleID, key.CandidateID).
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	rec := toRecord(rows[0])
	return &rec, nil
}

// Insert creates rec with version 1.
//
// Behavior:
//   - ON CONFLICT DO NOTHING on (couple_id, candidate_id).
//   - Zero affected rows → the other member inserted first → ErrConflict.
//   - On success rec.Version is set to 1.
func (r *DecisionRepository) Insert(ctx context.Context, rec *match.Record) error {
	row := toRow(rec)
	row.Version = 1

	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "couple_id"}, {Name: "candidate_id"}},
			DoNothing: true,
		}).
		Create(&row)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrConflict
	}

	rec.Version = row.Version
	return nil
}

// Update writes rec if the stored version still equals rec.Version.
//
// Behavior:
//   - UPDATE ... WHERE couple_id = ? AND candidate_id = ? AND version = ?
//   - version is bumped in the same statement.
//   - Zero affected rows → ErrConflict, nothing written.
//   - On success rec.Version is incremented.
func (r *DecisionRepository) Update(ctx context.Context, rec *match.Record) error {
	row := toRow(rec)
	updatedAt := rec.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}

	res := r.db.WithContext(ctx).
		Model(&db.DecisionRecord{}).
		Where("couple_id = ? AND candidate_id = ? AND version = ?", rec.CoupleID, rec.CandidateID, rec.Version).
		Updates(map[string]any{
			"slot_a_member_id": row.SlotAMemberID,
			"slot_a_action":    row.SlotAAction,
			"slot_a_acted_at":  row.SlotAActedAt,
			"slot_a_seq":       row.SlotASeq,
			"slot_b_member_id": row.SlotBMemberID,
			"slot_b_action":    row.SlotBAction,
			"slot_b_acted_at":  row.SlotBActedAt,
			"slot_b_seq":       row.SlotBSeq,
			"status":           row.Status,
			"is_mutual":        row.IsMutual,
			"version":          gorm.Expr("version + 1"),
			"updated_at":       updatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrConflict
	}

	rec.Version++
	rec.UpdatedAt = updatedAt
	return nil
}

// ListByCouple returns every record of the couple, ordered by candidate id.
func (r *DecisionRepository) ListByCouple(ctx context.Context, coupleID string) ([]match.Record, error) {
	var rows []db.DecisionRecord
	err := r.db.WithContext(ctx).
		Where("couple_id = ?", coupleID).
		Order("candidate_id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	records := make([]match.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, toRecord(row))
	}
	return records, nil
}

// ListMutual returns the couple's bothLiked records.
//
// Behavior:
//   - Ordered by updated_at DESC, candidate_id DESC.
//   - Supports cursor-based pagination via paginationToken.
//
// Example:
//
//	repo.ListMutual(ctx, "c1", nil, 20) // first 20 matches of couple c1
func (r *DecisionRepository) ListMutual(
	ctx context.Context,
	coupleID string,
	paginationToken *string,
	limit int,
) ([]match.Record, *string, error) {
	cursor, err := pagination.Decode(getString(paginationToken))
	if err != nil {
		return nil, nil, err
	}

	query := r.db.WithContext(ctx).
		Model(&db.DecisionRecord{}).
		Where("couple_id = ? AND status = ?", coupleID, string(match.StatusBothLiked)).
		Order("updated_at DESC, candidate_id DESC").
		Limit(limit + 1)

	// apply cursor
	if !cursor.IsZero() {
		ts := cursor.UpdatedAt()
		query = query.Where(
			"(updated_at < ? OR (updated_at = ? AND candidate_id < ?))",
			ts, ts, cursor.CandidateID,
		)
	}

	var rows []db.DecisionRecord
	if err := query.Find(&rows).Error; err != nil {
		return nil, nil, err
	}

	rows, nextToken := pagination.Trim(rows, limit, func(row db.DecisionRecord) pagination.Cursor {
		return pagination.At(row.UpdatedAt, row.CandidateID)
	})

	records := make([]match.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, toRecord(row))
	}
	return records, nextToken, nil
}

// CountMutual returns how many candidates both members of the couple liked.
func (r *DecisionRepository) CountMutual(ctx context.Context, coupleID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db.DecisionRecord{}).
		Where("couple_id = ? AND status = ?", coupleID, string(match.StatusBothLiked)).
		Count(&count).Error
	return count, err
}

func toRow(rec *match.Record) db.DecisionRecord {
	row := db.DecisionRecord{
		CoupleID:    rec.CoupleID,
		CandidateID: rec.CandidateID,
		Status:      string(rec.Status()),
		IsMutual:    rec.IsMutual(),
		Version:     rec.Version,
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
	}
	row.SlotAMemberID, row.SlotAAction, row.SlotAActedAt, row.SlotASeq = slotColumns(rec.Slots[0])
	row.SlotBMemberID, row.SlotBAction, row.SlotBActedAt, row.SlotBSeq = slotColumns(rec.Slots[1])
	return row
}

func toRecord(row db.DecisionRecord) match.Record {
	return match.Record{
		Key: match.Key{CoupleID: row.CoupleID, CandidateID: row.CandidateID},
		Slots: [2]match.Slot{
			slotFromColumns(row.SlotAMemberID, row.SlotAAction, row.SlotAActedAt, row.SlotASeq),
			slotFromColumns(row.SlotBMemberID, row.SlotBAction, row.SlotBActedAt, row.SlotBSeq),
		},
		Version:   row.Version,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func slotColumns(s match.Slot) (member, action *string, actedAt *time.Time, seq int64) {
	if s.MemberID != "" {
		m := s.MemberID
		member = &m
	}
	if s.Action != match.ActionNone {
		a := string(s.Action)
		action = &a
	}
	if !s.ActedAt.IsZero() {
		t := s.ActedAt.UTC()
		actedAt = &t
	}
	return member, action, actedAt, s.Seq
}

func slotFromColumns(member, action *string, actedAt *time.Time, seq int64) match.Slot {
	s := match.Slot{Seq: seq}
	if member != nil {
		s.MemberID = *member
	}
	if action != nil {
		s.Action = match.Action(*action)
	}
	if actedAt != nil {
		s.ActedAt = actedAt.UTC()
	}
	return s
}

// getString safely dereferences a string pointer for pagination tokens.
func getString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
