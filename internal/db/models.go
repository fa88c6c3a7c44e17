package db

import (
	"time"
)

// Couple is the shared discovery identity of one or two members.
// Linking members into a couple happens outside this service.
type Couple struct {
	ID         string    `gorm:"primaryKey;size:64"`
	IsComplete bool      `gorm:"not null"`
	Bio        string    `gorm:"size:1024"`
	Interests  string    `gorm:"size:512"` // comma separated
	Location   string    `gorm:"size:128"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

// Member table. CoupleID is nil until the member is linked.
type Member struct {
	ID           string  `gorm:"primaryKey;size:64"`
	CoupleID     *string `gorm:"size:64;index"`
	DisplayName  string  `gorm:"size:64;not null"`
	Email        string  `gorm:"uniqueIndex;size:128;not null"`
	PasswordHash string  `gorm:"size:255;not null"`
	LastLoginAt  time.Time
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

// Candidate is a discoverable profile: a single ("unicorn") or a couple.
type Candidate struct {
	ID          string    `gorm:"primaryKey;size:64"`
	Kind        string    `gorm:"size:16;not null"`
	DisplayName string    `gorm:"size:64;not null"`
	Active      bool      `gorm:"not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

const (
	CandidateUnicorn = "unicorn"
	CandidateCouple  = "couple"
)

// DecisionRecord holds a couple's combined decision on one candidate.
//
// Composite PK: (CoupleID, CandidateID)
//   - One row per pair, created on the first action of either member.
//
// Indexes:
//   - idx_couple_status_updated(couple_id, status, updated_at DESC)
//     Serves "list my matches" pages and counts.
//
// Fields:
//   - SlotA* / SlotB*: the two member slots (occupant, action, time, sequence).
//   - Status / IsMutual: derived from the slot actions on every write.
//   - Version: optimistic concurrency counter, +1 per successful write.
type DecisionRecord struct {
	CoupleID    string `gorm:"primaryKey;size:64;index:idx_couple_status_updated,priority:1"`
	CandidateID string `gorm:"primaryKey;size:64"`

	SlotAMemberID *string    `gorm:"column:slot_a_member_id;size:64"`
	SlotAAction   *string    `gorm:"column:slot_a_action;size:16"`
	SlotAActedAt  *time.Time `gorm:"column:slot_a_acted_at"`
	SlotASeq      int64      `gorm:"column:slot_a_seq;not null;default:0"`

	SlotBMemberID *string    `gorm:"column:slot_b_member_id;size:64"`
	SlotBAction   *string    `gorm:"column:slot_b_action;size:16"`
	SlotBActedAt  *time.Time `gorm:"column:slot_b_acted_at"`
	SlotBSeq      int64      `gorm:"column:slot_b_seq;not null;default:0"`

	Status    string    `gorm:"size:16;not null;index:idx_couple_status_updated,priority:2"`
	IsMutual  bool      `gorm:"not null"`
	Version   int64     `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;index:idx_couple_status_updated,priority:3,sort:desc"`
}
