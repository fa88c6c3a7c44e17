package db

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeededCouple is a couple created by SeedTestData.
type SeededCouple struct {
	ID        string
	MemberIDs []string
}

// Fixture describes what SeedTestData created so callers can drive
// decisions against it.
type Fixture struct {
	Couples      []SeededCouple
	CandidateIDs []string
}

// clear wipes all seeded tables, children first.
func clear(db *gorm.DB) error {
	for _, table := range []string{"decision_records", "members", "candidates", "couples"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return nil
}

// SeedTestData resets the database and populates it with demo couples and
// candidates.
//
// Behavior:
//  1. Clears decision_records, members, candidates and couples.
//  2. Creates `couples` couples with two members each; every fourth couple
//     is left incomplete with a single member.
//  3. Creates `candidates` active candidates, roughly a third unicorns.
//
// Decisions are not written here; they go through the match rules so the
// stored rows are always reachable by real calls (see cmd/seed).
func SeedTestData(db *gorm.DB, r *rand.Rand, couples, candidates int) (*Fixture, error) {
	if err := clear(db); err != nil {
		return nil, err
	}
	slog.Info("cleared existing data")

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	fx := &Fixture{}
	memberNo := 0
	for i := 1; i <= couples; i++ {
		incomplete := i%4 == 0
		couple := Couple{
			ID:         uuid.NewString(),
			IsComplete: !incomplete,
			Bio:        fmt.Sprintf("couple %d", i),
			Interests:  "hiking,cooking",
			Location:   "London",
		}
		if err := db.Create(&couple).Error; err != nil {
			return nil, fmt.Errorf("failed to seed couple: %w", err)
		}

		size := 2
		if incomplete {
			size = 1
		}
		seeded := SeededCouple{ID: couple.ID}
		for j := 0; j < size; j++ {
			memberNo++
			coupleID := couple.ID
			member := Member{
				ID:           uuid.NewString(),
				CoupleID:     &coupleID,
				DisplayName:  fmt.Sprintf("member%d", memberNo),
				Email:        fmt.Sprintf("member%d@example.com", memberNo),
				PasswordHash: string(hash),
				LastLoginAt:  time.Now().Add(-time.Duration(r.Intn(500)) * time.Hour),
				CreatedAt:    time.Now().UTC().Add(time.Duration(j) * time.Millisecond),
			}
			if err := db.Create(&member).Error; err != nil {
				return nil, fmt.Errorf("failed to seed member: %w", err)
			}
			seeded.MemberIDs = append(seeded.MemberIDs, member.ID)
		}
		fx.Couples = append(fx.Couples, seeded)
	}
	slog.Info("seeded couples", "count", couples, "members", memberNo)

	for i := 1; i <= candidates; i++ {
		kind := CandidateCouple
		if r.Intn(3) == 0 {
			kind = CandidateUnicorn
		}
		c := Candidate{
			ID:          uuid.NewString(),
			Kind:        kind,
			DisplayName: fmt.Sprintf("candidate%d", i),
			Active:      true,
		}
		if err := db.Create(&c).Error; err != nil {
			return nil, fmt.Errorf("failed to seed candidate: %w", err)
		}
		fx.CandidateIDs = append(fx.CandidateIDs, c.ID)
	}
	slog.Info("seeded candidates", "count", candidates)

	return fx, nil
}

// SeedMinimalTestData writes a small fixed data set for tests:
//
//	couple c1: members m1, m2 (complete)
//	couple c2: member m3 (incomplete)
//	member m4: no couple
//	candidates p1, p2, p3 (active), p9 (inactive)
func SeedMinimalTestData(db *gorm.DB) error {
	if err := clear(db); err != nil {
		return err
	}

	couples := []Couple{
		{ID: "c1", IsComplete: true},
		{ID: "c2", IsComplete: false},
	}
	if err := db.Create(&couples).Error; err != nil {
		return err
	}

	c1, c2 := "c1", "c2"
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	members := []Member{
		{ID: "m1", CoupleID: &c1, DisplayName: "m1", Email: "m1@test.com", PasswordHash: "x", CreatedAt: base},
		{ID: "m2", CoupleID: &c1, DisplayName: "m2", Email: "m2@test.com", PasswordHash: "x", CreatedAt: base.Add(time.Second)},
		{ID: "m3", CoupleID: &c2, DisplayName: "m3", Email: "m3@test.com", PasswordHash: "x", CreatedAt: base},
		{ID: "m4", DisplayName: "m4", Email: "m4@test.com", PasswordHash: "x", CreatedAt: base},
	}
	if err := db.Create(&members).Error; err != nil {
		return err
	}

	candidates := []Candidate{
		{ID: "p1", Kind: CandidateUnicorn, DisplayName: "p1", Active: true},
		{ID: "p2", Kind: CandidateCouple, DisplayName: "p2", Active: true},
		{ID: "p3", Kind: CandidateUnicorn, DisplayName: "p3", Active: true},
		{ID: "p9", Kind: CandidateCouple, DisplayName: "p9", Active: false},
	}
	return db.Create(&candidates).Error
}
