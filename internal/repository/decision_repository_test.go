package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/oggyb/duo-match/internal/db"
	"github.com/oggyb/duo-match/internal/match"
	"github.com/oggyb/duo-match/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setup in-memory DB
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	database, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		NowFunc: func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	if err := db.Migrate(database); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return database
}

var t0 = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func bothLiked(coupleID, candidateID string, at time.Time) *match.Record {
	return &match.Record{
		Key: match.Key{CoupleID: coupleID, CandidateID: candidateID},
		Slots: [2]match.Slot{
			{MemberID: "m1", Action: match.ActionLiked, ActedAt: at, Seq: 1},
			{MemberID: "m2", Action: match.ActionLiked, ActedAt: at, Seq: 2},
		},
		CreatedAt: at,
		UpdatedAt: at,
	}
}

func TestGetMissingRecord(t *testing.T) {
	repo := repository.NewDecisionRepository(setupTestDB(t))

	rec, err := repo.Get(context.Background(), match.Key{CoupleID: "c1", CandidateID: "p1"})
	assert.NoError(t, err)
	assert.Nil(t, rec)
}

func TestInsertAndGet(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewDecisionRepository(setupTestDB(t))
	key := match.Key{CoupleID: "c1", CandidateID: "p1"}

	out, err := match.Apply(nil, key, "m1", match.ActionRejected, t0)
	require.NoError(t, err)
	require.NoError(t, repo.Insert(ctx, &out.Record))
	assert.Equal(t, int64(1), out.Record.Version)

	got, err := repo.Get(ctx, key)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(1), got.Version)
	assert.Equal(t, "m1", got.Slots[0].MemberID)
	assert.Equal(t, match.ActionRejected, got.Slots[0].Action)
	assert.True(t, got.Slots[0].ActedAt.Equal(t0))
	assert.Equal(t, int64(1), got.Slots[0].Seq)
	assert.False(t, got.Slots[1].Occupied())
	assert.Equal(t, match.StatusPending, got.Status())
}

func TestUpdateToMixed(t *testing.T) {
	ctx := context.Background()
	database := setupTestDB(t)
	repo := repository.NewDecisionRepository(database)
	key := match.Key{CoupleID: "c1", CandidateID: "p1"}

	created, err := match.Apply(nil, key, "m1", match.ActionLiked, t0)
	require.NoError(t, err)
	require.NoError(t, repo.Insert(ctx, &created.Record))

	stored, err := repo.Get(ctx, key)
	require.NoError(t, err)
	next, err := match.Apply(stored, key, "m2", match.ActionRejected, t0.Add(time.Second))
	require.NoError(t, err)
	require.NoError(t, repo.Update(ctx, &next.Record))

	got, err := repo.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, match.StatusMixed, got.Status())
	assert.Equal(t, int64(2), got.Version)
	assert.Equal(t, match.ActionRejected, got.Slots[1].Action)

	var row db.DecisionRecord
	require.NoError(t, database.Where("couple_id = ? AND candidate_id = ?", "c1", "p1").First(&row).Error)
	assert.Equal(t, string(match.StatusMixed), row.Status)
	assert.False(t, row.IsMutual)
}

func TestInsertConflict(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewDecisionRepository(setupTestDB(t))
	key := match.Key{CoupleID: "c1", CandidateID: "p1"}

	first, _ := match.Apply(nil, key, "m1", match.ActionLiked, t0)
	second, _ := match.Apply(nil, key, "m2", match.ActionRejected, t0)

	require.NoError(t, repo.Insert(ctx, &first.Record))
	err := repo.Insert(ctx, &second.Record)
	assert.True(t, errors.Is(err, repository.ErrConflict))

	// the first write survives untouched
	got, err := repo.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "m1", got.Slots[0].MemberID)
	assert.Equal(t, match.ActionLiked, got.Slots[0].Action)
}

func TestUpdateChecksVersion(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewDecisionRepository(setupTestDB(t))
	key := match.Key{CoupleID: "c1", CandidateID: "p1"}

	created, _ := match.Apply(nil, key, "m1", match.ActionLiked, t0)
	require.NoError(t, repo.Insert(ctx, &created.Record))

	stored, err := repo.Get(ctx, key)
	require.NoError(t, err)

	next, err := match.Apply(stored, key, "m2", match.ActionLiked, t0.Add(time.Minute))
	require.NoError(t, err)

	stale := next.Record
	stale.Version = 7
	assert.True(t, errors.Is(repo.Update(ctx, &stale), repository.ErrConflict))

	replay := next.Record
	require.NoError(t, repo.Update(ctx, &next.Record))
	assert.Equal(t, int64(2), next.Record.Version)

	got, err := repo.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.Version)
	assert.Equal(t, match.StatusBothLiked, got.Status())
	assert.Equal(t, int64(2), got.Slots[1].Seq)

	// a second writer holding version 1 loses
	assert.ErrorIs(t, repo.Update(ctx, &replay), repository.ErrConflict)
}

func TestListMutualAndPagination(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewDecisionRepository(setupTestDB(t))

	require.NoError(t, repo.Insert(ctx, bothLiked("c1", "p1", t0)))
	require.NoError(t, repo.Insert(ctx, bothLiked("c1", "p2", t0.Add(time.Second))))
	require.NoError(t, repo.Insert(ctx, bothLiked("c1", "p3", t0.Add(2*time.Second))))
	require.NoError(t, repo.Insert(ctx, bothLiked("c2", "p4", t0)))

	mixed, _ := match.Apply(nil, match.Key{CoupleID: "c1", CandidateID: "p5"}, "m1", match.ActionLiked, t0)
	require.NoError(t, repo.Insert(ctx, &mixed.Record))

	page, next, err := repo.ListMutual(ctx, "c1", nil, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "p3", page[0].CandidateID)
	assert.Equal(t, "p2", page[1].CandidateID)
	require.NotNil(t, next)

	page, next, err = repo.ListMutual(ctx, "c1", next, 2)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "p1", page[0].CandidateID)
	assert.Nil(t, next)

	count, err := repo.CountMutual(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestListMutualInvalidToken(t *testing.T) {
	repo := repository.NewDecisionRepository(setupTestDB(t))

	bad := "%%%"
	_, _, err := repo.ListMutual(context.Background(), "c1", &bad, 10)
	assert.Error(t, err)
}

func TestListByCouple(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewDecisionRepository(setupTestDB(t))

	for _, id := range []string{"p2", "p1"} {
		out, _ := match.Apply(nil, match.Key{CoupleID: "c1", CandidateID: id}, "m1", match.ActionRejected, t0)
		require.NoError(t, repo.Insert(ctx, &out.Record))
	}
	other, _ := match.Apply(nil, match.Key{CoupleID: "c2", CandidateID: "p1"}, "m3", match.ActionRejected, t0)
	require.NoError(t, repo.Insert(ctx, &other.Record))

	records, err := repo.ListByCouple(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "p1", records[0].CandidateID)
	assert.Equal(t, "p2", records[1].CandidateID)
}
