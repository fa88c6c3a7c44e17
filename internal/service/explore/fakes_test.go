package explore_test

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/oggyb/duo-match/internal/match"
	"github.com/oggyb/duo-match/internal/repository"
	"github.com/oggyb/duo-match/internal/service/explore"
)

// memStore is a DecisionStore with the same version semantics as the SQL
// repository, safe for concurrent use.
type memStore struct {
	mu   sync.Mutex
	recs map[match.Key]match.Record
}

func newMemStore() *memStore {
	return &memStore{recs: map[match.Key]match.Record{}}
}

func (m *memStore) Get(_ context.Context, key match.Key) (*match.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.recs[key]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (m *memStore) Insert(_ context.Context, rec *match.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.recs[rec.Key]; ok {
		return repository.ErrConflict
	}
	rec.Version = 1
	m.recs[rec.Key] = *rec
	return nil
}

func (m *memStore) Update(_ context.Context, rec *match.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.recs[rec.Key]
	if !ok || cur.Version != rec.Version {
		return repository.ErrConflict
	}
	rec.Version++
	m.recs[rec.Key] = *rec
	return nil
}

func (m *memStore) ListByCouple(_ context.Context, coupleID string) ([]match.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []match.Record
	for k, r := range m.recs {
		if k.CoupleID == coupleID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CandidateID < out[j].CandidateID })
	return out, nil
}

func (m *memStore) ListMutual(ctx context.Context, coupleID string, _ *string, limit int) ([]match.Record, *string, error) {
	all, _ := m.ListByCouple(ctx, coupleID)
	var out []match.Record
	for _, r := range all {
		if r.IsMutual() && len(out) < limit {
			out = append(out, r)
		}
	}
	return out, nil, nil
}

func (m *memStore) CountMutual(ctx context.Context, coupleID string) (int64, error) {
	all, _ := m.ListByCouple(ctx, coupleID)
	var n int64
	for _, r := range all {
		if r.IsMutual() {
			n++
		}
	}
	return n, nil
}

// staticCouple resolves every listed member to one couple.
type staticCouple struct {
	coupleID string
	members  []string
}

func (s staticCouple) CoupleOf(_ context.Context, memberID string) (*repository.Membership, error) {
	for _, m := range s.members {
		if m == memberID {
			return &repository.Membership{CoupleID: s.coupleID, MemberIDs: s.members}, nil
		}
	}
	return nil, repository.ErrNotFound
}

// anyCandidate treats every id as an existing candidate.
type anyCandidate struct{}

func (anyCandidate) Exists(context.Context, string) (bool, error) { return true, nil }

// racingStore runs race once, right before the first write reaches the
// wrapped store, to simulate the partner writing between our read and write.
type racingStore struct {
	explore.DecisionStore
	race  func()
	fired bool
}

func (r *racingStore) trigger() {
	if !r.fired {
		r.fired = true
		r.race()
	}
}

func (r *racingStore) Insert(ctx context.Context, rec *match.Record) error {
	r.trigger()
	return r.DecisionStore.Insert(ctx, rec)
}

func (r *racingStore) Update(ctx context.Context, rec *match.Record) error {
	r.trigger()
	return r.DecisionStore.Update(ctx, rec)
}

// alwaysConflict loses every write.
type alwaysConflict struct {
	*memStore
	writes int
}

func (a *alwaysConflict) Insert(context.Context, *match.Record) error {
	a.writes++
	return repository.ErrConflict
}

func (a *alwaysConflict) Update(context.Context, *match.Record) error {
	a.writes++
	return repository.ErrConflict
}

// brokenStore fails every read.
type brokenStore struct {
	*memStore
}

var errDiskOnFire = errors.New("disk on fire")

func (brokenStore) Get(context.Context, match.Key) (*match.Record, error) {
	return nil, errDiskOnFire
}

func (brokenStore) ListByCouple(context.Context, string) ([]match.Record, error) {
	return nil, errDiskOnFire
}
