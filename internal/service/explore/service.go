package explore

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/oggyb/duo-match/internal/app"
	"github.com/oggyb/duo-match/internal/cache"
	svcErr "github.com/oggyb/duo-match/internal/errors"
	"github.com/oggyb/duo-match/internal/logger"
	"github.com/oggyb/duo-match/internal/match"
	"github.com/oggyb/duo-match/internal/metrics"
	pb "github.com/oggyb/duo-match/internal/proto/explore"
	"github.com/oggyb/duo-match/internal/repository"
	"github.com/oggyb/duo-match/internal/utils/pagination"
)

const (
	defaultMaxAttempts = 5
	defaultRetryBase   = 10 * time.Millisecond
	defaultPageSize    = 20
)

// DecisionStore is the decision records table as the service sees it.
// Insert and Update return repository.ErrConflict when they lose a race.
type DecisionStore interface {
	Get(ctx context.Context, key match.Key) (*match.Record, error)
	Insert(ctx context.Context, rec *match.Record) error
	Update(ctx context.Context, rec *match.Record) error
	ListByCouple(ctx context.Context, coupleID string) ([]match.Record, error)
	ListMutual(ctx context.Context, coupleID string, token *string, limit int) ([]match.Record, *string, error)
	CountMutual(ctx context.Context, coupleID string) (int64, error)
}

// MembershipLookup resolves the couple of a member.
type MembershipLookup interface {
	CoupleOf(ctx context.Context, memberID string) (*repository.Membership, error)
}

// CandidateCatalog answers whether a candidate can be decided on.
type CandidateCatalog interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// Service implements the Explore gRPC API.
// It runs the match engine against the repositories and keeps the per-couple
// read caches in Redis consistent with every write.
type Service struct {
	appCtx      *app.AppContext
	log         *slog.Logger
	cache       *cache.RedisCache
	metrics     *metrics.Metrics
	decisions   DecisionStore
	memberships MembershipLookup
	candidates  CandidateCatalog
	now         func() time.Time

	maxAttempts int
	retryBase   time.Duration
	pageSize    int

	pb.UnimplementedExploreServiceServer
}

// Option customises a Service. Tests use these to swap collaborators.
type Option func(*Service)

func WithDecisionStore(d DecisionStore) Option {
	return func(s *Service) { s.decisions = d }
}

func WithMembershipLookup(m MembershipLookup) Option {
	return func(s *Service) { s.memberships = m }
}

func WithCandidateCatalog(c CandidateCatalog) Option {
	return func(s *Service) { s.candidates = c }
}

// WithClock overrides time.Now. Returned times should be UTC.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithRetry overrides the conflict retry budget.
func WithRetry(maxAttempts int, base time.Duration) Option {
	return func(s *Service) {
		s.maxAttempts = maxAttempts
		s.retryBase = base
	}
}

// NewExploreService creates a new Explore service with dependencies from AppContext.
// Dependencies include:
//   - DB connection (via the decision, membership and candidate repositories)
//   - RedisCache for the hide-list and match-count caches (optional)
//   - Metrics (optional)
func NewExploreService(appCtx *app.AppContext, opts ...Option) *Service {
	s := &Service{
		appCtx:      appCtx,
		log:         appCtx.Logger,
		cache:       appCtx.RedisCache,
		metrics:     appCtx.Metrics,
		now:         func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
		maxAttempts: defaultMaxAttempts,
		retryBase:   defaultRetryBase,
		pageSize:    defaultPageSize,
	}
	if s.log == nil {
		s.log = logger.L()
	}
	if cfg := appCtx.Config; cfg != nil {
		if cfg.Match.MaxAttempts > 0 {
			s.maxAttempts = cfg.Match.MaxAttempts
		}
		if cfg.Match.RetryBaseDelay > 0 {
			s.retryBase = cfg.Match.RetryBaseDelay
		}
		if cfg.Match.PageSize > 0 {
			s.pageSize = cfg.Match.PageSize
		}
	}
	if appCtx.DB != nil {
		s.decisions = repository.NewDecisionRepository(appCtx.DB)
		s.memberships = repository.NewMembershipRepository(appCtx.DB)
		s.candidates = repository.NewCandidateRepository(appCtx.DB)
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ActionResult is the outcome of RecordAction.
type ActionResult struct {
	Record  match.Record
	Changed bool
}

// RecordAction applies memberID's action on candidateID to the couple's
// shared record.
//
// Behavior:
//   - Resolves the member's couple and checks the candidate exists.
//   - Read → match.Apply → version-checked insert/update.
//   - A lost race re-reads and re-applies, at most maxAttempts times with
//     exponential backoff; exhaustion → CONFLICT_RETRY_EXHAUSTED.
//   - Engine rule violations are permanent (no retry).
//   - Idempotent repeats do not write and do not touch caches.
//
// Example:
//
//	svc.RecordAction(ctx, "m1", "p1", match.ActionLiked)
func (s *Service) RecordAction(ctx context.Context, memberID, candidateID string, action match.Action) (*ActionResult, error) {
	log := logger.FromContext(ctx, s.log)
	start := time.Now()

	if !action.Valid() {
		return nil, svcErr.InvalidArgument("action must be liked or rejected")
	}
	membership, err := s.membershipOf(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if candidateID == "" {
		return nil, svcErr.InvalidArgument("candidate_id is required")
	}
	if candidateID == membership.CoupleID {
		return nil, svcErr.InvalidArgument("cannot decide on yourself")
	}

	exists, err := s.candidates.Exists(ctx, candidateID)
	if err != nil {
		log.ErrorContext(ctx, "candidate lookup failed", "candidate", candidateID, "err", err)
		return nil, svcErr.Unavailable(err)
	}
	if !exists {
		return nil, svcErr.NotFound(svcErr.CodeCandidateNotFound, "candidate not found")
	}

	key := match.Key{CoupleID: membership.CoupleID, CandidateID: candidateID}

	op := func() (ActionResult, error) {
		rec, err := s.decisions.Get(ctx, key)
		if err != nil {
			return ActionResult{}, backoff.Permanent(svcErr.Unavailable(err))
		}

		out, err := match.Apply(rec, key, memberID, action, s.now())
		if err != nil {
			return ActionResult{}, backoff.Permanent(classify(err))
		}
		if !out.Changed {
			return ActionResult{Record: out.Record}, nil
		}

		if out.Created {
			err = s.decisions.Insert(ctx, &out.Record)
		} else {
			err = s.decisions.Update(ctx, &out.Record)
		}
		switch {
		case errors.Is(err, repository.ErrConflict):
			return ActionResult{}, err
		case err != nil:
			return ActionResult{}, backoff.Permanent(svcErr.Unavailable(err))
		}
		return ActionResult{Record: out.Record, Changed: true}, nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = s.retryBase
	b.MaxInterval = 50 * s.retryBase

	res, err := backoff.Retry(ctx, op,
		backoff.WithBackOff(b),
		backoff.WithMaxTries(uint(s.maxAttempts)),
		backoff.WithNotify(func(err error, next time.Duration) {
			s.metrics.ObserveConflictRetry()
			log.WarnContext(ctx, "decision write conflict, retrying",
				"couple", key.CoupleID, "candidate", key.CandidateID, "member", memberID, "backoff", next, "err", err)
		}),
	)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			err = svcErr.Conflict(err)
		}
		s.metrics.ObserveDecision(string(action), outcomeOf(err), time.Since(start))
		if svcErr.KindOf(err) == svcErr.KindUnavailable {
			log.ErrorContext(ctx, "decision write failed", "couple", key.CoupleID, "candidate", key.CandidateID, "err", err)
		}
		return nil, err
	}

	if res.Changed {
		s.invalidate(ctx, key.CoupleID)
		s.metrics.ObserveDecision(string(action), metrics.OutcomeChanged, time.Since(start))
	} else {
		s.metrics.ObserveDecision(string(action), metrics.OutcomeNoop, time.Since(start))
	}

	log.DebugContext(ctx, "decision recorded",
		"couple", key.CoupleID, "candidate", key.CandidateID, "member", memberID,
		"action", action, "status", res.Record.Status(), "changed", res.Changed)

	return &res, nil
}

// HiddenCandidates returns the candidate ids memberID must not see in the feed.
//
// Cache-first strategy:
//  1. Read the couple's cache generation, then hidden:{couple}:{member}:{gen}.
//  2. On a miss, compute from all the couple's records and store under the
//     generation read in step 1.
//  3. Redis errors are logged and the DB answer is served.
func (s *Service) HiddenCandidates(ctx context.Context, memberID string) ([]string, error) {
	log := logger.FromContext(ctx, s.log)

	membership, err := s.membershipOf(ctx, memberID)
	if err != nil {
		return nil, err
	}
	coupleID := membership.CoupleID

	gen, cacheOK := s.generation(ctx, coupleID)
	if cacheOK {
		ids, hit, err := s.cache.Hidden(ctx, coupleID, memberID, gen)
		s.metrics.ObserveCache(metrics.CacheHidden, hit, err)
		if err != nil {
			log.WarnContext(ctx, "hidden cache read failed", "couple", coupleID, "err", err)
		} else if hit {
			return ids, nil
		}
	}

	records, err := s.decisions.ListByCouple(ctx, coupleID)
	if err != nil {
		log.ErrorContext(ctx, "list decisions failed", "couple", coupleID, "err", err)
		return nil, svcErr.Unavailable(err)
	}

	ids := match.HiddenCandidateIDs(records, memberID)
	if ids == nil {
		ids = []string{}
	}

	if cacheOK {
		if err := s.cache.SetHidden(ctx, coupleID, memberID, gen, ids); err != nil {
			log.WarnContext(ctx, "hidden cache write failed", "couple", coupleID, "err", err)
		}
	}
	return ids, nil
}

// Signal returns what memberID's partner did on candidateID. Read-only;
// a candidate nobody acted on yields the pending signal, still naming the
// partner when the couple is complete.
func (s *Service) Signal(ctx context.Context, memberID, candidateID string) (match.Signal, error) {
	membership, err := s.membershipOf(ctx, memberID)
	if err != nil {
		return match.Signal{}, err
	}
	if candidateID == "" {
		return match.Signal{}, svcErr.InvalidArgument("candidate_id is required")
	}

	rec, err := s.decisions.Get(ctx, match.Key{CoupleID: membership.CoupleID, CandidateID: candidateID})
	if err != nil {
		logger.FromContext(ctx, s.log).ErrorContext(ctx, "get decision failed", "couple", membership.CoupleID, "err", err)
		return match.Signal{}, svcErr.Unavailable(err)
	}
	sig := match.PartnerSignal(rec, memberID)
	if sig.PartnerMemberID == "" {
		// partner has not acted on the candidate yet
		sig.PartnerMemberID, _ = membership.Partner(memberID)
	}
	return sig, nil
}

// Matches returns one page of the couple's mutual matches, newest first.
func (s *Service) Matches(ctx context.Context, memberID string, token *string) ([]match.Record, *string, error) {
	membership, err := s.membershipOf(ctx, memberID)
	if err != nil {
		return nil, nil, err
	}

	records, next, err := s.decisions.ListMutual(ctx, membership.CoupleID, token, s.pageSize)
	if errors.Is(err, pagination.ErrInvalidToken) {
		return nil, nil, svcErr.InvalidArgument("invalid pagination token")
	}
	if err != nil {
		logger.FromContext(ctx, s.log).ErrorContext(ctx, "list matches failed", "couple", membership.CoupleID, "err", err)
		return nil, nil, svcErr.Unavailable(err)
	}
	return records, next, nil
}

// MatchCount returns how many mutual matches the member's couple has.
// Cache-first, keyed by the couple's generation like HiddenCandidates.
func (s *Service) MatchCount(ctx context.Context, memberID string) (int64, error) {
	log := logger.FromContext(ctx, s.log)

	membership, err := s.membershipOf(ctx, memberID)
	if err != nil {
		return 0, err
	}
	coupleID := membership.CoupleID

	gen, cacheOK := s.generation(ctx, coupleID)
	if cacheOK {
		n, hit, err := s.cache.MatchCount(ctx, coupleID, gen)
		s.metrics.ObserveCache(metrics.CacheMatchCount, hit, err)
		if err != nil {
			log.WarnContext(ctx, "match count cache read failed", "couple", coupleID, "err", err)
		} else if hit {
			return n, nil
		}
	}

	// fallback: DB
	count, err := s.decisions.CountMutual(ctx, coupleID)
	if err != nil {
		log.ErrorContext(ctx, "count matches failed", "couple", coupleID, "err", err)
		return 0, svcErr.Unavailable(err)
	}

	if cacheOK {
		if err := s.cache.SetMatchCount(ctx, coupleID, gen, count); err != nil {
			log.WarnContext(ctx, "match count cache write failed", "couple", coupleID, "err", err)
		}
	}
	return count, nil
}

// membershipOf resolves memberID to its couple with service errors.
func (s *Service) membershipOf(ctx context.Context, memberID string) (*repository.Membership, error) {
	if memberID == "" {
		return nil, svcErr.InvalidArgument("member_id is required")
	}
	m, err := s.memberships.CoupleOf(ctx, memberID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, svcErr.NotFound(svcErr.CodeMembershipNotFound, "member is not part of a couple")
	}
	if err != nil {
		logger.FromContext(ctx, s.log).ErrorContext(ctx, "membership lookup failed", "member", memberID, "err", err)
		return nil, svcErr.Unavailable(err)
	}
	return m, nil
}

// generation returns the couple's cache generation. ok is false when there
// is no cache or Redis cannot be read; callers then go straight to the DB.
func (s *Service) generation(ctx context.Context, coupleID string) (int64, bool) {
	if s.cache == nil {
		return 0, false
	}
	gen, err := s.cache.Generation(ctx, coupleID)
	if err != nil {
		logger.FromContext(ctx, s.log).WarnContext(ctx, "cache generation read failed", "couple", coupleID, "err", err)
		return 0, false
	}
	return gen, true
}

func (s *Service) invalidate(ctx context.Context, coupleID string) {
	if s.cache == nil {
		return
	}
	if _, err := s.cache.Invalidate(ctx, coupleID); err != nil {
		logger.FromContext(ctx, s.log).WarnContext(ctx, "cache invalidation failed", "couple", coupleID, "err", err)
	}
}

// classify turns match engine errors into service errors.
func classify(err error) error {
	switch {
	case errors.Is(err, match.ErrLikeIsFinal):
		return svcErr.PolicyViolation(err, svcErr.CodeLikeIsFinal, err.Error())
	case errors.Is(err, match.ErrResurrectionNotAllowed):
		return svcErr.PolicyViolation(err, svcErr.CodeResurrectionNotAllowed, err.Error())
	case errors.Is(err, match.ErrNotParticipant):
		return svcErr.PolicyViolation(err, svcErr.CodeNotParticipant, err.Error())
	case errors.Is(err, match.ErrInvalidAction), errors.Is(err, match.ErrMissingMember):
		return svcErr.InvalidArgument(err.Error())
	default:
		return err
	}
}

func outcomeOf(err error) string {
	switch svcErr.KindOf(err) {
	case svcErr.KindPolicyViolation, svcErr.KindInvalidArgument, svcErr.KindNotFound:
		return metrics.OutcomePolicy
	case svcErr.KindConflict:
		return metrics.OutcomeConflict
	default:
		return metrics.OutcomeError
	}
}
