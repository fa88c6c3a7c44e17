package main

import (
	"context"
	"math/rand"
	"os"
	"time"

	"github.com/oggyb/duo-match/internal/app"
	"github.com/oggyb/duo-match/internal/config"
	"github.com/oggyb/duo-match/internal/db"
	svcErr "github.com/oggyb/duo-match/internal/errors"
	"github.com/oggyb/duo-match/internal/logger"
	"github.com/oggyb/duo-match/internal/match"
	"github.com/oggyb/duo-match/internal/service/explore"
)

const (
	couples    = 8
	candidates = 40
)

func main() {
	// Load configuration
	cfg := config.New()
	logger.InitFromConfig(cfg)
	log := logger.L()

	database, err := db.NewDB(cfg)
	if err != nil {
		log.Error("failed to init db", "err", err)
		os.Exit(1)
	}

	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	fx, err := db.SeedTestData(database, r, couples, candidates)
	if err != nil {
		log.Error("failed to seed", "err", err)
		os.Exit(1)
	}

	// decisions go through the service so every row obeys the match rules;
	// no Redis here, caches are keyed by generation and start cold anyway
	svc := explore.NewExploreService(app.New(cfg, database, nil, log, nil))
	ctx := context.Background()

	var written, refused int
	act := func(member, candidate string, action match.Action) {
		_, err := svc.RecordAction(ctx, member, candidate, action)
		switch {
		case err == nil:
			written++
		case svcErr.KindOf(err) == svcErr.KindPolicyViolation:
			refused++
		default:
			log.Error("failed to seed decision", "member", member, "candidate", candidate, "err", err)
			os.Exit(1)
		}
	}

	for _, c := range fx.Couples {
		for i, candidate := range fx.CandidateIDs {
			// every 5th candidate of a complete couple plays the second-chance flow
			if len(c.MemberIDs) == 2 && i%5 == 0 {
				act(c.MemberIDs[0], candidate, match.ActionRejected)
				act(c.MemberIDs[1], candidate, match.ActionLiked)
				act(c.MemberIDs[0], candidate, match.ActionLiked)
				continue
			}
			for _, member := range c.MemberIDs {
				if r.Intn(100) >= 60 {
					continue
				}
				action := match.ActionRejected
				if r.Intn(100) < 65 {
					action = match.ActionLiked
				}
				act(member, candidate, action)
			}
		}
	}

	log.Info("seeding completed", "couples", len(fx.Couples), "candidates", len(fx.CandidateIDs),
		"decisions", written, "refused", refused)
}
