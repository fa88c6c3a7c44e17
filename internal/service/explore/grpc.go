package explore

import (
	"context"

	svcErr "github.com/oggyb/duo-match/internal/errors"
	"github.com/oggyb/duo-match/internal/logger"
	"github.com/oggyb/duo-match/internal/match"
	pb "github.com/oggyb/duo-match/internal/proto/explore"
)

// PutDecision records a member's like or reject and returns the couple's
// combined status.
//
// Example:
//
//	svc.PutDecision(ctx, &pb.PutDecisionRequest{ActorMemberId: "m1", CandidateId: "p1", Action: "liked"})
func (s *Service) PutDecision(ctx context.Context, req *pb.PutDecisionRequest) (*pb.PutDecisionResponse, error) {
	logger.FromContext(ctx, s.log).Debug(
		"PutDecision called",
		"actor", req.GetActorMemberId(),
		"candidate", req.GetCandidateId(),
		"action", req.GetAction(),
	)

	res, err := s.RecordAction(ctx, req.GetActorMemberId(), req.GetCandidateId(), match.Action(req.GetAction()))
	if err != nil {
		return nil, svcErr.Map(err)
	}

	return &pb.PutDecisionResponse{
		Status:   string(res.Record.Status()),
		IsMutual: res.Record.IsMutual(),
		Changed:  res.Changed,
	}, nil
}

// ListHiddenCandidates returns the candidates to drop from the member's feed.
func (s *Service) ListHiddenCandidates(ctx context.Context, req *pb.ListHiddenCandidatesRequest) (*pb.ListHiddenCandidatesResponse, error) {
	logger.FromContext(ctx, s.log).Debug("ListHiddenCandidates called", "member", req.GetMemberId())

	ids, err := s.HiddenCandidates(ctx, req.GetMemberId())
	if err != nil {
		return nil, svcErr.Map(err)
	}
	return &pb.ListHiddenCandidatesResponse{CandidateIds: ids}, nil
}

// GetPartnerSignal tells the member what their partner did on a candidate
// and whether an earlier rejection can still be turned into a like.
func (s *Service) GetPartnerSignal(ctx context.Context, req *pb.GetPartnerSignalRequest) (*pb.GetPartnerSignalResponse, error) {
	logger.FromContext(ctx, s.log).Debug("GetPartnerSignal called", "member", req.GetMemberId(), "candidate", req.GetCandidateId())

	sig, err := s.Signal(ctx, req.GetMemberId(), req.GetCandidateId())
	if err != nil {
		return nil, svcErr.Map(err)
	}
	return &pb.GetPartnerSignalResponse{
		RecordExists:    sig.RecordExists,
		Status:          string(sig.Status),
		PartnerMemberId: sig.PartnerMemberID,
		PartnerAction:   string(sig.PartnerAction),
		Liked:           sig.Liked,
		Rejected:        sig.Rejected,
		CanResurrect:    sig.CanResurrect,
	}, nil
}

// ListMutualMatches returns the candidates both members liked.
//
// Behavior:
//   - Ordered by match time, newest first.
//   - Supports cursor-based pagination with paginationToken.
func (s *Service) ListMutualMatches(ctx context.Context, req *pb.ListMutualMatchesRequest) (*pb.ListMutualMatchesResponse, error) {
	logger.FromContext(ctx, s.log).Debug("ListMutualMatches called", "member", req.GetMemberId(), "token", req.GetPaginationToken())

	records, next, err := s.Matches(ctx, req.GetMemberId(), req.PaginationToken)
	if err != nil {
		return nil, svcErr.Map(err)
	}

	resp := &pb.ListMutualMatchesResponse{Matches: []*pb.ListMutualMatchesResponse_Match{}}
	for _, r := range records {
		resp.Matches = append(resp.Matches, &pb.ListMutualMatchesResponse_Match{
			CandidateId:   r.CandidateID,
			UnixTimestamp: uint64(r.UpdatedAt.UnixMilli()),
		})
	}
	if next != nil {
		resp.NextPaginationToken = next
	}
	return resp, nil
}

// CountMutualMatches returns the couple's number of mutual matches.
func (s *Service) CountMutualMatches(ctx context.Context, req *pb.CountMutualMatchesRequest) (*pb.CountMutualMatchesResponse, error) {
	logger.FromContext(ctx, s.log).Debug("CountMutualMatches called", "member", req.GetMemberId())

	n, err := s.MatchCount(ctx, req.GetMemberId())
	if err != nil {
		return nil, svcErr.Map(err)
	}
	return &pb.CountMutualMatchesResponse{Count: uint64(n)}, nil
}
