// Package explore holds the wire contract of explore.ExploreService: request
// and response messages plus the gRPC service descriptor. Messages travel as
// JSON (see CodecName). explore.proto is the same contract in protobuf form.
package explore

//go:generate protoc --go_out=. --go_opt=paths=source_relative --go-grpc_out=. --go-grpc_opt=paths=source_relative explore.proto

// Action values accepted by PutDecisionRequest.
const (
	ActionLiked    = "liked"
	ActionRejected = "rejected"
)

type PutDecisionRequest struct {
	ActorMemberId string `json:"actor_member_id"`
	CandidateId   string `json:"candidate_id"`
	Action        string `json:"action"`
}

func (x *PutDecisionRequest) GetActorMemberId() string {
	if x != nil {
		return x.ActorMemberId
	}
	return ""
}

func (x *PutDecisionRequest) GetCandidateId() string {
	if x != nil {
		return x.CandidateId
	}
	return ""
}

func (x *PutDecisionRequest) GetAction() string {
	if x != nil {
		return x.Action
	}
	return ""
}

// PutDecisionResponse reports the couple's combined state after the action.
// Changed is false when the action repeated what was already stored.
type PutDecisionResponse struct {
	Status   string `json:"status"`
	IsMutual bool   `json:"is_mutual"`
	Changed  bool   `json:"changed"`
}

func (x *PutDecisionResponse) GetStatus() string {
	if x != nil {
		return x.Status
	}
	return ""
}

func (x *PutDecisionResponse) GetIsMutual() bool {
	if x != nil {
		return x.IsMutual
	}
	return false
}

func (x *PutDecisionResponse) GetChanged() bool {
	if x != nil {
		return x.Changed
	}
	return false
}

type ListHiddenCandidatesRequest struct {
	MemberId string `json:"member_id"`
}

func (x *ListHiddenCandidatesRequest) GetMemberId() string {
	if x != nil {
		return x.MemberId
	}
	return ""
}

type ListHiddenCandidatesResponse struct {
	CandidateIds []string `json:"candidate_ids"`
}

func (x *ListHiddenCandidatesResponse) GetCandidateIds() []string {
	if x != nil {
		return x.CandidateIds
	}
	return nil
}

type GetPartnerSignalRequest struct {
	MemberId    string `json:"member_id"`
	CandidateId string `json:"candidate_id"`
}

func (x *GetPartnerSignalRequest) GetMemberId() string {
	if x != nil {
		return x.MemberId
	}
	return ""
}

func (x *GetPartnerSignalRequest) GetCandidateId() string {
	if x != nil {
		return x.CandidateId
	}
	return ""
}

type GetPartnerSignalResponse struct {
	RecordExists    bool   `json:"record_exists"`
	Status          string `json:"status"`
	PartnerMemberId string `json:"partner_member_id,omitempty"`
	PartnerAction   string `json:"partner_action,omitempty"`
	Liked           bool   `json:"liked"`
	Rejected        bool   `json:"rejected"`
	CanResurrect    bool   `json:"can_resurrect"`
}

func (x *GetPartnerSignalResponse) GetRecordExists() bool {
	if x != nil {
		return x.RecordExists
	}
	return false
}

func (x *GetPartnerSignalResponse) GetStatus() string {
	if x != nil {
		return x.Status
	}
	return ""
}

func (x *GetPartnerSignalResponse) GetPartnerMemberId() string {
	if x != nil {
		return x.PartnerMemberId
	}
	return ""
}

func (x *GetPartnerSignalResponse) GetPartnerAction() string {
	if x != nil {
		return x.PartnerAction
	}
	return ""
}

func (x *GetPartnerSignalResponse) GetLiked() bool {
	if x != nil {
		return x.Liked
	}
	return false
}

func (x *GetPartnerSignalResponse) GetRejected() bool {
	if x != nil {
		return x.Rejected
	}
	return false
}

func (x *GetPartnerSignalResponse) GetCanResurrect() bool {
	if x != nil {
		return x.CanResurrect
	}
	return false
}

type ListMutualMatchesRequest struct {
	MemberId        string  `json:"member_id"`
	PaginationToken *string `json:"pagination_token,omitempty"`
}

func (x *ListMutualMatchesRequest) GetMemberId() string {
	if x != nil {
		return x.MemberId
	}
	return ""
}

func (x *ListMutualMatchesRequest) GetPaginationToken() string {
	if x != nil && x.PaginationToken != nil {
		return *x.PaginationToken
	}
	return ""
}

type ListMutualMatchesResponse struct {
	Matches             []*ListMutualMatchesResponse_Match `json:"matches"`
	NextPaginationToken *string                            `json:"next_pagination_token,omitempty"`
}

func (x *ListMutualMatchesResponse) GetMatches() []*ListMutualMatchesResponse_Match {
	if x != nil {
		return x.Matches
	}
	return nil
}

func (x *ListMutualMatchesResponse) GetNextPaginationToken() string {
	if x != nil && x.NextPaginationToken != nil {
		return *x.NextPaginationToken
	}
	return ""
}

type ListMutualMatchesResponse_Match struct {
	CandidateId   string `json:"candidate_id"`
	UnixTimestamp uint64 `json:"unix_timestamp"` // millis, when the match formed
}

func (x *ListMutualMatchesResponse_Match) GetCandidateId() string {
	if x != nil {
		return x.CandidateId
	}
	return ""
}

func (x *ListMutualMatchesResponse_Match) GetUnixTimestamp() uint64 {
	if x != nil {
		return x.UnixTimestamp
	}
	return 0
}

type CountMutualMatchesRequest struct {
	MemberId string `json:"member_id"`
}

func (x *CountMutualMatchesRequest) GetMemberId() string {
	if x != nil {
		return x.MemberId
	}
	return ""
}

type CountMutualMatchesResponse struct {
	Count uint64 `json:"count"`
}

func (x *CountMutualMatchesResponse) GetCount() uint64 {
	if x != nil {
		return x.Count
	}
	return 0
}
