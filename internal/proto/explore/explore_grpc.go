package explore

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	ExploreService_PutDecision_FullMethodName          = "/explore.ExploreService/PutDecision"
	ExploreService_ListHiddenCandidates_FullMethodName = "/explore.ExploreService/ListHiddenCandidates"
	ExploreService_GetPartnerSignal_FullMethodName     = "/explore.ExploreService/GetPartnerSignal"
	ExploreService_ListMutualMatches_FullMethodName    = "/explore.ExploreService/ListMutualMatches"
	ExploreService_CountMutualMatches_FullMethodName   = "/explore.ExploreService/CountMutualMatches"
)

// ExploreServiceClient is the client API for ExploreService.
// Every call is sent with the json content-subtype.
type ExploreServiceClient interface {
	PutDecision(ctx context.Context, in *PutDecisionRequest, opts ...grpc.CallOption) (*PutDecisionResponse, error)
	ListHiddenCandidates(ctx context.Context, in *ListHiddenCandidatesRequest, opts ...grpc.CallOption) (*ListHiddenCandidatesResponse, error)
	GetPartnerSignal(ctx context.Context, in *GetPartnerSignalRequest, opts ...grpc.CallOption) (*GetPartnerSignalResponse, error)
	ListMutualMatches(ctx context.Context, in *ListMutualMatchesRequest, opts ...grpc.CallOption) (*ListMutualMatchesResponse, error)
	CountMutualMatches(ctx context.Context, in *CountMutualMatchesRequest, opts ...grpc.CallOption) (*CountMutualMatchesResponse, error)
}

type exploreServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewExploreServiceClient(cc grpc.ClientConnInterface) ExploreServiceClient {
	return &exploreServiceClient{cc}
}

func (c *exploreServiceClient) invoke(ctx context.Context, method string, in, out any, opts []grpc.CallOption) error {
	cOpts := append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	return c.cc.Invoke(ctx, method, in, out, cOpts...)
}

func (c *exploreServiceClient) PutDecision(ctx context.Context, in *PutDecisionRequest, opts ...grpc.CallOption) (*PutDecisionResponse, error) {
	out := new(PutDecisionResponse)
	if err := c.invoke(ctx, ExploreService_PutDecision_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *exploreServiceClient) ListHiddenCandidates(ctx context.Context, in *ListHiddenCandidatesRequest, opts ...grpc.CallOption) (*ListHiddenCandidatesResponse, error) {
	out := new(ListHiddenCandidatesResponse)
	if err := c.invoke(ctx, ExploreService_ListHiddenCandidates_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *exploreServiceClient) GetPartnerSignal(ctx context.Context, in *GetPartnerSignalRequest, opts ...grpc.CallOption) (*GetPartnerSignalResponse, error) {
	out := new(GetPartnerSignalResponse)
	if err := c.invoke(ctx, ExploreService_GetPartnerSignal_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *exploreServiceClient) ListMutualMatches(ctx context.Context, in *ListMutualMatchesRequest, opts ...grpc.CallOption) (*ListMutualMatchesResponse, error) {
	out := new(ListMutualMatchesResponse)
	if err := c.invoke(ctx, ExploreService_ListMutualMatches_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *exploreServiceClient) CountMutualMatches(ctx context.Context, in *CountMutualMatchesRequest, opts ...grpc.CallOption) (*CountMutualMatchesResponse, error) {
	out := new(CountMutualMatchesResponse)
	if err := c.invoke(ctx, ExploreService_CountMutualMatches_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

// ExploreServiceServer is the server API for ExploreService.
// Implementations must embed UnimplementedExploreServiceServer.
type ExploreServiceServer interface {
	PutDecision(context.Context, *PutDecisionRequest) (*PutDecisionResponse, error)
	ListHiddenCandidates(context.Context, *ListHiddenCandidatesRequest) (*ListHiddenCandidatesResponse, error)
	GetPartnerSignal(context.Context, *GetPartnerSignalRequest) (*GetPartnerSignalResponse, error)
	ListMutualMatches(context.Context, *ListMutualMatchesRequest) (*ListMutualMatchesResponse, error)
	CountMutualMatches(context.Context, *CountMutualMatchesRequest) (*CountMutualMatchesResponse, error)
	mustEmbedUnimplementedExploreServiceServer()
}

// UnimplementedExploreServiceServer must be embedded to have forward compatible implementations.
type UnimplementedExploreServiceServer struct{}

func (UnimplementedExploreServiceServer) PutDecision(context.Context, *PutDecisionRequest) (*PutDecisionResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method PutDecision not implemented")
}
func (UnimplementedExploreServiceServer) ListHiddenCandidates(context.Context, *ListHiddenCandidatesRequest) (*ListHiddenCandidatesResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListHiddenCandidates not implemented")
}
func (UnimplementedExploreServiceServer) GetPartnerSignal(context.Context, *GetPartnerSignalRequest) (*GetPartnerSignalResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetPartnerSignal not implemented")
}
func (UnimplementedExploreServiceServer) ListMutualMatches(context.Context, *ListMutualMatchesRequest) (*ListMutualMatchesResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListMutualMatches not implemented")
}
func (UnimplementedExploreServiceServer) CountMutualMatches(context.Context, *CountMutualMatchesRequest) (*CountMutualMatchesResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CountMutualMatches not implemented")
}
func (UnimplementedExploreServiceServer) mustEmbedUnimplementedExploreServiceServer() {}

func RegisterExploreServiceServer(s grpc.ServiceRegistrar, srv ExploreServiceServer) {
	s.RegisterService(&ExploreService_ServiceDesc, srv)
}

// unaryHandler adapts one typed server method to grpc.MethodDesc.Handler.
func unaryHandler[Req any, Resp any](
	fullMethod string,
	call func(ExploreServiceServer, context.Context, *Req) (*Resp, error),
) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(ExploreServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(ExploreServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// ExploreService_ServiceDesc is the grpc.ServiceDesc for ExploreService service.
var ExploreService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "explore.ExploreService",
	HandlerType: (*ExploreServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "PutDecision",
			Handler:    unaryHandler(ExploreService_PutDecision_FullMethodName, ExploreServiceServer.PutDecision),
		},
		{
			MethodName: "ListHiddenCandidates",
			Handler:    unaryHandler(ExploreService_ListHiddenCandidates_FullMethodName, ExploreServiceServer.ListHiddenCandidates),
		},
		{
			MethodName: "GetPartnerSignal",
			Handler:    unaryHandler(ExploreService_GetPartnerSignal_FullMethodName, ExploreServiceServer.GetPartnerSignal),
		},
		{
			MethodName: "ListMutualMatches",
			Handler:    unaryHandler(ExploreService_ListMutualMatches_FullMethodName, ExploreServiceServer.ListMutualMatches),
		},
		{
			MethodName: "CountMutualMatches",
			Handler:    unaryHandler(ExploreService_CountMutualMatches_FullMethodName, ExploreServiceServer.CountMutualMatches),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "explore.proto",
}
