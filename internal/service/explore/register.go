package explore

import (
	"google.golang.org/grpc"

	"github.com/oggyb/duo-match/internal/app"
	pb "github.com/oggyb/duo-match/internal/proto/explore"
)

// Registrar ties the Explore service into the gRPC server
type Registrar struct {
	appCtx *app.AppContext
	opts   []Option
}

// NewRegistrar creates a new Registrar for the Explore service
func NewRegistrar(appCtx *app.AppContext, opts ...Option) *Registrar {
	return &Registrar{appCtx: appCtx, opts: opts}
}

// Name is the gRPC service name, used for health reporting.
func (r *Registrar) Name() string {
	return pb.ExploreService_ServiceDesc.ServiceName
}

// Register attaches the Explore service implementation to the gRPC server
func (r *Registrar) Register(s *grpc.Server) {
	service := NewExploreService(r.appCtx, r.opts...)
	pb.RegisterExploreServiceServer(s, service)
}
