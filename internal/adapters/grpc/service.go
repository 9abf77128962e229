package grpc

import (
	"context"

	"google.golang.org/grpc"

	"github.com/andrescamacho/homestead-go/internal/application/building/commands"
	"github.com/andrescamacho/homestead-go/internal/application/building/queries"
)

const serviceName = "homestead.daemon.v1.WorldControl"

// WorldControlServer is the daemon side of the world control service. Every
// edit lands on the live world the tick loop is simulating.
type WorldControlServer interface {
	PlaceBuilding(ctx context.Context, req *commands.PlaceBuildingCommand) (*commands.PlaceBuildingResponse, error)
	UpgradeBuilding(ctx context.Context, req *commands.UpgradeBuildingCommand) (*commands.UpgradeBuildingResponse, error)
	DemolishBuilding(ctx context.Context, req *commands.DemolishBuildingCommand) (*commands.DemolishBuildingResponse, error)
	TakeFromStorage(ctx context.Context, req *commands.TakeFromStorageCommand) (*commands.TakeFromStorageResponse, error)
	GetWorldStatus(ctx context.Context, req *queries.GetWorldStatusQuery) (*queries.GetWorldStatusResponse, error)
}

var worldControlServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*WorldControlServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("PlaceBuilding", WorldControlServer.PlaceBuilding),
		unary("UpgradeBuilding", WorldControlServer.UpgradeBuilding),
		unary("DemolishBuilding", WorldControlServer.DemolishBuilding),
		unary("TakeFromStorage", WorldControlServer.TakeFromStorage),
		unary("GetWorldStatus", WorldControlServer.GetWorldStatus),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "homestead/daemon/v1/world_control",
}

// RegisterWorldControlServer attaches impl to s
func RegisterWorldControlServer(s grpc.ServiceRegistrar, impl WorldControlServer) {
	s.RegisterService(&worldControlServiceDesc, impl)
}

func fullMethod(method string) string {
	return "/" + serviceName + "/" + method
}

// unary builds the method descriptor a protoc plugin would generate for one RPC
func unary[Req, Resp any](method string, call func(WorldControlServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(WorldControlServer), ctx, req.(*Req))
			}
			if interceptor == nil {
				return handler(ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod(method)}
			return interceptor(ctx, in, info, handler)
		},
	}
}
