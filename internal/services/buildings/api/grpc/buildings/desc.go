package buildings

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "skyline.buildings.v1.BuildingService"

// Full method names.
const (
	FetchBuildingsMethod  = "/" + ServiceName + "/FetchBuildings"
	FilterBuildingsMethod = "/" + ServiceName + "/FilterBuildings"
)

// BuildingServiceServer is the server API for BuildingService. Building lists
// travel as a ListValue of record Structs.
type BuildingServiceServer interface {
	FetchBuildings(context.Context, *emptypb.Empty) (*structpb.ListValue, error)
	FilterBuildings(context.Context, *wrapperspb.StringValue) (*structpb.ListValue, error)
}

// RegisterBuildingServiceServer registers srv on registrar.
func RegisterBuildingServiceServer(registrar grpc.ServiceRegistrar, srv BuildingServiceServer) {
	registrar.RegisterService(&ServiceDesc, srv)
}

// ServiceDesc describes BuildingService for grpc.Server registration.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*BuildingServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "FetchBuildings", Handler: fetchBuildingsHandler},
		{MethodName: "FilterBuildings", Handler: filterBuildingsHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "skyline/buildings/v1/buildings.proto",
}

func fetchBuildingsHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(BuildingServiceServer).FetchBuildings(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FetchBuildingsMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(BuildingServiceServer).FetchBuildings(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func filterBuildingsHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(BuildingServiceServer).FilterBuildings(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FilterBuildingsMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(BuildingServiceServer).FilterBuildings(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}
