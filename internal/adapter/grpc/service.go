package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully-qualified gRPC service name
const ServiceName = "wealthflow.roadmap.v1.RoadmapService"

// Method names of RoadmapService
const (
	MethodCreateRoadmap     = "CreateRoadmap"
	MethodGetLatestRoadmap  = "GetLatestRoadmap"
	MethodGetValuation      = "GetValuation"
	MethodCreateHolding     = "CreateHolding"
	MethodListHoldings      = "ListHoldings"
	MethodGetHolding        = "GetHolding"
	MethodUpdateMarketValue = "UpdateMarketValue"
	MethodGetProfile        = "GetProfile"
	MethodSaveProfile       = "SaveProfile"
)

// RoadmapServiceServer is the server API for RoadmapService.
// Requests and responses are google.protobuf.Struct messages holding the JSON form of the payload.
type RoadmapServiceServer interface {
	CreateRoadmap(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetLatestRoadmap(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetValuation(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CreateHolding(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListHoldings(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetHolding(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateMarketValue(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetProfile(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SaveProfile(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryCall func(srv RoadmapServiceServer, ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)

// RoadmapServiceDesc is the grpc.ServiceDesc for RoadmapService
var RoadmapServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*RoadmapServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: MethodCreateRoadmap, Handler: unaryHandler(MethodCreateRoadmap, RoadmapServiceServer.CreateRoadmap)},
		{MethodName: MethodGetLatestRoadmap, Handler: unaryHandler(MethodGetLatestRoadmap, RoadmapServiceServer.GetLatestRoadmap)},
		{MethodName: MethodGetValuation, Handler: unaryHandler(MethodGetValuation, RoadmapServiceServer.GetValuation)},
		{MethodName: MethodCreateHolding, Handler: unaryHandler(MethodCreateHolding, RoadmapServiceServer.CreateHolding)},
		{MethodName: MethodListHoldings, Handler: unaryHandler(MethodListHoldings, RoadmapServiceServer.ListHoldings)},
		{MethodName: MethodGetHolding, Handler: unaryHandler(MethodGetHolding, RoadmapServiceServer.GetHolding)},
		{MethodName: MethodUpdateMarketValue, Handler: unaryHandler(MethodUpdateMarketValue, RoadmapServiceServer.UpdateMarketValue)},
		{MethodName: MethodGetProfile, Handler: unaryHandler(MethodGetProfile, RoadmapServiceServer.GetProfile)},
		{MethodName: MethodSaveProfile, Handler: unaryHandler(MethodSaveProfile, RoadmapServiceServer.SaveProfile)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "wealthflow/roadmap/v1/roadmap.proto",
}

// RegisterRoadmapServiceServer registers srv with the gRPC server
func RegisterRoadmapServiceServer(s grpc.ServiceRegistrar, srv RoadmapServiceServer) {
	s.RegisterService(&RoadmapServiceDesc, srv)
}

func unaryHandler(method string, call unaryCall) grpc.MethodHandler {
	fullMethod := "/" + ServiceName + "/" + method

	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(RoadmapServiceServer), ctx, in)
		}

		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(RoadmapServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// RoadmapServiceClient is the client API for RoadmapService
type RoadmapServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewRoadmapServiceClient creates a client on top of an established connection
func NewRoadmapServiceClient(cc grpc.ClientConnInterface) *RoadmapServiceClient {
	return &RoadmapServiceClient{cc: cc}
}

func (c *RoadmapServiceClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/"+method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateRoadmap calls RoadmapService.CreateRoadmap
func (c *RoadmapServiceClient) CreateRoadmap(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodCreateRoadmap, in, opts...)
}

// GetLatestRoadmap calls RoadmapService.GetLatestRoadmap
func (c *RoadmapServiceClient) GetLatestRoadmap(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodGetLatestRoadmap, in, opts...)
}

// CreateHolding calls RoadmapService.CreateHolding
func (c *RoadmapServiceClient) CreateHolding(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodCreateHolding, in, opts...)
}

// ListHoldings calls RoadmapService.ListHoldings
func (c *RoadmapServiceClient) ListHoldings(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodListHoldings, in, opts...)
}

// GetHolding calls RoadmapService.GetHolding
func (c *RoadmapServiceClient) GetHolding(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodGetHolding, in, opts...)
}

// GetValuation calls RoadmapService.GetValuation
func (c *RoadmapServiceClient) GetValuation(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodGetValuation, in, opts...)
}

// UpdateMarketValue calls RoadmapService.UpdateMarketValue
func (c *RoadmapServiceClient) UpdateMarketValue(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodUpdateMarketValue, in, opts...)
}

// GetProfile calls RoadmapService.GetProfile
func (c *RoadmapServiceClient) GetProfile(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodGetProfile, in, opts...)
}

// SaveProfile calls RoadmapService.SaveProfile
func (c *RoadmapServiceClient) SaveProfile(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodSaveProfile, in, opts...)
}
