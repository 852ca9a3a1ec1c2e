package proto

import (
	"context"

	"google.golang.org/grpc"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "graphauth.v1.GraphAuth"

// Full method names, as seen by interceptors.
const (
	GraphAuth_CheckUsername_FullMethodName = "/" + ServiceName + "/CheckUsername"
	GraphAuth_Register_FullMethodName      = "/" + ServiceName + "/Register"
	GraphAuth_BeginLogin_FullMethodName    = "/" + ServiceName + "/BeginLogin"
	GraphAuth_Grid_FullMethodName          = "/" + ServiceName + "/Grid"
	GraphAuth_SubmitAttempt_FullMethodName = "/" + ServiceName + "/SubmitAttempt"
	GraphAuth_WhoAmI_FullMethodName        = "/" + ServiceName + "/WhoAmI"
	GraphAuth_Ping_FullMethodName          = "/" + ServiceName + "/Ping"
)

// GraphAuthServer is the server API of the graphauth service.
type GraphAuthServer interface {
	CheckUsername(context.Context, *CheckUsernameRequest) (*CheckUsernameResponse, error)
	Register(context.Context, *RegisterRequest) (*RegisterResponse, error)
	BeginLogin(context.Context, *BeginLoginRequest) (*BeginLoginResponse, error)
	Grid(context.Context, *GridRequest) (*GridResponse, error)
	SubmitAttempt(context.Context, *SubmitAttemptRequest) (*SubmitAttemptResponse, error)
	WhoAmI(context.Context, *WhoAmIRequest) (*WhoAmIResponse, error)
	Ping(context.Context, *PingRequest) (*PingResponse, error)
}

// unary builds the method descriptor of one unary RPC.
func unary[Req, Resp any](name string, call func(GraphAuthServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(GraphAuthServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/" + name}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(GraphAuthServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// GraphAuth_ServiceDesc describes the service to grpc.Server.
var GraphAuth_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*GraphAuthServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("CheckUsername", GraphAuthServer.CheckUsername),
		unary("Register", GraphAuthServer.Register),
		unary("BeginLogin", GraphAuthServer.BeginLogin),
		unary("Grid", GraphAuthServer.Grid),
		unary("SubmitAttempt", GraphAuthServer.SubmitAttempt),
		unary("WhoAmI", GraphAuthServer.WhoAmI),
		unary("Ping", GraphAuthServer.Ping),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "graphauth/v1/graphauth.proto",
}

// RegisterGraphAuthServer registers srv on s.
func RegisterGraphAuthServer(s grpc.ServiceRegistrar, srv GraphAuthServer) {
	s.RegisterService(&GraphAuth_ServiceDesc, srv)
}

// GraphAuthClient is the client API of the graphauth service. Every call
// is sent with the JSON codec.
type GraphAuthClient interface {
	CheckUsername(ctx context.Context, in *CheckUsernameRequest, opts ...grpc.CallOption) (*CheckUsernameResponse, error)
	Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error)
	BeginLogin(ctx context.Context, in *BeginLoginRequest, opts ...grpc.CallOption) (*BeginLoginResponse, error)
	Grid(ctx context.Context, in *GridRequest, opts ...grpc.CallOption) (*GridResponse, error)
	SubmitAttempt(ctx context.Context, in *SubmitAttemptRequest, opts ...grpc.CallOption) (*SubmitAttemptResponse, error)
	WhoAmI(ctx context.Context, in *WhoAmIRequest, opts ...grpc.CallOption) (*WhoAmIResponse, error)
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error)
}

type graphAuthClient struct {
	cc grpc.ClientConnInterface
}

func NewGraphAuthClient(cc grpc.ClientConnInterface) GraphAuthClient {
	return &graphAuthClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *graphAuthClient) CheckUsername(ctx context.Context, in *CheckUsernameRequest, opts ...grpc.CallOption) (*CheckUsernameResponse, error) {
	return invoke[CheckUsernameResponse](ctx, c.cc, GraphAuth_CheckUsername_FullMethodName, in, opts)
}

func (c *graphAuthClient) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error) {
	return invoke[RegisterResponse](ctx, c.cc, GraphAuth_Register_FullMethodName, in, opts)
}

func (c *graphAuthClient) BeginLogin(ctx context.Context, in *BeginLoginRequest, opts ...grpc.CallOption) (*BeginLoginResponse, error) {
	return invoke[BeginLoginResponse](ctx, c.cc, GraphAuth_BeginLogin_FullMethodName, in, opts)
}

func (c *graphAuthClient) Grid(ctx context.Context, in *GridRequest, opts ...grpc.CallOption) (*GridResponse, error) {
	return invoke[GridResponse](ctx, c.cc, GraphAuth_Grid_FullMethodName, in, opts)
}

func (c *graphAuthClient) SubmitAttempt(ctx context.Context, in *SubmitAttemptRequest, opts ...grpc.CallOption) (*SubmitAttemptResponse, error) {
	return invoke[SubmitAttemptResponse](ctx, c.cc, GraphAuth_SubmitAttempt_FullMethodName, in, opts)
}

func (c *graphAuthClient) WhoAmI(ctx context.Context, in *WhoAmIRequest, opts ...grpc.CallOption) (*WhoAmIResponse, error) {
	return invoke[WhoAmIResponse](ctx, c.cc, GraphAuth_WhoAmI_FullMethodName, in, opts)
}

func (c *graphAuthClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, GraphAuth_Ping_FullMethodName, in, opts)
}
