// Package rpc describes the postcard gRPC service: message types, the
// service descriptor with its client stub, and the JSON codec the calls use.
package rpc

import (
	"context"

	"google.golang.org/grpc"
)

const (
	ServiceName = "postplanner.PostcardService"

	ListMethod   = "/" + ServiceName + "/List"
	GetMethod    = "/" + ServiceName + "/Get"
	InsertMethod = "/" + ServiceName + "/Insert"
	PatchMethod  = "/" + ServiceName + "/Patch"
	RemoveMethod = "/" + ServiceName + "/Remove"
)

type PostcardServiceServer interface {
	List(context.Context, *ListRequest) (*ListResponse, error)
	Get(context.Context, *GetRequest) (*GetResponse, error)
	Insert(context.Context, *InsertRequest) (*InsertResponse, error)
	Patch(context.Context, *PatchRequest) (*PatchResponse, error)
	Remove(context.Context, *RemoveRequest) (*RemoveResponse, error)
}

type PostcardServiceClient interface {
	List(ctx context.Context, in *ListRequest, opts ...grpc.CallOption) (*ListResponse, error)
	Get(ctx context.Context, in *GetRequest, opts ...grpc.CallOption) (*GetResponse, error)
	Insert(ctx context.Context, in *InsertRequest, opts ...grpc.CallOption) (*InsertResponse, error)
	Patch(ctx context.Context, in *PatchRequest, opts ...grpc.CallOption) (*PatchResponse, error)
	Remove(ctx context.Context, in *RemoveRequest, opts ...grpc.CallOption) (*RemoveResponse, error)
}

func RegisterPostcardServiceServer(s grpc.ServiceRegistrar, srv PostcardServiceServer) {
	s.RegisterService(&PostcardServiceDesc, srv)
}

var PostcardServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*PostcardServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "List", Handler: unary(ListMethod, PostcardServiceServer.List)},
		{MethodName: "Get", Handler: unary(GetMethod, PostcardServiceServer.Get)},
		{MethodName: "Insert", Handler: unary(InsertMethod, PostcardServiceServer.Insert)},
		{MethodName: "Patch", Handler: unary(PatchMethod, PostcardServiceServer.Patch)},
		{MethodName: "Remove", Handler: unary(RemoveMethod, PostcardServiceServer.Remove)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "postplanner/postcard.json",
}

type methodHandler = func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error)

func unary[Req, Resp any](fullMethod string, call func(PostcardServiceServer, context.Context, *Req) (*Resp, error)) methodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(PostcardServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(PostcardServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

type postcardServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewPostcardServiceClient returns a stub whose calls always use the JSON
// codec, whatever the connection defaults are.
func NewPostcardServiceClient(cc grpc.ClientConnInterface) PostcardServiceClient {
	return &postcardServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *postcardServiceClient) List(ctx context.Context, in *ListRequest, opts ...grpc.CallOption) (*ListResponse, error) {
	return invoke[ListResponse](ctx, c.cc, ListMethod, in, opts)
}

func (c *postcardServiceClient) Get(ctx context.Context, in *GetRequest, opts ...grpc.CallOption) (*GetResponse, error) {
	return invoke[GetResponse](ctx, c.cc, GetMethod, in, opts)
}

func (c *postcardServiceClient) Insert(ctx context.Context, in *InsertRequest, opts ...grpc.CallOption) (*InsertResponse, error) {
	return invoke[InsertResponse](ctx, c.cc, InsertMethod, in, opts)
}

func (c *postcardServiceClient) Patch(ctx context.Context, in *PatchRequest, opts ...grpc.CallOption) (*PatchResponse, error) {
	return invoke[PatchResponse](ctx, c.cc, PatchMethod, in, opts)
}

func (c *postcardServiceClient) Remove(ctx context.Context, in *RemoveRequest, opts ...grpc.CallOption) (*RemoveResponse, error) {
	return invoke[RemoveResponse](ctx, c.cc, RemoveMethod, in, opts)
}
