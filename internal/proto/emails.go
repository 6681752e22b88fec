package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	EmailServiceName                     = "emails.EmailService"
	EmailService_RenderLinksImportErrors = "/emails.EmailService/RenderLinksImportErrors"
)

// EmailServiceServer is the server API for EmailService service.
//
// Requests travel as google.protobuf.Struct carrying the same fields as the
// JSON API, and the rendered HTML comes back as google.protobuf.StringValue.
type EmailServiceServer interface {
	RenderLinksImportErrors(context.Context, *structpb.Struct) (*wrapperspb.StringValue, error)
}

// UnimplementedEmailServiceServer can be embedded to have forward compatible implementations.
type UnimplementedEmailServiceServer struct{}

func (UnimplementedEmailServiceServer) RenderLinksImportErrors(context.Context, *structpb.Struct) (*wrapperspb.StringValue, error) {
	return nil, status.Error(codes.Unimplemented, "method RenderLinksImportErrors not implemented")
}

func RegisterEmailServiceServer(s grpc.ServiceRegistrar, srv EmailServiceServer) {
	s.RegisterService(&_EmailService_serviceDesc, srv)
}

func _EmailService_RenderLinksImportErrors_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(EmailServiceServer).RenderLinksImportErrors(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: EmailService_RenderLinksImportErrors,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(EmailServiceServer).RenderLinksImportErrors(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

var _EmailService_serviceDesc = grpc.ServiceDesc{
	ServiceName: EmailServiceName,
	HandlerType: (*EmailServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "RenderLinksImportErrors",
			Handler:    _EmailService_RenderLinksImportErrors_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "emails.proto",
}

// EmailServiceClient is the client API for EmailService service.
type EmailServiceClient interface {
	RenderLinksImportErrors(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
}

type emailServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewEmailServiceClient(cc grpc.ClientConnInterface) EmailServiceClient {
	return &emailServiceClient{cc: cc}
}

func (c *emailServiceClient) RenderLinksImportErrors(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	if err := c.cc.Invoke(ctx, EmailService_RenderLinksImportErrors, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
