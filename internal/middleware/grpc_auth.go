package middleware

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type GRPCAuthMiddleware struct {
	validator TokenValidator
}

func NewGRPCAuthMiddleware(validator TokenValidator) *GRPCAuthMiddleware {
	return &GRPCAuthMiddleware{
		validator: validator,
	}
}

// UnaryInterceptor requires a bearer token in the authorization metadata.
func (m *GRPCAuthMiddleware) UnaryInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "metadata is missing")
	}

	values := md.Get("authorization")
	if len(values) == 0 {
		return nil, status.Error(codes.Unauthenticated, "authorization token is missing")
	}

	token, ok := BearerToken(values[0])
	if !ok {
		token = values[0]
	}

	claims, err := m.validator.ValidateToken(token)
	if err != nil {
		return nil, status.Error(codes.Unauthenticated, "invalid authorization token")
	}

	ctx = context.WithValue(ctx, ClientIDKey, claims.ClientID)
	return handler(ctx, req)
}
