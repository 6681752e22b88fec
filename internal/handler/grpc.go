package handler

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/rs/zerolog/log"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/ardevpk/dub/internal/email/templates"
	"github.com/ardevpk/dub/internal/middleware"
	"github.com/ardevpk/dub/internal/model"
	"github.com/ardevpk/dub/internal/proto"
	"github.com/ardevpk/dub/internal/service"
)

type EmailGRPCServer struct {
	proto.UnimplementedEmailServiceServer
	notificationService NotificationService
}

func NewEmailGRPCServer(notificationService NotificationService) *EmailGRPCServer {
	return &EmailGRPCServer{
		notificationService: notificationService,
	}
}

// RenderLinksImportErrors renders the links import errors email for the
// request carried in req and returns its HTML. Nothing is stored.
func (s *EmailGRPCServer) RenderLinksImportErrors(ctx context.Context, req *structpb.Struct) (*wrapperspb.StringValue, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	request, err := decodeLinksImportErrorsRequest(req)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid request: %v", err)
	}

	props, err := service.LinksImportErrorsProps(request)
	if err != nil {
		if errors.Is(err, templates.ErrInvalidProvider) || errors.Is(err, service.ErrMissingField) {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		return nil, status.Errorf(codes.Internal, "failed to build email: %v", err)
	}

	rendered, err := s.notificationService.PreviewLinksImportErrors(props)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to render email: %v", err)
	}

	clientID, _ := middleware.GetClientIDFromContext(ctx)
	log.Debug().
		Str("clientID", clientID).
		Str("workspace", props.WorkspaceSlug).
		Msg("Rendered links import errors email over gRPC")

	return wrapperspb.String(rendered.HTML), nil
}

func decodeLinksImportErrorsRequest(req *structpb.Struct) (model.LinksImportErrorsRequest, error) {
	var request model.LinksImportErrorsRequest

	data, err := protojson.Marshal(req)
	if err != nil {
		return request, err
	}
	if err := json.Unmarshal(data, &request); err != nil {
		return request, err
	}

	return request, nil
}
