package handler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/ardevpk/dub/internal/service"
	"github.com/ardevpk/dub/internal/storage/memory"
)

func grpcRequest(t *testing.T, fields map[string]interface{}) *structpb.Struct {
	t.Helper()
	req, err := structpb.NewStruct(fields)
	require.NoError(t, err)
	return req
}

func validGRPCFields() map[string]interface{} {
	return map[string]interface{}{
		"email":    "panic@thedis.co",
		"provider": "Rebrandly",
		"errorLinks": []interface{}{
			map[string]interface{}{"domain": "dub.sh", "key": "abc", "error": "Duplicate key"},
		},
		"workspaceName": "Acme",
		"workspaceSlug": "acme",
	}
}

func TestRenderLinksImportErrors(t *testing.T) {
	server := NewEmailGRPCServer(service.NewNotificationService(memory.NewStorage(), nil, ""))

	resp, err := server.RenderLinksImportErrors(context.Background(), grpcRequest(t, validGRPCFields()))
	require.NoError(t, err)

	html := resp.GetValue()
	assert.Contains(t, html, "Some Rebrandly links have failed to import")
	assert.Contains(t, html, "dub.sh/abc")
	assert.Contains(t, html, "Duplicate key")
	assert.Contains(t, html, "https://app.dub.co/acme")
}

func TestRenderLinksImportErrors_InvalidArgument(t *testing.T) {
	server := NewEmailGRPCServer(service.NewNotificationService(memory.NewStorage(), nil, ""))

	badProvider := validGRPCFields()
	badProvider["provider"] = "TinyURL"

	missingEmail := validGRPCFields()
	delete(missingEmail, "email")

	wrongType := validGRPCFields()
	wrongType["errorLinks"] = "dub.sh/abc"

	for name, fields := range map[string]map[string]interface{}{
		"provider": badProvider,
		"email":    missingEmail,
		"type":     wrongType,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := server.RenderLinksImportErrors(context.Background(), grpcRequest(t, fields))
			assert.Equal(t, codes.InvalidArgument, status.Code(err))
		})
	}

	_, err := server.RenderLinksImportErrors(context.Background(), nil)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}
