package model

// ImportErrorLink describes a single link that could not be imported.
type ImportErrorLink struct {
	Domain string `json:"domain"`
	Key    string `json:"key"`
	Error  string `json:"error"`
}

// LinksImportErrorsRequest asks for the links import errors email to be sent.
type LinksImportErrorsRequest struct {
	Email         string            `json:"email"`
	Provider      string            `json:"provider"`
	ErrorLinks    []ImportErrorLink `json:"errorLinks"`
	WorkspaceName string            `json:"workspaceName"`
	WorkspaceSlug string            `json:"workspaceSlug"`
}
