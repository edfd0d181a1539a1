package services

import (
	"context"

	"github.com/SscSPs/docflow_backend/internal/composition"
	"github.com/SscSPs/docflow_backend/internal/core/domain"
	"github.com/SscSPs/docflow_backend/internal/dto"
)

// DocumentRenderer composes a loaded document into an artifact.
type DocumentRenderer interface {
	Render(ctx context.Context, doc composition.Document) (*composition.Artifact, error)
}

// DocumentSvcFacade resolves any document identifier, renders it and dispatches it.
type DocumentSvcFacade interface {
	// RenderDocument renders the quote, invoice or contract named by documentID.
	RenderDocument(ctx context.Context, documentID string, actor domain.Actor) (*composition.Artifact, error)

	// SendDocumentEmail renders the document and emails it. A delivery failure is reported
	// in the result with a nil error.
	SendDocumentEmail(ctx context.Context, documentID string, req dto.SendDocumentEmailRequest, actor domain.Actor) (*dto.DispatchResult, error)
}
