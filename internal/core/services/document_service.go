package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/docflow_backend/internal/apperrors"
	"github.com/SscSPs/docflow_backend/internal/composition"
	"github.com/SscSPs/docflow_backend/internal/core/domain"
	portsinfra "github.com/SscSPs/docflow_backend/internal/core/ports/infrastructure"
	portsrepo "github.com/SscSPs/docflow_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/docflow_backend/internal/core/ports/services"
	"github.com/SscSPs/docflow_backend/internal/dto"
	"github.com/SscSPs/docflow_backend/internal/utils/identifier"
	"github.com/SscSPs/docflow_backend/internal/utils/pricing"
)

var emailBody = template.Must(template.New("email").Parse(`<!DOCTYPE html>
<html><body style="font-family: Helvetica, Arial, sans-serif; color: #222;">
{{if .RecipientName}}<p>Dear {{.RecipientName}},</p>{{else}}<p>Hello,</p>{{end}}
{{range .Paragraphs}}<p>{{.}}</p>
{{end}}<p>Please find attached {{.Label}} <strong>{{.Number}}</strong>.</p>
<p>Kind regards,<br>{{.Organization}}</p>
</body></html>`))

type emailBodyData struct {
	RecipientName string
	Paragraphs    []string
	Label         string
	Number        string
	Organization  string
}

// DocumentRepositories groups the readers the document service loads from.
type DocumentRepositories struct {
	Quotes     portsrepo.QuoteReader
	Invoices   portsrepo.InvoiceReader
	Contracts  portsrepo.ContractReader
	Signatures portsrepo.SignatureReader
	Partners   portsrepo.PartnerReader
}

// documentService implements the DocumentSvcFacade interface
type documentService struct {
	BaseService
	repos        DocumentRepositories
	renderer     portssvc.DocumentRenderer
	mailer       portsinfra.Mailer
	organization string
}

// NewDocumentService creates the render and dispatch facade.
func NewDocumentService(repos DocumentRepositories, renderer portssvc.DocumentRenderer, mailer portsinfra.Mailer, organization string, opts ...Option) portssvc.DocumentSvcFacade {
	return &documentService{
		BaseService:  newBaseService(opts),
		repos:        repos,
		renderer:     renderer,
		mailer:       mailer,
		organization: organization,
	}
}

var _ portssvc.DocumentSvcFacade = (*documentService)(nil)

// RenderDocument loads and renders the document named by documentID.
func (s *documentService) RenderDocument(ctx context.Context, documentID string, actor domain.Actor) (*composition.Artifact, error) {
	doc, err := s.load(ctx, documentID, actor)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	artifact, err := s.renderer.Render(ctx, doc)
	s.metrics.ObserveRender(string(doc.Kind), time.Since(start), err)
	if err != nil {
		s.LogError(ctx, err, "Failed to render document", slog.String("document_id", documentID))
		return nil, err
	}
	s.LogDebug(ctx, "Document rendered",
		slog.String("document_id", documentID),
		slog.Int("bytes", len(artifact.Content)))
	return artifact, nil
}

// SendDocumentEmail renders the document and emails it as an attachment.
func (s *documentService) SendDocumentEmail(ctx context.Context, documentID string, req dto.SendDocumentEmailRequest, actor domain.Actor) (*dto.DispatchResult, error) {
	artifact, err := s.RenderDocument(ctx, documentID, actor)
	if err != nil {
		return nil, err
	}
	kind, _ := identifier.KindOf(documentID)

	var body bytes.Buffer
	if err := emailBody.Execute(&body, emailBodyData{
		RecipientName: req.RecipientName,
		Paragraphs:    paragraphs(req.Message),
		Label:         documentLabel(kind),
		Number:        documentID,
		Organization:  s.organization,
	}); err != nil {
		return nil, fmt.Errorf("render email body: %w", err)
	}

	result := &dto.DispatchResult{
		DocumentID: documentID,
		Recipient:  req.RecipientEmail,
		FileName:   artifact.FileName,
	}
	err = s.mailer.Send(ctx, portsinfra.Email{
		To:      req.RecipientEmail,
		ToName:  req.RecipientName,
		Subject: req.Subject,
		HTML:    body.String(),
		Attachments: []portsinfra.Attachment{{
			FileName:    artifact.FileName,
			ContentType: artifact.ContentType,
			Content:     artifact.Content,
		}},
	})
	s.metrics.ObserveEmail(err)
	if err != nil {
		s.LogError(ctx, err, "Document email dispatch failed",
			slog.String("document_id", documentID),
			slog.String("recipient", req.RecipientEmail))
		result.Error = err.Error()
		return result, nil
	}

	result.Success = true
	s.LogInfo(ctx, "Document emailed",
		slog.String("document_id", documentID),
		slog.String("recipient", req.RecipientEmail))
	return result, nil
}

// load resolves the document kind from the identifier prefix and loads it with its partner.
func (s *documentService) load(ctx context.Context, documentID string, actor domain.Actor) (composition.Document, error) {
	kind, ok := identifier.KindOf(documentID)
	if !ok {
		return composition.Document{}, fmt.Errorf("%q is not a document identifier: %w", documentID, apperrors.ErrValidation)
	}
	if !actor.IsAdmin() && kind != identifier.KindContract {
		return composition.Document{}, fmt.Errorf("role %q may only render contracts: %w", actor.Role, apperrors.ErrForbidden)
	}

	switch kind {
	case identifier.KindQuote:
		quote, err := s.repos.Quotes.FindQuoteByID(ctx, documentID)
		if err != nil {
			return composition.Document{}, err
		}
		quote.Status = quote.EffectiveStatus(s.Now())
		pricing.ApplyToQuote(quote)
		partner, err := s.partner(ctx, quote.PartnerID)
		if err != nil {
			return composition.Document{}, err
		}
		return composition.QuoteDocument(*quote, *partner), nil

	case identifier.KindInvoice:
		invoice, err := s.repos.Invoices.FindInvoiceByID(ctx, documentID)
		if err != nil {
			return composition.Document{}, err
		}
		pricing.ApplyToInvoice(invoice)
		partner, err := s.partner(ctx, invoice.PartnerID)
		if err != nil {
			return composition.Document{}, err
		}
		return composition.InvoiceDocument(*invoice, *partner), nil

	case identifier.KindContract:
		contract, ledger, err := loadContractWithLedger(ctx, s.repos.Contracts, s.repos.Signatures, documentID)
		if err != nil {
			return composition.Document{}, err
		}
		partner, err := s.partner(ctx, contract.PartnerID)
		if err != nil {
			return composition.Document{}, err
		}
		return composition.ContractDocument(*contract, *partner, ledger), nil
	}
	return composition.Document{}, fmt.Errorf("documents of kind %s cannot be rendered: %w", kind, apperrors.ErrValidation)
}

// partner loads the counterparty of a stored document. A dangling reference is an
// internal inconsistency, not a missing document.
func (s *documentService) partner(ctx context.Context, partnerID string) (*domain.Partner, error) {
	partner, err := s.repos.Partners.FindPartnerByID(ctx, partnerID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("partner %s referenced by document is missing: %w", partnerID, apperrors.ErrInternal)
	}
	return partner, err
}

func documentLabel(kind identifier.Kind) string {
	switch kind {
	case identifier.KindQuote:
		return "quote"
	case identifier.KindInvoice:
		return "invoice"
	case identifier.KindContract:
		return "contract"
	}
	return "document"
}

func paragraphs(message string) []string {
	var out []string
	for _, p := range strings.Split(strings.ReplaceAll(message, "\r\n", "\n"), "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
