package composition

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/docflow_backend/internal/apperrors"
	"github.com/SscSPs/docflow_backend/internal/core/ports/infrastructure"
	"github.com/SscSPs/docflow_backend/internal/utils"
)

const (
	// DefaultFetchTimeout bounds how long rendering waits for the organization logo.
	DefaultFetchTimeout = 3 * time.Second

	// DefaultTaxExemptionNotice is printed under the totals of quotes and invoices.
	DefaultTaxExemptionNotice = "VAT exempt: the issuer is not registered for VAT purposes."

	dateLayout = "2006-01-02"
)

// Renderer composes quotes, invoices and contracts into paginated PDF artifacts.
type Renderer struct {
	org          Organization
	money        utils.MoneyFormatter
	fetcher      infrastructure.AssetFetcher
	fetchTimeout time.Duration
	taxNotice    string
	compress     bool
	logger       *slog.Logger
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithAssetFetcher sets the fetcher used to load the organization logo.
func WithAssetFetcher(f infrastructure.AssetFetcher) Option {
	return func(r *Renderer) { r.fetcher = f }
}

// WithFetchTimeout overrides DefaultFetchTimeout.
func WithFetchTimeout(d time.Duration) Option {
	return func(r *Renderer) {
		if d > 0 {
			r.fetchTimeout = d
		}
	}
}

// WithTaxExemptionNotice overrides the notice printed under totals. An empty notice disables it.
func WithTaxExemptionNotice(notice string) Option {
	return func(r *Renderer) { r.taxNotice = notice }
}

// WithCompression toggles PDF stream compression.
func WithCompression(enabled bool) Option {
	return func(r *Renderer) { r.compress = enabled }
}

// WithLogger sets the logger used for degraded-rendering warnings.
func WithLogger(l *slog.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRenderer creates a renderer for the given issuing organization.
func NewRenderer(org Organization, money utils.MoneyFormatter, opts ...Option) *Renderer {
	r := &Renderer{
		org:          org,
		money:        money,
		fetchTimeout: DefaultFetchTimeout,
		taxNotice:    DefaultTaxExemptionNotice,
		compress:     true,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render produces the PDF for doc. Rendering is deterministic for a given document
// except for the logo, which is omitted when it cannot be fetched in time.
func (r *Renderer) Render(ctx context.Context, doc Document) (*Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := doc.validate(); err != nil {
		return nil, err
	}

	logo := r.fetchLogo(ctx)

	c := newCanvas(r.compress)
	pdf := c.pdf
	pdf.SetTitle(string(doc.Kind)+" "+doc.Number, true)
	pdf.SetAuthor(r.org.Name, true)
	pdf.SetCreator("docflow", true)
	pdf.SetCreationDate(doc.IssuedAt)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() { r.drawFooter(c, doc.Number) })
	pdf.AddPage()

	r.drawHeader(c, logo)
	switch doc.Kind {
	case KindQuote:
		r.drawQuote(c, *doc.Quote, doc.Partner)
	case KindInvoice:
		r.drawInvoice(c, *doc.Invoice, doc.Partner)
	case KindContract:
		if err := r.drawContract(c, *doc.Contract, doc.Partner, doc.Signatures); err != nil {
			return nil, err
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render %s %s: %w", doc.Kind, doc.Number, err)
	}
	return &Artifact{Content: buf.Bytes(), ContentType: ContentTypePDF, FileName: doc.fileName()}, nil
}

func (d Document) validate() error {
	ok := false
	switch d.Kind {
	case KindQuote:
		ok = d.Quote != nil
	case KindInvoice:
		ok = d.Invoice != nil
	case KindContract:
		ok = d.Contract != nil
	}
	if !ok || d.Number == "" {
		return fmt.Errorf("%w: incomplete %q document", apperrors.ErrValidation, d.Kind)
	}
	return nil
}

type logoImage struct {
	imageType string
	data      []byte
}

func (r *Renderer) fetchLogo(ctx context.Context) *logoImage {
	if r.fetcher == nil || r.org.LogoURL == "" {
		return nil
	}
	fetchCtx, cancel := context.WithTimeout(ctx, r.fetchTimeout)
	defer cancel()

	data, err := r.fetcher.Fetch(fetchCtx, r.org.LogoURL)
	if err != nil {
		r.logger.WarnContext(ctx, "Logo unavailable, rendering text header", slog.String("ref", r.org.LogoURL), slog.String("error", err.Error()))
		return nil
	}
	imageType, ok := sniffImageType(data)
	if !ok {
		r.logger.WarnContext(ctx, "Logo is not a supported image, rendering text header", slog.String("ref", r.org.LogoURL))
		return nil
	}
	return &logoImage{imageType: imageType, data: data}
}
