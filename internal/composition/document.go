package composition

import (
	"time"

	"github.com/SscSPs/docflow_backend/internal/core/domain"
)

// ContentTypePDF is the content type of every rendered artifact.
const ContentTypePDF = "application/pdf"

// Kind is the family of a rendered document.
type Kind string

const (
	KindQuote    Kind = "quote"
	KindInvoice  Kind = "invoice"
	KindContract Kind = "contract"
)

// Organization is the issuing company shown in headers, footers and contract parties.
type Organization struct {
	Name            string
	TaxID           string
	TradeRegistryID string
	Address         string
	Email           string
	Phone           string
	Website         string
	LogoURL         string
}

// Document is a fully loaded document ready for composition.
type Document struct {
	Kind       Kind
	Number     string
	IssuedAt   time.Time
	Partner    domain.Partner
	Quote      *domain.Quote
	Invoice    *domain.Invoice
	Contract   *domain.Contract
	Signatures []domain.Signature
}

// Artifact is a rendered, paginated document.
type Artifact struct {
	Content     []byte
	ContentType string
	FileName    string
}

// QuoteDocument wraps a quote and its partner for rendering.
func QuoteDocument(q domain.Quote, partner domain.Partner) Document {
	return Document{Kind: KindQuote, Number: q.QuoteID, IssuedAt: q.CreatedAt, Partner: partner, Quote: &q}
}

// InvoiceDocument wraps an invoice and its partner for rendering.
func InvoiceDocument(inv domain.Invoice, partner domain.Partner) Document {
	return Document{Kind: KindInvoice, Number: inv.InvoiceID, IssuedAt: inv.CreatedAt, Partner: partner, Invoice: &inv}
}

// ContractDocument wraps a contract, its partner and its signature ledger for rendering.
func ContractDocument(c domain.Contract, partner domain.Partner, signatures []domain.Signature) Document {
	return Document{Kind: KindContract, Number: c.ContractID, IssuedAt: c.CreatedAt, Partner: partner, Contract: &c, Signatures: signatures}
}

func (d Document) fileName() string {
	return string(d.Kind) + "-" + d.Number + ".pdf"
}

// PartnerLines lists partner display fields in their fixed order, omitting empty ones:
// name, representative, address, city/country, email, phone, fiscal ids.
func PartnerLines(p domain.Partner) []string {
	var lines []string
	add := func(label, value string) {
		if value == "" {
			return
		}
		lines = append(lines, label+value)
	}
	add("", p.DisplayName())
	if p.Representative != nil {
		add("Represented by: ", *p.Representative)
	}
	add("", p.Address)
	add("", joinNonEmpty(", ", p.City, p.Country))
	add("Email: ", p.Email)
	add("Phone: ", p.Phone)
	add("Tax ID: ", p.TaxID)
	add("Reg. No.: ", p.TradeRegistryID)
	return lines
}

// OrganizationLines lists the issuer identity fields, omitting empty ones.
func OrganizationLines(o Organization) []string {
	var lines []string
	for _, l := range []struct{ label, value string }{
		{"", o.Name},
		{"Tax ID: ", o.TaxID},
		{"Reg. No.: ", o.TradeRegistryID},
		{"", o.Address},
		{"Email: ", o.Email},
		{"Phone: ", o.Phone},
		{"", o.Website},
	} {
		if l.value != "" {
			lines = append(lines, l.label+l.value)
		}
	}
	return lines
}

func (o Organization) contactLine() string {
	return joinNonEmpty(" | ", o.Name, o.Email, o.Phone, o.Website)
}

func joinNonEmpty(sep string, parts ...string) string {
	out := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += sep
		}
		out += p
	}
	return out
}
