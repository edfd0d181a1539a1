package composition

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/SscSPs/docflow_backend/internal/core/domain"
	"github.com/SscSPs/docflow_backend/internal/utils"
)

// Article is one numbered section of an instantiated contract template.
type Article struct {
	Number int
	Title  string
	Body   string
}

// PartnershipParams are the values substituted into the partnership template.
type PartnershipParams struct {
	Organization     string
	Partner          string
	Commission       string
	PaymentFrequency string
	PaymentMethod    string
	DeliveryParty    string
	DeliveryFee      string
	Duration         string
}

// partnershipArticles is the fixed partnership agreement. Callers only supply the
// parameter values; the structure and wording never change.
var partnershipArticles = []struct {
	title string
	body  string
}{
	{"Object of the agreement",
		"{{.Organization}} (the Platform) lists and sells through its online store the products and services of {{.Partner}} (the Provider) under the terms of this agreement."},
	{"Obligations of the Provider",
		"The Provider keeps product information, prices and stock accurate, fulfils accepted orders within the agreed lead times and guarantees that the products comply with applicable legislation."},
	{"Obligations of the Platform",
		"The Platform publishes the Provider's offer, processes customer payments, forwards orders without delay and provides the Provider with monthly sales reports."},
	{"Commission",
		"For every completed sale the Platform retains a commission of {{.Commission}} of the sale value, excluding delivery fees."},
	{"Payment cadence",
		"Amounts due to the Provider, net of commission, are settled {{.PaymentFrequency}} by {{.PaymentMethod}}, on the basis of the sales report for the period."},
	{"Delivery",
		"Delivery of orders to customers is the responsibility of {{.DeliveryParty}}. The delivery fee charged per order is {{.DeliveryFee}}."},
	{"Returns",
		"Returns accepted under consumer protection rules are refunded to the customer by the Platform; the corresponding amounts and commission are deducted from the next settlement."},
	{"Confidentiality",
		"Both parties keep confidential any commercial, technical or customer information obtained during the execution of this agreement, during its term and for two years after it ends."},
	{"Duration",
		"This agreement enters into force on the date of signature by both parties and is concluded for a period of {{.Duration}}, renewable by written addendum."},
	{"Termination",
		"Either party may terminate this agreement with 30 days written notice, or immediately in case of serious breach of contractual obligations by the other party."},
	{"Disputes",
		"Disputes arising from this agreement are settled amicably and, failing that, by the competent courts at the registered office of the Platform."},
}

// PartnershipArticleCount is the number of articles in the partnership template.
var PartnershipArticleCount = len(partnershipArticles)

var compiledPartnershipArticles = compilePartnershipArticles()

func compilePartnershipArticles() []*template.Template {
	out := make([]*template.Template, len(partnershipArticles))
	for i, a := range partnershipArticles {
		out[i] = template.Must(template.New(fmt.Sprintf("article-%d", i+1)).Option("missingkey=error").Parse(a.body))
	}
	return out
}

var frequencyLabels = map[domain.PaymentFrequency]string{
	domain.PayWeekly:   "weekly",
	domain.PayBiweekly: "every two weeks",
	domain.PayMonthly:  "monthly",
}

var methodLabels = map[domain.PaymentMethod]string{
	domain.PayByBankTransfer: "bank transfer",
	domain.PayByCard:         "card payment",
	domain.PayByCash:         "cash",
}

// NewPartnershipParams formats contract terms for substitution.
func NewPartnershipParams(organization, partner string, terms domain.PartnershipTerms, money utils.MoneyFormatter) PartnershipParams {
	party := "the Provider"
	if terms.DeliveryResponsibility == domain.DeliveryByPlatform {
		party = "the Platform"
	}
	duration := fmt.Sprintf("%d months", terms.DurationMonths)
	if terms.DurationMonths == 1 {
		duration = "1 month"
	}
	return PartnershipParams{
		Organization:     organization,
		Partner:          partner,
		Commission:       utils.FormatPercent(terms.CommissionPercent),
		PaymentFrequency: frequencyLabels[terms.PaymentFrequency],
		PaymentMethod:    methodLabels[terms.PaymentMethod],
		DeliveryParty:    party,
		DeliveryFee:      money.Format(terms.DeliveryFee),
		Duration:         duration,
	}
}

// InstantiatePartnership renders the fixed article list with params.
func InstantiatePartnership(params PartnershipParams) ([]Article, error) {
	articles := make([]Article, len(partnershipArticles))
	for i, tmpl := range compiledPartnershipArticles {
		var b strings.Builder
		if err := tmpl.Execute(&b, params); err != nil {
			return nil, fmt.Errorf("instantiate article %d: %w", i+1, err)
		}
		articles[i] = Article{Number: i + 1, Title: partnershipArticles[i].title, Body: b.String()}
	}
	return articles, nil
}
