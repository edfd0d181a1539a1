package composition

import (
	"fmt"
	"strings"

	"github.com/SscSPs/docflow_backend/internal/core/domain"
	"github.com/SscSPs/docflow_backend/internal/utils"
	"github.com/SscSPs/docflow_backend/internal/utils/pricing"
)

// itemColumns are the fixed width proportions of description, quantity, unit price and total.
var itemColumns = [4]float64{0.46, 0.16, 0.18, 0.20}

func (r *Renderer) drawHeader(c *canvas, logo *logoImage) {
	pdf := c.pdf
	top := pdf.GetY()
	leftBottom := top

	details := OrganizationLines(Organization{
		TaxID:           r.org.TaxID,
		TradeRegistryID: r.org.TradeRegistryID,
		Address:         r.org.Address,
		Email:           r.org.Email,
		Phone:           r.org.Phone,
		Website:         r.org.Website,
	})

	placed := false
	if logo != nil {
		if info := c.registerImage("org-logo", logo.imageType, logo.data); info != nil {
			w, h := fitBox(info.Width(), info.Height(), c.width*0.4, 20)
			c.placeImage("org-logo", logo.imageType, c.left, top, w, h)
			leftBottom = top + h
			placed = true
		}
	}
	if placed {
		if r.org.Name != "" {
			details = append([]string{r.org.Name}, details...)
		}
	} else {
		pdf.SetXY(c.left, top)
		c.font("B", 16)
		c.cell(c.width*0.5, 9, r.org.Name, 0, "L")
		leftBottom = top + 9
	}

	colX := c.left + c.width*0.5
	y := top
	for i, line := range details {
		if placed && i == 0 {
			c.font("B", 10)
		} else {
			c.font("", 8.5)
		}
		pdf.SetXY(colX, y)
		c.cell(c.width*0.5, 4.5, line, 0, "R")
		y += 4.5
	}
	pdf.SetY(max(y, leftBottom) + 3)
	c.rule()
}

func (r *Renderer) drawFooter(c *canvas, number string) {
	pdf := c.pdf
	pdf.SetY(-14)
	y := pdf.GetY()
	pdf.SetDrawColor(200, 200, 200)
	pdf.Line(c.left, y, c.left+c.width, y)
	c.font("", 7.5)
	pdf.SetTextColor(110, 110, 110)
	pdf.SetX(c.left)
	c.cell(c.width*0.25, 8, number, 0, "L")
	c.cell(c.width*0.55, 8, r.org.contactLine(), 0, "C")
	pdf.CellFormat(c.width*0.20, 8, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "R", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

type metaRow struct {
	label string
	value string
}

func (r *Renderer) drawTitle(c *canvas, title string, rows []metaRow) {
	pdf := c.pdf
	c.font("B", 18)
	pdf.MultiCell(0, 9, c.tr(title), "", "L", false)
	pdf.Ln(1)
	for _, row := range rows {
		if row.value == "" {
			continue
		}
		c.font("B", 9)
		c.cell(32, 5, row.label, 0, "L")
		c.font("", 9)
		c.cell(c.width-32, 5, row.value, 1, "L")
	}
	pdf.Ln(4)
}

func (r *Renderer) drawPartnerBlock(c *canvas, heading string, p domain.Partner) {
	c.heading(heading)
	for i, line := range PartnerLines(p) {
		if i == 0 {
			c.font("B", 10)
		} else {
			c.font("", 9)
		}
		c.cell(c.width, 5, line, 1, "L")
	}
	c.pdf.Ln(4)
}

func (r *Renderer) drawQuote(c *canvas, q domain.Quote, partner domain.Partner) {
	r.drawTitle(c, "QUOTE", []metaRow{
		{"Number", q.QuoteID},
		{"Subject", q.Title},
		{"Date", q.CreatedAt.Format(dateLayout)},
		{"Valid until", q.ExpiresAt.Format(dateLayout)},
		{"Status", statusLabel(string(q.Status))},
	})
	r.drawPartnerBlock(c, "Prepared for", partner)
	r.drawTextSection(c, "Description", q.Description)
	r.drawItemsTable(c, q.Items)
	r.drawTotals(c, pricing.PriceDocument(q.Items, q.Discount), nil)
	r.drawTextSection(c, "Payment terms", q.PaymentTerms)
	r.drawTextSection(c, "Notes", q.Notes)
}

func (r *Renderer) drawInvoice(c *canvas, inv domain.Invoice, partner domain.Partner) {
	title := "INVOICE"
	if inv.InvoiceType == domain.InvoiceProforma {
		title = "PROFORMA INVOICE"
	}
	totals := pricing.PriceDocument(inv.Items, inv.Discount)
	rows := []metaRow{
		{"Number", inv.InvoiceID},
		{"Date", inv.CreatedAt.Format(dateLayout)},
	}
	if inv.DueDate != nil {
		rows = append(rows, metaRow{"Due date", inv.DueDate.Format(dateLayout)})
	}
	rows = append(rows, metaRow{"Status", statusLabel(string(domain.DeriveInvoiceStatus(inv.AmountPaid, totals.Total)))})
	if inv.SourceQuoteID != nil {
		rows = append(rows, metaRow{"Quote ref.", *inv.SourceQuoteID})
	}
	r.drawTitle(c, title, rows)
	r.drawPartnerBlock(c, "Bill to", partner)
	r.drawItemsTable(c, inv.Items)

	var extra []metaRow
	if inv.AmountPaid > 0 {
		balance := totals.Total - inv.AmountPaid
		if balance < 0 {
			balance = 0
		}
		extra = append(extra,
			metaRow{"Amount paid", r.money.Format(inv.AmountPaid)},
			metaRow{"Balance due", r.money.Format(balance)},
		)
	}
	r.drawTotals(c, totals, extra)
	r.drawTextSection(c, "Payment terms", inv.PaymentTerms)
	r.drawTextSection(c, "Notes", inv.Notes)
}

func (r *Renderer) drawItemsTable(c *canvas, items []domain.LineItem) {
	pdf := c.pdf
	var widths [4]float64
	for i, ratio := range itemColumns {
		widths[i] = c.width * ratio
	}
	header := func() {
		c.font("B", 9)
		pdf.SetFillColor(45, 55, 72)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetX(c.left)
		for i, h := range []string{"Description", "Quantity", "Unit price", "Total"} {
			align := "R"
			switch i {
			case 0:
				align = "L"
			case 1:
				align = "C"
			}
			ln := 0
			if i == 3 {
				ln = 1
			}
			pdf.CellFormat(widths[i], 7, c.tr(h), "", ln, align, true, 0, "")
		}
		pdf.SetTextColor(0, 0, 0)
		c.font("", 9)
	}

	c.ensureSpace(7 + 2*lineHeight)
	header()
	if len(items) == 0 {
		c.font("I", 9)
		pdf.SetTextColor(120, 120, 120)
		pdf.CellFormat(c.width, 8, c.tr("No items"), "", 1, "C", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
		c.rule()
		return
	}

	lineTotals := pricing.PriceLines(items)
	for i, item := range items {
		desc := item.Description
		if item.HasDiscount() {
			desc += " [-" + utils.FormatPercent(item.DiscountPercent) + "]"
		}
		descW := widths[0] - 2
		lines := pdf.SplitLines([]byte(c.tr(desc)), descW)
		h := float64(max(len(lines), 1))*lineHeight + 2
		if c.ensureSpace(h) {
			header()
		}
		y := pdf.GetY()
		if i%2 == 1 {
			pdf.SetFillColor(242, 244, 247)
			pdf.Rect(c.left, y, c.width, h, "F")
		}
		pdf.SetXY(c.left+1, y+1)
		pdf.MultiCell(descW, lineHeight, c.tr(desc), "", "L", false)

		qty := utils.FormatQuantity(item.Quantity)
		if item.Unit != "" {
			qty += " " + item.Unit
		}
		pdf.SetXY(c.left+widths[0], y)
		c.cell(widths[1], h, qty, 0, "C")
		c.cell(widths[2], h, r.money.Format(item.UnitPrice), 0, "R")
		c.cell(widths[3], h, r.money.Format(lineTotals[i]), 0, "R")
		pdf.SetXY(c.left, y+h)
	}
	c.rule()
}

func (r *Renderer) drawTotals(c *canvas, totals pricing.Totals, extra []metaRow) {
	pdf := c.pdf
	labelW, valueW := c.width*0.25, c.width*0.20
	x := c.left + c.width - labelW - valueW
	row := func(label, value string, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		c.font(style, 10)
		pdf.SetX(x)
		c.cell(labelW, 6, label, 0, "L")
		c.cell(valueW, 6, value, 1, "R")
	}

	c.ensureSpace(float64(3+len(extra))*6 + 12)
	row("Subtotal", r.money.Format(totals.Subtotal), false)
	if totals.Discount > 0 {
		row("Discount", "-"+r.money.Format(totals.Discount), false)
	}
	y := pdf.GetY()
	pdf.SetDrawColor(45, 55, 72)
	pdf.Line(x, y, c.left+c.width, y)
	row("Total", r.money.Format(totals.Total), true)
	for _, e := range extra {
		row(e.label, e.value, false)
	}

	if r.taxNotice != "" {
		pdf.Ln(2)
		c.font("I", 8)
		pdf.SetTextColor(90, 90, 90)
		c.paragraph(r.taxNotice, 4)
		pdf.SetTextColor(0, 0, 0)
	}
	pdf.Ln(4)
}

func (r *Renderer) drawTextSection(c *canvas, heading string, body *string) {
	if body == nil || strings.TrimSpace(*body) == "" {
		return
	}
	c.heading(heading)
	c.font("", 9.5)
	c.paragraph(*body, lineHeight)
	c.pdf.Ln(3)
}

func statusLabel(s string) string {
	return strings.ReplaceAll(s, "_", " ")
}
