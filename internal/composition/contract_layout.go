package composition

import (
	"fmt"

	"github.com/SscSPs/docflow_backend/internal/core/domain"
)

func (r *Renderer) drawContract(c *canvas, ct domain.Contract, partner domain.Partner, signatures []domain.Signature) error {
	title := ct.Title
	if title == "" {
		title = "CONTRACT"
	}
	r.drawTitle(c, title, []metaRow{
		{"Number", ct.ContractID},
		{"Type", statusLabel(string(ct.ContractType))},
		{"Date", ct.CreatedAt.Format(dateLayout)},
		{"Status", statusLabel(string(ct.Status))},
	})

	c.heading("Parties")
	r.drawColumns(c, "The Company", OrganizationLines(r.org), "The Partner", PartnerLines(partner))

	c.heading("Term and value")
	c.font("", 9.5)
	c.cell(c.width, lineHeight, "Start date: "+ct.StartDate.Format(dateLayout), 1, "L")
	if ct.EndDate != nil {
		c.cell(c.width, lineHeight, "End date: "+ct.EndDate.Format(dateLayout), 1, "L")
	} else {
		c.cell(c.width, lineHeight, "Indefinite term", 1, "L")
	}
	if ct.Value != nil {
		c.cell(c.width, lineHeight, "Contract value: "+r.money.Format(*ct.Value), 1, "L")
	}
	c.pdf.Ln(3)

	r.drawTextSection(c, "Description", ct.Description)

	if ct.ContractType == domain.ContractPartnership && ct.PartnershipTerms != nil {
		params := NewPartnershipParams(r.org.Name, partner.DisplayName(), *ct.PartnershipTerms, r.money)
		articles, err := InstantiatePartnership(params)
		if err != nil {
			return fmt.Errorf("render contract %s: %w", ct.ContractID, err)
		}
		for _, a := range articles {
			r.drawArticle(c, a)
		}
	} else {
		for i, cl := range ct.Clauses {
			r.drawArticle(c, Article{Number: i + 1, Title: cl.Title, Body: cl.Body})
		}
	}

	r.drawTextSection(c, "Notes", ct.Notes)
	r.drawSignatureBlock(c, partner, signatures)
	return nil
}

func (r *Renderer) drawArticle(c *canvas, a Article) {
	c.ensureSpace(3 * lineHeight)
	c.font("B", 10)
	c.paragraph(fmt.Sprintf("Art. %d. %s", a.Number, a.Title), 6)
	c.font("", 9.5)
	c.paragraph(a.Body, lineHeight)
	c.pdf.Ln(2)
}

// drawColumns lays out two labelled line lists side by side.
func (r *Renderer) drawColumns(c *canvas, leftHead string, left []string, rightHead string, right []string) {
	pdf := c.pdf
	gap := 6.0
	colW := (c.width - gap) / 2
	rightX := c.left + colW + gap
	rows := max(len(left), len(right))
	c.ensureSpace(float64(rows+1)*lineHeight + 6)

	c.font("B", 10)
	pdf.SetX(c.left)
	c.cell(colW, 6, leftHead, 0, "L")
	pdf.SetX(rightX)
	c.cell(colW, 6, rightHead, 1, "L")
	for i := 0; i < rows; i++ {
		style := ""
		if i == 0 {
			style = "B"
		}
		c.font(style, 9)
		pdf.SetX(c.left)
		if i < len(left) {
			c.cell(colW, lineHeight, left[i], 0, "L")
		}
		pdf.SetX(rightX)
		text := ""
		if i < len(right) {
			text = right[i]
		}
		c.cell(colW, lineHeight, text, 1, "L")
	}
	pdf.Ln(4)
}

// drawSignatureBlock renders one column per role with the latest signature image of
// that role, or a blank line to sign on.
func (r *Renderer) drawSignatureBlock(c *canvas, partner domain.Partner, signatures []domain.Signature) {
	const blockH = 52.0
	pdf := c.pdf
	c.ensureSpace(blockH + 8)
	c.heading("Signatures")

	gap := 10.0
	colW := (c.width - gap) / 2
	top := pdf.GetY()
	columns := []struct {
		x     float64
		head  string
		party string
		role  domain.SignerRole
	}{
		{c.left, "For the company", r.org.Name, domain.SignerCompany},
		{c.left + colW + gap, "For the partner", partner.DisplayName(), domain.SignerPartner},
	}

	for _, col := range columns {
		pdf.SetXY(col.x, top)
		c.font("B", 10)
		c.cell(colW, 6, col.head, 2, "L")
		c.font("", 9)
		c.cell(colW, lineHeight, col.party, 2, "L")

		imageTop := top + 13
		sig, signed := domain.LatestByRole(signatures, col.role)
		if signed {
			r.placeSignature(c, sig, col.x, imageTop, colW*0.6, 22)
		}

		lineY := imageTop + 24
		pdf.SetDrawColor(120, 120, 120)
		pdf.Line(col.x, lineY, col.x+colW*0.8, lineY)
		pdf.SetXY(col.x, lineY+1)
		name, date := "Name: ______________________", "Date: ______________"
		if signed {
			name = "Name: " + sig.SignerName
			date = "Date: " + sig.CreatedAt.Format(dateLayout)
		}
		c.cell(colW, lineHeight, name, 2, "L")
		c.cell(colW, lineHeight, date, 2, "L")
	}
	pdf.SetY(top + blockH)
}

func (r *Renderer) placeSignature(c *canvas, sig domain.Signature, x, y, maxW, maxH float64) {
	data, ok := decodeDataURL(sig.ImageData)
	if !ok {
		return
	}
	imageType, ok := sniffImageType(data)
	if !ok {
		return
	}
	name := "sig-" + sig.SignatureID
	info := c.registerImage(name, imageType, data)
	if info == nil {
		return
	}
	w, h := fitBox(info.Width(), info.Height(), maxW, maxH)
	c.placeImage(name, imageType, x, y, w, h)
}
