package domain

import "time"

// SignerRole is the party a signature is made on behalf of.
type SignerRole string

const (
	SignerPartner SignerRole = "partner"
	SignerCompany SignerRole = "company"
)

// IsValid reports whether r is a known signer role.
func (r SignerRole) IsValid() bool {
	return r == SignerPartner || r == SignerCompany
}

// Signature is an append-only ledger entry attached to a contract.
type Signature struct {
	SignatureID string     `json:"signatureID"`
	ContractID  string     `json:"contractID"`
	SignerName  string     `json:"signerName"`
	SignerRole  SignerRole `json:"signerRole"`
	ImageData   string     `json:"imageData"`
	ImageDigest string     `json:"imageDigest"`
	CreatedAt   time.Time  `json:"createdAt"`
	CreatedBy   string     `json:"createdBy"`
}

// SignatureSummary is the completeness projection of a ledger.
type SignatureSummary struct {
	PartnerSigned bool `json:"partnerSigned"`
	CompanySigned bool `json:"companySigned"`
	FullySigned   bool `json:"fullySigned"`
	Count         int  `json:"count"`
}

// SummarizeSignatures derives completeness from role presence. Duplicate signatures
// of the same role are allowed and count once.
func SummarizeSignatures(signatures []Signature) SignatureSummary {
	var s SignatureSummary
	for _, sig := range signatures {
		switch sig.SignerRole {
		case SignerPartner:
			s.PartnerSigned = true
		case SignerCompany:
			s.CompanySigned = true
		}
	}
	s.Count = len(signatures)
	s.FullySigned = s.PartnerSigned && s.CompanySigned
	return s
}

// LatestByRole returns the most recent signature for role, if any.
func LatestByRole(signatures []Signature, role SignerRole) (Signature, bool) {
	var latest Signature
	found := false
	for _, sig := range signatures {
		if sig.SignerRole != role {
			continue
		}
		if !found || sig.CreatedAt.After(latest.CreatedAt) {
			latest = sig
			found = true
		}
	}
	return latest, found
}

// SignatureLedger is the read projection of a contract's signatures together with
// the contract status recomputed from them.
type SignatureLedger struct {
	ContractID string           `json:"contractID"`
	Signatures []Signature      `json:"signatures"`
	Summary    SignatureSummary `json:"summary"`
	Status     ContractStatus   `json:"status"`
}
