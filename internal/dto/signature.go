package dto

import (
	"time"

	"github.com/SscSPs/docflow_backend/internal/core/domain"
)

// AddSignatureRequest appends a signature to a contract's ledger.
type AddSignatureRequest struct {
	SignerName string            `json:"signerName" binding:"required,max=200"`
	SignerRole domain.SignerRole `json:"signerRole" binding:"required,oneof=partner company"`
	ImageData  string            `json:"imageData" binding:"required"`
}

// SignatureResponse defines the data returned for a ledger entry.
type SignatureResponse struct {
	SignatureID string            `json:"signatureID"`
	ContractID  string            `json:"contractID"`
	SignerName  string            `json:"signerName"`
	SignerRole  domain.SignerRole `json:"signerRole"`
	ImageData   string            `json:"imageData"`
	ImageDigest string            `json:"imageDigest"`
	CreatedAt   time.Time         `json:"createdAt"`
	CreatedBy   string            `json:"createdBy"`
}

// SignatureLedgerResponse is the list projection with completeness flags.
type SignatureLedgerResponse struct {
	ContractID     string                `json:"contractID"`
	Signatures     []SignatureResponse   `json:"signatures"`
	PartnerSigned  bool                  `json:"partnerSigned"`
	CompanySigned  bool                  `json:"companySigned"`
	FullySigned    bool                  `json:"fullySigned"`
	ContractStatus domain.ContractStatus `json:"contractStatus"`
}

// AddSignatureResponse returns the new entry and the recomputed contract status.
type AddSignatureResponse struct {
	Signature      SignatureResponse     `json:"signature"`
	PartnerSigned  bool                  `json:"partnerSigned"`
	CompanySigned  bool                  `json:"companySigned"`
	FullySigned    bool                  `json:"fullySigned"`
	ContractStatus domain.ContractStatus `json:"contractStatus"`
}

// ToSignatureResponse converts a domain.Signature to SignatureResponse DTO
func ToSignatureResponse(s *domain.Signature) SignatureResponse {
	return SignatureResponse{
		SignatureID: s.SignatureID,
		ContractID:  s.ContractID,
		SignerName:  s.SignerName,
		SignerRole:  s.SignerRole,
		ImageData:   s.ImageData,
		ImageDigest: s.ImageDigest,
		CreatedAt:   s.CreatedAt,
		CreatedBy:   s.CreatedBy,
	}
}

// ToSignatureLedgerResponse converts a ledger projection.
func ToSignatureLedgerResponse(l *domain.SignatureLedger) SignatureLedgerResponse {
	sigs := make([]SignatureResponse, len(l.Signatures))
	for i := range l.Signatures {
		sigs[i] = ToSignatureResponse(&l.Signatures[i])
	}
	return SignatureLedgerResponse{
		ContractID:     l.ContractID,
		Signatures:     sigs,
		PartnerSigned:  l.Summary.PartnerSigned,
		CompanySigned:  l.Summary.CompanySigned,
		FullySigned:    l.Summary.FullySigned,
		ContractStatus: l.Status,
	}
}

// ToAddSignatureResponse combines the new entry with the recomputed ledger state.
func ToAddSignatureResponse(s *domain.Signature, l *domain.SignatureLedger) AddSignatureResponse {
	return AddSignatureResponse{
		Signature:      ToSignatureResponse(s),
		PartnerSigned:  l.Summary.PartnerSigned,
		CompanySigned:  l.Summary.CompanySigned,
		FullySigned:    l.Summary.FullySigned,
		ContractStatus: l.Status,
	}
}
