package models

import "time"

// Signature is the contract_signatures table row.
type Signature struct {
	SignatureID string    `db:"signature_id"`
	ContractID  string    `db:"contract_id"`
	SignerName  string    `db:"signer_name"`
	SignerRole  string    `db:"signer_role"`
	ImageData   string    `db:"image_data"`
	ImageDigest string    `db:"image_digest"`
	CreatedAt   time.Time `db:"created_at"`
	CreatedBy   string    `db:"created_by"`
}
