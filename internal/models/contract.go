package models

import "time"

// Contract is the contracts table row. Only the lifecycle is stored; signature-derived
// statuses come from contract_signatures.
type Contract struct {
	ContractID        string     `db:"contract_id"`
	PartnerID         string     `db:"partner_id"`
	ContractType      string     `db:"contract_type"`
	Title             string     `db:"title"`
	Description       *string    `db:"description"`
	Clauses           []byte     `db:"clauses"`
	PartnershipTerms  []byte     `db:"partnership_terms"`
	StartDate         time.Time  `db:"start_date"`
	EndDate           *time.Time `db:"end_date"`
	Value             *int64     `db:"value"`
	Notes             *string    `db:"notes"`
	Lifecycle         string     `db:"lifecycle"`
	TerminationReason *string    `db:"termination_reason"`
	ActivatedAt       *time.Time `db:"activated_at"`
	TerminatedAt      *time.Time `db:"terminated_at"`
	AuditFields
}
