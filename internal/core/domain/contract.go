package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/docflow_backend/internal/apperrors"
)

// ContractType classifies a contract. Partnership contracts render a fixed article
// template instead of free clauses.
type ContractType string

const (
	ContractGeneric     ContractType = "generic"
	ContractPartnership ContractType = "partnership"
	ContractSponsoring  ContractType = "sponsoring"
	ContractVendor      ContractType = "vendor"
)

// IsValid reports whether t is a known contract type.
func (t ContractType) IsValid() bool {
	switch t {
	case ContractGeneric, ContractPartnership, ContractSponsoring, ContractVendor:
		return true
	}
	return false
}

// ContractLifecycle is the explicitly stored part of a contract's state.
type ContractLifecycle string

const (
	LifecycleDraft      ContractLifecycle = "draft"
	LifecycleSent       ContractLifecycle = "sent"
	LifecycleActive     ContractLifecycle = "active"
	LifecycleTerminated ContractLifecycle = "terminated"
)

// ContractStatus is the presented status: the lifecycle overlaid with signature completeness.
type ContractStatus string

const (
	ContractDraft           ContractStatus = "draft"
	ContractSent            ContractStatus = "sent"
	ContractPartiallySigned ContractStatus = "partially_signed"
	ContractFullySigned     ContractStatus = "fully_signed"
	ContractActive          ContractStatus = "active"
	ContractTerminated      ContractStatus = "terminated"
)

// ContractStatuses lists every status in presentation order.
var ContractStatuses = []ContractStatus{
	ContractDraft, ContractSent, ContractPartiallySigned, ContractFullySigned, ContractActive, ContractTerminated,
}

// Clause is a titled block of contract text.
type Clause struct {
	Title    string `json:"title"`
	Body     string `json:"body"`
	Editable bool   `json:"editable"`
}

// Contract is an agreement with a partner whose signed states derive from its signature ledger.
type Contract struct {
	ContractID        string            `json:"contractID"`
	PartnerID         string            `json:"partnerID"`
	ContractType      ContractType      `json:"contractType"`
	Title             string            `json:"title"`
	Description       *string           `json:"description,omitempty"`
	Clauses           []Clause          `json:"clauses"`
	PartnershipTerms  *PartnershipTerms `json:"partnershipTerms,omitempty"`
	StartDate         time.Time         `json:"startDate"`
	EndDate           *time.Time        `json:"endDate,omitempty"`
	Value             *int64            `json:"value,omitempty"`
	Notes             *string           `json:"notes,omitempty"`
	Lifecycle         ContractLifecycle `json:"lifecycle"`
	Status            ContractStatus    `json:"status"`
	Signatures        SignatureSummary  `json:"signatures"`
	TerminationReason *string           `json:"terminationReason,omitempty"`
	ActivatedAt       *time.Time        `json:"activatedAt,omitempty"`
	TerminatedAt      *time.Time        `json:"terminatedAt,omitempty"`
	AuditFields
}

// DeriveContractStatus overlays signature completeness on a sent contract. With no
// signatures, or outside of sent, the stored lifecycle is the status.
func DeriveContractStatus(lifecycle ContractLifecycle, summary SignatureSummary) ContractStatus {
	if lifecycle == LifecycleSent {
		switch {
		case summary.FullySigned:
			return ContractFullySigned
		case summary.PartnerSigned || summary.CompanySigned:
			return ContractPartiallySigned
		}
	}
	return ContractStatus(lifecycle)
}

// ApplySignatures recomputes the derived status from the full ledger.
func (c *Contract) ApplySignatures(signatures []Signature) {
	c.Signatures = SummarizeSignatures(signatures)
	c.Status = DeriveContractStatus(c.Lifecycle, c.Signatures)
}

// EnsureEditable rejects edits once the contract has been shared.
func (c Contract) EnsureEditable() error {
	if c.Lifecycle != LifecycleDraft {
		return fmt.Errorf("contract %s is %s, only draft contracts can be edited: %w", c.ContractID, c.Lifecycle, apperrors.ErrInvalidState)
	}
	return nil
}

// EnsureDeletable rejects deletion outside of draft.
func (c Contract) EnsureDeletable() error {
	if c.Lifecycle != LifecycleDraft {
		return fmt.Errorf("contract %s is %s, only draft contracts can be deleted: %w", c.ContractID, c.Lifecycle, apperrors.ErrInvalidState)
	}
	return nil
}

// EnsureSignable rejects signatures on contracts that were never shared.
func (c Contract) EnsureSignable() error {
	if c.Lifecycle == LifecycleDraft {
		return fmt.Errorf("contract %s is still a draft and must be sent before signing: %w", c.ContractID, apperrors.ErrInvalidState)
	}
	return nil
}

// Send moves a draft contract to sent.
func (c *Contract) Send() error {
	if c.Lifecycle != LifecycleDraft {
		return fmt.Errorf("contract %s is %s, only draft contracts can be sent: %w", c.ContractID, c.Lifecycle, apperrors.ErrInvalidState)
	}
	c.Lifecycle = LifecycleSent
	c.Status = DeriveContractStatus(c.Lifecycle, c.Signatures)
	return nil
}

// Activate requires a fully signed contract. Signatures must have been applied first.
func (c *Contract) Activate(now time.Time) error {
	if c.Status != ContractFullySigned {
		return fmt.Errorf("contract %s is %s, only fully signed contracts can be activated: %w", c.ContractID, c.Status, apperrors.ErrInvalidState)
	}
	c.Lifecycle = LifecycleActive
	c.Status = ContractActive
	c.ActivatedAt = &now
	return nil
}

// Terminate ends an active contract. Irreversible.
func (c *Contract) Terminate(reason string, now time.Time) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return fmt.Errorf("a termination reason is required: %w", apperrors.ErrValidation)
	}
	if c.Lifecycle != LifecycleActive {
		return fmt.Errorf("contract %s is %s, only active contracts can be terminated: %w", c.ContractID, c.Status, apperrors.ErrInvalidState)
	}
	c.Lifecycle = LifecycleTerminated
	c.Status = ContractTerminated
	c.TerminationReason = &reason
	c.TerminatedAt = &now
	return nil
}

// ValidateClauses checks that every clause has a title and body.
func ValidateClauses(clauses []Clause) error {
	for i, cl := range clauses {
		if strings.TrimSpace(cl.Title) == "" {
			return fmt.Errorf("clauses[%d].title is required: %w", i, apperrors.ErrValidation)
		}
		if strings.TrimSpace(cl.Body) == "" {
			return fmt.Errorf("clauses[%d].body is required: %w", i, apperrors.ErrValidation)
		}
	}
	return nil
}

// ValidateClauseUpdate ensures non-editable clauses survive an update unchanged and in place.
func ValidateClauseUpdate(existing, updated []Clause) error {
	for i, cl := range existing {
		if cl.Editable {
			continue
		}
		if i >= len(updated) || updated[i] != cl {
			return fmt.Errorf("clause %d (%q) is not editable: %w", i, cl.Title, apperrors.ErrInvalidState)
		}
	}
	return nil
}

// ValidateDates checks that the end date, when set, is not before the start date.
func ValidateDates(start time.Time, end *time.Time) error {
	if start.IsZero() {
		return fmt.Errorf("startDate is required: %w", apperrors.ErrValidation)
	}
	if end != nil && end.Before(start) {
		return fmt.Errorf("endDate must not be before startDate: %w", apperrors.ErrValidation)
	}
	return nil
}
