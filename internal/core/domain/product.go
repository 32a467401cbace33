package domain

import "time"

// ProductStatus represents the lifecycle state of a product.
type ProductStatus string

const (
	ProductActive   ProductStatus = "ACTIVE"
	ProductInactive ProductStatus = "INACTIVE"
)

// validTransitions defines the allowed state machine transitions.
// INACTIVE is terminal.
var validTransitions = map[ProductStatus][]ProductStatus{
	ProductActive: {ProductInactive},
}

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s ProductStatus) CanTransitionTo(next ProductStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Product is the core aggregate root. Owner holds the id of the user that
// created it and never changes afterwards.
type Product struct {
	ID        string
	Name      string
	Price     float64
	Owner     string
	Status    ProductStatus
	Validated bool
	CreatedAt time.Time
	UpdatedAt time.Time
	// Version is the store revision marker used for optimistic concurrency.
	Version int64
}

// OwnedBy reports whether subject is the product owner.
func (p *Product) OwnedBy(subject string) bool {
	return p.Owner != "" && p.Owner == subject
}

// ProductCandidate is a product that has not yet passed the creation gate.
type ProductCandidate struct {
	Name  string
	Price float64
}

// ValidationAudit records a single decision taken by the creation gate.
type ValidationAudit struct {
	Owner     string
	Name      string
	Price     float64
	Approved  bool
	DecidedAt time.Time
}

// Verdict renders the decision the way it is written to the audit log.
func (a ValidationAudit) Verdict() string {
	if a.Approved {
		return "Approved"
	}
	return "Rejected"
}
