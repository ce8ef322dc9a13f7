package policy

import (
	"context"

	"github.com/sintocheck/sintocheck-api/gate"
	"github.com/sintocheck/sintocheck-api/internal/models"
)

// OwnershipPolicy allows a principal to act on a resource it owns.
// Works with any model that implements models.Ownable.
type OwnershipPolicy struct{}

// NewOwnershipPolicy creates a new ownership policy.
func NewOwnershipPolicy() *OwnershipPolicy {
	return &OwnershipPolicy{}
}

// Can reports whether the resource's owning patient is principal. Ownerless
// resources (global health data) and resources that are not Ownable are denied.
func (p *OwnershipPolicy) Can(_ context.Context, principal string, _ gate.Action, resource any) bool {
	ownable, ok := resource.(models.Ownable)
	if !ok || ownable == nil {
		return false
	}
	owner := ownable.OwnerID()
	return owner != nil && *owner != "" && *owner == principal
}
