// Package gate is a small authorization checkpoint. A Gate holds one Policy
// per resource type; each Policy decides whether a principal may perform an
// action on a concrete resource. The package knows nothing about patients or
// storage, so the same Gate serves every ownership-scoped route.
//
// U is the principal type. The API uses Gate[string] keyed by the patient id
// carried in the session token.
package gate

import (
	"context"
	"fmt"
)

// Gate is the central authorization checkpoint.
// Policies are registered at startup and only read afterwards.
type Gate[U comparable] struct {
	policies map[string]Policy[U]
}

// NewGate creates an empty Gate ready to register policies.
func NewGate[U comparable]() *Gate[U] {
	return &Gate[U]{policies: make(map[string]Policy[U])}
}

// Register adds the policy for a resource type, replacing any previous one.
func (g *Gate[U]) Register(resourceType string, p Policy[U]) {
	g.policies[resourceType] = p
}

// Authorize returns nil when user may perform action on resource.
// A zero-value user is always rejected with ErrUnauthorized; an unknown
// resource type yields ErrNoPolicyDefined.
func (g *Gate[U]) Authorize(ctx context.Context, user U, action Action, resourceType string, resource any) error {
	var zero U
	if user == zero {
		return ErrUnauthorized
	}
	p, ok := g.policies[resourceType]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoPolicyDefined, resourceType)
	}
	if !p.Can(ctx, user, action, resource) {
		return ErrUnauthorized
	}
	return nil
}

// Can reports whether Authorize would succeed.
func (g *Gate[U]) Can(ctx context.Context, user U, action Action, resourceType string, resource any) bool {
	return g.Authorize(ctx, user, action, resourceType, resource) == nil
}
