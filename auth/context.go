package auth

import "context"

type ctxKey string

const (
	claimsCtxKey     = ctxKey("claims")
	authorizedCtxKey = ctxKey("authorized")
)

// WithClaims stores verified claims in ctx.
func WithClaims(ctx context.Context, c *Claims) context.Context {
	return context.WithValue(ctx, claimsCtxKey, c)
}

// WithPrincipal stores a bare principal id in ctx.
func WithPrincipal(ctx context.Context, id string) context.Context {
	return WithClaims(ctx, &Claims{ID: id})
}

// ClaimsFromContext returns the claims attached by RequireToken.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(claimsCtxKey).(*Claims)
	return c, ok && c != nil
}

// PrincipalFromContext extracts the authenticated principal id.
func PrincipalFromContext(ctx context.Context) (string, bool) {
	c, ok := ClaimsFromContext(ctx)
	if !ok || c.ID == "" {
		return "", false
	}
	return c.ID, true
}

// WithAuthorizedID records the identifier an ownership check approved.
func WithAuthorizedID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, authorizedCtxKey, id)
}

// AuthorizedIDFromContext returns the identifier approved for this request.
func AuthorizedIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(authorizedCtxKey).(string)
	return id, ok && id != ""
}
