package auth

import "context"

type contextKey string

const principalKey contextKey = "auth_principal"

// Principal identifies the API key that authenticated a request.
type Principal struct {
	Env       string
	KeyPrefix string
}

// ContextWithPrincipal adds p to ctx.
func ContextWithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// PrincipalFromContext returns the request principal, or nil when the
// request was not authenticated.
func PrincipalFromContext(ctx context.Context) *Principal {
	p, _ := ctx.Value(principalKey).(*Principal)
	return p
}
