package database

import "context"

type contextKey string

const (
	// ScopeKey is the context key for storing the active database scope.
	ScopeKey contextKey = "dbScope"
)

// Scope carries the connection (pool, pooled connection or transaction) that
// repositories should use for the current unit of work.
type Scope struct {
	Conn Querier
}

// GetScope retrieves the database scope from context.
// Returns nil and false if not present.
func GetScope(ctx context.Context) (*Scope, bool) {
	scope, ok := ctx.Value(ScopeKey).(*Scope)
	return scope, ok
}

// SetScope stores the database scope in context.
func SetScope(ctx context.Context, scope *Scope) context.Context {
	return context.WithValue(ctx, ScopeKey, scope)
}
