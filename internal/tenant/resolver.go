package tenant

import (
	"context"
	"strings"

	"corptransit/internal/domain"
	"corptransit/internal/domain/models"
)

// Registry is the read-only tenant lookup the resolver depends on.
// Implementations return domain.NotFoundError when no active tenant
// matches.
type Registry interface {
	FindActiveBySubdomain(ctx context.Context, subdomain string) (models.Tenant, error)
}

// Hint carries the tenant identifiers a request may arrive with.
type Hint struct {
	// ExplicitSchema is supplied by trusted internal callers; it skips
	// the active-status lookup on purpose.
	ExplicitSchema string
	// CookieSchema comes out of our own session token, so it rides the
	// same trusted path as ExplicitSchema.
	CookieSchema string
	Subdomain    string
}

// Resolver maps a tenant hint to a validated partition handle.
type Resolver struct {
	Registry Registry
	// Cache is optional; nil disables caching.
	Cache *SchemaCache
	// DefaultSubdomain is the deployment-wide fallback, injected from
	// config at startup.
	DefaultSubdomain string
}

// Resolve picks the first usable hint: explicit schema, then cookie
// schema, then subdomain against the registry (active tenants only).
// A malformed identifier is a validation error; an unknown subdomain is
// a plain not-found, the caller turns it into a client error.
func (r Resolver) Resolve(ctx context.Context, hint Hint) (SchemaHandle, error) {
	if s := strings.TrimSpace(hint.ExplicitSchema); s != "" {
		return ParseSchema(s)
	}
	if s := strings.TrimSpace(hint.CookieSchema); s != "" {
		return ParseSchema(s)
	}

	sub := strings.ToLower(strings.TrimSpace(hint.Subdomain))
	if sub == "" {
		sub = strings.ToLower(strings.TrimSpace(r.DefaultSubdomain))
	}
	if sub == "" {
		return SchemaHandle{}, domain.NotFoundError{Resource: "tenant"}
	}

	if r.Cache != nil {
		if name, ok := r.Cache.Get(ctx, sub); ok {
			return ParseSchema(name)
		}
	}

	if r.Registry == nil {
		return SchemaHandle{}, domain.InternalError{Msg: "tenant registry not configured"}
	}
	t, err := r.Registry.FindActiveBySubdomain(ctx, sub)
	if err != nil {
		return SchemaHandle{}, err
	}

	// Registry rows are provisioned as tenant_<name>; anything else
	// means the registry itself is broken.
	if !strings.HasPrefix(t.SchemaName, "tenant_") {
		return SchemaHandle{}, domain.InternalError{Msg: "registry returned unexpected schema name"}
	}
	h, err := ParseSchema(t.SchemaName)
	if err != nil {
		return SchemaHandle{}, domain.InternalError{Msg: "registry returned unsafe schema name", Err: err}
	}

	if r.Cache != nil {
		r.Cache.Set(ctx, sub, h.Name())
	}
	return h, nil
}
