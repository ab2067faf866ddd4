package tenant

import (
	"context"
	"testing"

	"corptransit/internal/domain"
	"corptransit/internal/domain/models"
)

type fakeRegistry struct {
	tenants map[string]models.Tenant
	calls   int
}

func (f *fakeRegistry) FindActiveBySubdomain(_ context.Context, subdomain string) (models.Tenant, error) {
	f.calls++
	t, ok := f.tenants[subdomain]
	if !ok {
		return models.Tenant{}, domain.NotFoundError{Resource: "tenant"}
	}
	return t, nil
}

func TestResolveExplicitSchemaSkipsRegistry(t *testing.T) {
	reg := &fakeRegistry{}
	r := Resolver{Registry: reg}

	// Well-formed but unknown to the registry: trusted path still wins.
	h, err := r.Resolve(context.Background(), Hint{ExplicitSchema: "tenant_acme"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.Name() != "tenant_acme" {
		t.Fatalf("schema = %q", h.Name())
	}
	if reg.calls != 0 {
		t.Fatalf("registry should not be consulted on explicit path, got %d calls", reg.calls)
	}
}

func TestResolveExplicitSchemaRejectsUnsafe(t *testing.T) {
	r := Resolver{Registry: &fakeRegistry{}}
	_, err := r.Resolve(context.Background(), Hint{ExplicitSchema: "tenant_acme;--"})
	if err == nil {
		t.Fatal("expected rejection of unsafe explicit schema")
	}
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestResolveCookieSchemaTrusted(t *testing.T) {
	reg := &fakeRegistry{}
	r := Resolver{Registry: reg}
	h, err := r.Resolve(context.Background(), Hint{CookieSchema: "tenant_globex"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.Name() != "tenant_globex" || reg.calls != 0 {
		t.Fatalf("cookie path should resolve without registry, schema=%q calls=%d", h.Name(), reg.calls)
	}
}

func TestResolveSubdomain(t *testing.T) {
	reg := &fakeRegistry{tenants: map[string]models.Tenant{
		"acme": {ID: 1, Subdomain: "acme", SchemaName: "tenant_acme", Status: models.TenantStatusActive},
	}}
	r := Resolver{Registry: reg}

	h, err := r.Resolve(context.Background(), Hint{Subdomain: "ACME "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.Name() != "tenant_acme" {
		t.Fatalf("schema = %q", h.Name())
	}
}

func TestResolveSubdomainNotFound(t *testing.T) {
	reg := &fakeRegistry{tenants: map[string]models.Tenant{}}
	r := Resolver{Registry: reg}

	_, err := r.Resolve(context.Background(), Hint{Subdomain: "doesnotexist"})
	if err == nil {
		t.Fatal("expected not found")
	}
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestResolveFallsBackToDefaultSubdomain(t *testing.T) {
	reg := &fakeRegistry{tenants: map[string]models.Tenant{
		"app": {ID: 9, Subdomain: "app", SchemaName: "tenant_app", Status: models.TenantStatusActive},
	}}
	r := Resolver{Registry: reg, DefaultSubdomain: "app"}

	h, err := r.Resolve(context.Background(), Hint{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.Name() != "tenant_app" {
		t.Fatalf("schema = %q", h.Name())
	}
}

func TestResolveRejectsRegistrySchemaWithoutTenantPrefix(t *testing.T) {
	reg := &fakeRegistry{tenants: map[string]models.Tenant{
		"odd": {ID: 2, Subdomain: "odd", SchemaName: "mysql", Status: models.TenantStatusActive},
	}}
	r := Resolver{Registry: reg}

	_, err := r.Resolve(context.Background(), Hint{Subdomain: "odd"})
	if err == nil {
		t.Fatal("expected rejection of non tenant_ schema from registry")
	}
	if !domain.IsInternal(err) {
		t.Fatalf("expected internal error, got %v", err)
	}
}
