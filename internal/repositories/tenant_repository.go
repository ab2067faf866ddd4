package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	intconfig "corptransit/internal/config"
	"corptransit/internal/domain"
	"corptransit/internal/domain/models"

	"github.com/jmoiron/sqlx"
)

// TenantRepository reads the central tenant registry. The registry
// lives in the core schema; the booking core never writes it, only the
// admin CLI does.
type TenantRepository struct {
	DB *sqlx.DB
}

func (r TenantRepository) db() *sqlx.DB {
	if r.DB != nil {
		return r.DB
	}
	return sqlx.NewDb(intconfig.DB, "mysql")
}

// FindActiveBySubdomain returns the active tenant for a subdomain.
// Suspended tenants are not resolvable.
func (r TenantRepository) FindActiveBySubdomain(ctx context.Context, subdomain string) (models.Tenant, error) {
	subdomain = strings.ToLower(strings.TrimSpace(subdomain))
	if subdomain == "" {
		return models.Tenant{}, domain.ValidationError{Field: "subdomain", Msg: "subdomain kosong"}
	}

	var t models.Tenant
	err := r.db().GetContext(ctx, &t, `
		SELECT id, company_name, subdomain, schema_name, status
		FROM tenants
		WHERE subdomain = ? AND status = 'active'
		LIMIT 1`, subdomain)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Tenant{}, domain.NotFoundError{Resource: "tenant"}
	}
	if err != nil {
		return models.Tenant{}, domain.InternalError{Err: err}
	}
	return t, nil
}

// List returns every registry row, newest first. Used by tenantctl.
func (r TenantRepository) List(ctx context.Context) ([]models.Tenant, error) {
	var out []models.Tenant
	err := r.db().SelectContext(ctx, &out, `
		SELECT id, company_name, subdomain, schema_name, status
		FROM tenants
		ORDER BY id DESC`)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}

// Create registers a tenant. Schema provisioning itself is handled by
// onboarding tooling; this only writes the registry row.
func (r TenantRepository) Create(ctx context.Context, t models.Tenant) (int64, error) {
	if strings.TrimSpace(t.Subdomain) == "" {
		return 0, domain.ValidationError{Field: "subdomain", Msg: "subdomain kosong"}
	}
	if !strings.HasPrefix(t.SchemaName, "tenant_") {
		return 0, domain.ValidationError{Field: "schema_name", Msg: "must start with tenant_"}
	}
	status := t.Status
	if status == "" {
		status = models.TenantStatusActive
	}
	res, err := r.db().ExecContext(ctx, `
		INSERT INTO tenants (company_name, subdomain, schema_name, status)
		VALUES (?, ?, ?, ?)`,
		t.CompanyName, strings.ToLower(t.Subdomain), t.SchemaName, status)
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	id, _ := res.LastInsertId()
	return id, nil
}

// SetStatus flips a tenant between active and suspended.
func (r TenantRepository) SetStatus(ctx context.Context, subdomain, status string) error {
	res, err := r.db().ExecContext(ctx,
		`UPDATE tenants SET status = ? WHERE subdomain = ?`,
		status, strings.ToLower(strings.TrimSpace(subdomain)))
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "tenant"}
	}
	return nil
}
