package repositories

import (
	"context"
	"testing"

	"corptransit/internal/domain"
	"corptransit/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
)

func newTenantRepo(t *testing.T) (TenantRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	return TenantRepository{DB: sqlx.NewDb(db, "mysql")}, mock, func() { db.Close() }
}

func TestFindActiveBySubdomain(t *testing.T) {
	repo, mock, done := newTenantRepo(t)
	defer done()

	mock.ExpectQuery("SELECT (.+) FROM tenants").
		WithArgs("acme").
		WillReturnRows(sqlmock.NewRows([]string{"id", "company_name", "subdomain", "schema_name", "status"}).
			AddRow(1, "PT Acme", "acme", "tenant_acme", "active"))

	tn, err := repo.FindActiveBySubdomain(context.Background(), "ACME ")
	if err != nil {
		t.Fatalf("find error: %v", err)
	}
	if tn.SchemaName != "tenant_acme" {
		t.Fatalf("schema_name = %q", tn.SchemaName)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestFindActiveBySubdomainUnknownIsNotFound(t *testing.T) {
	repo, mock, done := newTenantRepo(t)
	defer done()

	mock.ExpectQuery("SELECT (.+) FROM tenants").
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"id", "company_name", "subdomain", "schema_name", "status"}))

	_, err := repo.FindActiveBySubdomain(context.Background(), "ghost")
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestFindActiveBySubdomainRejectsEmpty(t *testing.T) {
	repo, _, done := newTenantRepo(t)
	defer done()

	if _, err := repo.FindActiveBySubdomain(context.Background(), "  "); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateRequiresTenantPrefix(t *testing.T) {
	repo, _, done := newTenantRepo(t)
	defer done()

	_, err := repo.Create(context.Background(), models.Tenant{
		Subdomain:  "acme",
		SchemaName: "acme",
	})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
