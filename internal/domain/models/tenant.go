package models

const (
	TenantStatusActive    = "active"
	TenantStatusSuspended = "suspended"
)

// Tenant is one customer organization in the central registry. Rows are
// created at onboarding; the booking core only reads them.
type Tenant struct {
	ID          int64  `db:"id" json:"id"`
	CompanyName string `db:"company_name" json:"company_name"`
	Subdomain   string `db:"subdomain" json:"subdomain"`
	SchemaName  string `db:"schema_name" json:"schema_name"`
	Status      string `db:"status" json:"status"`
}
