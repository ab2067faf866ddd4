package middleware

import (
	"net"
	"net/http"
	"strings"

	"corptransit/internal/domain"
	"corptransit/internal/tenant"

	"github.com/gin-gonic/gin"
)

const (
	schemaKey = "tenant_schema"

	// SchemaCookie is set at login and carries the resolved schema for
	// the rest of the session.
	SchemaCookie = "tenant_schema"

	// SchemaHeader is the trusted explicit-schema path for internal
	// service-to-service calls.
	SchemaHeader = "X-Tenant-Schema"
)

// Tenant resolves the request's tenant hint into a partition handle and
// stores it on the context. Every partition-scoped handler runs behind
// this middleware; there is no other way to obtain a handle.
func Tenant(r tenant.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookieSchema := ""
		if v, err := c.Cookie(SchemaCookie); err == nil {
			cookieSchema = v
		}

		hint := tenant.Hint{
			ExplicitSchema: c.GetHeader(SchemaHeader),
			CookieSchema:   cookieSchema,
			Subdomain:      SubdomainFromHost(c.Request.Host),
		}

		h, err := r.Resolve(c.Request.Context(), hint)
		if err != nil {
			status := http.StatusInternalServerError
			switch {
			case domain.IsValidation(err):
				status = http.StatusBadRequest
			case domain.IsNotFound(err):
				status = http.StatusNotFound
			}
			c.AbortWithStatusJSON(status, gin.H{
				"error":      err.Error(),
				"request_id": GetRequestID(c),
			})
			return
		}

		c.Set(schemaKey, h)
		c.Next()
	}
}

// GetSchema returns the partition handle resolved for this request.
func GetSchema(c *gin.Context) (tenant.SchemaHandle, bool) {
	if c == nil {
		return tenant.SchemaHandle{}, false
	}
	if v, ok := c.Get(schemaKey); ok {
		if h, ok := v.(tenant.SchemaHandle); ok && !h.IsZero() {
			return h, true
		}
	}
	return tenant.SchemaHandle{}, false
}

// SubdomainFromHost extracts the left-most label when the host looks
// like sub.domain.tld. Bare hosts, localhost and IPs yield "".
func SubdomainFromHost(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	host = strings.ToLower(strings.TrimSpace(host))
	if host == "" || host == "localhost" || net.ParseIP(host) != nil {
		return ""
	}
	parts := strings.Split(host, ".")
	if len(parts) < 3 {
		return ""
	}
	return parts[0]
}
