package handlers

import (
	"net/http"
	"strconv"

	"corptransit/internal/http/middleware"
	"corptransit/internal/tenant"

	"github.com/gin-gonic/gin"
)

// RespondError sends standard error payload with request_id included.
// Keeps backward compatibility by always providing "message".
func RespondError(c *gin.Context, status int, message string, err error) {
	reqID := middleware.GetRequestID(c)
	payload := gin.H{
		"message":    message,
		"request_id": reqID,
	}
	if err != nil {
		payload["error"] = err.Error()
	}
	c.JSON(status, payload)
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		RespondError(c, http.StatusBadRequest, "body kosong", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "payload tidak valid", err)
		return false
	}
	return true
}

// schemaOrAbort fetches the partition handle put there by the tenant
// middleware. Missing handle means a route was mounted outside the
// tenant group, which is a wiring bug, not a client error.
func schemaOrAbort(c *gin.Context) (tenant.SchemaHandle, bool) {
	h, ok := middleware.GetSchema(c)
	if !ok {
		respondError(c, http.StatusInternalServerError, "no_tenant", "tenant tidak ter-resolve", nil)
		return tenant.SchemaHandle{}, false
	}
	return h, true
}

func idParamOrAbort(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "id tidak valid", err)
		return 0, false
	}
	return id, true
}
