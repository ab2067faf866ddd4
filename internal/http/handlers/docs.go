package handlers

import (
	"net/http"

	"corptransit/internal/http/middleware"
	"corptransit/internal/repositories"
	"corptransit/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/bookings/:id/receipt returns the booking receipt PDF (inline).
func GetBookingReceiptPDF(c *gin.Context) {
	schema, ok := schemaOrAbort(c)
	if !ok {
		return
	}
	id, ok := idParamOrAbort(c)
	if !ok {
		return
	}

	svc := services.DocsService{
		BookingRepo: repositories.BookingRepository{},
		PaymentRepo: repositories.PaymentRepository{},
		RequestID:   middleware.GetRequestID(c),
	}
	pdfBytes, filename, err := svc.GenerateReceipt(schema, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
