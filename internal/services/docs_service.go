package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"corptransit/internal/domain/models"
	"corptransit/internal/repositories"
	"corptransit/internal/tenant"
	"corptransit/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders booking receipts as PDF.
type DocsService struct {
	BookingRepo repositories.BookingRepository
	PaymentRepo repositories.PaymentRepository
	RequestID   string
}

// GenerateReceipt builds the receipt PDF for a booking, listing its
// payment trail. Returns the bytes plus a download filename.
func (s DocsService) GenerateReceipt(schema tenant.SchemaHandle, bookingID int64) ([]byte, string, error) {
	booking, err := s.BookingRepo.GetByID(schema, bookingID)
	if err != nil {
		return nil, "", err
	}
	payments, err := s.PaymentRepo.ListByBooking(schema, bookingID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_receipt", fmt.Sprintf("booking_id=%d", bookingID))
	return buildReceiptPDF(booking, payments)
}

func buildReceiptPDF(b models.Booking, payments []models.Payment) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Booking Receipt", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "BOOKING RECEIPT")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Booking No  : %s", safe(b.BookingNumber, "-")),
		fmt.Sprintf("Status      : %s", safe(b.Status, "-")),
		fmt.Sprintf("Type        : %s", safe(b.BookingType, "-")),
		fmt.Sprintf("Pickup      : %s", safe(b.PickupLocation, "-")),
		fmt.Sprintf("Dropoff     : %s", safe(b.DropoffLocation, "-")),
		fmt.Sprintf("Scheduled   : %s", safe(b.ScheduledPickupTime, "-")),
		fmt.Sprintf("Passengers  : %d", b.PassengerCount),
		fmt.Sprintf("Est. Cost   : %.2f", b.EstimatedCost),
		fmt.Sprintf("Issued      : %s", time.Now().Format("2006-01-02 15:04")),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Payments:")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	if len(payments) == 0 {
		pdf.Cell(0, 6, "- none recorded -")
		pdf.Ln(6)
	}
	for _, p := range payments {
		pdf.MultiCell(0, 6, fmt.Sprintf("%s  %s  %.2f  %s",
			safe(p.PaymentNumber, "-"), safe(p.PaymentStatus, "-"), p.Amount, safe(p.PaymentDate, "-")),
			"", "", false)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "This receipt reflects the recorded payment trail at the time of issue.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("RECEIPT_%s.pdf", safeFilenamePart(b.BookingNumber))
	return buf.Bytes(), filename, nil
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}
