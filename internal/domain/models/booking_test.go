package models

import "testing"

// External consumers match on these exact strings; a rename here is a
// breaking change, not a refactor.
func TestBookingStatusStrings(t *testing.T) {
	want := map[string]string{
		BookingStatusPending:       "pending",
		BookingStatusConfirmed:     "confirmed",
		BookingStatusWaitingDriver: "waiting_driver",
		BookingStatusCompleted:     "completed",
		BookingStatusCancelled:     "cancelled",
		BookingStatusPaymentFailed: "payment_failed",
	}
	for got, expected := range want {
		if got != expected {
			t.Fatalf("status constant %q != %q", got, expected)
		}
		if !ValidBookingStatus(got) {
			t.Fatalf("ValidBookingStatus(%q) = false", got)
		}
	}
	if ValidBookingStatus("driving") {
		t.Fatal("unknown status accepted")
	}
}

func TestTerminalBookingStatus(t *testing.T) {
	for _, s := range []string{BookingStatusCompleted, BookingStatusCancelled, BookingStatusPaymentFailed} {
		if !TerminalBookingStatus(s) {
			t.Fatalf("%q should be terminal", s)
		}
	}
	for _, s := range []string{BookingStatusPending, BookingStatusConfirmed, BookingStatusWaitingDriver} {
		if TerminalBookingStatus(s) {
			t.Fatalf("%q should not be terminal", s)
		}
	}
}
