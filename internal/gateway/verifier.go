package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// CallbackPayload is what the client reports back after a gateway
// payment attempt. All three fields originate client-side.
type CallbackPayload struct {
	OrderID   string
	PaymentID string
	Signature string
}

// Verifier checks a client-reported callback before the reconciler acts
// on it. The legacy flow recorded callbacks without any verification;
// AllowAll keeps that behavior as an explicit choice rather than a
// silent default, HMACVerifier is the hardened option.
type Verifier interface {
	Verify(p CallbackPayload) bool
}

type AllowAll struct{}

func (AllowAll) Verify(CallbackPayload) bool { return true }

// HMACVerifier expects signature = hex(HMAC-SHA256(orderID|paymentID))
// keyed with the gateway webhook secret.
type HMACVerifier struct {
	Secret []byte
}

func (v HMACVerifier) Verify(p CallbackPayload) bool {
	mac := hmac.New(sha256.New, v.Secret)
	mac.Write([]byte(p.OrderID + "|" + p.PaymentID))
	want := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(want), []byte(p.Signature))
}
