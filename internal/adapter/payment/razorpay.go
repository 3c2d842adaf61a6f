// Package payment verifies checkout confirmations coming back from Razorpay.
// The provider signs hex(hmac_sha256(order_id + "|" + payment_id)) with the
// key secret; we recompute and compare before trusting a promotion purchase.
package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/fuisonguest/retrand/internal/listing/domain"
)

type RazorpayVerifier struct {
	keySecret string
}

func NewRazorpayVerifier(keySecret string) *RazorpayVerifier {
	return &RazorpayVerifier{keySecret: keySecret}
}

func (v *RazorpayVerifier) Verify(conf domain.PaymentConfirmation) error {
	if v.keySecret == "" {
		return fmt.Errorf("payment verification is not configured: %w", domain.ErrPaymentFailed)
	}
	if conf.PaymentID == "" || conf.OrderID == "" || conf.Signature == "" {
		return fmt.Errorf("incomplete payment confirmation: %w", domain.ErrPaymentFailed)
	}

	mac := hmac.New(sha256.New, []byte(v.keySecret))
	mac.Write([]byte(conf.OrderID + "|" + conf.PaymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(conf.Signature)) {
		return fmt.Errorf("signature mismatch for payment %s: %w", conf.PaymentID, domain.ErrPaymentFailed)
	}
	return nil
}
