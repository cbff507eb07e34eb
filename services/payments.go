package services

import (
	"context"

	"github.com/edura-app/edura-go/core"
)

// PaymentService covers the /api/payments endpoints.
type PaymentService struct {
	d *Dispatcher
}

func NewPaymentService(d *Dispatcher) *PaymentService {
	return &PaymentService{d: d}
}

// Topup converts a VND amount into points on the current account.
func (s *PaymentService) Topup(ctx context.Context, amountVND int) (*core.Payment, error) {
	var payment core.Payment
	err := s.d.DoJSON(ctx, "POST", "/api/payments/topup", map[string]int{
		"amountVND": amountVND,
	}, &payment)
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// Create starts a payment with the given provider method and returns the
// order plus the provider's pay URL.
func (s *PaymentService) Create(ctx context.Context, amountVND int, method, returnURL string) (*core.Payment, error) {
	var payment core.Payment
	err := s.d.DoJSON(ctx, "POST", "/api/payments/create-payment", map[string]any{
		"amountVND": amountVND,
		"method":    method,
		"returnUrl": returnURL,
	}, &payment)
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (s *PaymentService) CheckStatus(ctx context.Context, orderID string) (*core.Payment, error) {
	var payment core.Payment
	if err := s.d.DoJSON(ctx, "GET", "/api/payments/check-payment/"+orderID, nil, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

func (s *PaymentService) Verify(ctx context.Context, orderID string) (*core.Payment, error) {
	var payment core.Payment
	if err := s.d.DoJSON(ctx, "POST", "/api/payments/verify-payment/"+orderID, nil, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}
