package payment

import (
	"context"
	"fmt"
	"time"

	"villa-booking/pkg/utils"

	"github.com/cenkalti/backoff/v4"
	razorpay "github.com/razorpay/razorpay-go"
	"go.uber.org/zap"
)

// Order is a payment-provider order. Amount is int64 minor currency units.
type Order struct {
	ID       string
	Amount   int64
	Currency string
}

// Provider creates orders at the external payment provider.
type Provider interface {
	Name() string
	CreateOrder(ctx context.Context, amount int64, currency, receipt string, notes map[string]string) (*Order, error)
}

type razorpayProvider struct {
	client     *razorpay.Client
	timeout    time.Duration
	maxRetries uint64
	log        *zap.Logger
}

func NewRazorpayProvider(config utils.RazorpayConfig, log *zap.Logger) Provider {
	return &razorpayProvider{
		client:     razorpay.NewClient(config.KeyID, config.KeySecret),
		timeout:    time.Duration(config.TimeoutSeconds) * time.Second,
		maxRetries: uint64(config.MaxRetries),
		log:        log.With(zap.String("provider", "razorpay")),
	}
}

func (p *razorpayProvider) Name() string {
	return "razorpay"
}

// CreateOrder calls the provider under the configured timeout and retry
// budget. Transient failures are retried with exponential backoff; the same
// idempotency key upstream makes a full retry of the operation safe.
func (p *razorpayProvider) CreateOrder(ctx context.Context, amount int64, currency, receipt string, notes map[string]string) (*Order, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("order amount must be a positive integer in minor units, got %d", amount)
	}

	data := map[string]interface{}{
		"amount":   amount,
		"currency": currency,
		"receipt":  receipt,
	}
	if len(notes) > 0 {
		noteData := make(map[string]interface{}, len(notes))
		for k, v := range notes {
			noteData[k] = v
		}
		data["notes"] = noteData
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	var body map[string]interface{}
	operation := func() error {
		res, err := p.client.Order.Create(data, nil)
		if err != nil {
			p.log.Warn("Provider order creation attempt failed", zap.Error(err))
			return err
		}
		body = res
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), p.maxRetries), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, fmt.Errorf("create provider order: %w", err)
	}

	orderID, _ := body["id"].(string)
	if orderID == "" {
		return nil, fmt.Errorf("provider order response missing id")
	}

	p.log.Info("Provider order created",
		zap.String("order_id", orderID),
		zap.Int64("amount", amount),
		zap.String("currency", currency),
	)

	return &Order{
		ID:       orderID,
		Amount:   amount,
		Currency: currency,
	}, nil
}
